// Package config provides rule set management for the game server.
//
// Rule sets are JSON files living in a config directory, each one a
// serialized engine.GameConfig. The Manager loads and caches them by
// name, exposes a default rule set (classic.json when present), and
// can write edited rule sets back to disk.
package config
