// Package engine implements a deterministic turn engine for a
// property-trading board game.
//
// The engine package covers the full turn lifecycle:
//   - Dice rolls, movement and the landing resolution state machine
//   - Property purchase, auctions, mortgages and building development
//   - Rent computation for properties, railroads and utilities
//   - Chance and community chest decks with a closed card effect set
//   - Jail entry and the three exit routes (fine, card, doubles)
//   - Debt tracking, bankruptcy and the last-player-standing win condition
//
// Core Types:
//
// Engine wraps a GameState with a GameConfig rule set and exposes the command
// surface; all mutation goes through it so phase validation cannot be
// bypassed. GameState is the single authoritative snapshot of a game and
// serializes to JSON in full, including the seeded dice cursor, so a reloaded
// game replays identically.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.NewEngine(config, []string{"alice", "bob"}, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := eng.Roll(); err != nil {
//		log.Fatal(err)
//	}
//	if err := eng.ResolveTile(); err != nil {
//		log.Fatal(err)
//	}
//	state := eng.GetState()
//
// Determinism:
//
// All randomness flows through the DiceState stored inside GameState. Two
// games created with the same seed, rule set and player list produce
// identical states after identical command sequences.
package engine
