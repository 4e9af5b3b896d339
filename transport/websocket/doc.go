// Package websocket pushes live game updates to spectators.
//
// The package uses a hub-and-spoke model: a central Hub manages all
// connections, grouped by game ID. Clients connect with ?game=<id> and
// receive a JSON Message after every command that runs against that game.
// Connections are read-only, commands always arrive over the REST API.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a command runs
//	hub.BroadcastToGame(gameID, result)
//
// The hub goroutine owns the client map. Registration, unregistration and
// broadcasting all flow through channels, so callers never need a lock.
package websocket
