// Package api provides the HTTP REST surface for the game server.
//
// Endpoints:
//
// Game Management:
//   - POST   /api/games         - Create a game (rule set, players, optional seed)
//   - GET    /api/games         - List games (sort, order, limit query params)
//   - GET    /api/games/{id}    - Get game info
//   - DELETE /api/games/{id}    - Delete a game
//   - GET    /api/games/{id}/state - Current authoritative game state
//   - GET    /api/games/{id}/log   - Paged action log (since, limit)
//
// Turn Commands (all POST, all return a CommandResult):
//   - /api/games/{id}/roll, /resolve, /buy, /decline, /bid,
//     /auction-resolve, /end-turn
//
// Asset Commands (POST with {"tile": n}):
//   - /api/games/{id}/mortgage, /unmortgage, /build-house, /build-hotel,
//     /sell-house, /sell-hotel
//
// Jail and Bankruptcy (POST):
//   - /api/games/{id}/jail-fine, /jail-card, /jail-roll, /bankrupt
//
// Rule Sets:
//   - GET  /api/rulesets        - List available rule sets
//   - POST /api/rulesets        - Save a rule set
//   - GET  /api/rulesets/{name} - Load one rule set
//
// WebSocket:
//   - GET /ws?game={id} - Live state updates for one game
//
// Every command response carries the full game state, the current phase,
// any pending prompt and the events the command produced. Errors come back
// as {"error": "..."} with a status derived from the engine error: 409 for
// out-of-phase commands, 402 for insufficient funds, 404 for unknown games
// or tiles.
package api
