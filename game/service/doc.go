// Package service provides the business logic layer for the board game
// server.
//
// The service package implements:
//   - Multi-game session management
//   - Rule set loading and validation
//   - Command dispatch to the turn engine
//   - Event extraction from the game log
//   - Automatic persistence after every mutating command
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. ConfigManager manages rule set loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the turn engine, providing session isolation, rule set management, and
// business logic orchestration. Each session maintains its own engine
// instance with independent state. Every command funnels through a single
// helper that locks, runs the engine command, diffs the game log into events
// and saves the session, so transports never observe a half-applied turn.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	game, err := gameService.CreateGame(ctx, service.CreateGameRequest{
//		Players: []string{"alice", "bob"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Roll(ctx, game.ID)
//
// Session Management:
//
// Games are identified by unique 4-character IDs and maintain independent
// state. Multiple games can run concurrently with different rule sets. Each
// session tracks creation time and last access time, and is written to disk
// after every command so a restarted server resumes mid-turn.
package service
