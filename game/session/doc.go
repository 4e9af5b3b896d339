// Package session provides game session management for the board game
// server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Versioned file persistence of full game states
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// FilePersistence writes each game to a JSON file containing a versioned
// envelope: the rule config and the complete game state, including the
// seeded dice cursor. A loaded game therefore resumes mid-turn and replays
// identically, with no dependency on the rule set files on disk. Files
// written with a different SaveVersion are rejected, never migrated.
//
// Session Identifiers:
//
// Games use 4-character hex IDs for easy reference, generated with
// cryptographic randomness and matched case-insensitively.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	manager := session.NewManagerWithPersistence(persistence)
//	manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", config, []string{"alice", "bob"}, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
package session
