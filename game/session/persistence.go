package session

import (
	"time"

	"github.com/parkside-games/monopoly/game/engine"
	"github.com/parkside-games/monopoly/game/service"
)

// SaveVersion is the current on-disk format version. Files written with a
// different version are rejected on load, never migrated.
const SaveVersion = 1

// SessionPersistence defines the interface for persisting game sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedGameData is the JSON envelope for a saved game. The rule config
// is embedded in full so a save file loads without any external lookup, even
// if the rule set files on disk have changed since.
type PersistedGameData struct {
	Version        int                `json:"version"`
	ID             string             `json:"id"`
	RuleSet        string             `json:"rule_set"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Config         *engine.GameConfig `json:"config"`
	GameState      *engine.GameState  `json:"game_state"`
}
