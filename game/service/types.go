package service

import (
	"time"

	"github.com/parkside-games/monopoly/game/engine"
)

// CreateGameRequest carries the parameters for a new game. Seed is optional:
// when nil the service picks a random one, and the chosen value is always
// visible in the returned state so the game can be replayed.
type CreateGameRequest struct {
	RuleSet string   `json:"rule_set,omitempty"`
	Players []string `json:"players"`
	Seed    *int64   `json:"seed,omitempty"`
}

// GameInfo provides information about a game session
type GameInfo struct {
	ID             string             `json:"id"`
	RuleSet        string             `json:"rule_set"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// CommandResult is the uniform response to every game command: the full
// authoritative state plus the events the command produced.
type CommandResult struct {
	GameState *engine.GameState `json:"game_state"`
	Phase     engine.TurnPhase  `json:"phase"`
	Prompt    *engine.Prompt    `json:"prompt,omitempty"`
	Events    []GameEvent       `json:"events,omitempty"`
	GameOver  bool              `json:"game_over"`
	Winner    *engine.Player    `json:"winner,omitempty"`
}

// GameEvent is one log entry of the command that just ran, decorated with
// the wall-clock time it was observed. The Seq ties it back to the game log.
type GameEvent struct {
	Seq       int       `json:"seq"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Player    int       `json:"player"`
	Timestamp time.Time `json:"timestamp"`
}

// LogOptions configures game log retrieval
type LogOptions struct {
	Since int `json:"since"` // first sequence number to include
	Limit int `json:"limit"`
}

// LogResponse contains a page of the game log
type LogResponse struct {
	Entries []engine.LogEntry `json:"entries"`
	Total   int               `json:"total"`
	Since   int               `json:"since"`
	HasMore bool              `json:"has_more"`
}

// RuleSetInfo provides information about an available rule set
type RuleSetInfo struct {
	Filename     string `json:"filename"`
	RuleSetID    string `json:"rule_set_id"` // the identifier to use for game creation
	Name         string `json:"name"`
	Description  string `json:"description"`
	StartingCash int    `json:"starting_cash"`
	MaxPlayers   int    `json:"max_players"`
}
