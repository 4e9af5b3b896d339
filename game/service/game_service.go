package service

import (
	"context"
	"errors"
	"time"

	"github.com/parkside-games/monopoly/game/engine"
)

// ErrRuleSetNotFound is returned when a named rule set does not exist.
// ConfigManager implementations return it (or wrap it) from LoadConfig so
// callers can match it without comparing error text.
var ErrRuleSetNotFound = errors.New("rule set not found")

// GameService defines all game-related operations
type GameService interface {
	// Game lifecycle
	CreateGame(ctx context.Context, req CreateGameRequest) (*GameInfo, error)
	GetGame(ctx context.Context, gameID string) (*GameInfo, error)
	ListGames(ctx context.Context) ([]*GameInfo, error)
	DeleteGame(ctx context.Context, gameID string) error

	// Turn commands
	Roll(ctx context.Context, gameID string) (*CommandResult, error)
	ResolveTile(ctx context.Context, gameID string) (*CommandResult, error)
	BuyProperty(ctx context.Context, gameID string) (*CommandResult, error)
	DeclinePurchase(ctx context.Context, gameID string) (*CommandResult, error)
	PlaceBid(ctx context.Context, gameID string, playerID, amount int) (*CommandResult, error)
	ResolveAuction(ctx context.Context, gameID string) (*CommandResult, error)
	EndTurn(ctx context.Context, gameID string) (*CommandResult, error)

	// Asset commands
	Mortgage(ctx context.Context, gameID string, tileID int) (*CommandResult, error)
	Unmortgage(ctx context.Context, gameID string, tileID int) (*CommandResult, error)
	BuildHouse(ctx context.Context, gameID string, tileID int) (*CommandResult, error)
	BuildHotel(ctx context.Context, gameID string, tileID int) (*CommandResult, error)
	SellHouse(ctx context.Context, gameID string, tileID int) (*CommandResult, error)
	SellHotel(ctx context.Context, gameID string, tileID int) (*CommandResult, error)

	// Jail and bankruptcy
	PayJailFine(ctx context.Context, gameID string) (*CommandResult, error)
	UseJailCard(ctx context.Context, gameID string) (*CommandResult, error)
	RollForJailDoubles(ctx context.Context, gameID string) (*CommandResult, error)
	DeclareBankrupt(ctx context.Context, gameID string) (*CommandResult, error)

	// Game state
	GetGameState(ctx context.Context, gameID string) (*engine.GameState, error)
	GetLog(ctx context.Context, gameID string, opts LogOptions) (*LogResponse, error)

	// Rule sets
	ListRuleSets(ctx context.Context) ([]*RuleSetInfo, error)
	LoadRuleSet(ctx context.Context, name string) (*engine.GameConfig, error)
	SaveRuleSet(ctx context.Context, name string, config *engine.GameConfig) error
}

// SessionManager defines game session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig, playerNames []string, seed int64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles rule set loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*RuleSetInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.Engine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
