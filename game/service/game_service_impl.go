package service

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/parkside-games/monopoly/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getRuleSetID returns the rule_set_id for a given rule set name, used for
// consistent API responses
func (s *gameServiceImpl) getRuleSetID(name string) string {
	available, err := s.configs.ListConfigs()
	if err == nil {
		for _, rs := range available {
			if rs.Name == name {
				return rs.RuleSetID
			}
		}
	}
	if name == "" {
		return "default"
	}
	return name
}

// randomSeed draws a non-deterministic seed for games created without one.
func randomSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) &^ (1 << 63))
}

// CreateGame creates a new game session
func (s *gameServiceImpl) CreateGame(ctx context.Context, req CreateGameRequest) (*GameInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if req.RuleSet != "" {
		config, err = s.configs.LoadConfig(req.RuleSet)
		if err != nil {
			if errors.Is(err, ErrRuleSetNotFound) {
				available, listErr := s.configs.ListConfigs()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, rs := range available {
						ids = append(ids, rs.RuleSetID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available rule sets: %v", ErrRuleSetNotFound, req.RuleSet, ids)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/rulesets to list available rule sets", ErrRuleSetNotFound, req.RuleSet)
			}
			return nil, fmt.Errorf("failed to load rule set %s: %w", req.RuleSet, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	seed := randomSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	// Let the session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config, req.Players, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	ruleSetID := req.RuleSet
	if ruleSetID == "" {
		ruleSetID = s.getRuleSetID(config.Name)
	}

	return &GameInfo{
		ID:             session.ID,
		RuleSet:        ruleSetID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetGame retrieves game session information
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID string) (*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(gameID)

	return &GameInfo{
		ID:             session.ID,
		RuleSet:        s.getRuleSetID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListGames returns all active game sessions
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*GameInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &GameInfo{
			ID:             sess.ID,
			RuleSet:        s.getRuleSetID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteGame removes a game session
func (s *gameServiceImpl) DeleteGame(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(gameID)
}

// command runs one engine command against a session, diffs the game log into
// events and persists the session. Every turn, asset and jail command goes
// through here so locking, event extraction and auto-save stay uniform.
func (s *gameServiceImpl) command(gameID string, run func(*engine.Engine) error) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(gameID)

	state := sess.Engine.GetState()
	logMark := len(state.Log)

	if err := run(sess.Engine); err != nil {
		return nil, err
	}

	state = sess.Engine.GetState()
	events := extractEvents(state, logMark)

	if err := s.sessions.Save(gameID); err != nil {
		fmt.Printf("Warning: Failed to persist game %s: %v\n", gameID, err)
	}

	return &CommandResult{
		GameState: state,
		Phase:     state.Turn.Phase,
		Prompt:    state.Turn.Prompt,
		Events:    events,
		GameOver:  sess.Engine.IsGameOver(),
		Winner:    sess.Engine.Winner(),
	}, nil
}

func (s *gameServiceImpl) Roll(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.Roll() })
}

func (s *gameServiceImpl) ResolveTile(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.ResolveTile() })
}

func (s *gameServiceImpl) BuyProperty(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.BuyProperty() })
}

func (s *gameServiceImpl) DeclinePurchase(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.DeclinePurchase() })
}

func (s *gameServiceImpl) PlaceBid(ctx context.Context, gameID string, playerID, amount int) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.PlaceBid(playerID, amount) })
}

func (s *gameServiceImpl) ResolveAuction(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.ResolveAuction() })
}

func (s *gameServiceImpl) EndTurn(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.EndTurn() })
}

func (s *gameServiceImpl) Mortgage(ctx context.Context, gameID string, tileID int) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.Mortgage(tileID) })
}

func (s *gameServiceImpl) Unmortgage(ctx context.Context, gameID string, tileID int) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.Unmortgage(tileID) })
}

func (s *gameServiceImpl) BuildHouse(ctx context.Context, gameID string, tileID int) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.BuildHouse(tileID) })
}

func (s *gameServiceImpl) BuildHotel(ctx context.Context, gameID string, tileID int) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.BuildHotel(tileID) })
}

func (s *gameServiceImpl) SellHouse(ctx context.Context, gameID string, tileID int) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.SellHouse(tileID) })
}

func (s *gameServiceImpl) SellHotel(ctx context.Context, gameID string, tileID int) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.SellHotel(tileID) })
}

func (s *gameServiceImpl) PayJailFine(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.PayJailFine() })
}

func (s *gameServiceImpl) UseJailCard(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.UseJailCard() })
}

func (s *gameServiceImpl) RollForJailDoubles(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.RollForJailDoubles() })
}

func (s *gameServiceImpl) DeclareBankrupt(ctx context.Context, gameID string) (*CommandResult, error) {
	return s.command(gameID, func(e *engine.Engine) error { return e.DeclareBankrupt() })
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, gameID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(gameID)
	return sess.Engine.GetState(), nil
}

// GetLog returns a page of the game's action log
func (s *gameServiceImpl) GetLog(ctx context.Context, gameID string, opts LogOptions) (*LogResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}

	state := sess.Engine.GetState()
	if opts.Since < 0 {
		opts.Since = 0
	}
	if opts.Limit <= 0 || opts.Limit > engine.MaxLogPageSize {
		opts.Limit = engine.MaxLogPageSize
	}

	entries := state.LogPage(opts.Since, opts.Limit)
	if entries == nil {
		entries = []engine.LogEntry{}
	}
	hasMore := false
	if len(entries) > 0 {
		hasMore = entries[len(entries)-1].Seq < len(state.Log)-1
	}

	return &LogResponse{
		Entries: entries,
		Total:   len(state.Log),
		Since:   opts.Since,
		HasMore: hasMore,
	}, nil
}

// ListRuleSets returns available rule sets
func (s *gameServiceImpl) ListRuleSets(ctx context.Context) ([]*RuleSetInfo, error) {
	return s.configs.ListConfigs()
}

// LoadRuleSet loads a specific rule set
func (s *gameServiceImpl) LoadRuleSet(ctx context.Context, name string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(name)
}

// SaveRuleSet saves a rule set to disk
func (s *gameServiceImpl) SaveRuleSet(ctx context.Context, name string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(name, config)
}

// extractEvents converts the log entries appended since mark into events.
func extractEvents(state *engine.GameState, mark int) []GameEvent {
	now := time.Now()
	events := make([]GameEvent, 0, len(state.Log)-mark)
	for _, entry := range state.Log[mark:] {
		events = append(events, GameEvent{
			Seq:       entry.Seq,
			Type:      entry.Action,
			Message:   entry.Detail,
			Player:    entry.Player,
			Timestamp: now,
		})
	}
	return events
}
