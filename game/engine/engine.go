package engine

import "fmt"

// Engine wraps a GameState with its rule configuration and exposes the
// command surface. All mutation goes through Engine methods so phase
// validation cannot be bypassed.
type Engine struct {
	state  *GameState
	config *GameConfig
}

// NewEngine creates an engine for a fresh game. The seed fully determines
// dice rolls and deck order.
func NewEngine(config *GameConfig, playerNames []string, seed int64) (*Engine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if len(playerNames) < config.MinPlayers || len(playerNames) > config.MaxPlayers {
		return nil, fmt.Errorf("game needs between %d and %d players, got %d",
			config.MinPlayers, config.MaxPlayers, len(playerNames))
	}

	return &Engine{
		config: config,
		state:  InitGameStateFromConfig(config, playerNames, seed),
	}, nil
}

// InitGameStateFromConfig builds the starting state: players at GO with
// starting cash, both decks shuffled from the seed, full building stock.
func InitGameStateFromConfig(config *GameConfig, playerNames []string, seed int64) *GameState {
	dice := NewDiceState(seed)
	gs := &GameState{
		Players:    make([]*Player, 0, len(playerNames)),
		Ownership:  make(map[int]*OwnershipRecord),
		Dice:       dice,
		BankHouses: config.HouseStock,
		BankHotels: config.HotelStock,
		RuleSet:    config.Name,
	}
	for i, name := range playerNames {
		gs.Players = append(gs.Players, &Player{
			ID:           i,
			Name:         name,
			Cash:         config.StartingCash,
			Position:     GoPosition,
			DebtCreditor: NoPlayer,
		})
	}
	gs.Chance = NewDeck("chance", chanceCards(), &gs.Dice)
	gs.Community = NewDeck("community_chest", communityChestCards(), &gs.Dice)
	gs.Turn = TurnState{Phase: PhasePreRoll, Current: 0}
	gs.logf(0, "game_start", fmt.Sprintf("game created with %d players, seed %d", len(playerNames), seed))
	return gs
}

// GetState returns the current game state.
func (e *Engine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state, used when loading a persisted game.
func (e *Engine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	return nil
}

// GetConfig returns the rule configuration the engine was created with.
func (e *Engine) GetConfig() *GameConfig {
	return e.config
}

// IsGameOver reports whether the game has finished.
func (e *Engine) IsGameOver() bool {
	return e.state.Turn.Phase == PhaseGameOver
}

// Winner returns the last solvent player once the game is over, nil before.
func (e *Engine) Winner() *Player {
	if !e.IsGameOver() {
		return nil
	}
	return e.state.Winner()
}
