package engine

import "fmt"

// Movement resolution. Both MoveBy and MoveTo wrap the position modulo the
// board size, credit the GO salary exactly once when the path crosses GO
// going forward, and leave the turn in PhaseResolveTile. A jailed player is
// never moved by generic movement; jail exits are a distinct code path in
// jail.go.

// MoveBy advances the player by steps tiles (negative steps move backwards
// and never earn the GO salary).
func (gs *GameState) MoveBy(playerID, steps int, config *GameConfig) error {
	p, err := gs.PlayerByID(playerID)
	if err != nil {
		return err
	}
	if p.InJail {
		return fmt.Errorf("%w: %s is in jail", ErrIllegalTransition, p.Name)
	}
	from := p.Position
	p.Position = ((p.Position+steps)%BoardSize + BoardSize) % BoardSize
	// Forward wraparound means the path crossed GO.
	if steps > 0 && p.Position < from {
		gs.credit(p, config.GoSalary)
		gs.logf(playerID, "go_salary", fmt.Sprintf("%s passes GO, collects $%d", p.Name, config.GoSalary))
	}
	gs.logf(playerID, "move", fmt.Sprintf("%s moves from %s to %s", p.Name, TileAt(from).Name, TileAt(p.Position).Name))
	gs.Turn.Phase = PhaseResolveTile
	return nil
}

// MoveTo places the player on an absolute position. A target numerically
// below the current position is the wraparound signal: the GO salary is
// granted when grantGoBonus is set.
func (gs *GameState) MoveTo(playerID, position int, grantGoBonus bool, config *GameConfig) error {
	p, err := gs.PlayerByID(playerID)
	if err != nil {
		return err
	}
	if p.InJail {
		return fmt.Errorf("%w: %s is in jail", ErrIllegalTransition, p.Name)
	}
	if position < 0 || position >= BoardSize {
		return fmt.Errorf("%w: position %d", ErrNotFound, position)
	}
	from := p.Position
	p.Position = position
	if grantGoBonus && position < from {
		gs.credit(p, config.GoSalary)
		gs.logf(playerID, "go_salary", fmt.Sprintf("%s passes GO, collects $%d", p.Name, config.GoSalary))
	}
	gs.logf(playerID, "move", fmt.Sprintf("%s moves from %s to %s", p.Name, TileAt(from).Name, TileAt(position).Name))
	gs.Turn.Phase = PhaseResolveTile
	return nil
}
