package engine

import "fmt"

// The turn state machine: the command surface that sequences movement,
// landing resolution, auctions, jail and turn rotation into legal phase
// transitions. Every command validates the phase first; out-of-phase
// commands fail with ErrIllegalTransition and mutate nothing.

// Roll rolls the dice for the current player, tracks doubles, and moves the
// player. Three consecutive doubles send the roller to jail without moving
// them by the third roll.
func (e *Engine) Roll() error {
	gs := e.state
	if err := e.requirePhase(PhasePreRoll); err != nil {
		return err
	}
	p := gs.CurrentPlayer()

	d1, d2 := gs.Dice.Roll2d6()
	gs.Turn.Die1, gs.Turn.Die2 = d1, d2
	gs.Turn.RolledDoubles = d1 == d2
	gs.logf(p.ID, "roll", fmt.Sprintf("%s rolls %d+%d", p.Name, d1, d2))

	if gs.Turn.RolledDoubles {
		p.ConsecutiveDoubles++
		if p.ConsecutiveDoubles >= 3 {
			gs.logf(p.ID, "speeding", fmt.Sprintf("%s rolls a third consecutive double", p.Name))
			gs.EnterJail(p.ID)
			gs.Turn.RolledDoubles = false
			gs.Turn.Phase = PhaseTurnOver
			return nil
		}
	} else {
		p.ConsecutiveDoubles = 0
	}

	return gs.MoveBy(p.ID, gs.Turn.DiceTotal(), e.config)
}

// ResolveTile resolves the tile the current player landed on: rent and taxes
// are debited immediately, cards are drawn and applied, ownable unowned
// tiles raise the buy prompt. The turn then rests in PhaseActionChoices.
func (e *Engine) ResolveTile() error {
	gs := e.state
	if err := e.requirePhase(PhaseResolveTile); err != nil {
		return err
	}
	p := gs.CurrentPlayer()
	if err := gs.resolveLanding(p.ID, 0, e.config); err != nil {
		return err
	}
	if gs.Turn.Phase == PhaseResolveTile {
		if p.InJail {
			// Jailed mid-resolution: the player may only manage assets
			// and end the turn.
			gs.Turn.Phase = PhaseTurnOver
			gs.Turn.RolledDoubles = false
		} else {
			gs.Turn.Phase = PhaseActionChoices
		}
	}
	return nil
}

// resolveLanding dispatches on the tile under the player. depth bounds card
// chains: a card tile reached through a card effect is not drawn from again.
func (gs *GameState) resolveLanding(playerID, depth int, config *GameConfig) error {
	p := gs.Players[playerID]
	tile := TileAt(p.Position)
	gs.Turn.Prompt = nil

	switch tile.Kind {
	case TileProperty, TileRailroad, TileUtility:
		rec, owned := gs.Ownership[tile.Position]
		if !owned || rec.Owner == NoPlayer {
			gs.Turn.Prompt = &Prompt{
				Kind:         PromptBuyProperty,
				TileID:       tile.Position,
				Amount:       tile.Price,
				Counterparty: NoPlayer,
			}
			return nil
		}
		if rec.Owner == playerID || rec.Mortgaged || gs.Players[rec.Owner].Bankrupt {
			// Own tile, mortgaged tile or defunct owner: no rent event.
			return nil
		}
		rent := gs.ComputeRent(tile.Position, gs.Turn.DiceTotal())
		owner := gs.Players[rec.Owner]
		paid := gs.debitOrDefer(p, rent, owner.ID)
		gs.credit(owner, paid)
		gs.logf(playerID, "rent", fmt.Sprintf("%s pays $%d rent to %s for %s", p.Name, rent, owner.Name, tile.Name))
		gs.Turn.Prompt = &Prompt{
			Kind:         PromptPayRent,
			TileID:       tile.Position,
			Amount:       rent,
			Counterparty: owner.ID,
		}
		return nil

	case TileTax:
		gs.debitOrDefer(p, tile.TaxAmount, NoPlayer)
		gs.logf(playerID, "tax", fmt.Sprintf("%s pays $%d %s", p.Name, tile.TaxAmount, tile.Name))
		return nil

	case TileChance, TileCommunityChest:
		if depth > 0 {
			// Bounded to one extra hop: no chained draws.
			return nil
		}
		deck := gs.Community
		if tile.Kind == TileChance {
			deck = gs.Chance
		}
		card, err := deck.DrawCard(&gs.Dice)
		if err != nil {
			return err
		}
		gs.logf(playerID, "draw_card", fmt.Sprintf("%s draws %q", p.Name, card.Text))
		prompt := &Prompt{
			Kind:         PromptDrawCard,
			TileID:       tile.Position,
			Counterparty: NoPlayer,
			CardText:     card.Text,
		}
		if err := gs.ApplyCardEffect(playerID, card, config); err != nil {
			return err
		}
		deck.DiscardCard(card)
		// A card that moved the player may have raised its own prompt.
		if gs.Turn.Prompt == nil {
			gs.Turn.Prompt = prompt
		}
		return nil

	case TileGoToJail:
		gs.EnterJail(playerID)
		return nil

	default:
		// GO, jail (just visiting), free parking: nothing to do.
		return nil
	}
}

// BuyProperty accepts the pending purchase prompt at list price.
func (e *Engine) BuyProperty() error {
	gs := e.state
	prompt, err := e.requirePrompt(PromptBuyProperty)
	if err != nil {
		return err
	}
	if err := gs.Purchase(gs.Turn.Current, prompt.TileID); err != nil {
		return err
	}
	gs.Turn.Prompt = nil
	return nil
}

// DeclinePurchase declines the pending purchase. With auctions enabled the
// tile goes to auction; otherwise it simply stays with the bank. The engine
// never auto-resolves the decision: it waits for explicit commands.
func (e *Engine) DeclinePurchase() error {
	gs := e.state
	prompt, err := e.requirePrompt(PromptBuyProperty)
	if err != nil {
		return err
	}
	gs.logf(gs.Turn.Current, "decline", fmt.Sprintf("%s declines %s", gs.CurrentPlayer().Name, TileAt(prompt.TileID).Name))
	gs.Turn.Prompt = nil
	if !e.config.AuctionOnDecline {
		return nil
	}
	if err := gs.StartAuction(prompt.TileID); err != nil {
		return err
	}
	gs.Turn.Prompt = &Prompt{
		Kind:         PromptAuction,
		TileID:       prompt.TileID,
		Amount:       gs.Auction.CurrentBid,
		Counterparty: NoPlayer,
	}
	return nil
}

// PlaceBid submits an auction bid on behalf of any eligible player.
func (e *Engine) PlaceBid(playerID, amount int) error {
	gs := e.state
	if _, err := e.requirePrompt(PromptAuction); err != nil {
		return err
	}
	if err := gs.PlaceBid(playerID, amount); err != nil {
		return err
	}
	gs.Turn.Prompt.Amount = gs.Auction.CurrentBid
	return nil
}

// ResolveAuction closes the auction and hands the tile to the highest
// bidder, if any.
func (e *Engine) ResolveAuction() error {
	gs := e.state
	if _, err := e.requirePrompt(PromptAuction); err != nil {
		return err
	}
	if err := gs.FinishAuction(); err != nil {
		return err
	}
	gs.Turn.Prompt = nil
	return nil
}

// Mortgage pledges one of the current player's tiles to the bank.
func (e *Engine) Mortgage(tileID int) error {
	if err := e.requireAssetPhase(); err != nil {
		return err
	}
	return e.state.MortgageTile(e.state.Turn.Current, tileID)
}

// Unmortgage lifts a mortgage on one of the current player's tiles.
func (e *Engine) Unmortgage(tileID int) error {
	if err := e.requireAssetPhase(); err != nil {
		return err
	}
	return e.state.UnmortgageTile(e.state.Turn.Current, tileID)
}

// BuildHouse builds a house for the current player.
func (e *Engine) BuildHouse(tileID int) error {
	if err := e.requireAssetPhase(); err != nil {
		return err
	}
	return e.state.BuildHouse(e.state.Turn.Current, tileID)
}

// BuildHotel builds a hotel for the current player.
func (e *Engine) BuildHotel(tileID int) error {
	if err := e.requireAssetPhase(); err != nil {
		return err
	}
	return e.state.BuildHotel(e.state.Turn.Current, tileID)
}

// SellHouse sells a house back to the bank for the current player.
func (e *Engine) SellHouse(tileID int) error {
	if err := e.requireAssetPhase(); err != nil {
		return err
	}
	return e.state.SellHouse(e.state.Turn.Current, tileID)
}

// SellHotel sells a hotel back to the bank for the current player.
func (e *Engine) SellHotel(tileID int) error {
	if err := e.requireAssetPhase(); err != nil {
		return err
	}
	return e.state.SellHotel(e.state.Turn.Current, tileID)
}

// PayJailFine buys the current player out of jail. The player then rolls a
// normal turn.
func (e *Engine) PayJailFine() error {
	gs := e.state
	if err := e.requirePhase(PhaseInJail); err != nil {
		return err
	}
	p := gs.CurrentPlayer()
	if p.Cash < e.config.JailFine {
		return fmt.Errorf("%w: the fine is $%d", ErrInsufficientFunds, e.config.JailFine)
	}
	p.Cash -= e.config.JailFine
	gs.logf(p.ID, "jail_fine", fmt.Sprintf("%s pays the $%d fine", p.Name, e.config.JailFine))
	gs.releaseFromJail(p.ID)
	gs.Turn.Prompt = nil
	gs.Turn.Phase = PhasePreRoll
	return nil
}

// UseJailCard spends a held get-out-of-jail card. The card returns to the
// bottom of its deck.
func (e *Engine) UseJailCard() error {
	gs := e.state
	if err := e.requirePhase(PhaseInJail); err != nil {
		return err
	}
	p := gs.CurrentPlayer()
	if p.JailCards == 0 {
		return fmt.Errorf("%w: %s holds no jail card", ErrIllegalTransition, p.Name)
	}
	p.JailCards--
	gs.returnJailCard()
	gs.logf(p.ID, "jail_card", fmt.Sprintf("%s uses a Get Out of Jail Free card", p.Name))
	gs.releaseFromJail(p.ID)
	gs.Turn.Prompt = nil
	gs.Turn.Phase = PhasePreRoll
	return nil
}

// RollForJailDoubles attempts the doubles exit. Doubles release the player
// and move them by the roll, with no extra turn afterwards (standard rules).
// A failed attempt at the turn limit forces the fine and still moves the
// player; earlier failures end the turn.
func (e *Engine) RollForJailDoubles() error {
	gs := e.state
	if err := e.requirePhase(PhaseInJail); err != nil {
		return err
	}
	p := gs.CurrentPlayer()

	d1, d2 := gs.Dice.Roll2d6()
	gs.Turn.Die1, gs.Turn.Die2 = d1, d2
	gs.Turn.RolledDoubles = d1 == d2
	gs.Turn.Prompt = nil
	gs.logf(p.ID, "jail_roll", fmt.Sprintf("%s rolls %d+%d for doubles", p.Name, d1, d2))

	if gs.Turn.RolledDoubles {
		gs.Turn.LeftJailByRoll = true
		gs.releaseFromJail(p.ID)
		return gs.MoveBy(p.ID, gs.Turn.DiceTotal(), e.config)
	}

	p.JailTurns++
	if p.JailTurns >= e.config.MaxJailTurns {
		// Out of attempts: the fine is forced and the roll still counts.
		gs.debitOrDefer(p, e.config.JailFine, NoPlayer)
		gs.logf(p.ID, "jail_fine", fmt.Sprintf("%s is forced to pay the $%d fine", p.Name, e.config.JailFine))
		gs.Turn.LeftJailByRoll = true
		gs.releaseFromJail(p.ID)
		return gs.MoveBy(p.ID, gs.Turn.DiceTotal(), e.config)
	}

	gs.logf(p.ID, "jail_stay", fmt.Sprintf("%s stays in jail (attempt %d of %d)", p.Name, p.JailTurns, e.config.MaxJailTurns))
	gs.Turn.Phase = PhaseTurnOver
	return nil
}

// DeclareBankrupt resolves the current player's pending debt by forfeiting
// the game. Holdings go to the recorded creditor, or back to the bank.
func (e *Engine) DeclareBankrupt() error {
	gs := e.state
	if gs.Turn.Phase == PhaseGameOver {
		return ErrGameOver
	}
	p := gs.CurrentPlayer()
	if p.PendingDebt == 0 {
		return fmt.Errorf("%w: %s has no debt to resolve", ErrIllegalTransition, p.Name)
	}
	creditor := p.DebtCreditor
	if err := gs.DeclareBankrupt(p.ID, creditor); err != nil {
		return err
	}
	if gs.Turn.Phase != PhaseGameOver {
		gs.advanceTurn(e.config)
	}
	return nil
}

// EndTurn finishes the current player's turn. Doubles grant the same player
// another roll unless they were rolled to leave jail or landed the player in
// jail. A mandatory prompt or unresolved debt blocks the command.
func (e *Engine) EndTurn() error {
	gs := e.state
	switch gs.Turn.Phase {
	case PhaseActionChoices, PhaseTurnOver:
	case PhaseGameOver:
		return ErrGameOver
	default:
		return fmt.Errorf("%w: cannot end turn during %s", ErrIllegalTransition, gs.Turn.Phase)
	}
	p := gs.CurrentPlayer()
	if gs.Turn.Prompt.Mandatory() {
		return fmt.Errorf("%w: %s prompt must be answered first", ErrIllegalTransition, gs.Turn.Prompt.Kind)
	}
	if p.PendingDebt > 0 {
		return fmt.Errorf("%w: $%d debt must be settled or bankruptcy declared", ErrIllegalTransition, p.PendingDebt)
	}
	gs.Turn.Prompt = nil

	if gs.Turn.RolledDoubles && !gs.Turn.LeftJailByRoll && !p.InJail && !p.Bankrupt {
		gs.logf(p.ID, "extra_roll", fmt.Sprintf("%s rolled doubles and goes again", p.Name))
		gs.Turn.Phase = PhasePreRoll
		gs.Turn.RolledDoubles = false
		return nil
	}

	gs.advanceTurn(e.config)
	return nil
}

// advanceTurn rotates to the next non-bankrupt player and re-arms the phase
// for them.
func (gs *GameState) advanceTurn(config *GameConfig) {
	if gs.ActivePlayers() <= 1 {
		gs.Turn.Phase = PhaseGameOver
		gs.Turn.Prompt = nil
		return
	}
	current := gs.CurrentPlayer()
	current.ConsecutiveDoubles = 0

	next := gs.Turn.Current
	for {
		next = (next + 1) % len(gs.Players)
		if !gs.Players[next].Bankrupt {
			break
		}
	}
	gs.Turn.Current = next
	gs.Turn.Die1, gs.Turn.Die2 = 0, 0
	gs.Turn.RolledDoubles = false
	gs.Turn.LeftJailByRoll = false
	gs.Turn.Prompt = nil
	gs.TurnCount++

	p := gs.Players[next]
	if p.InJail {
		gs.Turn.Phase = PhaseInJail
		gs.Turn.Prompt = gs.jailPrompt(config)
	} else {
		gs.Turn.Phase = PhasePreRoll
	}
	gs.logf(p.ID, "turn_start", fmt.Sprintf("%s's turn", p.Name))
}

// requirePhase rejects a command issued outside the given phase.
func (e *Engine) requirePhase(phase TurnPhase) error {
	current := e.state.Turn.Phase
	if current == PhaseGameOver {
		return ErrGameOver
	}
	if current != phase {
		return fmt.Errorf("%w: command requires %s, game is in %s", ErrIllegalTransition, phase, current)
	}
	return nil
}

// requireAssetPhase gates asset management (mortgage, build, sell), legal
// whenever the current player is choosing actions or winding down a turn.
func (e *Engine) requireAssetPhase() error {
	switch e.state.Turn.Phase {
	case PhaseActionChoices, PhaseTurnOver:
		return nil
	case PhaseGameOver:
		return ErrGameOver
	default:
		return fmt.Errorf("%w: assets can only be managed after moving", ErrIllegalTransition)
	}
}

// requirePrompt rejects a command unless the given prompt is pending.
func (e *Engine) requirePrompt(kind PromptKind) (*Prompt, error) {
	if e.state.Turn.Phase == PhaseGameOver {
		return nil, ErrGameOver
	}
	prompt := e.state.Turn.Prompt
	if prompt == nil || prompt.Kind != kind {
		return nil, fmt.Errorf("%w: no pending %s prompt", ErrIllegalTransition, kind)
	}
	return prompt, nil
}
