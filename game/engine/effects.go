package engine

import "fmt"

// The card effect interpreter. Effects are applied immediately when a card
// is drawn; cash shortfalls degrade to pending debt rather than failing, so
// the only errors here are programmer errors (unknown ids, corrupt decks).

// ApplyCardEffect applies a drawn card's effect to the acting player. When
// the effect moves the player onto an actionable tile, that tile is resolved
// once more; the recursion is bounded to one extra hop so adversarial card
// data cannot chain forever.
func (gs *GameState) ApplyCardEffect(playerID int, card Card, config *GameConfig) error {
	p, err := gs.PlayerByID(playerID)
	if err != nil {
		return err
	}
	effect := card.Effect

	switch effect.Kind {
	case EffectMoveTo:
		if err := gs.MoveTo(playerID, effect.Position, true, config); err != nil {
			return err
		}
		return gs.resolveLanding(playerID, 1, config)

	case EffectMoveBy:
		if err := gs.MoveBy(playerID, effect.Steps, config); err != nil {
			return err
		}
		return gs.resolveLanding(playerID, 1, config)

	case EffectPay:
		gs.debitOrDefer(p, effect.Amount, NoPlayer)
		gs.logf(playerID, "card_pay", fmt.Sprintf("%s pays $%d to the bank", p.Name, effect.Amount))

	case EffectCollect:
		gs.credit(p, effect.Amount)
		gs.logf(playerID, "card_collect", fmt.Sprintf("%s collects $%d from the bank", p.Name, effect.Amount))

	case EffectPayEach:
		for _, other := range gs.Players {
			if other.ID == playerID || other.Bankrupt {
				continue
			}
			paid := gs.debitOrDefer(p, effect.Amount, other.ID)
			gs.credit(other, paid)
		}
		gs.logf(playerID, "card_pay_each", fmt.Sprintf("%s pays each player $%d", p.Name, effect.Amount))

	case EffectCollectEach:
		for _, other := range gs.Players {
			if other.ID == playerID || other.Bankrupt {
				continue
			}
			paid := gs.debitOrDefer(other, effect.Amount, playerID)
			gs.credit(p, paid)
		}
		gs.logf(playerID, "card_collect_each", fmt.Sprintf("%s collects $%d from each player", p.Name, effect.Amount))

	case EffectRepairs:
		houses, hotels := gs.CountBuildings(playerID)
		due := houses*effect.PerHouse + hotels*effect.PerHotel
		gs.debitOrDefer(p, due, NoPlayer)
		gs.logf(playerID, "card_repairs", fmt.Sprintf("%s pays $%d for repairs (%d houses, %d hotels)", p.Name, due, houses, hotels))

	case EffectGoToJail:
		gs.EnterJail(playerID)

	case EffectJailFree:
		p.JailCards++
		gs.logf(playerID, "card_jail_free", fmt.Sprintf("%s keeps a Get Out of Jail Free card", p.Name))

	default:
		return fmt.Errorf("%w: card effect %q", ErrNotFound, effect.Kind)
	}
	return nil
}
