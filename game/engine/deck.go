package engine

// Deck is an ordered, shuffled card sequence with draw, discard and held
// piles. Invariant: len(DrawPile)+len(DiscardPile)+len(Held) equals the
// deck's original size at all times. Get-out-of-jail cards bypass the discard
// pile: they sit in Held while a player keeps them and return to the bottom
// of the draw pile when used.
type Deck struct {
	Name        string `json:"name"`
	DrawPile    []Card `json:"draw_pile"`
	DiscardPile []Card `json:"discard_pile"`
	Held        []Card `json:"held,omitempty"`
}

// NewDeck builds a deck from the given cards, shuffled with the seeded dice
// stream.
func NewDeck(name string, cards []Card, dice *DiceState) *Deck {
	d := &Deck{Name: name, DrawPile: make([]Card, len(cards))}
	copy(d.DrawPile, cards)
	dice.Shuffle(len(d.DrawPile), func(i, j int) {
		d.DrawPile[i], d.DrawPile[j] = d.DrawPile[j], d.DrawPile[i]
	})
	return d
}

// Size is the deck's total card count across all piles.
func (d *Deck) Size() int {
	return len(d.DrawPile) + len(d.DiscardPile) + len(d.Held)
}

// DrawCard removes and returns the top card. When the draw pile is empty the
// discard pile is reshuffled back in; if both are empty the deck data is
// corrupt and ErrDeckExhausted is returned.
func (d *Deck) DrawCard(dice *DiceState) (Card, error) {
	if len(d.DrawPile) == 0 {
		if len(d.DiscardPile) == 0 {
			return Card{}, ErrDeckExhausted
		}
		d.DrawPile = d.DiscardPile
		d.DiscardPile = nil
		dice.Shuffle(len(d.DrawPile), func(i, j int) {
			d.DrawPile[i], d.DrawPile[j] = d.DrawPile[j], d.DrawPile[i]
		})
	}
	card := d.DrawPile[0]
	d.DrawPile = d.DrawPile[1:]
	return card, nil
}

// DiscardCard returns a drawn card to the deck. Get-out-of-jail cards are
// retained by the player instead: they move to the held pile and come back
// via ReturnJailCard.
func (d *Deck) DiscardCard(card Card) {
	if card.Effect.Kind == EffectJailFree {
		d.Held = append(d.Held, card)
		return
	}
	d.DiscardPile = append(d.DiscardPile, card)
}

// ReturnJailCard moves one held get-out-of-jail card to the bottom of the
// draw pile. It reports whether a held card was available.
func (d *Deck) ReturnJailCard() bool {
	if len(d.Held) == 0 {
		return false
	}
	card := d.Held[len(d.Held)-1]
	d.Held = d.Held[:len(d.Held)-1]
	d.DrawPile = append(d.DrawPile, card)
	return true
}

// Reset collapses all piles back into a freshly shuffled draw pile.
func (d *Deck) Reset(dice *DiceState) {
	d.DrawPile = append(d.DrawPile, d.DiscardPile...)
	d.DrawPile = append(d.DrawPile, d.Held...)
	d.DiscardPile = nil
	d.Held = nil
	dice.Shuffle(len(d.DrawPile), func(i, j int) {
		d.DrawPile[i], d.DrawPile[j] = d.DrawPile[j], d.DrawPile[i]
	})
}
