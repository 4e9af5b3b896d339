package engine

import "fmt"

// Jail entry and exit rules. Entry always places the player on the jail
// tile with no GO salary and cancels any doubles streak. Exits are commands
// on the Engine (pay fine, use card, roll for doubles) and are only legal
// while the turn phase is PhaseInJail.

// EnterJail sends the player to jail: triggered by the go-to-jail tile, a
// card effect, or the third consecutive doubles of a turn.
func (gs *GameState) EnterJail(playerID int) {
	p := gs.Players[playerID]
	p.Position = JailPosition
	p.InJail = true
	p.JailTurns = 0
	p.ConsecutiveDoubles = 0
	gs.logf(playerID, "jail_enter", fmt.Sprintf("%s goes to jail", p.Name))
}

// releaseFromJail clears the jail flags. Movement after release, if any, is
// the caller's responsibility.
func (gs *GameState) releaseFromJail(playerID int) {
	p := gs.Players[playerID]
	p.InJail = false
	p.JailTurns = 0
	gs.logf(playerID, "jail_leave", fmt.Sprintf("%s leaves jail", p.Name))
}

// returnJailCard puts one spent get-out-of-jail card back on the bottom of
// whichever deck is missing one. Panics if no deck holds a card, since the
// player counter and the deck held piles can only disagree through a bug.
func (gs *GameState) returnJailCard() {
	if gs.Chance.ReturnJailCard() {
		return
	}
	if gs.Community.ReturnJailCard() {
		return
	}
	panic("engine: jail card used but no deck holds one")
}

// jailPrompt builds the JAIL_CHOICE prompt payload for the current player.
func (gs *GameState) jailPrompt(config *GameConfig) *Prompt {
	return &Prompt{
		Kind:         PromptJailChoice,
		Amount:       config.JailFine,
		Counterparty: NoPlayer,
		TileID:       JailPosition,
	}
}
