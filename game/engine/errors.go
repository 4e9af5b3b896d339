package engine

import "errors"

// Typed failures returned by engine commands. All of them leave the game
// state untouched: commands validate every precondition before mutating.
var (
	// ErrIllegalTransition means the command is not valid for the current
	// phase or player.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrNotFound means an unknown player, tile or card id was supplied.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientFunds is recoverable: the caller may liquidate assets
	// or trigger an auction instead.
	ErrInsufficientFunds = errors.New("insufficient funds")

	ErrAlreadyOwned     = errors.New("tile already owned")
	ErrNotOwned         = errors.New("tile not owned")
	ErrAlreadyMortgaged = errors.New("tile already mortgaged")
	ErrNotMortgaged     = errors.New("tile not mortgaged")

	// ErrDeckExhausted indicates both draw and discard piles are empty. It
	// should never surface in a well-formed game and signals a
	// data-integrity bug.
	ErrDeckExhausted = errors.New("deck exhausted")

	// ErrGameOver means the game has a winner and accepts no further
	// commands.
	ErrGameOver = errors.New("game over")
)
