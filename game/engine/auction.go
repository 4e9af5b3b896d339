package engine

import "fmt"

// Auction and bankruptcy resolution.

// StartAuction opens bidding on a declined tile at half list price with no
// bidder. Every non-bankrupt player is eligible to bid.
func (gs *GameState) StartAuction(tileID int) error {
	tile := TileAt(tileID)
	if !tile.Ownable() {
		return fmt.Errorf("%w: tile %d is not ownable", ErrNotFound, tileID)
	}
	if rec, ok := gs.Ownership[tileID]; ok && rec.Owner != NoPlayer {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, tile.Name)
	}
	gs.Auction = &Auction{
		TileID:        tileID,
		CurrentBid:    tile.Price / 2,
		CurrentBidder: NoPlayer,
	}
	gs.logf(gs.Turn.Current, "auction_start", fmt.Sprintf("%s goes to auction, bidding opens at $%d", tile.Name, gs.Auction.CurrentBid))
	return nil
}

// PlaceBid records a higher bid from an eligible player who can afford it.
func (gs *GameState) PlaceBid(playerID, amount int) error {
	if gs.Auction == nil {
		return fmt.Errorf("%w: no auction in progress", ErrIllegalTransition)
	}
	p, err := gs.PlayerByID(playerID)
	if err != nil {
		return err
	}
	if p.Bankrupt {
		return fmt.Errorf("%w: %s is bankrupt", ErrIllegalTransition, p.Name)
	}
	if amount <= gs.Auction.CurrentBid {
		return fmt.Errorf("%w: bid $%d does not beat $%d", ErrIllegalTransition, amount, gs.Auction.CurrentBid)
	}
	if p.Cash < amount {
		return fmt.Errorf("%w: %s cannot cover a $%d bid", ErrInsufficientFunds, p.Name, amount)
	}
	gs.Auction.CurrentBid = amount
	gs.Auction.CurrentBidder = playerID
	gs.logf(playerID, "auction_bid", fmt.Sprintf("%s bids $%d on %s", p.Name, amount, TileAt(gs.Auction.TileID).Name))
	return nil
}

// FinishAuction transfers the tile to the highest bidder at their bid price.
// With no bids the tile stays with the bank.
func (gs *GameState) FinishAuction() error {
	if gs.Auction == nil {
		return fmt.Errorf("%w: no auction in progress", ErrIllegalTransition)
	}
	auction := gs.Auction
	gs.Auction = nil
	tile := TileAt(auction.TileID)

	if auction.CurrentBidder == NoPlayer {
		gs.logf(gs.Turn.Current, "auction_pass", fmt.Sprintf("no bids, %s stays with the bank", tile.Name))
		return nil
	}
	winner := gs.Players[auction.CurrentBidder]
	// Affordability was checked when the bid was placed, but asset actions
	// are legal while the auction is pending, so the cash may be gone by
	// now. The bid stays binding: any shortfall defers to pending debt
	// like every other debit.
	gs.debitOrDefer(winner, auction.CurrentBid, NoPlayer)
	gs.record(auction.TileID).Owner = winner.ID
	gs.logf(winner.ID, "auction_won", fmt.Sprintf("%s wins %s for $%d", winner.Name, tile.Name, auction.CurrentBid))
	return nil
}

// DeclareBankrupt removes the player from the game. Holdings transfer to the
// creditor; with no creditor they return to the bank, unowned and
// unmortgaged. Buildings always return to the bank stock. Held jail cards
// follow the holdings: a creditor inherits them, otherwise they rejoin their
// decks.
func (gs *GameState) DeclareBankrupt(playerID, creditorID int) error {
	p, err := gs.PlayerByID(playerID)
	if err != nil {
		return err
	}
	if p.Bankrupt {
		return fmt.Errorf("%w: %s is already bankrupt", ErrIllegalTransition, p.Name)
	}
	var creditor *Player
	if creditorID != NoPlayer {
		creditor, err = gs.PlayerByID(creditorID)
		if err != nil {
			return err
		}
	}

	for _, pos := range gs.HoldingsOf(playerID) {
		rec := gs.Ownership[pos]
		tile := TileAt(pos)
		gs.BankHouses += rec.Houses
		if rec.Hotel {
			gs.BankHotels++
		}
		rec.Houses = 0
		rec.Hotel = false
		if creditor != nil {
			rec.Owner = creditorID
			gs.logf(playerID, "transfer", fmt.Sprintf("%s transfers %s to %s", p.Name, tile.Name, creditor.Name))
		} else {
			rec.Owner = NoPlayer
			rec.Mortgaged = false
			gs.logf(playerID, "transfer", fmt.Sprintf("%s returns %s to the bank", p.Name, tile.Name))
		}
	}

	if creditor != nil {
		creditor.JailCards += p.JailCards
		gs.credit(creditor, p.Cash)
	} else {
		for i := 0; i < p.JailCards; i++ {
			gs.returnJailCard()
		}
	}
	p.JailCards = 0
	p.Cash = 0
	p.PendingDebt = 0
	p.DebtCreditor = NoPlayer
	p.Bankrupt = true
	gs.logf(playerID, "bankrupt", fmt.Sprintf("%s is bankrupt", p.Name))

	if gs.ActivePlayers() <= 1 {
		gs.Turn.Phase = PhaseGameOver
		gs.Turn.Prompt = nil
		gs.Auction = nil
		if w := gs.Winner(); w != nil {
			gs.logf(w.ID, "game_over", fmt.Sprintf("%s wins the game", w.Name))
		}
	}
	return nil
}
