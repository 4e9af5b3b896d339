package engine

import "fmt"

// Ownership ledger operations and the cash-movement helpers shared by rent,
// taxes and card effects. Every operation validates before mutating, so a
// returned error always leaves the state unchanged.

// credit adds cash to a player and immediately services any pending debt
// with the new funds.
func (gs *GameState) credit(p *Player, amount int) {
	p.Cash += amount
	gs.settleDebt(p)
}

// debitOrDefer takes up to amount from the player. A shortfall is not an
// error: cash clamps at 0 and the remainder is recorded as pending debt owed
// to creditor (NoPlayer for the bank), deferring the bankruptcy decision to
// an explicit command. Returns the amount actually paid now.
//
// Pending debt is a single total with a single creditor: a new shortfall
// adds to the total and overwrites the recorded creditor, so later
// settlement and bankruptcy route the whole recovery to the most recent
// one.
func (gs *GameState) debitOrDefer(p *Player, amount, creditor int) int {
	paid := amount
	if paid > p.Cash {
		paid = p.Cash
	}
	p.Cash -= paid
	if short := amount - paid; short > 0 {
		p.PendingDebt += short
		p.DebtCreditor = creditor
		gs.logf(p.ID, "debt", fmt.Sprintf("%s short $%d, owed to %s", p.Name, short, gs.partyName(creditor)))
	}
	return paid
}

// settleDebt pays down pending debt from available cash, crediting the
// recorded creditor with whatever is recovered.
func (gs *GameState) settleDebt(p *Player) {
	if p.PendingDebt == 0 || p.Cash == 0 {
		return
	}
	pay := p.PendingDebt
	if pay > p.Cash {
		pay = p.Cash
	}
	p.Cash -= pay
	p.PendingDebt -= pay
	if p.DebtCreditor != NoPlayer {
		creditor := gs.Players[p.DebtCreditor]
		creditor.Cash += pay
		gs.settleDebt(creditor)
	}
	gs.logf(p.ID, "debt_settled", fmt.Sprintf("%s repays $%d to %s", p.Name, pay, gs.partyName(p.DebtCreditor)))
	if p.PendingDebt == 0 {
		p.DebtCreditor = NoPlayer
	}
}

func (gs *GameState) partyName(playerID int) string {
	if playerID == NoPlayer {
		return "the bank"
	}
	return gs.Players[playerID].Name
}

// Purchase transfers an unowned tile to the player at list price.
func (gs *GameState) Purchase(playerID, tileID int) error {
	p, err := gs.PlayerByID(playerID)
	if err != nil {
		return err
	}
	tile := TileAt(tileID)
	if !tile.Ownable() {
		return fmt.Errorf("%w: tile %d is not ownable", ErrNotFound, tileID)
	}
	rec := gs.record(tileID)
	if rec.Owner != NoPlayer {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, tile.Name)
	}
	if p.Cash < tile.Price {
		return fmt.Errorf("%w: %s costs $%d, %s has $%d", ErrInsufficientFunds, tile.Name, tile.Price, p.Name, p.Cash)
	}
	p.Cash -= tile.Price
	rec.Owner = playerID
	gs.logf(playerID, "purchase", fmt.Sprintf("%s buys %s for $%d", p.Name, tile.Name, tile.Price))
	return nil
}

// MortgageTile pledges a tile to the bank for its mortgage value. Developed
// tiles must sell their buildings first.
func (gs *GameState) MortgageTile(playerID, tileID int) error {
	rec, tile, err := gs.ownedRecord(playerID, tileID)
	if err != nil {
		return err
	}
	if rec.Mortgaged {
		return fmt.Errorf("%w: %s", ErrAlreadyMortgaged, tile.Name)
	}
	if rec.Houses > 0 || rec.Hotel {
		return fmt.Errorf("%w: %s still has buildings", ErrIllegalTransition, tile.Name)
	}
	rec.Mortgaged = true
	p := gs.Players[playerID]
	gs.credit(p, tile.MortgageValue)
	gs.logf(playerID, "mortgage", fmt.Sprintf("%s mortgages %s for $%d", p.Name, tile.Name, tile.MortgageValue))
	return nil
}

// UnmortgageTile lifts a mortgage for the mortgage value plus 10% interest,
// rounded down.
func (gs *GameState) UnmortgageTile(playerID, tileID int) error {
	rec, tile, err := gs.ownedRecord(playerID, tileID)
	if err != nil {
		return err
	}
	if !rec.Mortgaged {
		return fmt.Errorf("%w: %s", ErrNotMortgaged, tile.Name)
	}
	cost := tile.MortgageValue + tile.MortgageValue/10
	p := gs.Players[playerID]
	if p.Cash < cost {
		return fmt.Errorf("%w: lifting %s costs $%d", ErrInsufficientFunds, tile.Name, cost)
	}
	p.Cash -= cost
	rec.Mortgaged = false
	gs.logf(playerID, "unmortgage", fmt.Sprintf("%s unmortgages %s for $%d", p.Name, tile.Name, cost))
	return nil
}

// BuildHouse adds one house to a property. Requires the full color group
// (monopoly), an unmortgaged tile, room for another house, bank stock and
// cash.
func (gs *GameState) BuildHouse(playerID, tileID int) error {
	rec, tile, err := gs.ownedRecord(playerID, tileID)
	if err != nil {
		return err
	}
	if tile.Kind != TileProperty {
		return fmt.Errorf("%w: %s cannot be developed", ErrIllegalTransition, tile.Name)
	}
	if !gs.OwnsGroup(playerID, tile.ColorGroup) {
		return fmt.Errorf("%w: %s requires the full %s group", ErrIllegalTransition, tile.Name, tile.ColorGroup)
	}
	if rec.Mortgaged {
		return fmt.Errorf("%w: %s is mortgaged", ErrIllegalTransition, tile.Name)
	}
	if rec.Hotel || rec.Houses >= MaxHousesPerTile {
		return fmt.Errorf("%w: %s is fully developed", ErrIllegalTransition, tile.Name)
	}
	if gs.BankHouses == 0 {
		return fmt.Errorf("%w: no houses left in the bank", ErrIllegalTransition)
	}
	p := gs.Players[playerID]
	if p.Cash < tile.HouseCost {
		return fmt.Errorf("%w: a house on %s costs $%d", ErrInsufficientFunds, tile.Name, tile.HouseCost)
	}
	p.Cash -= tile.HouseCost
	rec.Houses++
	gs.BankHouses--
	gs.logf(playerID, "build_house", fmt.Sprintf("%s builds house %d on %s", p.Name, rec.Houses, tile.Name))
	return nil
}

// BuildHotel upgrades four houses to a hotel. The four houses return to the
// bank stock.
func (gs *GameState) BuildHotel(playerID, tileID int) error {
	rec, tile, err := gs.ownedRecord(playerID, tileID)
	if err != nil {
		return err
	}
	if tile.Kind != TileProperty {
		return fmt.Errorf("%w: %s cannot be developed", ErrIllegalTransition, tile.Name)
	}
	if !gs.OwnsGroup(playerID, tile.ColorGroup) {
		return fmt.Errorf("%w: %s requires the full %s group", ErrIllegalTransition, tile.Name, tile.ColorGroup)
	}
	if rec.Mortgaged {
		return fmt.Errorf("%w: %s is mortgaged", ErrIllegalTransition, tile.Name)
	}
	if rec.Hotel {
		return fmt.Errorf("%w: %s already has a hotel", ErrIllegalTransition, tile.Name)
	}
	if rec.Houses != MaxHousesPerTile {
		return fmt.Errorf("%w: a hotel on %s needs exactly %d houses", ErrIllegalTransition, tile.Name, MaxHousesPerTile)
	}
	if gs.BankHotels == 0 {
		return fmt.Errorf("%w: no hotels left in the bank", ErrIllegalTransition)
	}
	p := gs.Players[playerID]
	if p.Cash < tile.HouseCost {
		return fmt.Errorf("%w: a hotel on %s costs $%d", ErrInsufficientFunds, tile.Name, tile.HouseCost)
	}
	p.Cash -= tile.HouseCost
	rec.Houses = 0
	rec.Hotel = true
	gs.BankHouses += MaxHousesPerTile
	gs.BankHotels--
	gs.logf(playerID, "build_hotel", fmt.Sprintf("%s builds a hotel on %s", p.Name, tile.Name))
	return nil
}

// SellHouse returns one house to the bank for half its build cost.
func (gs *GameState) SellHouse(playerID, tileID int) error {
	rec, tile, err := gs.ownedRecord(playerID, tileID)
	if err != nil {
		return err
	}
	if rec.Houses == 0 {
		return fmt.Errorf("%w: no houses on %s", ErrIllegalTransition, tile.Name)
	}
	rec.Houses--
	gs.BankHouses++
	p := gs.Players[playerID]
	gs.credit(p, tile.HouseCost/2)
	gs.logf(playerID, "sell_house", fmt.Sprintf("%s sells a house on %s for $%d", p.Name, tile.Name, tile.HouseCost/2))
	return nil
}

// SellHotel converts a hotel back into four houses (which must be available
// in the bank stock) for half the hotel's build cost.
func (gs *GameState) SellHotel(playerID, tileID int) error {
	rec, tile, err := gs.ownedRecord(playerID, tileID)
	if err != nil {
		return err
	}
	if !rec.Hotel {
		return fmt.Errorf("%w: no hotel on %s", ErrIllegalTransition, tile.Name)
	}
	if gs.BankHouses < MaxHousesPerTile {
		return fmt.Errorf("%w: bank has no houses to replace the hotel", ErrIllegalTransition)
	}
	rec.Hotel = false
	rec.Houses = MaxHousesPerTile
	gs.BankHouses -= MaxHousesPerTile
	gs.BankHotels++
	p := gs.Players[playerID]
	gs.credit(p, tile.HouseCost/2)
	gs.logf(playerID, "sell_hotel", fmt.Sprintf("%s sells the hotel on %s for $%d", p.Name, tile.Name, tile.HouseCost/2))
	return nil
}

// OwnsGroup reports whether the player owns every property in the color
// group.
func (gs *GameState) OwnsGroup(playerID int, colorGroup string) bool {
	members := GroupTiles(colorGroup)
	if len(members) == 0 {
		return false
	}
	for _, pos := range members {
		rec, ok := gs.Ownership[pos]
		if !ok || rec.Owner != playerID {
			return false
		}
	}
	return true
}

// ownedRecord resolves a tile the given player must own.
func (gs *GameState) ownedRecord(playerID, tileID int) (*OwnershipRecord, Tile, error) {
	if _, err := gs.PlayerByID(playerID); err != nil {
		return nil, Tile{}, err
	}
	if tileID < 0 || tileID >= BoardSize {
		return nil, Tile{}, fmt.Errorf("%w: tile %d", ErrNotFound, tileID)
	}
	tile := TileAt(tileID)
	if !tile.Ownable() {
		return nil, Tile{}, fmt.Errorf("%w: tile %d is not ownable", ErrNotFound, tileID)
	}
	rec, ok := gs.Ownership[tileID]
	if !ok || rec.Owner != playerID {
		return nil, Tile{}, fmt.Errorf("%w: %s", ErrNotOwned, tile.Name)
	}
	return rec, tile, nil
}
