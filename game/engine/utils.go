package engine

// CountBuildings counts a player's houses and hotels across all holdings,
// used for repair assessments and net worth.
func (gs *GameState) CountBuildings(playerID int) (houses, hotels int) {
	for _, rec := range gs.Ownership {
		if rec.Owner != playerID {
			continue
		}
		houses += rec.Houses
		if rec.Hotel {
			hotels++
		}
	}
	return houses, hotels
}

// NetWorth is a player's cash plus the liquidation value of their holdings:
// list price for unmortgaged tiles, mortgage value for mortgaged ones, half
// the house cost per building.
func (gs *GameState) NetWorth(playerID int) int {
	p := gs.Players[playerID]
	total := p.Cash
	for tileID, rec := range gs.Ownership {
		if rec.Owner != playerID {
			continue
		}
		tile := TileAt(tileID)
		if rec.Mortgaged {
			total += tile.MortgageValue
		} else {
			total += tile.Price
		}
		buildings := rec.Houses
		if rec.Hotel {
			buildings = MaxHousesPerTile + 1
		}
		total += buildings * tile.HouseCost / 2
	}
	return total
}

// MonopoliesOf lists the color groups the player fully owns.
func (gs *GameState) MonopoliesOf(playerID int) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, tileID := range gs.HoldingsOf(playerID) {
		group := TileAt(tileID).ColorGroup
		if group == "" || seen[group] {
			continue
		}
		seen[group] = true
		if gs.OwnsGroup(playerID, group) {
			groups = append(groups, group)
		}
	}
	return groups
}

// LogPage returns a page of the action log starting at seq, capped at
// MaxLogPageSize entries.
func (gs *GameState) LogPage(seq, limit int) []LogEntry {
	if limit <= 0 || limit > MaxLogPageSize {
		limit = MaxLogPageSize
	}
	var page []LogEntry
	for _, entry := range gs.Log {
		if entry.Seq < seq {
			continue
		}
		page = append(page, entry)
		if len(page) >= limit {
			break
		}
	}
	return page
}
