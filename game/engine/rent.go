package engine

// Rent computation. ComputeRent is a pure function of the tile, the owner's
// holdings and the dice total; callers are responsible for skipping the call
// when the lander owns the tile.

var railroadRent = map[int]int{1: 25, 2: 50, 3: 100, 4: 200}

// ComputeRent returns the rent owed for landing on an owned tile. Mortgaged
// tiles always rent for 0. Utility rent needs the dice total of the landing
// roll; passing 0 yields 0.
func (gs *GameState) ComputeRent(tileID, diceTotal int) int {
	tile := TileAt(tileID)
	rec, ok := gs.Ownership[tileID]
	if !ok || rec.Owner == NoPlayer || rec.Mortgaged {
		return 0
	}

	switch tile.Kind {
	case TileProperty:
		rent := tile.Rent[rec.DevelopmentLevel()]
		if rec.DevelopmentLevel() == 0 && gs.OwnsGroup(rec.Owner, tile.ColorGroup) {
			rent *= 2
		}
		return rent

	case TileRailroad:
		count := 0
		for _, pos := range RailroadPositions() {
			if r, ok := gs.Ownership[pos]; ok && r.Owner == rec.Owner && !r.Mortgaged {
				count++
			}
		}
		return railroadRent[count]

	case TileUtility:
		both := true
		for _, pos := range UtilityPositions() {
			if r, ok := gs.Ownership[pos]; !ok || r.Owner != rec.Owner {
				both = false
			}
		}
		multiplier := 4
		if both {
			multiplier = 10
		}
		return diceTotal * multiplier
	}
	return 0
}
