package engine

import "fmt"

// The board registry: a static, immutable description of the 40 standard
// tiles. Lookups never fail for positions in [0, BoardSize); anything else
// is a programmer error and panics.

var standardBoard = [BoardSize]Tile{
	{Position: 0, Name: "GO", Kind: TileGo},
	{Position: 1, Name: "Mediterranean Avenue", Kind: TileProperty, Price: 60, MortgageValue: 30, Rent: [6]int{2, 10, 30, 90, 160, 250}, ColorGroup: "brown", HouseCost: 50},
	{Position: 2, Name: "Community Chest", Kind: TileCommunityChest},
	{Position: 3, Name: "Baltic Avenue", Kind: TileProperty, Price: 60, MortgageValue: 30, Rent: [6]int{4, 20, 60, 180, 320, 450}, ColorGroup: "brown", HouseCost: 50},
	{Position: 4, Name: "Income Tax", Kind: TileTax, TaxAmount: 200},
	{Position: 5, Name: "Reading Railroad", Kind: TileRailroad, Price: 200, MortgageValue: 100},
	{Position: 6, Name: "Oriental Avenue", Kind: TileProperty, Price: 100, MortgageValue: 50, Rent: [6]int{6, 30, 90, 270, 400, 550}, ColorGroup: "light_blue", HouseCost: 50},
	{Position: 7, Name: "Chance", Kind: TileChance},
	{Position: 8, Name: "Vermont Avenue", Kind: TileProperty, Price: 100, MortgageValue: 50, Rent: [6]int{6, 30, 90, 270, 400, 550}, ColorGroup: "light_blue", HouseCost: 50},
	{Position: 9, Name: "Connecticut Avenue", Kind: TileProperty, Price: 120, MortgageValue: 60, Rent: [6]int{8, 40, 100, 300, 450, 600}, ColorGroup: "light_blue", HouseCost: 50},
	{Position: 10, Name: "Jail", Kind: TileJail},
	{Position: 11, Name: "St. Charles Place", Kind: TileProperty, Price: 140, MortgageValue: 70, Rent: [6]int{10, 50, 150, 450, 625, 750}, ColorGroup: "pink", HouseCost: 100},
	{Position: 12, Name: "Electric Company", Kind: TileUtility, Price: 150, MortgageValue: 75},
	{Position: 13, Name: "States Avenue", Kind: TileProperty, Price: 140, MortgageValue: 70, Rent: [6]int{10, 50, 150, 450, 625, 750}, ColorGroup: "pink", HouseCost: 100},
	{Position: 14, Name: "Virginia Avenue", Kind: TileProperty, Price: 160, MortgageValue: 80, Rent: [6]int{12, 60, 180, 500, 700, 900}, ColorGroup: "pink", HouseCost: 100},
	{Position: 15, Name: "Pennsylvania Railroad", Kind: TileRailroad, Price: 200, MortgageValue: 100},
	{Position: 16, Name: "St. James Place", Kind: TileProperty, Price: 180, MortgageValue: 90, Rent: [6]int{14, 70, 200, 550, 750, 950}, ColorGroup: "orange", HouseCost: 100},
	{Position: 17, Name: "Community Chest", Kind: TileCommunityChest},
	{Position: 18, Name: "Tennessee Avenue", Kind: TileProperty, Price: 180, MortgageValue: 90, Rent: [6]int{14, 70, 200, 550, 750, 950}, ColorGroup: "orange", HouseCost: 100},
	{Position: 19, Name: "New York Avenue", Kind: TileProperty, Price: 200, MortgageValue: 100, Rent: [6]int{16, 80, 220, 600, 800, 1000}, ColorGroup: "orange", HouseCost: 100},
	{Position: 20, Name: "Free Parking", Kind: TileFreeParking},
	{Position: 21, Name: "Kentucky Avenue", Kind: TileProperty, Price: 220, MortgageValue: 110, Rent: [6]int{18, 90, 250, 700, 875, 1050}, ColorGroup: "red", HouseCost: 150},
	{Position: 22, Name: "Chance", Kind: TileChance},
	{Position: 23, Name: "Indiana Avenue", Kind: TileProperty, Price: 220, MortgageValue: 110, Rent: [6]int{18, 90, 250, 700, 875, 1050}, ColorGroup: "red", HouseCost: 150},
	{Position: 24, Name: "Illinois Avenue", Kind: TileProperty, Price: 240, MortgageValue: 120, Rent: [6]int{20, 100, 300, 750, 925, 1100}, ColorGroup: "red", HouseCost: 150},
	{Position: 25, Name: "B&O Railroad", Kind: TileRailroad, Price: 200, MortgageValue: 100},
	{Position: 26, Name: "Atlantic Avenue", Kind: TileProperty, Price: 260, MortgageValue: 130, Rent: [6]int{22, 110, 330, 800, 975, 1150}, ColorGroup: "yellow", HouseCost: 150},
	{Position: 27, Name: "Ventnor Avenue", Kind: TileProperty, Price: 260, MortgageValue: 130, Rent: [6]int{22, 110, 330, 800, 975, 1150}, ColorGroup: "yellow", HouseCost: 150},
	{Position: 28, Name: "Water Works", Kind: TileUtility, Price: 150, MortgageValue: 75},
	{Position: 29, Name: "Marvin Gardens", Kind: TileProperty, Price: 280, MortgageValue: 140, Rent: [6]int{24, 120, 360, 850, 1025, 1200}, ColorGroup: "yellow", HouseCost: 150},
	{Position: 30, Name: "Go To Jail", Kind: TileGoToJail},
	{Position: 31, Name: "Pacific Avenue", Kind: TileProperty, Price: 300, MortgageValue: 150, Rent: [6]int{26, 130, 390, 900, 1100, 1275}, ColorGroup: "green", HouseCost: 200},
	{Position: 32, Name: "North Carolina Avenue", Kind: TileProperty, Price: 300, MortgageValue: 150, Rent: [6]int{26, 130, 390, 900, 1100, 1275}, ColorGroup: "green", HouseCost: 200},
	{Position: 33, Name: "Community Chest", Kind: TileCommunityChest},
	{Position: 34, Name: "Pennsylvania Avenue", Kind: TileProperty, Price: 320, MortgageValue: 160, Rent: [6]int{28, 150, 450, 1000, 1200, 1400}, ColorGroup: "green", HouseCost: 200},
	{Position: 35, Name: "Short Line", Kind: TileRailroad, Price: 200, MortgageValue: 100},
	{Position: 36, Name: "Chance", Kind: TileChance},
	{Position: 37, Name: "Park Place", Kind: TileProperty, Price: 350, MortgageValue: 175, Rent: [6]int{35, 175, 500, 1100, 1300, 1500}, ColorGroup: "dark_blue", HouseCost: 200},
	{Position: 38, Name: "Luxury Tax", Kind: TileTax, TaxAmount: 100},
	{Position: 39, Name: "Boardwalk", Kind: TileProperty, Price: 400, MortgageValue: 200, Rent: [6]int{50, 200, 600, 1400, 1700, 2000}, ColorGroup: "dark_blue", HouseCost: 200},
}

// colorGroups maps each color group to its member positions, built once at
// init from the board table.
var colorGroups = buildColorGroups()

func buildColorGroups() map[string][]int {
	groups := make(map[string][]int)
	for _, tile := range standardBoard {
		if tile.Kind == TileProperty {
			groups[tile.ColorGroup] = append(groups[tile.ColorGroup], tile.Position)
		}
	}
	return groups
}

// TileAt returns the tile at the given board position. An out-of-range
// position is a programmer error and panics.
func TileAt(position int) Tile {
	if position < 0 || position >= BoardSize {
		panic(fmt.Sprintf("engine: tile position %d out of range", position))
	}
	return standardBoard[position]
}

// GroupTiles returns the positions of every property in a color group, in
// board order. The returned slice must not be modified.
func GroupTiles(colorGroup string) []int {
	return colorGroups[colorGroup]
}

// RailroadPositions returns the positions of the four railroads.
func RailroadPositions() []int {
	return []int{5, 15, 25, 35}
}

// UtilityPositions returns the positions of the two utilities.
func UtilityPositions() []int {
	return []int{12, 28}
}
