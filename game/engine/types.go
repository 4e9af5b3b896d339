package engine

// TileKind identifies the behavior of a board tile.
type TileKind string

const (
	TileGo             TileKind = "go"
	TileProperty       TileKind = "property"
	TileRailroad       TileKind = "railroad"
	TileUtility        TileKind = "utility"
	TileTax            TileKind = "tax"
	TileChance         TileKind = "chance"
	TileCommunityChest TileKind = "community_chest"
	TileJail           TileKind = "jail"
	TileFreeParking    TileKind = "free_parking"
	TileGoToJail       TileKind = "go_to_jail"
)

const (
	// BoardSize is the number of tiles on the standard board.
	BoardSize = 40

	// Well-known positions on the standard board.
	GoPosition       = 0
	JailPosition     = 10
	GoToJailPosition = 30

	// NoPlayer marks an absent player reference (bank-owned tile, no
	// creditor, no auction bidder).
	NoPlayer = -1

	// MaxHousesPerTile is the development level at which a hotel becomes
	// buildable.
	MaxHousesPerTile = 4

	// Validation constants
	MinPlayersAllowed = 2
	MaxPlayersAllowed = 8
	MaxLogPageSize    = 100
)

// Tile is one immutable entry of the board registry. Price, MortgageValue,
// Rent, ColorGroup and HouseCost are meaningful only for ownable kinds;
// TaxAmount only for TileTax.
type Tile struct {
	Position      int      `json:"position"`
	Name          string   `json:"name"`
	Kind          TileKind `json:"kind"`
	Price         int      `json:"price,omitempty"`
	MortgageValue int      `json:"mortgage_value,omitempty"`
	Rent          [6]int   `json:"rent,omitempty"`
	ColorGroup    string   `json:"color_group,omitempty"`
	HouseCost     int      `json:"house_cost,omitempty"`
	TaxAmount     int      `json:"tax_amount,omitempty"`
}

// Ownable reports whether the tile can be bought, mortgaged and auctioned.
func (t Tile) Ownable() bool {
	return t.Kind == TileProperty || t.Kind == TileRailroad || t.Kind == TileUtility
}

// OwnershipRecord tracks the mutable state of one ownable tile. Records are
// created lazily on first purchase. Houses and Hotel are mutually exclusive:
// Houses resets to 0 when Hotel becomes true.
type OwnershipRecord struct {
	Owner     int  `json:"owner"`
	Mortgaged bool `json:"mortgaged"`
	Houses    int  `json:"houses"`
	Hotel     bool `json:"hotel"`
}

// DevelopmentLevel maps the record to an index into Tile.Rent
// (0 houses .. hotel).
func (r *OwnershipRecord) DevelopmentLevel() int {
	if r.Hotel {
		return 5
	}
	return r.Houses
}

// Player is the per-player ledger entry. Players are created at game start
// and never removed; bankrupt players stay in the slice flagged inactive.
type Player struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Cash               int    `json:"cash"`
	Position           int    `json:"position"`
	InJail             bool   `json:"in_jail"`
	JailTurns          int    `json:"jail_turns"`
	JailCards          int    `json:"jail_cards"`
	ConsecutiveDoubles int    `json:"consecutive_doubles"`
	PendingDebt        int    `json:"pending_debt"`
	DebtCreditor       int    `json:"debt_creditor"`
	Bankrupt           bool   `json:"bankrupt"`
}

// TurnPhase is the resting state of the turn state machine between commands.
type TurnPhase string

const (
	PhasePreRoll       TurnPhase = "pre_roll"
	PhaseInJail        TurnPhase = "in_jail"
	PhaseResolveTile   TurnPhase = "resolve_tile"
	PhaseActionChoices TurnPhase = "action_choices"
	// PhaseTurnOver is reached when only end-turn (and asset management)
	// remains legal this turn, e.g. after triple doubles or a failed jail
	// roll.
	PhaseTurnOver TurnPhase = "turn_over"
	PhaseGameOver TurnPhase = "game_over"
)

// PromptKind names the decision an external caller is expected to supply.
type PromptKind string

const (
	PromptBuyProperty PromptKind = "BUY_PROPERTY"
	PromptPayRent     PromptKind = "PAY_RENT"
	PromptDrawCard    PromptKind = "DRAW_CARD"
	PromptJailChoice  PromptKind = "JAIL_CHOICE"
	PromptAuction     PromptKind = "AUCTION"
)

// Prompt carries enough context for a UI to render the pending decision
// without inspecting engine internals. Counterparty is NoPlayer when the
// bank is the other side.
type Prompt struct {
	Kind         PromptKind `json:"kind"`
	TileID       int        `json:"tile_id,omitempty"`
	Amount       int        `json:"amount,omitempty"`
	Counterparty int        `json:"counterparty"`
	CardText     string     `json:"card_text,omitempty"`
}

// Mandatory reports whether the prompt must be answered before the turn can
// end. PAY_RENT and DRAW_CARD are informational: their debits are applied by
// the engine when the tile resolves.
func (p *Prompt) Mandatory() bool {
	if p == nil {
		return false
	}
	switch p.Kind {
	case PromptBuyProperty, PromptAuction, PromptJailChoice:
		return true
	}
	return false
}

// TurnState is the single source of truth for what the current player may
// legally do next.
type TurnState struct {
	Phase          TurnPhase `json:"phase"`
	Current        int       `json:"current"`
	Die1           int       `json:"die1"`
	Die2           int       `json:"die2"`
	RolledDoubles  bool      `json:"rolled_doubles"`
	LeftJailByRoll bool      `json:"left_jail_by_roll"`
	Prompt         *Prompt   `json:"prompt,omitempty"`
}

// DiceTotal is the sum of the last roll, 0 before the first roll.
func (t *TurnState) DiceTotal() int {
	return t.Die1 + t.Die2
}

// Auction tracks a declined purchase being auctioned off. CurrentBidder is
// NoPlayer until the first bid.
type Auction struct {
	TileID        int `json:"tile_id"`
	CurrentBid    int `json:"current_bid"`
	CurrentBidder int `json:"current_bidder"`
}

// LogEntry is one append-only line of the game log. Entries carry no
// wall-clock time so that replays of the same seed produce identical logs.
type LogEntry struct {
	Seq    int    `json:"seq"`
	Turn   int    `json:"turn"`
	Player int    `json:"player"`
	Action string `json:"action"`
	Detail string `json:"detail"`
}

// GameState is the aggregate root. It owns every piece of mutable game data
// so that a game is fully reconstructable from its serialized form with no
// external references.
type GameState struct {
	Players    []*Player                `json:"players"`
	Ownership  map[int]*OwnershipRecord `json:"ownership"`
	Chance     *Deck                    `json:"chance"`
	Community  *Deck                    `json:"community"`
	Turn       TurnState                `json:"turn"`
	Auction    *Auction                 `json:"auction,omitempty"`
	Dice       DiceState                `json:"dice"`
	BankHouses int                      `json:"bank_houses"`
	BankHotels int                      `json:"bank_hotels"`
	TurnCount  int                      `json:"turn_count"`
	Log        []LogEntry               `json:"log"`
	RuleSet    string                   `json:"rule_set"`
}

// PlayerByID returns the player with the given id or ErrNotFound.
func (gs *GameState) PlayerByID(id int) (*Player, error) {
	if id < 0 || id >= len(gs.Players) {
		return nil, ErrNotFound
	}
	return gs.Players[id], nil
}

// CurrentPlayer returns the player whose turn it is.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.Turn.Current]
}

// ActivePlayers counts the non-bankrupt players still in the game.
func (gs *GameState) ActivePlayers() int {
	n := 0
	for _, p := range gs.Players {
		if !p.Bankrupt {
			n++
		}
	}
	return n
}

// Winner returns the last active player once the game is over, or nil.
func (gs *GameState) Winner() *Player {
	if gs.ActivePlayers() != 1 {
		return nil
	}
	for _, p := range gs.Players {
		if !p.Bankrupt {
			return p
		}
	}
	return nil
}

// HoldingsOf lists the tile positions currently owned by the player, in
// board order.
func (gs *GameState) HoldingsOf(playerID int) []int {
	var tiles []int
	for pos := 0; pos < BoardSize; pos++ {
		if rec, ok := gs.Ownership[pos]; ok && rec.Owner == playerID {
			tiles = append(tiles, pos)
		}
	}
	return tiles
}

// record returns the ownership record for a tile, creating an unowned one on
// first access. Callers must pass an ownable position.
func (gs *GameState) record(tileID int) *OwnershipRecord {
	rec, ok := gs.Ownership[tileID]
	if !ok {
		rec = &OwnershipRecord{Owner: NoPlayer}
		gs.Ownership[tileID] = rec
	}
	return rec
}

// logf appends an entry to the game log.
func (gs *GameState) logf(playerID int, action, detail string) {
	gs.Log = append(gs.Log, LogEntry{
		Seq:    len(gs.Log),
		Turn:   gs.TurnCount,
		Player: playerID,
		Action: action,
		Detail: detail,
	})
}
