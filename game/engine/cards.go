package engine

// CardEffectKind is the closed set of card effects. Adding a variant means
// extending the interpreter switch in effects.go.
type CardEffectKind string

const (
	EffectMoveTo      CardEffectKind = "move_to"
	EffectMoveBy      CardEffectKind = "move_by"
	EffectPay         CardEffectKind = "pay"
	EffectCollect     CardEffectKind = "collect"
	EffectPayEach     CardEffectKind = "pay_each"
	EffectCollectEach CardEffectKind = "collect_each"
	EffectRepairs     CardEffectKind = "repairs"
	EffectGoToJail    CardEffectKind = "go_to_jail"
	EffectJailFree    CardEffectKind = "get_out_of_jail_free"
)

// CardEffect describes what a drawn card does. Only the fields relevant to
// Kind are set.
type CardEffect struct {
	Kind     CardEffectKind `json:"kind"`
	Position int            `json:"position,omitempty"`
	Steps    int            `json:"steps,omitempty"`
	Amount   int            `json:"amount,omitempty"`
	PerHouse int            `json:"per_house,omitempty"`
	PerHotel int            `json:"per_hotel,omitempty"`
}

// Card is an immutable deck entry.
type Card struct {
	ID     string     `json:"id"`
	Text   string     `json:"text"`
	Effect CardEffect `json:"effect"`
}

// chanceCards returns the chance deck contents in canonical (unshuffled)
// order.
func chanceCards() []Card {
	return []Card{
		{ID: "CH01", Text: "Advance to GO. Collect salary.", Effect: CardEffect{Kind: EffectMoveTo, Position: GoPosition}},
		{ID: "CH02", Text: "Advance to Illinois Avenue.", Effect: CardEffect{Kind: EffectMoveTo, Position: 24}},
		{ID: "CH03", Text: "Advance to St. Charles Place.", Effect: CardEffect{Kind: EffectMoveTo, Position: 11}},
		{ID: "CH04", Text: "Advance to New York Avenue.", Effect: CardEffect{Kind: EffectMoveTo, Position: 19}},
		{ID: "CH05", Text: "Take a trip to Reading Railroad.", Effect: CardEffect{Kind: EffectMoveTo, Position: 5}},
		{ID: "CH06", Text: "Take a walk on the Boardwalk.", Effect: CardEffect{Kind: EffectMoveTo, Position: 39}},
		{ID: "CH07", Text: "Go back 3 spaces.", Effect: CardEffect{Kind: EffectMoveBy, Steps: -3}},
		{ID: "CH08", Text: "Go to Jail. Do not pass GO.", Effect: CardEffect{Kind: EffectGoToJail}},
		{ID: "CH09", Text: "Get Out of Jail Free.", Effect: CardEffect{Kind: EffectJailFree}},
		{ID: "CH10", Text: "Bank pays you a dividend of $50.", Effect: CardEffect{Kind: EffectCollect, Amount: 50}},
		{ID: "CH11", Text: "Your building loan matures. Collect $150.", Effect: CardEffect{Kind: EffectCollect, Amount: 150}},
		{ID: "CH12", Text: "Holiday fund matures. Collect $100.", Effect: CardEffect{Kind: EffectCollect, Amount: 100}},
		{ID: "CH13", Text: "Speeding fine. Pay $15.", Effect: CardEffect{Kind: EffectPay, Amount: 15}},
		{ID: "CH14", Text: "Pay school fees of $150.", Effect: CardEffect{Kind: EffectPay, Amount: 150}},
		{ID: "CH15", Text: "Make general repairs on all your property: $25 per house, $100 per hotel.", Effect: CardEffect{Kind: EffectRepairs, PerHouse: 25, PerHotel: 100}},
		{ID: "CH16", Text: "You have been elected chairman of the board. Pay each player $50.", Effect: CardEffect{Kind: EffectPayEach, Amount: 50}},
	}
}

// communityChestCards returns the community chest deck contents in canonical
// order.
func communityChestCards() []Card {
	return []Card{
		{ID: "CC01", Text: "Advance to GO. Collect salary.", Effect: CardEffect{Kind: EffectMoveTo, Position: GoPosition}},
		{ID: "CC02", Text: "Bank error in your favor. Collect $200.", Effect: CardEffect{Kind: EffectCollect, Amount: 200}},
		{ID: "CC03", Text: "Doctor's fees. Pay $50.", Effect: CardEffect{Kind: EffectPay, Amount: 50}},
		{ID: "CC04", Text: "From sale of stock you get $50.", Effect: CardEffect{Kind: EffectCollect, Amount: 50}},
		{ID: "CC05", Text: "Get Out of Jail Free.", Effect: CardEffect{Kind: EffectJailFree}},
		{ID: "CC06", Text: "Go to Jail. Do not pass GO.", Effect: CardEffect{Kind: EffectGoToJail}},
		{ID: "CC07", Text: "Holiday fund matures. Collect $100.", Effect: CardEffect{Kind: EffectCollect, Amount: 100}},
		{ID: "CC08", Text: "Income tax refund. Collect $20.", Effect: CardEffect{Kind: EffectCollect, Amount: 20}},
		{ID: "CC09", Text: "It is your birthday. Collect $10 from every player.", Effect: CardEffect{Kind: EffectCollectEach, Amount: 10}},
		{ID: "CC10", Text: "Life insurance matures. Collect $100.", Effect: CardEffect{Kind: EffectCollect, Amount: 100}},
		{ID: "CC11", Text: "Pay hospital fees of $100.", Effect: CardEffect{Kind: EffectPay, Amount: 100}},
		{ID: "CC12", Text: "Pay school fees of $50.", Effect: CardEffect{Kind: EffectPay, Amount: 50}},
		{ID: "CC13", Text: "Receive $25 consultancy fee.", Effect: CardEffect{Kind: EffectCollect, Amount: 25}},
		{ID: "CC14", Text: "You are assessed for street repairs: $40 per house, $115 per hotel.", Effect: CardEffect{Kind: EffectRepairs, PerHouse: 40, PerHotel: 115}},
		{ID: "CC15", Text: "You have won second prize in a beauty contest. Collect $10.", Effect: CardEffect{Kind: EffectCollect, Amount: 10}},
		{ID: "CC16", Text: "You inherit $100.", Effect: CardEffect{Kind: EffectCollect, Amount: 100}},
	}
}
