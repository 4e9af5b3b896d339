package engine

import (
	"errors"
	"testing"
)

func TestRoll_TripleDoublesGoToJail(t *testing.T) {
	seed := findSeed(t, true)
	eng := newTestEngine(t, seed)
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	p.ConsecutiveDoubles = 2

	if err := eng.Roll(); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	if !p.InJail {
		t.Fatal("player should be in jail after third consecutive doubles")
	}
	if p.Position != JailPosition {
		t.Errorf("position = %d, want jail tile %d", p.Position, JailPosition)
	}
	if p.ConsecutiveDoubles != 0 {
		t.Errorf("doubles streak = %d, want 0", p.ConsecutiveDoubles)
	}
	if gs.Turn.Phase != PhaseTurnOver {
		t.Errorf("phase = %s, want %s", gs.Turn.Phase, PhaseTurnOver)
	}
	if gs.Turn.RolledDoubles {
		t.Error("the jailing roll must not grant an extra turn")
	}
}

func TestRoll_DoublesTrackStreak(t *testing.T) {
	seed := findSeed(t, true)
	eng := newTestEngine(t, seed)
	gs := eng.GetState()

	if err := eng.Roll(); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	p := gs.CurrentPlayer()
	if p.ConsecutiveDoubles != 1 {
		t.Errorf("doubles streak = %d, want 1", p.ConsecutiveDoubles)
	}
	if !gs.Turn.RolledDoubles {
		t.Error("RolledDoubles flag not set")
	}
	if p.InJail {
		t.Error("a first or second doubles still moves the player")
	}
}

func TestEndTurn_DoublesGrantExtraRoll(t *testing.T) {
	// Doubles landing on an ownable tile, so the only prompt is the buy.
	seed := findSeedWhere(t, func(d1, d2 int) bool {
		return d1 == d2 && TileAt(d1+d2).Ownable()
	})
	eng := newTestEngine(t, seed)
	gs := eng.GetState()

	if err := eng.Roll(); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if err := eng.BuyProperty(); err != nil {
		t.Fatalf("BuyProperty failed: %v", err)
	}
	if err := eng.EndTurn(); err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}

	if gs.Turn.Current != 0 {
		t.Errorf("turn passed to player %d, doubles should keep player 0", gs.Turn.Current)
	}
	if gs.Turn.Phase != PhasePreRoll {
		t.Errorf("phase = %s, want %s", gs.Turn.Phase, PhasePreRoll)
	}
}

func TestEndTurn_NoDoublesRotates(t *testing.T) {
	seed := findSeedWhere(t, func(d1, d2 int) bool {
		return d1 != d2 && TileAt(d1+d2).Ownable()
	})
	eng := newTestEngine(t, seed)
	gs := eng.GetState()

	if err := eng.Roll(); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if err := eng.BuyProperty(); err != nil {
		t.Fatalf("BuyProperty failed: %v", err)
	}
	turnCount := gs.TurnCount
	if err := eng.EndTurn(); err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}

	if gs.Turn.Current != 1 {
		t.Errorf("current player = %d, want 1", gs.Turn.Current)
	}
	if gs.TurnCount != turnCount+1 {
		t.Errorf("turn count = %d, want %d", gs.TurnCount, turnCount+1)
	}
	if gs.Turn.Phase != PhasePreRoll {
		t.Errorf("phase = %s, want %s", gs.Turn.Phase, PhasePreRoll)
	}
	if gs.Turn.Die1 != 0 || gs.Turn.Die2 != 0 {
		t.Error("dice not cleared for the next player")
	}
}

func TestEndTurn_BlockedByMandatoryPrompt(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	gs.Turn.Phase = PhaseActionChoices
	gs.Turn.Prompt = &Prompt{Kind: PromptBuyProperty, TileID: 1, Amount: 60, Counterparty: NoPlayer}

	if err := eng.EndTurn(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("EndTurn with pending purchase: error = %v, want ErrIllegalTransition", err)
	}
}

func TestEndTurn_BlockedByPendingDebt(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	gs.Turn.Phase = PhaseActionChoices
	gs.CurrentPlayer().PendingDebt = 40
	gs.CurrentPlayer().DebtCreditor = 1

	if err := eng.EndTurn(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("EndTurn with pending debt: error = %v, want ErrIllegalTransition", err)
	}
}

func TestEndTurn_InformationalPromptDoesNotBlock(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	gs.Turn.Phase = PhaseActionChoices
	gs.Turn.Prompt = &Prompt{Kind: PromptPayRent, TileID: 39, Amount: 50, Counterparty: 1}

	if err := eng.EndTurn(); err != nil {
		t.Fatalf("EndTurn with informational prompt failed: %v", err)
	}
}

func TestEndTurn_SkipsBankruptPlayers(t *testing.T) {
	eng, err := NewEngine(createTestConfig(), []string{"a", "b", "c"}, 42)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	gs := eng.GetState()
	gs.Players[1].Bankrupt = true
	gs.Turn.Phase = PhaseActionChoices

	if err := eng.EndTurn(); err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}
	if gs.Turn.Current != 2 {
		t.Errorf("current player = %d, want 2 (skipping bankrupt player 1)", gs.Turn.Current)
	}
}

func TestEndTurn_NextPlayerInJailGetsJailPhase(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	gs.EnterJail(1)
	gs.Turn.Phase = PhaseActionChoices

	if err := eng.EndTurn(); err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}
	if gs.Turn.Phase != PhaseInJail {
		t.Errorf("phase = %s, want %s", gs.Turn.Phase, PhaseInJail)
	}
	if gs.Turn.Prompt == nil || gs.Turn.Prompt.Kind != PromptJailChoice {
		t.Errorf("prompt = %+v, want JAIL_CHOICE", gs.Turn.Prompt)
	}
	if gs.Turn.Prompt.Amount != 50 {
		t.Errorf("jail prompt amount = %d, want fine 50", gs.Turn.Prompt.Amount)
	}
}

func TestResolveTile_UnownedPropertyPrompts(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	p.Position = 39 // Boardwalk
	gs.Turn.Phase = PhaseResolveTile

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	prompt := gs.Turn.Prompt
	if prompt == nil || prompt.Kind != PromptBuyProperty {
		t.Fatalf("prompt = %+v, want BUY_PROPERTY", prompt)
	}
	if prompt.TileID != 39 || prompt.Amount != 400 {
		t.Errorf("prompt tile/amount = %d/$%d, want 39/$400", prompt.TileID, prompt.Amount)
	}
	if gs.Turn.Phase != PhaseActionChoices {
		t.Errorf("phase = %s, want %s", gs.Turn.Phase, PhaseActionChoices)
	}
}

func TestResolveTile_RentDebitedImmediately(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	gs.record(39).Owner = 1
	p := gs.CurrentPlayer()
	p.Position = 39
	gs.Turn.Phase = PhaseResolveTile
	gs.Turn.Die1, gs.Turn.Die2 = 3, 4

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if p.Cash != 1450 {
		t.Errorf("lander cash = %d, want 1450 after $50 base rent", p.Cash)
	}
	if gs.Players[1].Cash != 1550 {
		t.Errorf("owner cash = %d, want 1550", gs.Players[1].Cash)
	}
	prompt := gs.Turn.Prompt
	if prompt == nil || prompt.Kind != PromptPayRent {
		t.Fatalf("prompt = %+v, want PAY_RENT", prompt)
	}
	if prompt.Mandatory() {
		t.Error("PAY_RENT prompt must be informational")
	}
	if prompt.Amount != 50 || prompt.Counterparty != 1 {
		t.Errorf("prompt amount/counterparty = $%d/%d, want $50/1", prompt.Amount, prompt.Counterparty)
	}
}

// A lander with $10 owing $50 ends at cash 0 with $40 pending debt, and the
// owner receives only the $10 actually paid.
func TestResolveTile_RentShortfallBecomesDebt(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	gs.record(39).Owner = 1
	p := gs.CurrentPlayer()
	p.Cash = 10
	p.Position = 39
	gs.Turn.Phase = PhaseResolveTile
	gs.Turn.Die1, gs.Turn.Die2 = 3, 4

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if p.Cash != 0 {
		t.Errorf("lander cash = %d, want 0", p.Cash)
	}
	if p.PendingDebt != 40 {
		t.Errorf("pending debt = %d, want 40", p.PendingDebt)
	}
	if p.DebtCreditor != 1 {
		t.Errorf("debt creditor = %d, want 1", p.DebtCreditor)
	}
	if gs.Players[1].Cash != 1510 {
		t.Errorf("owner cash = %d, want 1510", gs.Players[1].Cash)
	}
}

func TestResolveTile_OwnAndMortgagedTilesAreFree(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	p := gs.CurrentPlayer()

	gs.record(39).Owner = 0
	p.Position = 39
	gs.Turn.Phase = PhaseResolveTile
	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if p.Cash != 1500 || gs.Turn.Prompt != nil {
		t.Error("landing on own tile must be free and prompt nothing")
	}

	gs.record(37).Owner = 1
	gs.record(37).Mortgaged = true
	p.Position = 37
	gs.Turn.Phase = PhaseResolveTile
	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if p.Cash != 1500 || gs.Turn.Prompt != nil {
		t.Error("landing on a mortgaged tile must be free and prompt nothing")
	}
}

func TestResolveTile_TaxDebited(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	p.Position = 4 // Income Tax
	gs.Turn.Phase = PhaseResolveTile

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if p.Cash != 1300 {
		t.Errorf("cash after income tax = %d, want 1300", p.Cash)
	}
}

func TestResolveTile_GoToJail(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	p.Position = GoToJailPosition
	gs.Turn.Phase = PhaseResolveTile

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if !p.InJail || p.Position != JailPosition {
		t.Errorf("player at %d, in jail %v; want jail tile", p.Position, p.InJail)
	}
	if gs.Turn.Phase != PhaseTurnOver {
		t.Errorf("phase = %s, want %s", gs.Turn.Phase, PhaseTurnOver)
	}
}

func TestResolveTile_CardDrawKeepsDeckSize(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	p.Position = 7 // Chance
	gs.Turn.Phase = PhaseResolveTile
	gs.Turn.Die1, gs.Turn.Die2 = 3, 4

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if gs.Chance.Size() != 16 {
		t.Errorf("chance deck size = %d, want 16", gs.Chance.Size())
	}
	if gs.Turn.Prompt == nil {
		t.Fatal("expected a prompt after drawing a card")
	}
}

func TestBuyProperty_DebitsExactPrice(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	p.Position = 1 // Mediterranean Avenue, $60
	gs.Turn.Phase = PhaseResolveTile

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if err := eng.BuyProperty(); err != nil {
		t.Fatalf("BuyProperty failed: %v", err)
	}
	if p.Cash != 1440 {
		t.Errorf("cash = %d, want 1440", p.Cash)
	}
	if rec := gs.Ownership[1]; rec == nil || rec.Owner != 0 {
		t.Errorf("ownership record = %+v, want owner 0", gs.Ownership[1])
	}
	if gs.Turn.Prompt != nil {
		t.Error("prompt not cleared after purchase")
	}
}

func TestDeclinePurchase_StartsAuction(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	p.Position = 39
	gs.Turn.Phase = PhaseResolveTile

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if err := eng.DeclinePurchase(); err != nil {
		t.Fatalf("DeclinePurchase failed: %v", err)
	}
	if gs.Auction == nil {
		t.Fatal("expected an auction")
	}
	if gs.Auction.CurrentBid != 200 {
		t.Errorf("opening bid = %d, want half price 200", gs.Auction.CurrentBid)
	}
	if gs.Auction.CurrentBidder != NoPlayer {
		t.Errorf("opening bidder = %d, want NoPlayer", gs.Auction.CurrentBidder)
	}
	if gs.Turn.Prompt == nil || gs.Turn.Prompt.Kind != PromptAuction {
		t.Errorf("prompt = %+v, want AUCTION", gs.Turn.Prompt)
	}
}

func TestDeclinePurchase_NoAuctionWhenDisabled(t *testing.T) {
	config := createTestConfig()
	config.AuctionOnDecline = false
	eng, err := NewEngine(config, []string{"alice", "bob"}, 42)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	gs := eng.GetState()
	gs.CurrentPlayer().Position = 39
	gs.Turn.Phase = PhaseResolveTile

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if err := eng.DeclinePurchase(); err != nil {
		t.Fatalf("DeclinePurchase failed: %v", err)
	}
	if gs.Auction != nil {
		t.Error("auction started despite being disabled")
	}
	if gs.Turn.Prompt != nil {
		t.Error("prompt not cleared")
	}
	if _, owned := gs.Ownership[39]; owned && gs.Ownership[39].Owner != NoPlayer {
		t.Error("declined tile should stay with the bank")
	}
}

func TestAuction_BidAndResolve(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	gs.CurrentPlayer().Position = 39
	gs.Turn.Phase = PhaseResolveTile

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if err := eng.DeclinePurchase(); err != nil {
		t.Fatalf("DeclinePurchase failed: %v", err)
	}

	// A bid must beat the current bid.
	if err := eng.PlaceBid(1, 200); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("equal bid: error = %v, want ErrIllegalTransition", err)
	}
	if err := eng.PlaceBid(1, 250); err != nil {
		t.Fatalf("PlaceBid failed: %v", err)
	}
	if err := eng.PlaceBid(0, 300); err != nil {
		t.Fatalf("counter bid failed: %v", err)
	}
	if err := eng.ResolveAuction(); err != nil {
		t.Fatalf("ResolveAuction failed: %v", err)
	}

	if rec := gs.Ownership[39]; rec == nil || rec.Owner != 0 {
		t.Errorf("auction winner ownership = %+v, want owner 0", gs.Ownership[39])
	}
	if gs.Players[0].Cash != 1200 {
		t.Errorf("winner cash = %d, want 1200", gs.Players[0].Cash)
	}
	if gs.Players[1].Cash != 1500 {
		t.Errorf("loser cash = %d, want untouched 1500", gs.Players[1].Cash)
	}
	if gs.Auction != nil || gs.Turn.Prompt != nil {
		t.Error("auction state not cleared")
	}
}

func TestAuction_NoBidsLeavesTileUnowned(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	gs.CurrentPlayer().Position = 39
	gs.Turn.Phase = PhaseResolveTile

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if err := eng.DeclinePurchase(); err != nil {
		t.Fatalf("DeclinePurchase failed: %v", err)
	}
	if err := eng.ResolveAuction(); err != nil {
		t.Fatalf("ResolveAuction failed: %v", err)
	}

	if rec, ok := gs.Ownership[39]; ok && rec.Owner != NoPlayer {
		t.Errorf("tile owner = %d, want unowned", rec.Owner)
	}
	if gs.Players[0].Cash != 1500 || gs.Players[1].Cash != 1500 {
		t.Error("a passed auction must not move money")
	}
}

func TestAuction_WinnerWhoSpentCashDefersToDebt(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	p.Position = 39
	p.Cash = 250
	gs.record(1).Owner = p.ID
	gs.record(1).Mortgaged = true
	gs.Turn.Phase = PhaseResolveTile

	if err := eng.ResolveTile(); err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if err := eng.DeclinePurchase(); err != nil {
		t.Fatalf("DeclinePurchase failed: %v", err)
	}
	if err := eng.PlaceBid(p.ID, 250); err != nil {
		t.Fatalf("PlaceBid failed: %v", err)
	}
	// Lifting the mortgage costs $33, leaving $217 against the $250 bid.
	if err := eng.Unmortgage(1); err != nil {
		t.Fatalf("Unmortgage failed: %v", err)
	}
	if err := eng.ResolveAuction(); err != nil {
		t.Fatalf("ResolveAuction failed: %v", err)
	}

	if rec := gs.Ownership[39]; rec == nil || rec.Owner != p.ID {
		t.Errorf("winner ownership = %+v, want owner %d", gs.Ownership[39], p.ID)
	}
	if p.Cash != 0 {
		t.Errorf("winner cash = %d, want clamped to 0", p.Cash)
	}
	if p.PendingDebt != 33 {
		t.Errorf("pending debt = %d, want 33", p.PendingDebt)
	}
	if p.DebtCreditor != NoPlayer {
		t.Errorf("debt creditor = %d, want the bank", p.DebtCreditor)
	}
	if err := eng.EndTurn(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("EndTurn with outstanding debt: error = %v, want ErrIllegalTransition", err)
	}
}

func TestDeclareBankrupt_TransfersToCreditorAndEndsGame(t *testing.T) {
	eng := newTestEngine(t, 42)
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	gs.record(1).Owner = 0
	gs.record(3).Owner = 0
	gs.record(3).Mortgaged = true
	p.Cash = 0
	p.PendingDebt = 100
	p.DebtCreditor = 1
	gs.Turn.Phase = PhaseActionChoices

	if err := eng.DeclareBankrupt(); err != nil {
		t.Fatalf("DeclareBankrupt failed: %v", err)
	}
	if !p.Bankrupt {
		t.Fatal("player not flagged bankrupt")
	}
	if gs.Ownership[1].Owner != 1 || gs.Ownership[3].Owner != 1 {
		t.Error("holdings did not transfer to the creditor")
	}
	if !gs.Ownership[3].Mortgaged {
		t.Error("mortgage flag must survive a creditor transfer")
	}
	if gs.Turn.Phase != PhaseGameOver {
		t.Errorf("phase = %s, want %s with one player left", gs.Turn.Phase, PhaseGameOver)
	}
	if w := gs.Winner(); w == nil || w.ID != 1 {
		t.Errorf("winner = %+v, want player 1", w)
	}
}

func TestDeclareBankrupt_BankCreditorReleasesTiles(t *testing.T) {
	eng, err := NewEngine(createTestConfig(), []string{"a", "b", "c"}, 42)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	gs := eng.GetState()
	p := gs.CurrentPlayer()
	gs.record(1).Owner = 0
	gs.record(1).Mortgaged = true
	p.Cash = 0
	p.PendingDebt = 200
	p.DebtCreditor = NoPlayer
	gs.Turn.Phase = PhaseActionChoices

	if err := eng.DeclareBankrupt(); err != nil {
		t.Fatalf("DeclareBankrupt failed: %v", err)
	}
	rec := gs.Ownership[1]
	if rec.Owner != NoPlayer || rec.Mortgaged {
		t.Errorf("record = %+v, want unowned and unmortgaged", rec)
	}
	if gs.Turn.Phase == PhaseGameOver {
		t.Error("game must continue with two players left")
	}
	if gs.Turn.Current != 1 {
		t.Errorf("current player = %d, want 1", gs.Turn.Current)
	}
}

func TestDeclareBankrupt_RequiresDebt(t *testing.T) {
	eng := newTestEngine(t, 42)
	eng.GetState().Turn.Phase = PhaseActionChoices
	if err := eng.DeclareBankrupt(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("error = %v, want ErrIllegalTransition", err)
	}
}
