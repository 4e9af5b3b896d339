// Command analyze prints human-readable heuristics about the board economy
// and rule sets, and runs scripted bot games against the turn engine. The
// replay-check subcommand plays the same seed twice and compares the final
// states byte for byte, which is the quickest way to spot a determinism
// regression after an engine change.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/parkside-games/monopoly/game/engine"
	"github.com/parkside-games/monopoly/game/session"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Inspect board economics, rule sets, and engine determinism",
		Commands: []*cli.Command{
			{
				Name:  "board",
				Usage: "Summarize the board: color groups, buy-out costs, rent ceilings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					analyzeBoard()
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "Summarize saved games in a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Value: "sessions", Usage: "Directory containing game save files"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return listSaves(cmd.String("dir"))
				},
			},
			{
				Name:      "show",
				Usage:     "Print one saved game's action log",
				ArgsUsage: "<game_id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Value: "sessions", Usage: "Directory containing game save files"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("usage: show <game_id>")
					}
					return showSave(cmd.String("dir"), cmd.Args().First())
				},
			},
			{
				Name:  "rulesets",
				Usage: "Validate and summarize rule set files in a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Value: "configs", Usage: "Directory containing rule set JSON files"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return analyzeRuleSets(cmd.String("dir"))
				},
			},
			{
				Name:  "simulate",
				Usage: "Play a full bot game with an always-buy policy and print the outcome",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "seed", Value: 1, Usage: "Dice seed"},
					&cli.IntFlag{Name: "players", Value: 3, Usage: "Number of bot players"},
					&cli.IntFlag{Name: "steps", Value: 5000, Usage: "Command budget before giving up"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					state, steps, err := simulate(int64(cmd.Int("seed")), int(cmd.Int("players")), int(cmd.Int("steps")))
					if err != nil {
						return err
					}
					printOutcome(state, steps)
					return nil
				},
			},
			{
				Name:  "replay-check",
				Usage: "Play the same seed twice and verify the final states match exactly",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "seed", Value: 1, Usage: "Dice seed"},
					&cli.IntFlag{Name: "players", Value: 3, Usage: "Number of bot players"},
					&cli.IntFlag{Name: "steps", Value: 5000, Usage: "Command budget before giving up"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return replayCheck(int64(cmd.Int("seed")), int(cmd.Int("players")), int(cmd.Int("steps")))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadSave reads one save envelope, rejecting unknown format versions the
// same way the server does.
func loadSave(path string) (*session.PersistedGameData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var saved session.PersistedGameData
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}
	if saved.Version != session.SaveVersion {
		return nil, fmt.Errorf("save version %d, want %d", saved.Version, session.SaveVersion)
	}
	return &saved, nil
}

// listSaves prints one summary line per readable save file in dir.
func listSaves(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("No saved games found in %s\n", dir)
		return nil
	}

	for _, path := range paths {
		saved, err := loadSave(path)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", filepath.Base(path), err)
			continue
		}
		gs := saved.GameState
		fmt.Printf("%s  rules=%s turn=%d phase=%s players=%d active=%d last-access=%s\n",
			saved.ID, saved.RuleSet, gs.TurnCount, gs.Turn.Phase,
			len(gs.Players), gs.ActivePlayers(),
			saved.LastAccessedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// showSave prints the full action log of one saved game.
func showSave(dir, id string) error {
	saved, err := loadSave(filepath.Join(dir, strings.ToLower(id)+".json"))
	if err != nil {
		return fmt.Errorf("game %s: %w", id, err)
	}

	gs := saved.GameState
	fmt.Printf("Game %s (%s), turn %d, phase %s\n\n", saved.ID, saved.RuleSet, gs.TurnCount, gs.Turn.Phase)
	for _, entry := range gs.Log {
		who := "-"
		if entry.Player != engine.NoPlayer {
			who = fmt.Sprintf("P%d", entry.Player)
		}
		fmt.Printf("#%d [%s] %s: %s\n", entry.Seq, who, entry.Action, entry.Detail)
	}
	return nil
}

// analyzeBoard prints one line per color group: member count, total buy-out
// cost, cost to reach hotels on every member, and the hotel rent ceiling.
func analyzeBoard() {
	fmt.Println("=== Board Summary ===")

	kinds := map[engine.TileKind]int{}
	for pos := 0; pos < engine.BoardSize; pos++ {
		kinds[engine.TileAt(pos).Kind]++
	}
	fmt.Printf("Tiles: %d total, %d properties, %d railroads, %d utilities, %d tax\n",
		engine.BoardSize,
		kinds[engine.TileProperty], kinds[engine.TileRailroad],
		kinds[engine.TileUtility], kinds[engine.TileTax])

	// Walk positions in board order so groups print in the order a player
	// meets them.
	seen := map[string]bool{}
	fmt.Println("\nColor groups:")
	for pos := 0; pos < engine.BoardSize; pos++ {
		tile := engine.TileAt(pos)
		if tile.Kind != engine.TileProperty || seen[tile.ColorGroup] {
			continue
		}
		seen[tile.ColorGroup] = true

		members := engine.GroupTiles(tile.ColorGroup)
		buyOut, developed, maxRent := 0, 0, 0
		for _, p := range members {
			t := engine.TileAt(p)
			buyOut += t.Price
			// Four houses then a hotel, five builds per tile.
			developed += t.Price + t.HouseCost*(engine.MaxHousesPerTile+1)
			if t.Rent[5] > maxRent {
				maxRent = t.Rent[5]
			}
		}
		fmt.Printf("  %-11s %d tiles, buy-out $%d, full development $%d, hotel rent up to $%d\n",
			tile.ColorGroup, len(members), buyOut, developed, maxRent)
	}

	railroads := engine.RailroadPositions()
	railCost := 0
	for _, p := range railroads {
		railCost += engine.TileAt(p).Price
	}
	fmt.Printf("\nRailroads: %d, monopoly costs $%d\n", len(railroads), railCost)

	utilities := engine.UtilityPositions()
	utilCost := 0
	for _, p := range utilities {
		utilCost += engine.TileAt(p).Price
	}
	fmt.Printf("Utilities: %d, monopoly costs $%d\n", len(utilities), utilCost)
}

// analyzeRuleSets loads every JSON file in dir and prints its knobs, plus a
// rough affordability read: how much of the board a player could buy with
// starting cash alone.
func analyzeRuleSets(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("No rule set files found in %s\n", dir)
		return nil
	}

	for _, path := range paths {
		fmt.Printf("\n=== %s ===\n", filepath.Base(path))

		config, err := engine.LoadGameConfig(path)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			continue
		}

		fmt.Printf("Name: %s\n", config.Name)
		if config.Description != "" {
			fmt.Printf("Description: %s\n", config.Description)
		}
		fmt.Printf("Starting cash: $%d, GO salary: $%d\n", config.StartingCash, config.GoSalary)
		fmt.Printf("Jail: $%d fine, %d roll attempts\n", config.JailFine, config.MaxJailTurns)
		fmt.Printf("Building stock: %d houses, %d hotels\n", config.HouseStock, config.HotelStock)
		fmt.Printf("Players: %d-%d, auction on decline: %v\n",
			config.MinPlayers, config.MaxPlayers, config.AuctionOnDecline)

		affordable := 0
		ownable := 0
		for pos := 0; pos < engine.BoardSize; pos++ {
			tile := engine.TileAt(pos)
			if !tile.Ownable() {
				continue
			}
			ownable++
			if tile.Price <= config.StartingCash {
				affordable++
			}
		}
		fmt.Printf("✅ Starting cash covers %d of %d ownable tiles individually\n", affordable, ownable)
		if config.JailFine > config.StartingCash/10 {
			fmt.Printf("⚠️  Jail fine is more than 10%% of starting cash, expect long jail stays\n")
		}
	}
	return nil
}

// simulate plays a scripted game with an always-buy policy until it ends or
// the step budget runs out. Returns the final state and commands issued.
func simulate(seed int64, players, maxSteps int) (*engine.GameState, int, error) {
	names := make([]string, players)
	for i := range names {
		names[i] = fmt.Sprintf("Bot %d", i+1)
	}

	eng, err := engine.NewEngine(engine.DefaultConfig(), names, seed)
	if err != nil {
		return nil, 0, err
	}

	steps := 0
	for ; steps < maxSteps; steps++ {
		if eng.IsGameOver() {
			break
		}
		if err := step(eng); err != nil {
			return nil, steps, fmt.Errorf("command %d failed: %w", steps, err)
		}
	}
	return eng.GetState(), steps, nil
}

// step issues the next bot command for the current phase. The policy is the
// simplest one that always makes progress: buy whatever is affordable,
// mortgage to cover debts, concede when mortgaging is not enough.
func step(e *engine.Engine) error {
	gs := e.GetState()

	switch gs.Turn.Phase {
	case engine.PhasePreRoll:
		return e.Roll()

	case engine.PhaseInJail:
		p := gs.CurrentPlayer()
		if p.JailCards > 0 {
			return e.UseJailCard()
		}
		if err := e.PayJailFine(); err == nil {
			return nil
		}
		// Broke: the doubles roll never needs cash up front.
		return e.RollForJailDoubles()

	case engine.PhaseResolveTile:
		return e.ResolveTile()

	case engine.PhaseActionChoices, engine.PhaseTurnOver:
		if gs.CurrentPlayer().PendingDebt > 0 {
			return payDownDebt(e)
		}
		if p := gs.Turn.Prompt; p != nil {
			switch p.Kind {
			case engine.PromptBuyProperty:
				if err := e.BuyProperty(); err == nil {
					return nil
				}
				return e.DeclinePurchase()
			case engine.PromptAuction:
				// Bots never bid, so the tile goes back to the bank.
				return e.ResolveAuction()
			}
		}
		return e.EndTurn()
	}

	return fmt.Errorf("no bot action for phase %s", gs.Turn.Phase)
}

// payDownDebt mortgages the debtor's undeveloped holdings one by one until
// the debt clears, then declares bankruptcy if it never does.
func payDownDebt(e *engine.Engine) error {
	gs := e.GetState()
	p := gs.CurrentPlayer()

	for _, pos := range gs.HoldingsOf(p.ID) {
		if p.PendingDebt == 0 {
			return nil
		}
		rec := gs.Ownership[pos]
		if rec.Mortgaged || rec.Houses > 0 || rec.Hotel {
			continue
		}
		if err := e.Mortgage(pos); err != nil {
			return err
		}
	}
	if p.PendingDebt == 0 {
		return nil
	}
	return e.DeclareBankrupt()
}

// printOutcome dumps the end-of-game ledger for a simulated game.
func printOutcome(gs *engine.GameState, steps int) {
	fmt.Printf("=== Simulation Result ===\n")
	fmt.Printf("Commands issued: %d, turns played: %d, log entries: %d\n",
		steps, gs.TurnCount, len(gs.Log))

	if gs.Turn.Phase == engine.PhaseGameOver {
		if w := gs.Winner(); w != nil {
			fmt.Printf("✅ Game over: %s wins\n", w.Name)
		}
	} else {
		fmt.Printf("⚠️  Step budget exhausted in phase %s\n", gs.Turn.Phase)
	}

	for _, p := range gs.Players {
		status := ""
		if p.Bankrupt {
			status = " (bankrupt)"
		}
		holdings := gs.HoldingsOf(p.ID)
		names := make([]string, 0, len(holdings))
		for _, pos := range holdings {
			names = append(names, engine.TileAt(pos).Name)
		}
		fmt.Printf("  %s%s: $%d, %d tiles", p.Name, status, p.Cash, len(holdings))
		if len(names) > 0 {
			fmt.Printf(" (%s)", strings.Join(names, ", "))
		}
		fmt.Println()
	}
}

// replayCheck plays the same configuration twice and compares the final
// serialized states. Any divergence means a command consumed dice or
// mutated state in a non-reproducible order.
func replayCheck(seed int64, players, maxSteps int) error {
	first, firstSteps, err := simulate(seed, players, maxSteps)
	if err != nil {
		return fmt.Errorf("first run: %w", err)
	}
	second, secondSteps, err := simulate(seed, players, maxSteps)
	if err != nil {
		return fmt.Errorf("second run: %w", err)
	}

	if firstSteps != secondSteps {
		return fmt.Errorf("❌ replay diverged: %d commands vs %d", firstSteps, secondSteps)
	}

	a, err := json.Marshal(first)
	if err != nil {
		return err
	}
	b, err := json.Marshal(second)
	if err != nil {
		return err
	}
	if !bytes.Equal(a, b) {
		return fmt.Errorf("❌ replay diverged: final states differ for seed %d", seed)
	}

	fmt.Printf("✅ Replay check passed: seed %d, %d players, %d commands, identical final states\n",
		seed, players, firstSteps)
	return nil
}
