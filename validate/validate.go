// Command validate provides a small CLI that validates rule set JSON files
// in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Cash amounts (starting cash, GO salary, jail fine)
//   - Jail turn limit
//   - Building stock (houses and hotels)
//   - Player count bounds
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RuleSet mirrors the JSON schema for a rule set file.
type RuleSet struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	StartingCash     int    `json:"starting_cash"`
	GoSalary         int    `json:"go_salary"`
	JailFine         int    `json:"jail_fine"`
	MaxJailTurns     int    `json:"max_jail_turns"`
	HouseStock       int    `json:"house_stock"`
	HotelStock       int    `json:"hotel_stock"`
	MinPlayers       int    `json:"min_players"`
	MaxPlayers       int    `json:"max_players"`
	AuctionOnDecline bool   `json:"auction_on_decline"`
}

// Board bounds every rule set must respect.
const (
	minPlayersAllowed = 2
	maxPlayersAllowed = 8
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateRuleSet loads and validates a single rule set JSON file.
func validateRuleSet(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	fail := func(format string, args ...interface{}) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	if rs.Name == "" {
		fail("Missing required field: name")
	}

	// Cash amounts
	if rs.StartingCash <= 0 {
		fail("starting_cash must be positive, got %d", rs.StartingCash)
	}
	if rs.GoSalary < 0 {
		fail("go_salary cannot be negative, got %d", rs.GoSalary)
	}
	if rs.JailFine <= 0 {
		fail("jail_fine must be positive, got %d", rs.JailFine)
	}
	if rs.StartingCash > 0 && rs.JailFine > rs.StartingCash {
		fail("jail_fine (%d) exceeds starting_cash (%d)", rs.JailFine, rs.StartingCash)
	}

	// Jail
	if rs.MaxJailTurns < 1 {
		fail("max_jail_turns must be at least 1, got %d", rs.MaxJailTurns)
	}

	// Building stock
	if rs.HouseStock <= 0 {
		fail("house_stock must be positive, got %d", rs.HouseStock)
	}
	if rs.HotelStock <= 0 {
		fail("hotel_stock must be positive, got %d", rs.HotelStock)
	}

	// Player bounds
	if rs.MinPlayers < minPlayersAllowed {
		fail("min_players must be at least %d, got %d", minPlayersAllowed, rs.MinPlayers)
	}
	if rs.MaxPlayers > maxPlayersAllowed {
		fail("max_players cannot exceed %d, got %d", maxPlayersAllowed, rs.MaxPlayers)
	}
	if rs.MinPlayers > rs.MaxPlayers {
		fail("min_players (%d) exceeds max_players (%d)", rs.MinPlayers, rs.MaxPlayers)
	}

	if result.Valid {
		result.Errors = append(result.Errors,
			fmt.Sprintf("✓ %s: cash $%d, salary $%d, fine $%d, players %d-%d",
				rs.Name, rs.StartingCash, rs.GoSalary, rs.JailFine, rs.MinPlayers, rs.MaxPlayers))
		if rs.AuctionOnDecline {
			result.Errors = append(result.Errors, "✓ declined purchases go to auction")
		} else {
			result.Errors = append(result.Errors, "✓ declined purchases stay with the bank")
		}
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding rule set files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateRuleSet(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All rule sets are valid!")
	} else {
		fmt.Println("❌ Some rule sets have errors")
		os.Exit(1)
	}
}
