package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GameConfig is a rule set: the tunable economic parameters of a game.
// The board layout, tile prices and card decks are fixed; rule sets vary
// the money knobs and the auction behavior.
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	StartingCash     int  `json:"starting_cash"`
	GoSalary         int  `json:"go_salary"`
	JailFine         int  `json:"jail_fine"`
	MaxJailTurns     int  `json:"max_jail_turns"`
	HouseStock       int  `json:"house_stock"`
	HotelStock       int  `json:"hotel_stock"`
	MinPlayers       int  `json:"min_players"`
	MaxPlayers       int  `json:"max_players"`
	AuctionOnDecline bool `json:"auction_on_decline"`
}

// DefaultConfig returns the classic rule set.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:             "classic",
		Description:      "Standard rules: $1500 starting cash, auctions on declined purchases",
		StartingCash:     1500,
		GoSalary:         200,
		JailFine:         50,
		MaxJailTurns:     3,
		HouseStock:       32,
		HotelStock:       12,
		MinPlayers:       2,
		MaxPlayers:       8,
		AuctionOnDecline: true,
	}
}

// ValidateGameConfig validates a rule set for correctness and playability.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if config.StartingCash <= 0 {
		return fmt.Errorf("config validation: starting_cash must be positive, got %d", config.StartingCash)
	}
	if config.GoSalary < 0 {
		return fmt.Errorf("config validation: go_salary cannot be negative, got %d", config.GoSalary)
	}
	if config.JailFine < 0 {
		return fmt.Errorf("config validation: jail_fine cannot be negative, got %d", config.JailFine)
	}
	if config.MaxJailTurns < 1 {
		return fmt.Errorf("config validation: max_jail_turns must be at least 1, got %d", config.MaxJailTurns)
	}
	if config.HouseStock < 0 || config.HotelStock < 0 {
		return fmt.Errorf("config validation: building stock cannot be negative")
	}
	if config.MinPlayers < MinPlayersAllowed {
		return fmt.Errorf("config validation: min_players must be at least %d, got %d", MinPlayersAllowed, config.MinPlayers)
	}
	if config.MaxPlayers > MaxPlayersAllowed {
		return fmt.Errorf("config validation: max_players cannot exceed %d, got %d", MaxPlayersAllowed, config.MaxPlayers)
	}
	if config.MinPlayers > config.MaxPlayers {
		return fmt.Errorf("config validation: min_players (%d) cannot exceed max_players (%d)",
			config.MinPlayers, config.MaxPlayers)
	}
	return nil
}

// LoadGameConfig loads a rule set from a JSON file.
func LoadGameConfig(filename string) (*GameConfig, error) {
	// CONFIG_DIR redirects the configs/ prefix to an alternative directory.
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a rule set by name from the configs directory.
func LoadConfigByName(configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		configPath = filepath.Join(configDir, configName)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %v", configName, err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", configName, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return &config, nil
}
