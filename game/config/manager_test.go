package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/parkside-games/monopoly/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:             "Test Rules",
		Description:      "Rule set used in tests",
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

func writeRuleSet(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write rule set file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if m.GetDefault() == nil {
		t.Fatal("Expected a default rule set")
	}
	if m.GetDefault().Name != "Test Rules" {
		t.Errorf("Expected default rule set 'Test Rules', got %q", m.GetDefault().Name)
	}
}

func TestNewManager_MissingDirectory(t *testing.T) {
	_, err := NewManager("/nonexistent/path/rulesets")
	if err == nil {
		t.Fatal("Expected an error for missing config directory")
	}
}

func TestNewManager_EmptyDirectory(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	// Falls back to built-in defaults when no files exist
	def := m.GetDefault()
	if def == nil {
		t.Fatal("Expected built-in default rule set")
	}
	if def.StartingCash != 1500 {
		t.Errorf("Expected starting cash 1500, got %d", def.StartingCash)
	}
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	speed := createValidConfig()
	speed.Name = "Speed Rules"
	speed.StartingCash = 1000
	speed.AuctionOnDecline = false
	writeRuleSet(t, dir, "speed", speed)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	config, err := m.LoadConfig("speed")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.StartingCash != 1000 {
		t.Errorf("Expected starting cash 1000, got %d", config.StartingCash)
	}
	if config.AuctionOnDecline {
		t.Error("Expected auctions disabled in speed rules")
	}

	// The .json suffix resolves to the same rule set
	withSuffix, err := m.LoadConfig("speed.json")
	if err != nil {
		t.Fatalf("LoadConfig with suffix failed: %v", err)
	}
	if withSuffix.Name != "Speed Rules" {
		t.Errorf("Expected 'Speed Rules', got %q", withSuffix.Name)
	}
}

func TestManager_LoadConfig_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	_, err = m.LoadConfig("nope")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_LoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	bad := createValidConfig()
	bad.StartingCash = -5
	writeRuleSet(t, dir, "broken", bad)

	if err := os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := m.LoadConfig("broken"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if _, err := m.LoadConfig("garbage"); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

func TestManager_LoadConfig_Cached(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	first, err := m.LoadConfig("classic")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Remove the file; the cached config must still be served
	if err := os.Remove(filepath.Join(dir, "classic.json")); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}

	second, err := m.LoadConfig("classic")
	if err != nil {
		t.Fatalf("LoadConfig after removal failed: %v", err)
	}
	if first != second {
		t.Error("Expected the cached config instance")
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	speed := createValidConfig()
	speed.Name = "Speed Rules"
	speed.MaxPlayers = 4
	writeRuleSet(t, dir, "speed", speed)

	bad := createValidConfig()
	bad.MinPlayers = 0
	writeRuleSet(t, dir, "broken", bad)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	ruleSets, err := m.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(ruleSets) != 2 {
		t.Fatalf("Expected 2 rule sets, got %d", len(ruleSets))
	}

	byID := make(map[string]bool)
	for _, rs := range ruleSets {
		byID[rs.RuleSetID] = true
		if rs.RuleSetID == "speed" {
			if rs.Name != "Speed Rules" {
				t.Errorf("Expected name 'Speed Rules', got %q", rs.Name)
			}
			if rs.MaxPlayers != 4 {
				t.Errorf("Expected max players 4, got %d", rs.MaxPlayers)
			}
			if rs.Filename != "speed.json" {
				t.Errorf("Expected filename 'speed.json', got %q", rs.Filename)
			}
		}
	}
	if !byID["classic"] || !byID["speed"] {
		t.Errorf("Expected classic and speed rule sets, got %v", byID)
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	speed := createValidConfig()
	speed.Name = "Speed Rules"
	writeRuleSet(t, dir, "speed", speed)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := m.SetDefault("speed"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if m.GetDefault().Name != "Speed Rules" {
		t.Errorf("Expected default 'Speed Rules', got %q", m.GetDefault().Name)
	}

	if err := m.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	custom := createValidConfig()
	custom.Name = "House Rules"
	custom.GoSalary = 400
	if err := m.SaveConfig("house", custom); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "house.json")); err != nil {
		t.Errorf("Expected house.json to exist: %v", err)
	}

	loaded, err := m.LoadConfig("house")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.GoSalary != 400 {
		t.Errorf("Expected GO salary 400, got %d", loaded.GoSalary)
	}

	bad := createValidConfig()
	bad.MaxJailTurns = 0
	if err := m.SaveConfig("bad", bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := m.LoadConfig("classic"); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	changed := createValidConfig()
	changed.StartingCash = 2000
	writeRuleSet(t, dir, "classic", changed)

	if err := m.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}

	config, err := m.LoadConfig("classic")
	if err != nil {
		t.Fatalf("LoadConfig after refresh failed: %v", err)
	}
	if config.StartingCash != 2000 {
		t.Errorf("Expected starting cash 2000 after refresh, got %d", config.StartingCash)
	}
}

func TestManager_ConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	writeRuleSet(t, dir, "classic", createValidConfig())

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.LoadConfig("classic"); err != nil {
				t.Errorf("LoadConfig failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
