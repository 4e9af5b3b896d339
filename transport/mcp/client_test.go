package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/parkside-games/monopoly/game/engine"
	"github.com/parkside-games/monopoly/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "ab12"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall("GET", "/api/games/ab12", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != "ab12" {
		t.Errorf("Expected id ab12, got %v", response["id"])
	}
}

func TestClient_apiCall_ConnectionError(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall("GET", "/api/games", nil, nil); err == nil {
		t.Error("Expected error for unreachable server")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/games", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}
	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "command roll not valid in phase turn_over"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/games/x/roll", map[string]string{}, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 409 response")
	}
	if !strings.Contains(err.Error(), "not valid in phase") {
		t.Errorf("Expected the server's error message, got: %v", err)
	}
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected content in tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func testState(seed int64) *engine.GameState {
	return engine.InitGameStateFromConfig(engine.DefaultConfig(), []string{"Alice", "Bob"}, seed)
}

func TestClient_handleCreateGame(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/games" {
			t.Errorf("Expected POST /api/games, got %s %s", r.Method, r.URL.Path)
		}

		var req service.CreateGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Players) != 2 || req.Players[0] != "Alice" {
			t.Errorf("Expected players [Alice Bob], got %v", req.Players)
		}
		if req.Seed == nil || *req.Seed != 42 {
			t.Errorf("Expected seed 42, got %v", req.Seed)
		}

		info := service.GameInfo{
			ID:        "ab12",
			RuleSet:   "classic",
			GameState: testState(42),
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(info)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleCreateGame(context.Background(), toolRequest("create_game", map[string]interface{}{
		"players":  []interface{}{"Alice", "Bob"},
		"rule_set": "classic",
		"seed":     float64(42),
	}))
	if err != nil {
		t.Fatalf("handleCreateGame failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "ab12") {
		t.Errorf("Expected game ID in result, got: %s", text)
	}
	if !strings.Contains(text, "Alice") {
		t.Errorf("Expected player name in result, got: %s", text)
	}
}

func TestClient_handleGameState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/games/ab12/state" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(testState(1))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleGameState(context.Background(), toolRequest("game_state", map[string]interface{}{
		"game_id": "ab12",
	}))
	if err != nil {
		t.Fatalf("handleGameState failed: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"Phase: pre_roll", "Alice", "Bob", "$1500"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_commandProxies(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		state := testState(1)
		json.NewEncoder(w).Encode(service.CommandResult{
			GameState: state,
			Phase:     state.Turn.Phase,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	cases := []struct {
		handler  func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args     map[string]interface{}
		wantPath string
	}{
		{client.commandHandler("roll"), map[string]interface{}{"game_id": "g1"}, "/api/games/g1/roll"},
		{client.commandHandler("end-turn"), map[string]interface{}{"game_id": "g1"}, "/api/games/g1/end-turn"},
		{client.handleAssetAction, map[string]interface{}{"game_id": "g1", "action": "build_house", "tile": float64(39)}, "/api/games/g1/build-house"},
		{client.handleJailAction, map[string]interface{}{"game_id": "g1", "choice": "pay_fine"}, "/api/games/g1/jail-fine"},
		{client.handleBid, map[string]interface{}{"game_id": "g1", "player": float64(1), "amount": float64(120)}, "/api/games/g1/bid"},
	}

	for _, tc := range cases {
		result, err := tc.handler(ctx, toolRequest("x", tc.args))
		if err != nil {
			t.Fatalf("Handler failed: %v", err)
		}
		if result.IsError {
			t.Fatalf("Handler returned tool error: %s", resultText(t, result))
		}
		if gotPath != tc.wantPath {
			t.Errorf("Expected request to %s, got %s", tc.wantPath, gotPath)
		}
	}
}

func TestClient_handleAssetAction_UnknownAction(t *testing.T) {
	client := NewClient("http://localhost:0")

	result, err := client.handleAssetAction(context.Background(), toolRequest("asset_action", map[string]interface{}{
		"game_id": "g1",
		"action":  "demolish",
		"tile":    float64(1),
	}))
	if err != nil {
		t.Fatalf("handleAssetAction failed: %v", err)
	}
	if !result.IsError {
		t.Error("Expected a tool error for unknown action")
	}
}

func TestClient_handleJailAction_UnknownChoice(t *testing.T) {
	client := NewClient("http://localhost:0")

	result, err := client.handleJailAction(context.Background(), toolRequest("jail_action", map[string]interface{}{
		"game_id": "g1",
		"choice":  "dig_tunnel",
	}))
	if err != nil {
		t.Fatalf("handleJailAction failed: %v", err)
	}
	if !result.IsError {
		t.Error("Expected a tool error for unknown choice")
	}
}

func TestClient_handleGameLog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(service.LogResponse{
			Entries: []engine.LogEntry{
				{Seq: 0, Player: engine.NoPlayer, Action: "game_start", Detail: "game started with 2 players"},
				{Seq: 1, Player: 0, Action: "roll", Detail: "Alice rolled 3+4"},
			},
			Total:   2,
			HasMore: false,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleGameLog(context.Background(), toolRequest("game_log", map[string]interface{}{
		"game_id": "ab12",
	}))
	if err != nil {
		t.Fatalf("handleGameLog failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "game_start") || !strings.Contains(text, "Alice rolled 3+4") {
		t.Errorf("Expected log entries in result, got: %s", text)
	}
}

func TestFormatGameState(t *testing.T) {
	state := testState(1)
	state.Players[0].Cash = 1200
	state.Players[1].InJail = true
	state.Players[1].Position = engine.JailPosition
	state.Ownership[39] = &engine.OwnershipRecord{Owner: 0, Houses: 2}

	result := formatGameState(state)

	expectedFields := []string{
		"Phase: pre_roll",
		"Alice",
		"$1200",
		"IN JAIL",
		"Boardwalk [2h]",
	}
	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected %q in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameState_Prompt(t *testing.T) {
	state := testState(1)
	state.Turn.Prompt = &engine.Prompt{
		Kind:         engine.PromptBuyProperty,
		TileID:       39,
		Amount:       400,
		Counterparty: engine.NoPlayer,
	}

	result := formatGameState(state)
	if !strings.Contains(result, "BUY_PROPERTY") || !strings.Contains(result, "Boardwalk") {
		t.Errorf("Expected buy prompt details, got: %s", result)
	}
}

func TestFormatCommandResult_GameOver(t *testing.T) {
	state := testState(1)
	state.Players[1].Bankrupt = true
	state.Turn.Phase = engine.PhaseGameOver

	result := formatCommandResult(&service.CommandResult{
		GameState: state,
		Phase:     state.Turn.Phase,
		GameOver:  true,
		Winner:    state.Players[0],
	})

	if !strings.Contains(result, "GAME OVER") || !strings.Contains(result, "Alice wins") {
		t.Errorf("Expected game over banner, got: %s", result)
	}
}
