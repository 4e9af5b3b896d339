package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/parkside-games/monopoly/game/engine"
	"github.com/parkside-games/monopoly/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Property Trading Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Property Trading Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
A classic property trading board game. Players take turns rolling dice,
moving around a 40-tile board, buying properties, collecting rent and
building houses. The last solvent player wins.

TURN FLOW:
1. roll - roll the dice and move (or jail_action if the turn starts in jail)
2. resolve - resolve the tile you landed on
3. Answer any prompt: buy/decline for unowned property, bid + resolve_auction
   for a declined one
4. Optionally manage assets: asset_action (mortgage, build houses, sell)
5. end_turn - pass the dice (doubles grant another roll automatically)

AVAILABLE TOOLS:
- create_game, list_games, get_game, game_state, game_log
- roll, resolve, buy, decline, bid, resolve_auction, end_turn
- asset_action: mortgage/unmortgage/build_house/build_hotel/sell_house/sell_hotel
- jail_action: pay the fine, use a get-out-of-jail card, or roll for doubles
- declare_bankrupt: concede when you cannot cover a debt
- list_rulesets, game_instructions

Game state is authoritative on the server. Every command returns the full
state, the current phase and any pending prompt.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	gameIDProp := map[string]interface{}{
		"type":        "string",
		"description": "Game ID",
	}

	// Game management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new game with a list of player names and an optional rule set and seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"players": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Player names in seat order (2-8 players)",
				},
				"rule_set": map[string]interface{}{
					"type":        "string",
					"description": "Rule set to use (optional, defaults to classic)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Dice seed for a reproducible game (optional)",
				},
			},
			Required: []string{"players"},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_game",
		Description: "Get details of a specific game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameIDProp},
			Required:   []string{"game_id"},
		},
	}, c.handleGetGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state: players, positions, cash, ownership, phase and pending prompt",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameIDProp},
			Required:   []string{"game_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_log",
		Description: "Get a page of the game's action log",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProp,
				"since": map[string]interface{}{
					"type":        "integer",
					"description": "First log sequence number to include",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum entries to return",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGameLog)

	// Turn commands
	simpleCommands := []struct {
		name, desc, path string
	}{
		{"roll", "Roll the dice and move the current player", "roll"},
		{"resolve", "Resolve the tile the current player landed on", "resolve"},
		{"buy", "Buy the property the current player is standing on (answers a BUY_PROPERTY prompt)", "buy"},
		{"decline", "Decline to buy the property; starts an auction when the rule set allows", "decline"},
		{"resolve_auction", "Close the auction and transfer the tile to the highest bidder", "auction-resolve"},
		{"end_turn", "End the current player's turn", "end-turn"},
		{"declare_bankrupt", "Declare the current player bankrupt; assets go to the creditor", "bankrupt"},
	}
	for _, cmd := range simpleCommands {
		path := cmd.path
		c.mcpServer.AddTool(mcp.Tool{
			Name:        cmd.name,
			Description: cmd.desc,
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{"game_id": gameIDProp},
				Required:   []string{"game_id"},
			},
		}, c.commandHandler(path))
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bid",
		Description: "Place a bid in the running auction on behalf of a player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProp,
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Bidding player's ID (seat index)",
				},
				"amount": map[string]interface{}{
					"type":        "integer",
					"description": "Bid amount, must beat the current bid",
				},
			},
			Required: []string{"game_id", "player", "amount"},
		},
	}, c.handleBid)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "asset_action",
		Description: "Manage the current player's properties: mortgage, unmortgage, build_house, build_hotel, sell_house or sell_hotel on a tile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProp,
				"action": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"mortgage", "unmortgage", "build_house", "build_hotel", "sell_house", "sell_hotel"},
					"description": "Asset action to perform",
				},
				"tile": map[string]interface{}{
					"type":        "integer",
					"description": "Board position of the target tile (0-39)",
				},
			},
			Required: []string{"game_id", "action", "tile"},
		},
	}, c.handleAssetAction)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "jail_action",
		Description: "Choose how the jailed current player gets out: pay_fine, use_card or roll_doubles",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProp,
				"choice": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"pay_fine", "use_card", "roll_doubles"},
					"description": "Jail exit choice",
				},
			},
			Required: []string{"game_id", "choice"},
		},
	}, c.handleJailAction)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rulesets",
		Description: "List available rule sets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRuleSets)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// command posts a body-less command and formats the result.
func (c *Client) command(gameID, path string) (*mcp.CallToolResult, error) {
	var result service.CommandResult
	// Empty JSON body so the server's decoder is happy
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/%s", gameID, path), map[string]string{}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) commandHandler(path string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments.(map[string]interface{})
		gameID, _ := args["game_id"].(string)
		return c.command(gameID, path)
	}
}

// Tool handlers

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	playersRaw, _ := args["players"].([]interface{})
	ruleSet, _ := args["rule_set"].(string)

	players := make([]string, 0, len(playersRaw))
	for _, p := range playersRaw {
		if name, ok := p.(string); ok {
			players = append(players, name)
		}
	}

	body := service.CreateGameRequest{
		RuleSet: ruleSet,
		Players: players,
	}
	if seedRaw, ok := args["seed"].(float64); ok {
		seed := int64(seedRaw)
		body.Seed = &seed
	}

	var info service.GameInfo
	if err := c.apiCall("POST", "/api/games", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created game: %s\nRule set: %s\nSeed: %d\n\n%s",
		info.ID, info.RuleSet, info.GameState.Dice.Seed, formatGameState(info.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                 `json:"count"`
		Games []*service.GameInfo `json:"games"`
	}

	if err := c.apiCall("GET", "/api/games", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Games (%d):\n\n", response.Count)
	for _, g := range response.Games {
		names := make([]string, 0, len(g.GameState.Players))
		for _, p := range g.GameState.Players {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&sb, "- %s (Rules: %s, Players: %s, Turn: %d, Created: %s)\n",
			g.ID, g.RuleSet, strings.Join(names, ", "),
			g.GameState.TurnCount, g.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var info service.GameInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/games/%s", gameID), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Game: %s\nRule set: %s\nCreated: %s\n\n%s",
		info.ID, info.RuleSet,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(info.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var state engine.GameState
	if err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/state", gameID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleGameLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	params := "?"
	if since, ok := args["since"].(float64); ok {
		params += fmt.Sprintf("since=%d&", int(since))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var log service.LogResponse
	if err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/log%s", gameID, params), nil, &log); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Game Log (%d entries total):\n\n", log.Total)
	for _, entry := range log.Entries {
		player := "-"
		if entry.Player != engine.NoPlayer {
			player = fmt.Sprintf("P%d", entry.Player)
		}
		fmt.Fprintf(&sb, "#%d [%s] %s: %s\n", entry.Seq, entry.Action, player, entry.Detail)
	}
	if log.HasMore {
		sb.WriteString("\n(more entries available)")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleBid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	player, _ := args["player"].(float64)
	amount, _ := args["amount"].(float64)

	body := map[string]int{
		"player": int(player),
		"amount": int(amount),
	}

	var result service.CommandResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/bid", gameID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

var assetPaths = map[string]string{
	"mortgage":    "mortgage",
	"unmortgage":  "unmortgage",
	"build_house": "build-house",
	"build_hotel": "build-hotel",
	"sell_house":  "sell-house",
	"sell_hotel":  "sell-hotel",
}

func (c *Client) handleAssetAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	action, _ := args["action"].(string)
	tile, _ := args["tile"].(float64)

	path, ok := assetPaths[action]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown asset action: %s", action)), nil
	}

	body := map[string]int{"tile": int(tile)}

	var result service.CommandResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/%s", gameID, path), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

var jailPaths = map[string]string{
	"pay_fine":     "jail-fine",
	"use_card":     "jail-card",
	"roll_doubles": "jail-roll",
}

func (c *Client) handleJailAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	choice, _ := args["choice"].(string)

	path, ok := jailPaths[choice]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown jail choice: %s", choice)), nil
	}

	return c.command(gameID, path)
}

func (c *Client) handleListRuleSets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var ruleSets []*service.RuleSetInfo
	if err := c.apiCall("GET", "/api/rulesets", nil, &ruleSets); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Rule Sets:\n\n")
	for _, rs := range ruleSets {
		fmt.Fprintf(&sb, "- %s: %s\n  %s\n  Starting cash: $%d, Max players: %d\n\n",
			rs.RuleSetID, rs.Name, rs.Description, rs.StartingCash, rs.MaxPlayers)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Property Trading Game - Complete Instructions

GAME OBJECTIVE:
Be the last solvent player. Buy properties, collect rent, build houses and
hotels, and drive your opponents into bankruptcy.

THE BOARD:
40 tiles in a loop: 22 color-group properties, 4 railroads, 2 utilities,
2 tax tiles, 3 Chance and 3 Community Chest tiles, GO, Jail, Free Parking
and Go To Jail. Passing GO pays a salary.

TURN FLOW:
1. roll - the current player rolls two dice and moves clockwise
2. resolve - apply the tile: unowned property raises a BUY_PROPERTY prompt,
   owned property charges rent immediately, card tiles draw and apply a card,
   tax tiles charge, Go To Jail sends the player to jail
3. Answer prompts:
   - buy: pay list price and take the deed
   - decline: the property goes to auction (when the rule set allows);
     any player may bid, resolve_auction closes it
4. asset_action (optional, after resolving): mortgage or unmortgage deeds,
   build or sell houses and hotels on completed color groups
5. end_turn - pass the dice. Rolling doubles grants another roll, but three
   doubles in a row sends you to jail.

RENT:
- Properties: base rent, doubled on an undeveloped monopoly, then the house
  and hotel schedule once you build
- Railroads: 25/50/100/200 by how many the owner holds
- Utilities: 4x the dice roll, 10x when both are owned
- Mortgaged tiles collect nothing

JAIL:
On your turn in jail choose via jail_action: pay the fine, spend a
Get Out of Jail Free card, or try to roll doubles (three failed attempts
force the fine). Leaving jail by doubles does not grant another roll.

DEBT AND BANKRUPTCY:
If you cannot pay, the shortfall becomes a pending debt and you keep playing
your asset phase: mortgage or sell buildings to raise cash. You cannot end
the turn while a debt is outstanding. If you cannot cover it, declare_bankrupt
hands your assets to the creditor (or back to the bank) and you are out.

BUILDING RULES:
- You need the whole color group, unmortgaged target tile
- Houses cost the group's house price; 4 houses upgrade to a hotel
- The bank's stock of houses and hotels is finite
- Selling returns half price

DETERMINISM:
Games are driven by a seeded dice stream. The same seed and the same command
sequence always produce the same game, which makes replays and analysis
reliable.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatCommandResult(result *service.CommandResult) string {
	var sb strings.Builder

	if len(result.Events) > 0 {
		sb.WriteString("Events:\n")
		for _, ev := range result.Events {
			fmt.Fprintf(&sb, "- [%s] %s\n", ev.Type, ev.Message)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(formatGameState(result.GameState))

	if result.GameOver {
		if result.Winner != nil {
			fmt.Fprintf(&sb, "\nGAME OVER - %s wins!", result.Winner.Name)
		} else {
			sb.WriteString("\nGAME OVER")
		}
	}

	return sb.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var sb strings.Builder

	current := state.CurrentPlayer()
	fmt.Fprintf(&sb, "Turn %d | Phase: %s | Current: %s\n",
		state.TurnCount, state.Turn.Phase, current.Name)
	if state.Turn.DiceTotal() > 0 {
		fmt.Fprintf(&sb, "Last roll: %d+%d=%d\n",
			state.Turn.Die1, state.Turn.Die2, state.Turn.DiceTotal())
	}

	if p := state.Turn.Prompt; p != nil {
		fmt.Fprintf(&sb, "Prompt: %s", p.Kind)
		if p.Kind == engine.PromptBuyProperty || p.Kind == engine.PromptAuction {
			tile := engine.TileAt(p.TileID)
			fmt.Fprintf(&sb, " - %s ($%d)", tile.Name, p.Amount)
		} else if p.Amount > 0 {
			fmt.Fprintf(&sb, " - $%d", p.Amount)
		}
		if p.CardText != "" {
			fmt.Fprintf(&sb, " (%s)", p.CardText)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Players:\n")
	for _, p := range state.Players {
		marker := "  "
		if p.ID == current.ID {
			marker = "> "
		}
		status := ""
		if p.Bankrupt {
			status = " BANKRUPT"
		} else if p.InJail {
			status = " IN JAIL"
		}
		tile := engine.TileAt(p.Position)
		fmt.Fprintf(&sb, "%s%s (P%d): $%d at %d (%s)%s", marker, p.Name, p.ID, p.Cash, p.Position, tile.Name, status)
		if p.PendingDebt > 0 {
			fmt.Fprintf(&sb, " owes $%d", p.PendingDebt)
		}
		if p.JailCards > 0 {
			fmt.Fprintf(&sb, " [%d jail card(s)]", p.JailCards)
		}
		sb.WriteString("\n")

		holdings := state.HoldingsOf(p.ID)
		if len(holdings) > 0 {
			var deeds []string
			for _, pos := range holdings {
				rec := state.Ownership[pos]
				deed := engine.TileAt(pos).Name
				if rec.Hotel {
					deed += " [hotel]"
				} else if rec.Houses > 0 {
					deed += fmt.Sprintf(" [%dh]", rec.Houses)
				}
				if rec.Mortgaged {
					deed += " [mortgaged]"
				}
				deeds = append(deeds, deed)
			}
			fmt.Fprintf(&sb, "    owns: %s\n", strings.Join(deeds, ", "))
		}
	}

	return sb.String()
}
