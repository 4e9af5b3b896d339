// Package mcp exposes the game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request to the
// API server, and the JSON response is formatted into readable text. Keeping
// the MCP layer stateless means agents and human players over HTTP always
// see the same authoritative state.
//
// MCP Tools:
//   - create_game, list_games, get_game, game_state, game_log
//   - roll, resolve, buy, decline, bid, resolve_auction, end_turn
//   - asset_action (mortgage, unmortgage, build_house, build_hotel,
//     sell_house, sell_hotel)
//   - jail_action (pay_fine, use_card, roll_doubles)
//   - declare_bankrupt
//   - list_rulesets, game_instructions
//
// Transport Modes:
//
// The underlying server supports stdio for local MCP clients and HTTP for
// remote integration. main.go selects the mode.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
