package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/parkside-games/monopoly/game/engine"
	"github.com/parkside-games/monopoly/game/service"
	"github.com/parkside-games/monopoly/game/session"
	"github.com/parkside-games/monopoly/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Game management
	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleDeleteGame).Methods("DELETE")
	api.HandleFunc("/games/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/games/{id}/log", s.handleGetLog).Methods("GET")

	// Turn commands
	api.HandleFunc("/games/{id}/roll", s.command("ROLL", s.service.Roll)).Methods("POST")
	api.HandleFunc("/games/{id}/resolve", s.command("RESOLVE", s.service.ResolveTile)).Methods("POST")
	api.HandleFunc("/games/{id}/buy", s.command("BUY", s.service.BuyProperty)).Methods("POST")
	api.HandleFunc("/games/{id}/decline", s.command("DECLINE", s.service.DeclinePurchase)).Methods("POST")
	api.HandleFunc("/games/{id}/bid", s.handleBid).Methods("POST")
	api.HandleFunc("/games/{id}/auction-resolve", s.command("AUCTION", s.service.ResolveAuction)).Methods("POST")
	api.HandleFunc("/games/{id}/end-turn", s.command("END", s.service.EndTurn)).Methods("POST")

	// Asset commands
	api.HandleFunc("/games/{id}/mortgage", s.tileCommand("MORTGAGE", s.service.Mortgage)).Methods("POST")
	api.HandleFunc("/games/{id}/unmortgage", s.tileCommand("UNMORTGAGE", s.service.Unmortgage)).Methods("POST")
	api.HandleFunc("/games/{id}/build-house", s.tileCommand("BUILD_HOUSE", s.service.BuildHouse)).Methods("POST")
	api.HandleFunc("/games/{id}/build-hotel", s.tileCommand("BUILD_HOTEL", s.service.BuildHotel)).Methods("POST")
	api.HandleFunc("/games/{id}/sell-house", s.tileCommand("SELL_HOUSE", s.service.SellHouse)).Methods("POST")
	api.HandleFunc("/games/{id}/sell-hotel", s.tileCommand("SELL_HOTEL", s.service.SellHotel)).Methods("POST")

	// Jail and bankruptcy
	api.HandleFunc("/games/{id}/jail-fine", s.command("JAIL_FINE", s.service.PayJailFine)).Methods("POST")
	api.HandleFunc("/games/{id}/jail-card", s.command("JAIL_CARD", s.service.UseJailCard)).Methods("POST")
	api.HandleFunc("/games/{id}/jail-roll", s.command("JAIL_ROLL", s.service.RollForJailDoubles)).Methods("POST")
	api.HandleFunc("/games/{id}/bankrupt", s.command("BANKRUPT", s.service.DeclareBankrupt)).Methods("POST")

	// Rule sets
	api.HandleFunc("/rulesets", s.handleListRuleSets).Methods("GET")
	api.HandleFunc("/rulesets", s.handleCreateRuleSet).Methods("POST")
	api.HandleFunc("/rulesets/{name}", s.handleGetRuleSet).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps engine errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, engine.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, engine.ErrIllegalTransition),
		errors.Is(err, engine.ErrGameOver),
		errors.Is(err, engine.ErrAlreadyOwned),
		errors.Is(err, engine.ErrNotOwned),
		errors.Is(err, engine.ErrAlreadyMortgaged),
		errors.Is(err, engine.ErrNotMortgaged):
		return http.StatusConflict
	case errors.Is(err, engine.ErrNotFound),
		errors.Is(err, service.ErrRuleSetNotFound),
		errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// Game Handlers

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.CreateGame(r.Context(), req)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	fmt.Printf("[CREATE] game=%s rules=%s players=%d seed=%d\n",
		info.ID, info.RuleSet, len(info.GameState.Players), info.GameState.Dice.Seed)

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.service.ListGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort") // "created" or "accessed" (default)
	order := query.Get("order") // "asc" or "desc" (default)
	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(games, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = games[i].CreatedAt, games[j].CreatedAt
		} else {
			ti, tj = games[i].LastAccessedAt, games[j].LastAccessedAt
		}
		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	limit := len(games)
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(games) {
			limit = l
		}
	}
	games = games[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(games),
		"games": games,
		"sort":  sortBy,
		"order": order,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	info, err := s.service.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if err := s.service.DeleteGame(r.Context(), gameID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Game %s deleted", gameID),
	})
}

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	state, err := s.service.GetGameState(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var opts service.LogOptions
	query := r.URL.Query()
	if sinceStr := query.Get("since"); sinceStr != "" {
		if n, err := strconv.Atoi(sinceStr); err == nil && n >= 0 {
			opts.Since = n
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	log, err := s.service.GetLog(r.Context(), gameID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, log)
}

// Command Handlers

type commandFunc func(ctx context.Context, gameID string) (*service.CommandResult, error)

// command builds a handler for a body-less game command. All turn, jail and
// bankruptcy commands share this shape.
func (s *Server) command(name string, run commandFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := mux.Vars(r)["id"]

		result, err := run(r.Context(), gameID)
		if err != nil {
			fmt.Printf("[%s] game=%s status=FAIL err=%v\n", name, gameID, err)
			respondError(w, statusForError(err), err.Error())
			return
		}

		s.broadcast(gameID, result)
		fmt.Printf("[%s] game=%s phase=%s prompt=%s\n", name, gameID, result.Phase, promptName(result.Prompt))

		respondJSON(w, http.StatusOK, result)
	}
}

// tileCommand builds a handler for an asset command that targets one tile.
func (s *Server) tileCommand(name string, run func(ctx context.Context, gameID string, tileID int) (*service.CommandResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := mux.Vars(r)["id"]

		var req struct {
			Tile int `json:"tile"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		result, err := run(r.Context(), gameID, req.Tile)
		if err != nil {
			fmt.Printf("[%s] game=%s tile=%d status=FAIL err=%v\n", name, gameID, req.Tile, err)
			respondError(w, statusForError(err), err.Error())
			return
		}

		s.broadcast(gameID, result)
		fmt.Printf("[%s] game=%s tile=%d phase=%s\n", name, gameID, req.Tile, result.Phase)

		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleBid(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req struct {
		Player int `json:"player"`
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.PlaceBid(r.Context(), gameID, req.Player, req.Amount)
	if err != nil {
		fmt.Printf("[BID] game=%s player=%d amount=%d status=FAIL err=%v\n", gameID, req.Player, req.Amount, err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	s.broadcast(gameID, result)
	fmt.Printf("[BID] game=%s player=%d amount=%d\n", gameID, req.Player, req.Amount)

	respondJSON(w, http.StatusOK, result)
}

// broadcast pushes the command result to WebSocket subscribers of the game.
func (s *Server) broadcast(gameID string, result *service.CommandResult) {
	if s.hub != nil {
		s.hub.BroadcastToGame(gameID, result)
	}
}

func promptName(p *engine.Prompt) string {
	if p == nil {
		return "none"
	}
	return string(p.Kind)
}

// Rule Set Handlers

func (s *Server) handleListRuleSets(w http.ResponseWriter, r *http.Request) {
	ruleSets, err := s.service.ListRuleSets(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ruleSets)
}

func (s *Server) handleGetRuleSet(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	config, err := s.service.LoadRuleSet(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateRuleSet(w http.ResponseWriter, r *http.Request) {
	var config engine.GameConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if config.Name == "" {
		respondError(w, http.StatusBadRequest, "Rule set name is required")
		return
	}

	if err := s.service.SaveRuleSet(r.Context(), config.Name, &config); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save rule set: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Rule set saved successfully",
		"rule_set_id": config.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "game parameter required", http.StatusBadRequest)
		return
	}

	// Verify the game exists before upgrading
	if _, err := s.service.GetGame(context.Background(), gameID); err != nil {
		http.Error(w, "Invalid game", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, gameID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
