// internal/handlers/game.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/cardtable/wizard/internal/auth"
	"github.com/cardtable/wizard/internal/game"
	"github.com/cardtable/wizard/internal/models"
	"github.com/cardtable/wizard/internal/server"
)

// actionResponse is the envelope for every game action. Rejections are
// normal outcomes and ship with HTTP 200; the reason tells the client what
// to surface.
type actionResponse struct {
	Applied  bool             `json:"applied"`
	Reason   game.Reason      `json:"reason,omitempty"`
	GameID   string           `json:"game_id,omitempty"`
	PlayerID string           `json:"player_id,omitempty"`
	Token    string           `json:"token,omitempty"`
	State    *server.GameView `json:"state,omitempty"`
}

func respondAction(w http.ResponseWriter, g *models.GameState, res game.Result, playerID string) {
	resp := actionResponse{Applied: res.Applied, Reason: res.Reason}
	if g != nil {
		resp.GameID = g.GameID
		view := server.ViewFor(g, playerID)
		resp.State = &view
	}
	writeJSON(w, http.StatusOK, &resp)
}

func respondServerError(w http.ResponseWriter, err error) {
	if errors.Is(err, server.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

func respondSeated(w http.ResponseWriter, g *models.GameState, playerID, token string) {
	setSession(w, token)
	view := server.ViewFor(g, playerID)
	writeJSON(w, http.StatusOK, &actionResponse{
		Applied:  true,
		GameID:   g.GameID,
		PlayerID: playerID,
		Token:    token,
		State:    &view,
	})
}

// CreateGameHandler seats the caller as host of a new game and issues their
// session token.
func CreateGameHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req struct {
			Name string `json:"name"`
		}
		if err := readJSON(r, &req); err != nil || req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		playerID := server.NewID()
		token, err := auth.IssueToken(playerID)
		if err != nil {
			respondServerError(w, err)
			return
		}

		g, err := s.CreateGame(r.Context(), playerID, req.Name)
		if err != nil {
			respondServerError(w, err)
			return
		}
		respondSeated(w, g, playerID, token)
	}
}

// JoinGameHandler seats the caller in an existing waiting game.
func JoinGameHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req struct {
			GameID string `json:"game_id"`
			Name   string `json:"name"`
		}
		if err := readJSON(r, &req); err != nil || req.GameID == "" || req.Name == "" {
			writeError(w, http.StatusBadRequest, "game_id and name are required")
			return
		}

		playerID := server.NewID()
		g, res, err := s.Join(r.Context(), req.GameID, playerID, req.Name)
		if err != nil {
			respondServerError(w, err)
			return
		}
		if !res.Applied {
			respondAction(w, g, res, "")
			return
		}

		token, err := auth.IssueToken(playerID)
		if err != nil {
			respondServerError(w, err)
			return
		}
		respondSeated(w, g, playerID, token)
	}
}

// RejoinGameHandler reattaches a player to their seat, matching by session
// id when the caller still holds one, else by name. A fresh token is issued
// either way so a new device can take over a seat.
func RejoinGameHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req struct {
			GameID string `json:"game_id"`
			Name   string `json:"name"`
		}
		if err := readJSON(r, &req); err != nil || req.GameID == "" || req.Name == "" {
			writeError(w, http.StatusBadRequest, "game_id and name are required")
			return
		}

		playerID := playerIDFromRequest(r)
		if playerID == "" {
			playerID = server.NewID()
		}

		g, res, err := s.Rejoin(r.Context(), req.GameID, playerID, req.Name)
		if err != nil {
			respondServerError(w, err)
			return
		}
		if !res.Applied {
			respondAction(w, g, res, "")
			return
		}

		token, err := auth.IssueToken(playerID)
		if err != nil {
			respondServerError(w, err)
			return
		}
		respondSeated(w, g, playerID, token)
	}
}

type gameActionFunc func(ctx context.Context, gameID, playerID string) (*models.GameState, game.Result, error)

// simpleAction handles the actions whose only inputs are the game id and the
// acting player.
func simpleAction(act gameActionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		playerID := playerIDFromRequest(r)
		if playerID == "" {
			writeError(w, http.StatusUnauthorized, "missing or invalid session token")
			return
		}
		var req struct {
			GameID string `json:"game_id"`
		}
		if err := readJSON(r, &req); err != nil || req.GameID == "" {
			writeError(w, http.StatusBadRequest, "game_id is required")
			return
		}

		g, res, err := act(r.Context(), req.GameID, playerID)
		if err != nil {
			respondServerError(w, err)
			return
		}
		respondAction(w, g, res, playerID)
	}
}

// LeaveGameHandler marks the caller's seat disconnected.
func LeaveGameHandler(s *server.GameServer) http.HandlerFunc {
	return simpleAction(s.Leave)
}

// StartGameHandler deals the first round; host only.
func StartGameHandler(s *server.GameServer) http.HandlerFunc {
	return simpleAction(s.Start)
}

// AdvanceTrickHandler acknowledges a completed trick and opens the next one.
func AdvanceTrickHandler(s *server.GameServer) http.HandlerFunc {
	return simpleAction(func(ctx context.Context, gameID, _ string) (*models.GameState, game.Result, error) {
		return s.AdvanceTrick(ctx, gameID)
	})
}

// AdvanceRoundHandler acknowledges a completed round and deals the next one.
func AdvanceRoundHandler(s *server.GameServer) http.HandlerFunc {
	return simpleAction(func(ctx context.Context, gameID, _ string) (*models.GameState, game.Result, error) {
		return s.AdvanceRound(ctx, gameID)
	})
}

// ChooseTrumpHandler records the dealer's trump pick after a Wizard flip.
func ChooseTrumpHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		playerID := playerIDFromRequest(r)
		if playerID == "" {
			writeError(w, http.StatusUnauthorized, "missing or invalid session token")
			return
		}
		var req struct {
			GameID string `json:"game_id"`
			Suit   string `json:"suit"`
		}
		if err := readJSON(r, &req); err != nil || req.GameID == "" || req.Suit == "" {
			writeError(w, http.StatusBadRequest, "game_id and suit are required")
			return
		}

		g, res, err := s.ChooseTrump(r.Context(), req.GameID, playerID, models.Suit(req.Suit))
		if err != nil {
			respondServerError(w, err)
			return
		}
		respondAction(w, g, res, playerID)
	}
}

// PlaceBidHandler records the caller's bid for the current round.
func PlaceBidHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		playerID := playerIDFromRequest(r)
		if playerID == "" {
			writeError(w, http.StatusUnauthorized, "missing or invalid session token")
			return
		}
		var req struct {
			GameID string `json:"game_id"`
			Bid    *int   `json:"bid"`
		}
		if err := readJSON(r, &req); err != nil || req.GameID == "" || req.Bid == nil {
			writeError(w, http.StatusBadRequest, "game_id and bid are required")
			return
		}

		g, res, err := s.PlaceBid(r.Context(), req.GameID, playerID, *req.Bid)
		if err != nil {
			respondServerError(w, err)
			return
		}
		respondAction(w, g, res, playerID)
	}
}

// PlayCardHandler plays a card from the caller's hand into the trick.
func PlayCardHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		playerID := playerIDFromRequest(r)
		if playerID == "" {
			writeError(w, http.StatusUnauthorized, "missing or invalid session token")
			return
		}
		var req struct {
			GameID string       `json:"game_id"`
			Card   *models.Card `json:"card"`
		}
		if err := readJSON(r, &req); err != nil || req.GameID == "" || req.Card == nil {
			writeError(w, http.StatusBadRequest, "game_id and card are required")
			return
		}

		g, res, err := s.PlayCard(r.Context(), req.GameID, playerID, *req.Card)
		if err != nil {
			respondServerError(w, err)
			return
		}
		respondAction(w, g, res, playerID)
	}
}

// ChatHandler appends a chat message to the game's log.
func ChatHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		playerID := playerIDFromRequest(r)
		if playerID == "" {
			writeError(w, http.StatusUnauthorized, "missing or invalid session token")
			return
		}
		var req struct {
			GameID  string `json:"game_id"`
			Message string `json:"message"`
		}
		if err := readJSON(r, &req); err != nil || req.GameID == "" {
			writeError(w, http.StatusBadRequest, "game_id is required")
			return
		}

		g, res, err := s.PostChat(r.Context(), req.GameID, playerID, req.Message)
		if err != nil {
			respondServerError(w, err)
			return
		}
		respondAction(w, g, res, playerID)
	}
}

// StateHandler returns the caller's view of a game. Unauthenticated callers
// get the public view with no hand.
func StateHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		gameID := r.URL.Query().Get("game_id")
		if gameID == "" {
			writeError(w, http.StatusBadRequest, "game_id is required")
			return
		}

		g, err := s.State(r.Context(), gameID)
		if err != nil {
			respondServerError(w, err)
			return
		}
		view := server.ViewFor(g, playerIDFromRequest(r))
		writeJSON(w, http.StatusOK, &view)
	}
}

// PollHandler reports whether a game has changed since the given version.
// Clients poll this and fetch full state only on a change.
func PollHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		gameID := r.URL.Query().Get("game_id")
		if gameID == "" {
			writeError(w, http.StatusBadRequest, "game_id is required")
			return
		}
		since, err := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be an integer version")
			return
		}

		changed, version, err := s.Poll(r.Context(), gameID, since)
		if err != nil {
			respondServerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &struct {
			Changed bool  `json:"changed"`
			Version int64 `json:"version"`
		}{Changed: changed, Version: version})
	}
}

// ListGamesHandler returns the ids of every stored game.
func ListGamesHandler(s *server.GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		ids, err := s.ListGames(r.Context())
		if err != nil {
			respondServerError(w, err)
			return
		}
		if ids == nil {
			ids = []string{}
		}
		writeJSON(w, http.StatusOK, &struct {
			Games []string `json:"games"`
		}{Games: ids})
	}
}
