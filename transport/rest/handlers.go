package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type createGameRequest struct {
	PlayerXType string `json:"player_x_type"`
	PlayerOType string `json:"player_o_type"`
}

type makeMoveRequest struct {
	Row    *int   `json:"row"`
	Col    *int   `json:"col"`
	Player string `json:"player"`
}

type engineMoveRequest struct {
	Difficulty string `json:"difficulty"`
}

type gameResponse struct {
	Status    string       `json:"status"`
	Message   string       `json:"message,omitempty"`
	GameID    string       `json:"game_id,omitempty"`
	GameState *entity.Game `json:"game_state,omitempty"`
}

func (that *Server) handleHealth(writer http.ResponseWriter, _ *http.Request) {
	respondJSON(writer, http.StatusOK, map[string]string{"status": "ok"})
}

func (that *Server) handleCreateGame(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleCreateGame")

	var body createGameRequest
	if req.Body != nil {
		// An empty body means a human vs human game.
		_ = json.NewDecoder(req.Body).Decode(&body)
	}

	if body.PlayerXType == "" {
		body.PlayerXType = entity.KindHuman
	}
	if body.PlayerOType == "" {
		body.PlayerOType = entity.KindHuman
	}

	game := that.manager.CreateGame(body.PlayerXType, body.PlayerOType)

	log.Info("game created", "gameID", game.ID)

	respondJSON(writer, http.StatusOK, gameResponse{
		Status:    "success",
		GameID:    game.ID,
		GameState: game,
	})
}

func (that *Server) handleGetState(writer http.ResponseWriter, req *http.Request) {
	game, err := that.manager.GetGame(chi.URLParam(req, "id"))
	if err != nil {
		that.respondError(writer, err, nil)
		return
	}

	respondJSON(writer, http.StatusOK, gameResponse{
		Status:    "success",
		GameState: game,
	})
}

func (that *Server) handleMakeMove(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleMakeMove")

	var body makeMoveRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondJSON(writer, http.StatusBadRequest, gameResponse{Status: "error", Message: "invalid request body"})
		return
	}

	if body.Row == nil || body.Col == nil {
		respondJSON(writer, http.StatusBadRequest, gameResponse{Status: "error", Message: "row and col are required"})
		return
	}

	gameID := chi.URLParam(req, "id")

	game, err := that.manager.MakeMove(gameID, *body.Row, *body.Col, body.Player)
	if err != nil {
		that.respondError(writer, err, game)
		return
	}

	log.Info("move accepted", "gameID", gameID, "row", *body.Row, "col", *body.Col)

	respondJSON(writer, http.StatusOK, gameResponse{
		Status:    "success",
		GameState: game,
	})
}

func (that *Server) handleEngineMove(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleEngineMove")

	var body engineMoveRequest
	if req.Body != nil {
		_ = json.NewDecoder(req.Body).Decode(&body)
	}

	gameID := chi.URLParam(req, "id")

	game, err := that.manager.EngineMove(gameID, body.Difficulty)
	if err != nil {
		that.respondError(writer, err, game)
		return
	}

	log.Info("bot move accepted", "gameID", gameID)

	respondJSON(writer, http.StatusOK, gameResponse{
		Status:    "success",
		GameState: game,
	})
}

func (that *Server) handleResetGame(writer http.ResponseWriter, req *http.Request) {
	game, err := that.manager.ResetGame(chi.URLParam(req, "id"))
	if err != nil {
		that.respondError(writer, err, nil)
		return
	}

	respondJSON(writer, http.StatusOK, gameResponse{
		Status:    "success",
		GameState: game,
	})
}

func (that *Server) handleDeleteGame(writer http.ResponseWriter, req *http.Request) {
	if !that.manager.DeleteGame(chi.URLParam(req, "id")) {
		respondJSON(writer, http.StatusNotFound, gameResponse{Status: "error", Message: apperror.ErrSessionNotFound.Error()})
		return
	}

	respondJSON(writer, http.StatusOK, gameResponse{Status: "success"})
}

func (that *Server) handleListGames(writer http.ResponseWriter, req *http.Request) {
	summaries := that.manager.ListGames(req.URL.Query().Get("status"))

	respondJSON(writer, http.StatusOK, map[string]any{
		"status": "success",
		"games":  summaries,
	})
}

// respondError maps the error taxonomy onto HTTP statuses. When a game
// snapshot accompanies the error (a finished game, a wrong turn), it is
// included so the caller need not re-fetch state.
func (that *Server) respondError(writer http.ResponseWriter, err error, game *entity.Game) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrGameNotInProgress),
		errors.Is(err, apperror.ErrWrongTurn),
		errors.Is(err, apperror.ErrIllegalCell),
		errors.Is(err, apperror.ErrNoAvailableMove):
		status = http.StatusBadRequest
	default:
		that.logger.Error("unexpected error", "error", err)
	}

	respondJSON(writer, status, gameResponse{
		Status:    "error",
		Message:   err.Error(),
		GameState: game,
	})
}

func respondJSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	_ = json.NewEncoder(writer).Encode(payload)
}
