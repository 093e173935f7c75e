package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
)

// handleEvents streams a game's events as server-sent events. It polls
// DrainEvents on a fixed cadence; the drain itself is what guarantees
// at-most-once delivery, the transport just forwards. When the session
// disappears mid-stream a final game_deleted event is sent and the stream
// ends.
func (that *Server) handleEvents(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleEvents")

	gameID := chi.URLParam(req, "id")

	if _, err := that.manager.GetGame(gameID); err != nil {
		that.respondError(writer, err, nil)
		return
	}

	flusher, ok := writer.(http.Flusher)
	if !ok {
		respondJSON(writer, http.StatusInternalServerError, gameResponse{Status: "error", Message: "streaming unsupported"})
		return
	}

	writer.Header().Set("Content-Type", "text/event-stream")
	writer.Header().Set("Cache-Control", "no-cache")
	writer.Header().Set("Connection", "keep-alive")
	writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	log.Info("event stream opened", "gameID", gameID)

	poll := time.NewTicker(that.pollInterval)
	defer poll.Stop()

	heartbeat := time.NewTicker(that.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-req.Context().Done():
			log.Info("event stream closed by client", "gameID", gameID)
			return

		case <-heartbeat.C:
			fmt.Fprint(writer, ": ping\n\n")
			flusher.Flush()

		case <-poll.C:
			events, err := that.manager.DrainEvents(gameID)
			if errors.Is(err, apperror.ErrSessionNotFound) {
				writeEvent(writer, session.Event{Type: session.EventGameDeleted, GameID: gameID})
				flusher.Flush()

				log.Info("event stream ended, game deleted", "gameID", gameID)
				return
			}
			if err != nil {
				log.Error("failed to drain events", "gameID", gameID, "error", err)
				return
			}

			for _, event := range events {
				writeEvent(writer, event)
			}
			if len(events) > 0 {
				flusher.Flush()
			}
		}
	}
}

func writeEvent(writer http.ResponseWriter, event session.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	fmt.Fprintf(writer, "data: %s\n\n", payload)
}
