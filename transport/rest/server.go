package rest

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
)

// Server exposes the session manager over HTTP/JSON, mirroring the arena's
// REST surface: create, state, move, ai-move, reset, delete, list and an SSE
// event stream per game.
type Server struct {
	logger  *slog.Logger
	manager *session.Manager

	pollInterval time.Duration
	heartbeat    time.Duration
}

func New(logger *slog.Logger, manager *session.Manager, pollInterval, heartbeat time.Duration) *Server {
	return &Server{
		logger:       logger,
		manager:      manager,
		pollInterval: pollInterval,
		heartbeat:    heartbeat,
	}
}

// Routes builds the router for the REST surface.
func (that *Server) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)

	router.Get("/health", that.handleHealth)

	router.Route("/api", func(router chi.Router) {
		router.Post("/game/create", that.handleCreateGame)
		router.Get("/games", that.handleListGames)

		router.Route("/game/{id}", func(router chi.Router) {
			router.Get("/state", that.handleGetState)
			router.Post("/move", that.handleMakeMove)
			router.Post("/ai-move", that.handleEngineMove)
			router.Post("/reset", that.handleResetGame)
			router.Delete("/", that.handleDeleteGame)
			router.Get("/events", that.handleEvents)
		})
	})

	return router
}
