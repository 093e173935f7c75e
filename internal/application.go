package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-arena/internal/bot"
	"github.com/rocketscienceinc/tictactoe-arena/internal/config"
	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
	"github.com/rocketscienceinc/tictactoe-arena/transport/rest"
	"github.com/rocketscienceinc/tictactoe-arena/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	strategy := bot.ForDifficulty(conf.Bot.Difficulty)
	manager := session.NewManager(logger, strategy)

	go manager.RunJanitor(ctx, conf.Sessions.CleanupInterval, conf.Sessions.TTL, conf.Sessions.KeepFinished)

	restServer := rest.New(logger, manager, conf.Events.PollInterval, conf.Events.Heartbeat)
	wsServer := websocket.New(logger, manager, conf.Events.PollInterval)

	router := chi.NewRouter()
	router.Mount("/", restServer.Routes())
	router.Get("/ws/{id}", wsServer.Handle)

	srv := &http.Server{
		Addr:        ":" + conf.HTTPPort,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		// No write timeout: SSE and WebSocket streams stay open indefinitely.
	}

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErrCh <- err
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}

		return nil
	}
}
