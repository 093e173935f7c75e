package websocket

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Server pushes a game's drained events over a WebSocket connection. Each
// connected client gets its own drain loop; the session manager guarantees
// concurrent drains partition the queue without duplication.
type Server struct {
	logger  *slog.Logger
	manager *session.Manager

	pollInterval time.Duration
}

func New(logger *slog.Logger, manager *session.Manager, pollInterval time.Duration) *Server {
	return &Server{
		logger:       logger,
		manager:      manager,
		pollInterval: pollInterval,
	}
}

// Handle upgrades the request and streams events until the game is deleted or
// the client goes away.
func (that *Server) Handle(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "Handle")

	gameID := chi.URLParam(req, "id")

	if _, err := that.manager.GetGame(gameID); err != nil {
		http.Error(writer, apperror.ErrSessionNotFound.Error(), http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	log.Info("websocket connection established", "gameID", gameID)

	closed := make(chan struct{})
	go that.readPump(conn, closed)

	that.writePump(conn, gameID, closed)
}

// readPump discards inbound frames; it exists to service pongs and to notice
// the peer going away.
func (that *Server) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (that *Server) writePump(conn *websocket.Conn, gameID string, closed <-chan struct{}) {
	log := that.logger.With("method", "writePump", "gameID", gameID)

	poll := time.NewTicker(that.pollInterval)
	defer poll.Stop()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return

		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-poll.C:
			events, err := that.manager.DrainEvents(gameID)
			if errors.Is(err, apperror.ErrSessionNotFound) {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteJSON(session.Event{Type: session.EventGameDeleted, GameID: gameID})

				log.Info("websocket stream ended, game deleted")
				return
			}
			if err != nil {
				log.Error("failed to drain events", "error", err)
				return
			}

			for _, event := range events {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			}
		}
	}
}
