package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/bot"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// record holds one live session: a game, its pending events and its creation
// time. moveMu serializes move/reset application per session; stateMu guards
// the game fields and the event queue, so reads and drains are never blocked
// by a bot search in flight.
type record struct {
	moveMu  sync.Mutex
	stateMu sync.RWMutex

	game      *entity.Game
	events    []Event
	createdAt time.Time
}

// Summary is the read-only listing form of a session.
type Summary struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Winner       string    `json:"winner,omitempty"`
	IsDraw       bool      `json:"is_draw"`
	MoveCount    int       `json:"move_count"`
	ParticipantX string    `json:"player_x_type"`
	ParticipantO string    `json:"player_o_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Manager owns every live game. Sessions are independent: the manager-level
// lock covers only map insert/delete; everything else is per-session.
type Manager struct {
	logger   *slog.Logger
	strategy bot.Strategy

	mu       sync.RWMutex
	sessions map[string]*record
}

func NewManager(logger *slog.Logger, strategy bot.Strategy) *Manager {
	return &Manager{
		logger:   logger,
		strategy: strategy,
		sessions: make(map[string]*record),
	}
}

// CreateGame allocates a new session and emits a game_created event. The
// returned game is a snapshot the caller may keep.
func (that *Manager) CreateGame(participantX, participantO string) *entity.Game {
	game := entity.NewGame(uuid.NewString(), participantX, participantO)

	sess := &record{
		game:      game,
		createdAt: time.Now(),
	}
	sess.events = append(sess.events, Event{
		Type:   EventGameCreated,
		GameID: game.ID,
		State:  game.Snapshot(),
	})

	that.mu.Lock()
	that.sessions[game.ID] = sess
	that.mu.Unlock()

	that.logger.Info("game created", "gameID", game.ID, "playerX", participantX, "playerO", participantO)

	return game.Snapshot()
}

// GetGame returns a snapshot of the session's game.
func (that *Manager) GetGame(id string) (*entity.Game, error) {
	sess, err := that.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.stateMu.RLock()
	defer sess.stateMu.RUnlock()

	return sess.game.Snapshot(), nil
}

// MakeMove applies one move, serialized against concurrent moves on the same
// session. On success the move event (and a game_over event, if the move ended
// the game) is queued before the serialized section is released.
func (that *Manager) MakeMove(id string, row, col int, player string) (*entity.Game, error) {
	sess, err := that.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.moveMu.Lock()
	defer sess.moveMu.Unlock()

	return that.applyMove(sess, row, col, player)
}

// EngineMove asks the bot for a move and submits it through the regular move
// path. The search runs on a private clone outside the state lock, so
// concurrent reads on the same session do not wait for it. An empty difficulty
// selects the manager's default strategy.
func (that *Manager) EngineMove(id, difficulty string) (*entity.Game, error) {
	sess, err := that.lookup(id)
	if err != nil {
		return nil, err
	}

	strategy := that.strategy
	if difficulty != "" {
		strategy = bot.ForDifficulty(difficulty)
	}

	sess.moveMu.Lock()
	defer sess.moveMu.Unlock()

	sess.stateMu.RLock()
	snapshot := sess.game.Clone()
	sess.stateMu.RUnlock()

	if !snapshot.IsInProgress() {
		sess.stateMu.RLock()
		outcome := sess.game.Snapshot()
		sess.stateMu.RUnlock()

		// Attach the outcome so the caller need not re-fetch state.
		return outcome, apperror.ErrGameNotInProgress
	}

	move, err := strategy.PickMove(snapshot)
	if err != nil {
		return nil, fmt.Errorf("bot failed to pick a move: %w", err)
	}

	return that.applyMove(sess, move.Row, move.Col, snapshot.Turn)
}

// ResetGame returns the session's game to its initial state and emits a reset
// event.
func (that *Manager) ResetGame(id string) (*entity.Game, error) {
	sess, err := that.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.moveMu.Lock()
	defer sess.moveMu.Unlock()

	sess.stateMu.Lock()
	defer sess.stateMu.Unlock()

	sess.game.Reset()
	snapshot := sess.game.Snapshot()
	sess.events = append(sess.events, Event{
		Type:   EventReset,
		GameID: id,
		State:  snapshot,
	})

	that.logger.Info("game reset", "gameID", id)

	return snapshot, nil
}

// DeleteGame removes the session and its event queue atomically. It reports
// whether a session was actually removed.
func (that *Manager) DeleteGame(id string) bool {
	that.mu.Lock()
	_, ok := that.sessions[id]
	if ok {
		delete(that.sessions, id)
	}
	that.mu.Unlock()

	if ok {
		that.logger.Info("game deleted", "gameID", id)
	}

	return ok
}

// DrainEvents atomically snapshots and clears the session's event queue.
// Events queued after the drain point stay behind for the next drain; two
// concurrent drains never see the same event.
func (that *Manager) DrainEvents(id string) ([]Event, error) {
	sess, err := that.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.stateMu.Lock()
	events := sess.events
	sess.events = nil
	sess.stateMu.Unlock()

	return events, nil
}

// ListGames returns summaries of live sessions, oldest first. An empty filter
// lists everything. Each summary is read under the session's state lock, never
// mid-mutation.
func (that *Manager) ListGames(statusFilter string) []Summary {
	that.mu.RLock()
	records := make([]*record, 0, len(that.sessions))
	for _, sess := range that.sessions {
		records = append(records, sess)
	}
	that.mu.RUnlock()

	summaries := make([]Summary, 0, len(records))
	for _, sess := range records {
		sess.stateMu.RLock()
		summary := Summary{
			ID:           sess.game.ID,
			Status:       sess.game.Status,
			Winner:       sess.game.Winner,
			IsDraw:       sess.game.IsDraw,
			MoveCount:    sess.game.MoveCount,
			ParticipantX: sess.game.ParticipantX,
			ParticipantO: sess.game.ParticipantO,
			CreatedAt:    sess.game.CreatedAt,
			UpdatedAt:    sess.game.UpdatedAt,
		}
		sess.stateMu.RUnlock()

		if statusFilter != "" && summary.Status != statusFilter {
			continue
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})

	return summaries
}

// EvictStale removes finished sessions older than ttl. Sessions still in
// progress are never evicted, regardless of age.
func (that *Manager) EvictStale(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for id, sess := range that.sessions {
		sess.stateMu.RLock()
		finished := sess.game.IsFinished()
		sess.stateMu.RUnlock()

		if finished && sess.createdAt.Before(cutoff) {
			delete(that.sessions, id)
			removed++
		}
	}

	return removed
}

// EvictOldestFinished keeps the keepCount most recently created finished
// sessions and removes the rest. Sessions still in progress are untouched.
func (that *Manager) EvictOldestFinished(keepCount int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	type aged struct {
		id        string
		createdAt time.Time
	}

	finished := make([]aged, 0, len(that.sessions))
	for id, sess := range that.sessions {
		sess.stateMu.RLock()
		if sess.game.IsFinished() {
			finished = append(finished, aged{id: id, createdAt: sess.createdAt})
		}
		sess.stateMu.RUnlock()
	}

	sort.Slice(finished, func(i, j int) bool {
		return finished[i].createdAt.After(finished[j].createdAt)
	})

	removed := 0
	for _, sess := range finished[min(max(keepCount, 0), len(finished)):] {
		delete(that.sessions, sess.id)
		removed++
	}

	return removed
}

func (that *Manager) lookup(id string) (*record, error) {
	that.mu.RLock()
	sess, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return sess, nil
}

// applyMove mutates the game and queues the resulting events. The caller must
// hold the session's moveMu.
func (that *Manager) applyMove(sess *record, row, col int, player string) (*entity.Game, error) {
	sess.stateMu.Lock()
	defer sess.stateMu.Unlock()

	mover := player
	if mover == entity.EmptyCell {
		mover = sess.game.Turn
	}

	if err := sess.game.ApplyMove(row, col, player); err != nil {
		if errors.Is(err, apperror.ErrGameNotInProgress) {
			// Attach the current outcome so the caller need not re-fetch state.
			return sess.game.Snapshot(), err
		}
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	snapshot := sess.game.Snapshot()
	sess.events = append(sess.events, Event{
		Type:   EventMove,
		GameID: snapshot.ID,
		Move: &MovePayload{
			Player:     mover,
			Row:        row,
			Col:        col,
			MoveNumber: snapshot.MoveCount,
			NextPlayer: snapshot.Turn,
		},
	})

	if snapshot.IsFinished() {
		sess.events = append(sess.events, Event{
			Type:   EventGameOver,
			GameID: snapshot.ID,
			Outcome: &GameOutcome{
				Winner:      snapshot.Winner,
				WinningLine: snapshot.WinningLine,
				IsDraw:      snapshot.IsDraw,
			},
		})

		that.logger.Info("game over", "gameID", snapshot.ID, "winner", snapshot.Winner, "isDraw", snapshot.IsDraw)
	}

	return snapshot, nil
}
