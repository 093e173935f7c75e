package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

const (
	KindHuman = "human"
	KindAgent = "agent"
	KindAI    = "ai"
)

// Move is one accepted turn, recorded in the game history.
type Move struct {
	Player     string    `json:"player"`
	Row        int       `json:"row"`
	Col        int       `json:"col"`
	MoveNumber int       `json:"move_number"`
	Timestamp  time.Time `json:"timestamp"`
}

// Game is one game instance. It is not safe for concurrent use; the session
// manager serializes every mutation per game.
type Game struct {
	ID           string    `json:"id"`
	Board        Board     `json:"board"`
	Turn         string    `json:"turn,omitempty"`
	Status       string    `json:"status"`
	Winner       string    `json:"winner,omitempty"`
	WinningLine  *Line     `json:"winning_line,omitempty"`
	IsDraw       bool      `json:"is_draw"`
	MoveCount    int       `json:"move_count"`
	MoveHistory  []Move    `json:"move_history,omitempty"`
	ParticipantX string    `json:"player_x_type"`
	ParticipantO string    `json:"player_o_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewGame(id, participantX, participantO string) *Game {
	now := time.Now()

	return &Game{
		ID:           id,
		Turn:         PlayerX,
		Status:       StatusInProgress,
		ParticipantX: participantX,
		ParticipantO: participantO,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ApplyMove places the given player's mark and evaluates termination. An empty
// player means "whoever's turn it is". The scan order is winner first, then
// draw; otherwise the turn flips to the other player.
func (that *Game) ApplyMove(row, col int, player string) error {
	if that.Status != StatusInProgress {
		return apperror.ErrGameNotInProgress
	}

	if player == EmptyCell {
		player = that.Turn
	} else if player != that.Turn {
		return fmt.Errorf("%w: current turn is %s", apperror.ErrWrongTurn, that.Turn)
	}

	if !that.Board.InRange(row, col) {
		return fmt.Errorf("%w: cell (%d,%d) is out of range", apperror.ErrIllegalCell, row, col)
	}

	if that.Board[row][col] != EmptyCell {
		return fmt.Errorf("%w: cell (%d,%d) is occupied", apperror.ErrIllegalCell, row, col)
	}

	that.Board[row][col] = player
	that.MoveCount++
	that.MoveHistory = append(that.MoveHistory, Move{
		Player:     player,
		Row:        row,
		Col:        col,
		MoveNumber: that.MoveCount,
		Timestamp:  time.Now(),
	})
	that.UpdatedAt = time.Now()

	switch winner, line := that.Board.Result(); {
	case winner != EmptyCell:
		that.Winner = winner
		that.WinningLine = line
		that.Status = StatusFinished
		that.Turn = EmptyCell
	case that.MoveCount == BoardSize*BoardSize:
		that.IsDraw = true
		that.Status = StatusFinished
		that.Turn = EmptyCell
	default:
		that.Turn = ToggleMark(player)
	}

	return nil
}

// Reset returns the game to its initial state, keeping its identity and
// participant kinds.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Status = StatusInProgress
	that.Winner = EmptyCell
	that.WinningLine = nil
	that.IsDraw = false
	that.MoveCount = 0
	that.MoveHistory = nil
	that.UpdatedAt = time.Now()
}

// Clone copies just the state the search needs to explore hypothetical moves.
// History and timestamps are deliberately left out.
func (that *Game) Clone() *Game {
	return &Game{
		ID:        that.ID,
		Board:     that.Board,
		Turn:      that.Turn,
		Status:    that.Status,
		Winner:    that.Winner,
		MoveCount: that.MoveCount,
	}
}

// Snapshot deep-copies the whole game for handing to callers.
func (that *Game) Snapshot() *Game {
	snapshot := *that

	if that.WinningLine != nil {
		line := *that.WinningLine
		snapshot.WinningLine = &line
	}

	if that.MoveHistory != nil {
		snapshot.MoveHistory = make([]Move, len(that.MoveHistory))
		copy(snapshot.MoveHistory, that.MoveHistory)
	}

	return &snapshot
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}
