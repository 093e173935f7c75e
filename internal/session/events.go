package session

import "github.com/rocketscienceinc/tictactoe-arena/internal/entity"

type EventType string

const (
	EventGameCreated EventType = "game_created"
	EventMove        EventType = "move"
	EventReset       EventType = "reset"
	EventGameOver    EventType = "game_over"
	EventGameDeleted EventType = "game_deleted"
)

// Event is one state-transition notification. Events are strictly ordered
// within a session by emission order; ordering across sessions is undefined.
type Event struct {
	Type    EventType    `json:"type"`
	GameID  string       `json:"game_id"`
	Move    *MovePayload `json:"move,omitempty"`
	Outcome *GameOutcome `json:"outcome,omitempty"`
	State   *entity.Game `json:"game_state,omitempty"`
}

// MovePayload describes an accepted move.
type MovePayload struct {
	Player     string `json:"player"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	MoveNumber int    `json:"move_number"`
	NextPlayer string `json:"next_player,omitempty"`
}

// GameOutcome describes how a game ended.
type GameOutcome struct {
	Winner      string       `json:"winner,omitempty"`
	WinningLine *entity.Line `json:"winning_line,omitempty"`
	IsDraw      bool         `json:"is_draw"`
}
