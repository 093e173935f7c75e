package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_Result(t *testing.T) {
	t.Run("Returns the winner and line for a completed diagonal", func(t *testing.T) {
		// Given: a board where O holds the anti-diagonal
		board := Board{
			{PlayerX, PlayerX, PlayerO},
			{EmptyCell, PlayerO, EmptyCell},
			{PlayerO, EmptyCell, PlayerX},
		}

		// When: the board is scanned
		winner, line := board.Result()

		// Then: O wins on the anti-diagonal
		assert.Equal(t, PlayerO, winner)
		assert.Equal(t, &Line{From: Position{Row: 0, Col: 2}, To: Position{Row: 2, Col: 0}}, line)
	})

	t.Run("Returns empty for a board with no completed line", func(t *testing.T) {
		board := Board{
			{PlayerX, PlayerO, EmptyCell},
			{EmptyCell, PlayerX, EmptyCell},
			{EmptyCell, EmptyCell, PlayerO},
		}

		winner, line := board.Result()

		assert.Equal(t, EmptyCell, winner)
		assert.Nil(t, line)
	})

	t.Run("At most one terminal condition holds at a time", func(t *testing.T) {
		// Given: a full board with a winner
		board := Board{
			{PlayerX, PlayerO, PlayerX},
			{PlayerO, PlayerX, PlayerO},
			{PlayerX, PlayerX, PlayerO},
		}

		// When: the board is scanned
		winner, _ := board.Result()

		// Then: the winner is reported even though the board is also full
		assert.Equal(t, PlayerX, winner)
		assert.True(t, board.IsFull())
	})
}

func TestBoard_AvailableMoves(t *testing.T) {
	t.Run("Lists open cells in row-major order", func(t *testing.T) {
		board := Board{
			{PlayerX, EmptyCell, PlayerO},
			{EmptyCell, PlayerX, PlayerO},
			{PlayerO, PlayerX, EmptyCell},
		}

		moves := board.AvailableMoves()

		assert.Equal(t, []Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 2, Col: 2}}, moves)
	})

	t.Run("An empty board has nine open cells", func(t *testing.T) {
		board := Board{}

		assert.Len(t, board.AvailableMoves(), 9)
		assert.False(t, board.IsFull())
	})
}

func TestToggleMark(t *testing.T) {
	assert.Equal(t, PlayerO, ToggleMark(PlayerX))
	assert.Equal(t, PlayerX, ToggleMark(PlayerO))
}
