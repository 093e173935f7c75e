package bot

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

var (
	corners = []entity.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}
	edges   = []entity.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 1}}
)

// heuristicStrategy is the rule-based fallback bot. Priority order: win now,
// block the opponent's win, take the center, take an open corner, take an
// open edge, take anything left.
type heuristicStrategy struct{}

func NewHeuristicStrategy() Strategy {
	return &heuristicStrategy{}
}

func (that *heuristicStrategy) PickMove(game *entity.Game) (entity.Position, error) {
	if game.IsFinished() {
		return entity.Position{}, apperror.ErrNoAvailableMove
	}

	moves := game.Board.AvailableMoves()
	if len(moves) == 0 {
		return entity.Position{}, apperror.ErrNoAvailableMove
	}

	mover := game.Turn
	opponent := entity.ToggleMark(mover)

	if move, ok := findWinningMove(game.Board, mover, moves); ok {
		return move, nil
	}

	if move, ok := findWinningMove(game.Board, opponent, moves); ok {
		return move, nil
	}

	if game.Board[1][1] == entity.EmptyCell {
		return entity.Position{Row: 1, Col: 1}, nil
	}

	if move, ok := pickRandomOpen(game.Board, corners); ok {
		return move, nil
	}

	if move, ok := pickRandomOpen(game.Board, edges); ok {
		return move, nil
	}

	return moves[rand.Intn(len(moves))], nil //nolint: gosec // it's ok
}

// findWinningMove returns the open cell that completes three-in-a-row for the
// given mark, if one exists.
func findWinningMove(board entity.Board, mark string, moves []entity.Position) (entity.Position, bool) {
	for _, move := range moves {
		board[move.Row][move.Col] = mark

		if winner, _ := board.Result(); winner == mark {
			return move, true
		}

		board[move.Row][move.Col] = entity.EmptyCell
	}

	return entity.Position{}, false
}

func pickRandomOpen(board entity.Board, candidates []entity.Position) (entity.Position, bool) {
	open := make([]entity.Position, 0, len(candidates))
	for _, pos := range candidates {
		if board[pos.Row][pos.Col] == entity.EmptyCell {
			open = append(open, pos)
		}
	}

	if len(open) == 0 {
		return entity.Position{}, false
	}

	return open[rand.Intn(len(open))], true //nolint: gosec // it's ok
}
