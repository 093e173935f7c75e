package bot

import (
	"math"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// winScore is the base value of a decided game; the search subtracts the depth
// so that faster wins and slower losses score better.
const winScore = 10

// minimaxStrategy searches the full game tree with alpha-beta pruning. The
// branching factor is at most 9, so no memoization is needed.
type minimaxStrategy struct{}

func NewMinimaxStrategy() Strategy {
	return &minimaxStrategy{}
}

func (that *minimaxStrategy) PickMove(game *entity.Game) (entity.Position, error) {
	if game.IsFinished() {
		return entity.Position{}, apperror.ErrNoAvailableMove
	}

	moves := game.Board.AvailableMoves()
	if len(moves) == 0 {
		return entity.Position{}, apperror.ErrNoAvailableMove
	}

	// Opening book: the first move is always the center; the reply takes the
	// center if it is still open, otherwise a random corner.
	if game.MoveCount == 0 {
		return entity.Position{Row: 1, Col: 1}, nil
	}

	if game.MoveCount == 1 {
		if game.Board[1][1] == entity.EmptyCell {
			return entity.Position{Row: 1, Col: 1}, nil
		}
		return corners[rand.Intn(len(corners))], nil //nolint: gosec // it's ok
	}

	state := game.Clone()
	mover := state.Turn

	bestScore := math.MinInt
	bestMove := moves[0]
	alpha, beta := math.MinInt, math.MaxInt

	for _, move := range moves {
		board := state.Board
		board[move.Row][move.Col] = mover

		score := search(board, mover, 1, alpha, beta, false)
		if score > bestScore {
			bestScore = score
			bestMove = move
		}

		if score > alpha {
			alpha = score
		}
	}

	return bestMove, nil
}

// search scores a position from the mover's perspective. Alpha-beta bounds are
// carried across sibling moves; a branch is cut as soon as beta <= alpha.
func search(board entity.Board, mover string, depth, alpha, beta int, maximizing bool) int {
	if winner, _ := board.Result(); winner != entity.EmptyCell {
		if winner == mover {
			return winScore - depth
		}
		return depth - winScore
	}

	if board.IsFull() {
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, move := range board.AvailableMoves() {
			next := board
			next[move.Row][move.Col] = mover

			score := search(next, mover, depth+1, alpha, beta, false)
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	opponent := entity.ToggleMark(mover)
	for _, move := range board.AvailableMoves() {
		next := board
		next[move.Row][move.Col] = opponent

		score := search(next, mover, depth+1, alpha, beta, true)
		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return best
}
