package bot

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	DifficultyEasy   = "easy"
	DifficultySimple = "simple"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Strategy picks the next move for whoever's turn it is. Implementations must
// treat the game as read-only; exploration happens on private clones.
type Strategy interface {
	PickMove(game *entity.Game) (entity.Position, error)
}

// ForDifficulty maps a difficulty level to a strategy. Unknown levels fall
// back to hard, matching the default bot behavior.
func ForDifficulty(difficulty string) Strategy {
	switch difficulty {
	case DifficultyEasy:
		return NewRandomStrategy()
	case DifficultySimple:
		return NewHeuristicStrategy()
	case DifficultyMedium:
		return &mediumStrategy{
			random:  NewRandomStrategy(),
			minimax: NewMinimaxStrategy(),
		}
	default:
		return NewMinimaxStrategy()
	}
}

// mediumStrategy flips a coin per call between the random and minimax
// strategies, so the same position can yield different moves on repeated
// requests within one game.
type mediumStrategy struct {
	random  Strategy
	minimax Strategy
}

func (that *mediumStrategy) PickMove(game *entity.Game) (entity.Position, error) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return that.minimax.PickMove(game)
	}
	return that.random.PickMove(game)
}
