package bot

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type randomStrategy struct{}

func NewRandomStrategy() Strategy {
	return &randomStrategy{}
}

func (that *randomStrategy) PickMove(game *entity.Game) (entity.Position, error) {
	if game.IsFinished() {
		return entity.Position{}, apperror.ErrNoAvailableMove
	}

	moves := game.Board.AvailableMoves()
	if len(moves) == 0 {
		return entity.Position{}, apperror.ErrNoAvailableMove
	}

	return moves[rand.Intn(len(moves))], nil //nolint: gosec // it's ok
}
