package apperror

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrWrongTurn         = errors.New("it's not your turn")
	ErrIllegalCell       = errors.New("illegal cell")
	ErrNoAvailableMove   = errors.New("no available moves")
)
