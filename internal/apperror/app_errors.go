package apperror

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrOutOfRangeIndex = errors.New("cell index out of range")

	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrOpponentThinking  = errors.New("opponent is thinking")
	ErrOpponentFailed    = errors.New("opponent failed to move, reset the game")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionIDRequired = errors.New("session id is required")
)
