package apperror

import "errors"

var (
	ErrInvalidMove  = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell coordinate")
	ErrInvalidMark  = errors.New("invalid player mark")
	ErrNoLegalMove  = errors.New("no legal move available")
	ErrUnknownMode  = errors.New("unknown search mode")
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
)
