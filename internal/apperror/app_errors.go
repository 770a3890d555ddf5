package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrIllegalMove      = errors.New("cell is out of bounds or already occupied")
	ErrInvalidMark      = errors.New("mark must be X or O")
)
