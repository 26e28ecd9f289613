package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game is the turn state a controller keeps around a Board.
type Game struct {
	Board   Board
	First   Mark
	Turn    Mark
	Status  string
	Outcome Outcome
}

func NewGame(first Mark) (*Game, error) {
	if !first.IsPlayer() {
		return nil, fmt.Errorf("%w: first player %v", apperror.ErrInvalidMark, first)
	}

	return &Game{
		Board:  NewBoard(),
		First:  first,
		Turn:   first,
		Status: StatusOngoing,
	}, nil
}

// Reset replaces the whole game state; the first player stays the same.
func (that *Game) Reset() {
	*that = Game{
		Board:  NewBoard(),
		First:  that.First,
		Turn:   that.First,
		Status: StatusOngoing,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsDraw reports a finished game without a winner.
func (that *Game) IsDraw() bool {
	return that.IsFinished() && !that.Outcome.HasWinner()
}

func (that *Game) Winner() Mark {
	return that.Outcome.Winner
}

func (that *Game) ConfirmOngoingState() error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	return nil
}
