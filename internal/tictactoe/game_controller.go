package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MakeTurn - validates and applies player's mark at (row, col), then updates
// the game status.
func MakeTurn(gameInstance *entity.Game, player entity.Mark, row, col int) error {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(gameInstance, player, row, col); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if err := gameInstance.Board.Mark(row, col, player); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	updateGameStatus(gameInstance, player)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, player entity.Mark, row, col int) error {
	if !(entity.Coord{Row: row, Col: col}).Valid() {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCell, row, col)
	}

	if gameInstance.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if !gameInstance.Board.IsEmptyCell(row, col) {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidMove, row, col)
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, player entity.Mark) {
	outcome := gameInstance.Board.TerminalState()

	switch {
	case outcome.HasWinner():
		gameInstance.Outcome = outcome
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = entity.Empty
	case gameInstance.Board.IsFull():
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = entity.Empty
	default:
		gameInstance.Turn = player.Opponent()
	}
}
