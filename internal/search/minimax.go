package search

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Minimax searches the whole game tree below board. MarkA moves on the
// maximizing plies and MarkB on the minimizing ones. Every child is explored on
// its own copy of the board, so board itself is never modified. Ties keep the
// first move in row-major order.
func Minimax(board entity.Board, maximizing bool) Result {
	switch outcome := board.TerminalState(); {
	case outcome.Winner == entity.MarkA:
		return Result{Score: ScoreWinA}
	case outcome.Winner == entity.MarkB:
		return Result{Score: ScoreWinB}
	case board.IsFull():
		return Result{Score: ScoreDraw}
	}

	mark := entity.MarkB
	best := Result{Score: scoreCeiling}
	if maximizing {
		mark = entity.MarkA
		best.Score = scoreFloor
	}

	for cell := range board.EmptyCells() {
		child := board
		// cell came from EmptyCells, so Mark cannot fail
		_ = child.Mark(cell.Row, cell.Col, mark)

		score := Minimax(child, !maximizing).Score
		if (maximizing && score > best.Score) || (!maximizing && score < best.Score) {
			best = Result{Score: score, Move: cell, HasMove: true}
		}
	}

	return best
}
