package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mark is the value held by a cell.
type Mark uint8

const (
	Empty Mark = iota
	MarkA      // player 1, maximizing side
	MarkB      // player 2
)

const (
	symbolEmpty = "."
	symbolA     = "X"
	symbolB     = "O"
)

func (m Mark) String() string {
	switch m {
	case MarkA:
		return symbolA
	case MarkB:
		return symbolB
	default:
		return symbolEmpty
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkA:
		return MarkB
	case MarkB:
		return MarkA
	default:
		return Empty
	}
}

// IsPlayer reports whether m is one of the two player marks.
func (m Mark) IsPlayer() bool {
	return m == MarkA || m == MarkB
}

// ParseMark - accepts "X"/"O" (any case) and "1"/"2".
func ParseMark(s string) (Mark, error) {
	switch s {
	case "X", "x", "1":
		return MarkA, nil
	case "O", "o", "2":
		return MarkB, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}
