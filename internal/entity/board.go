package entity

import (
	"fmt"
	"iter"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	Size  = 3
	Cells = Size * Size
)

// Coord is a zero-based (row, col) position on the board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Valid reports whether c lies on the board.
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// Board is a 3x3 grid of marks. It is a value type: assigning a Board copies
// the whole grid, so a copy is an independent snapshot.
type Board struct {
	grid   [Size][Size]Mark
	marked int
}

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// ParseBoard decodes the representation produced by Key. Rows are read in
// row-major order; '.', 'X' and 'O' are accepted.
func ParseBoard(s string) (Board, error) {
	s = strings.NewReplacer(" ", "", "\n", "", "/", "").Replace(s)
	if len(s) != Cells {
		return Board{}, fmt.Errorf("%w: board needs %d cells, got %d", apperror.ErrInvalidCell, Cells, len(s))
	}

	board := NewBoard()
	for i, ch := range s {
		if string(ch) == symbolEmpty {
			continue
		}

		mark, err := ParseMark(string(ch))
		if err != nil {
			return Board{}, fmt.Errorf("cell %d: %w", i, err)
		}

		if err = board.Mark(i/Size, i%Size, mark); err != nil {
			return Board{}, fmt.Errorf("cell %d: %w", i, err)
		}
	}

	return board, nil
}

// Mark places player on an empty cell.
func (that *Board) Mark(row, col int, player Mark) error {
	if !(Coord{Row: row, Col: col}).Valid() {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCell, row, col)
	}

	if !player.IsPlayer() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, player)
	}

	if that.grid[row][col] != Empty {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidMove, row, col)
	}

	that.grid[row][col] = player
	that.marked++

	return nil
}

// At returns the mark at (row, col), or Empty when off the board.
func (that *Board) At(row, col int) Mark {
	if !(Coord{Row: row, Col: col}).Valid() {
		return Empty
	}
	return that.grid[row][col]
}

func (that *Board) IsEmptyCell(row, col int) bool {
	if !(Coord{Row: row, Col: col}).Valid() {
		return false
	}
	return that.grid[row][col] == Empty
}

// EmptyCells yields the empty coordinates in row-major order. The sequence
// reads the board each time it is ranged over.
func (that *Board) EmptyCells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for row := range Size {
			for col := range Size {
				if that.grid[row][col] != Empty {
					continue
				}
				if !yield(Coord{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}

func (that *Board) MarkedCount() int {
	return that.marked
}

func (that *Board) IsFull() bool {
	return that.marked == Cells
}

func (that *Board) IsEmptyBoard() bool {
	return that.marked == 0
}

// Key - returns the board as 9 symbols in row-major order, e.g. "X.O......".
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Cells)

	for row := range Size {
		for col := range Size {
			sb.WriteString(that.grid[row][col].String())
		}
	}

	return sb.String()
}

func (that *Board) String() string {
	key := that.Key()
	return key[0:3] + "/" + key[3:6] + "/" + key[6:9]
}
