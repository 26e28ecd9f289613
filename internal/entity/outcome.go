package entity

// LineKind tells which family a winning line belongs to.
type LineKind uint8

const (
	LineColumn LineKind = iota
	LineRow
	LineDescending // (0,0) -> (2,2)
	LineAscending  // (2,0) -> (0,2)
)

func (k LineKind) String() string {
	switch k {
	case LineColumn:
		return "column"
	case LineRow:
		return "row"
	case LineDescending:
		return "descending diagonal"
	case LineAscending:
		return "ascending diagonal"
	default:
		return "unknown"
	}
}

// Line is one of the eight triples that end the game when uniformly marked.
type Line struct {
	Kind  LineKind
	Index int
	Cells [Size]Coord
}

// Contains reports whether c is one of the line's cells.
func (l Line) Contains(c Coord) bool {
	for _, cell := range l.Cells {
		if cell == c {
			return true
		}
	}
	return false
}

// lines holds every winning line in scan order: columns, rows, descending
// diagonal, ascending diagonal. TerminalState returns the first match, which
// only matters for boards that cannot arise in play.
var lines = func() [8]Line {
	var all [8]Line
	n := 0

	for col := range Size {
		all[n] = Line{Kind: LineColumn, Index: col, Cells: [Size]Coord{{0, col}, {1, col}, {2, col}}}
		n++
	}

	for row := range Size {
		all[n] = Line{Kind: LineRow, Index: row, Cells: [Size]Coord{{row, 0}, {row, 1}, {row, 2}}}
		n++
	}

	all[n] = Line{Kind: LineDescending, Cells: [Size]Coord{{0, 0}, {1, 1}, {2, 2}}}
	all[n+1] = Line{Kind: LineAscending, Cells: [Size]Coord{{2, 0}, {1, 1}, {0, 2}}}

	return all
}()

// Lines returns the eight winning lines in scan order.
func Lines() [8]Line {
	return lines
}

// Outcome is the result of a terminal-state scan. Winner is Empty when no
// line is complete; that does not mean the game is drawn.
type Outcome struct {
	Winner Mark
	Line   Line
}

func (o Outcome) HasWinner() bool {
	return o.Winner != Empty
}

// TerminalState - scans the winning lines and reports the first complete one.
func (that *Board) TerminalState() Outcome {
	for _, line := range lines {
		a, c, d := line.Cells[0], line.Cells[1], line.Cells[2]
		first := that.grid[a.Row][a.Col]

		if first != Empty && first == that.grid[c.Row][c.Col] && first == that.grid[d.Row][d.Col] {
			return Outcome{Winner: first, Line: line}
		}
	}

	return Outcome{}
}

// IsDecided reports whether the board has a winner or no empty cell left.
func (that *Board) IsDecided() bool {
	return that.TerminalState().HasWinner() || that.IsFull()
}
