package cli

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	colorMarkA = "#E88388"
	colorMarkB = "#71BEF2"
	rowRule    = "---+---+---"
)

// render draws the board and a status line. Cells of the winning line are
// shown in reverse video.
func (that *Server) render() {
	board := that.game.Board
	outcome := that.game.Outcome

	var sb strings.Builder
	sb.WriteString("\n")

	for row := range entity.Size {
		cells := make([]string, 0, entity.Size)
		for col := range entity.Size {
			cells = append(cells, that.renderCell(board.At(row, col), outcome, entity.Coord{Row: row, Col: col}))
		}

		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")

		if row < entity.Size-1 {
			sb.WriteString(rowRule)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(that.status())
	sb.WriteString("\n")

	that.printf("%s", sb.String())
}

func (that *Server) renderCell(mark entity.Mark, outcome entity.Outcome, coord entity.Coord) string {
	symbol := " "
	if mark != entity.Empty {
		symbol = mark.String()
	}

	style := that.output.String(" " + symbol + " ")

	switch mark {
	case entity.MarkA:
		style = style.Foreground(that.output.Color(colorMarkA)).Bold()
	case entity.MarkB:
		style = style.Foreground(that.output.Color(colorMarkB)).Bold()
	}

	if outcome.HasWinner() && outcome.Line.Contains(coord) {
		style = style.Reverse()
	}

	return style.String()
}

func (that *Server) status() string {
	switch {
	case that.game.IsDraw():
		return "draw"
	case that.game.IsFinished():
		line := that.game.Outcome.Line
		return fmt.Sprintf("%s wins (%s %s)", that.game.Winner(), line.Kind, describeLine(line))
	default:
		return fmt.Sprintf("%s to move", that.game.Turn)
	}
}

func describeLine(line entity.Line) string {
	cells := make([]string, 0, len(line.Cells))
	for _, c := range line.Cells {
		cells = append(cells, c.String())
	}

	return strings.Join(cells, " ")
}
