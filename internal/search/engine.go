package search

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Scores are signed from MarkA's point of view.
const (
	ScoreWinA = 1
	ScoreDraw = 0
	ScoreWinB = -1

	// outside [ScoreWinB, ScoreWinA]
	scoreFloor   = -2
	scoreCeiling = 2
)

type Mode uint8

const (
	Random Mode = iota
	Exhaustive
)

func (m Mode) String() string {
	switch m {
	case Random:
		return "random"
	case Exhaustive:
		return "exhaustive"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "0":
		return Random, nil
	case "exhaustive", "minimax", "1":
		return Exhaustive, nil
	default:
		return Random, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, s)
	}
}

// Role binds the engine's mark to a side of the search. MarkA always
// maximizes and MarkB always minimizes.
type Role struct {
	Mark       entity.Mark
	Maximizing bool
}

// DefaultRole - the engine plays MarkB on the minimizing side.
var DefaultRole = Role{Mark: entity.MarkB, Maximizing: false}

func RoleFor(mark entity.Mark) (Role, error) {
	if !mark.IsPlayer() {
		return Role{}, fmt.Errorf("%w: %v", apperror.ErrInvalidMark, mark)
	}

	return Role{Mark: mark, Maximizing: mark == entity.MarkA}, nil
}

// Result is a minimax verdict. Move is only meaningful when HasMove is set;
// terminal nodes carry no move.
type Result struct {
	Score   int          `json:"score"`
	Move    entity.Coord `json:"move"`
	HasMove bool         `json:"has_move"`
}

// Engine picks moves for one side. It keeps no state between calls, so a
// single Engine may be shared.
type Engine struct {
	role Role
}

func NewEngine(role Role) *Engine {
	return &Engine{role: role}
}

func (that *Engine) Role() Role {
	return that.role
}

// ChooseMove - returns the engine's move on board. rng is only used by Random
// mode; a nil rng falls back to the global source.
func (that *Engine) ChooseMove(board entity.Board, mode Mode, rng *rand.Rand) (entity.Coord, error) {
	switch mode {
	case Random:
		return randomMove(board, rng)
	case Exhaustive:
		result, err := that.Evaluate(board)
		if err != nil {
			return entity.Coord{}, err
		}

		return result.Move, nil
	default:
		return entity.Coord{}, fmt.Errorf("%w: %v", apperror.ErrUnknownMode, mode)
	}
}

// Evaluate - runs the full search from the engine's side of the board.
func (that *Engine) Evaluate(board entity.Board) (Result, error) {
	if board.IsDecided() {
		return Result{}, fmt.Errorf("%w: board %s", apperror.ErrNoLegalMove, board.String())
	}

	return Minimax(board, that.role.Maximizing), nil
}

func randomMove(board entity.Board, rng *rand.Rand) (entity.Coord, error) {
	cells := make([]entity.Coord, 0, entity.Cells)
	for cell := range board.EmptyCells() {
		cells = append(cells, cell)
	}

	if len(cells) == 0 {
		return entity.Coord{}, fmt.Errorf("%w: board %s", apperror.ErrNoLegalMove, board.String())
	}

	if rng == nil {
		return cells[rand.IntN(len(cells))], nil //nolint: gosec // not security sensitive
	}

	return cells[rng.IntN(len(cells))], nil
}
