package search

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func mustParse(t *testing.T, s string) entity.Board {
	t.Helper()

	board, err := entity.ParseBoard(s)
	require.NoError(t, err)

	return board
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2)) //nolint: gosec // deterministic tests
}

func TestMinimax_Terminal(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  int
	}{
		{name: "MarkA wins", board: "XXX OO. ...", want: ScoreWinA},
		{name: "MarkB wins", board: "OX. OX. O.X", want: ScoreWinB},
		{name: "Draw", board: "XOX XOO OXX", want: ScoreDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustParse(t, tt.board)

			for _, maximizing := range []bool{true, false} {
				result := Minimax(board, maximizing)

				assert.Equal(t, tt.want, result.Score)
				assert.False(t, result.HasMove)
			}
		})
	}
}

func TestMinimax_EmptyBoardIsDraw(t *testing.T) {
	// Given: an empty board with the minimizing side to move
	board := entity.NewBoard()

	// When: searching the whole tree
	result := Minimax(board, false)

	// Then: optimal play is a draw, and the first cell wins the tie-break
	assert.Equal(t, ScoreDraw, result.Score)
	require.True(t, result.HasMove)
	assert.Equal(t, entity.Coord{Row: 0, Col: 0}, result.Move)
	assert.True(t, board.IsEmptyBoard())
}

func TestMinimax_Minimizer(t *testing.T) {
	t.Run("Takes the immediate win", func(t *testing.T) {
		// Given: O can complete the middle row at (1,2)
		board := mustParse(t, "XX. OO. X..")

		// When: O searches
		result := Minimax(board, false)

		// Then: O wins at (1,2)
		assert.Equal(t, ScoreWinB, result.Score)
		assert.Equal(t, entity.Coord{Row: 1, Col: 2}, result.Move)
	})

	t.Run("Blocks a threat that is not the first empty cell", func(t *testing.T) {
		// Given: X threatens (1,2) and earlier empty cells lose
		board := mustParse(t, "O.. XX. ...")

		// When: O searches
		result := Minimax(board, false)

		// Then: O blocks
		assert.Equal(t, entity.Coord{Row: 1, Col: 2}, result.Move)
		assert.LessOrEqual(t, result.Score, ScoreDraw)
	})
}

func TestMinimax_Maximizer(t *testing.T) {
	// Given: O threatens (2,2); blocking there also forks for X
	board := mustParse(t, "X.. ..X OO.")

	// When: X searches
	result := Minimax(board, true)

	// Then: X blocks and is winning
	assert.Equal(t, ScoreWinA, result.Score)
	assert.Equal(t, entity.Coord{Row: 2, Col: 2}, result.Move)
}

func TestMinimax_DoesNotMutateBoard(t *testing.T) {
	board := mustParse(t, "X... O... .")
	key := board.Key()
	count := board.MarkedCount()

	_ = Minimax(board, false)

	assert.Equal(t, key, board.Key())
	assert.Equal(t, count, board.MarkedCount())
}

func TestEngine_ChooseMove(t *testing.T) {
	engine := NewEngine(DefaultRole)

	t.Run("Exhaustive returns the minimax move", func(t *testing.T) {
		board := mustParse(t, "XX. OO. X..")

		move, err := engine.ChooseMove(board, Exhaustive, nil)

		require.NoError(t, err)
		assert.Equal(t, entity.Coord{Row: 1, Col: 2}, move)
	})

	t.Run("Full board has no legal move", func(t *testing.T) {
		board := mustParse(t, "XOX XOO OXX")

		for _, mode := range []Mode{Random, Exhaustive} {
			_, err := engine.ChooseMove(board, mode, newRand())
			require.ErrorIs(t, err, apperror.ErrNoLegalMove, "mode %v", mode)
		}
	})

	t.Run("Decided board has no exhaustive move", func(t *testing.T) {
		board := mustParse(t, "XXX OO. ...")

		_, err := engine.ChooseMove(board, Exhaustive, nil)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		_, err := engine.ChooseMove(entity.NewBoard(), Mode(9), nil)

		require.ErrorIs(t, err, apperror.ErrUnknownMode)
	})
}

func TestEngine_ChooseMove_Random(t *testing.T) {
	engine := NewEngine(DefaultRole)

	t.Run("Always picks an empty cell", func(t *testing.T) {
		board := mustParse(t, "XO. .X. O.X")
		rng := newRand()

		for range 200 {
			move, err := engine.ChooseMove(board, Random, rng)
			require.NoError(t, err)
			assert.True(t, board.IsEmptyCell(move.Row, move.Col), "picked %v", move)
		}
	})

	t.Run("Picks cells with roughly uniform frequency", func(t *testing.T) {
		// Given: a board with four empty cells
		board := mustParse(t, "XO. OX. .X.")
		rng := newRand()

		const trials = 4000
		counts := map[entity.Coord]int{}

		// When: choosing many times
		for range trials {
			move, err := engine.ChooseMove(board, Random, rng)
			require.NoError(t, err)
			counts[move]++
		}

		// Then: each cell is chosen about a quarter of the time
		require.Len(t, counts, 4)
		for cell, n := range counts {
			assert.InDelta(t, trials/4, n, trials/20, "cell %v", cell)
		}
	})

	t.Run("Same seed gives the same sequence", func(t *testing.T) {
		board := entity.NewBoard()
		first, second := newRand(), newRand()

		for range 20 {
			a, err := engine.ChooseMove(board, Random, first)
			require.NoError(t, err)
			b, err := engine.ChooseMove(board, Random, second)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	})
}

func TestEngine_NeverLosesToRandom(t *testing.T) {
	for _, mark := range []entity.Mark{entity.MarkA, entity.MarkB} {
		t.Run(mark.String(), func(t *testing.T) {
			role, err := RoleFor(mark)
			require.NoError(t, err)

			engine := NewEngine(role)
			opponent := NewEngine(Role{Mark: mark.Opponent(), Maximizing: !role.Maximizing})
			rng := newRand()

			for range 10 {
				// Given: a fresh game with X to move
				board := entity.NewBoard()
				turn := entity.MarkA

				// When: the engine plays against random moves
				for !board.IsDecided() {
					var move entity.Coord
					if turn == mark {
						move, err = engine.ChooseMove(board, Exhaustive, nil)
					} else {
						move, err = opponent.ChooseMove(board, Random, rng)
					}
					require.NoError(t, err)
					require.NoError(t, board.Mark(move.Row, move.Col, turn))
					turn = turn.Opponent()
				}

				// Then: the random side never wins
				assert.NotEqual(t, mark.Opponent(), board.TerminalState().Winner, "lost on %s", board.String())
			}
		})
	}
}

func TestRoleFor(t *testing.T) {
	role, err := RoleFor(entity.MarkB)
	require.NoError(t, err)
	assert.Equal(t, DefaultRole, role)

	role, err = RoleFor(entity.MarkA)
	require.NoError(t, err)
	assert.True(t, role.Maximizing)

	_, err = RoleFor(entity.Empty)
	require.ErrorIs(t, err, apperror.ErrInvalidMark)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("Exhaustive")
	require.NoError(t, err)
	assert.Equal(t, Exhaustive, mode)

	mode, err = ParseMode("random")
	require.NoError(t, err)
	assert.Equal(t, Random, mode)

	_, err = ParseMode("hard")
	require.ErrorIs(t, err, apperror.ErrUnknownMode)
}
