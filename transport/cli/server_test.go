package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/search"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

func runSession(t *testing.T, gameMode, input string) (string, *entity.Game) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(
		logger,
		search.NewEngine(search.DefaultRole),
		repository.NewMemoryVerdictRepository(),
		search.Exhaustive,
		rand.New(rand.NewPCG(3, 5)), //nolint: gosec // deterministic tests
	)

	game, err := entity.NewGame(entity.MarkA)
	require.NoError(t, err)

	var out bytes.Buffer
	server := New(logger, manager, game, gameMode, &out, termenv.WithProfile(termenv.Ascii))

	err = server.Start(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	return out.String(), game
}

func TestServer_PVP(t *testing.T) {
	t.Run("Win is announced with the winning line", func(t *testing.T) {
		// Given: two humans alternating, X completing the top row
		input := "0 0\n1 0\n0 1\n1 1\n0 2\n"

		// When: the session runs
		out, game := runSession(t, config.GameModePVP, input)

		// Then: X wins on the top row
		assert.Equal(t, entity.MarkA, game.Winner())
		assert.Contains(t, out, "X wins (row (0,0) (0,1) (0,2))")
	})

	t.Run("Rejected moves are reported and the game continues", func(t *testing.T) {
		// Given: an occupied cell, an off-board cell and garbage
		input := "1 1\n1 1\n5 5\nfoo bar\n0 0\nq\n"

		// When: the session runs
		out, game := runSession(t, config.GameModePVP, input)

		// Then: each bad input is reported and only valid moves count
		assert.Contains(t, out, "move rejected: cell is already occupied")
		assert.Contains(t, out, "move rejected: invalid cell coordinate")
		assert.Contains(t, out, "row and col must be numbers")
		assert.Equal(t, 2, game.Board.MarkedCount())
		assert.Equal(t, entity.MarkB, game.Board.At(0, 0))
	})
}

func TestServer_AI(t *testing.T) {
	t.Run("Bot answers every human move", func(t *testing.T) {
		// Given: X plays the centre against the minimax bot
		out, game := runSession(t, config.GameModeAI, "1 1\nq\n")

		// Then: the bot took the first corner and it's X's turn again
		assert.Contains(t, out, "bot (O, exhaustive) plays 0 0")
		assert.Equal(t, entity.MarkB, game.Board.At(0, 0))
		assert.Equal(t, entity.MarkA, game.Turn)
		assert.Contains(t, out, "X to move")
	})

	t.Run("Bot never loses a full game", func(t *testing.T) {
		// Given: X plays every cell in row-major order, skipping taken ones
		var input strings.Builder
		for row := range entity.Size {
			for col := range entity.Size {
				input.WriteString(strings.Join([]string{string(rune('0' + row)), string(rune('0' + col))}, " "))
				input.WriteString("\n")
			}
		}

		// When: the session runs to the end
		_, game := runSession(t, config.GameModeAI, input.String())

		// Then: the game is over and X did not win
		assert.True(t, game.IsFinished())
		assert.NotEqual(t, entity.MarkA, game.Winner())
	})

	t.Run("Mode switch and reset", func(t *testing.T) {
		out, game := runSession(t, config.GameModeAI, "0\n1 1\nr\ng\nq\n")

		assert.Contains(t, out, "bot mode: random")
		assert.Contains(t, out, "bot (O, random) plays")
		assert.Contains(t, out, "new game")
		assert.Contains(t, out, "game mode: pvp")
		assert.True(t, game.Board.IsEmptyBoard())
	})
}
