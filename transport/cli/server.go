package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/search"
)

var errQuit = errors.New("quit")

type uGame interface {
	PlayerTurn(ctx context.Context, game *entity.Game, row, col int) error
	BotTurn(ctx context.Context, game *entity.Game) (entity.Coord, error)
	IsBotTurn(game *entity.Game) bool
	Mode() search.Mode
	SetMode(mode search.Mode)
}

// Server is a line-based terminal controller: it reads commands, feeds moves
// to the game manager and renders the board after each change.
type Server struct {
	logger *slog.Logger
	uGame  uGame
	w      io.Writer
	output *termenv.Output

	game     *entity.Game
	gameMode string

	handlers map[string]func(ctx context.Context) error
}

func New(logger *slog.Logger, uGame uGame, game *entity.Game, gameMode string, w io.Writer, opts ...termenv.OutputOption) *Server {
	server := &Server{
		logger: logger.With("component", "cli"),
		uGame:  uGame,
		w:      w,
		output: termenv.NewOutput(w, opts...),

		game:     game,
		gameMode: gameMode,

		handlers: make(map[string]func(context.Context) error),
	}

	server.handlers["g"] = server.handleToggleGameMode
	server.handlers["0"] = server.handleSetMode(search.Random)
	server.handlers["1"] = server.handleSetMode(search.Exhaustive)
	server.handlers["r"] = server.handleReset
	server.handlers["q"] = server.handleQuit

	return server
}

// Start - runs the read loop until input ends, "q" is entered or ctx is done.
func (that *Server) Start(ctx context.Context, r io.Reader) error {
	log := that.logger.With("method", "Start")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	that.printHelp()
	if err := that.playBot(ctx); err != nil {
		return err
	}
	that.render()

	for {
		that.printf("> ")

		select {
		case <-ctx.Done():
			log.Info("context canceled, stopping")
			return nil
		case line, ok := <-lines:
			if !ok {
				return that.readError(readErr)
			}

			err := that.handleLine(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

func (that *Server) readError(readErr chan error) error {
	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	default:
	}

	return nil
}

func (that *Server) handleLine(ctx context.Context, line string) error {
	fields := strings.Fields(strings.ToLower(line))

	switch len(fields) {
	case 0:
		return nil
	case 1:
		handler, ok := that.handlers[fields[0]]
		if !ok {
			that.printf("unknown command %q\n", fields[0])
			that.printHelp()
			return nil
		}

		return handler(ctx)
	case 2:
		return that.handleMove(ctx, fields[0], fields[1])
	default:
		that.printf("expected \"<row> <col>\" or a command\n")
		return nil
	}
}

func (that *Server) handleMove(ctx context.Context, rowArg, colArg string) error {
	row, rowErr := strconv.Atoi(rowArg)
	col, colErr := strconv.Atoi(colArg)
	if rowErr != nil || colErr != nil {
		that.printf("row and col must be numbers between 0 and %d\n", entity.Size-1)
		return nil
	}

	if that.gameMode == config.GameModeAI && that.uGame.IsBotTurn(that.game) {
		that.printf("wait for the bot\n")
		return nil
	}

	if err := that.uGame.PlayerTurn(ctx, that.game, row, col); err != nil {
		that.printf("move rejected: %v\n", err)
		return nil
	}

	if err := that.playBot(ctx); err != nil {
		return err
	}

	that.render()

	return nil
}

// playBot lets the engine answer when it is its turn in ai mode.
func (that *Server) playBot(ctx context.Context) error {
	if that.gameMode != config.GameModeAI || !that.uGame.IsBotTurn(that.game) {
		return nil
	}

	move, err := that.uGame.BotTurn(ctx, that.game)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.printf("bot (%s, %s) plays %d %d\n", that.game.Board.At(move.Row, move.Col), that.uGame.Mode(), move.Row, move.Col)

	return nil
}

func (that *Server) handleToggleGameMode(ctx context.Context) error {
	if that.gameMode == config.GameModeAI {
		that.gameMode = config.GameModePVP
	} else {
		that.gameMode = config.GameModeAI
	}

	that.printf("game mode: %s\n", that.gameMode)

	if err := that.playBot(ctx); err != nil {
		return err
	}
	that.render()

	return nil
}

func (that *Server) handleSetMode(mode search.Mode) func(context.Context) error {
	return func(context.Context) error {
		that.uGame.SetMode(mode)
		that.printf("bot mode: %s\n", mode)

		return nil
	}
}

func (that *Server) handleReset(ctx context.Context) error {
	that.game.Reset()
	that.printf("new game\n")

	if err := that.playBot(ctx); err != nil {
		return err
	}
	that.render()

	return nil
}

func (that *Server) handleQuit(context.Context) error {
	return errQuit
}

func (that *Server) printHelp() {
	that.printf("commands: <row> <col> move | g toggle ai/pvp | 0 random bot | 1 minimax bot | r restart | q quit\n")
}

func (that *Server) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.w, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
