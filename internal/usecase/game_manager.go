package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/search"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type verdictRepo interface {
	Save(ctx context.Context, key string, role search.Role, verdict search.Result) error
	Get(ctx context.Context, key string, role search.Role) (search.Result, error)
}

type moveEngine interface {
	Role() search.Role
	ChooseMove(board entity.Board, mode search.Mode, rng *rand.Rand) (entity.Coord, error)
	Evaluate(board entity.Board) (search.Result, error)
}

type GameManager struct {
	logger      *slog.Logger
	engine      moveEngine
	verdictRepo verdictRepo

	mode search.Mode
	rng  *rand.Rand
}

func NewGameManager(logger *slog.Logger, engine moveEngine, verdictRepo verdictRepo, mode search.Mode, rng *rand.Rand) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		engine:      engine,
		verdictRepo: verdictRepo,

		mode: mode,
		rng:  rng,
	}
}

func (that *GameManager) Mode() search.Mode {
	return that.mode
}

func (that *GameManager) SetMode(mode search.Mode) {
	that.logger.Info("search mode changed", "from", that.mode.String(), "to", mode.String())
	that.mode = mode
}

// BotMark - the mark the engine plays.
func (that *GameManager) BotMark() entity.Mark {
	return that.engine.Role().Mark
}

// IsBotTurn reports whether the engine should move next.
func (that *GameManager) IsBotTurn(game *entity.Game) bool {
	return game.IsOngoing() && game.Turn == that.BotMark()
}

// PlayerTurn - applies a move for whoever's turn it is.
func (that *GameManager) PlayerTurn(ctx context.Context, game *entity.Game, row, col int) error {
	log := that.logger.With("method", "PlayerTurn")

	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if !game.Board.IsEmptyCell(row, col) {
		if !(entity.Coord{Row: row, Col: col}).Valid() {
			return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCell, row, col)
		}

		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidMove, row, col)
	}

	player := game.Turn
	if err := tictactoe.MakeTurn(game, player, row, col); err != nil {
		return fmt.Errorf("failed make turn: %w", err)
	}

	log.DebugContext(ctx, "player made a turn", "player", player.String(), "row", row, "col", col, "board", game.Board.String())

	that.logFinished(ctx, game)

	return nil
}

// BotTurn - picks the engine's move and applies it.
func (that *GameManager) BotTurn(ctx context.Context, game *entity.Game) (entity.Coord, error) {
	log := that.logger.With("method", "BotTurn")

	if err := game.ConfirmOngoingState(); err != nil {
		return entity.Coord{}, err
	}

	if game.Turn != that.BotMark() {
		return entity.Coord{}, apperror.ErrNotYourTurn
	}

	move, err := that.chooseMove(ctx, game.Board)
	if err != nil {
		return entity.Coord{}, fmt.Errorf("failed to choose move: %w", err)
	}

	if err = tictactoe.MakeTurn(game, that.BotMark(), move.Row, move.Col); err != nil {
		return entity.Coord{}, fmt.Errorf("failed make turn: %w", err)
	}

	log.InfoContext(ctx, "bot made a turn", "mode", that.mode.String(), "row", move.Row, "col", move.Col)

	that.logFinished(ctx, game)

	return move, nil
}

func (that *GameManager) chooseMove(ctx context.Context, board entity.Board) (entity.Coord, error) {
	if that.mode != search.Exhaustive {
		return that.engine.ChooseMove(board, that.mode, that.rng)
	}

	verdict, err := that.evaluate(ctx, board)
	if err != nil {
		return entity.Coord{}, err
	}

	if !verdict.HasMove {
		return entity.Coord{}, fmt.Errorf("%w: board %s", apperror.ErrNoLegalMove, board.String())
	}

	return verdict.Move, nil
}

// evaluate - returns the cached verdict for board, searching on a miss. Cache
// failures are logged and never fail the turn.
func (that *GameManager) evaluate(ctx context.Context, board entity.Board) (search.Result, error) {
	log := that.logger.With("method", "evaluate", "board", board.String())
	role := that.engine.Role()
	key := board.Key()

	verdict, err := that.verdictRepo.Get(ctx, key, role)
	if err == nil {
		log.DebugContext(ctx, "verdict cache hit", "score", verdict.Score)
		return verdict, nil
	}

	if !errors.Is(err, repository.ErrVerdictNotFound) {
		log.WarnContext(ctx, "failed to read verdict cache", "error", err)
	}

	verdict, err = that.engine.Evaluate(board)
	if err != nil {
		return search.Result{}, fmt.Errorf("failed to evaluate board: %w", err)
	}

	log.InfoContext(ctx, "board evaluated", "score", verdict.Score, "move", verdict.Move.String())

	if err = that.verdictRepo.Save(ctx, key, role, verdict); err != nil {
		log.WarnContext(ctx, "failed to save verdict", "error", err)
	}

	return verdict, nil
}

func (that *GameManager) logFinished(ctx context.Context, game *entity.Game) {
	if !game.IsFinished() {
		return
	}

	if game.IsDraw() {
		that.logger.InfoContext(ctx, "game finished", "result", "draw")
		return
	}

	that.logger.InfoContext(ctx, "game finished", "winner", game.Winner().String(), "line", game.Outcome.Line.Kind.String())
}
