package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/search"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/cli"
)

// RunApp - runs the terminal game until the player quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	mode, err := search.ParseMode(conf.AI.Mode)
	if err != nil {
		return fmt.Errorf("invalid ai mode: %w", err)
	}

	botMark, err := entity.ParseMark(conf.AI.Mark)
	if err != nil {
		return fmt.Errorf("invalid ai mark: %w", err)
	}

	role, err := search.RoleFor(botMark)
	if err != nil {
		return fmt.Errorf("invalid ai role: %w", err)
	}

	firstPlayer, err := entity.ParseMark(conf.FirstPlayer)
	if err != nil {
		return fmt.Errorf("invalid first player: %w", err)
	}

	if conf.GameMode != config.GameModeAI && conf.GameMode != config.GameModePVP {
		return fmt.Errorf("invalid game mode %q", conf.GameMode)
	}

	verdictRepo, closeRepo, err := newVerdictRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	game, err := entity.NewGame(firstPlayer)
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	engine := search.NewEngine(role)
	gameManager := usecase.NewGameManager(logger, engine, verdictRepo, mode, newRand(conf.AI.Seed))

	log.Info("Starting game", "game_mode", conf.GameMode, "ai_mode", mode.String(), "ai_mark", botMark.String())

	server := cli.New(logger, gameManager, game, conf.GameMode, out)
	if err = server.Start(ctx, in); err != nil {
		return fmt.Errorf("terminal session failed: %w", err)
	}

	return nil
}

// newVerdictRepository - connects to redis when enabled, otherwise keeps
// verdicts in memory.
func newVerdictRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.VerdictRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryVerdictRepository(), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewVerdictRepository(redisStorage.Connection), closeFn, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewPCG(seed, seed>>1|1)) //nolint: gosec // game randomness
}
