package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/transport/terminal"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
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

	humanMark, err := entity.ParseMark(conf.HumanMark)
	if err != nil {
		return fmt.Errorf("invalid human mark: %w", err)
	}

	scoring, err := tictactoe.ParseScoring(conf.Scoring)
	if err != nil {
		return fmt.Errorf("invalid scoring: %w", err)
	}

	resultRepo, closer, err := openScoreboard(ctx, log, conf.Scoreboard)
	if err != nil {
		return err
	}

	defer func() {
		if err = closer.Close(); err != nil {
			log.Error("could not close scoreboard storage", "error", err)
		}
	}()

	engine := tictactoe.NewEngine(tictactoe.WithScoring(scoring))
	gameController := tictactoe.NewGameController(logger, engine)
	gameUseCase := usecase.NewGameManager(logger, gameController, resultRepo)

	console := terminal.New(logger, gameUseCase, humanMark, os.Stdin, os.Stdout, !conf.NoColor)
	gameController.Subscribe(console.HandleEvent)

	log.Info("Starting console", "human_mark", humanMark, "scoring", scoring.String(), "scoreboard", conf.Scoreboard.Driver)

	if err = console.Run(ctx); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Console closed, shutting down")

	return nil
}

func openScoreboard(ctx context.Context, log *slog.Logger, conf config.Scoreboard) (repository.ResultRepository, io.Closer, error) {
	switch conf.Driver {
	case config.DriverRedis:
		redisStorage, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("Scoreboard on redis", "addr", conf.Redis.GetRedisAddr())

		return repository.NewResultRepository(redisStorage), redisStorage, nil
	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLite(conf.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		log.Info("Scoreboard on sqlite", "path", conf.SQLitePath)

		return repository.NewSQLiteResultRepository(sqliteStorage.Connection), sqliteStorage, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, conf.Driver)
	}
}
