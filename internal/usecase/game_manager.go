package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/pkg"
)

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	Tally(ctx context.Context) (*entity.Tally, error)
}

type gameController interface {
	StartNewGame(humanMark entity.Mark) error
	MakeHumanMove(row, col int) error
	MakeComputerMove() error
	Outcome() entity.Outcome
	Human() *entity.Player
	IsActive() bool
}

// GameManager plays the human's turn, answers with the computer and records
// finished games on the scoreboard.
type GameManager struct {
	logger     *slog.Logger
	controller gameController
	resultRepo resultRepo

	gameID   string
	recorded bool
	now      func() time.Time
}

func NewGameManager(logger *slog.Logger, controller gameController, resultRepo resultRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		controller: controller,
		resultRepo: resultRepo,

		now: time.Now,
	}
}

// StartGame - seats the human with humanMark. When the computer opens, its
// first move is already on the board when this returns.
func (that *GameManager) StartGame(ctx context.Context, humanMark entity.Mark) error {
	if err := that.controller.StartNewGame(humanMark); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.gameID = pkg.GenerateGameID()
	that.recorded = false

	that.logger.Info("game started", "gameID", that.gameID, "humanMark", humanMark)

	return nil
}

// MakeTurn - applies the human move and the computer reply. Once the game is
// over the outcome is returned together with apperror.ErrGameFinished.
func (that *GameManager) MakeTurn(ctx context.Context, row, col int) (entity.Outcome, error) {
	if err := that.controller.MakeHumanMove(row, col); err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			return that.controller.Outcome(), err
		}

		return entity.Outcome{}, fmt.Errorf("failed to make turn: %w", err)
	}

	if that.controller.IsActive() {
		if err := that.controller.MakeComputerMove(); err != nil {
			return entity.Outcome{}, fmt.Errorf("computer failed to make turn: %w", err)
		}
	}

	outcome := that.controller.Outcome()
	if !outcome.IsOver() {
		return outcome, nil
	}

	that.recordResult(ctx, outcome)

	return outcome, apperror.ErrGameFinished
}

func (that *GameManager) Tally(ctx context.Context) (*entity.Tally, error) {
	tally, err := that.resultRepo.Tally(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tally: %w", err)
	}

	return tally, nil
}

func (that *GameManager) GameID() string {
	return that.gameID
}

// recordResult - storage errors are logged, not returned.
func (that *GameManager) recordResult(ctx context.Context, outcome entity.Outcome) {
	log := that.logger.With("method", "recordResult", "gameID", that.gameID)

	if that.recorded {
		return
	}

	result := &entity.Result{
		ID:         that.gameID,
		HumanMark:  that.controller.Human().Mark,
		Winner:     outcome.Winner,
		Draw:       outcome.State == entity.StateDraw,
		FinishedAt: that.now(),
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		log.Error("failed to save result", "error", err)
		return
	}

	that.recorded = true

	log.Info("game finished", "winner", result.Winner, "draw", result.Draw)
}
