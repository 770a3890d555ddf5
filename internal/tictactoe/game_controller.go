package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// GameController owns the live board of a single human vs computer game.
// It is not safe for concurrent use.
type GameController struct {
	logger *slog.Logger
	engine *Engine

	board    entity.Board
	human    *entity.Player
	computer *entity.Player
	turn     *entity.Player
	status   string

	listeners []Listener
}

func NewGameController(logger *slog.Logger, engine *Engine) *GameController {
	return &GameController{
		logger: logger.With("component", "game_controller"),
		engine: engine,
		status: StatusWaiting,
	}
}

// Subscribe - registers a listener; listeners are called synchronously in
// subscription order.
func (that *GameController) Subscribe(listener Listener) {
	that.listeners = append(that.listeners, listener)
}

// StartNewGame - resets the board and seats both players. X always moves first,
// so the computer plays immediately when the human picks O.
func (that *GameController) StartNewGame(humanMark entity.Mark) error {
	human, err := entity.NewPlayer(humanMark, entity.KindHuman)
	if err != nil {
		return fmt.Errorf("failed to create human player: %w", err)
	}

	computer, err := entity.NewPlayer(humanMark.Opponent(), entity.KindComputer)
	if err != nil {
		return fmt.Errorf("failed to create computer player: %w", err)
	}

	that.board.Reset()
	that.human = human
	that.computer = computer
	that.status = StatusOngoing

	that.turn = human
	if computer.Mark == entity.MarkX {
		that.turn = computer
	}

	that.logger.Debug("new game started", "human", human.Mark, "computer", computer.Mark)

	if that.turn.IsComputer() {
		return that.MakeComputerMove()
	}

	return nil
}

// MakeHumanMove - applies the human's move. The computer reply is a separate
// call so the caller decides when it happens.
func (that *GameController) MakeHumanMove(row, col int) error {
	if err := that.confirmOngoing(); err != nil {
		return err
	}

	if !that.turn.IsHuman() {
		return apperror.ErrNotYourTurn
	}

	if !that.board.Place(row, col, that.human.Mark) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrIllegalMove, row, col)
	}

	that.afterMove(row, col, that.human)

	return nil
}

// MakeComputerMove - asks the engine for the best reply and applies it.
func (that *GameController) MakeComputerMove() error {
	log := that.logger.With("method", "MakeComputerMove")

	if err := that.confirmOngoing(); err != nil {
		return err
	}

	if !that.turn.IsComputer() {
		return apperror.ErrNotYourTurn
	}

	result := that.engine.Search(that.board.Duplicate(), that.computer.Mark, that.human.Mark)
	if !result.Found {
		// unreachable while the game is ongoing: a full board ends the game
		return fmt.Errorf("%w: no legal moves", apperror.ErrGameFinished)
	}

	log.Debug("computer move chosen",
		"row", result.Move.Row, "col", result.Move.Col, "score", result.Score, "nodes", result.Nodes)

	that.board.Place(result.Move.Row, result.Move.Col, that.computer.Mark)
	that.afterMove(result.Move.Row, result.Move.Col, that.computer)

	return nil
}

// Reset - clears the board and deactivates the session.
func (that *GameController) Reset() {
	that.board.Reset()
	that.turn = nil
	that.status = StatusWaiting
}

func (that *GameController) afterMove(row, col int, player *entity.Player) {
	that.notify(MoveApplied{Row: row, Col: col, Mark: player.Mark})

	outcome := that.board.Outcome()
	switch outcome.State {
	case entity.StateWin:
		that.finish(GameEnded{Winner: that.playerByMark(outcome.Winner)})
	case entity.StateDraw:
		that.finish(GameEnded{IsDraw: true})
	default:
		that.turn = that.opponentOf(player)
	}
}

func (that *GameController) finish(event GameEnded) {
	that.status = StatusFinished
	that.turn = nil

	that.logger.Debug("game ended", "draw", event.IsDraw, "winner", winnerMark(event.Winner))

	that.notify(event)
}

func (that *GameController) notify(event Event) {
	for _, listener := range that.listeners {
		listener(event)
	}
}

func (that *GameController) confirmOngoing() error {
	switch that.status {
	case StatusOngoing:
		return nil
	case StatusFinished:
		return apperror.ErrGameFinished
	default:
		return apperror.ErrGameIsNotStarted
	}
}

func (that *GameController) playerByMark(mark entity.Mark) *entity.Player {
	if mark == that.human.Mark {
		return that.human
	}

	return that.computer
}

func (that *GameController) opponentOf(player *entity.Player) *entity.Player {
	if player == that.human {
		return that.computer
	}

	return that.human
}

// Board returns a copy of the live board.
func (that *GameController) Board() entity.Board {
	return that.board.Duplicate()
}

func (that *GameController) Cell(row, col int) entity.Mark {
	return that.board.Cell(row, col)
}

func (that *GameController) Outcome() entity.Outcome {
	return that.board.Outcome()
}

func (that *GameController) IsActive() bool {
	return that.status == StatusOngoing
}

func (that *GameController) Status() string {
	return that.status
}

// Turn returns the player to move, or nil when no game is ongoing.
func (that *GameController) Turn() *entity.Player {
	return that.turn
}

func (that *GameController) Human() *entity.Player {
	return that.human
}

func (that *GameController) Computer() *entity.Player {
	return that.computer
}

func winnerMark(player *entity.Player) entity.Mark {
	if player == nil {
		return entity.MarkNone
	}

	return player.Mark
}
