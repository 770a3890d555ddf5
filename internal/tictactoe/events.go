package tictactoe

import "github.com/rocketscienceinc/tictactoe-ai/internal/entity"

// Event is emitted by the GameController to its listeners.
type Event interface {
	event()
}

// MoveApplied is emitted after every placement, human or computer.
type MoveApplied struct {
	Row  int
	Col  int
	Mark entity.Mark
}

// GameEnded is emitted once per game. Winner is nil on a draw.
type GameEnded struct {
	Winner *entity.Player
	IsDraw bool
}

func (MoveApplied) event() {}
func (GameEnded) event()   {}

type Listener func(event Event)
