package entity

import "strings"

const BoardSize = 3

const (
	StateInProgress = "in_progress"
	StateWin        = "win"
	StateDraw       = "draw"
)

// WinLines lists the eight winning lines in scan order: rows top to bottom,
// columns left to right, the main diagonal, then the anti-diagonal.
var WinLines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Move addresses a cell by zero-based row and column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Outcome is derived from the grid on demand and never stored on a Board.
type Outcome struct {
	State  string `json:"state"`
	Winner Mark   `json:"winner,omitempty"`
}

func (that Outcome) IsOver() bool {
	return that.State != StateInProgress
}

// Board is a 3x3 grid of marks. It is a value type: assigning or duplicating
// a Board yields a copy that shares nothing with the original.
type Board [BoardSize][BoardSize]Mark

func inBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Place - puts mark on an empty in-bounds cell. Returns false and leaves the
// board untouched when the move is illegal.
func (that *Board) Place(row, col int, mark Mark) bool {
	if !mark.IsValid() || !that.IsLegal(row, col) {
		return false
	}

	that[row][col] = mark

	return true
}

func (that Board) IsLegal(row, col int) bool {
	return inBounds(row, col) && that[row][col] == MarkNone
}

// LegalMoves - returns the empty cells in row-major order.
func (that Board) LegalMoves() []Move {
	moves := make([]Move, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == MarkNone {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// Winner - returns the mark of the first completed line, or MarkNone.
func (that Board) Winner() Mark {
	for _, line := range WinLines {
		a := that[line[0].Row][line[0].Col]
		b := that[line[1].Row][line[1].Col]
		c := that[line[2].Row][line[2].Col]
		if a != MarkNone && a == b && b == c {
			return a
		}
	}

	return MarkNone
}

func (that Board) IsFull() bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == MarkNone {
				return false
			}
		}
	}

	return true
}

func (that Board) IsDraw() bool {
	return that.IsFull() && that.Winner() == MarkNone
}

func (that Board) Outcome() Outcome {
	if winner := that.Winner(); winner != MarkNone {
		return Outcome{State: StateWin, Winner: winner}
	}

	if that.IsFull() {
		return Outcome{State: StateDraw}
	}

	return Outcome{State: StateInProgress}
}

func (that Board) Duplicate() Board {
	return that
}

func (that *Board) Reset() {
	*that = Board{}
}

// Cell returns MarkNone for out-of-bounds coordinates.
func (that Board) Cell(row, col int) Mark {
	if !inBounds(row, col) {
		return MarkNone
	}

	return that[row][col]
}

func (that Board) String() string {
	rows := make([]string, 0, BoardSize)
	for row := 0; row < BoardSize; row++ {
		cells := make([]string, 0, BoardSize)
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == MarkNone {
				cells = append(cells, " ")
				continue
			}
			cells = append(cells, string(that[row][col]))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}

	return strings.Join(rows, "\n"+strings.Repeat("-", 9)+"\n")
}
