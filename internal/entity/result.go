package entity

import "time"

// Result is the scoreboard record of one finished game.
type Result struct {
	ID         string    `json:"id"`
	HumanMark  Mark      `json:"human_mark"`
	Winner     Mark      `json:"winner,omitempty"`
	Draw       bool      `json:"draw"`
	FinishedAt time.Time `json:"finished_at"`
}

func (that *Result) HumanWon() bool {
	return !that.Draw && that.Winner == that.HumanMark
}

func (that *Result) ComputerWon() bool {
	return !that.Draw && that.Winner != MarkNone && that.Winner != that.HumanMark
}

type Tally struct {
	HumanWins    int `json:"human_wins"`
	ComputerWins int `json:"computer_wins"`
	Draws        int `json:"draws"`
}

func (that *Tally) Games() int {
	return that.HumanWins + that.ComputerWins + that.Draws
}
