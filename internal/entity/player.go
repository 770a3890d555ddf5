package entity

import "fmt"

const (
	KindHuman    = "human"
	KindComputer = "computer"
)

type Player struct {
	Mark Mark   `json:"mark"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// NewPlayer - builds a participant identity. An invalid mark is rejected here so
// that session setup aborts before any search runs.
func NewPlayer(mark Mark, kind string) (*Player, error) {
	if _, err := ParseMark(string(mark)); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("Player (%s)", mark)
	if kind == KindComputer {
		name = fmt.Sprintf("Computer (%s)", mark)
	}

	return &Player{
		Mark: mark,
		Kind: kind,
		Name: name,
	}, nil
}

func (that *Player) IsHuman() bool {
	return that.Kind == KindHuman
}

func (that *Player) IsComputer() bool {
	return that.Kind == KindComputer
}
