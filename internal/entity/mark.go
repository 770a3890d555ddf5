package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Mark is a participant's symbol. MarkNone marks an empty cell.
type Mark string

const (
	MarkX    Mark = "X"
	MarkO    Mark = "O"
	MarkNone Mark = ""
)

// ParseMark - converts user input into a Mark, rejecting anything but X or O.
func ParseMark(raw string) (Mark, error) {
	switch mark := Mark(strings.ToUpper(strings.TrimSpace(raw))); mark {
	case MarkX, MarkO:
		return mark, nil
	default:
		return MarkNone, fmt.Errorf("%w: got %q", apperror.ErrInvalidMark, raw)
	}
}

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other mark. MarkNone has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkNone
	}
}
