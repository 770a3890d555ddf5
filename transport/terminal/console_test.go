package terminal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

type memoryResults struct {
	results []*entity.Result
}

func (that *memoryResults) Save(_ context.Context, result *entity.Result) error {
	that.results = append(that.results, result)
	return nil
}

func (that *memoryResults) Tally(_ context.Context) (*entity.Tally, error) {
	var tally entity.Tally
	for _, result := range that.results {
		switch {
		case result.Draw:
			tally.Draws++
		case result.HumanWon():
			tally.HumanWins++
		default:
			tally.ComputerWins++
		}
	}

	return &tally, nil
}

func newTestConsole(t *testing.T, humanMark entity.Mark, input io.Reader, colors bool) (*Console, *bytes.Buffer) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := tictactoe.NewGameController(logger, tictactoe.NewEngine())
	manager := usecase.NewGameManager(logger, controller, &memoryResults{})

	out := &bytes.Buffer{}
	console := New(logger, manager, humanMark, input, out, colors)
	controller.Subscribe(console.HandleEvent)

	return console, out
}

func TestConsole_Run(t *testing.T) {
	t.Run("Plays a full game and shows the score", func(t *testing.T) {
		// Given: a human with X who ignores the computer's threats
		input := strings.NewReader("1 1\n1 2\n2 1\ns\nq\n")
		console, out := newTestConsole(t, entity.MarkX, input, false)

		// When: the console runs the script
		err := console.Run(context.Background())

		// Then: the computer wins and the score reflects it
		require.NoError(t, err)
		output := out.String()
		assert.Contains(t, output, "New game: you play X.")
		assert.Contains(t, output, "Computer (O) plays 2 2")
		assert.Contains(t, output, "Computer (O) plays 1 3")
		assert.Contains(t, output, "Computer (O) plays 3 1")
		assert.Contains(t, output, "1   X | X | O ")
		assert.Contains(t, output, "3   O |   |   ")
		assert.Contains(t, output, "Computer (O) wins!")
		assert.Contains(t, output, "Score: you 0, computer 1, draws 0 (1 games)")
		assert.True(t, strings.HasSuffix(output, "Bye!\n"))
	})

	t.Run("Computer opens when the human plays O", func(t *testing.T) {
		input := strings.NewReader("2 2\n")
		console, out := newTestConsole(t, entity.MarkO, input, false)

		err := console.Run(context.Background())

		require.NoError(t, err)
		output := out.String()
		assert.Contains(t, output, "Computer (X) plays 2 2")
		assert.Contains(t, output, "2     | X |   ")
		assert.Contains(t, output, "Cell 2 2 is not available.")
	})

	t.Run("Explains bad input", func(t *testing.T) {
		input := strings.NewReader("foo\n9 9\nh\n\n")
		console, out := newTestConsole(t, entity.MarkX, input, false)

		err := console.Run(context.Background())

		require.NoError(t, err)
		output := out.String()
		assert.Contains(t, output, `Unknown command "foo".`)
		assert.Contains(t, output, "Cell 9 9 is not available.")
		assert.Contains(t, output, "Commands:")
	})

	t.Run("Refuses moves after the game ended until a new game", func(t *testing.T) {
		input := strings.NewReader("1 1\n1 2\n2 1\n3 3\nn\n3 3\n")
		console, out := newTestConsole(t, entity.MarkX, input, false)

		err := console.Run(context.Background())

		require.NoError(t, err)
		output := out.String()
		assert.Contains(t, output, "The game is over. Type n for a new game.")
		assert.Equal(t, 2, strings.Count(output, "New game: you play X."))
		assert.Contains(t, output, "Computer (O) plays 2 2")
	})

	t.Run("Stops when the context is canceled", func(t *testing.T) {
		reader, writer := io.Pipe()
		t.Cleanup(func() {
			_ = writer.Close()
		})

		console, _ := newTestConsole(t, entity.MarkX, reader, false)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := console.Run(ctx)

		require.NoError(t, err)
	})

	t.Run("Fails when the game cannot start", func(t *testing.T) {
		console, _ := newTestConsole(t, entity.Mark("Z"), strings.NewReader(""), false)

		err := console.Run(context.Background())

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Colors the marks", func(t *testing.T) {
		console, out := newTestConsole(t, entity.MarkX, strings.NewReader("1 1\n"), true)

		require.NoError(t, console.Run(context.Background()))

		assert.Contains(t, out.String(), "\x1b[")
	})
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		input string
		row   int
		col   int
		ok    bool
	}{
		{input: "1 1", row: 0, col: 0, ok: true},
		{input: "2,3", row: 1, col: 2, ok: true},
		{input: "3\t1", row: 2, col: 0, ok: true},
		{input: "32", row: 2, col: 1, ok: true},
		{input: "0 4", row: -1, col: 3, ok: true},
		{input: "1", ok: false},
		{input: "1 2 3", ok: false},
		{input: "a b", ok: false},
		{input: "123", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			row, col, ok := parseCell(tt.input)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.row, row)
				assert.Equal(t, tt.col, col)
			}
		})
	}
}
