package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const helpText = `Commands:
  <row> <col>  place your mark, rows and columns are numbered 1-3 (e.g. "2 3")
  n            start a new game
  s            show the scoreboard
  h            show this help
  q            quit`

type uGame interface {
	StartGame(ctx context.Context, humanMark entity.Mark) error
	MakeTurn(ctx context.Context, row, col int) (entity.Outcome, error)
	Tally(ctx context.Context) (*entity.Tally, error)
}

// Console is a line based front end. It mirrors the live board from the
// session events instead of reading the session state.
type Console struct {
	logger *slog.Logger
	uGame  uGame

	humanMark entity.Mark
	in        io.Reader
	out       io.Writer
	au        aurora.Aurora

	board    entity.Board
	finished bool
}

func New(logger *slog.Logger, uGame uGame, humanMark entity.Mark, in io.Reader, out io.Writer, colors bool) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		uGame:  uGame,

		humanMark: humanMark,
		in:        in,
		out:       out,
		au:        aurora.NewAurora(colors),
	}
}

// HandleEvent - session listener, keeps the mirrored board current.
func (that *Console) HandleEvent(event tictactoe.Event) {
	switch ev := event.(type) {
	case tictactoe.MoveApplied:
		that.board.Place(ev.Row, ev.Col, ev.Mark)
		if ev.Mark != that.humanMark {
			that.printf("Computer (%s) plays %d %d\n", that.mark(ev.Mark), ev.Row+1, ev.Col+1)
		}
	case tictactoe.GameEnded:
		that.finished = true
		that.printf("%s\n", that.render())
		switch {
		case ev.IsDraw:
			that.printf("%s\n", that.au.Bold("It's a draw!"))
		case ev.Winner.IsHuman():
			that.printf("%s\n", that.au.Bold(that.au.Green("You win!")))
		default:
			that.printf("%s\n", that.au.Bold(fmt.Sprintf("%s wins!", ev.Winner.Name)))
		}
		that.printf("Type n for a new game or q to quit.\n")
	}
}

// Run - plays until the user quits, input ends or ctx is canceled.
func (that *Console) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			log.Error("failed to read input", "error", err)
		}
	}()

	if err := that.newGame(ctx); err != nil {
		return err
	}

	for {
		that.printf("> ")

		select {
		case <-ctx.Done():
			that.printf("\n")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			quit, err := that.handleCommand(ctx, strings.TrimSpace(line))
			if err != nil {
				return err
			}

			if quit {
				return nil
			}
		}
	}
}

func (that *Console) handleCommand(ctx context.Context, line string) (bool, error) {
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "q", "quit", "exit":
		that.printf("Bye!\n")
		return true, nil
	case "h", "help":
		that.printf("%s\n", helpText)
		return false, nil
	case "n", "new":
		return false, that.newGame(ctx)
	case "s", "score":
		return false, that.showTally(ctx)
	}

	row, col, ok := parseCell(line)
	if !ok {
		that.printf("Unknown command %q.\n%s\n", line, helpText)
		return false, nil
	}

	return false, that.makeTurn(ctx, row, col)
}

func (that *Console) newGame(ctx context.Context) error {
	that.board.Reset()
	that.finished = false

	that.printf("New game: you play %s. Enter row and column (1-3), h for help.\n", that.mark(that.humanMark))

	if err := that.uGame.StartGame(ctx, that.humanMark); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.printf("%s\n", that.render())

	return nil
}

func (that *Console) makeTurn(ctx context.Context, row, col int) error {
	log := that.logger.With("method", "makeTurn")

	if that.finished {
		that.printf("The game is over. Type n for a new game.\n")
		return nil
	}

	_, err := that.uGame.MakeTurn(ctx, row, col)
	switch {
	case err == nil:
		that.printf("%s\n", that.render())
	case errors.Is(err, apperror.ErrGameFinished):
		// GameEnded already rendered the final board
	case errors.Is(err, apperror.ErrIllegalMove):
		that.printf("Cell %d %d is not available.\n", row+1, col+1)
	case errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrGameIsNotStarted):
		that.printf("You can't move right now. Type n for a new game.\n")
	default:
		log.Error("failed to make turn", "error", err)
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}

func (that *Console) showTally(ctx context.Context) error {
	log := that.logger.With("method", "showTally")

	tally, err := that.uGame.Tally(ctx)
	if err != nil {
		log.Error("failed to get tally", "error", err)
		that.printf("Scoreboard is not available right now.\n")
		return nil
	}

	that.printf("Score: you %d, computer %d, draws %d (%d games)\n",
		tally.HumanWins, tally.ComputerWins, tally.Draws, tally.Games())

	return nil
}

// parseCell accepts "2 3", "2,3" or "23" with 1-based coordinates and returns
// zero-based ones.
func parseCell(line string) (int, int, bool) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	if len(fields) == 1 && len(fields[0]) == 2 {
		fields = []string{fields[0][:1], fields[0][1:]}
	}

	if len(fields) != 2 {
		return 0, 0, false
	}

	row, errRow := strconv.Atoi(fields[0])
	col, errCol := strconv.Atoi(fields[1])
	if errRow != nil || errCol != nil {
		return 0, 0, false
	}

	return row - 1, col - 1, true
}

func (that *Console) render() string {
	var sb strings.Builder

	sb.WriteString("    1   2   3\n")
	for row := 0; row < entity.BoardSize; row++ {
		cells := make([]string, 0, entity.BoardSize)
		for col := 0; col < entity.BoardSize; col++ {
			cells = append(cells, " "+that.mark(that.board.Cell(row, col))+" ")
		}

		fmt.Fprintf(&sb, "%d  %s\n", row+1, strings.Join(cells, "|"))
		if row < entity.BoardSize-1 {
			sb.WriteString("   ---+---+---\n")
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (that *Console) mark(mark entity.Mark) string {
	switch mark {
	case entity.MarkX:
		return that.au.Bold(that.au.Red("X")).String()
	case entity.MarkO:
		return that.au.Bold(that.au.Cyan("O")).String()
	default:
		return " "
	}
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
