package tictactoe

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var ErrUnknownScoring = errors.New("unknown scoring scheme")

// Scoring selects how terminal positions are valued. Both schemes pick an
// optimal move; depth adjustment additionally prefers faster wins and slower losses.
type Scoring int

const (
	ScoringDepthAdjusted Scoring = iota
	ScoringFixed
)

const winScore = 10

func ParseScoring(raw string) (Scoring, error) {
	switch raw {
	case "depth", "":
		return ScoringDepthAdjusted, nil
	case "fixed":
		return ScoringFixed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScoring, raw)
	}
}

func (that Scoring) String() string {
	if that == ScoringFixed {
		return "fixed"
	}

	return "depth"
}

func (that Scoring) win(depth int) int {
	if that == ScoringFixed {
		return 1
	}

	return winScore - depth
}

func (that Scoring) loss(depth int) int {
	return -that.win(depth)
}

// center is provably optimal on an empty board.
var center = entity.Move{Row: 1, Col: 1}

// Result describes one top-level search.
type Result struct {
	Move  entity.Move
	Found bool
	Score int
	Nodes int
}

type Option func(*Engine)

func WithScoring(scoring Scoring) Option {
	return func(engine *Engine) {
		engine.scoring = scoring
	}
}

// WithoutPruning disables alpha-beta cutoffs. The chosen move never changes,
// only the number of visited nodes.
func WithoutPruning() Option {
	return func(engine *Engine) {
		engine.pruning = false
	}
}

// Engine is a stateless minimax searcher with alpha-beta pruning. It only
// ever works on copies of the board it is given.
type Engine struct {
	scoring Scoring
	pruning bool
}

func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		scoring: ScoringDepthAdjusted,
		pruning: true,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

func (that *Engine) Scoring() Scoring {
	return that.scoring
}

// BestMove - returns the optimal move for me, or false when the board is full.
func (that *Engine) BestMove(board entity.Board, me, opponent entity.Mark) (entity.Move, bool) {
	result := that.Search(board, me, opponent)

	return result.Move, result.Found
}

// Search - evaluates every legal move in row-major order with a fresh window
// and keeps the first move with the strictly highest score.
func (that *Engine) Search(board entity.Board, me, opponent entity.Mark) Result {
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return Result{}
	}

	if len(moves) == entity.BoardSize*entity.BoardSize {
		return Result{Move: center, Found: true}
	}

	s := &search{
		me:       me,
		opponent: opponent,
		scoring:  that.scoring,
		pruning:  that.pruning,
	}

	result := Result{Score: math.MinInt}
	for _, move := range moves {
		next := board.Duplicate()
		next.Place(move.Row, move.Col, me)

		score := s.minimax(next, 0, false, math.MinInt, math.MaxInt)
		if score > result.Score {
			result.Score = score
			result.Move = move
			result.Found = true
		}
	}

	result.Nodes = s.nodes

	return result
}

type search struct {
	me       entity.Mark
	opponent entity.Mark
	scoring  Scoring
	pruning  bool
	nodes    int
}

func (that *search) minimax(board entity.Board, depth int, maximizing bool, alpha, beta int) int {
	that.nodes++

	switch board.Winner() {
	case that.me:
		return that.scoring.win(depth)
	case that.opponent:
		return that.scoring.loss(depth)
	}

	if board.IsFull() {
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, move := range board.LegalMoves() {
			next := board.Duplicate()
			next.Place(move.Row, move.Col, that.me)

			score := that.minimax(next, depth+1, false, alpha, beta)
			best = max(best, score)
			alpha = max(alpha, score)
			if that.pruning && beta <= alpha {
				break
			}
		}

		return best
	}

	best := math.MaxInt
	for _, move := range board.LegalMoves() {
		next := board.Duplicate()
		next.Place(move.Row, move.Col, that.opponent)

		score := that.minimax(next, depth+1, true, alpha, beta)
		best = min(best, score)
		beta = min(beta, score)
		if that.pruning && beta <= alpha {
			break
		}
	}

	return best
}
