package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type sqliteResult struct {
	conn *sql.DB
}

// NewSQLiteResultRepository - result store backed by the results table created
// by storage.SQLiteStorage.Init.
func NewSQLiteResultRepository(conn *sql.DB) ResultRepository {
	return &sqliteResult{
		conn: conn,
	}
}

func (that *sqliteResult) Save(ctx context.Context, result *entity.Result) error {
	query := `INSERT INTO results (id, human_mark, winner, draw, finished_at) VALUES (?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.ID,
		string(result.HumanMark),
		string(result.Winner),
		result.Draw,
		result.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *sqliteResult) GetByID(ctx context.Context, id string) (*entity.Result, error) {
	query := `SELECT id, human_mark, winner, draw, finished_at FROM results WHERE id = ?`

	var (
		result     entity.Result
		humanMark  string
		winner     string
		finishedAt string
	)

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&result.ID, &humanMark, &winner, &result.Draw, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find result: %w", err)
	}

	result.HumanMark = entity.Mark(humanMark)
	result.Winner = entity.Mark(winner)

	if result.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
		return nil, fmt.Errorf("can't parse finished_at: %w", err)
	}

	return &result, nil
}

func (that *sqliteResult) Tally(ctx context.Context) (*entity.Tally, error) {
	query := `SELECT
		COALESCE(SUM(CASE WHEN draw = 0 AND winner = human_mark THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN draw = 0 AND winner <> '' AND winner <> human_mark THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN draw = 1 THEN 1 ELSE 0 END), 0)
	FROM results`

	var tally entity.Tally

	err := that.conn.QueryRowContext(ctx, query).Scan(&tally.HumanWins, &tally.ComputerWins, &tally.Draws)
	if err != nil {
		return nil, fmt.Errorf("can't count results: %w", err)
	}

	return &tally, nil
}
