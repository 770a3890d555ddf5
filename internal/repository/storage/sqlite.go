package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const resultsSchema = `CREATE TABLE IF NOT EXISTS results (
	id          TEXT PRIMARY KEY,
	human_mark  TEXT NOT NULL,
	winner      TEXT NOT NULL DEFAULT '',
	draw        INTEGER NOT NULL DEFAULT 0,
	finished_at TEXT NOT NULL
)`

type SQLiteStorage struct {
	Connection *sql.DB
}

func NewSQLite(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SQLiteStorage{Connection: conn}, nil
}

// Init - creates the results table when it does not exist yet.
func (that *SQLiteStorage) Init(ctx context.Context) error {
	if _, err := that.Connection.ExecContext(ctx, resultsSchema); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *SQLiteStorage) Close() error {
	return that.Connection.Close()
}
