package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(ctx context.Context, r RunRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, symbol, timeframe, bar_limit, bars, status, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Symbol, r.Timeframe, r.Limit, r.Bars, r.Status, r.Error,
		r.StartedAt.UTC(), r.Duration.Milliseconds(),
	)
	return err
}

// ListRuns returns the most recent runs, newest first.
func (j *SQLite) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, symbol, timeframe, bar_limit, bars, status, error, started_at, duration_ms
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec RunRecord
			ms  int64
		)
		if err := rows.Scan(
			&rec.RunID,
			&rec.Symbol,
			&rec.Timeframe,
			&rec.Limit,
			&rec.Bars,
			&rec.Status,
			&rec.Error,
			&rec.StartedAt,
			&ms,
		); err != nil {
			return nil, err
		}
		rec.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
