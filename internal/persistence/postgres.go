package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/stockaura/stockaura/internal/scan"
)

const schema = `
CREATE TABLE IF NOT EXISTS scan_results (
	run_id     TEXT        NOT NULL,
	ts         TIMESTAMPTZ NOT NULL,
	ticker     TEXT        NOT NULL,
	rank       INT         NOT NULL,
	score      DOUBLE PRECISION NOT NULL,
	signal     TEXT        NOT NULL,
	result     JSONB       NOT NULL,
	PRIMARY KEY (run_id, ticker)
)`

// ResultStore persists ranked scan snapshots to postgres.
type ResultStore struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewResultStore connects and ensures the schema exists.
func NewResultStore(dsn string, timeout time.Duration) (*ResultStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &ResultStore{db: db, timeout: timeout}, nil
}

// SaveRun upserts one artifact's rows inside a transaction.
func (s *ResultStore) SaveRun(ctx context.Context, a Artifact) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO scan_results (run_id, ts, ticker, rank, score, signal, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id, ticker) DO UPDATE SET
			rank = EXCLUDED.rank,
			score = EXCLUDED.score,
			signal = EXCLUDED.signal,
			result = EXCLUDED.result`

	for i, r := range a.Instruments {
		payload, err := json.Marshal(r.Result)
		if err != nil {
			return fmt.Errorf("marshal result %s: %w", r.Result.Instrument.Ticker, err)
		}
		if _, err := tx.ExecContext(ctx, query,
			a.RunID, a.Timestamp, r.Result.Instrument.Ticker, i+1, r.Score, string(r.Result.Signal), payload); err != nil {
			return fmt.Errorf("insert result %s: %w", r.Result.Instrument.Ticker, err)
		}
	}
	return tx.Commit()
}

// TopForRun reads back one run's rows in rank order.
func (s *ResultStore) TopForRun(ctx context.Context, runID string, limit int) ([]scan.Ranked, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows := []struct {
		Score  float64 `db:"score"`
		Result []byte  `db:"result"`
	}{}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT score, result FROM scan_results WHERE run_id = $1 ORDER BY rank ASC LIMIT $2`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}
	out := make([]scan.Ranked, 0, len(rows))
	for _, row := range rows {
		var r scan.Ranked
		r.Score = row.Score
		if err := json.Unmarshal(row.Result, &r.Result); err != nil {
			return nil, fmt.Errorf("parse stored result: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Close releases the connection pool.
func (s *ResultStore) Close() error { return s.db.Close() }
