// Package sink optionally persists the output tables to PostgreSQL so
// downstream reporting collaborators can query them.
package sink

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"news-event-returns/internal/logger"
	"news-event-returns/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS event_returns (
	run_id           TEXT NOT NULL,
	story_id         TEXT NOT NULL,
	ticker           TEXT NOT NULL,
	date             DATE NOT NULL,
	label            TEXT,
	score            DOUBLE PRECISION,
	is_intraday      BOOLEAN,
	mid_t15          DOUBLE PRECISION,
	open             DOUBLE PRECISION,
	close            DOUBLE PRECISION,
	prev_close       DOUBLE PRECISION,
	next_close       DOUBLE PRECISION,
	initial_reaction DOUBLE PRECISION,
	drift            DOUBLE PRECISION
);
CREATE TABLE IF NOT EXISTS portfolio_daily (
	run_id           TEXT NOT NULL,
	date             DATE NOT NULL,
	n_positive       INTEGER,
	n_negative       INTEGER,
	n_neutral        INTEGER,
	ir_long_only     DOUBLE PRECISION,
	ir_short_only    DOUBLE PRECISION,
	ir_long_short    DOUBLE PRECISION,
	drift_long_only  DOUBLE PRECISION,
	drift_short_only DOUBLE PRECISION,
	drift_long_short DOUBLE PRECISION
);
`

// Postgres writes output tables into PostgreSQL. Each run fully replaces the
// previous run's rows, matching the file outputs' replace semantics.
type Postgres struct {
	db *sqlx.DB
}

// Connect opens a connection pool against the given DSN and ensures the
// output tables exist.
func Connect(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres sink: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure sink tables: %w", err)
	}
	logger.Info(ctx, "Connected to postgres sink")
	return &Postgres{db: db}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// StoreEventReturns replaces the event_returns table contents with this
// run's rows.
func (p *Postgres) StoreEventReturns(ctx context.Context, runID string, events []types.EventReturn) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_returns`); err != nil {
		return fmt.Errorf("clearing event_returns: %w", err)
	}

	const insert = `
		INSERT INTO event_returns (
			run_id, story_id, ticker, date, label, score, is_intraday,
			mid_t15, open, close, prev_close, next_close, initial_reaction, drift
		) VALUES (
			:run_id, :story_id, :ticker, :date, :label, :score, :is_intraday,
			:mid_t15, :open, :close, :prev_close, :next_close, :initial_reaction, :drift
		)`
	for _, ev := range events {
		params := map[string]interface{}{
			"run_id":           runID,
			"story_id":         ev.StoryID,
			"ticker":           ev.Ticker,
			"date":             ev.Date.String(),
			"label":            ev.Label,
			"score":            ev.Score,
			"is_intraday":      ev.IsIntraday,
			"mid_t15":          ev.MidT15,
			"open":             ev.Open,
			"close":            ev.Close,
			"prev_close":       ev.PrevClose,
			"next_close":       ev.NextClose,
			"initial_reaction": ev.InitialReaction,
			"drift":            ev.Drift,
		}
		if _, err := tx.NamedExecContext(ctx, insert, params); err != nil {
			return fmt.Errorf("inserting event return %s: %w", ev.StoryID, err)
		}
	}
	return tx.Commit()
}

// StorePortfolioDays replaces the portfolio_daily table contents with this
// run's rows.
func (p *Postgres) StorePortfolioDays(ctx context.Context, runID string, days []types.PortfolioDay) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM portfolio_daily`); err != nil {
		return fmt.Errorf("clearing portfolio_daily: %w", err)
	}

	const insert = `
		INSERT INTO portfolio_daily (
			run_id, date, n_positive, n_negative, n_neutral,
			ir_long_only, ir_short_only, ir_long_short,
			drift_long_only, drift_short_only, drift_long_short
		) VALUES (
			:run_id, :date, :n_positive, :n_negative, :n_neutral,
			:ir_long_only, :ir_short_only, :ir_long_short,
			:drift_long_only, :drift_short_only, :drift_long_short
		)`
	for _, d := range days {
		params := map[string]interface{}{
			"run_id":           runID,
			"date":             d.Date.String(),
			"n_positive":       d.NPositive,
			"n_negative":       d.NNegative,
			"n_neutral":        d.NNeutral,
			"ir_long_only":     d.IRLongOnly,
			"ir_short_only":    d.IRShortOnly,
			"ir_long_short":    d.IRLongShort,
			"drift_long_only":  d.DriftLongOnly,
			"drift_short_only": d.DriftShortOnly,
			"drift_long_short": d.DriftLongShort,
		}
		if _, err := tx.NamedExecContext(ctx, insert, params); err != nil {
			return fmt.Errorf("inserting portfolio day %s: %w", d.Date, err)
		}
	}
	return tx.Commit()
}
