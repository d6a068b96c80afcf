package dataset

// DataFetcher: opens one connection, runs every query in order and materializes the
// results. The connection is released when the batch ends, successfully or not.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"housing-charts/internal/config"
	"housing-charts/internal/infra/log"
	"housing-charts/internal/infra/retry"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Open returns a pool limited to one connection, already pinged.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, &ConnectionError{Driver: cfg.Driver, Err: err}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	startTime := time.Now()
	err = retry.Do(ctx, retry.Options{MaxRetries: cfg.MaxRetries, MaxDelay: 5 * time.Second}, func() error {
		pingCtx := ctx
		if d := cfg.ConnectTimeoutDuration(); d > 0 {
			var cancel context.CancelFunc
			pingCtx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return db.PingContext(pingCtx)
	})
	if err != nil {
		db.Close()
		return nil, &ConnectionError{Driver: cfg.Driver, Err: err}
	}

	log.LogInfo("Database connection established",
		zap.String("driver", cfg.Driver),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return db, nil
}

// Fetcher executes a batch of queries on a single connection.
type Fetcher struct {
	cfg     config.DatabaseConfig
	limiter *rate.Limiter
}

func NewFetcher(cfg config.DatabaseConfig) *Fetcher {
	f := &Fetcher{cfg: cfg}
	if cfg.QueryRate > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.QueryRate), 1)
	}
	return f
}

// FetchAll runs queries in order and returns one table per query. The first failure
// aborts the batch and no tables are returned.
func (f *Fetcher) FetchAll(ctx context.Context, queries []string) ([]*Table, error) {
	db, err := Open(ctx, f.cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, &ConnectionError{Driver: f.cfg.Driver, Err: err}
	}
	defer conn.Close()

	tables := make([]*Table, 0, len(queries))
	for i, q := range queries {
		t, err := f.fetchOne(ctx, conn, i, q)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, conn *sql.Conn, index int, query string) (*Table, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, &QueryError{Index: index, SQL: query, Err: fmt.Errorf("rate limiter wait failed: %w", err)}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, &QueryError{Index: index, SQL: query, Err: err}
	}

	qctx := ctx
	if d := f.cfg.QueryTimeoutDuration(); d > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	startTime := time.Now()
	t, err := runQuery(qctx, conn, query)
	if err != nil {
		log.LogQuery(index, 0, time.Since(startTime), err)
		return nil, &QueryError{Index: index, SQL: query, Err: err}
	}
	log.LogQuery(index, t.Len(), time.Since(startTime), nil, zap.Strings("columns", t.Columns))
	return t, nil
}

func runQuery(ctx context.Context, conn *sql.Conn, query string) (*Table, error) {
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return FromRows(rows)
}
