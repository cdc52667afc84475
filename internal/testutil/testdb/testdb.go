//go:build testutil
// +build testutil

// Package testdb starts a throwaway Postgres container, applies the
// schema migrations and seeds the fixed taxonomy, for repository tests
// that need real SQL semantics.
package testdb

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/dawitf/ece-backend/internal/app/migrations"
	"github.com/dawitf/ece-backend/internal/config"
	"github.com/dawitf/ece-backend/internal/seed"
)

// Handle owns a containerized database and its connection pool.
type Handle struct {
	Pool   *pgxpool.Pool
	cancel func()
	stop   func(context.Context) error
}

// Close releases the pool and terminates the container.
func (h *Handle) Close() {
	if h.Pool != nil {
		h.Pool.Close()
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

// Start runs a Postgres container, connects a pool, applies migrations
// and seeds the taxonomy rows.
func Start(ctx context.Context) (*Handle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("ece_department"),
		postgres.WithUsername("ece"),
		postgres.WithPassword("ece"),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}
	if err := waitReady(ctx, pool); err != nil {
		pool.Close()
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	if err := migrations.Migrate(ctx, pool); err != nil {
		pool.Close()
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}
	// Empty config: taxonomy only, no bootstrap admin.
	if err := seed.Run(ctx, pool, &config.Config{}); err != nil {
		pool.Close()
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	return &Handle{
		Pool:   pool,
		cancel: cancel,
		stop:   pg.Terminate,
	}, nil
}

func waitReady(ctx context.Context, pool *pgxpool.Pool) error {
	dead := time.Now().Add(20 * time.Second)
	for time.Now().Before(dead) {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return errors.New("database not ready")
}

// BatchID resolves a seeded batch tier by its label.
func (h *Handle) BatchID(ctx context.Context, year string) (int64, error) {
	var id int64
	err := h.Pool.QueryRow(ctx,
		`SELECT batch_id FROM batches WHERE batch_year = $1`, year).Scan(&id)
	return id, err
}
