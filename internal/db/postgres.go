package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CareDB wraps the Postgres pool backing the care store.
type CareDB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewCareDB creates the care-store connection pool from a Postgres URL
// (DATABASE_URL convention) and verifies it with a ping.
func NewCareDB(ctx context.Context, databaseURL string, logger *zap.Logger) (*CareDB, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	// Modest pool: each request holds a connection briefly, traffic is
	// per-user interactive, and Postgres defaults cap at 100 connections.
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 20 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}

	logger.Info("care store connected",
		zap.String("dsn", poolConfig.ConnString()),
		zap.Int32("max_conns", poolConfig.MaxConns),
	)
	return &CareDB{
		pool:   pool,
		logger: logger,
	}, nil
}

func (db *CareDB) Close() {
	db.logger.Info("closing care store connection pool")
	db.pool.Close()
}

func (db *CareDB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *CareDB) Health(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
