package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"
)

// Connect opens a pgx connection pool and performs a Ping to ensure connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	// Reasonable defaults
	config.MaxConns = 10
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// Lazy is a shared connection handle that establishes the pool on first use
// and reuses it for the lifetime of the process. Concurrent first calls are
// collapsed into a single connection attempt; a failed attempt is not cached,
// so the next request retries.
type Lazy struct {
	dsn string

	sf   singleflight.Group
	mu   sync.RWMutex
	pool *pgxpool.Pool
}

// NewLazy returns a handle that will connect to dsn on first Get.
func NewLazy(dsn string) *Lazy {
	return &Lazy{dsn: dsn}
}

// Get returns the shared pool, connecting if it has not been established yet.
func (l *Lazy) Get(ctx context.Context) (*pgxpool.Pool, error) {
	l.mu.RLock()
	pool := l.pool
	l.mu.RUnlock()
	if pool != nil {
		return pool, nil
	}

	v, err, _ := l.sf.Do("connect", func() (any, error) {
		l.mu.RLock()
		existing := l.pool
		l.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}
		p, err := Connect(ctx, l.dsn)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.pool = p
		l.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pgxpool.Pool), nil
}

// Close releases the pool if it was ever established.
func (l *Lazy) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pool != nil {
		l.pool.Close()
		l.pool = nil
	}
}
