package checkers

import (
	"context"
	"time"

	storage "github.com/taskdeck/taskdeck/pkg/storage/postgres"
)

// PostgresChecker pings the database through the shared lazy handle. The
// first readiness probe is what establishes the connection.
type PostgresChecker struct {
	db *storage.Lazy
}

func NewPostgresChecker(db *storage.Lazy) *PostgresChecker {
	return &PostgresChecker{db: db}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	pool, err := c.db.Get(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}
