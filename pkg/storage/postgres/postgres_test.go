package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	storage "github.com/taskdeck/taskdeck/pkg/storage/postgres"
)

func TestLazyGetBadDSN(t *testing.T) {
	lazy := storage.NewLazy("not a dsn at all \x00")

	_, err := lazy.Get(context.Background())
	assert.Error(t, err)

	// A failed attempt is not cached; the next call fails afresh instead of
	// returning a nil pool.
	_, err = lazy.Get(context.Background())
	assert.Error(t, err)
}

func TestLazyCloseWithoutConnect(t *testing.T) {
	lazy := storage.NewLazy("postgres://localhost/never-used")
	// Close before any Get must be a no-op.
	lazy.Close()
}
