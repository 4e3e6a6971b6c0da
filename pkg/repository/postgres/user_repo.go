package postgres

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/pkg/auth"
	storage "github.com/taskdeck/taskdeck/pkg/storage/postgres"
)

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
// The connection is established lazily through the shared handle; the schema
// is ensured once, on the first operation that reaches the database.
type UserRepository struct {
	db *storage.Lazy

	mu    sync.Mutex
	ready bool
}

func NewUserRepository(db *storage.Lazy) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) conn(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		if err := r.ensureSchema(ctx, pool); err != nil {
			return nil, err
		}
		r.ready = true
	}
	return pool, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			age INT NOT NULL DEFAULT 0,
			gender TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	pool, err := r.conn(ctx)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, username, phone, age, gender, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Name,
		user.Username, user.Phone, user.Age, user.Gender, user.Address, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	pool, err := r.conn(ctx)
	if err != nil {
		return auth.User{}, err
	}
	row := pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, username, phone, age, gender, address, created_at
		FROM users WHERE email = $1
	`, strings.ToLower(email))
	var user auth.User
	var createdAt time.Time
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Username, &user.Phone, &user.Age, &user.Gender, &user.Address, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
