package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	storage "github.com/taskdeck/taskdeck/pkg/storage/postgres"
	"github.com/taskdeck/taskdeck/pkg/task"
)

// TaskRepository implements task.Repository backed by PostgreSQL (pgx).
type TaskRepository struct {
	db *storage.Lazy

	mu    sync.Mutex
	ready bool
}

func NewTaskRepository(db *storage.Lazy) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) conn(ctx context.Context) (*pgxpool.Pool, error) {
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

func (r *TaskRepository) ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS tasks (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	user_id UUID NOT NULL,
	assigned_to UUID,
	priority TEXT NOT NULL DEFAULT 'Medium',
	status TEXT NOT NULL DEFAULT 'Pending',
	due_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
`)
	return err
}

const taskColumns = `id, title, description, completed, user_id, assigned_to, priority, status, due_date, created_at, updated_at`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var createdAt, updatedAt time.Time
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID,
		&t.AssignedTo, &t.Priority, &t.Status, &t.DueDate, &createdAt, &updatedAt); err != nil {
		return task.Task{}, err
	}
	t.CreatedAt = createdAt.UTC()
	t.UpdatedAt = updatedAt.UTC()
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t task.Task) error {
	pool, err := r.conn(ctx)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
INSERT INTO tasks (`+taskColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`, t.ID, t.Title, t.Description, t.Completed, t.UserID,
		t.AssignedTo, t.Priority, t.Status, t.DueDate, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	pool, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update builds a single UPDATE over the provided patch fields so the merge
// is atomic, and returns the updated row.
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, p task.Patch) (task.Task, error) {
	pool, err := r.conn(ctx)
	if err != nil {
		return task.Task{}, err
	}

	sets := []string{"updated_at = $1"}
	args := []any{time.Now().UTC()}
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Completed != nil {
		add("completed", *p.Completed)
	}
	if p.AssignedTo != nil {
		add("assigned_to", *p.AssignedTo)
	}
	if p.Priority != nil {
		add("priority", *p.Priority)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.DueDate != nil {
		add("due_date", *p.DueDate)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d RETURNING `+taskColumns,
		strings.Join(sets, ", "), len(args))
	t, err := scanTask(pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	pool, err := r.conn(ctx)
	if err != nil {
		return err
	}
	// Deleting an absent row is not an error; delete stays idempotent.
	_, err = pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
