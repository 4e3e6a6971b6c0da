package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status tracks a task through its lifecycle.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Completed   bool
	UserID      uuid.UUID
	AssignedTo  *uuid.UUID
	Priority    Priority
	Status      Status
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrNotFound is returned when an id does not resolve to a stored task.
var ErrNotFound = errors.New("task not found")

// ErrValidation reports invalid input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Patch holds a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Completed   *bool
	AssignedTo  *uuid.UUID
	Priority    *Priority
	Status      *Status
	DueDate     *time.Time
}

// Repository is the persistence port for tasks.
type Repository interface {
	Create(ctx context.Context, t Task) error
	List(ctx context.Context) ([]Task, error)
	// Update applies the patch atomically and returns the updated row,
	// or ErrNotFound if id is absent.
	Update(ctx context.Context, id uuid.UUID, p Patch) (Task, error)
	// Delete is idempotent: removing an absent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
