package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase covers CRUD over tasks.
type UseCase interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, in CreateInput) (Task, error)
	Update(ctx context.Context, id uuid.UUID, p Patch) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateInput carries the fields accepted on task creation. Title and UserID
// are required; the rest default per the task schema.
type CreateInput struct {
	Title       string
	UserID      uuid.UUID
	Description string
	AssignedTo  *uuid.UUID
	Priority    Priority
	Status      Status
	DueDate     *time.Time
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

// List returns every stored task regardless of owner. Creation requires an
// owner but listing does not filter by one; this mirrors the documented
// behavior of the system.
func (s *service) List(ctx context.Context) ([]Task, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, in CreateInput) (Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return Task{}, ErrValidation("title is required")
	}
	if in.UserID == uuid.Nil {
		return Task{}, ErrValidation("userId is required")
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Priority.Valid() {
		return Task{}, ErrValidation("invalid priority")
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	if !in.Status.Valid() {
		return Task{}, ErrValidation("invalid status")
	}

	now := time.Now().UTC()
	t := Task{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		UserID:      in.UserID,
		AssignedTo:  in.AssignedTo,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, p Patch) (Task, error) {
	if p.Title != nil {
		trimmed := strings.TrimSpace(*p.Title)
		if trimmed == "" {
			return Task{}, ErrValidation("title cannot be blank")
		}
		p.Title = &trimmed
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return Task{}, ErrValidation("invalid priority")
	}
	if p.Status != nil && !p.Status.Valid() {
		return Task{}, ErrValidation("invalid status")
	}
	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
