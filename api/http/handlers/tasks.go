package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/api/http/presenter"
	"github.com/taskdeck/taskdeck/pkg/task"
)

type TaskHandler struct {
	uc task.UseCase
}

func NewTaskHandler(uc task.UseCase) *TaskHandler { return &TaskHandler{uc: uc} }

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	UserID      string     `json:"userId"`
	AssignedTo  *string    `json:"assignedTo"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTaskResponse(t task.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		UserID:      t.UserID.String(),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		s := t.AssignedTo.String()
		resp.AssignedTo = &s
	}
	return resp
}

// List returns every task. Listing is not filtered by owner even though
// creation requires one; that asymmetry is the documented behavior.
// @Summary List tasks
// @Tags    tasks
// @Produce json
// @Success 200 {array} taskResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.uc.List(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to fetch tasks")
	}
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	UserID      string     `json:"userId"`
	Description string     `json:"description"`
	AssignedTo  *string    `json:"assignedTo"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

// Create stores a new task owned by the given user.
// @Summary Create task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   input body createTaskRequest true "task payload"
// @Success 201 {object} taskResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Title) == "" {
		return presenter.Error(c, http.StatusBadRequest, "title is required")
	}
	if req.UserID == "" {
		return presenter.Error(c, http.StatusBadRequest, "userId is required")
	}
	ownerID, err := uuid.Parse(req.UserID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "userId must be a valid UUID")
	}
	var assignedTo *uuid.UUID
	if req.AssignedTo != nil {
		id, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "assignedTo must be a valid UUID")
		}
		assignedTo = &id
	}

	t, err := h.uc.Create(c.Context(), task.CreateInput{
		Title:       req.Title,
		UserID:      ownerID,
		Description: req.Description,
		AssignedTo:  assignedTo,
		Priority:    task.Priority(req.Priority),
		Status:      task.Status(req.Status),
		DueDate:     req.DueDate,
	})
	if err != nil {
		var ve task.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create task")
	}
	return presenter.JSON(c, http.StatusCreated, toTaskResponse(t))
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	AssignedTo  *string    `json:"assignedTo"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

// Update merges the provided fields into an existing task.
// @Summary Update task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   id    path string            true "task id (UUID)"
// @Param   input body updateTaskRequest true "fields to change"
// @Success 200 {object} taskResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid task id")
	}
	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	patch := task.Patch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	}
	if req.AssignedTo != nil {
		aid, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "assignedTo must be a valid UUID")
		}
		patch.AssignedTo = &aid
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		s := task.Status(*req.Status)
		patch.Status = &s
	}

	t, err := h.uc.Update(c.Context(), id, patch)
	if err != nil {
		var ve task.ErrValidation
		switch {
		case errors.As(err, &ve):
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, task.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "task not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update task")
		}
	}
	return presenter.JSON(c, http.StatusOK, toTaskResponse(t))
}

// Delete removes a task. A second delete of the same id is still a success.
// @Summary Delete task
// @Tags    tasks
// @Produce json
// @Param   id path string true "task id (UUID)"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid task id")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete task")
	}
	return presenter.Message(c, http.StatusOK, "Task deleted")
}
