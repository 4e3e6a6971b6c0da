package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/api/http/handlers"
	"github.com/taskdeck/taskdeck/pkg/task"
)

type memTaskRepo struct {
	tasks map[uuid.UUID]task.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[uuid.UUID]task.Task{}}
}

func (r *memTaskRepo) Create(_ context.Context, t task.Task) error {
	r.tasks[t.ID] = t
	return nil
}

func (r *memTaskRepo) List(_ context.Context) ([]task.Task, error) {
	out := []task.Task{}
	for _, t := range r.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (r *memTaskRepo) Update(_ context.Context, id uuid.UUID, p task.Patch) (task.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.AssignedTo != nil {
		t.AssignedTo = p.AssignedTo
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	t.UpdatedAt = time.Now().UTC()
	r.tasks[id] = t
	return t, nil
}

func (r *memTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.tasks, id)
	return nil
}

func taskApp(repo *memTaskRepo) *fiber.App {
	app := fiber.New()
	h := handlers.NewTaskHandler(task.NewService(repo))
	app.Get("/tasks", h.List)
	app.Post("/tasks", h.Create)
	app.Put("/tasks/:id", h.Update)
	app.Delete("/tasks/:id", h.Delete)
	return app
}

func putJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPut, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func do(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateTaskHandler(t *testing.T) {
	repo := newMemTaskRepo()
	app := taskApp(repo)
	owner := uuid.New()

	resp := postJSON(t, app, "/tasks", fiber.Map{
		"title":       "Buy milk",
		"userId":      owner.String(),
		"description": "two liters",
		"priority":    "High",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Buy milk", body["title"])
	assert.Equal(t, owner.String(), body["userId"])
	assert.Equal(t, "High", body["priority"])
	assert.Equal(t, "Pending", body["status"])
	assert.Equal(t, false, body["completed"])
	assert.Len(t, repo.tasks, 1)
}

func TestCreateTaskHandlerValidation(t *testing.T) {
	repo := newMemTaskRepo()
	app := taskApp(repo)

	// Missing title
	resp := postJSON(t, app, "/tasks", fiber.Map{"userId": uuid.New().String()})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing userId
	resp = postJSON(t, app, "/tasks", fiber.Map{"title": "Buy milk"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Nothing persisted on failure.
	assert.Empty(t, repo.tasks)
}

func TestListTasksHandler(t *testing.T) {
	repo := newMemTaskRepo()
	app := taskApp(repo)

	resp := do(t, app, http.MethodGet, "/tasks")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(b))

	postJSON(t, app, "/tasks", fiber.Map{"title": "Buy milk", "userId": uuid.New().String()})

	resp = do(t, app, http.MethodGet, "/tasks")
	var tasks []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0]["title"])
}

func TestUpdateTaskHandler(t *testing.T) {
	repo := newMemTaskRepo()
	app := taskApp(repo)

	created := decodeBody(t, postJSON(t, app, "/tasks", fiber.Map{
		"title": "Buy milk", "userId": uuid.New().String(), "description": "two liters",
	}))
	id := created["id"].(string)

	resp := putJSON(t, app, "/tasks/"+id, fiber.Map{"completed": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["completed"])
	// Untouched fields survive the patch.
	assert.Equal(t, "Buy milk", body["title"])
	assert.Equal(t, "two liters", body["description"])
}

func TestUpdateTaskHandlerNotFound(t *testing.T) {
	app := taskApp(newMemTaskRepo())

	resp := putJSON(t, app, "/tasks/"+uuid.New().String(), fiber.Map{"completed": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateTaskHandlerBadID(t *testing.T) {
	app := taskApp(newMemTaskRepo())

	resp := putJSON(t, app, "/tasks/not-a-uuid", fiber.Map{"completed": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteTaskHandlerIdempotent(t *testing.T) {
	repo := newMemTaskRepo()
	app := taskApp(repo)

	created := decodeBody(t, postJSON(t, app, "/tasks", fiber.Map{
		"title": "Buy milk", "userId": uuid.New().String(),
	}))
	id := created["id"].(string)

	resp := do(t, app, http.MethodDelete, "/tasks/"+id)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Task deleted", decodeBody(t, resp)["message"])
	assert.Empty(t, repo.tasks)

	// Second delete still confirms.
	resp = do(t, app, http.MethodDelete, "/tasks/"+id)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Task deleted", decodeBody(t, resp)["message"])
}
