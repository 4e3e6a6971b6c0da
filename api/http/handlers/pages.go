package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/taskdeck/taskdeck/api/http/presenter"
)

// PageHandler serves the public entry points. The UI itself lives in a
// separate frontend; these routes exist so the landing page and the session
// gate's redirect target resolve to something meaningful.
type PageHandler struct{}

func NewPageHandler() *PageHandler { return &PageHandler{} }

// Landing is the public front page.
func (h *PageHandler) Landing(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"service": "taskdeck",
		"auth":    "/auth",
	})
}

// AuthEntry is where unauthenticated clients are redirected.
func (h *PageHandler) AuthEntry(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message":  "authentication required",
		"register": "/auth/register",
		"login":    "/auth/login",
	})
}
