package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskdeck/taskdeck/api/http/handlers"
)

// PublicPrefixes lists the routes the session gate leaves open: the landing
// page, the auth entry point and endpoints, probes and the API docs.
var PublicPrefixes = []string{"/", "/auth", "/health", "/ready", "/swagger"}

// Register wires all HTTP routes onto given Fiber app. The gate runs before
// every route; paths outside PublicPrefixes require a valid session cookie.
func Register(app *fiber.App, gate fiber.Handler, pages *handlers.PageHandler, auth *handlers.AuthHandler, tasks *handlers.TaskHandler, health *handlers.HealthHandler) {
	app.Use(gate)

	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	app.Get("/", pages.Landing)
	app.Get("/auth", pages.AuthEntry)

	a := app.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/logout", auth.Logout)

	t := app.Group("/tasks")
	t.Get("/", tasks.List)
	t.Post("/", tasks.Create)
	t.Put("/:id", tasks.Update)
	t.Delete("/:id", tasks.Delete)
}
