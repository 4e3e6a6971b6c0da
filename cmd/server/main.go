// @title         taskdeck API
// @version       1.0
// @description   Task-management service: registration/login with signed session cookies and a gated task CRUD API.
// @BasePath      /
// @schemes       http
// @host          localhost:8080
package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	_ "github.com/taskdeck/taskdeck/docs"

	// internal imports
	"github.com/taskdeck/taskdeck/api/http"
	"github.com/taskdeck/taskdeck/api/http/handlers"
	"github.com/taskdeck/taskdeck/pkg/auth"
	"github.com/taskdeck/taskdeck/pkg/config"
	"github.com/taskdeck/taskdeck/pkg/health"
	healthpg "github.com/taskdeck/taskdeck/pkg/health/checkers"
	pgrepo "github.com/taskdeck/taskdeck/pkg/repository/postgres"
	"github.com/taskdeck/taskdeck/pkg/security/jwt"
	"github.com/taskdeck/taskdeck/pkg/storage/postgres"
	"github.com/taskdeck/taskdeck/pkg/task"
)

func main() {
	app := fiber.New()

	// Load configuration from env/.env
	cfg := config.Load()

	// Shared lazy connection handle; the pool is established by the first
	// request (or readiness probe) that touches the database.
	db := postgres.NewLazy(cfg.DatabaseURL)
	defer db.Close()

	// Wire dependencies (Clean Architecture)
	userRepo := pgrepo.NewUserRepository(db)
	taskRepo := pgrepo.NewTaskRepository(db)

	// Token generator; the ttl also bounds the session cookie.
	ttl := time.Duration(cfg.JWTTTLHours) * time.Hour
	tokens := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, ttl)

	authUC := auth.NewAuthService(userRepo, tokens)
	authHandler := handlers.NewAuthHandler(authUC, handlers.CookieOptions{
		TTL:    ttl,
		Secure: cfg.CookieSecure,
	})

	taskUC := task.NewService(taskRepo)
	taskHandler := handlers.NewTaskHandler(taskUC)

	// Health service: compose checkers
	readiness := health.NewService(healthpg.NewPostgresChecker(db))
	healthHandler := handlers.NewHealthHandler(readiness)

	// Session gate for everything outside the public allow-list
	gate := jwt.NewSessionGate(tokens, jwt.GateConfig{
		PublicPrefixes: http.PublicPrefixes,
	})

	// Register routes
	http.Register(app, gate, handlers.NewPageHandler(), authHandler, taskHandler, healthHandler)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	port := cfg.Port
	log.Printf("HTTP server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
