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
	"github.com/taskdeck/taskdeck/pkg/auth"
)

type stubAuthUseCase struct {
	registerResult auth.AuthResult
	registerErr    error
	loginResult    auth.AuthResult
	loginErr       error
}

func (s *stubAuthUseCase) Register(context.Context, auth.RegisterInput) (auth.AuthResult, error) {
	return s.registerResult, s.registerErr
}

func (s *stubAuthUseCase) Login(context.Context, string, string) (auth.AuthResult, error) {
	return s.loginResult, s.loginErr
}

func authApp(stub *stubAuthUseCase) *fiber.App {
	app := fiber.New()
	h := handlers.NewAuthHandler(stub, handlers.CookieOptions{TTL: time.Hour})
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/logout", h.Logout)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestRegisterHandler(t *testing.T) {
	user := auth.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	app := authApp(&stubAuthUseCase{
		registerResult: auth.AuthResult{User: user, Token: "signed-token"},
	})

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"fullName": "Alice", "email": "alice@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.Equal(t, "signed-token", body["token"])

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
}

func TestRegisterHandlerValidation(t *testing.T) {
	app := authApp(&stubAuthUseCase{
		registerErr: auth.ErrValidation("name, email and password are required"),
	})

	resp := postJSON(t, app, "/auth/register", fiber.Map{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	app := authApp(&stubAuthUseCase{registerErr: auth.ErrUserAlreadyExists})

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"fullName": "Alice", "email": "alice@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "user already exists", decodeBody(t, resp)["message"])
}

func TestLoginHandler(t *testing.T) {
	user := auth.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	app := authApp(&stubAuthUseCase{
		loginResult: auth.AuthResult{User: user, Token: "signed-token"},
	})

	resp := postJSON(t, app, "/auth/login", fiber.Map{
		"email": "alice@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "signed-token", body["token"])
	projection, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), projection["id"])
	assert.Equal(t, "Alice", projection["name"])
	assert.Equal(t, "alice@example.com", projection["email"])

	require.NotNil(t, sessionCookie(resp))
}

func TestLoginHandlerMissingFields(t *testing.T) {
	app := authApp(&stubAuthUseCase{})

	resp := postJSON(t, app, "/auth/login", fiber.Map{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	app := authApp(&stubAuthUseCase{loginErr: auth.ErrInvalidCredentials})

	// Wrong password and unknown email surface identically.
	resp := postJSON(t, app, "/auth/login", fiber.Map{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", decodeBody(t, resp)["message"])
	assert.Nil(t, sessionCookie(resp))
}

func TestLogoutHandler(t *testing.T) {
	app := authApp(&stubAuthUseCase{})

	resp := postJSON(t, app, "/auth/logout", fiber.Map{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Logged out successfully", decodeBody(t, resp)["message"])

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
}
