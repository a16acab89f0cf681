package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/datatrail-io/datatrail/internal/handlers"
	"github.com/datatrail-io/datatrail/internal/middleware"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/datatrail-io/datatrail/internal/types"
	"github.com/gofiber/fiber/v2"
)

const testJWTSecret = "handler-test-secret"

func setupAuthApp() *fiber.App {
	st := store.NewMemoryStore()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if ce, ok := err.(*types.CustomError); ok {
				return c.Status(ce.Code).JSON(fiber.Map{
					"status":  ce.Code,
					"message": ce.Message,
					"ok":      false,
					"type":    ce.Type,
				})
			}
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
	})

	handler := &handlers.AuthHandler{Store: st, JWTSecret: testJWTSecret}
	api := app.Group("/api")
	api.Post("/auth/register", handler.Register)
	api.Post("/auth/login", handler.Login)
	api.Get("/auth/me", middleware.AuthRequired(testJWTSecret), handler.Me)
	return app
}

func TestRegisterLoginMe(t *testing.T) {
	app := setupAuthApp()

	resp := doJSON(t, app, "POST", "/api/auth/register", `{"username":"alice","password":"secret"}`)
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}
	var user map[string]interface{}
	decode(t, resp, &user)
	if _, leaked := user["password"]; leaked {
		t.Error("Password hash must not be serialized")
	}

	resp = doJSON(t, app, "POST", "/api/auth/login", `{"username":"alice","password":"secret"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var login map[string]string
	decode(t, resp, &login)
	if login["token"] == "" {
		t.Fatal("Expected a session token")
	}

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login["token"])
	meResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if meResp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", meResp.StatusCode)
	}
	var me map[string]string
	decode(t, meResp, &me)
	if me["username"] != "alice" {
		t.Errorf("Expected username alice, got %q", me["username"])
	}
}

func TestRegisterDuplicate(t *testing.T) {
	app := setupAuthApp()

	resp := doJSON(t, app, "POST", "/api/auth/register", `{"username":"alice","password":"secret"}`)
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/auth/register", `{"username":"alice","password":"other"}`)
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
	var env errorEnvelope
	decode(t, resp, &env)
	if env.Message != "Username already taken" {
		t.Errorf("Unexpected message: %q", env.Message)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	app := setupAuthApp()

	resp := doJSON(t, app, "POST", "/api/auth/register", `{"username":"bob","password":"secret"}`)
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/auth/login", `{"username":"bob","password":"wrong"}`)
	if resp.StatusCode != 401 {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}

func TestMeWithoutToken(t *testing.T) {
	app := setupAuthApp()

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403 for a bad token, got %d", resp.StatusCode)
	}
}
