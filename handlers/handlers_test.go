package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"apptrack/config"
	"apptrack/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing. A single
// connection keeps the :memory: database alive for the whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Application{}))
	return db
}

// setupApp wires a fresh Fiber app with all routes against a fresh database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	Init(db)
	InitAuthHandlers(&config.Config{JWTSecret: "test-secret-key"})

	app := fiber.New()
	app.Get("/applications", GetApplications)
	app.Post("/applications", CreateApplication)
	app.Put("/applications/:id", UpdateApplication)
	app.Delete("/applications/:id", DeleteApplication)
	app.Post("/register", Register)
	app.Post("/login", Login)
	return app, db
}

// request performs a JSON request against the app and returns the response.
func request(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode unmarshals the response body into a generic map.
func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	return out
}

// errorFields extracts the field names from a validation error response.
func errorFields(t *testing.T, resp *http.Response) []string {
	t.Helper()

	body := decode(t, resp)
	raw, ok := body["errors"].([]interface{})
	require.True(t, ok, "expected an errors array, got %v", body)

	var fields []string
	for _, e := range raw {
		entry, ok := e.(map[string]interface{})
		require.True(t, ok)
		fields = append(fields, entry["field"].(string))
	}
	return fields
}
