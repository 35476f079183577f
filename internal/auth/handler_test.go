package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"electromart-backend/internal/config"
	"electromart-backend/internal/database"
	"electromart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: strings.Repeat("s", 32)}
}

func newTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Post("/api/admin/register", RegisterAdminHandler(cfg))
	app.Post("/api/admin/login", LoginHandler(cfg))
	app.Get("/api/admin/me", JWTMiddleware(cfg), MeHandler())
	return app
}

func request(t *testing.T, app *fiber.App, method, path, body, bearer string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestRegisterLoginFlow(t *testing.T) {
	database.DB = setupTestDB(t)
	cfg := testConfig()
	app := newTestApp(cfg)

	resp, raw := request(t, app, http.MethodPost, "/api/admin/register",
		`{"name": "Store Admin", "username": "Admin", "password": "hunter22"}`, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "body: %s", raw)

	// username is normalised to lower case
	var reg struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(raw, &reg))
	assert.Equal(t, "admin", reg.Username)

	// bootstrap closes once an account exists
	resp, _ = request(t, app, http.MethodPost, "/api/admin/register",
		`{"name": "Second Admin", "username": "admin2", "password": "hunter22"}`, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = request(t, app, http.MethodPost, "/api/admin/login",
		`{"username": "admin", "password": "wrong"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, raw = request(t, app, http.MethodPost, "/api/admin/login",
		`{"username": "ADMIN", "password": "hunter22"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %s", raw)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &login))
	require.NotEmpty(t, login.Token)

	resp, raw = request(t, app, http.MethodGet, "/api/admin/me", "", login.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %s", raw)
	var me struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, "admin", me.Username)
}

func TestProtectedRouteRejectsBadTokens(t *testing.T) {
	database.DB = setupTestDB(t)
	cfg := testConfig()
	app := newTestApp(cfg)

	resp, _ := request(t, app, http.MethodGet, "/api/admin/me", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = request(t, app, http.MethodGet, "/api/admin/me", "", "not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// token signed with a different secret
	forged, err := GenerateToken(strings.Repeat("x", 32), &models.User{ID: 1, Username: "admin"})
	require.NoError(t, err)
	resp, _ = request(t, app, http.MethodGet, "/api/admin/me", "", forged)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
