package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/medimart/marketplace-service/internal/api/http"
	"github.com/medimart/marketplace-service/internal/api/http/handlers"
	"github.com/medimart/marketplace-service/internal/api/response"
	"github.com/medimart/marketplace-service/internal/auth"
	"github.com/medimart/marketplace-service/internal/cache"
	"github.com/medimart/marketplace-service/internal/observability"
	"github.com/medimart/marketplace-service/internal/persistence"
	"github.com/medimart/marketplace-service/internal/store"
)

func newTestServer(t *testing.T) (*fiber.App, *store.MemoryStore, *auth.TokenManager) {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	mem := store.NewMemoryStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(mem.Collection("users"), tokens),
		Catalog:        handlers.NewCatalogHandler(mem.Collection("categories"), mem.Collection("products"), cache.New(nil), logger),
		Orders:         handlers.NewOrdersHandler(mem.Collection("orders"), mem.Collection("payments")),
		Banners:        handlers.NewBannersHandler(mem.Collection("banners")),
		Rentals:        handlers.NewRentalsHandler(mem.Collection("cars"), mem.Collection("bookings")),
		AuthMiddleware: auth.NewMiddleware(tokens),
		Metrics:        metrics,
	})
	return app, mem, tokens
}

func issueToken(t *testing.T, tokens *auth.TokenManager, id, email, role string) string {
	t.Helper()
	token, _, err := tokens.Issue(id, email, role)
	require.NoError(t, err)
	return token
}

// doRequest performs a JSON request and decodes the response envelope. A raw
// token goes into the Authorization header when provided.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (int, response.Envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func dataMap(t *testing.T, env response.Envelope) map[string]any {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	require.True(t, ok, "envelope data is not an object: %v", env.Data)
	return m
}

func dataList(t *testing.T, env response.Envelope) []any {
	t.Helper()
	l, ok := env.Data.([]any)
	require.True(t, ok, "envelope data is not a list: %v", env.Data)
	return l
}

func mustStatus(t *testing.T, want, got int, env response.Envelope) {
	t.Helper()
	require.Equal(t, want, got, "message: %s", env.Message)
	require.Equal(t, want, env.StatusCode)
}
