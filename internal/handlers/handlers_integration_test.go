package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/payment"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns a fixed intent or error.
type stubProvider struct {
	intent *payment.Intent
	err    error
	last   payment.IntentRequest
}

func (s *stubProvider) CreateIntent(_ context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	s.last = req
	return s.intent, s.err
}

// setupApp sets up a Fiber app backed by in-memory SQLite and the seeded catalog.
func setupApp(t *testing.T, provider payment.Provider) *fiber.App {
	t.Helper()

	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)

	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	require.NoError(t, catalog.Seed(context.Background(), productRepo))

	productService := services.NewProductService(productRepo, nil)
	orderService := services.NewOrderService(orderRepo, productRepo, nil)
	checkoutService := services.NewCheckoutService(orderService, provider, "usd")
	authService := services.NewAuthService(userRepo, "test_jwt_secret", time.Hour)

	app := fiber.New()
	handlers.NewProductHandler(productService).RegisterRoutes(app)
	handlers.NewOrderHandler(orderService).RegisterRoutes(app)
	handlers.NewCheckoutHandler(checkoutService).RegisterRoutes(app)
	handlers.NewAuthHandler(authService).RegisterRoutes(app)
	return app
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewReader([]byte(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func checkoutBody(items ...map[string]any) map[string]any {
	return map[string]any{
		"email": "a@x.com",
		"address": map[string]string{
			"fullName": "Ada Lovelace", "line1": "12 St James's Sq", "city": "London",
			"country": "GB", "postalCode": "SW1Y 4JH",
		},
		"items": items,
	}
}

func decimalField(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "expected decimal string, got %T", v)
	return decimal.RequireFromString(s)
}

func TestCheckout_WithoutPaymentProvider(t *testing.T) {
	app := setupApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/checkout", checkoutBody(map[string]any{"id": "p1", "quantity": 2}))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, services.PaymentNotConfiguredMessage, body["message"])
	assert.NotContains(t, body, "clientSecret")

	order := body["order"].(map[string]any)
	assert.NotEmpty(t, order["id"])
	assert.True(t, decimalField(t, order["total"]).Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "London", order["address"].(map[string]any)["city"])
}

func TestCheckout_IgnoresClientPrices(t *testing.T) {
	app := setupApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/checkout",
		checkoutBody(map[string]any{"id": "p1", "quantity": 1, "price": 0.01, "unitPrice": 0.01}))
	require.Equal(t, http.StatusOK, status)

	order := body["order"].(map[string]any)
	assert.True(t, decimalField(t, order["total"]).Equal(decimal.NewFromInt(25)))
}

func TestCheckout_WithPaymentProvider(t *testing.T) {
	provider := &stubProvider{intent: &payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}}
	app := setupApp(t, provider)

	status, body := doJSON(t, app, http.MethodPost, "/checkout", checkoutBody(map[string]any{"id": "p3", "quantity": 2}))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pi_1_secret", body["clientSecret"])
	assert.NotContains(t, body, "message")

	order := body["order"].(map[string]any)
	assert.Equal(t, order["id"], provider.last.OrderID)
	assert.EqualValues(t, 12900, provider.last.Amount)
	assert.Equal(t, "a@x.com", provider.last.Email)
}

func TestCheckout_ProviderRejection(t *testing.T) {
	provider := &stubProvider{err: &payment.ProviderError{Message: "Your card was declined."}}
	app := setupApp(t, provider)

	status, body := doJSON(t, app, http.MethodPost, "/checkout", checkoutBody(map[string]any{"id": "p1", "quantity": 1}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Your card was declined.", body["message"])
}

func TestCheckout_ValidationFailures(t *testing.T) {
	app := setupApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/checkout", checkoutBody())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "items")

	status, body = doJSON(t, app, http.MethodPost, "/checkout", checkoutBody(map[string]any{"id": "ghost", "quantity": 1}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "product ghost not found", body["message"])

	status, body = doJSON(t, app, http.MethodPost, "/checkout", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", body["message"])

	_, listed := doJSON(t, app, http.MethodGet, "/orders", nil)
	assert.Empty(t, listed["orders"])
}

func TestOrders_CreateListAndGet(t *testing.T) {
	app := setupApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/orders", map[string]any{
		"email": "a@x.com",
		"items": []map[string]any{{"id": "p1", "quantity": 2}, {"id": "p2", "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, status)
	created := body["order"].(map[string]any)
	assert.True(t, decimalField(t, created["total"]).Equal(decimal.NewFromInt(68)))

	status, body = doJSON(t, app, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusOK, status)
	orders := body["orders"].([]any)
	require.Len(t, orders, 1)
	assert.Equal(t, created["id"], orders[0].(map[string]any)["id"])

	status, body = doJSON(t, app, http.MethodGet, "/orders/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, created["id"], body["order"].(map[string]any)["id"])

	status, _ = doJSON(t, app, http.MethodGet, "/orders/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOrders_RejectsBadQuantity(t *testing.T) {
	app := setupApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/orders", map[string]any{
		"email": "a@x.com",
		"items": []map[string]any{{"id": "p1", "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "quantity")
}

func TestProducts_Lookup(t *testing.T) {
	app := setupApp(t, nil)

	status, body := doJSON(t, app, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["products"], len(catalog.DefaultProducts()))

	status, body = doJSON(t, app, http.MethodGet, "/products/basic-tee", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "p1", body["product"].(map[string]any)["id"])

	status, body = doJSON(t, app, http.MethodGet, "/products/id/p2", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "canvas-tote", body["product"].(map[string]any)["slug"])

	status, _ = doJSON(t, app, http.MethodGet, "/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuth_RegisterLoginAndMe(t *testing.T) {
	app := setupApp(t, nil)
	registration := map[string]string{"email": "a@x.com", "password": "x", "name": "A"}

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", registration)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "A", user["name"])
	assert.NotEmpty(t, user["id"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	// Duplicate registration
	status, body = doJSON(t, app, http.MethodPost, "/auth/register", map[string]string{"email": "a@x.com", "password": "y", "name": "B"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "already registered")

	// Missing field
	status, _ = doJSON(t, app, http.MethodPost, "/auth/register", map[string]string{"email": "b@x.com", "name": "B"})
	assert.Equal(t, http.StatusBadRequest, status)

	// The first registration's password still works
	status, body = doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{"email": "a@x.com", "password": "x"})
	require.Equal(t, http.StatusOK, status)
	token := body["token"].(string)
	assert.NotEmpty(t, token)

	status, body = doJSON(t, app, http.MethodGet, "/auth/me", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, user["id"], body["user"].(map[string]any)["id"])
	assert.Equal(t, "A", body["user"].(map[string]any)["name"])

	status, _ = doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{"email": "a@x.com", "password": "y"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_RegisterRejectsOverlongPassword(t *testing.T) {
	app := setupApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/auth/register",
		map[string]string{"email": "long@x.com", "password": strings.Repeat("p", 80), "name": "L"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "password must be at most 72 bytes", body["message"])
}

func TestCheckout_TrimsEmailLikeOrders(t *testing.T) {
	app := setupApp(t, nil)

	body := checkoutBody(map[string]any{"id": "p1", "quantity": 1})
	body["email"] = "  a@x.com "
	status, resp := doJSON(t, app, http.MethodPost, "/checkout", body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@x.com", resp["order"].(map[string]any)["email"])

	status, _ = doJSON(t, app, http.MethodPost, "/orders", map[string]any{
		"email": "  a@x.com ",
		"items": []map[string]any{{"id": "p1", "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, status)
}

func TestAuth_MeWithoutToken(t *testing.T) {
	app := setupApp(t, nil)

	status, _ := doJSON(t, app, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodGet, "/auth/me", nil, "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)
}
