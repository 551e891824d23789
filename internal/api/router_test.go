package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommercepro-backend/internal/models"
	"ecommercepro-backend/internal/shop"
	"ecommercepro-backend/internal/store/memstore"
)

type testServer struct {
	router *gin.Engine
	store  *memstore.Store
}

func newTestServer(t *testing.T, auth *AdminAuth) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := memstore.New()

	ctx := context.Background()
	require.NoError(t, st.Products().InsertMany(ctx, []models.Product{
		{ID: "p1", Name: "Luxury Cosmetic Collection", Price: decimal.RequireFromString("299.99"), Category: "Beauty", Stock: 25},
		{ID: "p2", Name: "MacBook Pro Setup", Price: decimal.RequireFromString("2499.99"), Category: "Electronics", Stock: 8, Featured: true},
	}))

	svc := Services{
		Catalog: shop.NewCatalog(st.Products()),
		Carts:   shop.NewCarts(log, st.Carts(), st.Products()),
		Admin:   shop.NewAdmin(log, st.Products(), st.Orders()),
		Seeder:  shop.NewSeeder(log, st.Products(), st.Orders()),
	}
	r := NewRouter(log, svc, Options{CORSOrigins: []string{"*"}, RequestTimeout: 5 * time.Second, Auth: auth})
	return &testServer{router: r, store: st}
}

func (s *testServer) do(t *testing.T, method, path, body string, header ...string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (s *testServer) doList(t *testing.T, path string) []any {
	t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out []any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	code, body := s.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "EcommercePro API", body["service"])
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Len(t, s.doList(t, "/api/products"), 2)
	assert.Len(t, s.doList(t, "/api/products?category=Beauty"), 1)
	assert.Len(t, s.doList(t, "/api/products?featured=true"), 1)
	assert.Len(t, s.doList(t, "/api/products?featured=false&category=Electronics"), 0)

	code, body := s.do(t, http.MethodGet, "/api/products?featured=maybe", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["detail"], "featured")

	code, body = s.do(t, http.MethodGet, "/api/products/p1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 299.99, body["price"])
	assert.Equal(t, "Beauty", body["category"])

	code, body = s.do(t, http.MethodGet, "/api/products/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", body["detail"])

	code, body = s.do(t, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []any{"Beauty", "Electronics"}, body["categories"])
}

func TestCartRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	code, body := s.do(t, http.MethodGet, "/api/cart/sess-1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "sess-1", body["session_id"])
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, []any{}, body["items"])

	code, body = s.do(t, http.MethodPost, "/api/cart/sess-1/add", `{"product_id":"p1","quantity":2,"price":1}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Item added to cart", body["message"])
	cart := body["cart"].(map[string]any)
	assert.Equal(t, 599.98, cart["total"])

	code, body = s.do(t, http.MethodPost, "/api/cart/sess-1/add", `{"product_id":"p2","quantity":9}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Insufficient stock", body["detail"])

	code, body = s.do(t, http.MethodPost, "/api/cart/sess-1/add", `{"product_id":"ghost","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", body["detail"])

	code, _ = s.do(t, http.MethodPost, "/api/cart/sess-1/add", `{"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, http.MethodPut, "/api/cart/sess-1/update", `{"product_id":"p1","quantity":1,"price":299.99}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Cart updated", body["message"])
	assert.Equal(t, 299.99, body["cart"].(map[string]any)["total"])

	code, body = s.do(t, http.MethodPut, "/api/cart/sess-1/update", `{"product_id":"p2","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Item not found in cart", body["detail"])

	code, body = s.do(t, http.MethodPut, "/api/cart/nobody/update", `{"product_id":"p1","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Cart not found", body["detail"])

	code, body = s.do(t, http.MethodPut, "/api/cart/sess-1/update", `{"product_id":"p1","quantity":0}`)
	require.Equal(t, http.StatusOK, code)
	cart = body["cart"].(map[string]any)
	assert.Equal(t, []any{}, cart["items"])
	assert.Equal(t, float64(0), cart["total"])

	code, body = s.do(t, http.MethodDelete, "/api/cart/sess-1/clear", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Cart cleared", body["message"])
}

func TestClearUnknownSessionCreatesNothing(t *testing.T) {
	s := newTestServer(t, nil)

	code, _ := s.do(t, http.MethodDelete, "/api/cart/never-seen/clear", "")
	assert.Equal(t, http.StatusOK, code)

	_, err := s.store.Carts().FindBySession(context.Background(), "never-seen")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAdminProductRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	code, body := s.do(t, http.MethodPost, "/api/admin/products",
		`{"name":"Desk","description":"Oak","price":"149.50","category":"Home & Design","image_url":"x.jpg","stock":"3"}`)
	require.Equal(t, http.StatusOK, code, body)
	id := body["id"].(string)
	assert.Equal(t, 149.5, body["price"])
	assert.EqualValues(t, 3, body["stock"])
	assert.Equal(t, false, body["featured"])

	code, body = s.do(t, http.MethodPut, "/api/admin/products/"+id,
		`{"name":"Desk XL","price":199,"category":"Home & Design","stock":4,"featured":true}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Desk XL", body["name"])

	code, _ = s.do(t, http.MethodPut, "/api/admin/products/missing", `{"name":"x","price":1,"stock":1}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, http.MethodDelete, "/api/admin/products/"+id, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Product deleted successfully", body["message"])

	code, body = s.do(t, http.MethodDelete, "/api/admin/products/"+id, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", body["detail"])
}

func TestAdminProductBadNumbersAreBadRequests(t *testing.T) {
	s := newTestServer(t, nil)

	bodies := []string{
		`{"name":"x","price":"abc","stock":1}`,
		`{"name":"x","price":1,"stock":"many"}`,
		`{"name":"x","price":1,"stock":1.5}`,
		`{"name":"x","stock":1}`,
		`{"name":"x","price":-1,"stock":1}`,
		`{"name":"","price":1,"stock":1}`,
		`{"name":"x","price":1,"stock":18446744073709551621}`,
		`{"name":"x","price":1,"stock":"-18446744073709551621"}`,
		`{"name":"x","price":1.000000000000000000000000000000000001,"stock":1}`,
		`not json`,
	}
	for _, b := range bodies {
		code, _ := s.do(t, http.MethodPost, "/api/admin/products", b)
		assert.Equal(t, http.StatusBadRequest, code, b)
	}
}

func TestOrderRoutesAndStats(t *testing.T) {
	s := newTestServer(t, nil)

	code, body := s.do(t, http.MethodPost, "/api/create-sample-order", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Sample order created", body["message"])
	order := body["order"].(map[string]any)
	orderID := order["id"].(string)
	assert.Equal(t, "paid", order["status"])

	require.NoError(t, s.store.Orders().Insert(context.Background(), models.Order{
		ID: "o-pending", Status: models.StatusPending, Total: decimal.RequireFromString("50"), CreatedAt: time.Now().Add(time.Minute),
	}))

	code, body = s.do(t, http.MethodGet, "/api/admin/stats", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 599.98, body["total_revenue"])
	assert.EqualValues(t, 2, body["total_products"])
	assert.EqualValues(t, 2, body["total_orders"])
	assert.Len(t, body["low_stock_products"], 1)
	assert.Len(t, body["recent_orders"], 2)
	assert.Len(t, body["category_stats"], 2)

	orders := s.doList(t, "/api/admin/orders")
	require.Len(t, orders, 2)
	assert.Equal(t, "o-pending", orders[0].(map[string]any)["id"])

	code, body = s.do(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", `{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid status", body["detail"])

	code, body = s.do(t, http.MethodPut, "/api/admin/orders/missing/status", `{"status":"shipped"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Order not found", body["detail"])

	code, body = s.do(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", `{"status":"shipped"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Order status updated successfully", body["message"])

	_, body = s.do(t, http.MethodGet, "/api/admin/stats", "")
	assert.Equal(t, float64(0), body["total_revenue"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
