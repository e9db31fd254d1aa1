package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace-service/internal/models"
	"marketplace-service/internal/service"
	"marketplace-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewStore(models.StoreConfig{DiscountNValue: 3, DiscountPercentage: 10})
	require.NoError(t, s.SeedDemoUsers())

	cart := service.NewCartService(s)
	discounts := service.NewDiscountService(s)
	handler := NewHandler(HandlerDeps{
		Users:          service.NewUserService(s),
		Products:       service.NewProductService(s),
		Cart:           cart,
		Orders:         service.NewOrderService(s, cart, discounts),
		Discounts:      discounts,
		Analytics:      service.NewAnalyticsService(s),
		Config:         service.NewConfigService(s),
		JWTSecret:      []byte("test-secret"),
		TokenTTL:       time.Hour,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	})

	router := gin.New()
	handler.SetupRoutes(router)
	return router, s
}

func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, router *gin.Engine, userID string) string {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"user_id":  userID,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	token := loginAs(t, router, "customer1")

	// The issued token is accepted by the auth middleware.
	w := doRequest(router, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"user_id":  "customer1",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "not-a-bearer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/cart", "garbage.token.here", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGuard(t *testing.T) {
	router, _ := newTestRouter(t)

	customerToken := loginAs(t, router, "customer1")
	sellerToken := loginAs(t, router, "seller1")

	body := gin.H{"name": "Widget", "price": 9.99, "stock_quantity": 3}

	w := doRequest(router, http.MethodPost, "/api/v1/seller/products", customerToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/seller/products", sellerToken, body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/v1/admin/users", sellerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublicProductListing(t *testing.T) {
	router, s := newTestRouter(t)
	s.SaveProduct(models.Product{ID: "prod-1", SellerID: "seller1", Name: "Lamp", Price: 20, StockQuantity: 4})

	w := doRequest(router, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Products, 1)
	assert.Equal(t, "Lamp", resp.Products[0].Name)
}

func TestCheckoutFlow(t *testing.T) {
	router, s := newTestRouter(t)
	s.SaveProduct(models.Product{ID: "prod-1", SellerID: "seller1", Name: "Lamp", Price: 20, StockQuantity: 5})

	token := loginAs(t, router, "customer1")

	w := doRequest(router, http.MethodPost, "/api/v1/cart/items", token, gin.H{
		"product_id": "prod-1",
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Checkout without a discount code carries no body at all.
	w = doRequest(router, http.MethodPost, "/api/v1/orders/checkout", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result service.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OrderStatusPending, result.Order.Status)
	assert.Equal(t, 40.0, result.Order.TotalAmount)

	product, ok := s.GetProduct("prod-1")
	require.True(t, ok)
	assert.Equal(t, 3, product.StockQuantity)

	w = doRequest(router, http.MethodGet, "/api/v1/orders/"+result.Order.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutEmptyCart(t *testing.T) {
	router, _ := newTestRouter(t)
	token := loginAs(t, router, "customer1")

	w := doRequest(router, http.MethodPost, "/api/v1/orders/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductNonOwner(t *testing.T) {
	router, s := newTestRouter(t)
	s.SaveProduct(models.Product{ID: "prod-1", SellerID: "seller1", Name: "Lamp", Price: 20, StockQuantity: 5})

	token := loginAs(t, router, "seller2")
	name := "Stolen Lamp"
	w := doRequest(router, http.MethodPut, "/api/v1/seller/products/prod-1", token, gin.H{"name": name})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderVisibilityOverHTTP(t *testing.T) {
	router, s := newTestRouter(t)
	s.SaveProduct(models.Product{ID: "prod-1", SellerID: "seller1", Name: "Lamp", Price: 20, StockQuantity: 5})

	customerToken := loginAs(t, router, "customer1")
	w := doRequest(router, http.MethodPost, "/api/v1/cart/items", customerToken, gin.H{"product_id": "prod-1", "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, http.MethodPost, "/api/v1/orders/checkout", customerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var result service.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	otherToken := loginAs(t, router, "customer2")
	w = doRequest(router, http.MethodGet, "/api/v1/orders/"+result.Order.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "another customer's order must look absent")

	adminToken := loginAs(t, router, "admin1")
	w = doRequest(router, http.MethodGet, "/api/v1/orders/"+result.Order.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminConfigUpdate(t *testing.T) {
	router, _ := newTestRouter(t)
	adminToken := loginAs(t, router, "admin1")

	w := doRequest(router, http.MethodPut, "/api/v1/admin/config", adminToken, gin.H{"discount_percentage": 0.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPut, "/api/v1/admin/config", adminToken, gin.H{"discount_percentage": 101.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPut, "/api/v1/admin/config", adminToken, gin.H{
		"discount_n_value":    5,
		"discount_percentage": 15.0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var config models.StoreConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &config))
	assert.Equal(t, 5, config.DiscountNValue)
	assert.Equal(t, 15.0, config.DiscountPercentage)

	// The new policy is publicly visible.
	w = doRequest(router, http.MethodGet, "/api/v1/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &config))
	assert.Equal(t, 5, config.DiscountNValue)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
