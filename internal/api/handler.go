package api

import (
	"errors"
	"net/http"
	"time"

	"marketplace-service/internal/auth"
	"marketplace-service/internal/models"
	"marketplace-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	users     *service.UserService
	products  *service.ProductService
	cart      *service.CartService
	orders    *service.OrderService
	discounts *service.DiscountService
	analytics *service.AnalyticsService
	config    *service.ConfigService

	jwtSecret []byte
	tokenTTL  time.Duration
	limiter   *rateLimiter
}

// HandlerDeps bundles everything the handler needs.
type HandlerDeps struct {
	Users     *service.UserService
	Products  *service.ProductService
	Cart      *service.CartService
	Orders    *service.OrderService
	Discounts *service.DiscountService
	Analytics *service.AnalyticsService
	Config    *service.ConfigService

	JWTSecret      []byte
	TokenTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewHandler creates a new HTTP handler
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		users:     deps.Users,
		products:  deps.Products,
		cart:      deps.Cart,
		orders:    deps.Orders,
		discounts: deps.Discounts,
		analytics: deps.Analytics,
		config:    deps.Config,
		jwtSecret: deps.JWTSecret,
		tokenTTL:  deps.TokenTTL,
		limiter:   newRateLimiter(deps.RateLimitRPS, deps.RateLimitBurst),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(h.limiter.middleware())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", h.login)
	v1.GET("/products", h.listProducts)
	v1.GET("/products/:id", h.getProduct)
	v1.GET("/config", h.getConfig)

	authed := v1.Group("")
	authed.Use(h.authRequired())
	{
		authed.GET("/cart", h.getCart)
		authed.POST("/cart/items", h.addToCart)
		authed.DELETE("/cart/items/:productId", h.removeFromCart)

		authed.POST("/orders/checkout", h.checkout)
		authed.GET("/orders", h.myOrders)
		authed.GET("/orders/:id", h.getOrder)

		authed.GET("/discounts", h.myDiscountCodes)
		authed.POST("/discounts/validate", h.validateDiscount)

		authed.GET("/users/:id", h.getUser)
	}

	seller := v1.Group("/seller")
	seller.Use(h.authRequired(), requireRole(models.RoleSeller))
	{
		seller.GET("/products", h.sellerProducts)
		seller.POST("/products", h.createProduct)
		seller.PUT("/products/:id", h.updateProduct)
		seller.DELETE("/products/:id", h.deleteProduct)

		seller.GET("/orders", h.sellerOrders)
		seller.PUT("/orders/:id/status", h.updateOrderStatus)

		seller.GET("/discounts", h.sellerDiscountCodes)
		seller.POST("/discounts", h.generateDiscount)

		seller.GET("/analytics", h.sellerAnalytics)
	}

	admin := v1.Group("/admin")
	admin.Use(h.authRequired(), requireRole(models.RoleAdmin))
	{
		admin.GET("/orders", h.allOrders)
		admin.GET("/users", h.allUsers)
		admin.GET("/analytics", h.adminAnalytics)
		admin.PUT("/config", h.updateConfig)
	}
}

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

type loginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login validates credentials and issues a bearer token.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user, err := h.users.Authenticate(req.UserID, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID, user.Role, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// --- products ---

func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.products.AllProducts()})
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.products.ProductByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) sellerProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.products.ProductsBySeller(currentUserID(c))})
}

func (h *Handler) createProduct(c *gin.Context) {
	var params service.CreateProductParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), currentUserID(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var params service.UpdateProductParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), currentUserID(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// --- cart ---

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cart.GetCart(c.Request.Context(), currentUserID(c)))
}

func (h *Handler) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	view, err := h.cart.AddToCart(c.Request.Context(), currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) removeFromCart(c *gin.Context) {
	view, err := h.cart.RemoveFromCart(c.Request.Context(), currentUserID(c), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// --- orders ---

type checkoutRequest struct {
	DiscountCode string `json:"discount_code,omitempty"`
}

func (h *Handler) checkout(c *gin.Context) {
	// The body is optional: a checkout without a discount code may have
	// no body at all.
	var req checkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	result, err := h.orders.Checkout(c.Request.Context(), currentUserID(c), req.DiscountCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) myOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.orders.OrdersForUser(currentUserID(c))})
}

func (h *Handler) getOrder(c *gin.Context) {
	result, err := h.orders.GetOrder(c.Param("id"), currentUserID(c), currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) sellerOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.orders.OrdersForSeller(currentUserID(c))})
}

func (h *Handler) allOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.orders.AllOrders()})
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	order, generated, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), currentUserID(c), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"order": order}
	if generated != nil {
		resp["discount_generated"] = generated
	}
	c.JSON(http.StatusOK, resp)
}

// --- discounts ---

type validateDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *Handler) validateDiscount(c *gin.Context) {
	var req validateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	dc, err := h.discounts.Validate(c.Request.Context(), req.Code, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "reason": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "discount_code": dc})
}

func (h *Handler) myDiscountCodes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"discount_codes": h.discounts.CodesForCustomer(currentUserID(c))})
}

func (h *Handler) sellerDiscountCodes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"discount_codes": h.discounts.CodesForSeller(currentUserID(c))})
}

type generateDiscountRequest struct {
	DiscountPercentage float64    `json:"discount_percentage" binding:"required"`
	CustomerID         string     `json:"customer_id,omitempty"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
}

func (h *Handler) generateDiscount(c *gin.Context) {
	var req generateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	dc, err := h.discounts.Generate(c.Request.Context(), currentUserID(c), req.DiscountPercentage, req.CustomerID, req.ExpiresAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dc)
}

// --- users ---

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.UserByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) allUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.users.AllUsers()})
}

// --- config ---

func (h *Handler) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.config.Get())
}

func (h *Handler) updateConfig(c *gin.Context) {
	var params service.UpdateConfigParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	config, err := h.config.Update(params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// --- analytics ---

// parseDateRange reads the optional inclusive startDate/endDate query
// params (RFC 3339; a bare date is accepted too).
func parseDateRange(c *gin.Context) (*service.DateRange, error) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" && endStr == "" {
		return nil, nil
	}

	var dr service.DateRange
	if startStr != "" {
		t, err := parseTime(startStr)
		if err != nil {
			return nil, err
		}
		dr.Start = &t
	}
	if endStr != "" {
		t, err := parseTime(endStr)
		if err != nil {
			return nil, err
		}
		dr.End = &t
	}
	return &dr, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (h *Handler) sellerAnalytics(c *gin.Context) {
	dateRange, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.analytics.SellerAnalytics(c.Request.Context(), currentUserID(c), dateRange))
}

func (h *Handler) adminAnalytics(c *gin.Context) {
	dateRange, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range", "details": err.Error()})
		return
	}
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"store":          h.analytics.StoreAnalytics(ctx, dateRange),
		"sellers":        h.analytics.AllSellersAnalytics(ctx, dateRange),
		"discount_codes": h.discounts.AllCodes(),
	})
}
