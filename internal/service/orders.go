package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"

	"go.uber.org/zap"
)

// OrderService handles checkout and the order lifecycle
type OrderService struct {
	store     *store.Store
	cart      *CartService
	discounts *DiscountService
	logger    *zap.Logger

	// serializes checkout and status transitions: stock decrement,
	// discount redemption and the completed-order count are multi-step
	// read-then-write sequences with no transaction underneath
	mu sync.Mutex
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, cart *CartService, discounts *DiscountService) *OrderService {
	return &OrderService{
		store:     store,
		cart:      cart,
		discounts: discounts,
		logger:    util.GetLogger(),
	}
}

// OrderWithItems pairs an order with its line items.
type OrderWithItems struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

// AppliedDiscount reports the discount redeemed during a checkout.
type AppliedDiscount struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
}

// CheckoutResult is what a successful checkout returns.
type CheckoutResult struct {
	Order           models.Order       `json:"order"`
	Items           []models.OrderItem `json:"items"`
	AppliedDiscount *AppliedDiscount   `json:"applied_discount,omitempty"`
}

// Checkout converts the caller's cart into a pending order: re-checks
// stock, optionally redeems a discount code, snapshots unit prices,
// decrements stock and clears the cart.
func (s *OrderService) Checkout(ctx context.Context, userID, discountCode string) (*CheckoutResult, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Checkout")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart.GetCart(ctx, userID)
	if len(cart.Items) == 0 {
		util.CheckoutFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidRequest)
	}

	// Stock may have moved since the cart was last viewed.
	for _, line := range cart.Items {
		product, ok := s.store.GetProduct(line.ProductID)
		if !ok {
			util.CheckoutFailedTotal.WithLabelValues("product_missing").Inc()
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, line.ProductID)
		}
		if product.StockQuantity < line.Quantity {
			util.CheckoutFailedTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, fmt.Errorf("%w: insufficient stock for %s, available: %d, requested: %d",
				ErrInvalidRequest, product.Name, product.StockQuantity, line.Quantity)
		}
	}

	subtotal := cart.Subtotal
	var discountAmount float64
	var applied *models.DiscountCode

	if discountCode != "" {
		dc, err := s.discounts.Validate(ctx, discountCode, userID)
		if err != nil {
			util.CheckoutFailedTotal.WithLabelValues("bad_discount_code").Inc()
			return nil, err
		}
		// Checkout is stricter than validation: a code with no bound
		// customer passes Validate but cannot be redeemed.
		if dc.CustomerID != userID {
			util.CheckoutFailedTotal.WithLabelValues("bad_discount_code").Inc()
			return nil, fmt.Errorf("%w: discount code is not assigned to you", ErrInvalidRequest)
		}
		discountAmount = DiscountAmount(dc.DiscountPercentage, subtotal)
		applied = dc
	}

	now := time.Now()
	order := models.Order{
		ID:             s.store.NextID("order"),
		UserID:         userID,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TotalAmount:    subtotal - discountAmount,
		Status:         models.OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if applied != nil {
		order.DiscountCodeID = applied.ID
	}
	s.store.SaveOrder(order)

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, _ := s.store.GetProduct(line.ProductID)
		product.StockQuantity -= line.Quantity
		s.store.SaveProduct(product)

		items = append(items, models.OrderItem{
			ID:         s.store.NextID("item"),
			OrderID:    order.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  product.Price,
			TotalPrice: product.Price * float64(line.Quantity),
		})
	}
	s.store.SaveOrderItems(order.ID, items)

	if applied != nil {
		applied.IsUsed = true
		applied.UsedOnOrderID = order.ID
		s.store.SaveDiscountCode(*applied)
		util.DiscountCodesRedeemedTotal.Inc()
	}

	s.cart.ClearCart(userID)

	util.OrdersCheckedOutTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("line_items", len(items)))

	result := &CheckoutResult{Order: order, Items: items}
	if applied != nil {
		result.AppliedDiscount = &AppliedDiscount{
			Code:           applied.Code,
			DiscountAmount: discountAmount,
		}
	}
	return result, nil
}

// OrdersForUser returns the orders placed by a user.
func (s *OrderService) OrdersForUser(userID string) []models.Order {
	return s.store.GetOrdersByUser(userID)
}

// AllOrders returns every order in the store.
func (s *OrderService) AllOrders() []models.Order {
	return s.store.GetAllOrders()
}

// GetOrder returns an order with its items if the requester may see it:
// the owner, an admin, or a seller with at least one item in it. Anyone
// else gets NotFound rather than Forbidden to avoid leaking existence.
func (s *OrderService) GetOrder(orderID, requesterID string, role models.Role) (*OrderWithItems, error) {
	order, ok := s.store.GetOrder(orderID)
	if !ok {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}
	items := s.store.GetOrderItems(orderID)

	allowed := role == models.RoleAdmin || order.UserID == requesterID ||
		(role == models.RoleSeller && s.hasSellerItem(items, requesterID))
	if !allowed {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	return &OrderWithItems{Order: order, Items: items}, nil
}

// OrdersForSeller returns every order containing at least one of the
// seller's products, with items.
func (s *OrderService) OrdersForSeller(sellerID string) []OrderWithItems {
	var result []OrderWithItems
	for _, order := range s.store.GetAllOrders() {
		items := s.store.GetOrderItems(order.ID)
		if s.hasSellerItem(items, sellerID) {
			result = append(result, OrderWithItems{Order: order, Items: items})
		}
	}
	return result
}

func (s *OrderService) hasSellerItem(items []models.OrderItem, sellerID string) bool {
	for _, item := range items {
		if product, ok := s.store.GetProduct(item.ProductID); ok && product.SellerID == sellerID {
			return true
		}
	}
	return false
}

// UpdateStatus applies a lifecycle transition on behalf of a seller who
// owns at least one item in the order. Landing in completed may earn the
// customer an auto-generated discount code, which is returned alongside
// the updated order.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, sellerID string, next models.OrderStatus) (*models.Order, *models.DiscountCode, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.store.GetOrder(orderID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	items := s.store.GetOrderItems(orderID)
	if !s.hasSellerItem(items, sellerID) {
		return nil, nil, fmt.Errorf("%w: order contains none of your products", ErrForbidden)
	}

	if !models.ValidStatus(next) || !models.CanTransition(order.Status, next) {
		return nil, nil, fmt.Errorf("%w: cannot transition from %s to %s, valid: %s",
			ErrInvalidRequest, order.Status, next, joinStatuses(models.AllowedTransitions(order.Status)))
	}

	order.Status = next
	order.UpdatedAt = time.Now()
	s.store.SaveOrder(order)

	util.OrderTransitionsTotal.WithLabelValues(string(next)).Inc()
	s.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("seller_id", sellerID),
		zap.String("status", string(next)))

	var generated *models.DiscountCode
	if next == models.OrderStatusCompleted {
		generated = s.maybeRewardCustomer(ctx, order.UserID, sellerID)
	}

	return &order, generated, nil
}

// maybeRewardCustomer issues a discount code when the customer's
// completed-order count (including the order just completed) hits a
// multiple of the configured N.
func (s *OrderService) maybeRewardCustomer(ctx context.Context, customerID, sellerID string) *models.DiscountCode {
	completed := 0
	for _, o := range s.store.GetOrdersByUser(customerID) {
		if o.Status == models.OrderStatusCompleted {
			completed++
		}
	}

	config := s.store.GetStoreConfig()
	if completed == 0 || completed%config.DiscountNValue != 0 {
		return nil
	}

	dc, err := s.discounts.Generate(ctx, sellerID, config.DiscountPercentage, customerID, nil)
	if err != nil {
		s.logger.Error("Failed to generate reward discount code",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil
	}
	return dc
}

func joinStatuses(statuses []models.OrderStatus) string {
	if len(statuses) == 0 {
		return "none"
	}
	parts := make([]string, len(statuses))
	for i, st := range statuses {
		parts[i] = string(st)
	}
	return strings.Join(parts, ", ")
}
