package service

import (
	"context"
	"fmt"
	"sync"

	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"

	"go.uber.org/zap"
)

// CartService handles cart business logic
type CartService struct {
	store  *store.Store
	logger *zap.Logger

	// serializes the read-merge-write of AddToCart
	mu sync.Mutex
}

// NewCartService creates a new cart service
func NewCartService(store *store.Store) *CartService {
	return &CartService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CartLine is a cart row joined with its live product record.
type CartLine struct {
	models.CartItem
	Product    models.Product `json:"product"`
	TotalPrice float64        `json:"total_price"`
}

// CartView is the priced view of a user's cart.
type CartView struct {
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
	Subtotal   float64    `json:"subtotal"`
}

// GetCart joins the stored cart rows with current product data. Rows whose
// product no longer exists are dropped from the view; that is a display
// choice, not an error.
func (s *CartService) GetCart(ctx context.Context, userID string) *CartView {
	_, span := util.StartSpan(ctx, "CartService.GetCart")
	defer span.End()

	rows := s.store.GetCart(userID)
	view := &CartView{Items: make([]CartLine, 0, len(rows))}

	for _, row := range rows {
		product, ok := s.store.GetProduct(row.ProductID)
		if !ok {
			continue
		}
		total := product.Price * float64(row.Quantity)
		view.Items = append(view.Items, CartLine{
			CartItem:   row,
			Product:    product,
			TotalPrice: total,
		})
		view.Subtotal += total
		view.TotalItems += row.Quantity
	}

	return view
}

// AddToCart merges quantity into an existing row for the product or
// appends a new one, enforcing stock sufficiency against the merged total.
func (s *CartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddToCart")
	defer span.End()

	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.store.GetProduct(productID)
	if !ok {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	if product.StockQuantity < quantity {
		return nil, fmt.Errorf("%w: insufficient stock, available: %d", ErrInvalidRequest, product.StockQuantity)
	}

	rows := s.store.GetCart(userID)
	merged := false
	for i := range rows {
		if rows[i].ProductID != productID {
			continue
		}
		newQuantity := rows[i].Quantity + quantity
		if product.StockQuantity < newQuantity {
			return nil, fmt.Errorf("%w: insufficient stock, available: %d, in cart: %d",
				ErrInvalidRequest, product.StockQuantity, rows[i].Quantity)
		}
		rows[i].Quantity = newQuantity
		merged = true
		break
	}

	if !merged {
		rows = append(rows, models.CartItem{
			ID:        s.store.NextID("cart"),
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	s.store.SaveCart(userID, rows)
	s.logger.Info("Cart updated",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Bool("merged", merged))

	return s.GetCart(ctx, userID), nil
}

// RemoveFromCart deletes the row for a product from the user's cart.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID string) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.RemoveFromCart")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.store.GetCart(userID)
	kept := rows[:0]
	for _, row := range rows {
		if row.ProductID != productID {
			kept = append(kept, row)
		}
	}

	if len(kept) == len(rows) {
		return nil, fmt.Errorf("%w: product %s not in cart", ErrNotFound, productID)
	}

	s.store.SaveCart(userID, kept)
	return s.GetCart(ctx, userID), nil
}

// ClearCart wipes the user's cart. Used internally after a successful checkout.
func (s *CartService) ClearCart(userID string) {
	s.store.ClearCart(userID)
}
