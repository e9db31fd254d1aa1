package service

import (
	"context"
	"time"

	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"
)

// AnalyticsService aggregates read-only metrics over orders. It never
// mutates state.
type AnalyticsService struct {
	store *store.Store
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(store *store.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// DateRange filters orders by creation time. Both bounds are optional
// and inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// StoreAnalytics is the store-wide aggregate. Revenue figures only count
// completed/delivered orders; TotalOrders counts every order in range;
// the discount-code count is across all time.
type StoreAnalytics struct {
	TotalRevenue                float64 `json:"total_revenue"`
	TotalItemsSold              int     `json:"total_items_sold"`
	TotalOrders                 int     `json:"total_orders"`
	TotalDiscountCodesGenerated int     `json:"total_discount_codes_generated"`
	TotalDiscountAmount         float64 `json:"total_discount_amount"`
	AverageOrderValue           float64 `json:"average_order_value"`
}

// ProductSales is a per-product slice of a seller's revenue.
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// SellerAnalytics aggregates only the seller's own items within orders
// that contain at least one of their products.
type SellerAnalytics struct {
	SellerID     string         `json:"seller_id"`
	TotalRevenue float64        `json:"total_revenue"`
	ItemsSold    int            `json:"items_sold"`
	OrdersCount  int            `json:"orders_count"`
	ProductsSold []ProductSales `json:"products_sold"`
}

func inRange(t time.Time, r *DateRange) bool {
	if r == nil {
		return true
	}
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

func revenueCounts(status models.OrderStatus) bool {
	return status == models.OrderStatusCompleted || status == models.OrderStatusDelivered
}

// StoreAnalytics computes the store-wide aggregate for an optional date range.
func (s *AnalyticsService) StoreAnalytics(ctx context.Context, dateRange *DateRange) StoreAnalytics {
	_, span := util.StartSpan(ctx, "AnalyticsService.StoreAnalytics")
	defer span.End()

	var result StoreAnalytics
	completedCount := 0

	for _, order := range s.store.GetAllOrders() {
		if !inRange(order.CreatedAt, dateRange) {
			continue
		}
		result.TotalOrders++

		if !revenueCounts(order.Status) {
			continue
		}
		completedCount++
		result.TotalRevenue += order.TotalAmount
		result.TotalDiscountAmount += order.DiscountAmount
		for _, item := range s.store.GetOrderItems(order.ID) {
			result.TotalItemsSold += item.Quantity
		}
	}

	result.TotalDiscountCodesGenerated = len(s.store.GetAllDiscountCodes())
	if completedCount > 0 {
		result.AverageOrderValue = result.TotalRevenue / float64(completedCount)
	}
	return result
}

// SellerAnalytics computes one seller's aggregate for an optional date range.
func (s *AnalyticsService) SellerAnalytics(ctx context.Context, sellerID string, dateRange *DateRange) SellerAnalytics {
	_, span := util.StartSpan(ctx, "AnalyticsService.SellerAnalytics")
	defer span.End()

	result := SellerAnalytics{SellerID: sellerID, ProductsSold: []ProductSales{}}
	sales := make(map[string]*ProductSales)

	for _, order := range s.store.GetAllOrders() {
		if !inRange(order.CreatedAt, dateRange) {
			continue
		}

		items := s.store.GetOrderItems(order.ID)
		involved := false
		for _, item := range items {
			if product, ok := s.store.GetProduct(item.ProductID); ok && product.SellerID == sellerID {
				involved = true
				break
			}
		}
		if !involved {
			continue
		}
		result.OrdersCount++

		if !revenueCounts(order.Status) {
			continue
		}
		for _, item := range items {
			product, ok := s.store.GetProduct(item.ProductID)
			if !ok || product.SellerID != sellerID {
				continue
			}
			entry, seen := sales[item.ProductID]
			if !seen {
				entry = &ProductSales{ProductID: item.ProductID, Name: product.Name}
				sales[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.TotalPrice
			result.TotalRevenue += item.TotalPrice
			result.ItemsSold += item.Quantity
		}
	}

	for _, entry := range sales {
		result.ProductsSold = append(result.ProductsSold, *entry)
	}
	return result
}

// AllSellersAnalytics computes the per-seller breakdown for every seller
// account, for the admin view.
func (s *AnalyticsService) AllSellersAnalytics(ctx context.Context, dateRange *DateRange) []SellerAnalytics {
	var result []SellerAnalytics
	for _, user := range s.store.GetAllUsers() {
		if user.Role == models.RoleSeller {
			result = append(result, s.SellerAnalytics(ctx, user.ID, dateRange))
		}
	}
	return result
}
