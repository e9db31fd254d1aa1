package models

import "time"

// Role identifies what a user account is allowed to do.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// User represents a marketplace account. The password hash is never
// serialized in responses.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"-"`
}

// Product represents a product listed by a seller
type Product struct {
	ID            string    `json:"id"`
	SellerID      string    `json:"seller_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

// CartItem is a single row in a user's cart. At most one row exists per
// (user, product) pair; re-adding merges quantities.
type CartItem struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions is the fixed table of allowed lifecycle moves.
// completed and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from the given one.
func AllowedTransitions(from OrderStatus) []OrderStatus {
	return orderTransitions[from]
}

// Order represents a committed checkout. Amounts are frozen at checkout
// time; only Status and UpdatedAt change afterwards.
type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Subtotal       float64     `json:"subtotal"`
	DiscountAmount float64     `json:"discount_amount"`
	TotalAmount    float64     `json:"total_amount"`
	Status         OrderStatus `json:"status"`
	DiscountCodeID string      `json:"discount_code_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// OrderItem snapshots one purchased line. UnitPrice is the product price
// at checkout time, not the live price.
type OrderItem struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// DiscountCode is a single-use, time-limited percentage-off token. A code
// with a non-empty CustomerID is redeemable only by that customer.
type DiscountCode struct {
	ID                  string    `json:"id"`
	Code                string    `json:"code"`
	DiscountPercentage  float64   `json:"discount_percentage"`
	CustomerID          string    `json:"customer_id,omitempty"`
	GeneratedBySellerID string    `json:"generated_by_seller_id"`
	IsUsed              bool      `json:"is_used"`
	UsedOnOrderID       string    `json:"used_on_order_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	ExpiresAt           time.Time `json:"expires_at"`
}

// StoreConfig holds the mutable discount policy: every DiscountNValue-th
// completed order earns a customer a DiscountPercentage-off code.
type StoreConfig struct {
	DiscountNValue     int     `json:"discount_n_value"`
	DiscountPercentage float64 `json:"discount_percentage"`
}
