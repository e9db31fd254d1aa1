package store

import "marketplace-service/internal/models"

// GetOrder retrieves an order by ID.
func (s *Store) GetOrder(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

// GetAllOrders retrieves every order.
func (s *Store) GetAllOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	return orders
}

// GetOrdersByUser retrieves the orders placed by a user.
func (s *Store) GetOrdersByUser(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders
}

// SaveOrder inserts or replaces an order.
func (s *Store) SaveOrder(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

// GetOrderItems retrieves the items of an order.
func (s *Store) GetOrderItems(orderID string) []models.OrderItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.orderItems[orderID]
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	return out
}

// SaveOrderItems replaces the items of an order.
func (s *Store) SaveOrderItems(orderID string, items []models.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderItems[orderID] = items
}
