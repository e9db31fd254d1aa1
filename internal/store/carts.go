package store

import "marketplace-service/internal/models"

// GetCart retrieves the cart rows for a user. The empty cart is a nil slice.
func (s *Store) GetCart(userID string) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.carts[userID]
	out := make([]models.CartItem, len(rows))
	copy(out, rows)
	return out
}

// SaveCart replaces the cart rows for a user.
func (s *Store) SaveCart(userID string, rows []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = rows
}

// ClearCart wipes the cart for a user.
func (s *Store) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
