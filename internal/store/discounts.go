package store

import "marketplace-service/internal/models"

// GetDiscountCode retrieves a discount code by ID.
func (s *Store) GetDiscountCode(id string) (models.DiscountCode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dc, ok := s.discountCodes[id]
	return dc, ok
}

// GetDiscountCodeByCode retrieves a discount code by its code string.
// Linear scan; fine at this scale.
func (s *Store) GetDiscountCodeByCode(code string) (models.DiscountCode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, dc := range s.discountCodes {
		if dc.Code == code {
			return dc, true
		}
	}
	return models.DiscountCode{}, false
}

// GetAllDiscountCodes retrieves every discount code.
func (s *Store) GetAllDiscountCodes() []models.DiscountCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]models.DiscountCode, 0, len(s.discountCodes))
	for _, dc := range s.discountCodes {
		codes = append(codes, dc)
	}
	return codes
}

// GetDiscountCodesByCustomer retrieves the codes bound to a customer.
func (s *Store) GetDiscountCodesByCustomer(customerID string) []models.DiscountCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var codes []models.DiscountCode
	for _, dc := range s.discountCodes {
		if dc.CustomerID == customerID {
			codes = append(codes, dc)
		}
	}
	return codes
}

// GetDiscountCodesBySeller retrieves the codes a seller generated.
func (s *Store) GetDiscountCodesBySeller(sellerID string) []models.DiscountCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var codes []models.DiscountCode
	for _, dc := range s.discountCodes {
		if dc.GeneratedBySellerID == sellerID {
			codes = append(codes, dc)
		}
	}
	return codes
}

// SaveDiscountCode inserts or replaces a discount code.
func (s *Store) SaveDiscountCode(dc models.DiscountCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discountCodes[dc.ID] = dc
}

// GetStoreConfig returns the current discount policy.
func (s *Store) GetStoreConfig() models.StoreConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// UpdateStoreConfig replaces the discount policy.
func (s *Store) UpdateStoreConfig(config models.StoreConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}
