package service

import (
	"context"
	"fmt"
	"time"

	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"

	"go.uber.org/zap"
)

// defaultCodeTTL is how long a discount code lives when no explicit
// expiry is supplied.
const defaultCodeTTL = 30 * 24 * time.Hour

// DiscountService handles discount code business logic
type DiscountService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewDiscountService creates a new discount service
func NewDiscountService(store *store.Store) *DiscountService {
	return &DiscountService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// Validate checks whether a code is redeemable by the given customer. It
// returns the code record on success and an ErrInvalidRequest-wrapped
// reason on the first failing check. Never mutates state.
func (s *DiscountService) Validate(ctx context.Context, code, customerID string) (*models.DiscountCode, error) {
	_, span := util.StartSpan(ctx, "DiscountService.Validate")
	defer span.End()

	dc, ok := s.store.GetDiscountCodeByCode(code)
	if !ok {
		return nil, fmt.Errorf("%w: invalid discount code", ErrInvalidRequest)
	}
	if dc.IsUsed {
		return nil, fmt.Errorf("%w: discount code has already been used", ErrInvalidRequest)
	}
	if time.Now().After(dc.ExpiresAt) {
		return nil, fmt.Errorf("%w: discount code has expired", ErrInvalidRequest)
	}
	if dc.CustomerID != "" && dc.CustomerID != customerID {
		return nil, fmt.Errorf("%w: discount code is not valid for this account", ErrInvalidRequest)
	}
	return &dc, nil
}

// DiscountAmount computes the percentage-off amount for a subtotal.
func DiscountAmount(percentage, subtotal float64) float64 {
	return subtotal * percentage / 100
}

// Generate issues a new discount code attributed to a seller. An empty
// customerID leaves the code unbound; a nil expiresAt defaults to 30 days.
func (s *DiscountService) Generate(ctx context.Context, sellerID string, percentage float64, customerID string, expiresAt *time.Time) (*models.DiscountCode, error) {
	_, span := util.StartSpan(ctx, "DiscountService.Generate")
	defer span.End()

	if percentage < 1 || percentage > 100 {
		return nil, fmt.Errorf("%w: discount percentage must be between 1 and 100", ErrInvalidRequest)
	}

	now := time.Now()
	expiry := now.Add(defaultCodeTTL)
	if expiresAt != nil {
		expiry = *expiresAt
	}

	dc := models.DiscountCode{
		ID:                  s.store.NextID("disc"),
		Code:                fmt.Sprintf("SAVE%v-%d", percentage, now.UnixMilli()),
		DiscountPercentage:  percentage,
		CustomerID:          customerID,
		GeneratedBySellerID: sellerID,
		IsUsed:              false,
		CreatedAt:           now,
		ExpiresAt:           expiry,
	}
	s.store.SaveDiscountCode(dc)

	util.DiscountCodesIssuedTotal.Inc()
	s.logger.Info("Discount code generated",
		zap.String("code", dc.Code),
		zap.String("seller_id", sellerID),
		zap.String("customer_id", customerID),
		zap.Float64("percentage", percentage))

	return &dc, nil
}

// CodesForCustomer returns the codes bound to a customer.
func (s *DiscountService) CodesForCustomer(customerID string) []models.DiscountCode {
	return s.store.GetDiscountCodesByCustomer(customerID)
}

// CodesForSeller returns the codes a seller generated.
func (s *DiscountService) CodesForSeller(sellerID string) []models.DiscountCode {
	return s.store.GetDiscountCodesBySeller(sellerID)
}

// AllCodes returns every discount code ever issued.
func (s *DiscountService) AllCodes() []models.DiscountCode {
	return s.store.GetAllDiscountCodes()
}
