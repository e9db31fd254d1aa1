package service

import (
	"fmt"

	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"

	"go.uber.org/zap"
)

// ConfigService exposes the mutable discount policy
type ConfigService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewConfigService creates a new config service
func NewConfigService(store *store.Store) *ConfigService {
	return &ConfigService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// UpdateConfigParams is a partial update of the discount policy.
type UpdateConfigParams struct {
	DiscountNValue     *int     `json:"discount_n_value,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
}

// Get returns the current policy.
func (s *ConfigService) Get() models.StoreConfig {
	return s.store.GetStoreConfig()
}

// Update applies an admin's partial policy change after range checks.
func (s *ConfigService) Update(params UpdateConfigParams) (models.StoreConfig, error) {
	config := s.store.GetStoreConfig()

	if params.DiscountNValue != nil {
		if *params.DiscountNValue < 1 {
			return config, fmt.Errorf("%w: discount N value must be at least 1", ErrInvalidRequest)
		}
		config.DiscountNValue = *params.DiscountNValue
	}
	if params.DiscountPercentage != nil {
		if *params.DiscountPercentage < 1 || *params.DiscountPercentage > 100 {
			return config, fmt.Errorf("%w: discount percentage must be between 1 and 100", ErrInvalidRequest)
		}
		config.DiscountPercentage = *params.DiscountPercentage
	}

	s.store.UpdateStoreConfig(config)
	s.logger.Info("Store config updated",
		zap.Int("discount_n_value", config.DiscountNValue),
		zap.Float64("discount_percentage", config.DiscountPercentage))
	return config, nil
}
