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

// ProductService handles the product catalog
type ProductService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store *store.Store) *ProductService {
	return &ProductService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CreateProductParams are the seller-supplied fields of a new product.
type CreateProductParams struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
}

// UpdateProductParams are the optional fields of a product update.
type UpdateProductParams struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
}

// AllProducts returns the whole catalog.
func (s *ProductService) AllProducts() []models.Product {
	return s.store.GetAllProducts()
}

// ProductByID returns a single product.
func (s *ProductService) ProductByID(id string) (*models.Product, error) {
	product, ok := s.store.GetProduct(id)
	if !ok {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return &product, nil
}

// ProductsBySeller returns a seller's own products.
func (s *ProductService) ProductsBySeller(sellerID string) []models.Product {
	return s.store.GetProductsBySeller(sellerID)
}

// Create lists a new product for a seller.
func (s *ProductService) Create(ctx context.Context, sellerID string, params CreateProductParams) (*models.Product, error) {
	_, span := util.StartSpan(ctx, "ProductService.Create")
	defer span.End()

	if params.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidRequest)
	}
	if params.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrInvalidRequest)
	}

	product := models.Product{
		ID:            s.store.NextID("prod"),
		SellerID:      sellerID,
		Name:          params.Name,
		Description:   params.Description,
		Price:         params.Price,
		StockQuantity: params.StockQuantity,
		CreatedAt:     time.Now(),
	}
	s.store.SaveProduct(product)

	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("seller_id", sellerID))
	return &product, nil
}

// Update changes a seller's own product. A product owned by another
// seller is reported as NotFound, same as a missing one.
func (s *ProductService) Update(ctx context.Context, productID, sellerID string, params UpdateProductParams) (*models.Product, error) {
	_, span := util.StartSpan(ctx, "ProductService.Update")
	defer span.End()

	product, ok := s.store.GetProduct(productID)
	if !ok || product.SellerID != sellerID {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.Description != nil {
		product.Description = *params.Description
	}
	if params.Price != nil {
		if *params.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrInvalidRequest)
		}
		product.Price = *params.Price
	}
	if params.StockQuantity != nil {
		if *params.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrInvalidRequest)
		}
		product.StockQuantity = *params.StockQuantity
	}

	s.store.SaveProduct(product)
	return &product, nil
}

// Delete removes a seller's own product, with the same ownership masking
// as Update.
func (s *ProductService) Delete(ctx context.Context, productID, sellerID string) error {
	_, span := util.StartSpan(ctx, "ProductService.Delete")
	defer span.End()

	product, ok := s.store.GetProduct(productID)
	if !ok || product.SellerID != sellerID {
		return fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	s.store.DeleteProduct(productID)
	s.logger.Info("Product deleted",
		zap.String("product_id", productID),
		zap.String("seller_id", sellerID))
	return nil
}
