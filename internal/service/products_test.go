package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	s := newTestStore()
	products := NewProductService(s)

	product, err := products.Create(context.Background(), "seller1", CreateProductParams{
		Name:          "Widget",
		Description:   "A widget",
		Price:         9.99,
		StockQuantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "seller1", product.SellerID)
	assert.False(t, product.CreatedAt.IsZero())

	got, err := products.ProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
}

func TestCreateProductValidation(t *testing.T) {
	s := newTestStore()
	products := NewProductService(s)
	ctx := context.Background()

	_, err := products.Create(ctx, "seller1", CreateProductParams{Name: "x", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = products.Create(ctx, "seller1", CreateProductParams{Name: "x", Price: 1, StockQuantity: -1})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUpdateProduct(t *testing.T) {
	s := newTestStore()
	products := NewProductService(s)
	seedProduct(s, "p1", "seller1", 100, 5)
	ctx := context.Background()

	newPrice := 150.0
	newStock := 7
	updated, err := products.Update(ctx, "p1", "seller1", UpdateProductParams{Price: &newPrice, StockQuantity: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Price)
	assert.Equal(t, 7, updated.StockQuantity)
	assert.Equal(t, "Product p1", updated.Name, "untouched fields keep their values")

	badPrice := -1.0
	_, err = products.Update(ctx, "p1", "seller1", UpdateProductParams{Price: &badPrice})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUpdateProductOwnershipMasking(t *testing.T) {
	s := newTestStore()
	products := NewProductService(s)
	seedProduct(s, "p1", "seller1", 100, 5)
	ctx := context.Background()

	name := "hijack"
	_, err := products.Update(ctx, "p1", "seller2", UpdateProductParams{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound, "foreign products look like missing ones")

	_, err = products.Update(ctx, "missing", "seller1", UpdateProductParams{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	s := newTestStore()
	products := NewProductService(s)
	seedProduct(s, "p1", "seller1", 100, 5)
	ctx := context.Background()

	err := products.Delete(ctx, "p1", "seller2")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, products.Delete(ctx, "p1", "seller1"))
	_, err = products.ProductByID("p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductListings(t *testing.T) {
	s := newTestStore()
	products := NewProductService(s)
	seedProduct(s, "p1", "seller1", 100, 5)
	seedProduct(s, "p2", "seller2", 50, 5)

	assert.Len(t, products.AllProducts(), 2)
	assert.Len(t, products.ProductsBySeller("seller1"), 1)
}
