package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountAmount(t *testing.T) {
	assert.Equal(t, 10.0, DiscountAmount(10, 100))
	assert.Equal(t, 25.0, DiscountAmount(50, 50))
	assert.Equal(t, 0.0, DiscountAmount(10, 0))
}

func TestGenerateDefaults(t *testing.T) {
	s := newTestStore()
	discounts := NewDiscountService(s)

	dc, err := discounts.Generate(context.Background(), "seller1", 10, "customer1", nil)
	require.NoError(t, err)

	assert.Contains(t, dc.Code, "SAVE10-")
	assert.Equal(t, "customer1", dc.CustomerID)
	assert.Equal(t, "seller1", dc.GeneratedBySellerID)
	assert.False(t, dc.IsUsed)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), dc.ExpiresAt, time.Minute)
}

func TestGenerateExplicitExpiry(t *testing.T) {
	s := newTestStore()
	discounts := NewDiscountService(s)

	expiry := time.Now().Add(48 * time.Hour)
	dc, err := discounts.Generate(context.Background(), "seller1", 15, "", &expiry)
	require.NoError(t, err)
	assert.Equal(t, expiry, dc.ExpiresAt)
	assert.Empty(t, dc.CustomerID)
}

func TestGeneratePercentageRange(t *testing.T) {
	s := newTestStore()
	discounts := NewDiscountService(s)
	ctx := context.Background()

	_, err := discounts.Generate(ctx, "seller1", 0, "customer1", nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = discounts.Generate(ctx, "seller1", 101, "customer1", nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestValidate(t *testing.T) {
	s := newTestStore()
	discounts := NewDiscountService(s)
	ctx := context.Background()

	dc, err := discounts.Generate(ctx, "seller1", 10, "customer1", nil)
	require.NoError(t, err)

	got, err := discounts.Validate(ctx, dc.Code, "customer1")
	require.NoError(t, err)
	assert.Equal(t, dc.ID, got.ID)
}

func TestValidateFailures(t *testing.T) {
	s := newTestStore()
	discounts := NewDiscountService(s)
	ctx := context.Background()

	_, err := discounts.Validate(ctx, "UNKNOWN", "customer1")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	used, err := discounts.Generate(ctx, "seller1", 10, "customer1", nil)
	require.NoError(t, err)
	used.IsUsed = true
	s.SaveDiscountCode(*used)
	_, err = discounts.Validate(ctx, used.Code, "customer1")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	past := time.Now().Add(-time.Hour)
	expired, err := discounts.Generate(ctx, "seller1", 20, "customer1", &past)
	require.NoError(t, err)
	_, err = discounts.Validate(ctx, expired.Code, "customer1")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	bound, err := discounts.Generate(ctx, "seller1", 30, "customer1", nil)
	require.NoError(t, err)
	_, err = discounts.Validate(ctx, bound.Code, "customer2")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestValidateUnboundCode(t *testing.T) {
	s := newTestStore()
	discounts := NewDiscountService(s)
	ctx := context.Background()

	dc, err := discounts.Generate(ctx, "seller1", 10, "", nil)
	require.NoError(t, err)

	// a code with no bound customer validates for anyone
	_, err = discounts.Validate(ctx, dc.Code, "customer2")
	assert.NoError(t, err)
}

func TestCodeListings(t *testing.T) {
	s := newTestStore()
	discounts := NewDiscountService(s)
	ctx := context.Background()

	_, err := discounts.Generate(ctx, "seller1", 10, "customer1", nil)
	require.NoError(t, err)
	_, err = discounts.Generate(ctx, "seller1", 10, "customer2", nil)
	require.NoError(t, err)
	_, err = discounts.Generate(ctx, "seller2", 10, "customer1", nil)
	require.NoError(t, err)

	assert.Len(t, discounts.CodesForCustomer("customer1"), 2)
	assert.Len(t, discounts.CodesForSeller("seller1"), 2)
	assert.Len(t, discounts.AllCodes(), 3)
}
