package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigUpdate(t *testing.T) {
	s := newTestStore()
	config := NewConfigService(s)

	n := 5
	pct := 25.0
	updated, err := config.Update(UpdateConfigParams{DiscountNValue: &n, DiscountPercentage: &pct})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.DiscountNValue)
	assert.Equal(t, 25.0, updated.DiscountPercentage)
	assert.Equal(t, updated, config.Get())
}

func TestConfigPartialUpdate(t *testing.T) {
	s := newTestStore()
	config := NewConfigService(s)

	n := 7
	updated, err := config.Update(UpdateConfigParams{DiscountNValue: &n})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.DiscountNValue)
	assert.Equal(t, 10.0, updated.DiscountPercentage, "unspecified fields keep their values")
}

func TestConfigUpdateRangeChecks(t *testing.T) {
	s := newTestStore()
	config := NewConfigService(s)

	zero := 0
	_, err := config.Update(UpdateConfigParams{DiscountNValue: &zero})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	low := 0.5
	_, err = config.Update(UpdateConfigParams{DiscountPercentage: &low})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	high := 101.0
	_, err = config.Update(UpdateConfigParams{DiscountPercentage: &high})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.Equal(t, 3, config.Get().DiscountNValue, "failed updates must not apply")
	assert.Equal(t, 10.0, config.Get().DiscountPercentage)
}
