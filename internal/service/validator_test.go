package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimly/backend/internal/domain"
)

func TestValidatorUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Struct(domain.QuoteRequest{Currency: "EU", Order: &domain.Order{}})
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 422, appErr.Code)
	assert.Contains(t, appErr.Message, "countryCode: is required")
	assert.Contains(t, appErr.Message, "packageCode: is required")
	assert.Contains(t, appErr.Message, "currency: must be exactly 3 characters")
	assert.Contains(t, appErr.Message, "order.id: is required")

	assert.NoError(t, v.Struct(domain.QuoteRequest{CountryCode: "TH", PackageCode: "P"}))
}
