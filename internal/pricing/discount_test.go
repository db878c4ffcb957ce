package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esimly/backend/internal/domain"
)

func TestResolverDiscount(t *testing.T) {
	r := NewResolver(&domain.DiscountTable{
		Individual: map[string]float64{"ZERO": 0, "VIP": 40},
		Global:     map[string]float64{"5": 15, "2.5": 10},
	})

	assert.Equal(t, 15.0, r.Discount("ABC", 5.0))
	assert.Equal(t, 10.0, r.Discount("ABC", 2.5))
	assert.Equal(t, 40.0, r.Discount("VIP", 5.0))
	assert.Equal(t, 0.0, r.Discount("ZERO", 5.0), "explicit zero suppresses the global discount")
	assert.Equal(t, 0.0, r.Discount("ABC", 0), "no size, no global lookup")
	assert.Equal(t, 0.0, r.Discount("ABC", 3))
}

func TestResolverNotLoaded(t *testing.T) {
	assert.Equal(t, 0.0, NewResolver(nil).Discount("ABC", 5))
	assert.Equal(t, 0.0, Resolver{}.Discount("ABC", 5))
	assert.Equal(t, 0.0, NewResolver(&domain.DiscountTable{}).Discount("ABC", 5))
}
