package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimly/backend/internal/domain"
)

func codes(ls []Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.PackageCode
	}
	return out
}

func sortFixture() []Listing {
	month := plan("M", "beta", 10240, 1, "20.00")
	month.DurationUnit = domain.UnitMonth
	return IngestAll([]domain.Plan{
		plan("A", "Alpha", 5120, 30, "10.00"),
		plan("B", "alpha", 3072, 7, "6.00"),
		month,
		plan("C", "gamma", 5120, 15, "10.00"),
	})
}

func TestSortPlans(t *testing.T) {
	r := NewResolver(&domain.DiscountTable{Individual: map[string]float64{"M": 75}})
	in := sortFixture()

	assert.Equal(t, []string{"M", "B", "A", "C"}, codes(SortPlans(in, SortPrice, r)))
	assert.Equal(t, []string{"B", "C", "A", "M"}, codes(SortPlans(in, SortDuration, r)))
	assert.Equal(t, []string{"B", "A", "C", "M"}, codes(SortPlans(in, SortDataSize, r)))
	assert.Equal(t, []string{"B", "A", "M", "C"}, codes(SortPlans(in, SortName, r)))
}

func TestSortPlansIdempotent(t *testing.T) {
	r := NewResolver(&domain.DiscountTable{Global: map[string]float64{"5": 20}})
	in := sortFixture()
	for _, k := range []SortKey{SortPrice, SortDuration, SortDataSize, SortName} {
		once := SortPlans(in, k, r)
		assert.Equal(t, codes(once), codes(SortPlans(once, k, r)), "key %s", k)
	}
}

func TestSortPlansDoesNotMutateInput(t *testing.T) {
	in := sortFixture()
	before := codes(in)
	SortPlans(in, SortDataSize, Resolver{})
	assert.Equal(t, before, codes(in))
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey("")
	require.True(t, ok)
	assert.Equal(t, SortPrice, k)

	k, ok = ParseSortKey("dataSize")
	require.True(t, ok)
	assert.Equal(t, SortDataSize, k)

	_, ok = ParseSortKey("popularity")
	assert.False(t, ok)
}
