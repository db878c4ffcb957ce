package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esimly/backend/internal/domain"
)

func TestBuildCatalog(t *testing.T) {
	plans := []domain.Plan{
		plan("STD", "TH_5GB_30D", 5120, 30, "8.00"),
		plan("STD-HK", "TH_5GB_30D_nonhkip", 5120, 30, "8.50"),
		plan("SMALL", "TH_1GB_30D", 1024, 30, "4.00"),
		plan("PROMO", "TH_1GB_7D", 1024, 7, "1.00"),
		plan("UNL", "TH_2GB_FUP1Mbps_1Day", 2048, 1, "3.20"),
		plan("CHEAP", "TH_3GB_7D", 3072, 7, "3.50"),
	}
	regional := plan("REG", "Asia_10GB_30D", 10240, 30, "20.00")
	regional.Location = "TH,MY,SG"
	plans = append(plans, regional)

	r := NewResolver(&domain.DiscountTable{Global: map[string]float64{"3": 20}})
	got := BuildCatalog(plans, "TH", SortPrice, r, DefaultRules())

	assert.Equal(t, []string{"PROMO", "UNL", "STD-HK"}, codes(got))
}
