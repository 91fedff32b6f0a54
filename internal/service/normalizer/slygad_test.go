package normalizer

import (
	"strings"
	"testing"

	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slygadRowFixture() contract.RawRow {
	return contract.RawRow{
		"id":              "s-1",
		"title":           "Gerecycled notitieboek",
		"description":     "Notitieboek van gerecycled papier, duurzaam en vegan gemaakt",
		"price":           "14,95",
		"certifications":  "FSC, B Corp",
		"impact_category": "Circulair",
		"impact_score":    85,
		"category":        "Kantoor",
		"url":             "https://slygad.nl/p/s-1",
		"image":           "https://slygad.nl/img/s-1.webp",
		"brand":           "Paperwise",
	}
}

func TestSlygad_Normalize(t *testing.T) {
	t.Parallel()

	res := NewSlygad(fixedNow).Normalize(slygadRowFixture())
	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Empty(t, res.Warnings)

	p := res.Product
	assert.Equal(t, ProductID(contract.SourceSlygad, "slygad", "s-1"), p.ID)
	assert.Equal(t, "slygad", p.MerchantID)
	assert.Equal(t, "Gerecycled notitieboek", p.Name)
	assert.Equal(t, int64(1495), p.Price.Current)
	assert.Nil(t, p.Price.Original)
	assert.Equal(t, contract.AvailabilityInStock, p.Availability)

	assert.Equal(t, []string{
		"Kantoor", "fsc", "b corp", "duurzaam", "vegan", "recycled", "gerecycled", "circulair",
	}, p.Categories)
	assert.Equal(t, []string{
		"kantoor", "fsc", "b corp", "duurzaam", "vegan", "recycled", "gerecycled", "circulair",
	}, p.Tags)

	assert.Equal(t, "https://slygad.nl/p/s-1", p.AffiliateURL)
	assert.Equal(t, "Shop Like You Give A Damn", p.Retailer.Name)
	assert.Equal(t, 4.9, p.Retailer.Rating)
	assert.Equal(t, "s-1", p.Metadata.SourceID)

	assert.False(t, p.Computed.IsOnSale)
	assert.Nil(t, p.Computed.DiscountPercentage)
	// 60 + 20(impact > 80) + 2*5(인증)
	assert.Equal(t, 90, p.Computed.PopularityScore)
}

func TestSlygad_Normalize_OutOfStockOnlyWhenExplicit(t *testing.T) {
	t.Parallel()

	n := NewSlygad(fixedNow)

	row := slygadRowFixture()
	row["in_stock"] = false
	res := n.Normalize(row)
	require.True(t, res.Success)
	assert.Equal(t, contract.AvailabilityOutOfStock, res.Product.Availability)

	row["in_stock"] = "misschien"
	res = n.Normalize(row)
	require.True(t, res.Success)
	assert.Equal(t, contract.AvailabilityInStock, res.Product.Availability)
}

func TestSlygadPopularity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  slygadRow
		want int
	}{
		{"기본 점수", slygadRow{}, 60},
		{"impact 60 초과", slygadRow{ImpactScore: "70"}, 70},
		{"impact 경계값 80", slygadRow{ImpactScore: "80"}, 70},
		{"인증 점수 상한", slygadRow{Certifications: []string{"a", "b", "c", "d", "e"}}, 75},
		{"긴 설명", slygadRow{Description: strings.Repeat("x", 201)}, 65},
		{"상한 100", slygadRow{
			ImpactScore:    "95",
			Certifications: []string{"a", "b", "c", "d"},
			Description:    strings.Repeat("x", 300),
		}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slygadPopularity(&tt.row))
		})
	}
}

func TestSlygad_Normalize_TagLimit(t *testing.T) {
	t.Parallel()

	categories := make([]any, 0, 30)
	for i := 0; i < 30; i++ {
		categories = append(categories, "categorie-"+strings.Repeat("x", i+1))
	}

	row := slygadRowFixture()
	delete(row, "category")
	row["categories"] = categories

	res := NewSlygad(fixedNow).Normalize(row)
	require.True(t, res.Success)
	assert.Len(t, res.Product.Tags, 25)
}
