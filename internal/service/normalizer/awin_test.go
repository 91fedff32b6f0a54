package normalizer

import (
	"strings"
	"testing"

	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awinFullRow() contract.RawRow {
	return contract.RawRow{
		"aw_product_id":      "123",
		"merchant_id":        55,
		"merchant_name":      "Mokkenwinkel",
		"product_name":       " Koffiemok ",
		"description":        "<p>Een mooie <b>cadeau</b> mok voor elke koffieliefhebber</p>",
		"search_price":       "9,99",
		"rrp_price":          "12,49",
		"currency":           "eur",
		"in_stock":           "Yes",
		"stock_quantity":     7,
		"category_name":      "Keuken > Mokken",
		"keywords":           "koffie; mok",
		"merchant_deep_link": "https://mokken.nl/p/123",
		"aw_deep_link":       "https://www.awin1.com/cread.php?p=123",
		"aw_image_url":       "https://images.awin.nl/large/123.jpg",
		"alternate_image":    "https://images.awin.nl/123-2.jpg",
		"brand_name":         "Mokko",
		"commission_amount":  "7.5",
		"promotional_text":   "Nu met korting",
		"data_feed_id":       "feed-9",
	}
}

func TestAwin_Normalize_FullRow(t *testing.T) {
	t.Parallel()

	res := NewAwin(fixedNow).Normalize(awinFullRow())
	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Empty(t, res.Warnings)
	assert.False(t, res.Skipped)

	p := res.Product
	require.NotNil(t, p)

	assert.Equal(t, ProductID(contract.SourceAwin, "55", "123"), p.ID)
	assert.Equal(t, "awin:55", p.MerchantID)
	assert.Equal(t, "123", p.MerchantProductID)
	assert.Equal(t, "Koffiemok", p.Name)
	assert.Equal(t, "Een mooie cadeau mok voor elke koffieliefhebber", p.Description)
	assert.Equal(t, "<p>Een mooie <b>cadeau</b> mok voor elke koffieliefhebber</p>", p.DescriptionHTML)
	assert.Equal(t, "Mokko", p.Brand)

	assert.Equal(t, int64(999), p.Price.Current)
	require.NotNil(t, p.Price.Original)
	assert.Equal(t, int64(1249), *p.Price.Original)
	assert.Equal(t, "EUR", p.Price.Currency)
	assert.Equal(t, "€ 9,99", p.Price.Formatted)

	assert.Equal(t, contract.AvailabilityInStock, p.Availability)
	require.NotNil(t, p.Stock)
	require.NotNil(t, p.Stock.Quantity)
	assert.Equal(t, 7, *p.Stock.Quantity)
	assert.Equal(t, fixedTime, p.Stock.LastUpdated)

	assert.Equal(t, "https://images.awin.nl/large/123.jpg", p.Images.Primary)
	assert.Equal(t, []string{"https://images.awin.nl/123-2.jpg"}, p.Images.Additional)
	assert.Equal(t, []string{"Keuken", "Mokken"}, p.Categories)
	assert.Equal(t, []string{"keuken", "mokken", "koffie", "mok", "cadeau"}, p.Tags)

	assert.Equal(t, "https://mokken.nl/p/123", p.URL)
	assert.Equal(t, "https://www.awin1.com/cread.php?p=123", p.AffiliateURL)

	assert.Equal(t, contract.Retailer{Name: "Mokkenwinkel", ID: "awin:55", Rating: 4.3}, p.Retailer)
	assert.Equal(t, contract.ProductMetadata{
		Source:         contract.SourceAwin,
		SourceID:       "123",
		FeedVersion:    "feed-9",
		LastUpdated:    fixedTime,
		LastPriceCheck: fixedTime,
	}, p.Metadata)

	require.NotNil(t, p.Computed.DiscountPercentage)
	assert.Equal(t, 20, *p.Computed.DiscountPercentage)
	assert.True(t, p.Computed.IsOnSale)
	assert.Equal(t, 100, p.Computed.PopularityScore)

	assert.Equal(t, contract.Validated{
		Price: true, URL: true, AffiliateURL: true, Images: true, LastValidated: fixedTime,
	}, p.Validated)
}

// camelCase 키, 쉼표 소수 가격, 판매처 ID로 구성된 최소 행
func TestAwin_Normalize_CamelCaseMinimalRow(t *testing.T) {
	t.Parallel()

	res := NewAwin(fixedNow).Normalize(contract.RawRow{
		"productId":  "123",
		"name":       "Mug",
		"price":      "9,99",
		"merchantId": "55",
		"inStock":    "Yes",
		"productUrl": "https://shop.example/mug",
	})
	require.True(t, res.Success, "errors: %v", res.Errors)

	p := res.Product
	assert.Equal(t, int64(999), p.Price.Current)
	assert.Equal(t, contract.AvailabilityInStock, p.Availability)
	assert.Equal(t, ProductID(contract.SourceAwin, "55", "123"), p.ID)
	assert.Equal(t, "https://shop.example/mug", p.AffiliateURL, "제휴 링크가 없으면 상품 URL을 사용합니다")
	assert.Nil(t, p.Price.Original)
	assert.Nil(t, p.Computed.DiscountPercentage)
	assert.False(t, p.Computed.IsOnSale)
	assert.Nil(t, p.Stock.Quantity)
	assert.Equal(t, "Unknown", p.Retailer.Name)
	assert.Equal(t, 3.5, p.Retailer.Rating)
	assert.Equal(t, 60, p.Computed.PopularityScore)

	assert.Equal(t, []string{
		"Missing primary image",
		"Description too short or missing",
		"Missing brand information",
		"No categories assigned",
	}, res.Warnings)
}

func TestAwin_Normalize_Deterministic(t *testing.T) {
	t.Parallel()

	n := NewAwin(fixedNow)
	first := n.Normalize(awinFullRow())
	second := n.Normalize(awinFullRow())

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, first.Product, second.Product)
}

func TestAwin_Normalize_Skipped(t *testing.T) {
	t.Parallel()

	n := NewAwin(fixedNow)

	noID := awinFullRow()
	delete(noID, "aw_product_id")
	res := n.Normalize(noID)
	assert.True(t, res.Skipped)
	assert.False(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "Missing aw_product_id", res.Reason)

	noName := awinFullRow()
	noName["product_name"] = "   "
	res = n.Normalize(noName)
	assert.True(t, res.Skipped)
	assert.Equal(t, "Missing product_name", res.Reason)
}

func TestAwin_Normalize_Failures(t *testing.T) {
	t.Parallel()

	n := NewAwin(fixedNow)

	t.Run("잘못된 현재 가격", func(t *testing.T) {
		t.Parallel()

		row := awinFullRow()
		row["search_price"] = "gratis"
		res := n.Normalize(row)
		assert.False(t, res.Success)
		assert.False(t, res.Skipped)
		require.Len(t, res.Errors, 1)
		assert.True(t, strings.HasPrefix(res.Errors[0], "Invalid price: "))
		assert.Nil(t, res.Product)
	})

	t.Run("잘못된 원래 가격", func(t *testing.T) {
		t.Parallel()

		row := awinFullRow()
		row["rrp_price"] = -5
		res := n.Normalize(row)
		assert.False(t, res.Success)
		require.Len(t, res.Errors, 1)
		assert.True(t, strings.HasPrefix(res.Errors[0], "Invalid price: "))
	})

	t.Run("0원 상품", func(t *testing.T) {
		t.Parallel()

		row := awinFullRow()
		row["search_price"] = 0
		res := n.Normalize(row)
		assert.False(t, res.Success)
		assert.Equal(t, []string{"Invalid price"}, res.Errors)
	})

	t.Run("URL 누락 시 경고는 유지", func(t *testing.T) {
		t.Parallel()

		row := awinFullRow()
		delete(row, "merchant_deep_link")
		delete(row, "aw_deep_link")
		delete(row, "brand_name")
		res := n.Normalize(row)
		assert.False(t, res.Success)
		assert.Nil(t, res.Product)
		assert.Equal(t, []string{"Invalid product URL", "Invalid affiliate URL"}, res.Errors)
		assert.Equal(t, []string{"Missing brand information"}, res.Warnings)
	})
}

func TestAwin_Normalize_Availability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value any
		want  contract.Availability
	}{
		{"yes", contract.AvailabilityInStock},
		{"TRUE", contract.AvailabilityInStock},
		{1, contract.AvailabilityInStock},
		{true, contract.AvailabilityInStock},
		{"no", contract.AvailabilityOutOfStock},
		{false, contract.AvailabilityOutOfStock},
		{"0", contract.AvailabilityOutOfStock},
		{"misschien", contract.AvailabilityUnknown},
	}

	n := NewAwin(fixedNow)
	for _, tt := range tests {
		row := awinFullRow()
		row["in_stock"] = tt.value

		res := n.Normalize(row)
		require.True(t, res.Success)
		assert.Equal(t, tt.want, res.Product.Availability, "in_stock=%v", tt.value)
	}
}

func TestAwin_Normalize_MerchantFallbacks(t *testing.T) {
	t.Parallel()

	n := NewAwin(fixedNow)

	row := awinFullRow()
	delete(row, "merchant_id")
	delete(row, "merchant_name")
	row["advertiser_id"] = "77"
	row["advertiser_name"] = "Adverteerder"
	row["merchant_product_id"] = "SKU-1"
	row["additional_images"] = []any{"https://images.awin.nl/a.jpg", "https://images.awin.nl/b.jpg"}

	res := n.Normalize(row)
	require.True(t, res.Success)
	assert.Equal(t, "awin:77", res.Product.MerchantID)
	assert.Equal(t, "SKU-1", res.Product.MerchantProductID)
	assert.Equal(t, ProductID(contract.SourceAwin, "77", "SKU-1"), res.Product.ID)
	assert.Equal(t, "Adverteerder", res.Product.Retailer.Name)
	assert.Equal(t, "123", res.Product.Metadata.SourceID)
	assert.Equal(t, []string{
		"https://images.awin.nl/123-2.jpg",
		"https://images.awin.nl/a.jpg",
		"https://images.awin.nl/b.jpg",
	}, res.Product.Images.Additional)

	delete(row, "advertiser_id")
	res = n.Normalize(row)
	require.True(t, res.Success)
	assert.Equal(t, "awin:unknown", res.Product.MerchantID)
}

func TestAwin_MerchantRating(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3.5, awinMerchantRating(&awinRow{}))
	assert.Equal(t, 4.5, awinMerchantRating(&awinRow{
		CommissionAmount: "10",
		AwImageURL:       "https://img/large/1.jpg",
		Description:      strings.Repeat("a", 201),
	}))
}
