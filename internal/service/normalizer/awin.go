package normalizer

import (
	"math"
	"strings"
	"time"

	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/darkkaiser/feed-server/pkg/maputil"
	"github.com/darkkaiser/feed-server/pkg/strutil"
)

const (
	awinMaxTags         = 20
	awinUnknownMerchant = "unknown"
)

// awinRow AWIN 피드 한 행입니다. 판매처(advertiser)마다 열 이름이 조금씩 달라 별칭을 함께 받습니다.
type awinRow struct {
	AwProductID       string `mapstructure:"aw_product_id"`
	ProductID         string `mapstructure:"product_id"`
	MerchantProductID string `mapstructure:"merchant_product_id"`
	MerchantID        string `mapstructure:"merchant_id"`
	AdvertiserID      string `mapstructure:"advertiser_id"`
	MerchantName      string `mapstructure:"merchant_name"`
	AdvertiserName    string `mapstructure:"advertiser_name"`
	MerchantLogo      string `mapstructure:"merchant_logo"`

	ProductName string `mapstructure:"product_name"`
	Name        string `mapstructure:"name"`

	Description             string `mapstructure:"description"`
	ProductShortDescription string `mapstructure:"product_short_description"`
	BrandName               string `mapstructure:"brand_name"`
	Brand                   string `mapstructure:"brand"`

	SearchPrice   any    `mapstructure:"search_price"`
	Price         any    `mapstructure:"price"`
	RRPPrice      any    `mapstructure:"rrp_price"`
	OriginalPrice any    `mapstructure:"original_price"`
	Currency      string `mapstructure:"currency"`

	InStock       string `mapstructure:"in_stock"`
	StockQuantity string `mapstructure:"stock_quantity"`

	CategoryName     any    `mapstructure:"category_name"`
	Categories       any    `mapstructure:"categories"`
	MerchantCategory any    `mapstructure:"merchant_category"`
	Keywords         string `mapstructure:"keywords"`

	MerchantDeepLink string `mapstructure:"merchant_deep_link"`
	ProductURL       string `mapstructure:"product_url"`
	AwDeepLink       string `mapstructure:"aw_deep_link"`
	DeepLink         string `mapstructure:"deeplink"`

	AwImageURL          string   `mapstructure:"aw_image_url"`
	ImageURL            string   `mapstructure:"image_url"`
	LargeImage          string   `mapstructure:"large_image"`
	AlternateImage      string   `mapstructure:"alternate_image"`
	AlternateImageTwo   string   `mapstructure:"alternate_image_two"`
	AlternateImageThree string   `mapstructure:"alternate_image_three"`
	AlternateImageFour  string   `mapstructure:"alternate_image_four"`
	AdditionalImages    []string `mapstructure:"additional_images"`

	CommissionAmount string `mapstructure:"commission_amount"`
	PromotionalText  string `mapstructure:"promotional_text"`
	DataFeedID       string `mapstructure:"data_feed_id"`
}

// Awin AWIN 제휴 네트워크 피드 정규화기입니다.
// 하나의 피드에 여러 판매처가 섞여 있으므로 판매처 ID는 "awin:<merchant_id>"로 구분합니다.
type Awin struct {
	base
}

// NewAwin now가 nil이면 time.Now를 사용합니다.
func NewAwin(now func() time.Time) *Awin {
	return &Awin{base: newBase(contract.SourceAwin, now)}
}

func (n *Awin) Normalize(raw contract.RawRow) Result {
	row, err := maputil.Decode[awinRow](normalizeKeys(raw))
	if err != nil {
		return failed([]string{err.Error()}, nil)
	}

	awProductID := strutil.FirstNonEmpty(row.AwProductID, row.ProductID)
	if awProductID == "" {
		return skipped("Missing aw_product_id")
	}
	name := cleanText(strutil.FirstNonEmpty(row.ProductName, row.Name))
	if name == "" {
		return skipped("Missing product_name")
	}

	current, err := ParsePrice(firstValue(row.SearchPrice, row.Price))
	if err != nil {
		return n.invalidPrice(awProductID, err)
	}
	var original *int64
	if v := firstValue(row.RRPPrice, row.OriginalPrice); v != nil {
		cents, err := ParsePrice(v)
		if err != nil {
			return n.invalidPrice(awProductID, err)
		}
		original = &cents
	}

	merchantKey := strutil.FirstNonEmpty(row.MerchantID, row.AdvertiserID, awinUnknownMerchant)
	merchantID := "awin:" + merchantKey
	merchantProductID := strutil.FirstNonEmpty(row.MerchantProductID, awProductID)

	description, descriptionHTML := SanitizeDescription(strutil.FirstNonEmpty(row.Description, row.ProductShortDescription))

	availability := contract.AvailabilityUnknown
	switch {
	case isTrueToken(row.InStock):
		availability = contract.AvailabilityInStock
	case isFalseToken(row.InStock):
		availability = contract.AvailabilityOutOfStock
	}

	categories := ExtractCategories(firstValue(row.CategoryName, row.Categories, row.MerchantCategory))

	productURL := strings.TrimSpace(strutil.FirstNonEmpty(row.MerchantDeepLink, row.ProductURL))
	currency := strings.ToUpper(strutil.FirstNonEmpty(row.Currency, defaultCurrency))
	brand := strutil.FirstNonEmpty(row.BrandName, row.Brand)
	now := n.now()

	p := &contract.Product{
		ID:                ProductID(contract.SourceAwin, merchantKey, merchantProductID),
		MerchantID:        merchantID,
		MerchantProductID: merchantProductID,

		Name:            name,
		Description:     description,
		DescriptionHTML: descriptionHTML,
		Brand:           brand,

		Price: contract.Price{
			Current:   current,
			Original:  original,
			Currency:  currency,
			Formatted: FormatPrice(current, currency),
		},
		Availability: availability,
		Stock: &contract.Stock{
			Quantity:    quantity(row.StockQuantity),
			LastUpdated: now,
		},

		Images: contract.Images{
			Primary: strutil.FirstNonEmpty(row.AwImageURL, row.ImageURL, row.LargeImage),
			Additional: additionalImages(append([]string{
				row.AlternateImage, row.AlternateImageTwo, row.AlternateImageThree, row.AlternateImageFour,
			}, row.AdditionalImages...)...),
		},
		Categories: categories,
		Tags:       awinTags(name, description, categories, row.Keywords),

		URL:          productURL,
		AffiliateURL: strutil.FirstNonEmpty(row.AwDeepLink, row.DeepLink, productURL),

		Retailer: contract.Retailer{
			Name:   strutil.FirstNonEmpty(row.MerchantName, row.AdvertiserName, "Unknown"),
			ID:     merchantID,
			Logo:   strings.TrimSpace(row.MerchantLogo),
			Rating: awinMerchantRating(row),
		},
		Metadata: contract.ProductMetadata{
			Source:         contract.SourceAwin,
			SourceID:       awProductID,
			FeedVersion:    strings.TrimSpace(row.DataFeedID),
			LastUpdated:    now,
			LastPriceCheck: now,
		},
		Computed: computed(current, original, awinPopularity(row, current, original, availability, brand)),
	}
	p.Validated = validatedFlags(p)

	return n.finish(p)
}

func awinTags(name, description string, categories []string, keywords string) []string {
	tags := newTagSet()
	tags.add(categories...)
	tags.add(strutil.SplitAny(keywords, ",;|")...)
	tags.add(matchingWords(name+" "+description, giftKeywords)...)

	return tags.list(awinMaxTags)
}

// awinMerchantRating 수수료와 피드 데이터 품질로 판매처 평점(최대 5.0)을 추정합니다.
func awinMerchantRating(row *awinRow) float64 {
	rating := 3.5

	if number(row.CommissionAmount) > 5 {
		rating += 0.5
	}
	if strings.Contains(row.AwImageURL, "large") {
		rating += 0.3
	}
	if len([]rune(row.Description)) > 200 {
		rating += 0.2
	}

	return math.Min(math.Round(rating*10)/10, 5.0)
}

func awinPopularity(row *awinRow, current int64, original *int64, availability contract.Availability, brand string) int {
	score := 50.0

	if strings.TrimSpace(row.PromotionalText) != "" {
		score += 15
	}
	if original != nil && *original > current {
		score += 20
	}
	if availability == contract.AvailabilityInStock {
		score += 10
	}
	if brand != "" {
		score += 5
	}

	return clampScore(score)
}

// computed 할인율과 세일 여부를 계산합니다. 원래 가격이 없으면 할인율은 생략합니다.
func computed(current int64, original *int64, popularity int) contract.Computed {
	c := contract.Computed{PopularityScore: popularity}
	if original != nil {
		discount := CalculateDiscount(current, *original)
		c.DiscountPercentage = &discount
		c.IsOnSale = *original > current
	}
	return c
}

// firstValue 비어 있지 않은 첫 번째 값을 반환합니다. 공백뿐인 문자열은 비어 있는 것으로 봅니다.
func firstValue(values ...any) any {
	for _, v := range values {
		switch x := v.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(x) == "" {
				continue
			}
		}
		return v
	}
	return nil
}
