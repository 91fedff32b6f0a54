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
	coolblueRetailerID   = "coolblue"
	coolblueRetailerName = "Coolblue"
	coolblueRetailerLogo = "/images/retailers/coolblue-logo.png"
	coolblueRating       = 4.8
	coolblueMaxTags      = 20
)

type coolblueRow struct {
	ProductID string `mapstructure:"product_id"`
	ID        string `mapstructure:"id"`

	ProductName      string `mapstructure:"product_name"`
	Name             string `mapstructure:"name"`
	Description      string `mapstructure:"description"`
	ShortDescription string `mapstructure:"short_description"`
	BrandName        string `mapstructure:"brand_name"`
	Brand            string `mapstructure:"brand"`

	Price    any `mapstructure:"price"`
	OldPrice any `mapstructure:"old_price"`

	InStock string `mapstructure:"in_stock"`

	Category   any `mapstructure:"category"`
	Categories any `mapstructure:"categories"`

	ProductURL   string `mapstructure:"product_url"`
	URL          string `mapstructure:"url"`
	DeeplinkURL  string `mapstructure:"deeplink_url"`
	Deeplink     string `mapstructure:"deeplink"`
	AffiliateURL string `mapstructure:"affiliate_url"`

	ImageURL         string   `mapstructure:"image_url"`
	Image            string   `mapstructure:"image"`
	AdditionalImages []string `mapstructure:"additional_images"`

	ReviewsCount string `mapstructure:"reviews_count"`
	Rating       string `mapstructure:"rating"`

	FeedID      string `mapstructure:"feed_id"`
	FeedVersion string `mapstructure:"feed_version"`
}

// Coolblue Coolblue 단일 판매처 피드 정규화기입니다. 가격은 항상 EUR입니다.
type Coolblue struct {
	base
}

// NewCoolblue now가 nil이면 time.Now를 사용합니다.
func NewCoolblue(now func() time.Time) *Coolblue {
	return &Coolblue{base: newBase(contract.SourceCoolblue, now)}
}

func (n *Coolblue) Normalize(raw contract.RawRow) Result {
	row, err := maputil.Decode[coolblueRow](normalizeKeys(raw))
	if err != nil {
		return failed([]string{err.Error()}, nil)
	}

	merchantProductID := strutil.FirstNonEmpty(row.ProductID, row.ID)
	if merchantProductID == "" {
		return skipped("No product ID")
	}
	name := cleanText(strutil.FirstNonEmpty(row.ProductName, row.Name))
	if name == "" {
		return skipped("No product name")
	}

	current, err := ParsePrice(row.Price)
	if err != nil {
		return n.invalidPrice(merchantProductID, err)
	}
	var original *int64
	if v := firstValue(row.OldPrice); v != nil {
		cents, err := ParsePrice(v)
		if err != nil {
			return n.invalidPrice(merchantProductID, err)
		}
		original = &cents
	}

	description, descriptionHTML := SanitizeDescription(strutil.FirstNonEmpty(row.Description, row.ShortDescription))

	availability := contract.AvailabilityUnknown
	switch strings.ToLower(strings.TrimSpace(row.InStock)) {
	case "true", "1":
		availability = contract.AvailabilityInStock
	case "false", "0":
		availability = contract.AvailabilityOutOfStock
	}

	categories := ExtractCategories(firstValue(row.Category, row.Categories))
	now := n.now()

	p := &contract.Product{
		ID:                ProductID(contract.SourceCoolblue, coolblueRetailerID, merchantProductID),
		MerchantID:        coolblueRetailerID,
		MerchantProductID: merchantProductID,

		Name:            name,
		Description:     description,
		DescriptionHTML: descriptionHTML,
		Brand:           strutil.FirstNonEmpty(row.BrandName, row.Brand),

		Price: contract.Price{
			Current:   current,
			Original:  original,
			Currency:  defaultCurrency,
			Formatted: FormatPrice(current, defaultCurrency),
		},
		Availability: availability,
		Stock:        &contract.Stock{LastUpdated: now},

		Images: contract.Images{
			Primary:    strutil.FirstNonEmpty(row.ImageURL, row.Image),
			Additional: additionalImages(row.AdditionalImages...),
		},
		Categories: categories,
		Tags:       coolblueTags(name, description, categories),

		URL:          strutil.FirstNonEmpty(row.ProductURL, row.URL),
		AffiliateURL: strutil.FirstNonEmpty(row.DeeplinkURL, row.Deeplink, row.AffiliateURL, row.ProductURL),

		Retailer: contract.Retailer{
			Name:   coolblueRetailerName,
			ID:     coolblueRetailerID,
			Logo:   coolblueRetailerLogo,
			Rating: coolblueRating,
		},
		Metadata: contract.ProductMetadata{
			Source:         contract.SourceCoolblue,
			SourceID:       strings.TrimSpace(row.FeedID),
			FeedVersion:    strings.TrimSpace(row.FeedVersion),
			LastUpdated:    now,
			LastPriceCheck: now,
		},
		Computed: computed(current, original, coolbluePopularity(row, current, original, availability)),
	}
	p.Validated = validatedFlags(p)

	return n.finish(p)
}

func coolblueTags(name, description string, categories []string) []string {
	tags := newTagSet()
	tags.add(categories...)
	tags.add(matchingWords(name+" "+description, giftKeywords)...)

	return tags.list(coolblueMaxTags)
}

// coolbluePopularity 리뷰 수(최대 30점), 평점, 세일 여부, 재고로 인기 점수를 계산합니다.
func coolbluePopularity(row *coolblueRow, current int64, original *int64, availability contract.Availability) int {
	var score float64

	if reviews := number(row.ReviewsCount); reviews > 0 {
		score += math.Min(reviews/10, 30)
	}
	if rating := number(row.Rating); rating > 0 {
		score += rating * 10
	}
	if original != nil && *original > current {
		score += 20
	}
	if availability == contract.AvailabilityInStock {
		score += 10
	}

	return clampScore(score)
}
