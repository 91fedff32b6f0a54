package normalizer

import (
	"strings"
	"time"

	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/darkkaiser/feed-server/pkg/maputil"
	"github.com/darkkaiser/feed-server/pkg/strutil"
)

const (
	slygadRetailerID   = "slygad"
	slygadRetailerName = "Shop Like You Give A Damn"
	slygadRetailerLogo = "/images/retailers/slygad-logo.png"
	slygadRating       = 4.9
	slygadMaxTags      = 25
)

// sustainabilityKeywords 상품 텍스트에 포함되어 있으면 그대로 카테고리와 태그로 추가하는 키워드입니다.
var sustainabilityKeywords = strutil.NewKeywordSet(
	"duurzaam", "sustainable", "eco", "biologisch", "organic",
	"fair trade", "eerlijk", "vegan", "recycled", "gerecycled",
	"klimaatneutraal", "carbon neutral", "plastic vrij", "plastic-free",
)

// slygadWordKeywords 이 키워드를 포함하는 단어를 태그로 추출합니다.
var slygadWordKeywords = strutil.NewKeywordSet(
	"cadeau", "gift", "present", "kado",
	"duurzaam", "eco", "groen", "biologisch", "eerlijk",
)

type slygadRow struct {
	ID        string `mapstructure:"id"`
	ProductID string `mapstructure:"product_id"`

	Name             string `mapstructure:"name"`
	Title            string `mapstructure:"title"`
	Description      string `mapstructure:"description"`
	ShortDescription string `mapstructure:"short_description"`
	Brand            string `mapstructure:"brand"`
	BrandName        string `mapstructure:"brand_name"`

	Price   any    `mapstructure:"price"`
	InStock string `mapstructure:"in_stock"`

	Category   any `mapstructure:"category"`
	Categories any `mapstructure:"categories"`
	Tags       any `mapstructure:"tags"`

	Certifications []string `mapstructure:"certifications"`
	ImpactCategory string   `mapstructure:"impact_category"`
	ImpactScore    string   `mapstructure:"impact_score"`

	URL          string `mapstructure:"url"`
	ProductURL   string `mapstructure:"product_url"`
	AffiliateURL string `mapstructure:"affiliate_url"`
	Deeplink     string `mapstructure:"deeplink"`

	Image            string   `mapstructure:"image"`
	ImageURL         string   `mapstructure:"image_url"`
	AdditionalImages []string `mapstructure:"additional_images"`

	FeedVersion string `mapstructure:"feed_version"`
}

// Slygad 지속가능성 상품을 큐레이션하는 단일 판매처 피드 정규화기입니다.
// 세일 가격을 제공하지 않으며, 명시적으로 품절 표시가 없으면 재고가 있는 것으로 봅니다.
type Slygad struct {
	base
}

// NewSlygad now가 nil이면 time.Now를 사용합니다.
func NewSlygad(now func() time.Time) *Slygad {
	return &Slygad{base: newBase(contract.SourceSlygad, now)}
}

func (n *Slygad) Normalize(raw contract.RawRow) Result {
	row, err := maputil.Decode[slygadRow](normalizeKeys(raw))
	if err != nil {
		return failed([]string{err.Error()}, nil)
	}

	merchantProductID := strutil.FirstNonEmpty(row.ID, row.ProductID)
	if merchantProductID == "" {
		return skipped("Missing product id")
	}
	name := cleanText(strutil.FirstNonEmpty(row.Name, row.Title))
	if name == "" {
		return skipped("Missing product name")
	}

	current, err := ParsePrice(row.Price)
	if err != nil {
		return n.invalidPrice(merchantProductID, err)
	}

	description, descriptionHTML := SanitizeDescription(strutil.FirstNonEmpty(row.Description, row.ShortDescription))

	availability := contract.AvailabilityInStock
	if isFalseToken(row.InStock) {
		availability = contract.AvailabilityOutOfStock
	}

	sustainability := slygadSustainabilityTags(row, name)
	categories := strutil.Unique(append(ExtractCategories(firstValue(row.Category, row.Categories)), sustainability...))
	if categories == nil {
		categories = []string{}
	}

	productURL := strutil.FirstNonEmpty(row.URL, row.ProductURL)
	now := n.now()

	p := &contract.Product{
		ID:                ProductID(contract.SourceSlygad, slygadRetailerID, merchantProductID),
		MerchantID:        slygadRetailerID,
		MerchantProductID: merchantProductID,

		Name:            name,
		Description:     description,
		DescriptionHTML: descriptionHTML,
		Brand:           strutil.FirstNonEmpty(row.Brand, row.BrandName),

		Price: contract.Price{
			Current:   current,
			Currency:  defaultCurrency,
			Formatted: FormatPrice(current, defaultCurrency),
		},
		Availability: availability,
		Stock:        &contract.Stock{LastUpdated: now},

		Images: contract.Images{
			Primary:    strutil.FirstNonEmpty(row.Image, row.ImageURL),
			Additional: additionalImages(row.AdditionalImages...),
		},
		Categories: categories,
		Tags:       slygadTags(name, description, categories, sustainability),

		URL:          productURL,
		AffiliateURL: strutil.FirstNonEmpty(row.AffiliateURL, row.Deeplink, productURL),

		Retailer: contract.Retailer{
			Name:   slygadRetailerName,
			ID:     slygadRetailerID,
			Logo:   slygadRetailerLogo,
			Rating: slygadRating,
		},
		Metadata: contract.ProductMetadata{
			Source:         contract.SourceSlygad,
			SourceID:       merchantProductID,
			FeedVersion:    strings.TrimSpace(row.FeedVersion),
			LastUpdated:    now,
			LastPriceCheck: now,
		},
		Computed: contract.Computed{PopularityScore: slygadPopularity(row)},
	}
	p.Validated = validatedFlags(p)

	return n.finish(p)
}

// slygadSustainabilityTags 인증 목록, 본문의 지속가능성 키워드, 임팩트 분류를 소문자 태그로 모읍니다.
func slygadSustainabilityTags(row *slygadRow, name string) []string {
	tags := newTagSet()
	tags.add(row.Certifications...)
	tags.add(sustainabilityKeywords.Matches(name + " " + row.Description + " " + textOf(row.Tags))...)
	tags.add(row.ImpactCategory)

	return tags.tags
}

func slygadTags(name, description string, categories, sustainability []string) []string {
	tags := newTagSet()
	tags.add(categories...)
	tags.add(sustainability...)
	tags.add(matchingWords(name+" "+description, slygadWordKeywords)...)

	return tags.list(slygadMaxTags)
}

// slygadPopularity 큐레이션 상품이므로 기본 60점에서 시작합니다.
func slygadPopularity(row *slygadRow) int {
	score := 60.0

	switch impact := number(row.ImpactScore); {
	case impact > 80:
		score += 20
	case impact > 60:
		score += 10
	}

	if certs := len(row.Certifications); certs > 0 {
		score += min(float64(certs*5), 15)
	}
	if len([]rune(row.Description)) > 200 {
		score += 5
	}

	return clampScore(score)
}
