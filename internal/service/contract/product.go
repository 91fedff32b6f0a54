package contract

import "time"

// Availability 상품 재고 상태입니다.
type Availability string

const (
	AvailabilityInStock      Availability = "in_stock"
	AvailabilityOutOfStock   Availability = "out_of_stock"
	AvailabilityPreorder     Availability = "preorder"
	AvailabilityDiscontinued Availability = "discontinued"
	AvailabilityUnknown      Availability = "unknown"
)

// RawRow 원천 피드의 한 행입니다. 판매처마다 열 이름이 다르며, 한 번 정규화된 뒤 버려집니다.
type RawRow = map[string]any

// Product 모든 판매처 피드를 통합한 표준 상품 레코드입니다.
//
// ID는 (Metadata.Source, MerchantID, MerchantProductID)로부터 결정적으로 계산되므로
// 같은 원천 행을 몇 번 정규화해도 같은 값을 가집니다.
type Product struct {
	ID                string `json:"id"`
	MerchantID        string `json:"merchantId"`
	MerchantProductID string `json:"merchantProductId"`

	Name            string `json:"name"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	Brand           string `json:"brand,omitempty"`

	Price        Price        `json:"price"`
	Availability Availability `json:"availability"`
	Stock        *Stock       `json:"stock,omitempty"`

	Images     Images   `json:"images"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`

	URL          string `json:"url"`
	AffiliateURL string `json:"affiliateUrl"`

	Retailer  Retailer        `json:"retailer"`
	Metadata  ProductMetadata `json:"metadata"`
	Computed  Computed        `json:"computed"`
	Validated Validated       `json:"validated"`
}

// MerchantKey 한 번의 피드 처리 안에서 중복을 판별하는 키("merchantId:merchantProductId")를 반환합니다.
func (p *Product) MerchantKey() string {
	return p.MerchantID + ":" + p.MerchantProductID
}

// Price 가격 정보입니다. 금액은 모두 최소 통화 단위(센트)입니다.
type Price struct {
	Current   int64  `json:"current"`
	Original  *int64 `json:"original,omitempty"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// Stock 재고 정보입니다. 피드가 수량을 제공하지 않으면 Quantity는 nil입니다.
type Stock struct {
	Quantity    *int      `json:"quantity,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Images 대표 이미지와 추가 이미지 URL
type Images struct {
	Primary    string   `json:"primary"`
	Additional []string `json:"additional,omitempty"`
}

// Retailer 판매처 정보입니다. Rating은 0~5 사이의 신뢰도 점수입니다.
type Retailer struct {
	Name   string  `json:"name"`
	ID     string  `json:"id"`
	Logo   string  `json:"logo,omitempty"`
	Rating float64 `json:"rating"`
}

// ProductMetadata 레코드의 출처와 갱신 시각
type ProductMetadata struct {
	Source         SourceKind `json:"source"`
	SourceID       string     `json:"sourceId"`
	FeedVersion    string     `json:"feedVersion,omitempty"`
	LastUpdated    time.Time  `json:"lastUpdated"`
	LastPriceCheck time.Time  `json:"lastPriceCheck"`
}

// Computed 파생 값입니다.
//
// IsOnSale은 원래 가격이 있고 현재 가격보다 클 때에만 true이며,
// DiscountPercentage는 원래 가격이 없으면 생략됩니다.
type Computed struct {
	DiscountPercentage *int `json:"discountPercentage,omitempty"`
	IsOnSale           bool `json:"isOnSale"`
	PopularityScore    int  `json:"popularityScore"`
}

// Validated 필드별 검증 결과
type Validated struct {
	Price         bool      `json:"price"`
	URL           bool      `json:"url"`
	AffiliateURL  bool      `json:"affiliateUrl"`
	Images        bool      `json:"images"`
	LastValidated time.Time `json:"lastValidated"`
}
