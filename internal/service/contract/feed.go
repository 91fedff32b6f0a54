package contract

import (
	"context"
	"time"
)

// RowError 정규화에 실패한 원천 행과 실패 사유입니다.
type RowError struct {
	Item  RawRow `json:"item"`
	Error string `json:"error"`
}

// FeedMetadata 한 번의 피드 처리 요약입니다. 같은 피드 ID로 다시 처리하면 덮어씁니다.
type FeedMetadata struct {
	FeedID            string    `json:"feedId"`
	FeedName          string    `json:"feedName"`
	LastFetched       time.Time `json:"lastFetched"`
	TotalProducts     int       `json:"totalProducts"`
	ProcessedProducts int       `json:"processedProducts"`
	FailedProducts    int       `json:"failedProducts"`
	DuplicateProducts int       `json:"duplicateProducts"`
	ProcessingTimeMs  int64     `json:"processingTimeMs"`
}

// ProcessedFeed 피드 처리 결과입니다.
// Products는 입력 행 순서를 유지하며, Duplicates에는 중복으로 제외된 상품의 ID가 담깁니다.
type ProcessedFeed struct {
	Products   []*Product   `json:"products"`
	Metadata   FeedMetadata `json:"metadata"`
	Duplicates []string     `json:"duplicates"`
	Errors     []RowError   `json:"errors"`
}

// PriceChange 가격 재확인 중 발견된 가격 변동
type PriceChange struct {
	ProductID string `json:"productId"`
	OldPrice  int64  `json:"oldPrice"`
	NewPrice  int64  `json:"newPrice"`
}

// RefreshResult 가격 재확인 결과
type RefreshResult struct {
	Updated      int           `json:"updated"`
	Failed       int           `json:"failed"`
	PriceChanges []PriceChange `json:"priceChanges"`
}

// PriceLookup 판매처로부터 상품의 최신 가격(센트)을 조회합니다.
// ok가 false이면 최신 가격을 알 수 없다는 뜻이며 기존 가격을 유지합니다.
type PriceLookup interface {
	LookupPrice(ctx context.Context, product *Product) (cents int64, ok bool, err error)
}

// PriceLookupFunc 일반 함수를 PriceLookup으로 사용하기 위한 어댑터입니다.
type PriceLookupFunc func(ctx context.Context, product *Product) (int64, bool, error)

func (f PriceLookupFunc) LookupPrice(ctx context.Context, product *Product) (int64, bool, error) {
	return f(ctx, product)
}

// FeedProcessor 피드 처리와 상품 조회 기능을 제공하는 인터페이스입니다.
// API 계층은 이 인터페이스를 통해서만 상품 데이터에 접근합니다.
type FeedProcessor interface {
	ProcessFeed(ctx context.Context, feedID, feedName string, kind SourceKind, rows []RawRow) (*ProcessedFeed, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductByMerchant(ctx context.Context, merchantID, merchantProductID string) (*Product, error)
	GetFeedMetadata(ctx context.Context, feedID string) (*FeedMetadata, error)
	RefreshProductPrices(ctx context.Context, ids []string, lookup PriceLookup) (*RefreshResult, error)
	ClearCache(ctx context.Context) error
}

// CacheStats 캐시 서비스 전체의 누적 통계입니다.
type CacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Deletes int64   `json:"deletes"`
	Size    int     `json:"size"`
	HitRate float64 `json:"hitRate"`
}

// CacheMaintainer 캐시 통계 조회와 만료 항목 정리를 제공하는 인터페이스입니다.
type CacheMaintainer interface {
	Stats() CacheStats
	Sweep(ctx context.Context) (int, error)
}
