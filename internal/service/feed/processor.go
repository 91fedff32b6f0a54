// Package feed 원천 피드 한 건의 처리(정규화, 중복 제거, 캐시 저장)와 저장된 상품의 조회를 담당합니다.
//
// 저장 위치는 다음과 같습니다.
//
//   - products 네임스페이스, object 백엔드: "product:<id>" -> 상품 레코드
//   - products 네임스페이스, local 백엔드: "product:merchant:<merchantId>:<merchantProductId>" -> 상품 ID
//   - feeds 네임스페이스, memory 백엔드: "feed:metadata:<feedId>" -> 처리 요약
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/darkkaiser/feed-server/internal/config"
	"github.com/darkkaiser/feed-server/internal/service/cache"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/darkkaiser/feed-server/internal/service/normalizer"
	"github.com/darkkaiser/feed-server/pkg/concurrency"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/google/uuid"
)

const component = "feed.processor"

const (
	defaultProductTTL  = 24 * time.Hour
	defaultIndexTTL    = 24 * time.Hour
	defaultMetadataTTL = time.Hour
)

// Config 저장 항목별 TTL과 시계입니다. 0 이하의 TTL은 기본값으로 대체됩니다.
type Config struct {
	ProductTTL  time.Duration
	IndexTTL    time.Duration
	MetadataTTL time.Duration

	// Now 처리 시각과 소요 시간 측정에 사용할 시계. nil이면 time.Now
	Now func() time.Time
}

// ConfigFrom 애플리케이션 설정의 feed 섹션으로 Config를 만듭니다.
func ConfigFrom(c config.FeedConfig) Config {
	return Config{
		ProductTTL:  c.ProductTTL,
		IndexTTL:    c.IndexTTL,
		MetadataTTL: c.MetadataTTL,
	}
}

// Processor 피드 처리와 상품 조회를 제공합니다.
//
// 한 번의 ProcessFeed 호출 안에서만 중복을 제거합니다. 서로 다른 호출(동시 호출 포함) 사이의
// 중복은 감지하지 않으며, 상품 색인은 나중에 기록한 쪽이 덮어씁니다.
type Processor struct {
	registry *normalizer.Registry
	cache    *cache.Service

	productTTL  time.Duration
	indexTTL    time.Duration
	metadataTTL time.Duration
	now         func() time.Time

	// 같은 상품의 레코드와 색인이 서로 다른 실행의 값으로 섞여 기록되지 않도록 merchantKey 단위로 직렬화합니다.
	locks *concurrency.KeyedMutex[string]
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ contract.FeedProcessor = (*Processor)(nil)

func New(cfg Config, registry *normalizer.Registry, cacheService *cache.Service) *Processor {
	if cfg.ProductTTL <= 0 {
		cfg.ProductTTL = defaultProductTTL
	}
	if cfg.IndexTTL <= 0 {
		cfg.IndexTTL = defaultIndexTTL
	}
	if cfg.MetadataTTL <= 0 {
		cfg.MetadataTTL = defaultMetadataTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Processor{
		registry:    registry,
		cache:       cacheService,
		productTTL:  cfg.ProductTTL,
		indexTTL:    cfg.IndexTTL,
		metadataTTL: cfg.MetadataTTL,
		now:         cfg.Now,
		locks:       concurrency.NewKeyedMutex[string](),
	}
}

// ProcessFeed rows를 입력 순서대로 정규화하여 중복을 제거하고 캐시에 저장합니다.
//
// 등록되지 않은 kind는 행을 하나도 처리하지 않고 에러를 반환합니다. 행 단위 문제는 결과의
// Errors에 모아 반환하며, 캐시 저장 실패는 로그만 남기고 상품은 처리된 것으로 봅니다.
//
// 한 번 시작한 처리는 ctx가 취소되어도 마지막 행과 처리 요약까지 기록합니다. 중간에 멈추면
// 일부 상품만 저장되고 요약은 남지 않으므로, ctx는 값 전달에만 사용합니다.
func (p *Processor) ProcessFeed(ctx context.Context, feedID, feedName string, kind contract.SourceKind, rows []contract.RawRow) (*contract.ProcessedFeed, error) {
	n, err := p.registry.Lookup(kind)
	if err != nil {
		return nil, err
	}

	callerCtx := ctx
	ctx = context.WithoutCancel(ctx)

	start := p.now()
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"run_id":    uuid.NewString(),
		"feed_id":   feedID,
		"feed_name": feedName,
		"source":    kind,
	})
	logger.WithField("total_items", len(rows)).Info("피드 처리 시작")

	defer p.endIndexBatch(logger, p.cache.Batch(cache.BackendLocal))

	result := &contract.ProcessedFeed{
		Products:   make([]*contract.Product, 0, len(rows)),
		Duplicates: []string{},
		Errors:     []contract.RowError{},
	}
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		res := normalizeRow(n, row)
		switch {
		case res.Skipped:
			continue
		case !res.Success:
			result.Errors = append(result.Errors, contract.RowError{Item: row, Error: errorMessage(res.Errors)})
			continue
		case res.Product == nil:
			continue
		}

		product := res.Product
		key := product.MerchantKey()
		if _, dup := seen[key]; dup {
			result.Duplicates = append(result.Duplicates, product.ID)
			logger.WithFields(applog.Fields{
				"product_id":   product.ID,
				"product_name": product.Name,
			}).Debug("중복 상품 제외")
			continue
		}
		seen[key] = struct{}{}

		result.Products = append(result.Products, product)
		p.storeProduct(ctx, logger, product)
	}

	result.Metadata = contract.FeedMetadata{
		FeedID:            feedID,
		FeedName:          feedName,
		LastFetched:       p.now(),
		TotalProducts:     len(rows),
		ProcessedProducts: len(result.Products),
		FailedProducts:    len(result.Errors),
		DuplicateProducts: len(result.Duplicates),
		ProcessingTimeMs:  p.now().Sub(start).Milliseconds(),
	}

	logger.WithFields(applog.Fields{
		"total":         result.Metadata.TotalProducts,
		"processed":     result.Metadata.ProcessedProducts,
		"failed":        result.Metadata.FailedProducts,
		"duplicate":     result.Metadata.DuplicateProducts,
		"processing_ms": result.Metadata.ProcessingTimeMs,
		"success_rate":  successRate(len(result.Products), len(rows)),
	}).Info("피드 처리 완료")

	if err := callerCtx.Err(); err != nil {
		logger.WithField("error", err).Warn("요청이 취소되었지만 피드 처리를 끝까지 마쳤습니다")
	}

	if err := p.cache.Set(ctx, metadataKey(feedID), result.Metadata,
		cache.WithNamespace(feedNamespace),
		cache.WithTTL(p.metadataTTL),
	); err != nil {
		logger.WithField("error", err).Error("피드 처리 요약을 캐시에 저장하지 못했습니다")
	}

	return result, nil
}

// normalizeRow 정규화기의 panic을 해당 행의 실패로 바꿉니다.
func normalizeRow(n normalizer.Normalizer, row contract.RawRow) (res normalizer.Result) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"source": n.Kind(),
				"panic":  r,
			}).Error("행 정규화 중 panic 발생")

			res = normalizer.Result{Errors: []string{fmt.Sprintf("panic: %v", r)}}
		}
	}()

	return n.Normalize(row)
}

func errorMessage(errs []string) string {
	if len(errs) == 0 {
		return "Unknown error"
	}
	return strings.Join(errs, ", ")
}

func successRate(processed, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(processed)/float64(total)*100)
}

// endIndexBatch 판매처 색인의 일괄 쓰기를 끝냅니다. 기록 실패는 로그만 남깁니다.
func (p *Processor) endIndexBatch(logger *applog.Entry, end func() error) {
	if err := end(); err != nil {
		logger.WithField("error", err).Warn("상품 색인을 로컬 캐시 파일에 기록하지 못했습니다")
	}
}

// storeProduct 레코드(object)와 판매처 색인(local)을 기록합니다. 실패는 로그만 남깁니다.
func (p *Processor) storeProduct(ctx context.Context, logger *applog.Entry, product *contract.Product) {
	_ = p.locks.WithLock(product.MerchantKey(), func() error {
		if err := p.cache.Set(ctx, productKey(product.ID), product,
			cache.WithNamespace(productNamespace),
			cache.WithBackend(cache.BackendObject),
			cache.WithTTL(p.productTTL),
		); err != nil {
			logger.WithFields(applog.Fields{
				"product_id": product.ID,
				"error":      err,
			}).Error("상품 레코드를 캐시에 저장하지 못했습니다")
		}

		if err := p.cache.Set(ctx, merchantIndexKey(product.MerchantID, product.MerchantProductID), product.ID,
			cache.WithNamespace(productNamespace),
			cache.WithBackend(cache.BackendLocal),
			cache.WithTTL(p.indexTTL),
		); err != nil {
			logger.WithFields(applog.Fields{
				"product_id":  product.ID,
				"merchant_id": product.MerchantID,
				"error":       err,
			}).Error("상품 색인을 캐시에 저장하지 못했습니다")
		}
		return nil
	})
}
