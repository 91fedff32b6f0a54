package feed

import (
	"context"
	"errors"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/service/cache"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/darkkaiser/feed-server/internal/service/normalizer"
	applog "github.com/darkkaiser/feed-server/pkg/log"
)

// GetProduct 캐시에 저장된 상품 레코드를 반환합니다.
// 레코드가 없거나 만료되었으면 contract.ErrProductNotFound를 감싼 에러를 반환합니다.
func (p *Processor) GetProduct(ctx context.Context, id string) (*contract.Product, error) {
	if id == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "상품 ID가 비어 있습니다")
	}

	var product contract.Product
	ok, err := p.cache.Get(ctx, productKey(id), &product,
		cache.WithNamespace(productNamespace),
		cache.WithBackend(cache.BackendObject),
	)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Wrapf(contract.ErrProductNotFound, apperrors.NotFound, "상품을 찾을 수 없습니다 (id=%s)", id)
	}
	return &product, nil
}

// GetProductByMerchant 판매처 색인에서 상품 ID를 찾은 뒤 레코드를 읽습니다.
// 색인과 레코드의 TTL이 따로 흐르므로 어느 한쪽만 만료되어도 찾지 못할 수 있습니다.
func (p *Processor) GetProductByMerchant(ctx context.Context, merchantID, merchantProductID string) (*contract.Product, error) {
	if merchantID == "" || merchantProductID == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "판매처 ID와 판매처 상품 ID는 필수입니다")
	}

	var id string
	ok, err := p.cache.Get(ctx, merchantIndexKey(merchantID, merchantProductID), &id,
		cache.WithNamespace(productNamespace),
		cache.WithBackend(cache.BackendLocal),
	)
	if err != nil {
		return nil, err
	}
	if !ok || id == "" {
		return nil, apperrors.Wrapf(contract.ErrProductNotFound, apperrors.NotFound, "판매처 상품을 찾을 수 없습니다 (merchant_id=%s, merchant_product_id=%s)", merchantID, merchantProductID)
	}

	return p.GetProduct(ctx, id)
}

// GetFeedMetadata 마지막 피드 처리 요약을 반환합니다.
func (p *Processor) GetFeedMetadata(ctx context.Context, feedID string) (*contract.FeedMetadata, error) {
	var metadata contract.FeedMetadata
	ok, err := p.cache.Get(ctx, metadataKey(feedID), &metadata, cache.WithNamespace(feedNamespace))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Wrapf(contract.ErrFeedMetadataNotFound, apperrors.NotFound, "피드 처리 정보를 찾을 수 없습니다 (feed_id=%s)", feedID)
	}
	return &metadata, nil
}

// RefreshProductPrices ids의 상품마다 가격 확인 시각을 갱신하고 다시 저장합니다.
//
// lookup이 주어지고 다른 가격을 알려주면 가격과 할인 정보를 갱신하고 PriceChanges에 기록합니다.
// 상품별로 독립적으로 처리하며, 실패한 상품은 재시도하거나 되돌리지 않고 Failed에 집계합니다.
func (p *Processor) RefreshProductPrices(ctx context.Context, ids []string, lookup contract.PriceLookup) (*contract.RefreshResult, error) {
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"product_count": len(ids),
	})
	logger.Info("가격 재확인 시작")

	defer p.endIndexBatch(logger, p.cache.Batch(cache.BackendLocal))

	result := &contract.RefreshResult{PriceChanges: []contract.PriceChange{}}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, apperrors.Wrap(err, apperrors.ExecutionFailed, "가격 재확인이 중단되었습니다")
		}

		product, err := p.GetProduct(ctx, id)
		if err != nil {
			if !errors.Is(err, contract.ErrProductNotFound) {
				logger.WithFields(applog.Fields{
					"product_id": id,
					"error":      err,
				}).Warn("가격 재확인 실패: 상품을 읽을 수 없습니다")
			}
			result.Failed++
			continue
		}

		product.Metadata.LastPriceCheck = p.now()

		if lookup != nil {
			cents, ok, err := lookup.LookupPrice(ctx, product)
			if err != nil || (ok && cents <= 0) {
				logger.WithFields(applog.Fields{
					"product_id": id,
					"price":      cents,
					"error":      err,
				}).Warn("가격 재확인 실패: 최신 가격을 조회할 수 없습니다")
				result.Failed++
				continue
			}
			if ok && cents != product.Price.Current {
				result.PriceChanges = append(result.PriceChanges, contract.PriceChange{
					ProductID: product.ID,
					OldPrice:  product.Price.Current,
					NewPrice:  cents,
				})
				normalizer.Reprice(product, cents)
			}
		}

		p.storeProduct(ctx, logger, product)
		result.Updated++
	}

	logger.WithFields(applog.Fields{
		"updated":       result.Updated,
		"failed":        result.Failed,
		"price_changes": len(result.PriceChanges),
	}).Info("가격 재확인 완료")

	return result, nil
}

// ClearCache 저장된 모든 상품 레코드와 색인, 피드 처리 요약을 제거합니다.
func (p *Processor) ClearCache(ctx context.Context) error {
	applog.WithComponent(component).Warn("전체 상품 캐시 비우기")

	var errs error
	for _, target := range []struct {
		namespace string
		backend   cache.BackendKind
	}{
		{productNamespace, cache.BackendObject},
		{productNamespace, cache.BackendLocal},
		{feedNamespace, cache.BackendMemory},
	} {
		if err := p.cache.Clear(ctx, cache.WithNamespace(target.namespace), cache.WithBackend(target.backend)); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// CacheStats 캐시 서비스의 누적 통계를 반환합니다.
func (p *Processor) CacheStats() contract.CacheStats {
	return p.cache.Stats()
}
