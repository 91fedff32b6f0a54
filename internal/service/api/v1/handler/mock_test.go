package handler

import (
	"context"

	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

// mockFeedProcessor contract.FeedProcessor의 Mock 구현체입니다.
type mockFeedProcessor struct {
	mock.Mock
}

func (m *mockFeedProcessor) ProcessFeed(ctx context.Context, feedID, feedName string, kind contract.SourceKind, rows []contract.RawRow) (*contract.ProcessedFeed, error) {
	args := m.Called(ctx, feedID, feedName, kind, rows)
	if v := args.Get(0); v != nil {
		return v.(*contract.ProcessedFeed), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeedProcessor) GetProduct(ctx context.Context, id string) (*contract.Product, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*contract.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeedProcessor) GetProductByMerchant(ctx context.Context, merchantID, merchantProductID string) (*contract.Product, error) {
	args := m.Called(ctx, merchantID, merchantProductID)
	if v := args.Get(0); v != nil {
		return v.(*contract.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeedProcessor) GetFeedMetadata(ctx context.Context, feedID string) (*contract.FeedMetadata, error) {
	args := m.Called(ctx, feedID)
	if v := args.Get(0); v != nil {
		return v.(*contract.FeedMetadata), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeedProcessor) RefreshProductPrices(ctx context.Context, ids []string, lookup contract.PriceLookup) (*contract.RefreshResult, error) {
	args := m.Called(ctx, ids, lookup)
	if v := args.Get(0); v != nil {
		return v.(*contract.RefreshResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeedProcessor) ClearCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// mockCacheMaintainer contract.CacheMaintainer의 Mock 구현체입니다.
type mockCacheMaintainer struct {
	mock.Mock
}

func (m *mockCacheMaintainer) Stats() contract.CacheStats {
	return m.Called().Get(0).(contract.CacheStats)
}

func (m *mockCacheMaintainer) Sweep(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
