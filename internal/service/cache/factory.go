package cache

import (
	"context"
	"time"

	"github.com/darkkaiser/feed-server/internal/config"
	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	applog "github.com/darkkaiser/feed-server/pkg/log"
)

// NewFromConfig 설정에 따라 백엔드를 구성하고 캐시 서비스를 생성합니다.
func NewFromConfig(ctx context.Context, cfg config.CacheConfig, now func() time.Time) (*Service, error) {
	memory := NewMemoryBackend(string(BackendMemory), cfg.Memory.MaxEntries, now)

	local, err := OpenLocalBackend(cfg.Local.Path, cfg.Local.MaxBytes)
	if err != nil {
		return nil, err
	}

	object, err := newObjectBackend(ctx, cfg.Object, now)
	if err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"namespace":   cfg.Namespace,
		"default_ttl": cfg.DefaultTTL.String(),
		"max_entries": cfg.Memory.MaxEntries,
		"local_path":  cfg.Local.Path,
		"object":      object.Name(),
	}).Info("캐시 서비스 구성 완료")

	return New(Config{
		Namespace:  cfg.Namespace,
		DefaultTTL: cfg.DefaultTTL,
		Now:        now,
	}, memory, local, object), nil
}

func newObjectBackend(ctx context.Context, cfg config.ObjectCacheConfig, now func() time.Time) (Backend, error) {
	switch cfg.Driver {
	case config.ObjectDriverFile:
		return NewFileObjectBackend(cfg.Dir)

	case config.ObjectDriverDynamoDB:
		client, err := NewDynamoDBClient(ctx, cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint)
		if err != nil {
			return nil, err
		}
		return NewDynamoDBObjectBackend(client, cfg.DynamoDB.Table), nil

	case config.ObjectDriverMemory:
		return NewMemoryBackend("object.memory", 0, now), nil

	default:
		return nil, apperrors.Wrapf(ErrInvalidBackend, apperrors.InvalidInput, "지원하지 않는 객체 캐시 드라이버입니다: '%s'", cfg.Driver)
	}
}
