// Package cache 네임스페이스와 TTL을 지원하는 계층형 캐시 서비스를 제공합니다.
//
// 항목은 "<namespace>:<key>" 형태의 전체 키로 세 가지 백엔드 중 하나에 저장됩니다.
//
//   - memory: 프로세스 메모리, 항목 수 제한과 축출 지원
//   - local: 용량 제한이 있는 로컬 JSON 파일
//   - object: 대용량 레코드용 객체 저장소 (디렉토리 / DynamoDB / 메모리)
//
// 만료는 읽는 시점에 확인하며, 만료된 항목은 그 자리에서 삭제되고 조회 실패로 처리됩니다.
// 읽히지 않는 만료 항목은 Sweep이 정리합니다.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"golang.org/x/sync/singleflight"
)

const component = "cache.service"

const (
	defaultNamespace = "feed"
	defaultTTL       = time.Hour
)

// Config 캐시 서비스의 기본 동작입니다.
type Config struct {
	// Namespace WithNamespace를 지정하지 않은 호출에 사용할 네임스페이스
	Namespace string

	// DefaultTTL WithTTL을 지정하지 않은 Set에 사용할 유효 기간
	DefaultTTL time.Duration

	// Now 만료 판단에 사용할 시계. nil이면 time.Now
	Now func() time.Time
}

// Service 백엔드 위에서 네임스페이스, TTL, 통계를 관리합니다. 동시에 사용해도 안전합니다.
type Service struct {
	namespace  string
	defaultTTL time.Duration
	now        func() time.Time

	backends map[BackendKind]Backend

	hits    atomic.Int64
	misses  atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64

	group singleflight.Group
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ contract.CacheMaintainer = (*Service)(nil)

// New 세 백엔드로 캐시 서비스를 생성합니다. nil인 백엔드는 메모리 백엔드로 대체합니다.
func New(cfg Config, memory, local, object Backend) *Service {
	if cfg.Namespace == "" {
		cfg.Namespace = defaultNamespace
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = defaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if memory == nil {
		memory = NewMemoryBackend(string(BackendMemory), 0, cfg.Now)
	}
	if local == nil {
		local = NewMemoryBackend(string(BackendLocal), 0, cfg.Now)
	}
	if object == nil {
		object = NewMemoryBackend("object.memory", 0, cfg.Now)
	}

	return &Service{
		namespace:  cfg.Namespace,
		defaultTTL: cfg.DefaultTTL,
		now:        cfg.Now,
		backends: map[BackendKind]Backend{
			BackendMemory: memory,
			BackendLocal:  local,
			BackendObject: object,
		},
	}
}

func (s *Service) backend(kind BackendKind) (Backend, error) {
	b, ok := s.backends[kind]
	if !ok {
		return nil, apperrors.Wrapf(ErrInvalidBackend, apperrors.InvalidInput, "지원하지 않는 캐시 백엔드입니다: '%s'", string(kind))
	}
	return b, nil
}

// Get key의 값을 dst로 역직렬화합니다. 항목이 없거나 만료되었으면 false를 반환합니다.
// 만료된 항목은 이 호출에서 삭제됩니다.
func (s *Service) Get(ctx context.Context, key string, dst any, opts ...Option) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	o := s.resolve(opts)
	b, err := s.backend(o.backend)
	if err != nil {
		return false, err
	}
	qualified := qualify(o.namespace, key)

	e, ok, err := b.Load(ctx, qualified)
	if err != nil {
		s.misses.Add(1)
		return false, newErrBackendFailed(err, b.Name(), "load")
	}
	if !ok {
		s.misses.Add(1)
		return false, nil
	}

	if now := s.now(); e.Expired(now) {
		// Load 이후 다른 호출이 새 값을 기록했을 수 있으므로 여전히 만료된 경우에만 지웁니다.
		if _, err := b.RemoveExpired(ctx, qualified, now); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"key":     qualified,
				"backend": b.Name(),
				"error":   err,
			}).Warn("만료된 캐시 항목 삭제 실패")
		}
		s.misses.Add(1)
		return false, nil
	}

	if dst != nil {
		if err := json.Unmarshal(e.Value, dst); err != nil {
			s.misses.Add(1)
			return false, newErrUnmarshalFailed(err, qualified)
		}
	}

	s.hits.Add(1)
	return true, nil
}

// Set value를 JSON으로 직렬화하여 저장합니다.
//
// 로컬 백엔드의 용량 초과나 쓰기 실패는 경고 로그만 남기고 nil을 반환합니다.
// 로컬 캐시는 보조 색인이므로 기록하지 못해도 호출자의 처리를 중단하지 않습니다.
func (s *Service) Set(ctx context.Context, key string, value any, opts ...Option) error {
	if key == "" {
		return ErrInvalidKey
	}

	o := s.resolve(opts)
	b, err := s.backend(o.backend)
	if err != nil {
		return err
	}
	qualified := qualify(o.namespace, key)

	data, err := json.Marshal(value)
	if err != nil {
		return newErrMarshalFailed(err, qualified)
	}

	now := s.now()
	e := &Entry{
		Value:     data,
		ExpiresAt: now.Add(o.ttl),
		CreatedAt: now,
	}

	s.sets.Add(1)

	if err := b.Store(ctx, qualified, e); err != nil {
		if o.backend == BackendLocal {
			applog.WithComponentAndFields(component, applog.Fields{
				"key":            qualified,
				"size":           len(data),
				"quota_exceeded": errors.Is(err, ErrQuotaExceeded),
				"error":          err,
			}).Warn("로컬 캐시 저장 실패: 항목을 기록하지 않고 계속 진행합니다")
			return nil
		}
		return newErrBackendFailed(err, b.Name(), "store")
	}

	return nil
}

// Delete key의 항목을 삭제합니다. 항목이 없어도 에러가 아닙니다.
func (s *Service) Delete(ctx context.Context, key string, opts ...Option) error {
	o := s.resolve(opts)
	b, err := s.backend(o.backend)
	if err != nil {
		return err
	}

	if _, err := b.Remove(ctx, qualify(o.namespace, key)); err != nil {
		return newErrBackendFailed(err, b.Name(), "remove")
	}
	s.deletes.Add(1)

	return nil
}

// Clear WithNamespace가 지정되면 해당 네임스페이스의 키만, 아니면 백엔드의 모든 항목을 제거합니다.
func (s *Service) Clear(ctx context.Context, opts ...Option) error {
	o := s.resolve(opts)
	b, err := s.backend(o.backend)
	if err != nil {
		return err
	}

	if !o.namespaceSet {
		if err := b.Purge(ctx); err != nil {
			return newErrBackendFailed(err, b.Name(), "purge")
		}
		applog.WithComponentAndFields(component, applog.Fields{
			"backend": b.Name(),
		}).Info("캐시 백엔드 전체 비우기 완료")
		return nil
	}

	keys, err := b.Keys(ctx)
	if err != nil {
		return newErrBackendFailed(err, b.Name(), "keys")
	}

	endBatch := s.Batch(o.backend)

	var (
		removed int
		errs    error
	)
	for _, k := range keys {
		if !hasNamespace(k, o.namespace) {
			continue
		}
		if _, err := b.Remove(ctx, k); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		removed++
	}
	if err := endBatch(); err != nil {
		errs = errors.Join(errs, err)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"backend":   b.Name(),
		"namespace": o.namespace,
		"removed":   removed,
	}).Info("캐시 네임스페이스 비우기 완료")

	if errs != nil {
		return newErrBackendFailed(errs, b.Name(), "remove")
	}
	return nil
}

// Sweep 모든 백엔드에서 만료된 항목을 제거하고 제거한 개수를 반환합니다.
// 한 백엔드에서 실패해도 나머지 백엔드는 계속 정리합니다.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	now := s.now()

	var (
		total int
		errs  error
	)
	for _, kind := range []BackendKind{BackendMemory, BackendLocal, BackendObject} {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		b := s.backends[kind]
		n, err := sweepBackend(ctx, b, now)
		total += n
		if err != nil {
			errs = errors.Join(errs, newErrBackendFailed(err, b.Name(), "sweep"))
		}
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"removed": total,
	}).Debug("만료된 캐시 항목 정리 완료")

	return total, errs
}

func sweepBackend(ctx context.Context, b Backend, now time.Time) (int, error) {
	if sw, ok := b.(expiredSweeper); ok {
		return sw.removeExpired(ctx, func(e *Entry) bool { return e.Expired(now) })
	}

	keys, err := b.Keys(ctx)
	if err != nil {
		return 0, err
	}

	var (
		removed int
		errs    error
	)
	for _, k := range keys {
		e, ok, err := b.Load(ctx, k)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if !ok || !e.Expired(now) {
			continue
		}
		if ok, err := b.RemoveExpired(ctx, k, now); err != nil {
			errs = errors.Join(errs, err)
		} else if ok {
			removed++
		}
	}
	return removed, errs
}

// Batch kind 백엔드에 이어지는 쓰기를 모아서 기록하도록 하고, 묶음을 끝내는 함수를 반환합니다.
//
// 반환된 함수는 정확히 한 번 호출해야 하며, 그때까지 미뤄 둔 변경을 기록합니다. 여러 호출자가
// 동시에 묶음을 열 수 있고, 마지막 묶음이 끝날 때 기록합니다. 묶음을 지원하지 않는 백엔드에서는
// 아무 일도 하지 않습니다.
func (s *Service) Batch(kind BackendKind) func() error {
	b, ok := s.backends[kind].(batcher)
	if !ok {
		return func() error { return nil }
	}

	b.beginBatch()

	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			if endErr := b.endBatch(); endErr != nil {
				err = newErrBackendFailed(endErr, s.backends[kind].Name(), "flush")
			}
		})
		return err
	}
}

// Stats 누적 통계를 반환합니다. Size는 메모리 백엔드의 항목 수입니다.
func (s *Service) Stats() contract.CacheStats {
	stats := contract.CacheStats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Sets:    s.sets.Load(),
		Deletes: s.deletes.Load(),
		HitRate: s.HitRate(),
	}
	if sz, ok := s.backends[BackendMemory].(sizer); ok {
		stats.Size = sz.Len()
	}
	return stats
}

// HitRate 조회 대비 적중 비율(0~1)을 반환합니다. 조회가 없었으면 0입니다.
func (s *Service) HitRate() float64 {
	hits := s.hits.Load()
	total := hits + s.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// ResetStats 누적 통계를 0으로 되돌립니다. 저장된 항목에는 영향을 주지 않습니다.
func (s *Service) ResetStats() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.sets.Store(0)
	s.deletes.Store(0)
}

// Namespace 서비스 기본 네임스페이스
func (s *Service) Namespace() string {
	return s.namespace
}

// BackendNames 백엔드 종류별 구현체 이름을 반환합니다. (예: object -> "object.dynamodb")
func (s *Service) BackendNames() map[string]string {
	names := make(map[string]string, len(s.backends))
	for kind, b := range s.backends {
		names[string(kind)] = b.Name()
	}
	return names
}

func flightKey(kind BackendKind, qualified string) string {
	return strings.Join([]string{string(kind), qualified}, "|")
}
