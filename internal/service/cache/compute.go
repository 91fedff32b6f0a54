package cache

import (
	"context"

	applog "github.com/darkkaiser/feed-server/pkg/log"
)

// GetOrCompute key의 값을 캐시에서 읽고, 없으면 fn으로 계산하여 저장한 뒤 반환합니다.
//
// 같은 백엔드의 같은 전체 키에 대한 동시 호출은 하나로 합쳐져 fn은 한 번만 실행되고,
// 모든 호출자가 그 결과를 공유합니다. fn이 실패하면 아무것도 저장하지 않습니다.
// 계산한 값의 저장에 실패하면 경고만 남기고 값을 그대로 반환합니다.
func GetOrCompute[T any](ctx context.Context, s *Service, key string, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	var cached T
	if ok, err := s.Get(ctx, key, &cached, opts...); err == nil && ok {
		return cached, nil
	}

	o := s.resolve(opts)
	fk := flightKey(o.backend, qualify(o.namespace, key))

	v, err, _ := s.group.Do(fk, func() (any, error) {
		// 앞선 호출이 끝나기 직전에 저장한 값이 있을 수 있으므로 다시 확인합니다.
		var again T
		if ok, err := s.Get(ctx, key, &again, opts...); err == nil && ok {
			return again, nil
		}

		computed, err := fn(ctx)
		if err != nil {
			return computed, err
		}

		if err := s.Set(ctx, key, computed, opts...); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"key":   fk,
				"error": err,
			}).Warn("계산한 값을 캐시에 저장하지 못했습니다")
		}
		return computed, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	res, _ := v.(T)
	return res, nil
}
