package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// fakeClock 테스트에서 시간 흐름을 직접 제어하는 시계
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// failingBackend 모든 쓰기 작업이 실패하는 백엔드
type failingBackend struct {
	*MemoryBackend
	err error
}

func newFailingBackend() *failingBackend {
	return &failingBackend{MemoryBackend: NewMemoryBackend("failing", 0, nil), err: errors.New("disk full")}
}

func (b *failingBackend) Store(context.Context, string, *Entry) error { return b.err }

type sample struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// interleavingBackend Load가 항목을 돌려준 직후 afterLoad를 한 번 실행하여 다른 호출의 쓰기를 끼워 넣습니다.
// 일괄 정리(removeExpired)를 구현하지 않으므로 Sweep은 키 단위 경로를 사용합니다.
type interleavingBackend struct {
	inner     *MemoryBackend
	afterLoad func()
}

func (b *interleavingBackend) Name() string { return "interleaving" }

func (b *interleavingBackend) Load(ctx context.Context, key string) (*Entry, bool, error) {
	e, ok, err := b.inner.Load(ctx, key)
	if f := b.afterLoad; f != nil {
		b.afterLoad = nil
		f()
	}
	return e, ok, err
}

func (b *interleavingBackend) Store(ctx context.Context, key string, e *Entry) error {
	return b.inner.Store(ctx, key, e)
}

func (b *interleavingBackend) Remove(ctx context.Context, key string) (bool, error) {
	return b.inner.Remove(ctx, key)
}

func (b *interleavingBackend) RemoveExpired(ctx context.Context, key string, now time.Time) (bool, error) {
	return b.inner.RemoveExpired(ctx, key, now)
}

func (b *interleavingBackend) Keys(ctx context.Context) ([]string, error) {
	return b.inner.Keys(ctx)
}

func (b *interleavingBackend) Purge(ctx context.Context) error {
	return b.inner.Purge(ctx)
}
