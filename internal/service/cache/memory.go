package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend 뮤텍스로 보호되는 프로세스 내 맵입니다.
//
// maxEntries가 0보다 크면 항목 수를 제한합니다. 제한에 도달한 상태에서 새 키를 저장하면
// 만료된 항목을 먼저 버리고, 그래도 자리가 없으면 가장 먼저 만료될 항목을 축출합니다.
type MemoryBackend struct {
	name       string
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]*Entry
}

// NewMemoryBackend now가 nil이면 time.Now를 사용합니다.
func NewMemoryBackend(name string, maxEntries int, now func() time.Time) *MemoryBackend {
	if now == nil {
		now = time.Now
	}
	return &MemoryBackend{
		name:       name,
		maxEntries: maxEntries,
		now:        now,
		entries:    make(map[string]*Entry),
	}
}

func (b *MemoryBackend) Name() string { return b.name }

func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.entries)
}

func (b *MemoryBackend) Load(_ context.Context, key string) (*Entry, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return nil, false, nil
	}
	cp := *e
	return &cp, true, nil
}

func (b *MemoryBackend) Store(_ context.Context, key string, e *Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[key]; !exists && b.maxEntries > 0 && len(b.entries) >= b.maxEntries {
		b.evictLocked()
	}

	cp := *e
	b.entries[key] = &cp

	return nil
}

// evictLocked 항목 하나 이상의 자리를 확보합니다. 호출자가 b.mu를 잡고 있어야 합니다.
func (b *MemoryBackend) evictLocked() {
	now := b.now()
	for k, e := range b.entries {
		if e.Expired(now) {
			delete(b.entries, k)
		}
	}
	if len(b.entries) < b.maxEntries {
		return
	}

	var (
		victim   string
		earliest time.Time
	)
	for k, e := range b.entries {
		if victim == "" || e.ExpiresAt.Before(earliest) || (e.ExpiresAt.Equal(earliest) && k < victim) {
			victim, earliest = k, e.ExpiresAt
		}
	}
	delete(b.entries, victim)
}

func (b *MemoryBackend) Remove(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.entries[key]
	delete(b.entries, key)

	return ok, nil
}

func (b *MemoryBackend) RemoveExpired(_ context.Context, key string, now time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok || !e.Expired(now) {
		return false, nil
	}
	delete(b.entries, key)

	return true, nil
}

func (b *MemoryBackend) Keys(_ context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func (b *MemoryBackend) Purge(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make(map[string]*Entry)

	return nil
}

func (b *MemoryBackend) removeExpired(_ context.Context, isExpired func(*Entry) bool) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for k, e := range b.entries {
		if isExpired(e) {
			delete(b.entries, k)
			removed++
		}
	}
	return removed, nil
}
