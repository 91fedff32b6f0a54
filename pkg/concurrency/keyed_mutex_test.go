package concurrency

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refCount[K comparable](km *KeyedMutex[K], key K) (int, bool) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		return 0, false
	}
	return e.refCount, true
}

// =============================================================================
// Lock / Unlock
// =============================================================================

func TestKeyedMutex_LockUnlock_CleansUp(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()

	km.Lock("awin:55:123")
	km.Lock("coolblue:900")
	assert.Equal(t, 2, km.Len())

	n, ok := refCount(km, "awin:55:123")
	require.True(t, ok)
	assert.Equal(t, 1, n)

	km.Unlock("awin:55:123")
	km.Unlock("coolblue:900")
	assert.Zero(t, km.Len(), "참조가 없는 키는 제거되어야 합니다")
}

func TestKeyedMutex_Unlock_PanicsWhenNotLocked(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()
	assert.Panics(t, func() { km.Unlock("missing") })
}

func TestKeyedMutex_SameKeySerialized(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("slygad:abc")
			defer km.Unlock("slygad:abc")

			cur := atomic.AddInt32(&active, 1)
			for {
				prev := atomic.LoadInt32(&maxActive)
				if cur <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Zero(t, km.Len())
}

func TestKeyedMutex_DifferentKeysParallel(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[int]()
	km.Lock(1)
	defer km.Unlock(1)

	done := make(chan struct{})
	go func() {
		km.Lock(2)
		km.Unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("다른 키의 락이 차단되었습니다")
	}
}

// =============================================================================
// TryLock
// =============================================================================

func TestKeyedMutex_TryLock(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()

	require.True(t, km.TryLock("k"))
	assert.False(t, km.TryLock("k"), "이미 잠긴 키는 실패해야 합니다")

	n, _ := refCount(km, "k")
	assert.Equal(t, 1, n, "실패한 TryLock은 참조 카운트를 변경하지 않습니다")

	km.Unlock("k")
	assert.True(t, km.TryLock("k"))
	km.Unlock("k")
	assert.Zero(t, km.Len())
}

// =============================================================================
// WithLock
// =============================================================================

func TestKeyedMutex_WithLock(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()
	errBoom := errors.New("boom")

	err := km.WithLock("k", func() error {
		assert.Equal(t, 1, km.Len())
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, km.Len())

	assert.Panics(t, func() {
		_ = km.WithLock("k", func() error { panic("fail") })
	})
	assert.True(t, km.TryLock("k"), "패닉 후에도 락이 해제되어야 합니다")
	km.Unlock("k")
}
