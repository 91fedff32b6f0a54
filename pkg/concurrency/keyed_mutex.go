// Package concurrency 키 단위 동기화 도구를 제공합니다.
package concurrency

import "sync"

// KeyedMutex 키마다 독립적인 Mutex를 제공합니다.
// 서로 다른 키에 대한 작업은 병렬로 진행되며, 같은 키에 대한 작업만 직렬화됩니다.
// 참조 카운트가 0이 된 항목은 즉시 맵에서 제거되므로 키 공간이 커도 메모리가 누적되지 않습니다.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*lockEntry
}

type lockEntry struct {
	mu       sync.Mutex
	refCount int
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex[K comparable]() *KeyedMutex[K] {
	return &KeyedMutex[K]{locks: make(map[K]*lockEntry)}
}

// Len 락을 보유 중이거나 대기 중인 키의 개수를 반환합니다.
func (km *KeyedMutex[K]) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}

// Lock 지정된 키의 락을 획득할 때까지 대기합니다.
func (km *KeyedMutex[K]) Lock(key K) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &lockEntry{}
		km.locks[key] = e
	}
	e.refCount++
	km.mu.Unlock()

	e.mu.Lock()
}

// TryLock 대기하지 않고 락 획득을 시도합니다.
// false를 반환한 경우에는 Unlock을 호출해서는 안 됩니다.
func (km *KeyedMutex[K]) TryLock(key K) bool {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		e = &lockEntry{refCount: 1}
		km.locks[key] = e
		e.mu.Lock()
		return true
	}

	if !e.mu.TryLock() {
		return false
	}
	e.refCount++

	return true
}

// Unlock 지정된 키의 락을 해제합니다.
// 잠기지 않은 키에 대해 호출하면 패닉이 발생합니다.
func (km *KeyedMutex[K]) Unlock(key K) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		panic("잠기지 않은 KeyedMutex의 잠금 해제 시도")
	}

	e.mu.Unlock()

	e.refCount--
	if e.refCount <= 0 {
		delete(km.locks, key)
	}
}

// WithLock 키의 락을 보유한 상태에서 fn을 실행합니다.
// fn이 패닉을 일으켜도 락은 해제됩니다.
func (km *KeyedMutex[K]) WithLock(key K, fn func() error) error {
	km.Lock(key)
	defer km.Unlock(key)

	return fn()
}
