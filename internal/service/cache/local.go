package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	applog "github.com/darkkaiser/feed-server/pkg/log"
)

// defaultBatchFlushInterval 일괄 쓰기 중에도 이 간격마다 한 번은 파일에 반영합니다.
const defaultBatchFlushInterval = time.Second

// LocalBackend 전체 항목을 하나의 JSON 파일로 보관하는 용량 제한 저장소입니다.
//
// 변경이 있을 때마다 파일 전체를 원자적으로 다시 씁니다. 일괄 쓰기(beginBatch ~ endBatch) 중에는
// 변경을 모아 두었다가 flushInterval마다, 그리고 마지막 일괄 쓰기가 끝날 때 한 번에 기록합니다.
//
// 파일 크기는 항목별 직렬화 크기로 미리 계산하므로 maxBytes를 넘는 변경은 기록 시점과 관계없이
// 즉시 ErrQuotaExceeded로 거부되며, 메모리 상태도 변경 전으로 되돌립니다.
type LocalBackend struct {
	path          string
	maxBytes      int64
	flushInterval time.Duration

	mu      sync.Mutex
	entries map[string]*Entry
	sizes   map[string]int64 // 항목별 `"key":{...}` 직렬화 크기
	total   int64            // sizes의 합

	batches  int
	dirty    bool
	lastSync time.Time
	flushes  int
}

// OpenLocalBackend path의 파일을 읽어 LocalBackend를 생성합니다.
// 파일이 없으면 빈 상태로 시작하고, 손상된 파일은 경고를 남긴 뒤 무시합니다.
func OpenLocalBackend(path string, maxBytes int64) (*LocalBackend, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "로컬 캐시 초기화 실패: 절대 경로 변환 불가")
	}

	b := &LocalBackend{
		path:          absPath,
		maxBytes:      maxBytes,
		flushInterval: defaultBatchFlushInterval,
		entries:       make(map[string]*Entry),
		sizes:         make(map[string]int64),
	}

	data, err := os.ReadFile(absPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return b, nil
	case err != nil:
		return nil, apperrors.Wrapf(err, apperrors.System, "로컬 캐시 파일을 읽을 수 없습니다 (path=%s)", absPath)
	}

	loaded := make(map[string]*Entry)
	if err := json.Unmarshal(data, &loaded); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"path":  absPath,
			"error": err,
		}).Warn("로컬 캐시 파일이 손상되어 빈 상태로 시작합니다")

		loaded = make(map[string]*Entry)
	}
	for k, e := range loaded {
		if e == nil {
			continue
		}
		size, err := encodedEntrySize(k, e)
		if err != nil {
			continue
		}
		b.entries[k] = e
		b.sizes[k] = size
		b.total += size
	}

	cleanupStaleTempFiles(filepath.Dir(absPath))

	return b, nil
}

// encodedEntrySize 파일 안에서 한 항목이 차지하는 `"key":{...}` 부분의 크기를 계산합니다.
func encodedEntrySize(key string, e *Entry) (int64, error) {
	k, err := json.Marshal(key)
	if err != nil {
		return 0, err
	}
	v, err := json.Marshal(e)
	if err != nil {
		return 0, err
	}
	return int64(len(k) + 1 + len(v)), nil
}

// encodedFileSize 항목 수와 항목 크기의 합으로 전체 파일 크기를 계산합니다.
func encodedFileSize(entries int, total int64) int64 {
	if entries == 0 {
		return 2
	}
	// 중괄호 두 개와 항목 사이의 쉼표
	return 2 + total + int64(entries-1)
}

func (b *LocalBackend) Name() string { return string(BackendLocal) }

func (b *LocalBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.entries)
}

func (b *LocalBackend) Load(_ context.Context, key string) (*Entry, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return nil, false, nil
	}
	cp := *e
	return &cp, true, nil
}

func (b *LocalBackend) Store(_ context.Context, key string, e *Entry) error {
	cp := *e
	size, err := encodedEntrySize(key, &cp)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "로컬 캐시 직렬화 실패")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	prev, had := b.entries[key]
	prevSize := b.sizes[key]

	count, total := len(b.entries), b.total-prevSize+size
	if !had {
		count++
	}
	if fileSize := encodedFileSize(count, total); b.maxBytes > 0 && fileSize > b.maxBytes {
		return apperrors.Wrapf(ErrQuotaExceeded, apperrors.Unavailable, "로컬 캐시 용량 초과 (size=%d, max=%d)", fileSize, b.maxBytes)
	}

	b.setLocked(key, &cp, size)
	if err := b.commitLocked(); err != nil {
		if had {
			b.setLocked(key, prev, prevSize)
		} else {
			b.deleteLocked(key)
		}
		return err
	}
	return nil
}

func (b *LocalBackend) Remove(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.removeLocked(key)
}

// RemoveExpired 확인과 삭제를 같은 잠금 안에서 수행하므로, 그 사이에 기록된 새 값은 지워지지 않습니다.
func (b *LocalBackend) RemoveExpired(_ context.Context, key string, now time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok || !e.Expired(now) {
		return false, nil
	}
	return b.removeLocked(key)
}

func (b *LocalBackend) removeLocked(key string) (bool, error) {
	prev, had := b.entries[key]
	if !had {
		return false, nil
	}
	prevSize := b.sizes[key]
	b.deleteLocked(key)

	if err := b.commitLocked(); err != nil {
		b.setLocked(key, prev, prevSize)
		return false, err
	}
	return true, nil
}

func (b *LocalBackend) Keys(_ context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func (b *LocalBackend) Purge(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prevEntries, prevSizes, prevTotal := b.entries, b.sizes, b.total
	b.entries = make(map[string]*Entry)
	b.sizes = make(map[string]int64)
	b.total = 0

	if err := b.commitLocked(); err != nil {
		b.entries, b.sizes, b.total = prevEntries, prevSizes, prevTotal
		return err
	}
	return nil
}

func (b *LocalBackend) removeExpired(_ context.Context, isExpired func(*Entry) bool) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	type removedEntry struct {
		e    *Entry
		size int64
	}
	removed := make(map[string]removedEntry)
	for k, e := range b.entries {
		if isExpired(e) {
			removed[k] = removedEntry{e: e, size: b.sizes[k]}
			b.deleteLocked(k)
		}
	}
	if len(removed) == 0 {
		return 0, nil
	}

	if err := b.commitLocked(); err != nil {
		for k, r := range removed {
			b.setLocked(k, r.e, r.size)
		}
		return 0, err
	}
	return len(removed), nil
}

func (b *LocalBackend) beginBatch() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.batches == 0 {
		b.lastSync = time.Now()
	}
	b.batches++
}

// endBatch 마지막 일괄 쓰기가 끝나면 미뤄 둔 변경을 기록합니다.
// 기록에 실패해도 변경은 메모리에 남아 다음 기록 때 다시 시도합니다.
func (b *LocalBackend) endBatch() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.batches > 0 {
		b.batches--
	}
	if b.batches > 0 || !b.dirty {
		return nil
	}
	return b.flushLocked()
}

func (b *LocalBackend) setLocked(key string, e *Entry, size int64) {
	b.total += size - b.sizes[key]
	b.entries[key] = e
	b.sizes[key] = size
}

func (b *LocalBackend) deleteLocked(key string) {
	b.total -= b.sizes[key]
	delete(b.entries, key)
	delete(b.sizes, key)
}

// commitLocked 변경을 파일에 반영합니다. 일괄 쓰기 중이면 직전 기록 후 flushInterval이
// 지나지 않은 변경은 미뤄 둡니다. 호출자가 b.mu를 잡고 있어야 합니다.
func (b *LocalBackend) commitLocked() error {
	b.dirty = true
	if b.batches > 0 && time.Since(b.lastSync) < b.flushInterval {
		return nil
	}
	return b.flushLocked()
}

// flushLocked 현재 상태를 파일에 기록합니다. 호출자가 b.mu를 잡고 있어야 합니다.
func (b *LocalBackend) flushLocked() error {
	data, err := json.Marshal(b.entries)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "로컬 캐시 직렬화 실패")
	}

	if err := writeAtomic(b.path, data); err != nil {
		return apperrors.Wrapf(err, apperrors.System, "로컬 캐시 파일 쓰기 실패 (path=%s)", b.path)
	}

	b.dirty = false
	b.lastSync = time.Now()
	b.flushes++

	return nil
}
