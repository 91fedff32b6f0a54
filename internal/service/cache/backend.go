package cache

import (
	"context"
	"strings"
	"time"
)

// BackendKind 캐시 항목을 보관할 백엔드 계층입니다.
type BackendKind string

const (
	// BackendMemory 프로세스 메모리. 가장 빠르지만 재시작하면 사라집니다.
	BackendMemory BackendKind = "memory"

	// BackendLocal 용량 제한이 있는 로컬 JSON 파일. 상품 색인처럼 작은 값을 보관합니다.
	BackendLocal BackendKind = "local"

	// BackendObject 대용량 상품 레코드용 객체 저장소 (디렉토리, DynamoDB 등)
	BackendObject BackendKind = "object"
)

func (k BackendKind) String() string {
	return string(k)
}

// Backend 캐시 항목의 저장 계층입니다. 키는 네임스페이스가 붙은 전체 키("<ns>:<key>")입니다.
//
// 구현체는 동시에 호출되어도 안전해야 합니다. 만료 판단은 Service가 담당하며,
// Backend는 항목을 있는 그대로 보관합니다.
type Backend interface {
	Name() string

	// Load 항목이 없으면 (nil, false, nil)을 반환합니다.
	Load(ctx context.Context, key string) (*Entry, bool, error)
	Store(ctx context.Context, key string, e *Entry) error
	// Remove 항목이 있었으면 true를 반환합니다.
	Remove(ctx context.Context, key string) (bool, error)
	// RemoveExpired 저장된 항목이 now 기준으로 만료된 경우에만 제거하고, 제거했으면 true를 반환합니다.
	// 확인과 제거는 원자적이어야 합니다. Load 이후 다른 호출이 기록한 새 값은 지우지 않습니다.
	RemoveExpired(ctx context.Context, key string, now time.Time) (bool, error)
	Keys(ctx context.Context) ([]string, error)
	// Purge 모든 항목을 제거합니다.
	Purge(ctx context.Context) error
}

// sizer 항목 수를 바로 알 수 있는 백엔드
type sizer interface {
	Len() int
}

// expiredSweeper 만료 항목을 한 번에 정리할 수 있는 백엔드
type expiredSweeper interface {
	removeExpired(ctx context.Context, isExpired func(*Entry) bool) (int, error)
}

// batcher 연속된 쓰기를 모아 한 번에 영속화할 수 있는 백엔드
type batcher interface {
	beginBatch()
	endBatch() error
}

func qualify(namespace, key string) string {
	return namespace + ":" + key
}

func hasNamespace(key, namespace string) bool {
	return strings.HasPrefix(key, namespace+":")
}
