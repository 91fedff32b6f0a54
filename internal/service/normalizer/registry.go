package normalizer

import (
	"time"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/service/contract"
)

// Registry 피드 종류별 정규화기 조회 테이블입니다. 생성 이후에는 읽기 전용이므로 동시에 사용해도 안전합니다.
type Registry struct {
	normalizers map[contract.SourceKind]Normalizer
}

// NewRegistry 주어진 정규화기로 Registry를 생성합니다. 같은 종류가 여러 번 주어지면 마지막 것을 사용합니다.
func NewRegistry(normalizers ...Normalizer) *Registry {
	r := &Registry{normalizers: make(map[contract.SourceKind]Normalizer, len(normalizers))}
	for _, n := range normalizers {
		if n == nil {
			continue
		}
		r.normalizers[n.Kind()] = n
	}
	return r
}

// NewDefaultRegistry 지원하는 모든 피드 종류의 정규화기를 등록합니다.
func NewDefaultRegistry(now func() time.Time) *Registry {
	return NewRegistry(
		NewAwin(now),
		NewCoolblue(now),
		NewSlygad(now),
	)
}

// Lookup kind에 해당하는 정규화기를 반환합니다.
// 등록되지 않은 종류이면 contract.ErrUnknownSourceKind를 감싼 에러를 반환합니다.
func (r *Registry) Lookup(kind contract.SourceKind) (Normalizer, error) {
	n, ok := r.normalizers[kind]
	if !ok {
		return nil, apperrors.Wrapf(contract.ErrUnknownSourceKind, apperrors.InvalidInput, "등록된 정규화기가 없는 피드 종류입니다: '%s'", string(kind))
	}
	return n, nil
}

// Kinds 등록된 피드 종류를 정해진 순서로 반환합니다.
func (r *Registry) Kinds() []contract.SourceKind {
	var kinds []contract.SourceKind
	for _, k := range contract.SourceKinds() {
		if _, ok := r.normalizers[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
