package contract

import (
	"strings"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
)

// SourceKind 원천 피드(제휴 네트워크/판매처)의 종류입니다.
type SourceKind string

const (
	// SourceAwin AWIN 제휴 네트워크 피드입니다. 여러 판매처(merchant)의 상품이 섞여 있습니다.
	SourceAwin SourceKind = "awin"

	// SourceCoolblue Coolblue 단일 판매처 피드입니다.
	SourceCoolblue SourceKind = "coolblue"

	// SourceSlygad Shop Like You Give A Damn 단일 판매처 피드입니다.
	SourceSlygad SourceKind = "slygad"
)

// SourceKinds 지원하는 모든 원천 피드 종류를 반환합니다.
func SourceKinds() []SourceKind {
	return []SourceKind{SourceAwin, SourceCoolblue, SourceSlygad}
}

// ParseSourceKind 대소문자와 앞뒤 공백을 무시하고 SourceKind로 변환합니다.
func ParseSourceKind(s string) (SourceKind, error) {
	k := SourceKind(strings.ToLower(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k SourceKind) IsValid() bool {
	switch k {
	case SourceAwin, SourceCoolblue, SourceSlygad:
		return true
	default:
		return false
	}
}

func (k SourceKind) Validate() error {
	if !k.IsValid() {
		return apperrors.Wrapf(ErrUnknownSourceKind, apperrors.InvalidInput, "지원하지 않는 피드 종류입니다: '%s'", string(k))
	}
	return nil
}

func (k SourceKind) String() string {
	return string(k)
}
