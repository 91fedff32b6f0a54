package cache

import (
	"encoding/json"
	"time"
)

// Entry 백엔드에 저장되는 캐시 항목입니다. Value는 JSON으로 직렬화된 값입니다.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt time.Time       `json:"expires_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// Expired now가 만료 시각을 지났으면 true를 반환합니다. 만료 시각과 같은 순간은 아직 유효합니다.
func (e *Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
