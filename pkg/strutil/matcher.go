package strutil

import "strings"

// KeywordSet 대소문자를 구분하지 않는 부분 문자열 키워드 집합입니다.
//
// 생성 시점에 키워드를 정리해 두므로 같은 집합으로 많은 상품 텍스트를 검사할 때 반복 비용이 없습니다.
type KeywordSet struct {
	keywords []string
}

// NewKeywordSet 빈 키워드를 제외하고 소문자로 정규화한 KeywordSet을 생성합니다.
func NewKeywordSet(keywords ...string) *KeywordSet {
	ks := &KeywordSet{keywords: make([]string, 0, len(keywords))}
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			ks.keywords = append(ks.keywords, k)
		}
	}
	return ks
}

// MatchAny s에 키워드가 하나라도 포함되어 있으면 true를 반환합니다.
func (ks *KeywordSet) MatchAny(s string) bool {
	for _, k := range ks.keywords {
		if containsFold(s, k) {
			return true
		}
	}
	return false
}

// Matches s에 포함된 키워드를 등록 순서대로 반환합니다.
func (ks *KeywordSet) Matches(s string) []string {
	var found []string
	for _, k := range ks.keywords {
		if containsFold(s, k) {
			found = append(found, k)
		}
	}
	return found
}

// containsFold s가 substr을 대소문자 구분 없이 포함하는지 검사합니다.
// 대소문자 변환 시 바이트 길이가 같은 문자 집합(ASCII, 라틴 확장, 한글 등)을 전제로 합니다.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}

	for i := range s {
		if i+len(substr) > len(s) {
			break
		}
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return true
		}
	}
	return false
}
