// Package strutil 피드 텍스트 정리에 쓰이는 문자열 유틸리티를 제공합니다.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백을 하나로 축약합니다.
// 예: "  hello   world  " -> "hello world"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitAny seps에 포함된 문자 중 하나라도 만나면 분리한 뒤,
// 각 항목의 앞뒤 공백을 제거하고 빈 항목은 제외합니다. 결과가 없으면 nil을 반환합니다.
// 예: SplitAny("a, b;c|", ",;|") -> ["a", "b", "c"]
func SplitAny(s, seps string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})

	var result []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			result = append(result, f)
		}
	}
	return result
}

// FirstNonEmpty 공백을 제거했을 때 비어있지 않은 첫 번째 값을 반환합니다.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Unique 입력 순서를 유지하면서 중복과 빈 문자열을 제거합니다.
func Unique(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Truncate 문자열을 최대 maxRunes 글자로 자릅니다. 잘린 경우 말줄임표(…)를 덧붙입니다.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	runes := []rune(s)
	return string(runes[:maxRunes]) + "…"
}

// MaskSensitiveData 자격 증명 등을 로그에 남길 때 일부만 보이도록 가립니다.
func MaskSensitiveData(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}
