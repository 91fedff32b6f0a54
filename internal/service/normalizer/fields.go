package normalizer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/darkkaiser/feed-server/pkg/strutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const categorySeparators = ",;|>"

// wordPattern 태그 후보로 삼는 4글자 이상의 단어
var wordPattern = regexp.MustCompile(`\b\w{4,}\b`)

// giftKeywords 선물 관련 단어를 태그로 추출할 때 사용하는 키워드입니다.
var giftKeywords = strutil.NewKeywordSet("cadeau", "gift", "present", "kado", "relatiegeschenk")

// ExtractCategories 카테고리 값을 목록으로 변환합니다.
// 문자열은 ", ; | >" 중 하나로 분리하고, 배열은 각 항목을 그대로 사용합니다. 빈 항목은 제외합니다.
func ExtractCategories(v any) []string {
	var categories []string

	switch x := v.(type) {
	case nil:
	case string:
		categories = strutil.SplitAny(x, categorySeparators)
	case []string:
		for _, c := range x {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	case []any:
		for _, item := range x {
			if item == nil {
				continue
			}
			if c := strings.TrimSpace(fmt.Sprint(item)); c != "" {
				categories = append(categories, c)
			}
		}
	default:
		categories = strutil.SplitAny(fmt.Sprint(x), categorySeparators)
	}

	if categories == nil {
		return []string{}
	}
	return categories
}

// cleanText 유니코드 정규형(NFC)으로 맞추고 연속된 공백을 정리합니다.
// 같은 상품명이 조합형과 완성형으로 섞여 들어와도 같은 문자열이 됩니다.
func cleanText(s string) string {
	return norm.NFC.String(strutil.NormalizeSpaces(s))
}

// tagSet 입력 순서를 유지하는 소문자 태그 집합입니다.
// cases.Caser는 동시에 사용할 수 없으므로 정규화 호출마다 새로 생성합니다.
type tagSet struct {
	lower cases.Caser
	seen  map[string]struct{}
	tags  []string
}

func newTagSet() *tagSet {
	return &tagSet{lower: cases.Lower(language.Und), seen: make(map[string]struct{})}
}

func (s *tagSet) add(tags ...string) {
	for _, t := range tags {
		t = s.lower.String(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := s.seen[t]; ok {
			continue
		}
		s.seen[t] = struct{}{}
		s.tags = append(s.tags, t)
	}
}

// list 최대 limit개의 태그를 반환합니다.
func (s *tagSet) list(limit int) []string {
	if len(s.tags) > limit {
		return s.tags[:limit]
	}
	if s.tags == nil {
		return []string{}
	}
	return s.tags
}

// matchingWords text에서 keywords 중 하나를 포함하는 단어를 등장 순서대로 반환합니다.
func matchingWords(text string, keywords *strutil.KeywordSet) []string {
	var words []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if keywords.MatchAny(w) {
			words = append(words, w)
		}
	}
	return words
}

// textOf 문자열 또는 배열 값을 하나의 문자열로 이어 붙입니다.
func textOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ",")
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(x)
	}
}

// number 문자열을 실수로 변환합니다. 비어 있거나 해석할 수 없으면 0을 반환합니다.
func number(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// quantity 재고 수량을 변환합니다. 값이 없거나 0 이하이면 nil입니다.
func quantity(s string) *int {
	n := int(number(s))
	if n <= 0 {
		return nil
	}
	return &n
}

// additionalImages 비어 있지 않은 이미지 URL 목록을 반환합니다. 하나도 없으면 nil입니다.
func additionalImages(urls ...string) []string {
	var images []string
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, u)
		}
	}
	return images
}

func isTrueToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	}
	return false
}

func isFalseToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no", "false", "0":
		return true
	}
	return false
}

func clampScore(score float64) int {
	return int(math.Round(math.Min(score, 100)))
}
