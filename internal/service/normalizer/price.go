package normalizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/darkkaiser/feed-server/internal/service/contract"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const defaultCurrency = "EUR"

var dutchPrinter = message.NewPrinter(language.Dutch)

// ParsePrice 가격 값을 최소 통화 단위(센트)로 변환합니다.
//
// 숫자는 그대로, 문자열은 통화 기호(€ $ £)와 공백을 제거한 뒤 해석합니다.
// 쉼표만 있으면 소수점으로 간주하고("9,99" -> 999), 점과 쉼표가 함께 있으면 가장 오른쪽 기호를
// 소수점으로, 나머지를 천 단위 구분자로 봅니다("1.234,56" -> 123456, "1,234.56" -> 123456).
// 음수이거나 해석할 수 없는 값은 에러를 반환합니다.
func ParsePrice(v any) (int64, error) {
	var f float64

	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := parsePriceString(x)
		if err != nil {
			return 0, err
		}
		f = parsed
	case nil:
		return 0, fmt.Errorf("가격 값이 없습니다")
	default:
		return 0, fmt.Errorf("지원하지 않는 가격 형식입니다: %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("유효하지 않은 가격입니다: %v", v)
	}

	// 2^63 이상은 int64로 변환할 수 없습니다.
	cents := math.Round(f * 100)
	if cents >= math.MaxInt64 {
		return 0, fmt.Errorf("가격이 허용 범위를 벗어났습니다: %v", v)
	}

	return int64(cents), nil
}

func parsePriceString(raw string) (float64, error) {
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '€' || r == '$' || r == '£':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, raw)

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("가격 문자열을 해석할 수 없습니다: %q", raw)
	}
	return f, nil
}

// FormatPrice 센트 금액을 표시용 문자열로 변환합니다.
// EUR은 "€ 9,99" 형식으로, 그 외 통화는 네덜란드어 로케일의 통화 표기로 출력합니다.
func FormatPrice(cents int64, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = defaultCurrency
	}

	if code == defaultCurrency {
		return fmt.Sprintf("€ %d,%02d", cents/100, cents%100)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %d,%02d", code, cents/100, cents%100)
	}

	return dutchPrinter.Sprint(currency.Symbol(unit.Amount(float64(cents) / 100)))
}

// CalculateDiscount 할인율(%)을 반올림하여 반환합니다. 원래 가격이 현재 가격보다 크지 않으면 0입니다.
func CalculateDiscount(current, original int64) int {
	if original <= 0 || original <= current {
		return 0
	}
	return int(math.Round(float64(original-current) / float64(original) * 100))
}

// Reprice 상품의 현재 가격을 cents로 바꾸고 표시 문자열과 할인 정보를 다시 계산합니다.
// 원래 가격과 인기 점수는 유지합니다.
func Reprice(p *contract.Product, cents int64) {
	p.Price.Current = cents
	p.Price.Formatted = FormatPrice(cents, p.Price.Currency)
	p.Computed = computed(cents, p.Price.Original, p.Computed.PopularityScore)
}
