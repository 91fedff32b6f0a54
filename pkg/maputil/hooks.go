package maputil

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

var durationType = reflect.TypeOf(time.Duration(0))

// stringToSliceHookFunc 구분자로 이어진 문자열을 슬라이스로 분할합니다.
// 각 요소의 앞뒤 공백은 제거하고, 빈 요소는 버립니다. []byte 대상은 분할하지 않습니다.
func stringToSliceHookFunc(sep string) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if sep == "" || f.Kind() != reflect.String {
			return data, nil
		}
		if t.Kind() != reflect.Slice || t.Elem().Kind() == reflect.Uint8 {
			return data, nil
		}

		s := reflect.ValueOf(data).String()
		parts := strings.Split(s, sep)
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
}

// stringToDurationHookFunc "10s", "1h" 같은 문자열을 time.Duration으로 변환합니다.
// 정확히 time.Duration 타입인 대상에만 적용되며, 해석할 수 없는 값은 기본 로직에 넘깁니다.
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != durationType {
			return data, nil
		}

		d, err := time.ParseDuration(strings.TrimSpace(reflect.ValueOf(data).String()))
		if err != nil {
			return data, nil
		}
		return d, nil
	}
}
