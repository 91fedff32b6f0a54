// Package maputil 동적 맵 데이터를 구조체로 변환하는 유틸리티를 제공합니다.
//
// 피드 원본 행(map[string]any)이나 설정 조각처럼 타입이 느슨한 입력을
// mapstructure 태그가 붙은 구조체로 옮길 때 사용합니다.
package maputil

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode input을 새로 생성한 T 구조체로 디코딩하여 반환합니다.
//
// 기본 동작:
//   - 태그: `mapstructure`
//   - 유연한 타입 변환: 55 -> "55", "true" -> true, 1 -> true
//   - 구조체에 없는 키는 무시
//   - "a, b" 형태의 문자열은 []string{"a", "b"}로 분할
//   - "10s" 같은 문자열은 time.Duration으로 변환
func Decode[T any](input any, opts ...Option) (*T, error) {
	output := new(T)
	if err := DecodeTo(input, output, opts...); err != nil {
		return nil, err
	}
	return output, nil
}

// DecodeTo input을 output이 가리키는 구조체에 병합합니다.
// output에 이미 채워진 필드는 input에 해당 키가 없으면 그대로 유지됩니다.
func DecodeTo[T any](input any, output *T, opts ...Option) error {
	if output == nil {
		return errors.New("디코딩 결과를 저장할 output 포인터가 nil입니다")
	}

	cfg := &decodingConfig{
		tagName:          "mapstructure",
		weaklyTypedInput: true,
		splitSeparator:   ",",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          cfg.tagName,
		WeaklyTypedInput: cfg.weaklyTypedInput,
		ErrorUnused:      cfg.errorUnused,
		Squash:           true,
		Metadata:         cfg.metadata,
		DecodeHook:       cfg.buildDecodeHook(),
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("입력 데이터를 %T(으)로 디코딩하는 데 실패했습니다: %w", output, err)
	}

	return nil
}

type decodingConfig struct {
	tagName          string
	weaklyTypedInput bool
	errorUnused      bool
	splitSeparator   string

	metadata   *mapstructure.Metadata
	extraHooks []mapstructure.DecodeHookFunc
}

// buildDecodeHook 사용자 훅을 기본 훅보다 먼저 실행하는 훅 체인을 구성합니다.
func (c *decodingConfig) buildDecodeHook() mapstructure.DecodeHookFunc {
	hooks := make([]mapstructure.DecodeHookFunc, 0, len(c.extraHooks)+3)
	hooks = append(hooks, c.extraHooks...)
	hooks = append(hooks,
		mapstructure.TextUnmarshallerHookFunc(),
		stringToDurationHookFunc(),
		stringToSliceHookFunc(c.splitSeparator),
	)

	return mapstructure.ComposeDecodeHookFunc(hooks...)
}

// Option 디코딩 동작을 변경하는 함수형 옵션입니다.
type Option func(*decodingConfig)

// WithTagName 필드 매핑에 사용할 구조체 태그 이름을 지정합니다. (기본값: "mapstructure")
func WithTagName(tagName string) Option {
	return func(c *decodingConfig) {
		c.tagName = tagName
	}
}

// WithWeaklyTypedInput 느슨한 타입 변환 여부를 지정합니다. (기본값: true)
func WithWeaklyTypedInput(enable bool) Option {
	return func(c *decodingConfig) {
		c.weaklyTypedInput = enable
	}
}

// WithErrorUnused 구조체에 없는 키가 입력에 있으면 에러를 반환합니다. (기본값: false)
func WithErrorUnused(enable bool) Option {
	return func(c *decodingConfig) {
		c.errorUnused = enable
	}
}

// WithSplitSeparator 문자열을 슬라이스로 분할할 때 사용할 구분자를 지정합니다. (기본값: ",")
// 빈 문자열을 지정하면 분할하지 않습니다.
func WithSplitSeparator(sep string) Option {
	return func(c *decodingConfig) {
		c.splitSeparator = sep
	}
}

// WithDecodeHook 기본 훅보다 먼저 실행될 사용자 정의 훅을 추가합니다.
func WithDecodeHook(hooks ...mapstructure.DecodeHookFunc) Option {
	return func(c *decodingConfig) {
		c.extraHooks = append(c.extraHooks, hooks...)
	}
}

// WithMetadata 디코딩에 사용된 키와 사용되지 않은 키를 md에 기록합니다.
func WithMetadata(md *mapstructure.Metadata) Option {
	return func(c *decodingConfig) {
		c.metadata = md
	}
}
