package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/pkg/cronx"
	"github.com/darkkaiser/feed-server/pkg/validation"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator 커스텀 규칙(cron_spec, cors_origin, backend_driver)을 등록한 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 구조체 필드명 대신 JSON 이름(예: listen_port)이 나오도록 합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "cron_spec", func(fl validator.FieldLevel) bool {
		return cronx.Validate(fl.Field().String()) == nil
	})
	mustRegister(v, "cors_origin", func(fl validator.FieldLevel) bool {
		return validation.ValidateCORSOrigin(fl.Field().String()) == nil
	})
	mustRegister(v, "backend_driver", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case ObjectDriverFile, ObjectDriverDynamoDB, ObjectDriverMemory:
			return true
		}
		return false
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
	}
}

// checkStruct 구조체를 태그 규칙으로 검증하고, 첫 번째 위반 항목을 사용자 친화적인 도메인 에러로 변환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	firstErr := validationErrors[0]

	switch firstErr.Tag() {
	case "cron_spec":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("스케줄 표현식(%s)이 올바르지 않습니다: '%v' (형식: 초 분 시 일 월 요일, 예: 0 */10 * * * *)", firstErr.Field(), firstErr.Value()))
	case "cors_origin":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", firstErr.Value()))
	case "backend_driver":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 객체 저장소 드라이버입니다: '%v' (file, dynamodb, memory 중 하나)", firstErr.Value()))
	}

	switch firstErr.StructField() {
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "API 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
	case "DefaultTTL", "ProductTTL", "IndexTTL", "MetadataTTL", "RequestTimeout":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 값은 0보다 커야 합니다: '%v'", firstErr.Field(), firstErr.Value()))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, firstErr.Namespace(), firstErr.Tag()))
}
