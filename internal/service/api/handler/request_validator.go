// Package handler API 핸들러들이 공유하는 요청 검증 기능을 제공합니다.
package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator 초기화된 validator 인스턴스를 반환합니다.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// 에러 메시지의 필드명으로 korean 태그를, 없으면 json 태그를 사용합니다.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})

	return validate
}

// ValidateRequest 구조체의 validate 태그를 기반으로 검증을 수행합니다.
func ValidateRequest(req any) error {
	return getValidator().Struct(req)
}

// RequestValidator echo.Validator 구현체입니다. c.Validate(req) 호출 시 ValidateRequest로 위임합니다.
type RequestValidator struct{}

func (RequestValidator) Validate(i any) error {
	return ValidateRequest(i)
}

// FormatValidationError validator 에러를 한글 메시지로 변환합니다.
// 여러 필드가 실패한 경우 첫 번째 에러만 사용합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := fieldErr.Field()
	isString := fieldErr.Kind() == reflect.String

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", fieldName)
	case "min":
		if isString {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최소 %s개 이상이어야 합니다", fieldName, fieldErr.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최대 %s개까지 입력 가능합니다", fieldName, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s는 다음 중 하나여야 합니다: %s", fieldName, fieldErr.Param())
	default:
		return fmt.Sprintf("%s 검증 실패: %s", fieldName, fieldErr.Tag())
	}
}
