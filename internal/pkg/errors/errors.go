// Package errors 피드 서버 전반에서 사용하는 분류형 에러(AppError)를 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며, Wrap 계열 함수로 원인 에러를 감싸 문맥을 덧붙일 수 있습니다.
// HTTP 계층은 UnderlyingType으로 에러의 근본 분류를 확인하여 응답 코드를 결정합니다.
//
//	err := errors.New(errors.NotFound, "상품을 찾을 수 없습니다")
//	err = errors.Wrap(err, errors.Internal, "상품 조회 실패")
//	errors.Is(err, errors.NotFound)      // true
//	errors.UnderlyingType(err)           // NotFound
//
// # 타입 선택 기준
//
//   - InvalidInput: 잘못된 설정값, 요청 본문, 원천 피드 행(Raw Row)의 형식 오류
//   - NotFound: 캐시/저장소에 존재하지 않는 상품이나 메타데이터
//   - ParsingFailed: 가격 문자열, JSON 문서 등의 해석 실패
//   - System: 디스크 I/O, 외부 저장소(DynamoDB) 호출 실패
//   - Internal: 호출 규약 위반, 예상하지 못한 상태 (버그로 간주)
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 분류 정보와 원인, 생성 위치의 스택을 함께 보관하는 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

// Type 에러의 분류를 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 원인 에러를 제외한 에러 메시지를 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

// Stack 에러 생성 시점의 호출 스택을 반환합니다.
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Format %+v 동사로 출력하면 에러 체인과 스택 트레이스를 함께 출력합니다.
//
// 스택은 체인의 끝(원인이 없거나 원인이 AppError가 아닌 지점)에서만 출력하여 중복을 막습니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

			var inner *AppError
			if e.cause == nil || !errors.As(e.cause, &inner) {
				writeStack(s, e.stack)
			}

			if e.cause != nil {
				io.WriteString(s, "\nCaused by:\n")
				if f, ok := e.cause.(fmt.Formatter); ok {
					f.Format(s, verb)
				} else {
					fmt.Fprintf(s, "\t%v", e.cause)
				}
			}
			return
		}
		io.WriteString(s, e.Error())
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func writeStack(w io.Writer, frames []StackFrame) {
	if len(frames) == 0 {
		return
	}

	io.WriteString(w, "\nStack trace:")
	for _, f := range frames {
		fn := f.Function
		if idx := strings.LastIndex(fn, "/"); idx != -1 {
			fn = fn[idx+1:]
		}
		fmt.Fprintf(w, "\n\t%s:%d %s", f.File, f.Line, fn)
	}
}

// New 새로운 AppError를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{errType: errType, message: message, stack: captureStack(defaultCallerSkip)}
}

// Newf 포맷 문자열로 메시지를 구성하여 새로운 AppError를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{errType: errType, message: fmt.Sprintf(format, args...), stack: captureStack(defaultCallerSkip)}
}

// Wrap 원인 에러를 감싸는 AppError를 생성합니다. err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{errType: errType, message: message, cause: err, stack: captureStack(defaultCallerSkip)}
}

// Wrapf 포맷 문자열로 메시지를 구성하여 원인 에러를 감쌉니다. err이 nil이면 nil을 반환합니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{errType: errType, message: fmt.Sprintf(format, args...), cause: err, stack: captureStack(defaultCallerSkip)}
}

// Is 에러 체인에 주어진 분류의 AppError가 하나라도 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
	}
	return false
}

// As 표준 errors.As를 그대로 위임합니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 에러 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// UnderlyingType 에러 체인에서 가장 안쪽에 있는 AppError의 분류를 반환합니다.
//
// 체인에 AppError가 없거나 err이 nil이면 Unknown을 반환합니다.
func UnderlyingType(err error) ErrorType {
	t := Unknown
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok {
			t = appErr.errType
		}
	}
	return t
}
