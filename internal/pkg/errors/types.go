package errors

import "strconv"

// ErrorType 에러의 분류입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러 (기본값)
	Unknown ErrorType = iota

	// Internal 내부 로직 오류
	Internal

	// System 디스크, 네트워크, 외부 저장소 등 인프라 오류
	System

	// InvalidInput 잘못된 입력값
	InvalidInput

	// Conflict 리소스 충돌
	Conflict

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// ExecutionFailed 작업 수행 실패
	ExecutionFailed

	// ParsingFailed 데이터 해석 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 일시적으로 사용할 수 없음
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	InvalidInput:    "InvalidInput",
	Conflict:        "Conflict",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
