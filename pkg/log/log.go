// Package log logrus 기반의 전역 로깅 시스템을 제공합니다.
//
// Setup으로 파일 로테이션(lumberjack)과 레벨별 파일 분리를 구성하고,
// 각 컴포넌트는 WithComponent / WithComponentAndFields로 "component" 필드가 붙은 Entry를 사용합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

const componentKey = "component"

// StandardLogger 전역 logrus 로거를 반환합니다.
// echo, cron 등 외부 라이브러리의 로거 어댑터에 주입할 때 사용합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetLevel 전역 로그 레벨을 변경합니다.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// WithFields 주어진 필드를 포함한 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// WithComponent component 필드를 포함한 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField(componentKey, component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 Entry를 반환합니다.
// 호출자가 넘긴 fields 맵은 변경하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[componentKey] = component

	return logrus.WithFields(merged)
}
