package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 옵션입니다.
type Options struct {
	Name  string // 로그 파일명 접두어로 사용할 애플리케이션 식별자
	Dir   string // 로그 파일 디렉토리 (빈 값이면 "logs")
	Level Level  // 최소 기록 레벨 (0이면 InfoLevel)

	MaxAge     int // 로테이션된 파일 보관 일수 (0: 삭제 안 함)
	MaxSizeMB  int // 파일 하나의 최대 크기 (0: 100MB)
	MaxBackups int // 보관할 로테이션 파일 수 (0: 20개)

	EnableCriticalLog bool // ERROR 이상을 <name>.critical.log 로 추가 기록
	EnableVerboseLog  bool // DEBUG 이하를 <name>.verbose.log 로 분리 기록
	EnableConsoleLog  bool // 모든 레벨을 표준 출력으로도 기록

	// ReportCaller 로그를 남긴 함수와 라인 번호를 함께 기록합니다.
	ReportCaller bool

	// CallerPathPrefix 호출자 함수 경로에서 잘라낼 접두어입니다.
	// 예: "github.com/darkkaiser/feed-server" -> ".../internal/service/feed.(*Processor).ProcessFeed"
	CallerPathPrefix string
}

// Validate 옵션 값의 유효성을 검사합니다.
func (o *Options) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if o.Dir != "" {
		if fi, err := os.Stat(o.Dir); err == nil && !fi.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", o.Dir)
		}
	}

	switch {
	case o.MaxAge < 0:
		return fmt.Errorf("MaxAge는 0 이상이어야 합니다: %d", o.MaxAge)
	case o.MaxSizeMB < 0:
		return fmt.Errorf("MaxSizeMB는 0 이상이어야 합니다: %d", o.MaxSizeMB)
	case o.MaxBackups < 0:
		return fmt.Errorf("MaxBackups는 0 이상이어야 합니다: %d", o.MaxBackups)
	}

	return nil
}

// NewProductionOptions 운영 환경용 옵션을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser/feed-server",
	}
}

// NewDevelopmentOptions 개발 환경용 옵션을 반환합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableConsoleLog: true,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser/feed-server",
	}
}
