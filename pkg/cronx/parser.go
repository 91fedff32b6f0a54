// Package cronx 애플리케이션 전역에서 공유하는 Cron 표현식 규칙을 정의합니다.
package cronx

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함하는 6필드 Cron 파서를 반환합니다.
//
// 필드 순서는 [초] [분] [시] [일] [월] [요일]이며 @hourly, @every 1h 같은 Descriptor도 허용합니다.
// 캐시 정리 스케줄("0 */10 * * * *")과 설정 검증이 모두 이 파서를 사용합니다.
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate spec이 StandardParser로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", spec, err)
	}
	return nil
}

// MustSchedule 유효성이 보장된 spec을 cron.Schedule로 변환합니다. 실패 시 패닉이 발생합니다.
func MustSchedule(spec string) cron.Schedule {
	s, err := StandardParser().Parse(spec)
	if err != nil {
		panic(err)
	}
	return s
}
