package cronx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		spec          string
		wantErr       bool
		errorContains string
	}{
		{name: "10분마다", spec: "0 */10 * * * *"},
		{name: "평일 업무 시간", spec: "0 0-30/5 9-17 * * MON-FRI"},
		{name: "앞뒤 공백", spec: " 0 * * * * * "},
		{name: "@hourly", spec: "@hourly"},
		{name: "@every", spec: "@every 1h30m"},
		{name: "5필드 표준 형식", spec: "*/5 * * * *", wantErr: true, errorContains: "expected exactly 6 fields"},
		{name: "7필드", spec: "* * * * * * *", wantErr: true, errorContains: "expected exactly 6 fields"},
		{name: "빈 문자열", spec: "", wantErr: true, errorContains: "empty spec string"},
		{name: "잘못된 문자열", spec: "invalid-cron", wantErr: true, errorContains: "Cron 표현식 파싱 실패"},
		{name: "범위 초과", spec: "70 * * * * *", wantErr: true, errorContains: "Cron 표현식 파싱 실패"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tt.errorContains))
		})
	}
}

func TestStandardParser_Next(t *testing.T) {
	t.Parallel()

	s, err := StandardParser().Parse("0 */10 * * * *")
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 12, 3, 15, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 10, 0, 0, time.UTC), s.Next(base))
}

func TestMustSchedule(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { MustSchedule("@every 1m") })
	assert.Panics(t, func() { MustSchedule("bad") })
}
