package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/darkkaiser/feed-server/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// captureLogs 전역 로거 출력을 JSON 형식으로 버퍼에 기록합니다.
// 전역 상태를 변경하므로 이 함수를 사용하는 테스트는 병렬로 실행하지 않습니다.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	return &buf
}

// logEntries 버퍼에 기록된 JSON 로그를 한 줄씩 해석합니다.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())

	return entries
}

// newEcho 실제 서버와 같은 전역 에러 처리 방식을 사용하는 Echo 인스턴스를 생성합니다.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httputil.ErrorHandler
	return e
}
