// Package testutil 여러 패키지의 테스트가 함께 사용하는 보조 함수를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"testing"
	"time"
)

// FreePort 테스트 서버가 사용할 수 있는 임의의 TCP 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("사용 가능한 포트를 찾지 못했습니다: %v", err)
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForPort 주어진 포트에서 연결을 받을 수 있을 때까지 대기합니다.
func WaitForPort(port int, timeout time.Duration) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}

	return fmt.Errorf("%s 포트가 %v 안에 열리지 않았습니다", addr, timeout)
}
