package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/feed-server/internal/config"
	"github.com/darkkaiser/feed-server/internal/pkg/version"
	"github.com/darkkaiser/feed-server/internal/service/cache"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/darkkaiser/feed-server/internal/service/feed"
	"github.com/darkkaiser/feed-server/internal/service/normalizer"
	"github.com/darkkaiser/feed-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubCache struct{}

func (stubCache) Stats() contract.CacheStats { return contract.CacheStats{Size: 2, HitRate: 0.5} }

func (stubCache) Sweep(context.Context) (int, error) { return 0, nil }

// newTestAppConfig 임의의 빈 포트에서 API를 여는 설정을 생성합니다.
func newTestAppConfig(t *testing.T) *config.AppConfig {
	t.Helper()

	appConfig := &config.AppConfig{Debug: true}
	appConfig.API.Enabled = true
	appConfig.API.ListenPort = testutil.FreePort(t)
	appConfig.API.CORS.AllowOrigins = []string{"*"}
	appConfig.API.RequestTimeout = 10 * time.Second
	appConfig.API.BodyLimit = "1M"

	return appConfig
}

func newTestService(t *testing.T, appConfig *config.AppConfig) *Service {
	t.Helper()

	cacheService := cache.New(cache.Config{}, nil, nil, nil)
	processor := feed.New(feed.Config{}, normalizer.NewDefaultRegistry(nil), cacheService)

	return NewService(appConfig, processor, cacheService, nil, version.Info{Version: "1.0.0", BuildNumber: "100"})
}

// waitGroupDone wg가 timeout 안에 끝나지 않으면 테스트를 실패시킵니다.
func waitGroupDone(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("서비스 종료 대기 시간 초과")
	}
}

func isRunning(s *Service) bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.running
}

// =============================================================================
// Constructor
// =============================================================================

func TestNewService(t *testing.T) {
	t.Parallel()

	appConfig := &config.AppConfig{}
	cacheService := cache.New(cache.Config{}, nil, nil, nil)
	processor := feed.New(feed.Config{}, normalizer.NewDefaultRegistry(nil), cacheService)

	t.Run("정상 생성", func(t *testing.T) {
		t.Parallel()

		s := NewService(appConfig, processor, cacheService, nil, version.Info{})
		require.NotNil(t, s)
		assert.False(t, isRunning(s))
	})

	t.Run("필수 의존성 누락", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, "AppConfig는 필수입니다", func() {
			NewService(nil, processor, cacheService, nil, version.Info{})
		})
		assert.PanicsWithValue(t, "FeedProcessor는 필수입니다", func() {
			NewService(appConfig, nil, cacheService, nil, version.Info{})
		})
		assert.PanicsWithValue(t, "CacheMaintainer는 필수입니다", func() {
			NewService(appConfig, processor, nil, nil, version.Info{})
		})
	})
}

func TestService_setupServer(t *testing.T) {
	t.Parallel()

	s := newTestService(t, newTestAppConfig(t))
	e := s.setupServer()

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	assert.True(t, registered["GET /health"])
	assert.True(t, registered["POST /api/v1/feeds/:feedId/process"])
	assert.True(t, registered["DELETE /api/v1/cache"])
}

func TestService_handleServerError(t *testing.T) {
	t.Parallel()

	s := newTestService(t, newTestAppConfig(t))

	assert.NotPanics(t, func() {
		s.handleServerError(nil)
		s.handleServerError(http.ErrServerClosed)
		s.handleServerError(errors.New("bind: address already in use"))
	})
}

// =============================================================================
// Lifecycle
// =============================================================================

func TestService_Lifecycle(t *testing.T) {
	appConfig := newTestAppConfig(t)
	s := newTestService(t, appConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	require.NoError(t, testutil.WaitForPort(appConfig.API.ListenPort, 2*time.Second), "서버가 시간 안에 시작되어야 합니다")
	assert.True(t, isRunning(s))

	// 실제 HTTP 요청으로 피드 처리 경로 확인
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	body := `{"feed_name":"Slygad","source_kind":"slygad","rows":[]}`
	resp, err := client.Post(
		fmt.Sprintf("http://127.0.0.1:%d/api/v1/feeds/slygad/process", appConfig.API.ListenPort),
		"application/json",
		strings.NewReader(body),
	)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	shutdownStart := time.Now()
	cancel()
	waitGroupDone(t, wg, 6*time.Second)

	assert.Less(t, time.Since(shutdownStart), 6*time.Second)
	assert.False(t, isRunning(s), "종료 후 running=false")
}

func TestService_DuplicateStart(t *testing.T) {
	appConfig := newTestAppConfig(t)
	s := newTestService(t, appConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	require.NoError(t, testutil.WaitForPort(appConfig.API.ListenPort, 2*time.Second))

	// 이미 실행 중이면 Start 내부에서 wg.Done()을 호출합니다.
	wg.Add(1)
	assert.NoError(t, s.Start(ctx, wg), "중복 시작은 에러 없이 무시되어야 합니다")
	assert.True(t, isRunning(s))

	cancel()
	waitGroupDone(t, wg, 6*time.Second)
}

func TestService_Disabled(t *testing.T) {
	appConfig := newTestAppConfig(t)
	appConfig.API.Enabled = false
	s := newTestService(t, appConfig)

	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(context.Background(), wg))

	waitGroupDone(t, wg, time.Second)
	assert.False(t, isRunning(s), "비활성화된 서비스는 실행 상태가 되지 않아야 합니다")
}

func TestService_UnexpectedExit(t *testing.T) {
	appConfig := newTestAppConfig(t)
	appConfig.API.ListenPort = -1
	s := newTestService(t, appConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	// 리스닝에 실패하면 종료 신호 없이도 서비스가 정리됩니다.
	waitGroupDone(t, wg, 3*time.Second)
	assert.False(t, isRunning(s))
}

func TestService_ConcurrentStart(t *testing.T) {
	appConfig := newTestAppConfig(t)
	s := newTestService(t, appConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := &sync.WaitGroup{}

	const goroutines = 10
	startErrors := make(chan error, goroutines)
	var startWG sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		startWG.Add(1)
		go func() {
			defer startWG.Done()
			startErrors <- s.Start(ctx, wg)
		}()
	}

	require.NoError(t, testutil.WaitForPort(appConfig.API.ListenPort, 5*time.Second))

	startWG.Wait()
	close(startErrors)
	for err := range startErrors {
		assert.NoError(t, err)
	}

	cancel()
	waitGroupDone(t, wg, 10*time.Second)
}
