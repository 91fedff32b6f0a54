package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/darkkaiser/feed-server/internal/config"
	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubMaintainer Sweep 호출 횟수를 기록합니다.
type stubMaintainer struct {
	sweeps atomic.Int32
	err    error
}

func (m *stubMaintainer) Sweep(context.Context) (int, error) {
	m.sweeps.Add(1)
	return 3, m.err
}

func (m *stubMaintainer) Stats() contract.CacheStats {
	return contract.CacheStats{Size: 10, HitRate: 0.5}
}

// =============================================================================
// Constructor
// =============================================================================

func TestNewService(t *testing.T) {
	assert.PanicsWithValue(t, "CacheMaintainer는 필수입니다", func() {
		NewService(config.SweepConfig{}, nil)
	})

	s := NewService(config.SweepConfig{Enabled: true, TimeSpec: "0 */10 * * * *"}, &stubMaintainer{})
	assert.NotNil(t, s)
	assert.False(t, s.running)
}

// =============================================================================
// Lifecycle
// =============================================================================

func TestScheduler_StartRunsSweepAndStops(t *testing.T) {
	m := &stubMaintainer{}
	s := NewService(config.SweepConfig{Enabled: true, TimeSpec: "* * * * * *"}, m)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)

	require.NoError(t, s.Start(ctx, wg))

	assert.Eventually(t, func() bool { return m.sweeps.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	cancel()
	wg.Wait()

	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	assert.False(t, s.running)
	assert.Nil(t, s.cron)
}

func TestScheduler_Disabled(t *testing.T) {
	m := &stubMaintainer{}
	s := NewService(config.SweepConfig{Enabled: false}, m)

	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(context.Background(), wg))

	// 비활성화 상태에서는 Start가 바로 Done을 호출합니다.
	wg.Wait()
	assert.False(t, s.running)
	assert.Zero(t, m.sweeps.Load())
}

func TestScheduler_InvalidTimeSpec(t *testing.T) {
	s := NewService(config.SweepConfig{Enabled: true, TimeSpec: "매일 아침"}, &stubMaintainer{})

	wg := &sync.WaitGroup{}
	wg.Add(1)
	err := s.Start(context.Background(), wg)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.Contains(t, err.Error(), "매일 아침")

	wg.Wait()
	assert.False(t, s.running)
}

func TestScheduler_DuplicateStart(t *testing.T) {
	s := NewService(config.SweepConfig{Enabled: true, TimeSpec: "0 0 * * * *"}, &stubMaintainer{})

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg), "중복 호출은 경고만 남깁니다")

	cancel()
	wg.Wait()
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewService(config.SweepConfig{}, &stubMaintainer{})
	assert.NotPanics(t, s.Stop)
}

func TestScheduler_NilMaintainer(t *testing.T) {
	s := &Scheduler{sweepConfig: config.SweepConfig{Enabled: true, TimeSpec: "0 0 * * * *"}}

	wg := &sync.WaitGroup{}
	wg.Add(1)
	assert.ErrorIs(t, s.Start(context.Background(), wg), ErrCacheMaintainerNotInitialized)
	wg.Wait()
}

// =============================================================================
// sweep
// =============================================================================

func TestScheduler_SweepError(t *testing.T) {
	m := &stubMaintainer{err: errors.New("disk full")}
	s := NewService(config.SweepConfig{}, m)

	assert.NotPanics(t, s.sweep)
	assert.Equal(t, int32(1), m.sweeps.Load())
}
