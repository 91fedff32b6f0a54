package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/feed-server/internal/config"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/darkkaiser/feed-server/pkg/cronx"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// sweepTimeout 한 번의 만료 캐시 정리에 허용하는 최대 시간
const sweepTimeout = time.Minute

// Scheduler 설정된 Cron 스케줄에 맞춰 만료된 캐시 항목을 정리하는 서비스입니다.
//
// 캐시는 읽는 시점에만 만료를 확인하므로, 다시 읽히지 않는 항목은 이 서비스가 주기적으로 제거합니다.
type Scheduler struct {
	sweepConfig config.SweepConfig

	cron *cron.Cron

	// maintainer 만료 항목 정리를 실제로 수행하는 캐시입니다.
	maintainer contract.CacheMaintainer

	running   bool
	runningMu sync.Mutex
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ contract.Service = (*Scheduler)(nil)

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(sweepConfig config.SweepConfig, maintainer contract.CacheMaintainer) *Scheduler {
	if maintainer == nil {
		panic("CacheMaintainer는 필수입니다")
	}

	return &Scheduler{
		sweepConfig: sweepConfig,
		maintainer:  maintainer,
	}
}

// Start 캐시 정리 작업을 Cron 엔진에 등록하고 스케줄러를 시작합니다.
// 정리 작업이 비활성화되어 있으면 아무것도 등록하지 않고 바로 종료를 알립니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.maintainer == nil {
		serviceStopWG.Done()
		return ErrCacheMaintainerNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	if !s.sweepConfig.Enabled {
		serviceStopWG.Done()
		applog.WithComponent(component).Info("만료 캐시 정리 작업이 비활성화되어 있어 Scheduler 서비스를 시작하지 않습니다")
		return nil
	}

	// - StandardParser: 초 단위 스케줄링 지원 (6개 필드: 초 분 시 일 월 요일)
	// - Recover: Panic 발생 시 복구하여 다음 스케줄에 영향을 주지 않음
	// - SkipIfStillRunning: 이전 정리가 끝나지 않았으면 이번 실행을 건너뜀
	logger := cron.VerbosePrintfLogger(applog.StandardLogger())
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	if _, err := c.AddFunc(s.sweepConfig.TimeSpec, s.sweep); err != nil {
		serviceStopWG.Done()
		return NewErrInvalidCronSpec(s.sweepConfig.TimeSpec, err)
	}

	s.cron = c
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": s.sweepConfig.TimeSpec,
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 중지하고 진행 중인 정리 작업이 끝날 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// sweep 진행 중인 정리가 서비스 종료 신호로 끊기지 않도록 서비스 컨텍스트와 분리된 컨텍스트를 사용합니다.
// cron.Stop()이 실행 중인 작업의 완료를 기다리므로 종료는 최대 sweepTimeout만큼 지연될 수 있습니다.
func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	started := time.Now()
	removed, err := s.maintainer.Sweep(ctx)

	fields := applog.Fields{
		"removed":     removed,
		"duration_ms": time.Since(started).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("만료 캐시 정리 실패")
		return
	}

	stats := s.maintainer.Stats()
	fields["cache_size"] = stats.Size
	fields["hit_rate"] = stats.HitRate
	applog.WithComponentAndFields(component, fields).Info("만료 캐시 정리 완료")
}
