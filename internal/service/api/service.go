package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/feed-server/docs"
	"github.com/darkkaiser/feed-server/internal/config"
	"github.com/darkkaiser/feed-server/internal/pkg/version"
	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	"github.com/darkkaiser/feed-server/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/feed-server/internal/service/api/v1"
	v1handler "github.com/darkkaiser/feed-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service 피드 API 서버의 생명주기를 관리하는 서비스입니다.
//
// Echo 기반 HTTP 서버를 고루틴에서 실행하며, serviceStopCtx가 취소되면
// 진행 중인 요청을 마무리할 시간을 준 뒤(Graceful Shutdown) 종료합니다.
type Service struct {
	appConfig *config.AppConfig

	processor   contract.FeedProcessor
	cache       contract.CacheMaintainer
	priceLookup contract.PriceLookup

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. priceLookup은 nil일 수 있습니다.
func NewService(appConfig *config.AppConfig, processor contract.FeedProcessor, cache contract.CacheMaintainer, priceLookup contract.PriceLookup, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if processor == nil {
		panic(constants.PanicMsgFeedProcessorRequired)
	}
	if cache == nil {
		panic(constants.PanicMsgCacheMaintainerRequired)
	}

	return &Service{
		appConfig: appConfig,

		processor:   processor,
		cache:       cache,
		priceLookup: priceLookup,

		buildInfo: buildInfo,

		running:   false,
		runningMu: sync.Mutex{},
	}
}

// Start API 서비스를 시작합니다.
//
// 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
// API가 비활성화되어 있거나 이미 실행 중이면 서버를 띄우지 않고 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if !s.appConfig.API.Enabled {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceDisabled)
		return nil
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 핸들러와 미들웨어 체인, 라우트가 모두 구성된 Echo 인스턴스를 생성합니다.
func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.New(s.cache, s.buildInfo)
	v1Handler := v1handler.NewHandler(s.processor, s.cache, s.priceLookup)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:          s.appConfig.Debug,
		AllowOrigins:   s.appConfig.API.CORS.AllowOrigins,
		RequestTimeout: s.appConfig.API.RequestTimeout,
		BodyLimit:      s.appConfig.API.BodyLimit,
		RateLimit:      s.appConfig.API.RateLimit,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler)

	return e
}

// startHTTPServer HTTP 서버를 시작하고, 서버가 종료되면 done 채널을 닫습니다.
// 서버가 종료될 때까지 반환되지 않습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.API.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
	}).Debug(constants.LogMsgHTTPServerStarting)

	s.handleServerError(e.Start(fmt.Sprintf(":%d", port)))
}

// handleServerError HTTP 서버가 반환한 에러를 기록합니다.
// http.ErrServerClosed는 Graceful Shutdown에 의한 정상 종료입니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(constants.LogMsgHTTPServerFatalError)
}

// waitForShutdown 종료 신호 또는 HTTP 서버의 조기 종료를 기다린 뒤 서비스를 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 먼저 끝났으므로 Shutdown은 호출하지 않습니다.
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
