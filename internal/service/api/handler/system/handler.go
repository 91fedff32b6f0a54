// Package system 헬스체크, 버전 정보 등 시스템 수준의 엔드포인트 핸들러를 제공합니다.
package system

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/darkkaiser/feed-server/internal/pkg/version"
	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	"github.com/darkkaiser/feed-server/internal/service/api/model/system"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	cache contract.CacheMaintainer

	buildInfo version.Info

	serverStartTime time.Time
}

// New Handler 인스턴스를 생성합니다.
func New(cache contract.CacheMaintainer, buildInfo version.Info) *Handler {
	if cache == nil {
		panic(constants.PanicMsgCacheMaintainerRequired)
	}

	return &Handler{
		cache: cache,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 캐시 계층의 상태를 확인합니다. 모니터링 시스템에서 사용됩니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	start := time.Now()
	stats := h.cache.Stats()

	deps := map[string]system.DependencyStatus{
		constants.DependencyCache: {
			Status:    constants.HealthStatusHealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Message:   fmt.Sprintf("저장된 항목 %d개, 적중률 %.2f", stats.Size, stats.HitRate),
		},
	}

	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	goVersion := h.buildInfo.GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   goVersion,
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
	})
}
