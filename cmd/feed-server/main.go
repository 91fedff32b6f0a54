package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/darkkaiser/feed-server/internal/config"
	"github.com/darkkaiser/feed-server/internal/ingest"
	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/pkg/version"
	"github.com/darkkaiser/feed-server/internal/service/api"
	"github.com/darkkaiser/feed-server/internal/service/cache"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/darkkaiser/feed-server/internal/service/feed"
	"github.com/darkkaiser/feed-server/internal/service/normalizer"
	"github.com/darkkaiser/feed-server/internal/service/scheduler"
	applog "github.com/darkkaiser/feed-server/pkg/log"
)

// @title Feed Server API
// @version 1.0.0
// @description 제휴 네트워크와 판매처의 상품 피드를 표준 상품 레코드로 정규화하고,
// @description 중복을 제거하여 계층형 TTL 캐시에 저장하는 서버의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 피드 처리 (AWIN, Coolblue, Slygad)
// @description - 상품 ID 및 판매처 상품 번호 기반 조회
// @description - 가격 재확인과 캐시 관리

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser
// @contact.email darkkaiser@gmail.com

// @license.name MIT
// @license.url https://github.com/DarkKaiser/feed-server/blob/master/LICENSE

// @BasePath /

const banner = `
  _____                _   ____
 |  ___|___  ___   __| | / ___|   ___  _ __ __   __ ___  _ __
 | |_  / _ \/ _ \ / _  | \___ \  / _ \| '__|\ \ / // _ \| '__|
 |  _||  __/  __/| (_| |  ___) ||  __/| |    \ V /|  __/| |
 |_|   \___|\___| \__,_| |____/  \___||_|     \_/  \___||_|
                                                     %s
                                                developed by DarkKaiser
--------------------------------------------------------------------------------
`

const component = "main"

// importTimeout 일회성 가져오기 모드의 최대 실행 시간입니다.
const importTimeout = 10 * time.Minute

// cliOptions 명령행 인자입니다. ImportFile이 비어 있으면 서버 모드로 실행합니다.
type cliOptions struct {
	ConfigFile string

	ImportFile string
	Source     string
	FeedID     string
	FeedName   string
	RowsPath   string
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.ConfigFile, "config", config.DefaultFilename, "환경설정 파일 경로")
	fs.StringVar(&opts.ImportFile, "import", "", "한 번만 처리할 피드 행 JSON 파일 (지정 시 서버를 띄우지 않음)")
	fs.StringVar(&opts.Source, "source", "", "피드 종류 (awin, coolblue, slygad)")
	fs.StringVar(&opts.FeedID, "feed-id", "", "피드 ID (기본값: 파일 이름)")
	fs.StringVar(&opts.FeedName, "feed-name", "", "피드 이름 (기본값: 피드 ID)")
	fs.StringVar(&opts.RowsPath, "rows-path", "", "행 배열의 JSON 경로 (예: data.items)")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, apperrors.Wrap(err, apperrors.InvalidInput, "명령행 인자를 해석할 수 없습니다")
	}

	if opts.ImportFile == "" {
		return opts, nil
	}
	if opts.Source == "" {
		return cliOptions{}, apperrors.New(apperrors.InvalidInput, "-import 사용 시 -source는 필수입니다")
	}
	if opts.FeedID == "" {
		opts.FeedID = ingest.FeedIDFromPath(opts.ImportFile)
	}
	if opts.FeedName == "" {
		opts.FeedName = opts.FeedID
	}

	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(2)
	}

	// 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.LoadWithFile(opts.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}
	if opts.ImportFile != "" {
		// 표준 출력은 처리 결과 JSON 전용입니다.
		logOpts.EnableConsoleLog = false
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패: %v\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	buildInfo := version.Get()

	applog.WithComponentAndFields(component, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	cacheService, err := cache.NewFromConfig(context.Background(), appConfig.Cache, nil)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{"error": err}).Error("캐시 서비스 생성 실패")
		fmt.Fprintf(os.Stderr, "[FATAL] 캐시 서비스 생성 실패: %v\n", err)
		os.Exit(1)
	}
	processor := feed.New(feed.ConfigFrom(appConfig.Feed), normalizer.NewDefaultRegistry(nil), cacheService)

	if opts.ImportFile != "" {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		if err := runImport(ctx, opts, processor, os.Stdout); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{"error": err}).Error("피드 가져오기 실패")
			fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf(banner, buildInfo.Version)

	services := []contract.Service{
		scheduler.NewService(appConfig.Scheduler.Sweep, cacheService),
		api.NewService(appConfig, processor, cacheService, nil, buildInfo),
	}

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel()
			serviceStopWG.Wait()

			appLogCloser.Close()
			os.Exit(1)
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent(component).Info("서버 가동 완료")

	<-termC

	applog.WithComponent(component).Info("종료 신호를 수신했습니다")
	cancel()
	serviceStopWG.Wait()
}

// runImport 파일의 행을 한 번 처리하고 처리 결과를 JSON으로 w에 출력합니다.
func runImport(ctx context.Context, opts cliOptions, processor contract.FeedProcessor, w io.Writer) error {
	kind, err := contract.ParseSourceKind(opts.Source)
	if err != nil {
		return err
	}

	loaded, err := ingest.LoadFile(opts.ImportFile, ingest.Options{Path: opts.RowsPath, SkipInvalid: true})
	if err != nil {
		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"file":    opts.ImportFile,
		"feed_id": opts.FeedID,
		"source":  kind,
		"rows":    len(loaded.Rows),
		"skipped": loaded.Skipped,
	}).Info("피드 파일 가져오기 시작")

	result, err := processor.ProcessFeed(ctx, opts.FeedID, opts.FeedName, kind, loaded.Rows)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return apperrors.Wrap(err, apperrors.System, "처리 결과를 출력할 수 없습니다")
	}

	return nil
}
