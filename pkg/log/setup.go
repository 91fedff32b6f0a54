package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileExt = "log"

	defaultDir        = "logs"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	setupOnce      sync.Once
	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 logrus 로거를 초기화합니다. 프로세스 생애 동안 최초 한 번만 실제로 수행되며,
// 이후 호출은 최초 호출의 결과를 그대로 반환합니다.
//
// 반환된 Closer는 main 종료 시점에 defer로 닫아야 합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setup(opts)
	})

	return globalCloser, globalSetupErr
}

func setup(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)

	// 실제 출력은 hook이 담당하므로 기본 출력은 버리고 포맷팅도 생략합니다.
	logrus.SetOutput(io.Discard)
	logrus.SetFormatter(silentFormatter{})

	dir := opts.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	maxSize := opts.MaxSizeMB
	if maxSize == 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := opts.MaxBackups
	if maxBackups == 0 {
		maxBackups = defaultMaxBackups
	}

	newFile := func(suffix string) *lumberjack.Logger {
		name := opts.Name + "." + fileExt
		if suffix != "" {
			name = opts.Name + "." + suffix + "." + fileExt
		}
		return &lumberjack.Logger{
			Filename:   filepath.Join(dir, name),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     opts.MaxAge,
			LocalTime:  true,
		}
	}

	h := &hook{formatter: newTextFormatter(opts.CallerPathPrefix)}

	mainFile := newFile("")
	h.mainWriter = mainFile
	closers := []io.Closer{mainFile}

	if opts.EnableCriticalLog {
		f := newFile("critical")
		h.criticalWriter = f
		closers = append(closers, f)
	}
	if opts.EnableVerboseLog {
		f := newFile("verbose")
		h.verboseWriter = f
		closers = append(closers, f)
	}
	if opts.EnableConsoleLog {
		h.consoleWriter = os.Stdout
	}

	logrus.AddHook(h)

	c := &closer{closers: closers, hook: h}

	// Fatal 로그로 프로세스가 종료되기 직전에 남은 로그를 디스크에 기록합니다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}

func newTextFormatter(callerPathPrefix string) *logrus.TextFormatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
			if callerPathPrefix != "" {
				if cut, ok := strings.CutPrefix(function, callerPathPrefix); ok {
					function = "..." + cut
				}
			}
			return function, ""
		},
	}
}

// silentFormatter 기본 출력(io.Discard)에 대한 불필요한 포맷팅을 생략합니다.
type silentFormatter struct{}

func (silentFormatter) Format(*logrus.Entry) ([]byte, error) {
	return nil, nil
}
