package cache

import (
	"os"
	"path/filepath"
	"time"

	applog "github.com/darkkaiser/feed-server/pkg/log"
)

const tempFilePattern = "cache-*.tmp"

// writeAtomic 임시 파일 쓰기, fsync, rename, 디렉토리 fsync 순서로 파일을 교체합니다.
// 중간에 프로세스가 종료되어도 기존 파일이나 새 파일 중 하나가 온전히 남습니다.
func writeAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	// Windows에서는 열린 파일을 지울 수 없으므로 Close가 Remove보다 먼저 실행되어야 합니다.
	defer os.Remove(tmpPath)
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := renameWithRetry(tmpPath, filename); err != nil {
		return err
	}

	// 실패해도 데이터는 이미 교체되었으므로 무시합니다.
	if dirFile, err := os.Open(dir); err == nil {
		_ = dirFile.Sync()
		dirFile.Close()
	}

	return nil
}

// renameWithRetry 백신이나 인덱서가 파일을 잠깐 점유하는 환경(Windows)을 위해 짧게 재시도합니다.
func renameWithRetry(oldPath, newPath string) error {
	const maxRetries = 5
	const retryDelay = 10 * time.Millisecond

	var lastErr error
	for range maxRetries {
		err := os.Rename(oldPath, newPath)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(retryDelay)
	}
	return lastErr
}

// cleanupStaleTempFiles 비정상 종료로 남은 지 1시간이 넘은 임시 파일을 지웁니다.
func cleanupStaleTempFiles(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	threshold := time.Now().Add(-1 * time.Hour)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matched, _ := filepath.Match(tempFilePattern, entry.Name()); !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"file":  path,
				"error": err,
			}).Warn("임시 파일 삭제 실패: 이전 실행 잔존 파일")
		}
	}
}
