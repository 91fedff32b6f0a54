package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/pkg/concurrency"
)

const objectFileExt = ".json"

// FileObjectBackend 키마다 하나의 JSON 문서를 디렉토리에 보관하는 객체 저장소입니다.
//
// 파일 이름은 키를 16진수로 인코딩한 값이므로 키에 경로 구분자가 있어도 디렉토리를 벗어나지 않습니다.
type FileObjectBackend struct {
	dir   string
	locks *concurrency.KeyedMutex[string]
}

// NewFileObjectBackend dir을 생성하고 이전 실행에서 남은 임시 파일을 정리합니다.
func NewFileObjectBackend(dir string) (*FileObjectBackend, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "객체 캐시 초기화 실패: 절대 경로 변환 불가")
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "객체 캐시 초기화 실패: 디렉토리 접근 불가 (%s)", absDir)
	}

	cleanupStaleTempFiles(absDir)

	return &FileObjectBackend{
		dir:   absDir,
		locks: concurrency.NewKeyedMutex[string](),
	}, nil
}

func (b *FileObjectBackend) Name() string { return "object.file" }

func (b *FileObjectBackend) path(key string) string {
	return filepath.Join(b.dir, hex.EncodeToString([]byte(key))+objectFileExt)
}

func (b *FileObjectBackend) Load(_ context.Context, key string) (*Entry, bool, error) {
	var data []byte
	err := b.locks.WithLock(key, func() error {
		var readErr error
		data, readErr = os.ReadFile(b.path(key))
		return readErr
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, apperrors.Wrapf(err, apperrors.ParsingFailed, "객체 캐시 문서가 손상되었습니다 (key=%s)", key)
	}
	return &e, true, nil
}

func (b *FileObjectBackend) Store(_ context.Context, key string, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return b.locks.WithLock(key, func() error {
		return writeAtomic(b.path(key), data)
	})
}

func (b *FileObjectBackend) Remove(_ context.Context, key string) (bool, error) {
	var removed bool
	err := b.locks.WithLock(key, func() error {
		err := os.Remove(b.path(key))
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err == nil {
			removed = true
		}
		return err
	})
	return removed, err
}

// RemoveExpired 같은 키의 잠금 안에서 문서를 다시 읽어 만료되었을 때만 삭제합니다.
// 손상된 문서는 만료 여부를 알 수 없으므로 그대로 둡니다.
func (b *FileObjectBackend) RemoveExpired(_ context.Context, key string, now time.Time) (bool, error) {
	var removed bool
	err := b.locks.WithLock(key, func() error {
		path := b.path(key)

		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}

		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return apperrors.Wrapf(err, apperrors.ParsingFailed, "객체 캐시 문서가 손상되었습니다 (key=%s)", key)
		}
		if !e.Expired(now) {
			return nil
		}

		err = os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err == nil {
			removed = true
		}
		return err
	})
	return removed, err
}

func (b *FileObjectBackend) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), objectFileExt)
		if entry.IsDir() || !ok {
			continue
		}
		key, err := hex.DecodeString(name)
		if err != nil {
			continue
		}
		keys = append(keys, string(key))
	}
	return keys, nil
}

func (b *FileObjectBackend) Purge(ctx context.Context) error {
	keys, err := b.Keys(ctx)
	if err != nil {
		return err
	}

	var errs error
	for _, k := range keys {
		if _, err := b.Remove(ctx, k); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
