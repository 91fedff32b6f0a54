// Package ingest 파일로 전달된 원천 피드 행을 읽어 contract.RawRow 목록으로 변환합니다.
//
// 입력 파일은 다음 형식 중 하나여야 합니다:
//   - 행 객체의 JSON 배열: [{...}, {...}]
//   - rows 필드에 배열을 담은 객체: {"rows": [{...}]} (API 요청 본문과 같은 형식)
//   - 경로를 지정한 경우, 그 경로(gjson 문법)가 가리키는 배열: {"data": {"items": [...]}}
package ingest

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/iancoleman/strcase"
	"github.com/tidwall/gjson"
)

const defaultRowsPath = "rows"

// Options 행 배열을 찾는 방법을 지정합니다.
type Options struct {
	// Path 행 배열의 gjson 경로입니다. 비어 있으면 최상위 배열 또는 rows 필드를 사용합니다.
	Path string

	// SkipInvalid true이면 객체가 아닌 원소를 건너뜁니다. false이면 에러를 반환합니다.
	SkipInvalid bool
}

// Result 파일에서 읽은 행과 건너뛴 원소 수입니다.
type Result struct {
	Rows    []contract.RawRow
	Skipped int
}

// LoadFile path의 JSON 파일을 읽어 행 목록을 반환합니다.
func LoadFile(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrapf(err, apperrors.NotFound, "피드 파일을 찾을 수 없습니다: %s", path)
		}
		return nil, apperrors.Wrapf(err, apperrors.System, "피드 파일을 읽을 수 없습니다: %s", path)
	}

	return Parse(data, opts)
}

// Parse JSON 문서에서 행 배열을 찾아 각 원소를 contract.RawRow로 변환합니다.
// 숫자는 encoding/json과 같이 float64로, 중첩 객체는 map[string]any로 해석됩니다.
func Parse(data []byte, opts Options) (*Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, apperrors.New(apperrors.ParsingFailed, "피드 파일이 올바른 JSON 형식이 아닙니다")
	}

	rows, err := locateRows(gjson.ParseBytes(data), opts.Path)
	if err != nil {
		return nil, err
	}

	result := &Result{Rows: make([]contract.RawRow, 0, len(rows.Array()))}

	var elemErr error
	index := 0
	rows.ForEach(func(_, value gjson.Result) bool {
		defer func() { index++ }()

		if !value.IsObject() {
			if opts.SkipInvalid {
				result.Skipped++
				return true
			}
			elemErr = apperrors.Newf(apperrors.InvalidInput, "%d번째 행이 객체가 아닙니다 (type=%s)", index, value.Type)
			return false
		}

		row, ok := value.Value().(map[string]any)
		if !ok {
			elemErr = apperrors.Newf(apperrors.ParsingFailed, "%d번째 행을 해석할 수 없습니다", index)
			return false
		}
		result.Rows = append(result.Rows, contract.RawRow(row))

		return true
	})
	if elemErr != nil {
		return nil, elemErr
	}

	return result, nil
}

func locateRows(root gjson.Result, path string) (gjson.Result, error) {
	if path != "" {
		rows := root.Get(path)
		if !rows.Exists() {
			return gjson.Result{}, apperrors.Newf(apperrors.NotFound, "지정한 경로에 값이 없습니다: %s", path)
		}
		if !rows.IsArray() {
			return gjson.Result{}, apperrors.Newf(apperrors.InvalidInput, "지정한 경로의 값이 배열이 아닙니다: %s", path)
		}
		return rows, nil
	}

	if root.IsArray() {
		return root, nil
	}
	if rows := root.Get(defaultRowsPath); rows.IsArray() {
		return rows, nil
	}

	return gjson.Result{}, apperrors.New(apperrors.InvalidInput, "행 배열을 찾을 수 없습니다. 최상위 배열 또는 rows 필드가 필요합니다")
}

// FeedIDFromPath 파일 이름으로 피드 ID를 만듭니다. 예: "Awin NL.json" → "awin-nl"
func FeedIDFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strcase.ToKebab(name)
}
