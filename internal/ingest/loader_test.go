package ingest

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Parse
// =============================================================================

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		opts      Options
		wantRows  int
		wantSkips int
		wantType  apperrors.ErrorType
	}{
		{"최상위 배열", `[{"productId":"1"},{"productId":"2"}]`, Options{}, 2, 0, apperrors.Unknown},
		{"rows 필드", `{"feed_name":"x","rows":[{"productId":"1"}]}`, Options{}, 1, 0, apperrors.Unknown},
		{"경로 지정", `{"data":{"items":[{"a":1},{"a":2},{"a":3}]}}`, Options{Path: "data.items"}, 3, 0, apperrors.Unknown},
		{"빈 배열", `[]`, Options{}, 0, 0, apperrors.Unknown},
		{"객체가 아닌 원소 건너뛰기", `[{"a":1}, 3, "x", null]`, Options{SkipInvalid: true}, 1, 3, apperrors.Unknown},
		{"객체가 아닌 원소", `[{"a":1}, 3]`, Options{}, 0, 0, apperrors.InvalidInput},
		{"잘못된 JSON", `[{"a":`, Options{}, 0, 0, apperrors.ParsingFailed},
		{"행 배열 없음", `{"items":[]}`, Options{}, 0, 0, apperrors.InvalidInput},
		{"경로에 값 없음", `{"data":{}}`, Options{Path: "data.items"}, 0, 0, apperrors.NotFound},
		{"경로의 값이 배열 아님", `{"data":{"items":{}}}`, Options{Path: "data.items"}, 0, 0, apperrors.InvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := Parse([]byte(tt.data), tt.opts)
			if tt.wantType != apperrors.Unknown {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, tt.wantType), "에러 타입 불일치: %v", err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, result.Rows, tt.wantRows)
			assert.Equal(t, tt.wantSkips, result.Skipped)
		})
	}
}

func TestParse_ValueTypes(t *testing.T) {
	t.Parallel()

	result, err := Parse([]byte(`[{"price": 12.5, "stock": 3, "tags": ["a","b"], "brand": {"name": "Bodum"}, "active": true}]`), Options{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, 12.5, row["price"])
	assert.Equal(t, float64(3), row["stock"])
	assert.Equal(t, []any{"a", "b"}, row["tags"])
	assert.Equal(t, map[string]any{"name": "Bodum"}, row["brand"])
	assert.Equal(t, true, row["active"])
}

// =============================================================================
// LoadFile
// =============================================================================

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("파일 읽기", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "coolblue.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"productId":"900"}]`), 0o644))

		result, err := LoadFile(path, Options{})
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "900", result.Rows[0]["productId"])
	})

	t.Run("파일 없음", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFile(filepath.Join(dir, "missing.json"), Options{})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})
}

func TestFeedIDFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "awin-nl", FeedIDFromPath("/data/feeds/Awin NL.json"))
	assert.Equal(t, "coolblue", FeedIDFromPath("coolblue.json"))
	assert.Equal(t, "slygad-export", FeedIDFromPath("slygad_export"))
}
