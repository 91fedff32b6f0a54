package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/darkkaiser/feed-server/internal/config"
	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/service/cache"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/darkkaiser/feed-server/internal/service/feed"
	"github.com/darkkaiser/feed-server/internal/service/normalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Flags
// =============================================================================

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		want     cliOptions
		wantType apperrors.ErrorType
	}{
		{
			name: "서버 모드 기본값",
			args: nil,
			want: cliOptions{ConfigFile: config.DefaultFilename},
		},
		{
			name: "가져오기 모드 기본 피드 ID",
			args: []string{"-import", "/tmp/Awin NL.json", "-source", "awin"},
			want: cliOptions{
				ConfigFile: config.DefaultFilename,
				ImportFile: "/tmp/Awin NL.json",
				Source:     "awin",
				FeedID:     "awin-nl",
				FeedName:   "awin-nl",
			},
		},
		{
			name: "가져오기 모드 전체 지정",
			args: []string{"-config", "dev.json", "-import", "rows.json", "-source", "coolblue", "-feed-id", "cb", "-feed-name", "Coolblue NL", "-rows-path", "data.items"},
			want: cliOptions{
				ConfigFile: "dev.json",
				ImportFile: "rows.json",
				Source:     "coolblue",
				FeedID:     "cb",
				FeedName:   "Coolblue NL",
				RowsPath:   "data.items",
			},
		},
		{
			name:     "피드 종류 누락",
			args:     []string{"-import", "rows.json"},
			wantType: apperrors.InvalidInput,
		},
		{
			name:     "알 수 없는 플래그",
			args:     []string{"-unknown"},
			wantType: apperrors.InvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseFlags(tt.args)
			if tt.wantType != apperrors.Unknown {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, tt.wantType))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// Import Mode
// =============================================================================

func newProcessor() *feed.Processor {
	return feed.New(feed.Config{}, normalizer.NewDefaultRegistry(nil), cache.New(cache.Config{}, nil, nil, nil))
}

func TestRunImport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "coolblue.json")
	rows := `[
		{"productId": "900", "productName": "Koffiezetapparaat", "price": 49.99,
		 "url": "https://www.coolblue.nl/product/900", "imageUrl": "https://image.coolblue.nl/900.jpg"},
		"not-a-row"
	]`
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))

	var out bytes.Buffer
	err := runImport(context.Background(), cliOptions{
		ImportFile: path,
		Source:     "coolblue",
		FeedID:     "coolblue",
		FeedName:   "Coolblue NL",
	}, newProcessor(), &out)
	require.NoError(t, err)

	var result contract.ProcessedFeed
	require.NoError(t, json.Unmarshal(out.Bytes(), &result), "출력은 처리 결과 JSON이어야 합니다")
	assert.Equal(t, "coolblue", result.Metadata.FeedID)
	assert.Equal(t, "Coolblue NL", result.Metadata.FeedName)
	assert.Equal(t, 1, result.Metadata.TotalProducts, "객체가 아닌 원소는 행으로 세지 않습니다")
}

func TestRunImport_Errors(t *testing.T) {
	t.Parallel()

	t.Run("알 수 없는 피드 종류", func(t *testing.T) {
		t.Parallel()

		err := runImport(context.Background(), cliOptions{ImportFile: "rows.json", Source: "amazon"}, newProcessor(), &bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("파일 없음", func(t *testing.T) {
		t.Parallel()

		err := runImport(context.Background(), cliOptions{
			ImportFile: filepath.Join(t.TempDir(), "missing.json"),
			Source:     "awin",
		}, newProcessor(), &bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})
}
