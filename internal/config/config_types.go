package config

import (
	"fmt"
	"time"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// 객체 저장소(object) 백엔드 드라이버
const (
	ObjectDriverFile     = "file"
	ObjectDriverDynamoDB = "dynamodb"
	ObjectDriverMemory   = "memory"
)

const minRecommendedLocalBytes = 64 * 1024

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug     bool            `json:"debug"`
	Cache     CacheConfig     `json:"cache"`
	Feed      FeedConfig      `json:"feed"`
	Scheduler SchedulerConfig `json:"scheduler"`
	API       APIConfig       `json:"api"`
}

// newDefaultConfig 설정 파일에 값이 없을 때 적용되는 기본값을 반환합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		Cache: CacheConfig{
			Namespace:  "feed",
			DefaultTTL: time.Hour,
			Memory:     MemoryCacheConfig{MaxEntries: 10000},
			Local: LocalCacheConfig{
				Path:     "data/cache-local.json",
				MaxBytes: 5 * 1024 * 1024,
			},
			Object: ObjectCacheConfig{
				Driver: ObjectDriverFile,
				Dir:    "data/objects",
				DynamoDB: DynamoDBConfig{
					Table:  "feed-cache",
					Region: "eu-west-1",
				},
			},
		},
		Feed: FeedConfig{
			ProductTTL:  24 * time.Hour,
			IndexTTL:    24 * time.Hour,
			MetadataTTL: time.Hour,
		},
		Scheduler: SchedulerConfig{
			Sweep: SweepConfig{
				Enabled:  true,
				TimeSpec: "0 */10 * * * *",
			},
		},
		API: APIConfig{
			Enabled:    true,
			ListenPort: 8080,
			CORS:       CORSConfig{AllowOrigins: []string{"*"}},
			RateLimit: RateLimitConfig{
				Enabled:   true,
				PerSecond: 20,
				Burst:     40,
			},
			RequestTimeout: 60 * time.Second,
			BodyLimit:      "16M",
		},
	}
}

// validate 태그 규칙 검증 후, 태그로 표현할 수 없는 교차 필드 규칙을 검사합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "애플리케이션 설정"); err != nil {
		return err
	}

	if err := c.Cache.Object.validate(); err != nil {
		return err
	}

	if c.API.Enabled {
		if err := c.API.CORS.validate(); err != nil {
			return err
		}
	}

	return nil
}

// VerifyRecommendations 동작에는 문제가 없지만 운영상 권장되지 않는 설정에 대한 경고 목록을 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.Enabled && c.API.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.API.ListenPort))
	}
	if c.Cache.Local.MaxBytes < minRecommendedLocalBytes {
		warnings = append(warnings, fmt.Sprintf("로컬 캐시 용량(cache.local.max_bytes: %d)이 너무 작습니다. 상품 인덱스 저장이 자주 실패할 수 있습니다", c.Cache.Local.MaxBytes))
	}
	if c.Cache.Memory.MaxEntries == 0 {
		warnings = append(warnings, "메모리 캐시 항목 수 제한(cache.memory.max_entries)이 없습니다. 메모리 사용량이 계속 증가할 수 있습니다")
	}
	if !c.Scheduler.Sweep.Enabled {
		warnings = append(warnings, "캐시 정리 스케줄러가 비활성화되어 있습니다. 만료된 항목은 조회될 때에만 제거됩니다")
	}

	return warnings
}

// CacheConfig 계층형 캐시(memory / local / object) 설정
type CacheConfig struct {
	Namespace  string            `json:"namespace" validate:"required"`
	DefaultTTL time.Duration     `json:"default_ttl" validate:"gt=0"`
	Memory     MemoryCacheConfig `json:"memory"`
	Local      LocalCacheConfig  `json:"local"`
	Object     ObjectCacheConfig `json:"object"`
}

// MemoryCacheConfig 프로세스 메모리 백엔드 설정입니다. MaxEntries가 0이면 제한이 없습니다.
type MemoryCacheConfig struct {
	MaxEntries int `json:"max_entries" validate:"min=0"`
}

// LocalCacheConfig 용량이 제한된 단일 JSON 파일 백엔드 설정
type LocalCacheConfig struct {
	Path     string `json:"path" validate:"required"`
	MaxBytes int64  `json:"max_bytes" validate:"gt=0"`
}

// ObjectCacheConfig 대용량 상품 레코드를 저장하는 객체 저장소 백엔드 설정
type ObjectCacheConfig struct {
	Driver   string         `json:"driver" validate:"backend_driver"`
	Dir      string         `json:"dir" validate:"required_if=Driver file"`
	DynamoDB DynamoDBConfig `json:"dynamodb"`
}

func (c *ObjectCacheConfig) validate() error {
	if c.Driver == ObjectDriverDynamoDB && c.DynamoDB.Table == "" {
		return apperrors.New(apperrors.InvalidInput, "DynamoDB 드라이버 사용 시 테이블 이름(cache.object.dynamodb.table)은 필수입니다")
	}
	return nil
}

// DynamoDBConfig DynamoDB 객체 저장소 설정입니다.
// Endpoint는 로컬 DynamoDB 등 기본 엔드포인트 대신 사용할 주소입니다.
type DynamoDBConfig struct {
	Table    string `json:"table"`
	Region   string `json:"region"`
	Endpoint string `json:"endpoint" validate:"omitempty,url"`
}

// FeedConfig Feed Processor가 저장하는 항목별 TTL
type FeedConfig struct {
	ProductTTL  time.Duration `json:"product_ttl" validate:"gt=0"`
	IndexTTL    time.Duration `json:"index_ttl" validate:"gt=0"`
	MetadataTTL time.Duration `json:"metadata_ttl" validate:"gt=0"`
}

// SchedulerConfig 주기 작업 설정
type SchedulerConfig struct {
	Sweep SweepConfig `json:"sweep"`
}

// SweepConfig 만료 캐시 정리 작업 설정
type SweepConfig struct {
	Enabled  bool   `json:"enabled"`
	TimeSpec string `json:"time_spec" validate:"required_if=Enabled true,omitempty,cron_spec"`
}

// APIConfig 운영용 REST API 서버 설정
type APIConfig struct {
	Enabled        bool            `json:"enabled"`
	ListenPort     int             `json:"listen_port" validate:"min=1,max=65535"`
	CORS           CORSConfig      `json:"cors"`
	RateLimit      RateLimitConfig `json:"rate_limit"`
	RequestTimeout time.Duration   `json:"request_timeout" validate:"gt=0"`
	BodyLimit      string          `json:"body_limit" validate:"required"`
}

// CORSConfig 교차 출처 리소스 공유(CORS) 정책
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate() error {
	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
	}

	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	return nil
}

// RateLimitConfig IP별 요청 속도 제한 설정
type RateLimitConfig struct {
	Enabled   bool    `json:"enabled"`
	PerSecond float64 `json:"per_second" validate:"required_if=Enabled true,omitempty,gt=0"`
	Burst     int     `json:"burst" validate:"required_if=Enabled true,omitempty,gt=0"`
}
