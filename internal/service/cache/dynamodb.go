package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
)

const (
	dynamoKeyAttr     = "cache_key"
	dynamoExpiresAttr = "expires_at"
)

// DynamoDBAPI 캐시 백엔드가 사용하는 DynamoDB 클라이언트 메서드입니다.
// *dynamodb.Client가 이 인터페이스를 만족하며, 테스트에서는 목으로 대체합니다.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// dynamoItem 테이블의 한 항목입니다. 시각은 밀리초 단위 Unix 시간으로 저장합니다.
type dynamoItem struct {
	CacheKey  string `dynamodbav:"cache_key"`
	Value     string `dynamodbav:"value"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
	CreatedAt int64  `dynamodbav:"created_at"`
}

// DynamoDBObjectBackend cache_key를 파티션 키로 사용하는 DynamoDB 테이블 기반 객체 저장소입니다.
type DynamoDBObjectBackend struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBObjectBackend(client DynamoDBAPI, table string) *DynamoDBObjectBackend {
	return &DynamoDBObjectBackend{client: client, table: table}
}

// NewDynamoDBClient 기본 자격 증명 체인으로 DynamoDB 클라이언트를 생성합니다.
// endpoint를 지정하면 DynamoDB Local 같은 호환 엔드포인트를 사용합니다.
func NewDynamoDBClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "AWS 설정을 불러올 수 없습니다")
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func (b *DynamoDBObjectBackend) Name() string { return "object.dynamodb" }

func (b *DynamoDBObjectBackend) keyOf(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		dynamoKeyAttr: &types.AttributeValueMemberS{Value: key},
	}
}

func (b *DynamoDBObjectBackend) Load(ctx context.Context, key string) (*Entry, bool, error) {
	out, err := b.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(b.table),
		Key:            b.keyOf(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, err
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, false, apperrors.Wrapf(err, apperrors.ParsingFailed, "DynamoDB 항목을 해석할 수 없습니다 (key=%s)", key)
	}

	return &Entry{
		Value:     []byte(item.Value),
		ExpiresAt: time.UnixMilli(item.ExpiresAt).UTC(),
		CreatedAt: time.UnixMilli(item.CreatedAt).UTC(),
	}, true, nil
}

func (b *DynamoDBObjectBackend) Store(ctx context.Context, key string, e *Entry) error {
	av, err := attributevalue.MarshalMap(dynamoItem{
		CacheKey:  key,
		Value:     string(e.Value),
		ExpiresAt: e.ExpiresAt.UnixMilli(),
		CreatedAt: e.CreatedAt.UnixMilli(),
	})
	if err != nil {
		return err
	}

	_, err = b.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(b.table),
		Item:      av,
	})
	return err
}

func (b *DynamoDBObjectBackend) Remove(ctx context.Context, key string) (bool, error) {
	out, err := b.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(b.table),
		Key:          b.keyOf(key),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}

// RemoveExpired expires_at 조건식으로 삭제하므로, 조회 이후 다른 호출이 다시 기록한 항목은 지워지지 않습니다.
// 조건이 맞지 않아 삭제하지 않은 경우(항목 없음 포함)는 (false, nil)입니다.
func (b *DynamoDBObjectBackend) RemoveExpired(ctx context.Context, key string, now time.Time) (bool, error) {
	_, err := b.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(b.table),
		Key:                 b.keyOf(key),
		ConditionExpression: aws.String("#exp < :now"),
		ExpressionAttributeNames: map[string]string{
			"#exp": dynamoExpiresAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.UnixMilli(), 10)},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Keys 테이블 전체를 스캔합니다. 페이지가 여러 개이면 LastEvaluatedKey를 따라 끝까지 읽습니다.
func (b *DynamoDBObjectBackend) Keys(ctx context.Context) ([]string, error) {
	var (
		keys  []string
		start map[string]types.AttributeValue
	)

	for {
		out, err := b.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(b.table),
			ProjectionExpression: aws.String(dynamoKeyAttr),
			ExclusiveStartKey:    start,
		})
		if err != nil {
			return nil, err
		}

		for _, item := range out.Items {
			var k struct {
				CacheKey string `dynamodbav:"cache_key"`
			}
			if err := attributevalue.UnmarshalMap(item, &k); err != nil || k.CacheKey == "" {
				continue
			}
			keys = append(keys, k.CacheKey)
		}

		if len(out.LastEvaluatedKey) == 0 {
			return keys, nil
		}
		start = out.LastEvaluatedKey

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

func (b *DynamoDBObjectBackend) Purge(ctx context.Context) error {
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
