package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDynamoDB struct {
	mock.Mock
}

var _ DynamoDBAPI = (*mockDynamoDB)(nil)

func (m *mockDynamoDB) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockDynamoDB) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *mockDynamoDB) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.DeleteItemOutput)
	return out, args.Error(1)
}

func (m *mockDynamoDB) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.ScanOutput)
	return out, args.Error(1)
}

func str(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }
func num(v string) types.AttributeValue { return &types.AttributeValueMemberN{Value: v} }

func keyIs(key string) func(map[string]types.AttributeValue) bool {
	return func(k map[string]types.AttributeValue) bool {
		s, ok := k[dynamoKeyAttr].(*types.AttributeValueMemberS)
		return ok && s.Value == key
	}
}

// =============================================================================
// DynamoDBObjectBackend
// =============================================================================

func TestDynamoDBObjectBackend_Store(t *testing.T) {
	t.Parallel()

	client := &mockDynamoDB{}
	b := NewDynamoDBObjectBackend(client, "feed-cache")

	expires := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	created := expires.Add(-time.Hour)

	client.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		if aws.ToString(in.TableName) != "feed-cache" || !keyIs("products:product:prod_1")(in.Item) {
			return false
		}
		value, _ := in.Item["value"].(*types.AttributeValueMemberS)
		exp, _ := in.Item["expires_at"].(*types.AttributeValueMemberN)
		return value != nil && value.Value == `{"id":"prod_1"}` &&
			exp != nil && exp.Value == "1773482400000"
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	err := b.Store(context.Background(), "products:product:prod_1", &Entry{
		Value:     []byte(`{"id":"prod_1"}`),
		ExpiresAt: expires,
		CreatedAt: created,
	})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestDynamoDBObjectBackend_Load(t *testing.T) {
	t.Parallel()

	client := &mockDynamoDB{}
	b := NewDynamoDBObjectBackend(client, "feed-cache")

	client.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return keyIs("products:product:prod_1")(in.Key) && aws.ToBool(in.ConsistentRead)
	})).Return(&dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"cache_key":  str("products:product:prod_1"),
		"value":      str(`{"id":"prod_1"}`),
		"expires_at": num("1773482400000"),
		"created_at": num("1773478800000"),
	}}, nil).Once()
	client.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return keyIs("products:product:없음")(in.Key)
	})).Return(&dynamodb.GetItemOutput{}, nil).Once()

	e, ok, err := b.Load(context.Background(), "products:product:prod_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"prod_1"}`, string(e.Value))
	assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), e.ExpiresAt)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), e.CreatedAt)

	_, ok, err = b.Load(context.Background(), "products:product:없음")
	require.NoError(t, err)
	assert.False(t, ok)

	client.AssertExpectations(t)
}

func TestDynamoDBObjectBackend_Remove(t *testing.T) {
	t.Parallel()

	client := &mockDynamoDB{}
	b := NewDynamoDBObjectBackend(client, "feed-cache")

	client.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		return keyIs("a")(in.Key) && in.ReturnValues == types.ReturnValueAllOld
	})).Return(&dynamodb.DeleteItemOutput{Attributes: map[string]types.AttributeValue{"cache_key": str("a")}}, nil).Once()
	client.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		return keyIs("b")(in.Key)
	})).Return(&dynamodb.DeleteItemOutput{}, nil).Once()

	removed, err := b.Remove(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = b.Remove(context.Background(), "b")
	require.NoError(t, err)
	assert.False(t, removed)

	client.AssertExpectations(t)
}

func TestDynamoDBObjectBackend_KeysPaginates(t *testing.T) {
	t.Parallel()

	client := &mockDynamoDB{}
	b := NewDynamoDBObjectBackend(client, "feed-cache")

	lastKey := map[string]types.AttributeValue{"cache_key": str("b")}

	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey == nil && aws.ToString(in.ProjectionExpression) == dynamoKeyAttr
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{
			{"cache_key": str("a")},
			{"cache_key": str("b")},
		},
		LastEvaluatedKey: lastKey,
	}, nil).Once()
	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey != nil && keyIs("b")(in.ExclusiveStartKey)
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{
			{"cache_key": str("c")},
			{"other": str("무시")},
		},
	}, nil).Once()

	keys, err := b.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	client.AssertExpectations(t)
}

func TestDynamoDBObjectBackend_ErrorsPropagate(t *testing.T) {
	t.Parallel()

	client := &mockDynamoDB{}
	b := NewDynamoDBObjectBackend(client, "feed-cache")
	boom := errors.New("throttled")

	client.On("GetItem", mock.Anything, mock.Anything).Return(nil, boom)
	client.On("Scan", mock.Anything, mock.Anything).Return(nil, boom)

	_, _, err := b.Load(context.Background(), "k")
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, b.Purge(context.Background()), boom)

	// 서비스 계층에서는 System 분류로 감싸집니다.
	svc := New(Config{}, nil, nil, b)
	_, err = svc.Get(context.Background(), "k", nil, WithBackend(BackendObject))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), svc.Stats().Misses)
}

// 만료 조건식을 붙여 삭제하며, 조건이 맞지 않으면 삭제하지 않은 것으로 처리합니다.
func TestDynamoDBObjectBackend_RemoveExpired(t *testing.T) {
	t.Parallel()

	client := &mockDynamoDB{}
	b := NewDynamoDBObjectBackend(client, "feed-cache")
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	conditional := func(key string) func(*dynamodb.DeleteItemInput) bool {
		return func(in *dynamodb.DeleteItemInput) bool {
			nowValue, _ := in.ExpressionAttributeValues[":now"].(*types.AttributeValueMemberN)
			return keyIs(key)(in.Key) &&
				aws.ToString(in.ConditionExpression) == "#exp < :now" &&
				in.ExpressionAttributeNames["#exp"] == "expires_at" &&
				nowValue != nil && nowValue.Value == "1773482400000"
		}
	}

	client.On("DeleteItem", mock.Anything, mock.MatchedBy(conditional("expired"))).
		Return(&dynamodb.DeleteItemOutput{}, nil).Once()
	client.On("DeleteItem", mock.Anything, mock.MatchedBy(conditional("rewritten"))).
		Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}).Once()
	client.On("DeleteItem", mock.Anything, mock.MatchedBy(conditional("throttled"))).
		Return(nil, errors.New("throttled")).Once()

	removed, err := b.RemoveExpired(context.Background(), "expired", now)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = b.RemoveExpired(context.Background(), "rewritten", now)
	require.NoError(t, err, "조건 불일치는 에러가 아닙니다")
	assert.False(t, removed)

	_, err = b.RemoveExpired(context.Background(), "throttled", now)
	assert.Error(t, err)

	client.AssertExpectations(t)
}
