package store_test

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// memTable is an in-memory stand-in for a DynamoDB table that understands
// the single equality condition the client issues.
type memTable struct {
	mu    sync.Mutex
	pk    string
	sk    string
	items map[string]map[string]types.AttributeValue

	// putErrs are returned, in order, by the next PutItem calls before any
	// real write happens.
	putErrs []error
	getErr  error

	puts    int
	gets    int
	lastGet *dynamodb.GetItemInput
	lastPut *dynamodb.PutItemInput
}

func newMemTable(pk, sk string) *memTable {
	return &memTable{
		pk:    pk,
		sk:    sk,
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func (m *memTable) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gets++
	m.lastGet = params
	if m.getErr != nil {
		return nil, m.getErr
	}

	stored, ok := m.items[m.keyOf(params.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyMap(stored)}, nil
}

func (m *memTable) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++
	m.lastPut = params
	if len(m.putErrs) > 0 {
		err := m.putErrs[0]
		m.putErrs = m.putErrs[1:]
		return nil, err
	}

	k := m.keyOf(params.Item)
	if params.ConditionExpression != nil {
		if aws.ToString(params.ConditionExpression) != "#etag = :etag" {
			return nil, fmt.Errorf("memTable: unsupported condition %q", aws.ToString(params.ConditionExpression))
		}
		attr := params.ExpressionAttributeNames["#etag"]
		want := params.ExpressionAttributeValues[":etag"]
		stored, ok := m.items[k]
		if !ok || !reflect.DeepEqual(stored[attr], want) {
			return nil, &types.ConditionalCheckFailedException{
				Message: aws.String("The conditional request failed"),
			}
		}
	}

	m.items[k] = copyMap(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (m *memTable) stored(pk, sk string) map[string]types.AttributeValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[pk+"|"+sk]
}

func (m *memTable) keyOf(item map[string]types.AttributeValue) string {
	return scalar(item[m.pk]) + "|" + scalar(item[m.sk])
}

func scalar(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	}
	return ""
}

func copyMap(in map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
