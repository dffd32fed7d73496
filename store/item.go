package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API is the subset of *dynamodb.Client used by the Client.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Item is a document: its key attributes, user attributes and version token.
type Item map[string]types.AttributeValue

// Key is a DynamoDB primary key (partition and sort key attributes).
type Key map[string]types.AttributeValue

// clone returns a shallow copy of the item. Attribute values are shared.
func (i Item) clone() Item {
	c := make(Item, len(i)+1)
	for k, v := range i {
		c[k] = v
	}
	return c
}

// VersionOf returns the version token stored under attr, or "" when the item
// has none or it is not a string.
func VersionOf(item Item, attr string) string {
	if v, ok := item[attr].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
