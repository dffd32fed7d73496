package store

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Wildcard is the version token that forces an unconditional overwrite.
const Wildcard = "*"

// VersionMatchExpr returns the condition expression used for conditional writes.
// Use with VersionMatchNames and VersionMatchValues when building custom requests.
func VersionMatchExpr() string {
	return "#etag = :etag"
}

// VersionMatchNames returns expression attribute names for the version condition.
func VersionMatchNames(attr string) map[string]string {
	return map[string]string{"#etag": attr}
}

// VersionMatchValues returns expression attribute values for the version condition.
func VersionMatchValues(token types.AttributeValue) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{":etag": token}
}

// isUnconditional reports whether a requested token means "write regardless
// of the stored version": no token, a NULL token or the wildcard.
func isUnconditional(token types.AttributeValue) bool {
	switch v := token.(type) {
	case nil:
		return true
	case *types.AttributeValueMemberNULL:
		return true
	case *types.AttributeValueMemberS:
		return v.Value == Wildcard
	}
	return false
}

// ensureSafeUpdate sets the version condition on params based on the token
// the caller supplied and stamps the item with a fresh token.
func ensureSafeUpdate(params *dynamodb.PutItemInput, attr, newToken string) {
	requested := params.Item[attr]

	if isUnconditional(requested) {
		params.ConditionExpression = nil
		params.ExpressionAttributeNames = nil
		params.ExpressionAttributeValues = nil
	} else {
		params.ConditionExpression = aws.String(VersionMatchExpr())
		params.ExpressionAttributeNames = VersionMatchNames(attr)
		params.ExpressionAttributeValues = VersionMatchValues(requested)
	}

	params.Item[attr] = &types.AttributeValueMemberS{Value: newToken}
}
