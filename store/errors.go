package store

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

var (
	// ErrItemRequired is returned when Put is called with a nil or empty item.
	ErrItemRequired = errors.New("dynodocs: item is required")

	// ErrKeyRequired is returned when an item lacks its partition or sort key attribute.
	ErrKeyRequired = errors.New("dynodocs: item key attribute is required")

	// ErrInvalidConfig is returned by New when the table or key names are missing.
	ErrInvalidConfig = errors.New("dynodocs: invalid client config")
)

// IsConflict reports whether err is a rejected conditional write, i.e. the
// version token supplied to Put did not match the stored one.
func IsConflict(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}

// NotConflict reports whether err is anything other than a version conflict.
// Use it as FixedCount.Retryable to keep conflicts out of the retry loop.
func NotConflict(err error) bool {
	return !IsConflict(err)
}

// errorCode extracts the service error code for logging.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
