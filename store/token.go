package store

import (
	"time"

	"github.com/google/uuid"
)

// timestampLayout is the UTC ISO 8601 layout with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// NewToken returns a time-ordered UUIDv7 version token.
// It falls back to a random UUIDv4 if the v7 generator fails.
func NewToken() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// TimestampToken returns the current UTC time with millisecond precision,
// e.g. "2024-01-02T15:04:05.123Z".
//
// Two writes to the same key within one millisecond get the same token, which
// defeats the version check. Only use it where existing data already carries
// timestamp tokens.
func TimestampToken() string {
	return time.Now().UTC().Format(timestampLayout)
}
