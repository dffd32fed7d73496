package store

import (
	"fmt"
	"log/slog"
)

// VersionAttribute is the default reserved attribute holding the version token.
const VersionAttribute = "$$etag"

// Config holds configuration for the Client.
type Config struct {
	// TableName is the DynamoDB table holding the documents. Required.
	TableName string

	// PartitionKey is the name of the table's partition (hash) key attribute. Required.
	PartitionKey string

	// SortKey is the name of the table's sort (range) key attribute. Required.
	SortKey string

	// VersionAttribute is the attribute name of the version token.
	// Default: "$$etag"
	VersionAttribute string

	// ConsistentRead makes Get use strongly consistent reads.
	// Default: false (eventually consistent)
	ConsistentRead bool

	// NewToken generates the version token written on each attempt.
	// Tokens must differ between any two writes to the same key.
	// Default: NewToken (UUIDv7)
	NewToken func() string

	// Logger receives debug and warning output.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns a Config for the given table and key names.
func DefaultConfig(table, partitionKey, sortKey string) Config {
	return Config{
		TableName:        table,
		PartitionKey:     partitionKey,
		SortKey:          sortKey,
		VersionAttribute: VersionAttribute,
		NewToken:         NewToken,
	}
}

// validate fills defaults and checks required fields.
func (c *Config) validate() error {
	if c.TableName == "" {
		return fmt.Errorf("%w: table name is empty", ErrInvalidConfig)
	}
	if c.PartitionKey == "" || c.SortKey == "" {
		return fmt.Errorf("%w: partition and sort key names are required", ErrInvalidConfig)
	}
	if c.VersionAttribute == "" {
		c.VersionAttribute = VersionAttribute
	}
	if c.NewToken == nil {
		c.NewToken = NewToken
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}
