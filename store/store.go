package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/dynodocs/retry"
)

// DefaultPolicy is the retry policy Put uses when none is given: one attempt.
var DefaultPolicy = retry.None

// Client reads and writes versioned documents in one DynamoDB table.
//
// A Client holds no per-call state and is safe for concurrent use.
type Client struct {
	api    API
	config Config
	logger *slog.Logger
}

// New creates a Client bound to api and the table described by config.
func New(api API, config Config) (*Client, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Client{
		api:    api,
		config: config,
		logger: config.Logger,
	}, nil
}

// NewFromConfig creates a Client with a DynamoDB client built from awsCfg.
func NewFromConfig(awsCfg aws.Config, config Config, optFns ...func(*dynamodb.Options)) (*Client, error) {
	return New(dynamodb.NewFromConfig(awsCfg, optFns...), config)
}

// Dial loads the default AWS configuration (environment, shared config,
// instance role) and creates a Client from it.
func Dial(ctx context.Context, config Config, optFns ...func(*awsconfig.LoadOptions) error) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewFromConfig(awsCfg, config)
}

// Config returns the effective client configuration.
func (c *Client) Config() Config {
	return c.config
}

// PutOption configures a single Put call.
type PutOption func(*putOptions)

type putOptions struct {
	policy retry.Policy
}

// WithRetry runs the write through policy instead of DefaultPolicy.
// Stateful policies such as *retry.FixedCount must not be shared between
// concurrent calls.
func WithRetry(policy retry.Policy) PutOption {
	return func(o *putOptions) {
		if policy != nil {
			o.policy = policy
		}
	}
}

// Get retrieves the document stored under (pk, sk). The key values are
// marshalled with attributevalue, so any scalar Go value may be passed.
//
// found is false, with a nil error, when no document exists. Store errors are
// returned unchanged. Get is never retried.
func (c *Client) Get(ctx context.Context, pk, sk any) (item Item, found bool, err error) {
	key, err := c.key(pk, sk)
	if err != nil {
		return nil, false, err
	}

	result, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.config.TableName),
		Key:            key,
		ConsistentRead: aws.Bool(c.config.ConsistentRead),
	})
	if err != nil {
		return nil, false, err
	}
	if result.Item == nil {
		return nil, false, nil
	}
	return Item(result.Item), true, nil
}

// GetInto retrieves the document stored under (pk, sk) and unmarshals it into
// out using attributevalue. To capture the version token, give out a field
// tagged `dynamodbav:"$$etag"`.
func (c *Client) GetInto(ctx context.Context, pk, sk any, out any) (bool, error) {
	item, found, err := c.Get(ctx, pk, sk)
	if err != nil || !found {
		return false, err
	}
	if err := attributevalue.UnmarshalMap(item, out); err != nil {
		return false, fmt.Errorf("unmarshal item: %w", err)
	}
	return true, nil
}

// Put writes item, replacing any document stored under its key.
//
// The version token on item decides whether the write is conditional; see the
// package documentation. item itself is never modified. On success the
// written document, including its new version token, is returned.
//
// A version mismatch returns *types.ConditionalCheckFailedException, other
// store errors are returned unchanged. With a retrying policy the error of
// the last attempt is returned.
func (c *Client) Put(ctx context.Context, item Item, opts ...PutOption) (Item, error) {
	if len(item) == 0 {
		return nil, ErrItemRequired
	}
	if err := c.checkKey(item); err != nil {
		return nil, err
	}

	o := putOptions{policy: DefaultPolicy}
	for _, opt := range opts {
		opt(&o)
	}

	var written Item
	err := o.policy.Execute(ctx, func(ctx context.Context) error {
		var err error
		written, err = c.putOnce(ctx, item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

// PutValue marshals v with attributevalue and writes it with Put.
func (c *Client) PutValue(ctx context.Context, v any, opts ...PutOption) (Item, error) {
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}
	return c.Put(ctx, av, opts...)
}

// putOnce performs a single write attempt on a private copy of item.
func (c *Client) putOnce(ctx context.Context, item Item) (Item, error) {
	params := &dynamodb.PutItemInput{
		TableName: aws.String(c.config.TableName),
		Item:      item.clone(),
	}
	ensureSafeUpdate(params, c.config.VersionAttribute, c.config.NewToken())

	c.logger.Debug("put attempt",
		"table", c.config.TableName,
		"conditional", params.ConditionExpression != nil,
	)

	_, err := c.api.PutItem(ctx, params)
	if err != nil {
		if IsConflict(err) {
			c.logger.Warn("version conflict",
				"table", c.config.TableName,
				"partitionKey", c.config.PartitionKey,
			)
		} else {
			c.logger.Debug("put failed",
				"table", c.config.TableName,
				"code", errorCode(err),
				"error", err,
			)
		}
		return nil, err
	}
	return params.Item, nil
}

// key builds the primary key for (pk, sk).
func (c *Client) key(pk, sk any) (Key, error) {
	pkAttr, err := attributevalue.Marshal(pk)
	if err != nil {
		return nil, fmt.Errorf("marshal partition key: %w", err)
	}
	skAttr, err := attributevalue.Marshal(sk)
	if err != nil {
		return nil, fmt.Errorf("marshal sort key: %w", err)
	}
	return Key{
		c.config.PartitionKey: pkAttr,
		c.config.SortKey:      skAttr,
	}, nil
}

// checkKey ensures item carries both key attributes.
func (c *Client) checkKey(item Item) error {
	if _, ok := item[c.config.PartitionKey]; !ok {
		return fmt.Errorf("%w: missing %q", ErrKeyRequired, c.config.PartitionKey)
	}
	if _, ok := item[c.config.SortKey]; !ok {
		return fmt.Errorf("%w: missing %q", ErrKeyRequired, c.config.SortKey)
	}
	return nil
}
