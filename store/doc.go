// Package store provides a DynamoDB document client with optimistic concurrency.
//
// Documents are addressed by a partition key and a sort key and carry a
// version token under a reserved attribute ([VersionAttribute], "$$etag").
// The token is replaced on every successful write, so a caller that read a
// document can write it back only if nobody else wrote it in between.
//
// # Write Semantics
//
// The token on the item passed to [Client.Put] selects the kind of write:
//
//   - absent (or NULL): no prior version known, write unconditionally
//   - "*": force overwrite, write unconditionally
//   - any other value: write only if the stored token equals it
//
// The caller never chooses the new token. A fresh one is generated for every
// attempt and returned on the written item.
//
// # Retries
//
// Put runs its attempts through a [retry.Policy]. The default is
// [retry.None]. Pass [WithRetry] to use another policy:
//
//	p := retry.NewFixedCount(3)
//	p.Retryable = store.NotConflict
//	item, err := client.Put(ctx, doc, store.WithRetry(p))
//
// Without a Retryable classifier a FixedCount policy retries version
// conflicts too, which can turn a stale write into a failed or repeated one.
//
// Get is never retried.
//
// # Errors
//
//   - [ErrItemRequired] - Put was called with an empty item
//   - [ErrKeyRequired] - the item lacks the partition or sort key attribute
//   - [ErrInvalidConfig] - the client configuration is incomplete
//
// Store errors are returned as-is. A version conflict is the SDK's
// *types.ConditionalCheckFailedException; test for it with [IsConflict].
//
// # Consistency
//
// Reads are eventually consistent unless [Config.ConsistentRead] is set.
package store
