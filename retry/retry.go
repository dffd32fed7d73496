// Package retry provides the retry policies used by document writes.
//
// A Policy runs an Attempt and decides whether a failed attempt is run again.
// Two policies ship with the package: [None], which runs the attempt exactly
// once, and [FixedCount], which retries immediately up to a fixed number of
// total attempts. Any other strategy (back-off, jitter, circuit breaking) can
// be plugged in by implementing [Policy] or wrapping a function in [Func].
package retry

import (
	"context"
	"runtime"
)

// Attempt is a single try of an operation.
type Attempt func(ctx context.Context) error

// Policy decides how an Attempt is executed and retried.
//
// Execute returns nil when an attempt succeeded, otherwise the error of the
// last attempt that was made.
type Policy interface {
	Execute(ctx context.Context, attempt Attempt) error
}

// Func adapts an ordinary function to the Policy interface.
type Func func(ctx context.Context, attempt Attempt) error

// Execute calls f(ctx, attempt).
func (f Func) Execute(ctx context.Context, attempt Attempt) error {
	return f(ctx, attempt)
}

// None runs the attempt once and returns its outcome unchanged.
// It holds no state and may be shared between concurrent operations.
var None Policy = noRetry{}

type noRetry struct{}

func (noRetry) Execute(ctx context.Context, attempt Attempt) error {
	return attempt(ctx)
}

// FixedCount retries a failed attempt immediately until Max total attempts
// (the first one included) have been made. Max of 1 behaves like None.
//
// A FixedCount keeps an attempt counter and must not be shared between
// concurrent Execute calls. Create one per operation.
type FixedCount struct {
	// Max is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	Max int

	// Retryable reports whether a failed attempt may be retried.
	// When nil every error is retried, including version conflicts.
	Retryable func(error) bool

	attempts int
}

// NewFixedCount returns a FixedCount policy allowing n total attempts.
func NewFixedCount(n int) *FixedCount {
	return &FixedCount{Max: n}
}

// Attempts returns the number of attempts made by the most recent Execute.
func (p *FixedCount) Attempts() int {
	return p.attempts
}

// Execute runs attempt until it succeeds, the attempt budget is spent,
// Retryable rejects the error or ctx is done. The last attempt's error is
// returned on failure.
func (p *FixedCount) Execute(ctx context.Context, attempt Attempt) error {
	limit := p.Max
	if limit < 1 {
		limit = 1
	}

	p.attempts = 0
	for {
		p.attempts++
		err := attempt(ctx)
		if err == nil {
			return nil
		}
		if p.attempts >= limit {
			return err
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}

		// Let other goroutines run before the next try.
		runtime.Gosched()
	}
}
