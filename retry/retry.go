// Package retry absorbs the flakiness of the external generation backend.
// It provides a bounded retry helper with configurable backoff and a
// model.Model decorator so that every component talks to an already-hardened
// client. No other layer in the module re-invokes a failed call; retry policy
// lives here and only here.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/debatemesh/model"
)

// ErrExhausted marks an error returned after the full attempt budget was
// spent. The final cause stays reachable through errors.Is/As.
var ErrExhausted = errors.New("giving up")

// Policy selects how the delay between attempts grows.
type Policy int

const (
	// PolicyExponential doubles the base delay after each attempt.
	PolicyExponential Policy = iota
	// PolicyLinear grows the delay by one base delay per attempt.
	PolicyLinear
)

// Options configure the retry behavior.
type Options struct {
	// MaxAttempts is the total number of calls made before giving up,
	// including the first one.
	MaxAttempts int
	// BaseDelay seeds the backoff schedule.
	BaseDelay time.Duration
	// Policy selects linear or exponential growth.
	Policy Policy
	// Transient decides whether an error is worth retrying. Defaults to
	// model.IsTransient.
	Transient func(error) bool
}

// DefaultOptions returns the baseline configuration: four attempts,
// exponential backoff seeded at three seconds, transient per model.IsTransient.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: 4,
		BaseDelay:   3 * time.Second,
		Policy:      PolicyExponential,
		Transient:   model.IsTransient,
	}
}

// delay computes the pause before the next attempt; attempt is 1-based.
func (o Options) delay(attempt int) time.Duration {
	if o.Policy == PolicyLinear {
		return o.BaseDelay * time.Duration(attempt)
	}
	return o.BaseDelay << (attempt - 1)
}

// Do invokes op up to opts.MaxAttempts times. Non-transient errors are
// returned immediately without further attempts. On exhaustion the final
// error is returned wrapped with attempt context; errors.Is/As still reach
// the cause. Sleeps respect ctx cancellation.
func Do[T any](ctx context.Context, opts Options, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	transient := opts.Transient
	if transient == nil {
		transient = model.IsTransient
	}

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if !transient(err) {
			return zero, err
		}
		lastErr = err

		if attempt == opts.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(opts.delay(attempt)):
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, opts.MaxAttempts, lastErr)
}

// Model decorates an inner model.Model with retry behavior. Callers must not
// assume bounded latency: a single Generate may span the full backoff
// schedule.
type Model struct {
	inner model.Model
	opts  Options
}

// WrapModel wraps a generation client so that transient failures are
// absorbed here, at the call boundary, rather than inside each agent.
func WrapModel(inner model.Model, optFns ...func(o *Options)) *Model {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{inner: inner, opts: opts}
}

// Generate implements model.Model.
func (m *Model) Generate(ctx context.Context, req model.Request) (string, error) {
	return Do(ctx, m.opts, func(ctx context.Context) (string, error) {
		return m.inner.Generate(ctx, req)
	})
}

// Info implements model.Model.
func (m *Model) Info() model.Info { return m.inner.Info() }
