package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/debatemesh/model"
)

func transientErr() error {
	return &model.RateLimitError{Provider: "test", Err: errors.New("429")}
}

func permanentErr() error {
	return &model.RequestError{Provider: "test", StatusCode: 400, Err: errors.New("bad request")}
}

func fastOptions(maxAttempts int) Options {
	return Options{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
		Policy:      PolicyExponential,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastOptions(4), func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", transientErr()
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttemptsOnPersistentTransient(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastOptions(4), func(ctx context.Context) (string, error) {
		calls++
		return "", transientErr()
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.Contains(t, err.Error(), "giving up after 4 attempts")
	assert.ErrorIs(t, err, ErrExhausted)

	// The wrapped cause must stay reachable.
	var rle *model.RateLimitError
	assert.True(t, errors.As(err, &rle))
}

func TestDo_PermanentErrorFailsImmediately(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastOptions(4), func(ctx context.Context) (string, error) {
		calls++
		return "", permanentErr()
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var re *model.RequestError
	assert.True(t, errors.As(err, &re))
	assert.NotContains(t, err.Error(), "giving up")
}

func TestDo_FirstCallSuccessMakesOneCall(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastOptions(4), func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancellationStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	opts := Options{MaxAttempts: 5, BaseDelay: time.Hour}
	_, err := Do(ctx, opts, func(ctx context.Context) (string, error) {
		calls++
		cancel()
		return "", transientErr()
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroMaxAttemptsMeansOneCall(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Options{}, func(ctx context.Context) (string, error) {
		calls++
		return "", transientErr()
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestOptions_DelaySchedule(t *testing.T) {
	exp := Options{BaseDelay: time.Second, Policy: PolicyExponential}
	assert.Equal(t, time.Second, exp.delay(1))
	assert.Equal(t, 2*time.Second, exp.delay(2))
	assert.Equal(t, 4*time.Second, exp.delay(3))

	lin := Options{BaseDelay: time.Second, Policy: PolicyLinear}
	assert.Equal(t, time.Second, lin.delay(1))
	assert.Equal(t, 2*time.Second, lin.delay(2))
	assert.Equal(t, 3*time.Second, lin.delay(3))
}

func TestWrapModel_RetriesGenerate(t *testing.T) {
	inner := model.NewMockModel("flaky", "mock")
	inner.QueueError(transientErr())
	inner.Queue("recovered")

	wrapped := WrapModel(inner, func(o *Options) {
		o.MaxAttempts = 3
		o.BaseDelay = time.Millisecond
	})

	text, err := wrapped.Generate(context.Background(), model.Request{Input: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, 2, inner.CallCount())
}

func TestWrapModel_PermanentErrorNotRetried(t *testing.T) {
	inner := model.NewMockModel("broken", "mock")
	inner.QueueError(permanentErr())

	wrapped := WrapModel(inner, func(o *Options) {
		o.MaxAttempts = 3
		o.BaseDelay = time.Millisecond
	})

	_, err := wrapped.Generate(context.Background(), model.Request{Input: "hello"})
	require.Error(t, err)
	assert.Equal(t, 1, inner.CallCount())
}

func TestWrapModel_PassesThroughInfo(t *testing.T) {
	inner := model.NewMockModel("name", "provider")
	wrapped := WrapModel(inner)
	assert.Equal(t, inner.Info(), wrapped.Info())
}
