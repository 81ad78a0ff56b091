package debatemesh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/debatemesh/collector"
	"github.com/hupe1980/debatemesh/core"
	"github.com/hupe1980/debatemesh/model"
)

// scriptedMock returns a mock model that can drive a complete debate through
// substring matching on the component prompts.
func scriptedMock() *model.MockModel {
	gen := model.NewMockModel("scripted", "mock")
	gen.AddResponse("You argue from fundamentals", "Fundamentals support the position.")
	gen.AddResponse("news analyst", "Sentiment supports the position.")
	gen.AddResponse("chart analyst", "The chart supports the position.")
	gen.AddResponse("You are the moderator of an expert investment debate. You are neutral", "STATUS: TERMINATE")
	gen.AddResponse("writing the official neutral summary", "The panel broadly agreed.")
	gen.AddResponse("adjudicator of an expert investment debate", "**buy** (7/10)")
	gen.AddResponse("chief strategy analyst", `{"rating":"buy","score":7,"key_points":["a"],"risks":["b"],"summary":"c"}`)
	return gen
}

func newTestMesh(gen model.Model, optFns ...func(o *Options)) *DebateMesh {
	base := func(o *Options) {
		o.Resolver = collector.NewStaticResolver(collector.Subject{Name: "Acme Corp", Ticker: "ACME"})
		o.Fetcher = collector.NewStaticFetcher(map[string]string{
			"finance": "finance data",
			"news":    "news data",
			"chart":   "chart data",
		})
		o.MaxAttempts = 1
	}
	return New(gen, append([]func(o *Options){base}, optFns...)...)
}

func TestDebateMesh_RunSyncEndToEnd(t *testing.T) {
	mesh := newTestMesh(scriptedMock())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runID, events, err := mesh.RunSync(ctx, "should I buy Acme Corp?")
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	require.Equal(t, core.EventResult, last.Type)
	assert.Equal(t, "The panel broadly agreed.", last.Data.Summary)
	assert.Equal(t, "**buy** (7/10)", last.Data.Conclusion)
	assert.NotEmpty(t, last.Data.DiscussionLog)
}

func TestDebateMesh_RetryAbsorbsTransientFailures(t *testing.T) {
	gen := scriptedMock()
	// The first call of the run hits a rate limit and must be retried
	// invisibly; every component still sees a single successful call.
	gen.QueueError(&model.RateLimitError{Provider: "mock", Err: errors.New("429")})

	mesh := newTestMesh(gen, func(o *Options) {
		o.MaxAttempts = 2
		o.BaseDelay = time.Millisecond
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, events, err := mesh.RunSync(ctx, "should I buy Acme Corp?")
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, core.EventResult, events[len(events)-1].Type)
}

func TestDebateMesh_DefaultResolverUsesModel(t *testing.T) {
	gen := scriptedMock()
	gen.AddResponse("You identify the single stock", "ACME Acme Corp")

	mesh := New(gen, func(o *Options) {
		o.MaxAttempts = 1
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, events, err := mesh.RunSync(ctx, "that roadrunner supplier?")
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, core.EventResult, events[len(events)-1].Type)
}

func TestDebateMesh_UnresolvableQueryEndsFatally(t *testing.T) {
	gen := scriptedMock()
	gen.AddResponse("You identify the single stock", "NONE")

	mesh := New(gen, func(o *Options) { o.MaxAttempts = 1 })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, events, err := mesh.RunSync(ctx, "what should I eat?")
	require.NoError(t, err)
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, core.EventError, last.Type)
	assert.True(t, last.Fatal)
}

func TestDebateMesh_CancelUnknownRun(t *testing.T) {
	mesh := newTestMesh(scriptedMock())
	assert.Error(t, mesh.Cancel("no-such-run"))
}
