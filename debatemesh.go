// Package debatemesh provides a high-level façade over the phase controller
// and the collector, panel, moderator, adjudicator and report components,
// enabling construction of moderated multi-agent debates with a single call.
// Most applications interact with this package by:
//  1. Creating a DebateMesh via New() with a backing model (optionally
//     overriding the resolver, fetcher, roles or retry behavior)
//  2. Running a debate asynchronously (Run) or synchronously (RunSync)
//
// The façade delegates orchestration to controller.Controller while keeping
// setup ergonomics concise. The supplied model is wrapped with retry handling
// so transient provider failures are absorbed at the call boundary; every
// component above it issues each request exactly once.
package debatemesh

import (
	"context"
	"time"

	"github.com/hupe1980/debatemesh/collector"
	"github.com/hupe1980/debatemesh/controller"
	"github.com/hupe1980/debatemesh/core"
	"github.com/hupe1980/debatemesh/logging"
	"github.com/hupe1980/debatemesh/model"
	"github.com/hupe1980/debatemesh/retry"
)

// Options configures the DebateMesh instance.
type Options struct {
	// Resolver maps the free-form user query to a debate subject. Defaults
	// to a model-backed resolver using the (retry-wrapped) generation model.
	Resolver collector.SubjectResolver

	// Fetcher supplies per-role briefing data for the resolved subject.
	// Defaults to an empty static fetcher, which lets panelists argue from
	// the model's own knowledge.
	Fetcher collector.DataFetcher

	// Roles defines the panel seats. Defaults to controller.DefaultRoles().
	Roles []controller.RoleSpec

	// MaxRounds bounds the moderated debate loop.
	MaxRounds int

	// FailFast aborts the session on the first component failure instead of
	// degrading around it.
	FailFast bool

	// Selection chooses how the next debate speaker is picked.
	Selection controller.SpeakerSelection

	// TailChars bounds the transcript window handed to rebutting panelists.
	TailChars int

	// EventBufferSize sets the channel buffer size for streamed events.
	EventBufferSize int

	// MaxAttempts bounds retries per model call, counting the first attempt.
	// Set to 1 to disable retries.
	MaxAttempts int

	// BaseDelay is the backoff unit between retry attempts.
	BaseDelay time.Duration

	// RetryPolicy selects linear or exponential backoff growth.
	RetryPolicy retry.Policy

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// DebateMesh is the high-level façade aggregating the controller and its
// collaborators.
type DebateMesh struct {
	opts       Options
	controller *controller.Controller
}

// New creates a new DebateMesh backed by the given model. Any unset
// collaborator is initialized with a sensible default.
func New(gen model.Model, optFns ...func(o *Options)) *DebateMesh {
	opts := Options{
		MaxRounds:       10,
		TailChars:       4000,
		EventBufferSize: 64,
		MaxAttempts:     4,
		BaseDelay:       3 * time.Second,
		RetryPolicy:     retry.PolicyExponential,
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	wrapped := retry.WrapModel(gen, func(o *retry.Options) {
		o.MaxAttempts = opts.MaxAttempts
		o.BaseDelay = opts.BaseDelay
		o.Policy = opts.RetryPolicy
	})

	if opts.Resolver == nil {
		opts.Resolver = collector.NewModelResolver(wrapped)
	}
	if opts.Fetcher == nil {
		opts.Fetcher = collector.NewStaticFetcher(nil)
	}

	c := controller.New(opts.Resolver, opts.Fetcher, wrapped, func(o *controller.Options) {
		if opts.Roles != nil {
			o.Roles = opts.Roles
		}
		o.MaxRounds = opts.MaxRounds
		o.FailFast = opts.FailFast
		o.Selection = opts.Selection
		o.TailChars = opts.TailChars
		o.EventBufferSize = opts.EventBufferSize
		o.Logger = opts.Logger
	})

	return &DebateMesh{opts: opts, controller: c}
}

// Run starts an asynchronous debate for the given query, returning the run ID
// and the event stream. The stream is closed once the session reaches a
// terminal state.
func (m *DebateMesh) Run(ctx context.Context, query string) (string, <-chan core.Event, error) {
	return m.controller.Run(ctx, query)
}

// RunSync is a synchronous helper that drains the event stream, accumulates
// events and returns the run ID.
func (m *DebateMesh) RunSync(ctx context.Context, query string) (string, []core.Event, error) {
	runID, eventsCh, err := m.controller.Run(ctx, query)
	if err != nil {
		return "", nil, err
	}

	var events []core.Event
	for {
		select {
		case <-ctx.Done():
			// Context cancelled - return events collected so far
			return runID, events, ctx.Err()

		case event, ok := <-eventsCh:
			if !ok {
				return runID, events, nil
			}
			events = append(events, event)
		}
	}
}

// Cancel aborts an in-flight run. It returns an error if the run ID is
// unknown or already finished.
func (m *DebateMesh) Cancel(runID string) error {
	return m.controller.Cancel(runID)
}
