package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/debatemesh/adjudicator"
	"github.com/hupe1980/debatemesh/collector"
	"github.com/hupe1980/debatemesh/core"
	"github.com/hupe1980/debatemesh/logging"
	"github.com/hupe1980/debatemesh/model"
	"github.com/hupe1980/debatemesh/moderator"
	"github.com/hupe1980/debatemesh/panel"
	"github.com/hupe1980/debatemesh/report"
)

// Facilitator is the moderator contract the controller depends on.
type Facilitator interface {
	Facilitate(ctx context.Context, subject string, roles []string, transcript string) (string, error)
	Summarize(ctx context.Context, subject, transcript string) (string, error)
}

// Adjudicator renders the terminal verdict.
type Adjudicator interface {
	Adjudicate(ctx context.Context, subject, transcript string) (string, error)
}

// Synthesizer produces the structured report artifact.
type Synthesizer interface {
	Synthesize(ctx context.Context, subject, transcript string) (*report.Result, error)
}

// PanelFactory builds a session's panelist for a role from its collected
// data. Overridable so tests can substitute stub panelists.
type PanelFactory func(spec RoleSpec, data string, gen model.Model) Panelist

// SpeakerSelection chooses how the next debate speaker is picked.
type SpeakerSelection int

const (
	// SelectionModerator routes to the speaker named by the parsed control
	// decision (the default).
	SelectionModerator SpeakerSelection = iota
	// SelectionRoundRobin ignores the parsed speaker and rotates through the
	// registry in registration order.
	SelectionRoundRobin
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// MaxRounds bounds the debate loop independent of moderator judgment.
	MaxRounds int
	// EventBufferSize sets channel buffering for emitted events.
	EventBufferSize int
	// FailFast aborts the session on the first permanent panelist failure
	// instead of degrading gracefully.
	FailFast bool
	// Selection picks the next-speaker policy.
	Selection SpeakerSelection
	// TailChars bounds the transcript excerpt handed to rebuttals.
	TailChars int
	// Roles defines the panel seats. Defaults to DefaultRoles().
	Roles []RoleSpec
	// PanelFactory builds panelists; defaults to panel.New.
	PanelFactory PanelFactory
	// Moderator, Adjudicator and Synthesizer default to the concrete
	// implementations constructed over the session's generation client.
	Moderator   Facilitator
	Adjudicator Adjudicator
	Synthesizer Synthesizer
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Controller coordinates debate sessions: it resolves the subject, builds
// the per-session agent registry, drives the phase machine and streams
// events. Public methods are safe for concurrent use; each session's state
// is confined to its own goroutine.
type Controller struct {
	resolver collector.SubjectResolver
	fetcher  collector.DataFetcher
	gen      model.Model

	maxRounds       int
	eventBufferSize int
	failFast        bool
	selection       SpeakerSelection
	tailChars       int
	roles           []RoleSpec
	factory         PanelFactory

	mod    Facilitator
	adj    Adjudicator
	syn    Synthesizer
	logger logging.Logger

	activeRuns map[string]context.CancelFunc
	mu         sync.Mutex
}

// New constructs a Controller. The generation client should already carry
// retry behavior (retry.WrapModel); the controller never re-invokes failed
// calls itself.
func New(
	resolver collector.SubjectResolver,
	fetcher collector.DataFetcher,
	gen model.Model,
	optFns ...func(o *Options),
) *Controller {
	opts := Options{
		MaxRounds:       10,
		EventBufferSize: 64,
		TailChars:       4000,
		Roles:           DefaultRoles(),
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.PanelFactory == nil {
		opts.PanelFactory = func(spec RoleSpec, data string, gen model.Model) Panelist {
			return panel.New(spec.ID, data, gen, func(o *panel.Options) {
				o.DisplayName = spec.DisplayName
				o.Persona = spec.Persona
			})
		}
	}
	if opts.Moderator == nil {
		opts.Moderator = moderator.New(gen, func(o *moderator.Options) { o.Logger = opts.Logger })
	}
	if opts.Adjudicator == nil {
		opts.Adjudicator = adjudicator.New(gen, func(o *adjudicator.Options) { o.Logger = opts.Logger })
	}
	if opts.Synthesizer == nil {
		opts.Synthesizer = report.New(gen, func(o *report.Options) { o.Logger = opts.Logger })
	}

	return &Controller{
		resolver:        resolver,
		fetcher:         fetcher,
		gen:             gen,
		maxRounds:       opts.MaxRounds,
		eventBufferSize: opts.EventBufferSize,
		failFast:        opts.FailFast,
		selection:       opts.Selection,
		tailChars:       opts.TailChars,
		roles:           opts.Roles,
		factory:         opts.PanelFactory,
		mod:             opts.Moderator,
		adj:             opts.Adjudicator,
		syn:             opts.Synthesizer,
		logger:          opts.Logger,
		activeRuns:      make(map[string]context.CancelFunc),
	}
}

// Run starts an asynchronous session for query. It returns the run id (for
// cancellation) and an ordered event stream. The stream ends with exactly one
// result event or one fatal error event and is then closed; there is no other
// terminal signal. An immediate error covers startup only.
func (c *Controller) Run(ctx context.Context, query string) (string, <-chan core.Event, error) {
	if query == "" {
		return "", nil, fmt.Errorf("empty query")
	}

	sess := core.NewSession(core.NewID(), query)
	events := make(chan core.Event, c.eventBufferSize)

	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.activeRuns[sess.ID] = cancel
	c.mu.Unlock()

	go func() {
		defer func() {
			cancel()
			c.mu.Lock()
			delete(c.activeRuns, sess.ID)
			c.mu.Unlock()
			// Closing last means a drained stream implies the run id is
			// already unregistered.
			close(events)
		}()

		c.run(ctx, sess, events)
	}()

	return sess.ID, events, nil
}

// Cancel requests cooperative termination of an in-flight session. In-flight
// generation calls are abandoned best-effort; the transcript is never left
// half-appended because turns are appended whole by the session goroutine.
func (c *Controller) Cancel(runID string) error {
	c.mu.Lock()
	cancel, exists := c.activeRuns[runID]
	c.mu.Unlock()

	if !exists {
		return fmt.Errorf("run %s not found", runID)
	}

	cancel()

	return nil
}
