package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/debatemesh/collector"
	"github.com/hupe1980/debatemesh/core"
	"github.com/hupe1980/debatemesh/decision"
	"github.com/hupe1980/debatemesh/report"
)

// run drives one session through the full phase sequence. It is the only
// goroutine that touches the session and its transcript.
func (c *Controller) run(ctx context.Context, sess *core.Session, events chan<- core.Event) {
	logger := c.logger
	started := time.Now()

	emit := func(ev core.Event) bool {
		select {
		case <-ctx.Done():
			return false
		case events <- ev:
			return true
		}
	}

	fail := func(format string, args ...any) {
		sess.Phase = core.PhaseFailed
		msg := fmt.Sprintf(format, args...)
		logger.Error("session failed", "reason", msg)
		emit(core.NewFatalEvent(sess.ID, msg))
	}

	// INTAKE
	if !emit(core.NewStatusEvent(sess.ID, "resolving subject")) {
		return
	}

	subject, err := c.resolver.Resolve(ctx, sess.Query)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		fail("subject not identified: %v", err)
		return
	}
	sess.Subject = subject.Name
	sess.Ticker = subject.Ticker

	if !emit(core.NewStatusEvent(sess.ID, fmt.Sprintf("analyzing %s (%s)", subject.Name, subject.Ticker))) {
		return
	}

	reg, ok := c.buildRegistry(ctx, sess, subject, emit, fail)
	if !ok {
		return
	}

	transcript := core.NewTranscript()

	// OPENING
	sess.Phase = core.PhaseOpening
	if !c.runOpening(ctx, sess, subject, reg, transcript, emit, fail) {
		return
	}

	// DEBATE
	sess.Phase = core.PhaseDebate
	if !c.runDebate(ctx, sess, subject, reg, transcript, emit) {
		return
	}

	// CLOSING
	sess.Phase = core.PhaseClosing
	if !c.runClosing(ctx, sess, subject, reg, transcript, emit) {
		return
	}

	// SUMMARY
	sess.Phase = core.PhaseSummary
	summary, ok := c.runSummary(ctx, sess, subject, transcript, emit)
	if !ok {
		return
	}

	// ADJUDICATION + REPORT share only the finished transcript, so the two
	// terminal calls fan out together.
	sess.Phase = core.PhaseAdjudication
	if !emit(core.NewStatusEvent(sess.ID, "adjudicating")) {
		return
	}

	record := transcript.Render()

	var (
		wg         sync.WaitGroup
		verdict    string
		verdictErr error
		result     *report.Result
		resultErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		verdict, verdictErr = c.adj.Adjudicate(ctx, subject.Name, record)
	}()
	go func() {
		defer wg.Done()
		result, resultErr = c.syn.Synthesize(ctx, subject.Name, record)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		return
	}
	if verdictErr != nil {
		fail("adjudication failed: %v", verdictErr)
		return
	}
	sess.Phase = core.PhaseReport
	if resultErr != nil {
		fail("report synthesis failed: %v", resultErr)
		return
	}

	// RESULT
	sess.Phase = core.PhaseDone
	logger.Info("session complete", "subject", subject.Name, "turns", transcript.Len(), "duration", time.Since(started))

	emit(core.NewResultEvent(sess.ID, &core.ResultData{
		Summary:       summary,
		Conclusion:    verdict,
		DiscussionLog: transcript.Turns(),
		Report:        result,
	}))
}

// buildRegistry collects role data and constructs the session's immutable
// agent registry. Per-role collection failures degrade (that seat stays
// empty) unless FailFast is set; an entirely empty panel is fatal.
func (c *Controller) buildRegistry(
	ctx context.Context,
	sess *core.Session,
	subject collector.Subject,
	emit func(core.Event) bool,
	fail func(string, ...any),
) (*Registry, bool) {
	var panelists []Panelist
	for _, spec := range c.roles {
		data, err := c.fetcher.Fetch(ctx, subject, spec.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, false
			}
			c.logger.Warn("role data collection failed", "role", spec.ID, "error", err)
			if !emit(core.NewErrorEvent(sess.ID, spec.ID, fmt.Sprintf("data collection failed: %v", err))) {
				return nil, false
			}
			if c.failFast {
				fail("data collection failed for role %s: %v", spec.ID, err)
				return nil, false
			}
			continue
		}
		panelists = append(panelists, c.factory(spec, data, c.gen))
	}

	if len(panelists) == 0 {
		fail("no role data could be collected for %s", subject.Name)
		return nil, false
	}

	return NewRegistry(panelists...), true
}

// runOpening fans out all opening statements concurrently and appends them
// in completion order. The phase is a synchronization point: every panelist
// completes (or fails) before the debate starts.
func (c *Controller) runOpening(
	ctx context.Context,
	sess *core.Session,
	subject collector.Subject,
	reg *Registry,
	transcript *core.Transcript,
	emit func(core.Event) bool,
	fail func(string, ...any),
) bool {
	if !emit(core.NewStatusEvent(sess.ID, "opening statements")) {
		return false
	}

	type outcome struct {
		role string
		text string
		err  error
	}

	results := make(chan outcome, reg.Len())
	for _, p := range reg.Panelists() {
		go func(p Panelist) {
			text, err := p.Analyze(ctx, subject.Name, "")
			results <- outcome{role: p.Role(), text: text, err: err}
		}(p)
	}

	for i := 0; i < reg.Len(); i++ {
		o := <-results
		if o.err != nil {
			if ctx.Err() != nil {
				return false
			}
			c.logger.Warn("opening statement failed", "role", o.role, "error", o.err)
			if !emit(core.NewErrorEvent(sess.ID, o.role, fmt.Sprintf("opening statement failed: %v", o.err))) {
				return false
			}
			if c.failFast {
				fail("opening statement failed for %s: %v", o.role, o.err)
				return false
			}
			continue
		}

		turn := core.NewTurn(o.role, core.RolePanelist, core.TagOpening, o.text)
		transcript.Append(turn)
		if !emit(core.NewDebateEvent(sess.ID, turn)) {
			return false
		}
	}

	if transcript.Len() == 0 {
		fail("every opening statement failed")
		return false
	}

	return true
}

// runDebate executes the bounded moderated loop. Any exit path other than
// caller cancellation proceeds to CLOSING: explicit TERMINATE, unparseable
// control output, a failed moderator or panelist call, or round exhaustion.
func (c *Controller) runDebate(
	ctx context.Context,
	sess *core.Session,
	subject collector.Subject,
	reg *Registry,
	transcript *core.Transcript,
	emit func(core.Event) bool,
) bool {
	if !emit(core.NewStatusEvent(sess.ID, "moderated debate")) {
		return false
	}

	next := 0 // round-robin cursor

	for round := 1; round <= c.maxRounds; round++ {
		sess.Round = round

		raw, err := c.mod.Facilitate(ctx, subject.Name, reg.Roles(), transcript.Render())
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			c.logger.Warn("moderator decision failed", "round", round, "error", err)
			return emit(core.NewErrorEvent(sess.ID, "moderator", fmt.Sprintf("decision failed, closing debate: %v", err)))
		}

		d := decision.Parse(raw, reg.Roles())
		switch d.Status {
		case decision.StatusTerminate:
			c.logger.Info("moderator closed the debate", "round", round)
			return emit(core.NewStatusEvent(sess.ID, "moderator closed the debate"))
		case decision.StatusUnparseable:
			// Not a legitimate termination: log it as parser drift, but the
			// fail-safe is the same, stop looping.
			c.logger.Warn("moderator control output unparseable", "round", round)
			return emit(core.NewStatusEvent(sess.ID, "control decision unparseable, closing debate"))
		}

		speaker := d.NextSpeaker
		if c.selection == SelectionRoundRobin {
			speaker = reg.Roles()[next%reg.Len()]
			next++
		}
		p, ok := reg.Get(speaker)
		if !ok {
			c.logger.Warn("decision named unknown speaker", "speaker", speaker)
			return emit(core.NewStatusEvent(sess.ID, "decision named an unknown speaker, closing debate"))
		}

		instruction := d.Instruction
		if instruction == "" {
			instruction = fmt.Sprintf("Address the strongest argument raised against your position, %s.", speaker)
		}

		instrTurn := core.NewTurn("moderator", core.RoleModerator, core.TagInstruction, instruction)
		transcript.Append(instrTurn)
		if !emit(core.NewDebateEvent(sess.ID, instrTurn)) {
			return false
		}

		debateCtx := fmt.Sprintf("Moderator instruction: %s\n\nRecent exchanges:\n%s", instruction, transcript.Tail(c.tailChars))
		text, err := p.Analyze(ctx, subject.Name, debateCtx)
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			// Round abandoned; availability of a final result beats
			// completeness of the debate.
			c.logger.Warn("rebuttal failed", "role", speaker, "round", round, "error", err)
			return emit(core.NewErrorEvent(sess.ID, speaker, fmt.Sprintf("rebuttal failed: %v", err)))
		}

		turn := core.NewTurn(speaker, core.RolePanelist, core.TagRebuttal, text)
		transcript.Append(turn)
		if !emit(core.NewDebateEvent(sess.ID, turn)) {
			return false
		}
	}

	c.logger.Info("debate reached round budget", "rounds", c.maxRounds)

	return emit(core.NewStatusEvent(sess.ID, "round budget reached, closing debate"))
}

// runClosing collects closing statements sequentially in registry order so
// each panelist sees the closings delivered before theirs.
func (c *Controller) runClosing(
	ctx context.Context,
	sess *core.Session,
	subject collector.Subject,
	reg *Registry,
	transcript *core.Transcript,
	emit func(core.Event) bool,
) bool {
	if !emit(core.NewStatusEvent(sess.ID, "closing statements")) {
		return false
	}

	for _, role := range reg.Roles() {
		p, _ := reg.Get(role)

		closingCtx := fmt.Sprintf(
			"The debate is over. Full record:\n%s\nDeliver your closing statement: your final position on %s given everything argued above.",
			transcript.Render(), subject.Name,
		)

		text, err := p.Analyze(ctx, subject.Name, closingCtx)
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			c.logger.Warn("closing statement failed", "role", role, "error", err)
			if !emit(core.NewErrorEvent(sess.ID, role, fmt.Sprintf("closing statement failed: %v", err))) {
				return false
			}
			continue
		}

		turn := core.NewTurn(role, core.RolePanelist, core.TagClosing, text)
		transcript.Append(turn)
		if !emit(core.NewDebateEvent(sess.ID, turn)) {
			return false
		}
	}

	return true
}

// runSummary produces the moderator's neutral synthesis. Failure here is
// degraded, not fatal: the session proceeds with an empty summary.
func (c *Controller) runSummary(
	ctx context.Context,
	sess *core.Session,
	subject collector.Subject,
	transcript *core.Transcript,
	emit func(core.Event) bool,
) (string, bool) {
	if !emit(core.NewStatusEvent(sess.ID, "summarizing")) {
		return "", false
	}

	summary, err := c.mod.Summarize(ctx, subject.Name, transcript.Render())
	if err != nil {
		if ctx.Err() != nil {
			return "", false
		}
		c.logger.Warn("summary failed", "error", err)
		if !emit(core.NewErrorEvent(sess.ID, "moderator", fmt.Sprintf("summary failed: %v", err))) {
			return "", false
		}
		return "", true
	}

	turn := core.NewTurn("moderator", core.RoleModerator, core.TagSummary, summary)
	transcript.Append(turn)
	if !emit(core.NewDebateEvent(sess.ID, turn)) {
		return "", false
	}

	return summary, true
}
