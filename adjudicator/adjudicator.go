// Package adjudicator produces the session's final verdict. It is the single
// designated tie-breaker: the panel is never required to agree, and whatever
// disagreement survives the debate is resolved here in one terminal call over
// the full transcript. The verdict is the session's output, not a debate
// contribution; it is never appended to the transcript.
package adjudicator

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/debatemesh/logging"
	"github.com/hupe1980/debatemesh/model"
)

// Options configure the Adjudicator.
type Options struct {
	// Logger receives per-call diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Adjudicator renders the final verdict from the full debate record.
type Adjudicator struct {
	gen    model.Model
	logger logging.Logger
}

// New constructs an Adjudicator on top of a generation client.
func New(gen model.Model, optFns ...func(o *Options)) *Adjudicator {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Adjudicator{gen: gen, logger: opts.Logger}
}

// Adjudicate produces the terminal verdict over the full transcript. It makes
// exactly one generation call; any retry behavior comes from the shared
// wrapped client, and a failure here is fatal to the session.
func (a *Adjudicator) Adjudicate(ctx context.Context, subject, transcript string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Below is the complete debate record on %s between the panel analysts.\n", subject)
	fmt.Fprintf(&b, "\n[Debate record]\n%s\n", transcript)
	b.WriteString(`
Render your verdict as an actionable strategy note:
1. Final call — one of: strong buy / buy / hold / sell / strong sell — with a conviction score from 0 to 10.
2. The three arguments that won the debate.
3. The decisive risks the debate exposed.
4. A concrete trading scenario: entry zone, first and second targets, stop loss.

Write it as readable Markdown. Be unambiguous.`)

	text, err := a.gen.Generate(ctx, model.Request{
		Instructions: "You are the adjudicator of an expert investment debate: a decision-maker who has heard every argument and must now commit to a position.",
		Input:        b.String(),
	})
	if err != nil {
		return "", fmt.Errorf("adjudication failed: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("adjudicator produced an empty verdict")
	}

	a.logger.Debug("verdict produced", "chars", len(text))

	return text, nil
}
