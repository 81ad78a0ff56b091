// Package moderator implements the debate moderator: it decides whether the
// debate continues and who speaks next, and it produces the neutral summary
// of the finished transcript. Its control output is free text by nature; the
// decision package turns it into a typed signal.
package moderator

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/debatemesh/logging"
	"github.com/hupe1980/debatemesh/model"
)

// Options configure the Moderator.
type Options struct {
	// Logger receives per-call diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Moderator drives debate continuation and produces the neutral summary.
type Moderator struct {
	gen    model.Model
	logger logging.Logger
}

// New constructs a Moderator on top of a generation client.
func New(gen model.Model, optFns ...func(o *Options)) *Moderator {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Moderator{gen: gen, logger: opts.Logger}
}

// Facilitate asks for the next control decision over the accumulated
// transcript. The returned text is expected, but not guaranteed, to carry
// the STATUS / NEXT_SPEAKER / INSTRUCTION fields; callers must parse it
// defensively.
func (m *Moderator) Facilitate(ctx context.Context, subject string, roles []string, transcript string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "The panel is debating %s. Below is the full record so far.\n", subject)
	fmt.Fprintf(&b, "\n[Debate record]\n%s\n", transcript)
	b.WriteString("\nFind the sharpest unresolved conflict between the analysts. Decide whether another exchange would add signal or the positions are exhausted.\n")
	fmt.Fprintf(&b, "\nAnswer in exactly this form:\nSTATUS: [CONTINUE] or [TERMINATE]\nNEXT_SPEAKER: [one of: %s]\nINSTRUCTION: quote the argument you want challenged and ask the named analyst to rebut it.\n", strings.Join(roles, ", "))
	b.WriteString("If STATUS is TERMINATE, the other fields may be omitted.")

	text, err := m.gen.Generate(ctx, model.Request{
		Instructions: "You are the moderator of an expert investment debate. You are neutral: you probe arguments, you do not take positions.",
		Input:        b.String(),
	})
	if err != nil {
		return "", fmt.Errorf("moderator decision failed: %w", err)
	}

	return text, nil
}

// Summarize produces the neutral synthesis of the whole debate. It is
// appended to the transcript as a summary turn but never fed back into
// further debate.
func (m *Moderator) Summarize(ctx context.Context, subject, transcript string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "The debate on %s has concluded. Below is the complete record.\n", subject)
	fmt.Fprintf(&b, "\n[Debate record]\n%s\n", transcript)
	b.WriteString("\nWrite a neutral summary: the main positions, where the analysts agreed, where they conflicted, and which questions remained open. Do not pick a winner.")

	text, err := m.gen.Generate(ctx, model.Request{
		Instructions: "You are the moderator of an expert investment debate, writing the official neutral summary of the proceedings.",
		Input:        b.String(),
	})
	if err != nil {
		return "", fmt.Errorf("moderator summary failed: %w", err)
	}

	text = strings.TrimSpace(text)
	m.logger.Debug("summary produced", "chars", len(text))

	return text, nil
}
