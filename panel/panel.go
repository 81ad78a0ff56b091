// Package panel implements the role-bound analyst agents. Each Agent owns one
// perspective (chart, news, finance, ...) plus its collected role data and
// produces exactly one statement per invocation: an opening statement when no
// debate context is supplied, a rebuttal or closing statement otherwise.
//
// Agents perform no retries themselves; the model they are constructed with
// is expected to be wrapped by the retry layer already.
package panel

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/debatemesh/logging"
	"github.com/hupe1980/debatemesh/model"
)

// Options configure a panel Agent.
type Options struct {
	// DisplayName is the human-facing name used in transcripts ("finance
	// analyst"). Defaults to the role id.
	DisplayName string
	// Persona is the system-level framing of the agent's expertise.
	Persona string
	// Logger receives per-call diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Agent is one analyst on the panel.
type Agent struct {
	role        string
	displayName string
	persona     string
	data        string
	gen         model.Model
	logger      logging.Logger
}

// New constructs an agent for role, bound to its collected role data blob.
func New(role, data string, gen model.Model, optFns ...func(o *Options)) *Agent {
	opts := Options{
		DisplayName: role,
		Persona:     fmt.Sprintf("You are the %s analyst on an investment debate panel.", role),
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Agent{
		role:        role,
		displayName: opts.DisplayName,
		persona:     opts.Persona,
		data:        data,
		gen:         gen,
		logger:      opts.Logger,
	}
}

// Role returns the registry role id.
func (a *Agent) Role() string { return a.role }

// Name returns the transcript display name.
func (a *Agent) Name() string { return a.displayName }

// Analyze produces one statement about subject. An empty debateContext asks
// for an opening statement grounded only in the agent's own data; otherwise
// the context (moderator instruction plus transcript excerpt) is part of the
// prompt and the agent responds to it. The returned text is non-empty or an
// error is reported.
func (a *Agent) Analyze(ctx context.Context, subject, debateContext string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject under analysis: %s\n\n", subject)
	fmt.Fprintf(&b, "[Your %s data]\n%s\n", a.role, a.data)

	if debateContext == "" {
		b.WriteString("\nDeliver your opening statement: your independent assessment of the subject based strictly on your own data. State a clear position and the evidence behind it.")
	} else {
		fmt.Fprintf(&b, "\n[Debate context]\n%s\n", debateContext)
		b.WriteString("\nRespond to the debate context above. Defend or revise your position, citing both your own data and the arguments already on the table.")
	}

	text, err := a.gen.Generate(ctx, model.Request{
		Instructions: a.persona,
		Input:        b.String(),
	})
	if err != nil {
		return "", fmt.Errorf("%s analysis failed: %w", a.role, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%s produced an empty statement", a.role)
	}

	a.logger.Debug("panel statement produced", "role", a.role, "chars", len(text))

	return text, nil
}
