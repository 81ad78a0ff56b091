package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/debatemesh/logging"
	"github.com/hupe1980/debatemesh/model"
)

// noneSentinel is what the extraction prompt instructs the generator to
// output when the query names no recognizable subject.
const noneSentinel = "NONE"

// ModelResolverOptions configure a ModelResolver.
type ModelResolverOptions struct {
	// Logger receives per-call diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// ModelResolver extracts the subject from a free-form query using the
// generation client itself: colloquial names ("the iphone maker") resolve to
// a ticker and company name no symbol table would catch.
type ModelResolver struct {
	gen    model.Model
	logger logging.Logger
}

// NewModelResolver builds a resolver on top of a generation client.
func NewModelResolver(gen model.Model, optFns ...func(o *ModelResolverOptions)) *ModelResolver {
	opts := ModelResolverOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ModelResolver{gen: gen, logger: opts.Logger}
}

// Resolve implements SubjectResolver. The NONE sentinel and empty output both
// map to ErrSubjectNotFound; generation failures are returned as-is.
func (r *ModelResolver) Resolve(ctx context.Context, query string) (Subject, error) {
	text, err := r.gen.Generate(ctx, model.Request{
		Instructions: `You identify the single stock a question is about.

Rules:
1. Output exactly one line: the ticker symbol, a space, then the official company name.
2. Korean listings use their six digit code (example: 005930 Samsung Electronics); other markets use the exchange symbol (example: AAPL Apple).
3. No explanations, no punctuation beyond the line itself.
4. If the question names no identifiable stock, output exactly NONE.`,
		Input: fmt.Sprintf("Question: %s", query),
	})
	if err != nil {
		return Subject{}, fmt.Errorf("subject extraction failed: %w", err)
	}

	line := strings.TrimSpace(text)
	if line == "" || strings.EqualFold(line, noneSentinel) {
		return Subject{}, ErrSubjectNotFound
	}

	fields := strings.Fields(line)
	subject := Subject{Ticker: fields[0]}
	if len(fields) > 1 {
		subject.Name = strings.Join(fields[1:], " ")
	} else {
		subject.Name = subject.Ticker
	}

	r.logger.Debug("subject resolved", "ticker", subject.Ticker, "name", subject.Name)

	return subject, nil
}
