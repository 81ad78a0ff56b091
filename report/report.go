// Package report synthesizes the structured decision artifact from the
// finished transcript. Because the generator may wrap the requested JSON in
// prose, synthesis includes a self-repair step: the largest brace-delimited
// substring is extracted from the raw output and strictly parsed. The caller
// always receives a well-formed Result, either a success or a tagged
// failure, never a raw parse error.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/debatemesh/logging"
	"github.com/hupe1980/debatemesh/model"
)

// Artifact is the structured payload the synthesizer asks the generator for.
type Artifact struct {
	Rating    string   `json:"rating"`
	Score     int      `json:"score"`
	KeyPoints []string `json:"key_points"`
	Risks     []string `json:"risks"`
	Summary   string   `json:"summary"`
}

// Result is what Synthesize returns: either a parsed Artifact or a tagged
// failure carrying a truncated prefix of the raw output for diagnosis.
type Result struct {
	Artifact  *Artifact `json:"artifact,omitempty"`
	Failed    bool      `json:"failed,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RawPrefix string    `json:"raw_prefix,omitempty"`
}

// Options configure the Synthesizer.
type Options struct {
	// RawPrefixLen bounds the raw-output excerpt kept on a failed Result.
	RawPrefixLen int
	// Logger receives per-call diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Synthesizer produces the structured artifact with self-repair.
type Synthesizer struct {
	gen          model.Model
	rawPrefixLen int
	logger       logging.Logger
}

// New constructs a Synthesizer on top of a generation client.
func New(gen model.Model, optFns ...func(o *Options)) *Synthesizer {
	opts := Options{
		RawPrefixLen: 280,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Synthesizer{gen: gen, rawPrefixLen: opts.RawPrefixLen, logger: opts.Logger}
}

// Synthesize requests the structured artifact and repairs the raw output into
// a Result. The error return covers only the generation call itself; every
// parse problem downstream of a successful generation becomes a tagged
// failure Result.
func (s *Synthesizer) Synthesize(ctx context.Context, subject, transcript string) (*Result, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Below is the complete debate record on %s.\n", subject)
	fmt.Fprintf(&b, "\n[Debate record]\n%s\n", transcript)
	b.WriteString(`
Condense the debate into a JSON object with exactly these fields:
{
  "rating": "strong buy | buy | hold | sell | strong sell",
  "score": <integer 0-10>,
  "key_points": ["the three most decisive arguments"],
  "risks": ["the critical weaknesses the debate exposed"],
  "summary": "two or three sentences of investment thesis"
}
Output only the JSON object, nothing else.`)

	raw, err := s.gen.Generate(ctx, model.Request{
		Instructions: "You are the chief strategy analyst distilling an expert debate into a machine-readable report.",
		Input:        b.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}

	return s.repair(raw), nil
}

// repair isolates and parses the structured payload from raw generator
// output, degrading to a tagged failure instead of propagating parse errors.
func (s *Synthesizer) repair(raw string) *Result {
	payload, ok := extractBraced(raw)
	if !ok {
		s.logger.Warn("report output contained no brace-delimited payload")
		return s.fail("no structured payload found in output", raw)
	}

	var artifact Artifact
	if err := json.Unmarshal([]byte(payload), &artifact); err != nil {
		s.logger.Warn("report payload failed strict parse", "error", err)
		return s.fail(fmt.Sprintf("payload is not valid JSON: %v", err), raw)
	}

	return &Result{Artifact: &artifact}
}

func (s *Synthesizer) fail(reason, raw string) *Result {
	prefix := raw
	if len(prefix) > s.rawPrefixLen {
		prefix = prefix[:s.rawPrefixLen]
	}
	return &Result{Failed: true, Reason: reason, RawPrefix: prefix}
}

// extractBraced returns the largest balanced brace-delimited substring of s.
// The scan counts brace depth only; that is enough to strip the prose the
// generator tends to wrap around the payload.
func extractBraced(s string) (string, bool) {
	best := ""
	depth := 0
	start := -1
	for i, r := range s {
		switch r {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue // stray closer before any opener
			}
			depth--
			if depth == 0 {
				candidate := s[start : i+1]
				if len(candidate) > len(best) {
					best = candidate
				}
			}
		}
	}
	return best, best != ""
}
