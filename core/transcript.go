package core

import (
	"fmt"
	"strings"
	"time"
)

// Role classifies who produced a turn.
type Role string

const (
	// RolePanelist marks statements by one of the analyst agents.
	RolePanelist Role = "panelist"
	// RoleModerator marks instructions and summaries from the moderator.
	RoleModerator Role = "moderator"
	// RoleSystem marks turns injected by the controller itself.
	RoleSystem Role = "system"
)

// PhaseTag labels the debate phase a turn belongs to.
type PhaseTag string

const (
	// TagOpening labels the concurrent opening statements.
	TagOpening PhaseTag = "opening"
	// TagInstruction labels moderator routing instructions.
	TagInstruction PhaseTag = "instruction"
	// TagRebuttal labels mid-debate panelist statements.
	TagRebuttal PhaseTag = "rebuttal"
	// TagClosing labels the sequential closing statements.
	TagClosing PhaseTag = "closing"
	// TagSummary labels the moderator's neutral synthesis.
	TagSummary PhaseTag = "summary"
)

// Turn is one contribution to the debate. Immutable once created.
type Turn struct {
	Speaker   string    `json:"speaker"`
	Role      Role      `json:"role"`
	Phase     PhaseTag  `json:"phase"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a timestamped turn.
func NewTurn(speaker string, role Role, phase PhaseTag, text string) Turn {
	return Turn{
		Speaker:   speaker,
		Role:      role,
		Phase:     phase,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// Transcript is the ordered, append-only log of all turns in a session.
// Insertion order is the only order. It is owned exclusively by the single
// goroutine driving a session, so it carries no lock; everything handed to
// agents is a rendered string or a defensive copy.
type Transcript struct {
	turns []Turn
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript { return &Transcript{} }

// Append adds a turn. Turns are never mutated or removed afterwards.
func (t *Transcript) Append(turn Turn) { t.turns = append(t.turns, turn) }

// Len returns the number of turns recorded so far.
func (t *Transcript) Len() int { return len(t.turns) }

// Turns returns a defensive copy of the full turn sequence.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// CountPhase returns how many turns carry the given phase tag.
func (t *Transcript) CountPhase(phase PhaseTag) int {
	n := 0
	for _, turn := range t.turns {
		if turn.Phase == phase {
			n++
		}
	}
	return n
}

// Render produces the textual debate record handed to agents as context.
// Each turn is framed with its speaker so the generator can attribute
// arguments.
func (t *Transcript) Render() string {
	var b strings.Builder
	for _, turn := range t.turns {
		fmt.Fprintf(&b, "\n[%s]\n%s\n", turn.Speaker, turn.Text)
	}
	return b.String()
}

// Tail renders the most recent turns up to roughly maxChars characters.
// Rebuttal context favors recency over completeness; older turns are dropped
// whole rather than truncated mid-statement.
func (t *Transcript) Tail(maxChars int) string {
	if maxChars <= 0 {
		return t.Render()
	}
	total := 0
	start := len(t.turns)
	for i := len(t.turns) - 1; i >= 0; i-- {
		// speaker framing counts toward the budget too
		cost := len(t.turns[i].Text) + len(t.turns[i].Speaker) + 5
		if total+cost > maxChars && start < len(t.turns) {
			break
		}
		total += cost
		start = i
	}
	var b strings.Builder
	for _, turn := range t.turns[start:] {
		fmt.Fprintf(&b, "\n[%s]\n%s\n", turn.Speaker, turn.Text)
	}
	return b.String()
}
