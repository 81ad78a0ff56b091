// Package decision turns the moderator's free-text control output into a
// typed signal. The generator is asked for three labeled fields (STATUS,
// NEXT_SPEAKER, INSTRUCTION) but nothing guarantees it complies, so Parse is
// total: any input yields a Decision, never an error. Ambiguity is its own
// status, so callers can distinguish an explicit TERMINATE from text the
// parser could not interpret; both end the loop.
package decision

import (
	"regexp"
	"strings"
)

// Status is the parsed control state of the debate.
type Status int

const (
	// StatusUnparseable means no reliable control signal was found. For loop
	// purposes it terminates the debate, but it is reported separately so
	// parser drift is observable.
	StatusUnparseable Status = iota
	// StatusContinue routes the debate to the named next speaker.
	StatusContinue
	// StatusTerminate is the moderator's explicit end of debate.
	StatusTerminate
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "CONTINUE"
	case StatusTerminate:
		return "TERMINATE"
	default:
		return "UNPARSEABLE"
	}
}

// Decision is the best-effort typed interpretation of the moderator's output.
// It is derived, not authoritative: NextSpeaker is only set when it matched a
// known role, and Instruction may be empty.
type Decision struct {
	Status      Status
	NextSpeaker string
	Instruction string
}

var (
	statusRe      = regexp.MustCompile(`(?i)STATUS\s*:\s*\[?\s*(CONTINUE|TERMINATE)`)
	speakerRe     = regexp.MustCompile(`(?i)NEXT_SPEAKER\s*:\s*([^\n]*)`)
	instructionRe = regexp.MustCompile(`(?is)INSTRUCTION\s*:\s*(.*)`)
)

// Parse extracts a Decision from raw moderator text. roles is the set of
// known registry role ids; the speaker match is case-insensitive and
// containment based because the generator tends to wrap the role name in
// extra words or brackets.
//
// Rules:
//   - no STATUS token: unparseable (never assume CONTINUE)
//   - TERMINATE short-circuits; speaker and instruction are ignored
//   - CONTINUE without a resolvable speaker: unparseable for routing
func Parse(raw string, roles []string) Decision {
	status := statusRe.FindStringSubmatch(raw)
	if status == nil {
		return Decision{Status: StatusUnparseable}
	}

	if strings.EqualFold(status[1], "TERMINATE") {
		return Decision{Status: StatusTerminate}
	}

	speaker := matchSpeaker(raw, roles)
	if speaker == "" {
		return Decision{Status: StatusUnparseable}
	}

	var instruction string
	if m := instructionRe.FindStringSubmatch(raw); m != nil {
		instruction = strings.TrimSpace(m[1])
	}

	return Decision{
		Status:      StatusContinue,
		NextSpeaker: speaker,
		Instruction: instruction,
	}
}

// matchSpeaker resolves the NEXT_SPEAKER value against known roles, returning
// the canonical role id or "" when nothing matches.
func matchSpeaker(raw string, roles []string) string {
	m := speakerRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	captured := strings.ToLower(m[1])
	for _, role := range roles {
		if role != "" && strings.Contains(captured, strings.ToLower(role)) {
			return role
		}
	}
	return ""
}
