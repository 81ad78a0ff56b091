package core

import "time"

// Phase identifies where a session currently is in its life cycle.
type Phase string

const (
	// PhaseIntake resolves the subject and collects role data.
	PhaseIntake Phase = "intake"
	// PhaseOpening runs the concurrent opening statements.
	PhaseOpening Phase = "opening"
	// PhaseDebate runs the bounded moderated loop.
	PhaseDebate Phase = "debate"
	// PhaseClosing runs the sequential closing statements.
	PhaseClosing Phase = "closing"
	// PhaseSummary produces the moderator's neutral synthesis.
	PhaseSummary Phase = "summary"
	// PhaseAdjudication produces the terminal verdict.
	PhaseAdjudication Phase = "adjudication"
	// PhaseReport produces the structured artifact.
	PhaseReport Phase = "report"
	// PhaseDone is the successful terminal state.
	PhaseDone Phase = "done"
	// PhaseFailed is the terminal state after an unrecoverable error.
	PhaseFailed Phase = "failed"
)

// Session is the per-run record of one end-to-end debate. It is created when
// a request arrives and discarded after the final event; the controller owns
// it exclusively for its lifetime, so there is no locking here.
type Session struct {
	ID      string    `json:"id"`
	Query   string    `json:"query"`
	Subject string    `json:"subject"`
	Ticker  string    `json:"ticker"`
	Started time.Time `json:"started"`
	Phase   Phase     `json:"phase"`
	Round   int       `json:"round"`
}

// NewSession creates a session in the intake phase.
func NewSession(id, query string) *Session {
	return &Session{
		ID:      id,
		Query:   query,
		Started: time.Now().UTC(),
		Phase:   PhaseIntake,
	}
}

// Terminal reports whether the session has reached a final phase.
func (s *Session) Terminal() bool {
	return s.Phase == PhaseDone || s.Phase == PhaseFailed
}
