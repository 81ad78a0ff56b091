package core

import (
	"time"

	"github.com/google/uuid"
)

// EventType categorizes an externally observable step of a session.
type EventType string

const (
	// EventStatus marks a phase boundary or other progress notice.
	EventStatus EventType = "status"
	// EventDebate carries a single spoken Turn of the debate.
	EventDebate EventType = "debate"
	// EventError reports a degraded step or, when Fatal is set, session failure.
	EventError EventType = "error"
	// EventResult is the terminal success event carrying the session output.
	EventResult EventType = "result"
)

// SpeakerSystem identifies events authored by the controller itself rather
// than a panelist or the moderator.
const SpeakerSystem = "system"

// ResultData is the payload attached to the terminal result event.
type ResultData struct {
	Summary       string `json:"summary"`
	Conclusion    string `json:"conclusion"`
	DiscussionLog []Turn `json:"discussion_log"`
	Report        any    `json:"report,omitempty"`
}

// Event is the unit of communication between a running session and its
// caller. After emission it must be treated as immutable; the controller
// never retains emitted events. A stream ends with exactly one result event
// or one error event with Fatal set, followed by channel close.
type Event struct {
	ID        string      `json:"id"`
	RunID     string      `json:"run_id,omitempty"`
	Type      EventType   `json:"type"`
	Speaker   string      `json:"speaker"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Fatal     bool        `json:"fatal,omitempty"`
	Data      *ResultData `json:"data,omitempty"`
}

// NewEvent creates a bare event bound to a run. Prefer the typed helper
// constructors for common categories.
func NewEvent(runID string, t EventType, speaker, message string) Event {
	return Event{
		ID:        NewID(),
		RunID:     runID,
		Type:      t,
		Speaker:   speaker,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusEvent reports controller progress (phase entry, routing notices).
func NewStatusEvent(runID, message string) Event {
	return NewEvent(runID, EventStatus, SpeakerSystem, message)
}

// NewDebateEvent wraps a spoken turn for streaming to the caller.
func NewDebateEvent(runID string, turn Turn) Event {
	return NewEvent(runID, EventDebate, turn.Speaker, turn.Text)
}

// NewErrorEvent reports a degraded (non-fatal) failure attributed to speaker.
func NewErrorEvent(runID, speaker, message string) Event {
	return NewEvent(runID, EventError, speaker, message)
}

// NewFatalEvent reports an unrecoverable failure terminating the session.
func NewFatalEvent(runID, message string) Event {
	ev := NewEvent(runID, EventError, SpeakerSystem, message)
	ev.Fatal = true
	return ev
}

// NewResultEvent is the terminal success event.
func NewResultEvent(runID string, data *ResultData) Event {
	ev := NewEvent(runID, EventResult, SpeakerSystem, "session complete")
	ev.Data = data
	return ev
}

// IsTerminal reports whether no further events can follow this one.
func (e Event) IsTerminal() bool {
	return e.Type == EventResult || (e.Type == EventError && e.Fatal)
}

// NewID generates a unique identifier for events, runs and sessions.
func NewID() string { return uuid.NewString() }
