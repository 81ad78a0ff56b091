package testutil

import (
	"github.com/hupe1980/debatemesh/core"
)

// Drain collects all events from a run's stream until the channel is closed.
func Drain(events <-chan core.Event) []core.Event {
	var out []core.Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

// OfType filters events by type, preserving order.
func OfType(events []core.Event, t core.EventType) []core.Event {
	var out []core.Event
	for _, ev := range events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Result returns the single result event in the stream, or nil if the run
// produced none.
func Result(events []core.Event) *core.Event {
	for i := range events {
		if events[i].Type == core.EventResult {
			return &events[i]
		}
	}
	return nil
}

// TurnsInPhase filters a discussion log down to the turns tagged with the
// given phase.
func TurnsInPhase(turns []core.Turn, phase core.PhaseTag) []core.Turn {
	var out []core.Turn
	for _, turn := range turns {
		if turn.Phase == phase {
			out = append(out, turn)
		}
	}
	return out
}
