package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEvent_Constructors(t *testing.T) {
	ev := NewStatusEvent("run-1", "opening statements")
	if ev.Type != EventStatus || ev.Speaker != SpeakerSystem || ev.ID == "" || ev.Timestamp.IsZero() {
		t.Fatalf("NewStatusEvent did not initialize fields correctly: %+v", ev)
	}

	turn := NewTurn("finance", RolePanelist, TagOpening, "hello")
	dev := NewDebateEvent("run-1", turn)
	if dev.Type != EventDebate || dev.Speaker != "finance" || dev.Message != "hello" {
		t.Fatalf("NewDebateEvent malformed: %+v", dev)
	}

	eev := NewErrorEvent("run-1", "news", "collection failed")
	if eev.Type != EventError || eev.Fatal {
		t.Fatalf("NewErrorEvent should be non-fatal: %+v", eev)
	}

	fev := NewFatalEvent("run-1", "no subject")
	if fev.Type != EventError || !fev.Fatal || fev.Speaker != SpeakerSystem {
		t.Fatalf("NewFatalEvent malformed: %+v", fev)
	}

	rev := NewResultEvent("run-1", &ResultData{Summary: "s", Conclusion: "c"})
	if rev.Type != EventResult || rev.Data == nil {
		t.Fatalf("NewResultEvent malformed: %+v", rev)
	}
}

func TestEvent_IsTerminal(t *testing.T) {
	if NewStatusEvent("r", "m").IsTerminal() {
		t.Error("status events are not terminal")
	}
	if NewErrorEvent("r", "news", "m").IsTerminal() {
		t.Error("non-fatal error events are not terminal")
	}
	if !NewFatalEvent("r", "m").IsTerminal() {
		t.Error("fatal events are terminal")
	}
	if !NewResultEvent("r", &ResultData{}).IsTerminal() {
		t.Error("result events are terminal")
	}
}

func TestEvent_WireShape(t *testing.T) {
	ev := NewResultEvent("run-1", &ResultData{
		Summary:       "summary text",
		Conclusion:    "verdict text",
		DiscussionLog: []Turn{NewTurn("finance", RolePanelist, TagOpening, "hi")},
	})

	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(raw)

	for _, key := range []string{`"id"`, `"run_id"`, `"type":"result"`, `"speaker"`, `"timestamp"`, `"discussion_log"`, `"conclusion"`} {
		if !strings.Contains(s, key) {
			t.Errorf("wire payload missing %s in %s", key, s)
		}
	}

	// Omitted flags must not appear on non-fatal events.
	status, _ := json.Marshal(NewStatusEvent("run-1", "m"))
	if strings.Contains(string(status), `"fatal"`) || strings.Contains(string(status), `"data"`) {
		t.Errorf("status event carries empty optional fields: %s", status)
	}
}
