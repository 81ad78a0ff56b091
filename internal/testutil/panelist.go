package testutil

import (
	"context"
	"sync"
)

// StubPanelist is a scripted panelist for controller tests. It records every
// Analyze call and answers with a fixed reply or a fixed error.
type StubPanelist struct {
	RoleID string
	Reply  string
	Err    error

	mu    sync.Mutex
	calls []string
}

// Role returns the panelist's role identifier.
func (s *StubPanelist) Role() string { return s.RoleID }

// Analyze records the debate context it was given and returns the scripted
// reply or error.
func (s *StubPanelist) Analyze(_ context.Context, _ string, debateContext string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, debateContext)
	s.mu.Unlock()

	if s.Err != nil {
		return "", s.Err
	}
	return s.Reply, nil
}

// Calls returns a copy of the debate contexts passed to Analyze, in call
// order.
func (s *StubPanelist) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns the number of Analyze invocations.
func (s *StubPanelist) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
