package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// mockStep is one scripted outcome: a canned text or an error.
type mockStep struct {
	text string
	err  error
}

// MockModel is a scriptable in-memory Model for tests and examples. Outcomes
// are resolved in this order:
//
//  1. A queued step (Queue / QueueError), consumed FIFO
//  2. A registered substring match against the request input (AddResponse)
//  3. A generated default echoing the input
//
// It is safe for concurrent use; opening statements fan out in parallel.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	queue     []mockStep
	responses map[string]string
	requests  []Request
}

// NewMockModel constructs an empty MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// Queue appends a canned completion consumed by the next Generate call.
func (m *MockModel) Queue(text string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockStep{text: text})
	return m
}

// QueueError appends a failure consumed by the next Generate call.
func (m *MockModel) QueueError(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockStep{err: err})
	return m
}

// AddResponse registers a canned completion returned whenever the request
// input contains substr. Queued steps take precedence.
func (m *MockModel) AddResponse(substr, response string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[substr] = response
	return m
}

// Requests returns a copy of all requests seen so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of Generate calls made.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.queue) > 0 {
		step := m.queue[0]
		m.queue = m.queue[1:]
		return step.text, step.err
	}

	for substr, response := range m.responses {
		if strings.Contains(req.Input, substr) || strings.Contains(req.Instructions, substr) {
			return response, nil
		}
	}

	return fmt.Sprintf("Mock response to: %s", req.Input), nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
