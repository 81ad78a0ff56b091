// Package collector defines the contracts for the data-intake collaborators:
// resolving a free-form user query to a concrete subject, and fetching the
// per-role data blobs the panel argues from. Real collectors (filings, news
// feeds, chart pipelines) live outside this module; the implementations here
// are a symbol-table resolver, a model-backed resolver and a static fetcher
// for tests, examples and offline use.
package collector

import (
	"context"
	"errors"
	"strings"
)

// ErrSubjectNotFound is returned when a query cannot be resolved to any
// known subject. The controller treats it as fatal and user-facing.
var ErrSubjectNotFound = errors.New("subject not identified")

// Subject identifies what the session analyzes.
type Subject struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
}

// SubjectResolver turns a free-form user query into a Subject.
type SubjectResolver interface {
	Resolve(ctx context.Context, query string) (Subject, error)
}

// DataFetcher collects the opaque text blob one panel role argues from.
type DataFetcher interface {
	Fetch(ctx context.Context, subject Subject, role string) (string, error)
}

// ResolverFunc adapts a function to the SubjectResolver interface.
type ResolverFunc func(ctx context.Context, query string) (Subject, error)

// Resolve implements SubjectResolver.
func (f ResolverFunc) Resolve(ctx context.Context, query string) (Subject, error) {
	return f(ctx, query)
}

// FetcherFunc adapts a function to the DataFetcher interface.
type FetcherFunc func(ctx context.Context, subject Subject, role string) (string, error)

// Fetch implements DataFetcher.
func (f FetcherFunc) Fetch(ctx context.Context, subject Subject, role string) (string, error) {
	return f(ctx, subject, role)
}

// StaticResolver resolves queries against a fixed symbol table by
// case-insensitive containment of the subject name or ticker in the query.
type StaticResolver struct {
	subjects []Subject
}

// NewStaticResolver builds a resolver over a fixed set of known subjects.
func NewStaticResolver(subjects ...Subject) *StaticResolver {
	return &StaticResolver{subjects: subjects}
}

// Resolve implements SubjectResolver.
func (r *StaticResolver) Resolve(_ context.Context, query string) (Subject, error) {
	q := strings.ToLower(query)
	for _, s := range r.subjects {
		if s.Name != "" && strings.Contains(q, strings.ToLower(s.Name)) {
			return s, nil
		}
		if s.Ticker != "" && strings.Contains(q, strings.ToLower(s.Ticker)) {
			return s, nil
		}
	}
	return Subject{}, ErrSubjectNotFound
}

// StaticFetcher serves fixed role data blobs, keyed by role id. Roles without
// an entry get an explicit "no data" blob rather than an error, so a panel
// can still argue from an empty hand.
type StaticFetcher struct {
	data map[string]string
}

// NewStaticFetcher builds a fetcher over fixed per-role blobs.
func NewStaticFetcher(data map[string]string) *StaticFetcher {
	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return &StaticFetcher{data: copied}
}

// Fetch implements DataFetcher.
func (f *StaticFetcher) Fetch(_ context.Context, _ Subject, role string) (string, error) {
	if blob, ok := f.data[role]; ok {
		return blob, nil
	}
	return "No data was collected for this role.", nil
}
