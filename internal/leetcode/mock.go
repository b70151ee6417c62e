package leetcode

import (
	"context"
	"sync"
)

// MockFetcher is a deterministic Fetcher for tests. Slugs without a canned
// entry return ErrNotFound.
type MockFetcher struct {
	mu       sync.Mutex
	problems map[string]*Metadata
	errs     map[string]error
	Calls    []string
}

// NewMockFetcher creates a MockFetcher serving the given problems by slug.
func NewMockFetcher(problems ...*Metadata) *MockFetcher {
	m := &MockFetcher{problems: map[string]*Metadata{}, errs: map[string]error{}}
	for _, p := range problems {
		m.problems[p.Slug] = p
	}
	return m
}

// FailWith makes slug fail with err.
func (m *MockFetcher) FailWith(slug string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[slug] = err
}

func (m *MockFetcher) Fetch(_ context.Context, slug string) (*Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, slug)
	if err, ok := m.errs[slug]; ok {
		return nil, err
	}
	p, ok := m.problems[slug]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	return &cp, nil
}

// CallCount returns the number of Fetch calls made.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
