package mocks

import (
	"context"
)

// MockPrefixSource is a mock implementation of the PrefixSource interface.
type MockPrefixSource struct {
	// FetchPrefixesFunc is called by FetchPrefixes if not nil
	FetchPrefixesFunc func(ctx context.Context) ([]string, error)

	// Prefixes is returned when FetchPrefixesFunc is nil
	Prefixes []string

	FetchPrefixesCalls int
}

// FetchPrefixes returns Prefixes unless FetchPrefixesFunc is set.
func (m *MockPrefixSource) FetchPrefixes(ctx context.Context) ([]string, error) {
	m.FetchPrefixesCalls++
	if m.FetchPrefixesFunc != nil {
		return m.FetchPrefixesFunc(ctx)
	}
	return append([]string{}, m.Prefixes...), nil
}

// NewMockPrefixSource creates a source returning prefixes.
func NewMockPrefixSource(prefixes ...string) *MockPrefixSource {
	return &MockPrefixSource{Prefixes: prefixes}
}
