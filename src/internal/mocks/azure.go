// Package mocks provides mock implementations for testing.
//
// This package should ONLY be imported in test files (_test.go).
// The Go toolchain will automatically exclude this package from production builds
// since it's not imported in any production code.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/azure"
)

// MockIPGroupClient is a mock implementation of the IPGroupClient interface.
//
// It simulates a single IP group held in Group. GET returns a copy of it and
// PUT replaces its addresses, so tests can assert on the resulting state and
// on the recorded calls.
//
// Example usage:
//
//	client := mocks.NewMockIPGroupClient("westeurope", `{"owner":"netops"}`)
//	client.PutIPGroupFunc = func(...) (*azure.IPGroup, error) { return nil, errors.New("boom") }
type MockIPGroupClient struct {
	// GetIPGroupFunc is called by GetIPGroup if not nil
	GetIPGroupFunc func(ctx context.Context, token string, id azure.ResourceID) (*azure.IPGroup, error)

	// PutIPGroupFunc is called by PutIPGroup if not nil
	PutIPGroupFunc func(ctx context.Context, token string, id azure.ResourceID, group *azure.IPGroup) (*azure.IPGroup, error)

	// Group is the simulated resource state
	Group *azure.IPGroup

	// Track calls for verification in tests
	GetIPGroupCalls int
	PutIPGroupCalls int
	LastToken       string
	LastPut         *azure.IPGroup
}

// GetIPGroup returns the simulated group.
func (m *MockIPGroupClient) GetIPGroup(ctx context.Context, token string, id azure.ResourceID) (*azure.IPGroup, error) {
	m.GetIPGroupCalls++
	m.LastToken = token
	if m.GetIPGroupFunc != nil {
		return m.GetIPGroupFunc(ctx, token, id)
	}
	return cloneGroup(m.Group), nil
}

// PutIPGroup records the written group and stores it as the new state.
func (m *MockIPGroupClient) PutIPGroup(ctx context.Context, token string, id azure.ResourceID, group *azure.IPGroup) (*azure.IPGroup, error) {
	m.PutIPGroupCalls++
	m.LastToken = token
	m.LastPut = cloneGroup(group)
	if m.PutIPGroupFunc != nil {
		return m.PutIPGroupFunc(ctx, token, id, group)
	}
	m.Group = cloneGroup(group)
	return cloneGroup(group), nil
}

// NewMockIPGroupClient creates a mock holding an empty group with the given
// location and raw JSON tags.
func NewMockIPGroupClient(location, tags string) *MockIPGroupClient {
	group := &azure.IPGroup{
		Location:   location,
		Properties: azure.IPGroupProperties{IPAddresses: []string{}},
	}
	if tags != "" {
		group.Tags = json.RawMessage(tags)
	}
	return &MockIPGroupClient{Group: group}
}

func cloneGroup(g *azure.IPGroup) *azure.IPGroup {
	if g == nil {
		return nil
	}
	out := *g
	if g.Tags != nil {
		out.Tags = append(json.RawMessage(nil), g.Tags...)
	}
	if g.Properties.IPAddresses != nil {
		out.Properties.IPAddresses = append([]string{}, g.Properties.IPAddresses...)
	}
	return &out
}
