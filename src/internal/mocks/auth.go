package mocks

import (
	"context"
	"time"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/auth"
)

// MockTokenProvider is a mock implementation of the TokenProvider interface.
type MockTokenProvider struct {
	// AcquireTokenFunc is called by AcquireToken if not nil
	AcquireTokenFunc func(ctx context.Context) (*auth.AccessToken, error)

	AcquireTokenCalls int
}

// AcquireToken returns a fixed token valid for one hour unless AcquireTokenFunc is set.
func (m *MockTokenProvider) AcquireToken(ctx context.Context) (*auth.AccessToken, error) {
	m.AcquireTokenCalls++
	if m.AcquireTokenFunc != nil {
		return m.AcquireTokenFunc(ctx)
	}
	return &auth.AccessToken{Value: "mock-token", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// NewMockTokenProviderWithError creates a provider that always fails with err.
func NewMockTokenProviderWithError(err error) *MockTokenProvider {
	return &MockTokenProvider{
		AcquireTokenFunc: func(ctx context.Context) (*auth.AccessToken, error) {
			return nil, err
		},
	}
}
