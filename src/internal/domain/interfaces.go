// Package domain defines core interfaces for dependency injection and abstraction.
//
// This package contains the fundamental interfaces that enable loose coupling between
// the pipeline stages and facilitate testing through dependency injection.
package domain

import (
	"context"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/auth"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/azure"
)

// TokenProvider obtains a bearer token for the management API.
type TokenProvider interface {
	// AcquireToken performs one credential exchange. Failures carry AUTH_ERROR.
	AcquireToken(ctx context.Context) (*auth.AccessToken, error)
}

// PrefixSource returns the raw, unclassified prefix list.
type PrefixSource interface {
	// FetchPrefixes returns every prefix of the configured section, or an
	// error. Partial results are never returned.
	FetchPrefixes(ctx context.Context) ([]string, error)
}

// IPGroupClient reads and replaces the target IP group.
//
// This interface abstracts the resource manager client, allowing tests to
// observe which calls were made without a network.
type IPGroupClient interface {
	GetIPGroup(ctx context.Context, token string, id azure.ResourceID) (*azure.IPGroup, error)
	PutIPGroup(ctx context.Context, token string, id azure.ResourceID, group *azure.IPGroup) (*azure.IPGroup, error)
}
