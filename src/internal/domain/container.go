package domain

import (
	"net/http"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/auth"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/azure"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/lists"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/utils"
)

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// Every component shares one pooled HTTP client. The container holds no
// mutable state, so one instance can serve any number of runs.
//
// Usage:
//
//	deps := domain.NewAppDependencies(cfg)
//	token, err := deps.TokenProvider().AcquireToken(ctx)
type AppDependencies struct {
	httpClient *http.Client

	tokenProvider TokenProvider
	prefixSource  PrefixSource
	ipGroupClient IPGroupClient
	resourceID    azure.ResourceID
}

// NewAppDependencies creates a new dependency container with production implementations.
func NewAppDependencies(cfg *config.Config) *AppDependencies {
	httpClient := utils.NewHTTPClient(cfg.HTTPTimeout())

	tokenProvider := auth.NewClientCredentialsProvider(auth.Credentials{
		TenantID:      cfg.Azure.TenantID,
		ClientID:      cfg.Azure.ApplicationID,
		ClientSecret:  cfg.Azure.ApplicationSecret,
		AuthorityHost: cfg.Azure.AuthorityHost,
		Scope:         cfg.Azure.Scope,
	}, httpClient)

	prefixSource := lists.NewDownloader(lists.Options{
		PageURL:    cfg.Source.PageURL,
		SectionID:  cfg.Source.SectionID,
		UserAgent:  cfg.Source.UserAgent,
		HTTPClient: httpClient,
	})

	ipGroupClient := azure.NewClient(cfg.Azure.ManagementEndpoint, cfg.Azure.APIVersion, httpClient)

	return &AppDependencies{
		httpClient:    httpClient,
		tokenProvider: tokenProvider,
		prefixSource:  prefixSource,
		ipGroupClient: ipGroupClient,
		resourceID:    ResourceIDFromConfig(cfg),
	}
}

// NewTestDependencies creates a dependency container with the given implementations.
//
// This is a convenience method for testing. Provide mock implementations for
// any dependencies you want to control in your tests.
func NewTestDependencies(
	tokenProvider TokenProvider,
	prefixSource PrefixSource,
	ipGroupClient IPGroupClient,
	resourceID azure.ResourceID,
) *AppDependencies {
	return &AppDependencies{
		httpClient:    http.DefaultClient,
		tokenProvider: tokenProvider,
		prefixSource:  prefixSource,
		ipGroupClient: ipGroupClient,
		resourceID:    resourceID,
	}
}

// ResourceIDFromConfig names the IP group configured in cfg.
func ResourceIDFromConfig(cfg *config.Config) azure.ResourceID {
	return azure.ResourceID{
		SubscriptionID: cfg.Azure.SubscriptionID,
		ResourceGroup:  cfg.Azure.ResourceGroupName,
		Name:           cfg.Azure.IPGroupName,
	}
}

// HTTPClient returns the shared HTTP client.
func (d *AppDependencies) HTTPClient() *http.Client {
	return d.httpClient
}

// TokenProvider returns the credential provider.
func (d *AppDependencies) TokenProvider() TokenProvider {
	return d.tokenProvider
}

// PrefixSource returns the vendor list fetcher.
func (d *AppDependencies) PrefixSource() PrefixSource {
	return d.prefixSource
}

// IPGroupClient returns the resource manager client.
func (d *AppDependencies) IPGroupClient() IPGroupClient {
	return d.ipGroupClient
}

// ResourceID returns the target IP group.
func (d *AppDependencies) ResourceID() azure.ResourceID {
	return d.resourceID
}
