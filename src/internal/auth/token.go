package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	apperrors "github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
)

const (
	DetailProviderError            = "error"
	DetailProviderErrorDescription = "error_description"

	tokenURLTemplate = "{{authority_host}}/{{tenant_id}}/oauth2/v2.0/token"
)

// AccessToken is an opaque bearer token with the expiry reported by the provider.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// String never prints the token itself.
func (t *AccessToken) String() string {
	if t == nil {
		return "<nil>"
	}
	return "AccessToken(expires " + t.ExpiresAt.Format(time.RFC3339) + ")"
}

// Credentials identify the service principal used for the exchange.
type Credentials struct {
	TenantID      string
	ClientID      string
	ClientSecret  string
	AuthorityHost string
	Scope         string
}

// ClientCredentialsProvider exchanges an application's own identifier and secret for a token.
type ClientCredentialsProvider struct {
	oauthCfg   *clientcredentials.Config
	httpClient *http.Client
}

// NewClientCredentialsProvider creates a provider. If httpClient is nil, http.DefaultClient is used.
func NewClientCredentialsProvider(creds Credentials, httpClient *http.Client) *ClientCredentialsProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &ClientCredentialsProvider{
		oauthCfg: &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     TokenURL(creds.AuthorityHost, creds.TenantID),
			Scopes:       []string{creds.Scope},
			// Auto-detection retries with a second request on failure; the
			// identity platform accepts credentials in the body.
			AuthStyle: oauth2.AuthStyleInParams,
		},
		httpClient: httpClient,
	}
}

// TokenURL returns the v2.0 token endpoint of tenantID at authorityHost.
func TokenURL(authorityHost, tenantID string) string {
	return fasttemplate.ExecuteString(tokenURLTemplate, "{{", "}}", map[string]interface{}{
		"authority_host": strings.TrimRight(authorityHost, "/"),
		"tenant_id":      url.PathEscape(tenantID),
	})
}

// AcquireToken performs the client-credentials exchange.
func (p *ClientCredentialsProvider) AcquireToken(ctx context.Context) (*AccessToken, error) {
	log.Debugf("Requesting access token from %s", p.oauthCfg.TokenURL)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.oauthCfg.Token(ctx)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			providerErr := rerr.ErrorCode
			if providerErr == "" && rerr.Response != nil {
				providerErr = rerr.Response.Status
			}
			return nil, apperrors.NewAuthError("identity provider rejected the token request", err).
				WithDetail(DetailProviderError, providerErr).
				WithDetail(DetailProviderErrorDescription, rerr.ErrorDescription)
		}
		return nil, apperrors.NewAuthError("failed to acquire access token", err)
	}

	log.Debugf("Access token acquired, expires at %s", tok.Expiry.Format(time.RFC3339))
	return &AccessToken{Value: tok.AccessToken, ExpiresAt: tok.Expiry}, nil
}
