// Package auth acquires bearer tokens for the Azure management API.
//
// Tokens are obtained with the OAuth2 client-credentials flow against the
// Microsoft identity platform v2.0 token endpoint of a tenant. A token is
// requested once per run and never cached or persisted.
//
// When the identity provider refuses the request, AcquireToken returns an
// *errors.Error with code AUTH_ERROR whose details carry the provider's
// "error" and "error_description" values (see DetailProviderError and
// DetailProviderErrorDescription).
package auth
