// Package utils provides general-purpose helpers for frontdoor-ipgroup-updater.
//
// # Components
//
//   - Prefix utilities: strict parsing of CIDR strings into netip.Prefix
//   - HTTP utilities: the shared, pooled HTTP client with an explicit timeout
//   - Path utilities: resolving relative paths against a base directory
//   - File utilities: closing readers and response bodies safely
//
// # Example Usage
//
//	prefix, err := utils.ParseNetworkPrefix("10.0.0.0/8")
//	if err != nil {
//	    log.Warnf("skipping %q: %v", "10.0.0.0/8", err)
//	}
//
//	client := utils.NewHTTPClient(30 * time.Second)
package utils
