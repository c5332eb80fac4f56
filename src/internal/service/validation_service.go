package service

import (
	"net"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
)

// ValidationService provides centralized configuration validation.
//
// It validates:
//   - Field constraints (required identifiers, URLs, names, cron schedule)
//   - Transport security of the credential and management endpoints
//
// and reports non-fatal concerns through Warnings.
type ValidationService struct {
	// No dependencies needed - validation is pure logic
}

// NewValidationService creates a new validation service.
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// ValidateConfig returns a VALIDATION_ERROR wrapping config.ValidationErrors
// when cfg is unusable.
func (v *ValidationService) ValidateConfig(cfg *config.Config) error {
	if cfg == nil {
		return errors.NewConfigError("configuration is not loaded", nil)
	}
	if err := cfg.ValidateConfig(); err != nil {
		return errors.NewValidationError("configuration is invalid", err)
	}
	return nil
}

// Warnings lists settings that are valid but probably unintended.
func (v *ValidationService) Warnings(cfg *config.Config) []string {
	var warnings []string

	if cfg.Safety.MinimumAcceptableV4Networks == 0 {
		warnings = append(warnings,
			"safety.minimum_acceptable_v4_networks is 0: a single fetched IPv4 network is enough to overwrite the IP group")
	}

	if addr := cfg.General.StatusListenAddr; addr != "" {
		if host, _, err := net.SplitHostPort(addr); err == nil && !isLoopback(host) {
			warnings = append(warnings,
				"general.status_listen_addr "+addr+" is reachable from other hosts; the status API has no authentication")
		}
	}

	return warnings
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
