package service

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
)

func validConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Azure.TenantID = "tenant"
	cfg.Azure.ApplicationID = "app"
	cfg.Azure.ApplicationSecret = "secret"
	cfg.Azure.SubscriptionID = "sub"
	cfg.Azure.ResourceGroupName = "rg-edge"
	cfg.Azure.IPGroupName = "frontdoor"
	return cfg
}

func TestValidationService_ValidateConfig(t *testing.T) {
	validator := NewValidationService()

	t.Run("Valid configuration", func(t *testing.T) {
		if err := validator.ValidateConfig(validConfig()); err != nil {
			t.Errorf("Expected valid config, got error: %v", err)
		}
	})

	t.Run("Missing credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Azure.ApplicationSecret = ""

		err := validator.ValidateConfig(cfg)
		if err == nil {
			t.Fatal("Expected error for missing secret")
		}
		if !errors.HasCode(err, errors.ErrCodeValidation) {
			t.Errorf("Expected VALIDATION_ERROR, got %v", err)
		}

		var fieldErrors config.ValidationErrors
		if !stderrors.As(err, &fieldErrors) {
			t.Fatalf("Expected config.ValidationErrors in chain, got %T", err)
		}
		if !strings.Contains(err.Error(), "azure.application_secret") {
			t.Errorf("Expected field path in error, got: %v", err)
		}
	})

	t.Run("Nil configuration", func(t *testing.T) {
		if err := validator.ValidateConfig(nil); !errors.HasCode(err, errors.ErrCodeConfig) {
			t.Errorf("Expected CONFIG_ERROR, got %v", err)
		}
	})
}

func TestValidationService_Warnings(t *testing.T) {
	validator := NewValidationService()

	if w := validator.Warnings(validConfig()); len(w) != 0 {
		t.Errorf("Expected no warnings, got %v", w)
	}

	cfg := validConfig()
	cfg.Safety.MinimumAcceptableV4Networks = 0
	cfg.General.StatusListenAddr = "0.0.0.0:8080"
	if w := validator.Warnings(cfg); len(w) != 2 {
		t.Errorf("Expected 2 warnings, got %v", w)
	}

	cfg = validConfig()
	cfg.General.StatusListenAddr = "127.0.0.1:8080"
	if w := validator.Warnings(cfg); len(w) != 0 {
		t.Errorf("Expected no warnings for loopback listener, got %v", w)
	}
}
