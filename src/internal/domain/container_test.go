package domain

import (
	"testing"
	"time"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/azure"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Azure.TenantID = "tenant"
	cfg.Azure.ApplicationID = "app"
	cfg.Azure.ApplicationSecret = "secret"
	cfg.Azure.SubscriptionID = "sub"
	cfg.Azure.ResourceGroupName = "rg"
	cfg.Azure.IPGroupName = "frontdoor"
	cfg.General.HTTPTimeoutSeconds = 7
	return cfg
}

func TestNewAppDependencies(t *testing.T) {
	deps := NewAppDependencies(testConfig())

	if deps.TokenProvider() == nil {
		t.Error("Expected token provider to be created")
	}
	if deps.PrefixSource() == nil {
		t.Error("Expected prefix source to be created")
	}
	if deps.IPGroupClient() == nil {
		t.Error("Expected IP group client to be created")
	}
	if deps.HTTPClient().Timeout != 7*time.Second {
		t.Errorf("Expected 7s HTTP timeout, got %v", deps.HTTPClient().Timeout)
	}

	want := azure.ResourceID{SubscriptionID: "sub", ResourceGroup: "rg", Name: "frontdoor"}
	if deps.ResourceID() != want {
		t.Errorf("Expected resource ID %v, got %v", want, deps.ResourceID())
	}
}

func TestDependenciesReturnSameInstance(t *testing.T) {
	deps := NewAppDependencies(testConfig())

	if deps.TokenProvider() != deps.TokenProvider() {
		t.Error("Expected same token provider instance on multiple calls")
	}
	if deps.IPGroupClient() != deps.IPGroupClient() {
		t.Error("Expected same IP group client instance on multiple calls")
	}
}

func TestNewTestDependencies(t *testing.T) {
	id := azure.ResourceID{Name: "x"}
	deps := NewTestDependencies(nil, nil, nil, id)

	if deps.TokenProvider() != nil {
		t.Error("Expected nil token provider")
	}
	if deps.ResourceID() != id {
		t.Errorf("Expected resource ID %v, got %v", id, deps.ResourceID())
	}
}
