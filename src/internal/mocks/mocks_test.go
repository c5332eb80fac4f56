package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/azure"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/domain"
)

// Compile-time checks that the mocks satisfy the domain interfaces.
var (
	_ domain.TokenProvider = (*MockTokenProvider)(nil)
	_ domain.PrefixSource  = (*MockPrefixSource)(nil)
	_ domain.IPGroupClient = (*MockIPGroupClient)(nil)
)

func TestMockIPGroupClient_DefaultBehavior(t *testing.T) {
	ctx := context.Background()
	client := NewMockIPGroupClient("westeurope", `{"owner":"netops"}`)

	group, err := client.GetIPGroup(ctx, "tok", azure.ResourceID{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if group.Location != "westeurope" {
		t.Errorf("Expected location westeurope, got %s", group.Location)
	}

	group.Properties.IPAddresses = []string{"10.0.0.0/8"}
	if len(client.Group.Properties.IPAddresses) != 0 {
		t.Error("Expected GetIPGroup to return a copy")
	}

	if _, err := client.PutIPGroup(ctx, "tok", azure.ResourceID{}, group); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if client.GetIPGroupCalls != 1 || client.PutIPGroupCalls != 1 {
		t.Errorf("Expected 1 GET and 1 PUT, got %d and %d", client.GetIPGroupCalls, client.PutIPGroupCalls)
	}
	if got := client.Group.Properties.IPAddresses; len(got) != 1 || got[0] != "10.0.0.0/8" {
		t.Errorf("Expected stored addresses [10.0.0.0/8], got %v", got)
	}
	if string(client.LastPut.Tags) != `{"owner":"netops"}` {
		t.Errorf("Expected tags to be kept, got %s", client.LastPut.Tags)
	}
}

func TestMockTokenProvider(t *testing.T) {
	token, err := (&MockTokenProvider{}).AcquireToken(context.Background())
	if err != nil || token.Value != "mock-token" {
		t.Errorf("Expected mock-token, got %v, %v", token, err)
	}

	failing := NewMockTokenProviderWithError(errors.New("denied"))
	if _, err := failing.AcquireToken(context.Background()); err == nil {
		t.Error("Expected error")
	}
	if failing.AcquireTokenCalls != 1 {
		t.Errorf("Expected 1 call, got %d", failing.AcquireTokenCalls)
	}
}

func TestMockPrefixSource(t *testing.T) {
	source := NewMockPrefixSource("10.0.0.0/8", "::/0")

	got, err := source.FetchPrefixes(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 prefixes, got %d", len(got))
	}
}
