package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Azure.TenantID = "tenant"
	cfg.Azure.ApplicationID = "app"
	cfg.Azure.ApplicationSecret = "secret"
	cfg.Azure.SubscriptionID = "sub"
	cfg.Azure.ResourceGroupName = "rg-network"
	cfg.Azure.IPGroupName = "ipg-frontdoor"
	return cfg
}

func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	var ve ValidationErrors
	require.True(t, errors.As(err, &ve), "expected ValidationErrors, got %T", err)

	paths := make([]string, 0, len(ve))
	for _, e := range ve {
		paths = append(paths, e.FieldPath)
	}
	return paths
}

func TestValidateConfig_Success(t *testing.T) {
	assert.NoError(t, validConfig().ValidateConfig())
}

func TestValidateConfig_MissingIdentifiers(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.ValidateConfig()
	require.Error(t, err)

	paths := fieldPaths(t, err)
	assert.Contains(t, paths, "azure.tenant_id")
	assert.Contains(t, paths, "azure.application_id")
	assert.Contains(t, paths, "azure.application_secret")
	assert.Contains(t, paths, "azure.subscription_id")
	assert.Contains(t, paths, "azure.resource_group_name")
	assert.Contains(t, paths, "azure.ip_group_name")
}

func TestValidateConfig_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		path   string
	}{
		{"negative threshold", func(c *Config) { c.Safety.MinimumAcceptableV4Networks = -1 }, "safety.minimum_acceptable_v4_networks"},
		{"zero timeout", func(c *Config) { c.General.HTTPTimeoutSeconds = 0 }, "general.http_timeout_seconds"},
		{"bad cron", func(c *Config) { c.General.Schedule = "every now and then" }, "general.schedule"},
		{"bad status addr", func(c *Config) { c.General.StatusListenAddr = "8080" }, "general.status_listen_addr"},
		{"bad log format", func(c *Config) { c.General.LogFormat = "xml" }, "general.log_format"},
		{"bad page url", func(c *Config) { c.Source.PageURL = "not a url" }, "source.page_url"},
		{"empty section", func(c *Config) { c.Source.SectionID = "" }, "source.section_id"},
		{"bad ip group name", func(c *Config) { c.Azure.IPGroupName = "ipg/with/slash" }, "azure.ip_group_name"},
		{"trailing period", func(c *Config) { c.Azure.ResourceGroupName = "rg." }, "azure.resource_group_name"},
		{"plain http authority", func(c *Config) { c.Azure.AuthorityHost = "http://login.example.com" }, "azure.authority_host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.ValidateConfig()
			require.Error(t, err)
			assert.Contains(t, fieldPaths(t, err), tt.path)
		})
	}
}

func TestValidateConfig_LoopbackHTTPAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Azure.AuthorityHost = "http://127.0.0.1:8080"
	cfg.Azure.ManagementEndpoint = "http://localhost:9090"

	assert.NoError(t, cfg.ValidateConfig())
}

func TestValidateConfig_CronDescriptors(t *testing.T) {
	for _, spec := range []string{"@hourly", "@every 30m", "0 */6 * * *", ""} {
		cfg := validConfig()
		cfg.General.Schedule = spec
		assert.NoError(t, cfg.ValidateConfig(), spec)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	ve := ValidationErrors{
		{FieldPath: "azure.tenant_id", Message: "field is required"},
	}
	assert.Contains(t, ve.Error(), "1 error(s)")
	assert.Contains(t, ve.Error(), "azure.tenant_id: field is required")
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())
}
