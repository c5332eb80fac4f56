package config

import (
	"fmt"
	"path/filepath"
	"time"
)

type Config struct {
	// Azure holds the identity and target resource settings.
	Azure AzureConfig `toml:"azure" yaml:"azure" json:"azure"`
	// Source describes where the vendor prefix list is published.
	Source SourceConfig `toml:"source" yaml:"source" json:"source"`
	// Safety holds the circuit breaker settings.
	Safety SafetyConfig `toml:"safety" yaml:"safety" json:"safety"`
	// General holds process-level settings.
	General GeneralConfig `toml:"general" yaml:"general" json:"general"`

	_absConfigFilePath string
}

type AzureConfig struct {
	// TenantID is the directory (tenant) the application is registered in.
	TenantID string `toml:"tenant_id" yaml:"tenant_id" json:"tenant_id" validate:"required"`
	// ApplicationID is the client ID of the service principal.
	ApplicationID string `toml:"application_id" yaml:"application_id" json:"application_id" validate:"required"`
	// ApplicationSecret is the client secret of the service principal.
	ApplicationSecret string `toml:"application_secret" yaml:"application_secret" json:"application_secret" validate:"required"`
	// SubscriptionID owns the resource group of the IP group.
	SubscriptionID string `toml:"subscription_id" yaml:"subscription_id" json:"subscription_id" validate:"required"`
	// ResourceGroupName is the resource group containing the IP group.
	ResourceGroupName string `toml:"resource_group_name" yaml:"resource_group_name" json:"resource_group_name" validate:"required,azure_name"`
	// IPGroupName is the name of the IP group to keep in sync.
	IPGroupName string `toml:"ip_group_name" yaml:"ip_group_name" json:"ip_group_name" validate:"required,azure_name"`
	// AuthorityHost is the identity authority base URL (default: https://login.microsoftonline.com).
	AuthorityHost string `toml:"authority_host" yaml:"authority_host" json:"authority_host" validate:"required,url"`
	// ManagementEndpoint is the resource manager base URL (default: https://management.azure.com).
	ManagementEndpoint string `toml:"management_endpoint" yaml:"management_endpoint" json:"management_endpoint" validate:"required,url"`
	// APIVersion is the api-version used for ipGroups requests (default: 2022-01-01).
	APIVersion string `toml:"api_version" yaml:"api_version" json:"api_version" validate:"required"`
	// Scope is the OAuth2 scope requested for the management API.
	Scope string `toml:"scope" yaml:"scope" json:"scope" validate:"required"`
}

type SourceConfig struct {
	// PageURL is the vendor download confirmation page.
	PageURL string `toml:"page_url" yaml:"page_url" json:"page_url" validate:"required,url"`
	// SectionID is the "id" of the section whose prefixes are consumed.
	SectionID string `toml:"section_id" yaml:"section_id" json:"section_id" validate:"required"`
	// UserAgent is sent with both source requests. The vendor blocks non-browser clients.
	UserAgent string `toml:"user_agent" yaml:"user_agent" json:"user_agent" validate:"required"`
}

type SafetyConfig struct {
	// MinimumAcceptableV4Networks aborts the run when the IPv4 count is at or below this value.
	MinimumAcceptableV4Networks int `toml:"minimum_acceptable_v4_networks" yaml:"minimum_acceptable_v4_networks" json:"minimum_acceptable_v4_networks" validate:"gte=0"`
}

type GeneralConfig struct {
	// HTTPTimeoutSeconds bounds every outgoing HTTP request (default: 30).
	HTTPTimeoutSeconds int `toml:"http_timeout_seconds" yaml:"http_timeout_seconds" json:"http_timeout_seconds" validate:"gte=1,lte=600"`
	// Schedule is the cron expression used by the service command (default: @every 6h).
	Schedule string `toml:"schedule" yaml:"schedule" json:"schedule" validate:"cron_spec"`
	// StatusListenAddr enables the status API in service mode when set (host:port).
	StatusListenAddr string `toml:"status_listen_addr" yaml:"status_listen_addr" json:"status_listen_addr" validate:"hostport_or_empty"`
	// LogFormat is one of text, logfmt, json (default: text).
	LogFormat string `toml:"log_format" yaml:"log_format" json:"log_format" validate:"omitempty,oneof=text logfmt json"`
}

const redactedSecret = "********"

// DefaultConfig returns a Config with every optional field populated.
func DefaultConfig() *Config {
	return &Config{
		Azure: AzureConfig{
			AuthorityHost:      DefaultAuthorityHost,
			ManagementEndpoint: DefaultManagementEndpoint,
			APIVersion:         DefaultIPGroupAPIVersion,
			Scope:              DefaultManagementScope,
		},
		Source: SourceConfig{
			PageURL:   DefaultSourcePageURL,
			SectionID: DefaultSourceSectionID,
			UserAgent: DefaultUserAgent,
		},
		Safety: SafetyConfig{
			MinimumAcceptableV4Networks: DefaultMinimumAcceptableV4Networks,
		},
		General: GeneralConfig{
			HTTPTimeoutSeconds: DefaultHTTPTimeoutSeconds,
			Schedule:           DefaultSchedule,
			LogFormat:          "text",
		},
	}
}

// HTTPTimeout returns the configured per-request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.General.HTTPTimeoutSeconds) * time.Second
}

// ConfigFilePath returns the absolute path of the loaded file, or an empty string.
func (c *Config) ConfigFilePath() string {
	return c._absConfigFilePath
}

// GetConfigDir returns the directory of the loaded file, or an empty string.
func (c *Config) GetConfigDir() string {
	if c._absConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c._absConfigFilePath)
}

// Redacted returns a copy safe for logging and the status API.
func (c *Config) Redacted() Config {
	out := *c
	if out.Azure.ApplicationSecret != "" {
		out.Azure.ApplicationSecret = redactedSecret
	}
	return out
}

// ResourceDescription is a short human-readable name of the target IP group.
func (c *Config) ResourceDescription() string {
	return fmt.Sprintf("%s/%s/%s", c.Azure.SubscriptionID, c.Azure.ResourceGroupName, c.Azure.IPGroupName)
}
