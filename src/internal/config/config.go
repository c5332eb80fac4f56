package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/utils"
)

const (
	DefaultAuthorityHost               = "https://login.microsoftonline.com"
	DefaultManagementEndpoint          = "https://management.azure.com"
	DefaultManagementScope             = "https://management.core.windows.net//.default"
	DefaultIPGroupAPIVersion           = "2022-01-01"
	DefaultSourcePageURL               = "https://www.microsoft.com/en-us/download/confirmation.aspx?id=56519"
	DefaultSourceSectionID             = "AzureFrontDoor.Frontend"
	DefaultMinimumAcceptableV4Networks = 10
	DefaultHTTPTimeoutSeconds          = 30
	DefaultSchedule                    = "@every 6h"
	DefaultEnvFile                     = ".env"

	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/105.0.0.0 Safari/537.36 Edg/105.0.1343.42"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envBinding struct {
	key string
	set func(c *Config, value string) error
}

func stringBinding(key string, field func(c *Config) *string) envBinding {
	return envBinding{key: key, set: func(c *Config, value string) error {
		*field(c) = value
		return nil
	}}
}

func intBinding(key string, field func(c *Config) *int) envBinding {
	return envBinding{key: key, set: func(c *Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("environment variable %s must be an integer: %v", key, err)
		}
		*field(c) = n
		return nil
	}}
}

var envBindings = []envBinding{
	stringBinding("TENANT_ID", func(c *Config) *string { return &c.Azure.TenantID }),
	stringBinding("APPLICATION_ID", func(c *Config) *string { return &c.Azure.ApplicationID }),
	stringBinding("APPLICATION_SECRET", func(c *Config) *string { return &c.Azure.ApplicationSecret }),
	stringBinding("SUBSCRIPTION_ID", func(c *Config) *string { return &c.Azure.SubscriptionID }),
	stringBinding("RESOURCE_GROUP_NAME", func(c *Config) *string { return &c.Azure.ResourceGroupName }),
	stringBinding("IP_GROUP_NAME", func(c *Config) *string { return &c.Azure.IPGroupName }),
	stringBinding("AUTHORITY_HOST", func(c *Config) *string { return &c.Azure.AuthorityHost }),
	stringBinding("MANAGEMENT_ENDPOINT", func(c *Config) *string { return &c.Azure.ManagementEndpoint }),
	stringBinding("IP_GROUP_API_VERSION", func(c *Config) *string { return &c.Azure.APIVersion }),
	stringBinding("MANAGEMENT_SCOPE", func(c *Config) *string { return &c.Azure.Scope }),
	stringBinding("SOURCE_PAGE_URL", func(c *Config) *string { return &c.Source.PageURL }),
	stringBinding("SOURCE_SECTION_ID", func(c *Config) *string { return &c.Source.SectionID }),
	stringBinding("SOURCE_USER_AGENT", func(c *Config) *string { return &c.Source.UserAgent }),
	intBinding("MINIMUM_ACCEPTABLE_V4_NETWORKS", func(c *Config) *int { return &c.Safety.MinimumAcceptableV4Networks }),
	intBinding("HTTP_TIMEOUT_SECONDS", func(c *Config) *int { return &c.General.HTTPTimeoutSeconds }),
	stringBinding("SCHEDULE", func(c *Config) *string { return &c.General.Schedule }),
	stringBinding("STATUS_LISTEN_ADDR", func(c *Config) *string { return &c.General.StatusListenAddr }),
	stringBinding("LOG_FORMAT", func(c *Config) *string { return &c.General.LogFormat }),
}

// LoadConfig builds the run configuration. configPath and envFile are both optional.
func LoadConfig(configPath string, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := cfg.loadFile(configPath); err != nil {
			return nil, err
		}
	}

	loadEnvFile(cfg.EnvFilePath(envFile))

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	log.Debugf("Configuration file path: %s", cfg._absConfigFilePath)
	log.Debugf("Target IP group: %s", cfg.ResourceDescription())

	return cfg, nil
}

func (c *Config) loadFile(configPath string) error {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); errors.Is(err, os.ErrNotExist) {
		log.Errorf("Configuration file not found: %s", configFile)
		return fmt.Errorf("configuration file not found: %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(content, c); err != nil {
			return fmt.Errorf("failed to parse config file: %v", err)
		}
	default:
		if err := toml.Unmarshal(content, c); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				log.Errorf("%s", derr.String())
				row, col := derr.Position()
				log.Errorf("Error at line %d, column %d", row, col)
				return fmt.Errorf("failed to parse config file")
			}
			return fmt.Errorf("failed to parse config file: %v", err)
		}
	}

	c._absConfigFilePath = configFile
	return nil
}

// EnvFilePath resolves a relative dotenv path against the directory of the
// loaded config file, or the working directory when no file was loaded.
func (c *Config) EnvFilePath(envFile string) string {
	if envFile == "" {
		return ""
	}

	baseDir := c.GetConfigDir()
	if baseDir == "" {
		baseDir = utils.WorkingDir()
	}
	return utils.GetAbsolutePath(envFile, baseDir)
}

// loadEnvFile exports variables from a dotenv file without overriding the real environment.
func loadEnvFile(path string) {
	if path == "" {
		return
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if filepath.Base(path) != DefaultEnvFile {
			log.Warnf("No env file found at %s, falling back to system environment variables", path)
		}
		return
	}

	if err := godotenv.Load(path); err != nil {
		log.Warnf("Failed to load env file %s: %v", path, err)
		return
	}
	log.Debugf("Loaded environment from %s", path)
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, b := range envBindings {
		value, ok := lookup(b.key)
		if !ok || value == "" {
			continue
		}
		if err := b.set(c, value); err != nil {
			return err
		}
	}
	return nil
}

// SerializeConfig renders the redacted configuration as TOML.
func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	redacted := c.Redacted()

	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(&redacted); err != nil {
		return nil, err
	}
	return &buf, nil
}
