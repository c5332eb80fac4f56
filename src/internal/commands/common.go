package commands

import (
	"errors"
	"fmt"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/service"
)

// ErrRunFailed is returned by commands whose pipeline run ended with a non-zero exit code.
var ErrRunFailed = errors.New("run failed")

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

// AppContext carries the global command line options.
type AppContext struct {
	// ConfigPath is an optional TOML or YAML file.
	ConfigPath string
	// EnvFile is a dotenv file, relative to the config file directory when
	// ConfigPath is set. A missing file is only a warning.
	EnvFile string
	Verbose bool
	// LogStdErr sends every log level to stderr, keeping stdout for command output.
	LogStdErr bool
	// LogFormat overrides general.log_format when set.
	LogFormat string
	// DryRun is the global --dry-run; commands OR it with their own flag.
	DryRun bool
}

// loadAndValidateConfigOrFail loads configuration from file, dotenv and
// environment, validates it and applies the logging settings.
func loadAndValidateConfigOrFail(ctx *AppContext) (*config.Config, error) {
	cfg, err := config.LoadConfig(ctx.ConfigPath, ctx.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	format := ctx.LogFormat
	if format == "" {
		format = cfg.General.LogFormat
	}
	if err := log.SetFormat(format); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	validator := service.NewValidationService()
	if err := validator.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	for _, warning := range validator.Warnings(cfg) {
		log.Warnf("%s", warning)
	}

	return cfg, nil
}

// logOutcome writes the final summary line of a run.
func logOutcome(outcome *service.RunOutcome) {
	switch {
	case outcome.Err != nil:
		log.Error("Run failed",
			"stage", string(outcome.FailedStage),
			"duration", outcome.Duration(),
			"error", outcome.Err.Error())
	case outcome.ReconcileErr != nil:
		log.Warn("Run completed, IP group was not updated",
			"duration", outcome.Duration(),
			"error", outcome.ReconcileErr.Error())
	default:
		log.Info("Run completed",
			"ipv4", outcome.V4Count,
			"ipv6", outcome.V6Count,
			"dropped", outcome.DroppedCount,
			"dry_run", outcome.DryRun,
			"duration", outcome.Duration())
	}
}
