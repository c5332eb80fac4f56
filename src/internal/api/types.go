package api

import (
	"time"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
)

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// HealthResponse reports liveness and whether the last run succeeded.
type HealthResponse struct {
	Healthy bool                   `json:"healthy"`
	Checks  map[string]CheckResult `json:"checks"`
}

// CheckResult is the result of one health check.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// StatusResponse returns service mode status information.
type StatusResponse struct {
	Version  VersionInfo `json:"version"`
	Target   string      `json:"target"`
	Schedule string      `json:"schedule"`
	Since    time.Time   `json:"since"`
	Running  bool        `json:"running"`
	Runs     int         `json:"runs"`
	Failures int         `json:"failures"`
	LastRun  *RunInfo    `json:"last_run"`
}

// VersionInfo contains build version information.
type VersionInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// RunInfo is the JSON view of one run outcome.
type RunInfo struct {
	Stage        string    `json:"stage"`
	FailedStage  string    `json:"failed_stage,omitempty"`
	Error        string    `json:"error,omitempty"`
	ErrorCode    string    `json:"error_code,omitempty"`
	UpdateError  string    `json:"update_error,omitempty"`
	DryRun       bool      `json:"dry_run"`
	ExitCode     int       `json:"exit_code"`
	IPv4Count    int       `json:"ipv4_count"`
	IPv6Count    int       `json:"ipv6_count"`
	DroppedCount int       `json:"dropped_count"`
	Fingerprint  string    `json:"fingerprint,omitempty"`
	Added        int       `json:"added"`
	Removed      int       `json:"removed"`
	Written      bool      `json:"written"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	DurationMS   int64     `json:"duration_ms"`
}

// ConfigResponse returns the effective configuration with secrets masked.
type ConfigResponse struct {
	Config      config.Config `json:"config"`
	ConfigFile  string        `json:"config_file,omitempty"`
	ResourceURL string        `json:"resource_url"`
}
