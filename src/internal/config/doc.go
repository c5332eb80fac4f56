// Package config loads and validates the run configuration of
// frontdoor-ipgroup-updater.
//
// A Config is assembled once at process start from, in increasing order of
// precedence:
//
//   - built-in defaults (DefaultConfig)
//   - an optional configuration file (TOML, or YAML for .yaml/.yml files)
//   - an optional .env file
//   - the process environment
//
// The result is validated with go-playground/validator and then passed
// explicitly through the pipeline; nothing in this package is global state.
//
// # Example Usage
//
//	cfg, err := config.LoadConfig("/etc/frontdoor-ipgroup-updater.toml", ".env")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package config
