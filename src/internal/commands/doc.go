// Package commands implements CLI command handlers for frontdoor-ipgroup-updater.
//
// Each command implements the Runner interface and delegates business logic
// to the service layer. Commands never exit the process: they return an
// error and main decides the exit status.
//
// # Command Structure
//
// All commands follow a consistent pattern:
//   - Init(): Parse arguments, load and validate configuration
//   - Run(): Execute command using service layer
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - sync: run the pipeline once (default)
//   - service: run the pipeline on a cron schedule with an optional status API
//   - self-check: validate configuration and print the effective settings
//
// # Example Usage
//
//	cmd := commands.CreateSyncCommand()
//	ctx := &commands.AppContext{ConfigPath: "updater.toml", EnvFile: ".env"}
//	if err := cmd.Init(args, ctx); err != nil {
//	    return err
//	}
//	return cmd.Run()
package commands
