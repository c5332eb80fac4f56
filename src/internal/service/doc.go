// Package service provides the business logic orchestration layer for frontdoor-ipgroup-updater.
//
// Services sit between the commands (CLI controllers) and the domain
// components, sequencing one synchronization run and reporting its outcome.
//
// # Key Services
//
// SyncService: runs authenticate, fetch, classify, validate and reconcile
// in order and returns a typed RunOutcome.
//
// ReconcileService: reads the IP group and replaces its addresses while
// keeping tags and location.
//
// ValidationService: configuration checks shared by every command.
//
// RunHistory: the last outcome and run counters, shared with the status API.
//
// # Example Usage
//
//	deps := domain.NewAppDependencies(cfg)
//	sync := service.NewSyncService(deps, cfg.Safety.MinimumAcceptableV4Networks)
//
//	outcome := sync.Run(ctx, service.RunOptions{DryRun: true})
//	os.Exit(outcome.ExitCode())
package service
