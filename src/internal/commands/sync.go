package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/domain"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/service"
)

func CreateSyncCommand() *SyncCommand {
	sc := &SyncCommand{
		fs: flag.NewFlagSet("sync", flag.ContinueOnError),
	}

	sc.fs.BoolVar(&sc.DryRun, "dry-run", false, "Read the IP group but do not update it")
	sc.fs.BoolVar(&sc.FailOnUpdateError, "fail-on-update-error", false, "Exit with status 1 when the IP group cannot be read or written")

	return sc
}

// SyncCommand runs the pipeline once.
type SyncCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies

	DryRun            bool
	FailOnUpdateError bool

	// Outcome holds the result after Run.
	Outcome *service.RunOutcome
}

func (c *SyncCommand) Name() string {
	return c.fs.Name()
}

func (c *SyncCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.deps = domain.NewAppDependencies(cfg)
	return nil
}

func (c *SyncCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.run(ctx)
}

func (c *SyncCommand) run(ctx context.Context) error {
	syncService := service.NewSyncService(c.deps, c.cfg.Safety.MinimumAcceptableV4Networks)

	c.Outcome = syncService.Run(ctx, service.RunOptions{
		DryRun:            c.DryRun || c.ctx.DryRun,
		FailOnUpdateError: c.FailOnUpdateError,
	})
	logOutcome(c.Outcome)

	if c.Outcome.ExitCode() != 0 {
		return fmt.Errorf("%w: %s", ErrRunFailed, c.Outcome)
	}
	return nil
}
