package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/api"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/azure"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/domain"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/service"
)

func CreateServiceCommand() *ServiceCommand {
	sc := &ServiceCommand{
		fs: flag.NewFlagSet("service", flag.ContinueOnError),
	}

	sc.fs.StringVar(&sc.Schedule, "schedule", "", "Cron expression overriding general.schedule (e.g. \"@every 6h\", \"0 */4 * * *\")")
	sc.fs.BoolVar(&sc.RunOnStart, "run-on-start", true, "Run once immediately before waiting for the schedule")
	sc.fs.StringVar(&sc.StatusAddr, "status-addr", "", "host:port of the status API, overriding general.status_listen_addr")
	sc.fs.BoolVar(&sc.DryRun, "dry-run", false, "Read the IP group but never update it")
	sc.fs.BoolVar(&sc.FailOnUpdateError, "fail-on-update-error", false, "Count runs whose IP group update failed as failures")

	return sc
}

// ServiceCommand runs the pipeline on a cron schedule until SIGINT or SIGTERM.
type ServiceCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies

	Schedule          string
	RunOnStart        bool
	StatusAddr        string
	DryRun            bool
	FailOnUpdateError bool

	history    *service.RunHistory
	sync       *service.SyncService
	httpServer *http.Server
	apiRunner  *Supervisor
}

func (s *ServiceCommand) Name() string {
	return s.fs.Name()
}

func (s *ServiceCommand) Init(args []string, ctx *AppContext) error {
	s.ctx = ctx

	if err := s.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	s.cfg = cfg

	if s.Schedule == "" {
		s.Schedule = cfg.General.Schedule
	}
	if _, err := cron.ParseStandard(s.Schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.Schedule, err)
	}
	if s.StatusAddr == "" {
		s.StatusAddr = cfg.General.StatusListenAddr
	}

	s.deps = domain.NewAppDependencies(cfg)
	s.history = service.NewRunHistory(time.Now())
	s.sync = service.NewSyncService(s.deps, cfg.Safety.MinimumAcceptableV4Networks)

	return nil
}

func (s *ServiceCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.run(ctx)
}

func (s *ServiceCommand) run(ctx context.Context) error {
	log.Info("Starting service",
		"target", s.cfg.ResourceDescription(),
		"schedule", s.Schedule,
		"dry_run", s.dryRun())

	scheduler := cron.New(
		cron.WithLogger(cronLogger{}),
		cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
	)

	job := cron.FuncJob(func() {
		s.runOnce(ctx)
	})
	if _, err := scheduler.AddJob(s.Schedule, job); err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}

	if s.StatusAddr != "" {
		s.startAPIServer(ctx)
	} else {
		log.Infof("Status API is disabled")
	}

	// Scheduled runs are awaited by scheduler.Stop; the initial one by wg.
	var wg sync.WaitGroup
	if s.RunOnStart {
		// Run through the chained job so SkipIfStillRunning also covers it.
		wrapped := scheduler.Entries()[0].WrappedJob
		wg.Add(1)
		go func() {
			defer wg.Done()
			wrapped.Run()
		}()
	}

	scheduler.Start()
	log.Infof("Service started, next run at %s", scheduler.Entries()[0].Next.Format(time.RFC3339))

	<-ctx.Done()
	log.Infof("Received shutdown signal, stopping...")

	return s.shutdown(scheduler, &wg)
}

func (s *ServiceCommand) dryRun() bool {
	return s.DryRun || s.ctx.DryRun
}

func (s *ServiceCommand) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	s.history.Begin()
	outcome := s.sync.Run(ctx, service.RunOptions{
		DryRun:            s.dryRun(),
		FailOnUpdateError: s.FailOnUpdateError,
	})
	s.history.Record(outcome)
	logOutcome(outcome)
}

// startAPIServer serves the status API in the background, restarting the
// listener if it fails.
func (s *ServiceCommand) startAPIServer(ctx context.Context) {
	client := azure.NewClient(s.cfg.Azure.ManagementEndpoint, s.cfg.Azure.APIVersion, nil)
	handler := api.NewHandler(s.cfg, s.history, client.ResourceURL(s.deps.ResourceID()))
	s.httpServer = api.NewHTTPServer(s.StatusAddr, api.NewRouter(handler))

	s.apiRunner = NewSupervisor(SupervisorConfig{
		Name:       "Status API",
		Backoff:    2 * time.Second,
		MaxBackoff: 30 * time.Second,
	}, func(context.Context) error {
		log.Infof("Status API listening on http://%s", s.StatusAddr)
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	go s.apiRunner.Run(ctx)
}

// shutdown stops scheduling, waits for an in-flight run and closes the API server.
func (s *ServiceCommand) shutdown(scheduler *cron.Cron, wg *sync.WaitGroup) error {
	<-scheduler.Stop().Done()
	wg.Wait()

	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error during status API shutdown: %v", err)
			_ = s.httpServer.Close()
		}
	}

	snap := s.history.Snapshot()
	log.Info("Service stopped", "runs", snap.Runs, "failures", snap.Failures)
	return nil
}

// cronLogger adapts the package logger to cron.Logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
