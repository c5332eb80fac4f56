package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/auth"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/domain"
	apperrors "github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/hashing"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/lists"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
)

// Stage is a step of one synchronization run.
type Stage string

const (
	StageStart         Stage = "start"
	StageAuthenticated Stage = "authenticated"
	StageFetched       Stage = "fetched"
	StageClassified    Stage = "classified"
	StageValidated     Stage = "validated"
	StageReconciled    Stage = "reconciled"
	StageEnd           Stage = "end"
	StageFailed        Stage = "failed"
)

// RunOptions configures a single run.
type RunOptions struct {
	// DryRun reads the IP group but never writes it.
	DryRun bool
	// FailOnUpdateError makes a failed read or write of the IP group a
	// failed run. By default such failures are logged and the run succeeds.
	FailOnUpdateError bool
}

// RunOutcome is the result of one run. Stage is StageEnd unless a terminal
// stage failed, in which case Stage is StageFailed and FailedStage names
// the step that was being attempted. Fingerprint is an order-independent
// digest of the validated IPv4 set.
type RunOutcome struct {
	Stage        Stage
	FailedStage  Stage
	Err          error
	ReconcileErr error
	Reconcile    *ReconcileResult
	DryRun       bool
	V4Count      int
	V6Count      int
	DroppedCount int
	Fingerprint  string
	StartedAt    time.Time
	FinishedAt   time.Time

	failOnUpdateError bool
}

// Succeeded reports whether the run reached the end without a terminal error.
func (o *RunOutcome) Succeeded() bool {
	return o.Stage == StageEnd && o.Err == nil
}

// ExitCode maps the outcome to a process exit status.
func (o *RunOutcome) ExitCode() int {
	if !o.Succeeded() {
		return 1
	}
	if o.failOnUpdateError && o.ReconcileErr != nil {
		return 1
	}
	return 0
}

// Duration is the wall time of the run.
func (o *RunOutcome) Duration() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}

// SyncService runs the pipeline: authenticate, fetch, classify, validate, reconcile.
type SyncService struct {
	tokens     domain.TokenProvider
	source     domain.PrefixSource
	reconciler *ReconcileService
	minimumV4  int
	now        func() time.Time
}

// NewSyncService creates a sync service from deps.
// Runs fail unless more than minimumV4 IPv4 prefixes are fetched.
func NewSyncService(deps *domain.AppDependencies, minimumV4 int) *SyncService {
	return &SyncService{
		tokens:     deps.TokenProvider(),
		source:     deps.PrefixSource(),
		reconciler: NewReconcileService(deps.IPGroupClient(), deps.ResourceID()),
		minimumV4:  minimumV4,
		now:        time.Now,
	}
}

// Run performs one synchronization. It never panics on component failures
// and never exits the process; the caller decides what to do with the outcome.
func (s *SyncService) Run(ctx context.Context, opts RunOptions) *RunOutcome {
	outcome := &RunOutcome{
		Stage:             StageStart,
		DryRun:            opts.DryRun,
		StartedAt:         s.now(),
		failOnUpdateError: opts.FailOnUpdateError,
	}
	defer func() {
		outcome.FinishedAt = s.now()
	}()

	if opts.DryRun {
		log.Info("Starting run in dry run mode")
	}

	token, err := s.tokens.AcquireToken(ctx)
	if err != nil {
		logAuthFailure(err)
		return s.fail(outcome, err)
	}
	s.advance(outcome, StageAuthenticated)

	raw, err := s.source.FetchPrefixes(ctx)
	if err != nil {
		log.Error("Failed to fetch prefix list", "error", err.Error())
		return s.fail(outcome, err)
	}
	s.advance(outcome, StageFetched)

	set := lists.Classify(raw)
	outcome.V4Count = len(set.V4)
	outcome.V6Count = len(set.V6)
	outcome.DroppedCount = len(set.Dropped)
	outcome.Fingerprint = hashing.Fingerprint(set.V4)
	s.advance(outcome, StageClassified)

	if err := lists.ValidateV4Count(set, s.minimumV4); err != nil {
		log.Warnf("Less than %d IPv4 networks detected, cowardly exiting", s.minimumV4)
		return s.fail(outcome, err)
	}
	s.advance(outcome, StageValidated)

	result, err := s.reconciler.Reconcile(ctx, tokenValue(token), set.V4, opts.DryRun)
	outcome.Reconcile = result
	if err != nil {
		outcome.ReconcileErr = err
		log.Error("Failed to update IP group", "error", err.Error())
	}
	s.advance(outcome, StageReconciled)

	s.advance(outcome, StageEnd)
	return outcome
}

func (s *SyncService) advance(outcome *RunOutcome, stage Stage) {
	outcome.Stage = stage
	log.Debug("Run stage reached", "stage", string(stage))
}

func (s *SyncService) fail(outcome *RunOutcome, err error) *RunOutcome {
	outcome.FailedStage = nextStage(outcome.Stage)
	outcome.Stage = StageFailed
	outcome.Err = err
	log.Debug("Run failed", "stage", string(outcome.FailedStage), "code", string(apperrors.CodeOf(err)))
	return outcome
}

func nextStage(s Stage) Stage {
	switch s {
	case StageStart:
		return StageAuthenticated
	case StageAuthenticated:
		return StageFetched
	case StageFetched:
		return StageClassified
	case StageClassified:
		return StageValidated
	case StageValidated:
		return StageReconciled
	default:
		return StageEnd
	}
}

func logAuthFailure(err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Detail(auth.DetailProviderError) != "" {
		log.Error("Failed to get auth token",
			"error", appErr.Detail(auth.DetailProviderError),
			"error_description", appErr.Detail(auth.DetailProviderErrorDescription))
		return
	}
	log.Error("Failed to get auth token", "error", err.Error())
}

func tokenValue(t *auth.AccessToken) string {
	if t == nil {
		return ""
	}
	return t.Value
}

// String is a one-line summary for logs.
func (o *RunOutcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("failed at %s: %v", o.FailedStage, o.Err)
	}
	if o.ReconcileErr != nil {
		return fmt.Sprintf("completed with update error: %v", o.ReconcileErr)
	}
	return fmt.Sprintf("completed: %d IPv4, %d IPv6, %d dropped", o.V4Count, o.V6Count, o.DroppedCount)
}
