package api

import (
	"net/http"

	apperrors "github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/service"
)

var (
	// Version information set via ldflags at build time
	Version = "dev"
	Date    = "n/a"
	Commit  = "n/a"
)

// GetStatus returns run counters and the last run outcome.
// GET /api/v1/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.history.Snapshot()

	writeJSONData(w, StatusResponse{
		Version: VersionInfo{
			Version: Version,
			Date:    Date,
			Commit:  Commit,
		},
		Target:   h.cfg.ResourceDescription(),
		Schedule: h.cfg.General.Schedule,
		Since:    snap.Since,
		Running:  snap.Running,
		Runs:     snap.Runs,
		Failures: snap.Failures,
		LastRun:  newRunInfo(snap.Last),
	})
}

func newRunInfo(o *service.RunOutcome) *RunInfo {
	if o == nil {
		return nil
	}

	info := &RunInfo{
		Stage:        string(o.Stage),
		FailedStage:  string(o.FailedStage),
		DryRun:       o.DryRun,
		ExitCode:     o.ExitCode(),
		IPv4Count:    o.V4Count,
		IPv6Count:    o.V6Count,
		DroppedCount: o.DroppedCount,
		Fingerprint:  o.Fingerprint,
		StartedAt:    o.StartedAt,
		FinishedAt:   o.FinishedAt,
		DurationMS:   o.Duration().Milliseconds(),
	}
	if o.Err != nil {
		info.Error = o.Err.Error()
		info.ErrorCode = string(apperrors.CodeOf(o.Err))
	}
	if o.ReconcileErr != nil {
		info.UpdateError = o.ReconcileErr.Error()
	}
	if o.Reconcile != nil {
		info.Added = len(o.Reconcile.Added)
		info.Removed = len(o.Reconcile.Removed)
		info.Written = o.Reconcile.Written
	}
	return info
}
