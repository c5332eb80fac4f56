package service

import (
	"context"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/azure"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/domain"
	apperrors "github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/lists"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
)

// ReconcileResult describes what a reconcile pass saw and did.
type ReconcileResult struct {
	Current []string `json:"current"`
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Written bool     `json:"written"`
}

// ReconcileService brings one IP group's address list to a desired state.
type ReconcileService struct {
	client domain.IPGroupClient
	id     azure.ResourceID
}

// NewReconcileService creates a reconciler for the IP group id.
func NewReconcileService(client domain.IPGroupClient, id azure.ResourceID) *ReconcileService {
	return &ReconcileService{
		client: client,
		id:     id,
	}
}

// Reconcile replaces the group's addresses with addresses.
//
// The group is always read first, also in dry run, and the write carries the
// tags and location exactly as read. In dry run mode no write is issued.
func (s *ReconcileService) Reconcile(ctx context.Context, token string, addresses []string, dryRun bool) (*ReconcileResult, error) {
	current, err := s.client.GetIPGroup(ctx, token, s.id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperrors.NewResourceError("IP group "+s.id.String()+" was read as empty", nil)
	}

	log.Info("Current IP group state",
		"ip_group", s.id.Name,
		"location", current.Location,
		"tags", current.TagMap(),
		"addresses", current.Properties.IPAddresses)

	added, removed := lists.Diff(current.Properties.IPAddresses, addresses)
	result := &ReconcileResult{
		Current: current.Properties.IPAddresses,
		Added:   added,
		Removed: removed,
	}
	log.Info("Computed address changes", "added", len(added), "removed", len(removed))
	if len(added) > 0 || len(removed) > 0 {
		log.Debug("Address changes", "added", added, "removed", removed)
	}

	if dryRun {
		log.Info("Dry run mode enabled, skipping actual update")
		return result, nil
	}

	desired := &azure.IPGroup{
		Location: current.Location,
		Tags:     current.Tags,
		Properties: azure.IPGroupProperties{
			IPAddresses: addresses,
		},
	}
	if _, err := s.client.PutIPGroup(ctx, token, s.id, desired); err != nil {
		return result, err
	}

	result.Written = true
	log.Info("IP group updated",
		"ip_group", s.id.Name,
		"addresses", len(addresses),
		"location", current.Location)
	return result, nil
}
