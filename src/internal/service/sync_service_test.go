package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/auth"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/azure"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/domain"
	apperrors "github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/hashing"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/mocks"
)

func init() {
	log.DisableLogs()
}

var testResource = azure.ResourceID{SubscriptionID: "sub", ResourceGroup: "rg-edge", Name: "frontdoor"}

func v4Prefixes(n int) []string {
	prefixes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		prefixes = append(prefixes, fmt.Sprintf("10.%d.0.0/16", i))
	}
	return prefixes
}

type fixture struct {
	tokens *mocks.MockTokenProvider
	source *mocks.MockPrefixSource
	groups *mocks.MockIPGroupClient
	sync   *SyncService
}

func newFixture(prefixes []string, minimum int) *fixture {
	f := &fixture{
		tokens: &mocks.MockTokenProvider{},
		source: mocks.NewMockPrefixSource(prefixes...),
		groups: mocks.NewMockIPGroupClient("westeurope", `{"owner":"netops"}`),
	}
	deps := domain.NewTestDependencies(f.tokens, f.source, f.groups, testResource)
	f.sync = NewSyncService(deps, minimum)
	return f
}

func TestSyncService_Success(t *testing.T) {
	f := newFixture(v4Prefixes(50), 10)

	outcome := f.sync.Run(context.Background(), RunOptions{})

	assert.Equal(t, StageEnd, outcome.Stage)
	assert.NoError(t, outcome.Err)
	assert.NoError(t, outcome.ReconcileErr)
	assert.Equal(t, 0, outcome.ExitCode())
	assert.Equal(t, 50, outcome.V4Count)
	assert.Equal(t, hashing.Fingerprint(v4Prefixes(50)), outcome.Fingerprint)
	assert.False(t, outcome.FinishedAt.Before(outcome.StartedAt))

	assert.Equal(t, 1, f.groups.GetIPGroupCalls)
	assert.Equal(t, 1, f.groups.PutIPGroupCalls)
	assert.Equal(t, "mock-token", f.groups.LastToken)
	assert.Equal(t, v4Prefixes(50), f.groups.Group.Properties.IPAddresses)
	assert.Equal(t, "westeurope", f.groups.LastPut.Location)
	assert.JSONEq(t, `{"owner":"netops"}`, string(f.groups.LastPut.Tags))

	require.NotNil(t, outcome.Reconcile)
	assert.True(t, outcome.Reconcile.Written)
	assert.Len(t, outcome.Reconcile.Added, 50)
}

func TestSyncService_OnlyIPv4IsWritten(t *testing.T) {
	prefixes := append(v4Prefixes(12), "2620:1ec:bdf::/48", "garbage")
	f := newFixture(prefixes, 10)

	outcome := f.sync.Run(context.Background(), RunOptions{})

	require.Equal(t, 0, outcome.ExitCode())
	assert.Equal(t, 12, outcome.V4Count)
	assert.Equal(t, 1, outcome.V6Count)
	assert.Equal(t, 1, outcome.DroppedCount)
	assert.Equal(t, v4Prefixes(12), f.groups.LastPut.Properties.IPAddresses)
}

func TestSyncService_DryRun(t *testing.T) {
	f := newFixture(v4Prefixes(50), 10)

	outcome := f.sync.Run(context.Background(), RunOptions{DryRun: true})

	assert.Equal(t, StageEnd, outcome.Stage)
	assert.Equal(t, 0, outcome.ExitCode())
	assert.True(t, outcome.DryRun)
	assert.Equal(t, 1, f.groups.GetIPGroupCalls)
	assert.Equal(t, 0, f.groups.PutIPGroupCalls)
	require.NotNil(t, outcome.Reconcile)
	assert.False(t, outcome.Reconcile.Written)
	assert.Len(t, outcome.Reconcile.Added, 50)
}

func TestSyncService_AuthFailure(t *testing.T) {
	f := newFixture(v4Prefixes(50), 10)
	authErr := apperrors.NewAuthError("token request rejected", errors.New("oauth2: cannot fetch token")).
		WithDetail(auth.DetailProviderError, "invalid_client").
		WithDetail(auth.DetailProviderErrorDescription, "bad secret")
	f.tokens.AcquireTokenFunc = func(ctx context.Context) (*auth.AccessToken, error) {
		return nil, authErr
	}

	outcome := f.sync.Run(context.Background(), RunOptions{})

	assert.Equal(t, StageFailed, outcome.Stage)
	assert.Equal(t, StageAuthenticated, outcome.FailedStage)
	assert.Equal(t, 1, outcome.ExitCode())
	assert.True(t, apperrors.HasCode(outcome.Err, apperrors.ErrCodeAuth))
	assert.Equal(t, 0, f.source.FetchPrefixesCalls)
	assert.Equal(t, 0, f.groups.GetIPGroupCalls)
	assert.Equal(t, 0, f.groups.PutIPGroupCalls)
}

func TestSyncService_FetchFailure(t *testing.T) {
	f := newFixture(nil, 10)
	f.source.FetchPrefixesFunc = func(ctx context.Context) ([]string, error) {
		return nil, apperrors.NewSourceError("failed to locate download link", errors.New("no element matches"))
	}

	outcome := f.sync.Run(context.Background(), RunOptions{})

	assert.Equal(t, StageFetched, outcome.FailedStage)
	assert.Equal(t, 1, outcome.ExitCode())
	assert.True(t, apperrors.HasCode(outcome.Err, apperrors.ErrCodeSource))
	assert.Equal(t, 0, f.groups.GetIPGroupCalls)
}

func TestSyncService_Threshold(t *testing.T) {
	t.Run("at threshold fails", func(t *testing.T) {
		f := newFixture(v4Prefixes(10), 10)

		outcome := f.sync.Run(context.Background(), RunOptions{})

		assert.Equal(t, StageValidated, outcome.FailedStage)
		assert.Equal(t, 1, outcome.ExitCode())
		assert.True(t, apperrors.HasCode(outcome.Err, apperrors.ErrCodeThreshold))
		assert.Equal(t, 10, outcome.V4Count)
		assert.Equal(t, 0, f.groups.GetIPGroupCalls)
		assert.Equal(t, 0, f.groups.PutIPGroupCalls)
	})

	t.Run("above threshold passes", func(t *testing.T) {
		f := newFixture(v4Prefixes(11), 10)

		outcome := f.sync.Run(context.Background(), RunOptions{})

		assert.Equal(t, 0, outcome.ExitCode())
		assert.Equal(t, 1, f.groups.PutIPGroupCalls)
	})

	t.Run("IPv6 does not count", func(t *testing.T) {
		f := newFixture(append(v4Prefixes(5), "2001:db8::/32", "2001:db9::/32", "2001:dba::/32",
			"2001:dbb::/32", "2001:dbc::/32", "2001:dbd::/32"), 10)

		outcome := f.sync.Run(context.Background(), RunOptions{})

		assert.Equal(t, 1, outcome.ExitCode())
		assert.Equal(t, 0, f.groups.GetIPGroupCalls)
	})
}

func TestSyncService_UpdateFailure(t *testing.T) {
	putErr := apperrors.New(apperrors.ErrCodeResource, "PUT returned 409 Conflict")

	t.Run("logged, exit 0 by default", func(t *testing.T) {
		f := newFixture(v4Prefixes(50), 10)
		f.groups.PutIPGroupFunc = func(ctx context.Context, token string, id azure.ResourceID, group *azure.IPGroup) (*azure.IPGroup, error) {
			return nil, putErr
		}

		outcome := f.sync.Run(context.Background(), RunOptions{})

		assert.Equal(t, StageEnd, outcome.Stage)
		assert.NoError(t, outcome.Err)
		assert.ErrorIs(t, outcome.ReconcileErr, putErr)
		assert.Equal(t, 0, outcome.ExitCode())
	})

	t.Run("exit 1 when requested", func(t *testing.T) {
		f := newFixture(v4Prefixes(50), 10)
		f.groups.GetIPGroupFunc = func(ctx context.Context, token string, id azure.ResourceID) (*azure.IPGroup, error) {
			return nil, putErr
		}

		outcome := f.sync.Run(context.Background(), RunOptions{FailOnUpdateError: true})

		assert.Equal(t, StageEnd, outcome.Stage)
		assert.Error(t, outcome.ReconcileErr)
		assert.Nil(t, outcome.Reconcile)
		assert.Equal(t, 0, f.groups.PutIPGroupCalls)
		assert.Equal(t, 1, outcome.ExitCode())
	})
}

func TestSyncService_EmptyIPGroupRead(t *testing.T) {
	t.Run("empty GET body from the API", func(t *testing.T) {
		puts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPut {
				puts++
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := azure.NewClient(server.URL, "2022-01-01", server.Client())
		deps := domain.NewTestDependencies(&mocks.MockTokenProvider{}, mocks.NewMockPrefixSource(v4Prefixes(50)...), client, testResource)

		var outcome *RunOutcome
		require.NotPanics(t, func() {
			outcome = NewSyncService(deps, 10).Run(context.Background(), RunOptions{})
		})

		assert.Equal(t, StageEnd, outcome.Stage)
		assert.True(t, apperrors.HasCode(outcome.ReconcileErr, apperrors.ErrCodeResource))
		assert.Equal(t, 0, outcome.ExitCode())
		assert.Equal(t, 0, puts)
	})

	t.Run("nil group without error", func(t *testing.T) {
		f := newFixture(v4Prefixes(50), 10)
		f.groups.GetIPGroupFunc = func(ctx context.Context, token string, id azure.ResourceID) (*azure.IPGroup, error) {
			return nil, nil
		}

		var outcome *RunOutcome
		require.NotPanics(t, func() {
			outcome = f.sync.Run(context.Background(), RunOptions{FailOnUpdateError: true})
		})

		assert.True(t, apperrors.HasCode(outcome.ReconcileErr, apperrors.ErrCodeResource))
		assert.Equal(t, 0, f.groups.PutIPGroupCalls)
		assert.Equal(t, 1, outcome.ExitCode())
	})
}

func TestSyncService_LogsCurrentState(t *testing.T) {
	var buf bytes.Buffer
	log.EnableLogs()
	log.SetOutput(&buf)
	require.NoError(t, log.SetFormat(log.FormatJSON))
	t.Cleanup(func() {
		_ = log.SetFormat(log.FormatText)
		log.ResetOutput()
		log.DisableLogs()
	})

	f := newFixture(v4Prefixes(12), 10)
	f.groups.Group.Properties.IPAddresses = []string{"1.2.3.0/24"}

	outcome := f.sync.Run(context.Background(), RunOptions{DryRun: true})
	require.Equal(t, 0, outcome.ExitCode())

	var state map[string]interface{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["msg"] == "Current IP group state" {
			state = entry
		}
	}

	require.NotNil(t, state)
	assert.Equal(t, "info", state["level"])
	assert.Equal(t, "westeurope", state["location"])
	assert.Equal(t, map[string]interface{}{"owner": "netops"}, state["tags"])
	assert.Equal(t, []interface{}{"1.2.3.0/24"}, state["addresses"])
}

func TestSyncService_IdenticalStateStillWrites(t *testing.T) {
	f := newFixture(v4Prefixes(20), 10)
	f.groups.Group.Properties.IPAddresses = v4Prefixes(20)

	outcome := f.sync.Run(context.Background(), RunOptions{})

	require.Equal(t, 0, outcome.ExitCode())
	assert.Empty(t, outcome.Reconcile.Added)
	assert.Empty(t, outcome.Reconcile.Removed)
	assert.Equal(t, 1, f.groups.PutIPGroupCalls)
}

func TestRunOutcome_String(t *testing.T) {
	ok := &RunOutcome{Stage: StageEnd, V4Count: 3, V6Count: 1}
	assert.Equal(t, "completed: 3 IPv4, 1 IPv6, 0 dropped", ok.String())

	failed := &RunOutcome{Stage: StageFailed, FailedStage: StageFetched, Err: errors.New("boom")}
	assert.Equal(t, "failed at fetched: boom", failed.String())
}

func TestRunHistory(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	history := NewRunHistory(start)

	history.Begin()
	assert.True(t, history.Snapshot().Running)

	history.Record(&RunOutcome{Stage: StageEnd})
	history.Record(&RunOutcome{Stage: StageFailed, Err: errors.New("x")})

	snap := history.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, 2, snap.Runs)
	assert.Equal(t, 1, snap.Failures)
	assert.Equal(t, StageFailed, snap.Last.Stage)
	assert.Equal(t, start, snap.Since)
}
