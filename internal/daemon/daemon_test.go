package daemon_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/weiC29/prediction-web/internal/api"
	"github.com/weiC29/prediction-web/internal/daemon"
	"github.com/weiC29/prediction-web/internal/display"
	"github.com/weiC29/prediction-web/internal/logging"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/testsupport"
)

func startDaemon(t *testing.T, rows int, opts ...testsupport.ConfigOption) (*daemon.Daemon, string) {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	store := testsupport.NewSeededMemory(rows)
	coord := review.NewCoordinator(store, review.Options{
		ClaimTTL:        cfg.ClaimTTL(),
		StrictOwnership: cfg.Review.StrictOwnership,
		Outcomes:        cfg.Review.Outcomes,
		ScoreMin:        cfg.Review.ScoreMin,
		ScoreMax:        cfg.Review.ScoreMax,
		Logger:          logging.NewNop(),
	})
	svc := api.NewService(store, coord, display.Spec{})

	d, err := daemon.New(cfg, store, coord, svc, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
	})
	return d, "http://" + d.Addr()
}

func TestDaemonServesClaimAndSubmission(t *testing.T) {
	_, baseURL := startDaemon(t, 2)
	client := api.NewClient(baseURL)
	ctx := context.Background()

	claim, err := client.Claim(ctx, "Alice")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if claim == nil || claim.ClaimedBy != "Alice" {
		t.Fatalf("unexpected claim: %+v", claim)
	}

	err = client.Submit(ctx, claim.Row, api.SubmissionRequest{
		ReviewerName:  "Alice",
		ReviewerEmail: "alice@example.org",
		Outcome:       "0",
		Confidence:    "Neutral",
		Score:         55,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	stats, err := client.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Submitted != 1 || stats.Available != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestDaemonMapsWorkflowErrors(t *testing.T) {
	_, baseURL := startDaemon(t, 1)
	client := api.NewClient(baseURL)
	ctx := context.Background()

	claim, err := client.Claim(ctx, "Alice")
	if err != nil || claim == nil {
		t.Fatalf("Claim: claim=%v err=%v", claim, err)
	}

	// Bob trying to submit Alice's claim is an ownership conflict.
	err = client.Submit(ctx, claim.Row, api.SubmissionRequest{
		ReviewerName:  "Bob",
		ReviewerEmail: "bob@example.org",
		Outcome:       "1",
		Confidence:    "Neutral",
		Score:         10,
	})
	if !errors.Is(err, review.ErrNotEditable) {
		t.Fatalf("expected ErrNotEditable, got %v", err)
	}

	// A malformed payload is a validation error.
	err = client.Submit(ctx, claim.Row, api.SubmissionRequest{
		ReviewerName:  "Alice",
		ReviewerEmail: "alice@example.org",
		Outcome:       "1",
		Confidence:    "kinda",
		Score:         10,
	})
	if !errors.Is(err, review.ErrInvalidResult) {
		t.Fatalf("expected ErrInvalidResult, got %v", err)
	}
}

func TestDaemonClaimExhaustionReturnsNoContent(t *testing.T) {
	_, baseURL := startDaemon(t, 1)
	client := api.NewClient(baseURL)
	ctx := context.Background()

	if _, err := client.Claim(ctx, "Alice"); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	claim, err := client.Claim(ctx, "Bob")
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if claim != nil {
		t.Fatalf("expected no work for Bob, got %+v", claim)
	}
}

func TestDaemonRequiresToken(t *testing.T) {
	_, baseURL := startDaemon(t, 1, testsupport.WithAPIToken("sekrit"))

	if _, err := api.NewClient(baseURL).Stats(context.Background()); err == nil {
		t.Fatal("expected unauthorized error without token")
	}

	resp, err := http.Get(baseURL + "/api/stats")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	stats, err := api.NewClient(baseURL, api.WithToken("sekrit")).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats with token: %v", err)
	}
	if stats.Total != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestDaemonSingleInstance(t *testing.T) {
	d, _ := startDaemon(t, 1)
	if err := d.Start(context.Background()); err == nil {
		t.Fatal("expected second start to fail")
	}
}

func TestDaemonStatusEndpoint(t *testing.T) {
	d, baseURL := startDaemon(t, 3)
	status, err := api.NewClient(baseURL).Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running {
		t.Fatal("expected running daemon")
	}
	if status.LockFilePath != d.Status().LockFilePath {
		t.Fatalf("lock path mismatch: %q", status.LockFilePath)
	}
	if status.Stats.Total != 3 {
		t.Fatalf("unexpected stats: %+v", status.Stats)
	}
}
