package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weiC29/prediction-web/internal/api"
	"github.com/weiC29/prediction-web/internal/review"
)

func TestClientClaim(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/claims" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		var req api.ClaimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Identity != "Alice" {
			t.Errorf("identity = %q", req.Identity)
		}
		json.NewEncoder(w).Encode(api.ClaimResponse{Row: 3, SheetRow: 5, ClaimedBy: "Alice"})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, api.WithToken("sekrit"))
	claim, err := client.Claim(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if claim == nil || claim.Row != 3 || claim.SheetRow != 5 {
		t.Fatalf("unexpected claim: %+v", claim)
	}
	if gotAuth != "Bearer sekrit" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
}

func TestClientClaimNoWork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	claim, err := api.NewClient(server.URL).Claim(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if claim != nil {
		t.Fatalf("expected nil claim, got %+v", claim)
	}
}

func TestClientSubmitErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"conflict maps to not editable", http.StatusConflict, review.ErrNotEditable},
		{"unprocessable maps to invalid result", http.StatusUnprocessableEntity, review.ErrInvalidResult},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(api.ErrorResponse{Error: "nope"})
			}))
			defer server.Close()

			err := api.NewClient(server.URL).Submit(context.Background(), 0, api.SubmissionRequest{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClientStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.StatsResponse{Total: 10, Available: 4, Claimed: 1, Submitted: 5})
	}))
	defer server.Close()

	stats, err := api.NewClient(server.URL).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := api.StatsResponse{Total: 10, Available: 4, Claimed: 1, Submitted: 5}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}
