package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/driftmirror/driftmirror-cli/internal/api"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
)

// testContext wires a Context to a fake backend that answers each route
// with a canned JSON body and 404s everything else.
func testContext(t *testing.T, routes map[string]string) *Context {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail": "Resolution not found"}`)
			return
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return &Context{Client: api.New(srv.URL, log.New(io.Discard))}
}

func TestResolveEntry_SingleGoalNeedsNoFlag(t *testing.T) {
	ctx := testContext(t, map[string]string{
		"/api/resolutions/": `[{"id": 4, "title": "Stretch"}]`,
		"/api/dashboard/4/": `{"resolution": {"id": 4, "title": "Stretch"}, "metrics": {"drift_score": 0.1}}`,
	})

	entry, err := resolveEntry(context.Background(), ctx, 0)
	if err != nil {
		t.Fatalf("resolveEntry failed: %v", err)
	}
	if entry.Resolution.ID != 4 {
		t.Errorf("resolved goal %d, want 4", entry.Resolution.ID)
	}
}

func TestResolveEntry_ManyGoalsNeedFlag(t *testing.T) {
	ctx := testContext(t, map[string]string{
		"/api/resolutions/": `[{"id": 1, "title": "Write daily"}, {"id": 2, "title": "Run"}]`,
		"/api/dashboard/1/": `{"resolution": {"id": 1, "title": "Write daily"}, "metrics": {}}`,
		"/api/dashboard/2/": `{"resolution": {"id": 2, "title": "Run"}, "metrics": {}}`,
	})

	_, err := resolveEntry(context.Background(), ctx, 0)
	if err == nil {
		t.Fatal("expected an error with several goals and no --goal")
	}
	if !strings.Contains(err.Error(), "--goal 1") || !strings.Contains(err.Error(), "--goal 2") {
		t.Errorf("error should list the options, got: %v", err)
	}

	entry, err := resolveEntry(context.Background(), ctx, 2)
	if err != nil {
		t.Fatalf("resolveEntry with explicit ID failed: %v", err)
	}
	if entry.Resolution.Title != "Run" {
		t.Errorf("resolved %q, want Run", entry.Resolution.Title)
	}
}

func TestResolveEntry_NoGoalsPointsAtOnboarding(t *testing.T) {
	ctx := testContext(t, map[string]string{
		"/api/resolutions/": `[]`,
	})

	_, err := resolveEntry(context.Background(), ctx, 0)
	if err == nil || !strings.Contains(err.Error(), "onboard") {
		t.Errorf("want an onboarding hint, got %v", err)
	}
}

func TestResolveEntry_UnknownID(t *testing.T) {
	ctx := testContext(t, map[string]string{
		"/api/resolutions/": `[{"id": 1, "title": "Write daily"}]`,
		"/api/dashboard/1/": `{"resolution": {"id": 1, "title": "Write daily"}, "metrics": {}}`,
	})

	_, err := resolveEntry(context.Background(), ctx, 42)
	if err == nil || !strings.Contains(err.Error(), "42") {
		t.Errorf("want an unknown-ID error, got %v", err)
	}
}

func TestFetchOverview_FallsBackToSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	cache, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cache.Close() })

	snap := []model.DashboardEntry{{
		Resolution: model.Resolution{ID: 9, Title: "Meditate"},
	}}
	if err := cache.SaveSnapshot(context.Background(), store.KindOverview, store.GlobalID, snap); err != nil {
		t.Fatal(err)
	}

	ctx := &Context{Client: api.New(srv.URL, log.New(io.Discard)), Cache: cache}
	entries, syncedAt, err := fetchOverview(context.Background(), ctx)
	if err != nil {
		t.Fatalf("fetchOverview should fall back to the snapshot, got %v", err)
	}
	if syncedAt.IsZero() {
		t.Error("fallback data should carry its sync time")
	}
	if len(entries) != 1 || entries[0].Resolution.Title != "Meditate" {
		t.Errorf("unexpected cached overview: %+v", entries)
	}
}

func TestFetchOverview_NoCacheSurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	ctx := &Context{Client: api.New(srv.URL, log.New(io.Discard))}
	if _, _, err := fetchOverview(context.Background(), ctx); err == nil {
		t.Fatal("expected the backend error without a cache")
	}
}

func TestWeekBar(t *testing.T) {
	bar := weekBar(2, 5)
	if got := strings.Count(bar, "▰"); got != 2 {
		t.Errorf("filled segments = %d, want 2", got)
	}
	if got := strings.Count(bar, "▱"); got != 3 {
		t.Errorf("empty segments = %d, want 3", got)
	}

	// Over-target weeks fill the bar without overflowing it.
	if got := strings.Count(weekBar(9, 5), "▰"); got != 5 {
		t.Errorf("clamped fill = %d, want 5", got)
	}

	if weekBar(3, 0) != "" {
		t.Error("zero target renders nothing")
	}
}

func TestCheckinCmd_ValidateNeedsExactlyOneOutcome(t *testing.T) {
	tests := []struct {
		name    string
		done    bool
		missed  bool
		wantErr bool
	}{
		{"neither", false, false, true},
		{"both", true, true, true},
		{"done", true, false, false},
		{"missed", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CheckinCmd{Done: tt.done, Missed: tt.missed, Friction: 2}
			err := cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiaryEditCmd_Validate(t *testing.T) {
	if err := (&DiaryEditCmd{ID: 1}).Validate(); err == nil {
		t.Error("an edit with no fields should fail validation")
	}
	if err := (&DiaryEditCmd{ID: 1, Mood: 9}).Validate(); err == nil {
		t.Error("an out-of-range mood should fail validation")
	}
	if err := (&DiaryEditCmd{ID: 1, Mood: 4}).Validate(); err != nil {
		t.Errorf("a valid edit was rejected: %v", err)
	}
}

func TestReviewAddCmd_ValidateNeedsText(t *testing.T) {
	if err := (&ReviewAddCmd{}).Validate(); err == nil {
		t.Error("an empty review should fail validation")
	}
	if err := (&ReviewAddCmd{Wins: "shipped the thing"}).Validate(); err != nil {
		t.Errorf("a wins-only review was rejected: %v", err)
	}
}
