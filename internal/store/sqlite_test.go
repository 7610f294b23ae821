package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []model.DashboardEntry{
		{
			Resolution: model.Resolution{ID: 1, Title: "Read daily", FrequencyPerWeek: 5},
			Metrics:    model.Metrics{MinimumActionStreak: 4, DriftScore: 0.2},
		},
	}

	if err := s.SaveSnapshot(ctx, store.KindOverview, store.GlobalID, in); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	var out []model.DashboardEntry
	syncedAt, err := s.LoadSnapshot(ctx, store.KindOverview, store.GlobalID, &out)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if syncedAt.IsZero() {
		t.Error("expected a sync time")
	}
	if len(out) != 1 || out[0].Resolution.Title != "Read daily" {
		t.Errorf("unexpected payload: %+v", out)
	}
	if out[0].Metrics.MinimumActionStreak != 4 {
		t.Errorf("metrics lost in round trip: %+v", out[0].Metrics)
	}
}

func TestSnapshotReplacesPrevious(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []model.Resolution{{ID: 1, Title: "old"}}
	second := []model.Resolution{{ID: 1, Title: "new"}, {ID: 2, Title: "extra"}}

	if err := s.SaveSnapshot(ctx, store.KindResolutions, store.GlobalID, first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(ctx, store.KindResolutions, store.GlobalID, second); err != nil {
		t.Fatal(err)
	}

	var out []model.Resolution
	if _, err := s.LoadSnapshot(ctx, store.KindResolutions, store.GlobalID, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].Title != "new" {
		t.Errorf("expected second snapshot to win, got %+v", out)
	}
}

func TestSnapshotMissingKey(t *testing.T) {
	s := newTestStore(t)

	var out model.Dashboard
	_, err := s.LoadSnapshot(context.Background(), store.KindDashboard, 7, &out)
	if !errors.Is(err, store.ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestSnapshotPerResolutionKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r1 := []model.MirrorReport{{ID: 10, ResolutionID: 1, DriftScore: 0.7}}
	r2 := []model.MirrorReport{{ID: 20, ResolutionID: 2, DriftScore: 0.1}}

	if err := s.SaveSnapshot(ctx, store.KindMirrorReports, 1, r1); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(ctx, store.KindMirrorReports, 2, r2); err != nil {
		t.Fatal(err)
	}

	var out []model.MirrorReport
	if _, err := s.LoadSnapshot(ctx, store.KindMirrorReports, 2, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != 20 {
		t.Errorf("wrong snapshot for resolution 2: %+v", out)
	}
}

func TestPurgeResolution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveSnapshot(ctx, store.KindMirrorReports, 3, []model.MirrorReport{{ID: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(ctx, store.KindDashboard, 3, model.Dashboard{DriftTriggered: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(ctx, store.KindOverview, store.GlobalID, []model.DashboardEntry{}); err != nil {
		t.Fatal(err)
	}

	if err := s.PurgeResolution(ctx, 3); err != nil {
		t.Fatalf("PurgeResolution failed: %v", err)
	}

	var reports []model.MirrorReport
	if _, err := s.LoadSnapshot(ctx, store.KindMirrorReports, 3, &reports); !errors.Is(err, store.ErrNoSnapshot) {
		t.Errorf("expected purged mirror snapshot, got %v", err)
	}
	var dash model.Dashboard
	if _, err := s.LoadSnapshot(ctx, store.KindDashboard, 3, &dash); !errors.Is(err, store.ErrNoSnapshot) {
		t.Errorf("expected purged dashboard snapshot, got %v", err)
	}

	// Global snapshots survive a per-goal purge.
	if _, err := s.LoadSnapshot(ctx, store.KindOverview, store.GlobalID, nil); err != nil {
		t.Errorf("global snapshot should survive: %v", err)
	}
}
