package store

import (
	"context"
	"errors"
	"time"
)

// Snapshot kinds. Each kind holds the JSON payload of one backend read
// (the overview is the composed card list), keyed by resolution where
// the data is per-goal and by GlobalID where it is not.
const (
	KindOverview      = "overview"
	KindDashboard     = "dashboard"
	KindResolutions   = "resolutions"
	KindMirrorReports = "mirror_reports"
	KindSummary       = "summary"
	KindDiary         = "diary"
	KindReviews       = "reviews"
)

// GlobalID keys snapshots that are not scoped to a single resolution.
const GlobalID = 0

// ErrNoSnapshot is returned when nothing has been cached under a key.
var ErrNoSnapshot = errors.New("no snapshot cached")

// Store is the local snapshot cache. It only ever holds copies of
// backend responses; the backend stays the source of truth, and nothing
// here is written back to it.
type Store interface {
	// SaveSnapshot stores the JSON encoding of payload under
	// (kind, resolutionID), replacing any previous snapshot.
	SaveSnapshot(ctx context.Context, kind string, resolutionID int, payload interface{}) error

	// LoadSnapshot decodes the stored payload for (kind, resolutionID)
	// into out and returns when it was synced. Returns ErrNoSnapshot
	// when the key has never been cached.
	LoadSnapshot(ctx context.Context, kind string, resolutionID int, out interface{}) (time.Time, error)

	// PurgeResolution drops every per-goal snapshot for a deleted goal.
	PurgeResolution(ctx context.Context, resolutionID int) error

	Close() error
}
