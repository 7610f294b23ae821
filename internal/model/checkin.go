package model

import (
	"encoding/json"
	"time"
)

// Friction bounds. Every submit path clamps into this range; every decode
// normalizes into it.
const (
	FrictionMin     = 1
	FrictionDefault = 2
	FrictionMax     = 3
)

// Checkin is one append-only log entry against a resolution.
//
// Older backend rows carry a legacy `completed` flag instead of
// `did_minimum_action`; decoding folds the legacy flag into
// DidMinimumAction once, so the rest of the program reads a single
// canonical completion field.
type Checkin struct {
	ID               int       `json:"id"`
	ResolutionID     int       `json:"resolution_id"`
	Planned          string    `json:"planned,omitempty"`
	Actual           string    `json:"actual,omitempty"`
	Blocker          string    `json:"blocker,omitempty"`
	DidMinimumAction bool      `json:"did_minimum_action"`
	ExtraDone        string    `json:"extra_done,omitempty"`
	Friction         int       `json:"friction"`
	CreatedAt        time.Time `json:"created_at"`
}

// checkinWire mirrors the raw backend payload, including the legacy
// completion flag. Pointer fields distinguish absent from false/zero.
type checkinWire struct {
	ID               int       `json:"id"`
	ResolutionID     int       `json:"resolution_id"`
	Planned          string    `json:"planned"`
	Actual           string    `json:"actual"`
	Blocker          string    `json:"blocker"`
	Completed        *bool     `json:"completed"`
	DidMinimumAction *bool     `json:"did_minimum_action"`
	ExtraDone        string    `json:"extra_done"`
	Friction         *int      `json:"friction"`
	CreatedAt        time.Time `json:"created_at"`
}

// UnmarshalJSON decodes a check-in, folding the legacy `completed` field
// into DidMinimumAction when the canonical field is absent and clamping
// friction into 1..3 (legacy rows may carry nulls).
func (c *Checkin) UnmarshalJSON(data []byte) error {
	var w checkinWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	c.ID = w.ID
	c.ResolutionID = w.ResolutionID
	c.Planned = w.Planned
	c.Actual = w.Actual
	c.Blocker = w.Blocker
	c.ExtraDone = w.ExtraDone
	c.CreatedAt = w.CreatedAt

	switch {
	case w.DidMinimumAction != nil:
		c.DidMinimumAction = *w.DidMinimumAction
	case w.Completed != nil:
		c.DidMinimumAction = *w.Completed
	default:
		c.DidMinimumAction = false
	}

	c.Friction = FrictionDefault
	if w.Friction != nil {
		c.Friction = ClampFriction(*w.Friction)
	}

	return nil
}

// ClampFriction forces v into the valid 1..3 range.
func ClampFriction(v int) int {
	if v < FrictionMin {
		return FrictionMin
	}
	if v > FrictionMax {
		return FrictionMax
	}
	return v
}

// CheckinCreate is the request body for recording a check-in. Only the
// canonical minimum-action schema is sent; the backend derives legacy
// fields itself.
type CheckinCreate struct {
	ResolutionID     int    `json:"resolution_id"`
	DidMinimumAction bool   `json:"did_minimum_action"`
	ExtraDone        string `json:"extra_done,omitempty"`
	Blocker          string `json:"blocker,omitempty"`
	Friction         int    `json:"friction"`
}

// Signal is one behavioral signal the backend extracted from a check-in.
type Signal struct {
	ID         int     `json:"id"`
	SignalType string  `json:"signal_type"`
	Content    string  `json:"content"`
	Severity   float64 `json:"severity"`
}

// CheckinDebug is the diagnostic payload attached to a check-in response.
type CheckinDebug struct {
	Signals      []Signal                   `json:"signals"`
	RulesApplied []string                   `json:"rules_applied"`
	RawJSON      map[string]json.RawMessage `json:"raw_json"`
}

// CheckinResult is the envelope the backend returns for a new check-in:
// the stored record plus everything drift detection produced for it.
type CheckinResult struct {
	Checkin        Checkin       `json:"checkin"`
	DriftScore     float64       `json:"drift_score"`
	DriftTriggered bool          `json:"drift_triggered"`
	MirrorReport   *MirrorReport `json:"mirror_report,omitempty"`
	PlanUpdated    bool          `json:"plan_updated"`
	Debug          *CheckinDebug `json:"debug,omitempty"`
}
