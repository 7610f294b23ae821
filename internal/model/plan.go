package model

import (
	"fmt"
	"time"
)

// Plan is one version of the commitment schedule for a resolution. The
// backend appends a new version whenever drift detection adjusts the plan;
// version numbers only ever grow. Reverting also appends: the new version
// carries the original field values, never a rewound counter.
type Plan struct {
	ID               int       `json:"id"`
	Version          int       `json:"version"`
	FrequencyPerWeek int       `json:"frequency_per_week"`
	MinMinutes       int       `json:"min_minutes"`
	TimeWindow       string    `json:"time_window,omitempty"`
	RecoveryStep     string    `json:"recovery_step,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// PlanChange describes a single field delta between two plan versions.
type PlanChange struct {
	Field string
	From  string
	To    string
}

// DiffAgainst returns the field-level changes from old to p. Used by the
// dashboard to render "what the backend adjusted" between plan versions.
func (p Plan) DiffAgainst(old Plan) []PlanChange {
	var changes []PlanChange

	if old.FrequencyPerWeek != p.FrequencyPerWeek {
		changes = append(changes, PlanChange{
			Field: "frequency",
			From:  fmt.Sprintf("%d×/week", old.FrequencyPerWeek),
			To:    fmt.Sprintf("%d×/week", p.FrequencyPerWeek),
		})
	}
	if old.MinMinutes != p.MinMinutes {
		changes = append(changes, PlanChange{
			Field: "duration",
			From:  fmt.Sprintf("%d min", old.MinMinutes),
			To:    fmt.Sprintf("%d min", p.MinMinutes),
		})
	}
	if old.TimeWindow != p.TimeWindow && (old.TimeWindow != "" || p.TimeWindow != "") {
		changes = append(changes, PlanChange{
			Field: "time window",
			From:  old.TimeWindow,
			To:    p.TimeWindow,
		})
	}

	return changes
}

// IsRevised reports whether this plan has moved past its original version.
func (p Plan) IsRevised() bool {
	return p.Version > 1
}
