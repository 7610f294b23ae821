package model

import "time"

// Suggestion types a mirror report can carry. The change payload differs
// per type, so the UI switches on these when rendering apply actions.
const (
	SuggestionReduceFrequency = "reduce_frequency"
	SuggestionShrinkMinimum   = "shrink_minimum"
	SuggestionSwapTimeWindow  = "swap_time_window"
	SuggestionAddRecovery     = "add_recovery_step"
)

// Finding is one observation in a mirror report, ordered by the backend.
type Finding struct {
	Finding             string   `json:"finding"`
	Evidence            []string `json:"evidence"`
	Order               int      `json:"order"`
	RootCauseHypothesis string   `json:"root_cause_hypothesis,omitempty"`
}

// SuggestedChanges carries the concrete plan deltas of a suggestion.
// Nil fields mean the suggestion does not touch that knob.
type SuggestedChanges struct {
	FrequencyPerWeek *int    `json:"frequency_per_week,omitempty"`
	MinMinutes       *int    `json:"min_minutes,omitempty"`
	TimeWindow       *string `json:"time_window,omitempty"`
	RecoveryStep     *string `json:"recovery_step,omitempty"`
}

// Empty reports whether the suggestion carries no applicable change.
func (c SuggestedChanges) Empty() bool {
	return c.FrequencyPerWeek == nil && c.MinMinutes == nil &&
		c.TimeWindow == nil && c.RecoveryStep == nil
}

// Suggestion is one actionable recommendation in a mirror report.
type Suggestion struct {
	Type       string           `json:"type"`
	Suggestion string           `json:"suggestion"`
	Changes    SuggestedChanges `json:"changes"`
	Reason     string           `json:"reason,omitempty"`
}

// MirrorReport is the backend's drift analysis for a resolution.
type MirrorReport struct {
	ID                    int          `json:"id"`
	ResolutionID          int          `json:"resolution_id"`
	Findings              []Finding    `json:"findings"`
	Counterfactual        string       `json:"counterfactual,omitempty"`
	DriftScore            float64      `json:"drift_score"`
	ActionableSuggestions []Suggestion `json:"actionable_suggestions"`
	RecurringBlockers     []string     `json:"recurring_blockers,omitempty"`
	StrengthPattern       string       `json:"strength_pattern,omitempty"`
	CreatedAt             time.Time    `json:"created_at"`
}

// Severity is the display band for the report's drift score.
func (r MirrorReport) Severity() DriftSeverity {
	return SeverityFor(r.DriftScore)
}

// MirrorFeedback records whether a report was useful.
type MirrorFeedback struct {
	MirrorReportID int    `json:"mirror_report_id"`
	Helpful        bool   `json:"helpful"`
	Note           string `json:"note,omitempty"`
}
