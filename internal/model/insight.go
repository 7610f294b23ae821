package model

import "time"

// Insight types an action can be recorded against.
const (
	InsightPattern        = "pattern"
	InsightDrift          = "drift"
	InsightMirror         = "mirror"
	InsightTimePreference = "time_preference"
)

// Actions a user can take on an insight.
const (
	ActionAccept    = "accept"
	ActionConstrain = "constrain"
	ActionIgnore    = "ignore"
)

// MaxInsightSummaryLen bounds the summary text sent with an action.
const MaxInsightSummaryLen = 500

// MaxConstraintDetailsLen bounds the constraint note on a constrain action.
const MaxConstraintDetailsLen = 1000

// InsightActionCreate records what the user decided to do about an
// insight the backend surfaced.
type InsightActionCreate struct {
	ResolutionID      int            `json:"resolution_id"`
	MirrorReportID    *int           `json:"mirror_report_id,omitempty"`
	InsightType       string         `json:"insight_type"`
	InsightSummary    string         `json:"insight_summary"`
	ActionTaken       string         `json:"action_taken"`
	ConstraintDetails string         `json:"constraint_details,omitempty"`
	SuggestedChanges  map[string]any `json:"suggested_changes,omitempty"`
}

// InsightAction is a stored insight decision.
type InsightAction struct {
	ID                int            `json:"id"`
	ResolutionID      int            `json:"resolution_id"`
	MirrorReportID    *int           `json:"mirror_report_id,omitempty"`
	InsightType       string         `json:"insight_type"`
	InsightSummary    string         `json:"insight_summary"`
	ActionTaken       string         `json:"action_taken"`
	ConstraintDetails string         `json:"constraint_details,omitempty"`
	SuggestedChanges  map[string]any `json:"suggested_changes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// ValidInsightType reports whether t is one of the accepted insight types.
func ValidInsightType(t string) bool {
	switch t {
	case InsightPattern, InsightDrift, InsightMirror, InsightTimePreference:
		return true
	}
	return false
}

// ValidInsightAction reports whether a is one of the accepted actions.
func ValidInsightAction(a string) bool {
	switch a {
	case ActionAccept, ActionConstrain, ActionIgnore:
		return true
	}
	return false
}
