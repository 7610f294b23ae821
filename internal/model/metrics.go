package model

// DriftSeverity buckets a drift score for display. The bands are fixed:
// anything below 0.30 is low, below 0.60 moderate, and 0.60 or above high.
type DriftSeverity int

const (
	DriftLow DriftSeverity = iota
	DriftModerate
	DriftHigh
)

const (
	driftModerateFloor = 0.30
	driftHighFloor     = 0.60
)

// SeverityFor maps a drift score onto its display band.
func SeverityFor(score float64) DriftSeverity {
	switch {
	case score >= driftHighFloor:
		return DriftHigh
	case score >= driftModerateFloor:
		return DriftModerate
	default:
		return DriftLow
	}
}

func (s DriftSeverity) String() string {
	switch s {
	case DriftHigh:
		return "high"
	case DriftModerate:
		return "moderate"
	default:
		return "low"
	}
}

// Label is the severity phrasing shown on the dashboard.
func (s DriftSeverity) Label() string {
	switch s {
	case DriftHigh:
		return "High drift"
	case DriftModerate:
		return "Moderate drift"
	default:
		return "On track"
	}
}

// Minimum levels the backend reports on metrics. The momentum level is a
// temporarily shrunk minimum offered after a broken streak.
const (
	MinimumLevelBase     = "base"
	MinimumLevelMomentum = "momentum"
)

// Metrics is the rollup the dashboard endpoint computes per goal.
type Metrics struct {
	CompletionRate         float64 `json:"completion_rate"`
	Streak                 int     `json:"streak"`
	AvgFriction            float64 `json:"avg_friction"`
	DriftScore             float64 `json:"drift_score"`
	TotalCheckins          int     `json:"total_checkins"`
	MinimumActionStreak    int     `json:"minimum_action_streak"`
	MinimumActionRate      float64 `json:"minimum_action_rate"`
	ThisWeekCount          int     `json:"this_week_count"`
	TargetFrequency        int     `json:"target_frequency"`
	SuggestMomentumMinimum bool    `json:"suggest_momentum_minimum"`
	MomentumSuggestionText string  `json:"momentum_suggestion_text,omitempty"`
	ActiveMinimumLevel     string  `json:"active_minimum_level,omitempty"`
}

// Severity is the display band for the current drift score.
func (m Metrics) Severity() DriftSeverity {
	return SeverityFor(m.DriftScore)
}

// MomentumActive reports whether the shrunk momentum minimum is in effect.
func (m Metrics) MomentumActive() bool {
	return m.ActiveMinimumLevel == MinimumLevelMomentum
}

// WeekProgress renders "n/target this week" data for the dashboard bar.
// The ratio is clamped to 1 so an over-target week fills the bar without
// overflowing it.
func (m Metrics) WeekProgress() float64 {
	if m.TargetFrequency <= 0 {
		return 0
	}
	r := float64(m.ThisWeekCount) / float64(m.TargetFrequency)
	if r > 1 {
		return 1
	}
	return r
}

// Dashboard is the aggregate the dashboard endpoint serves for one goal:
// the rollup plus everything the detail screen renders. Resolution is nil
// when nothing is tracked yet.
type Dashboard struct {
	Resolution     *Resolution   `json:"resolution"`
	CurrentPlan    *Plan         `json:"current_plan"`
	RecentCheckins []Checkin     `json:"recent_checkins"`
	Metrics        Metrics       `json:"metrics"`
	LatestMirror   *MirrorReport `json:"latest_mirror"`
	DriftTriggered bool          `json:"drift_triggered"`
}

// DashboardEntry is the per-goal card the multi-goal overview renders.
// It is assembled client-side; the backend serves one rollup at a time.
type DashboardEntry struct {
	Resolution     Resolution `json:"resolution"`
	Metrics        Metrics    `json:"metrics"`
	Plan           *Plan      `json:"plan,omitempty"`
	DriftTriggered bool       `json:"drift_triggered"`
}

// Entry flattens a rollup into its overview card. Callers check
// Resolution != nil first; an empty dashboard has no card.
func (d Dashboard) Entry() DashboardEntry {
	return DashboardEntry{
		Resolution:     *d.Resolution,
		Metrics:        d.Metrics,
		Plan:           d.CurrentPlan,
		DriftTriggered: d.DriftTriggered,
	}
}
