package model

import (
	"encoding/json"
	"testing"
)

func TestSeverityFor_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  DriftSeverity
	}{
		{0.0, DriftLow},
		{0.29, DriftLow},
		{0.30, DriftModerate}, // boundary is inclusive on the upper band
		{0.45, DriftModerate},
		{0.59, DriftModerate},
		{0.60, DriftHigh},
		{0.95, DriftHigh},
		{1.0, DriftHigh},
	}

	for _, tt := range tests {
		if got := SeverityFor(tt.score); got != tt.want {
			t.Errorf("SeverityFor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestDriftSeverity_Label(t *testing.T) {
	if DriftLow.Label() != "On track" {
		t.Errorf("DriftLow label = %q", DriftLow.Label())
	}
	if DriftModerate.Label() != "Moderate drift" {
		t.Errorf("DriftModerate label = %q", DriftModerate.Label())
	}
	if DriftHigh.Label() != "High drift" {
		t.Errorf("DriftHigh label = %q", DriftHigh.Label())
	}
}

func TestDashboardUnmarshal_Entry(t *testing.T) {
	data := []byte(`{
		"resolution": {"id": 3, "title": "Read daily", "frequency_per_week": 5},
		"current_plan": {"id": 8, "version": 2, "frequency_per_week": 4, "min_minutes": 10},
		"recent_checkins": [{"id": 1, "resolution_id": 3, "did_minimum_action": true, "friction": 2}],
		"metrics": {"completion_rate": 0.8, "streak": 2, "avg_friction": 1.5, "drift_score": 0.45, "total_checkins": 10},
		"latest_mirror": null,
		"drift_triggered": false
	}`)

	var d Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d.Resolution == nil || d.Resolution.ID != 3 {
		t.Fatalf("resolution = %+v", d.Resolution)
	}
	if d.Metrics.CompletionRate != 0.8 || d.Metrics.Severity() != DriftModerate {
		t.Errorf("unexpected metrics: %+v", d.Metrics)
	}
	if len(d.RecentCheckins) != 1 {
		t.Errorf("recent checkins = %d, want 1", len(d.RecentCheckins))
	}

	e := d.Entry()
	if e.Resolution.Title != "Read daily" {
		t.Errorf("entry resolution = %+v", e.Resolution)
	}
	if e.Plan == nil || e.Plan.Version != 2 {
		t.Errorf("entry plan = %+v", e.Plan)
	}
	if e.DriftTriggered {
		t.Error("entry should not carry drift on a calm rollup")
	}
}

func TestMetrics_WeekProgress(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		want float64
	}{
		{"zero target", Metrics{ThisWeekCount: 3, TargetFrequency: 0}, 0},
		{"halfway", Metrics{ThisWeekCount: 2, TargetFrequency: 4}, 0.5},
		{"exactly met", Metrics{ThisWeekCount: 4, TargetFrequency: 4}, 1},
		{"over target clamps", Metrics{ThisWeekCount: 9, TargetFrequency: 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.WeekProgress(); got != tt.want {
				t.Errorf("WeekProgress() = %v, want %v", got, tt.want)
			}
		})
	}
}
