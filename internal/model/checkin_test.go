package model

import (
	"encoding/json"
	"testing"
)

func TestCheckinUnmarshal_CanonicalField(t *testing.T) {
	data := []byte(`{
		"id": 7,
		"resolution_id": 3,
		"did_minimum_action": true,
		"friction": 1,
		"created_at": "2026-08-20T09:30:00Z"
	}`)

	var c Checkin
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !c.DidMinimumAction {
		t.Error("expected DidMinimumAction to be true")
	}
	if c.Friction != 1 {
		t.Errorf("expected friction 1, got %d", c.Friction)
	}
}

func TestCheckinUnmarshal_LegacyCompletedFold(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{
			name: "legacy completed true",
			body: `{"id": 1, "resolution_id": 1, "completed": true, "friction": 2}`,
			want: true,
		},
		{
			name: "legacy completed false",
			body: `{"id": 2, "resolution_id": 1, "completed": false, "friction": 2}`,
			want: false,
		},
		{
			name: "canonical wins over legacy",
			body: `{"id": 3, "resolution_id": 1, "completed": true, "did_minimum_action": false, "friction": 2}`,
			want: false,
		},
		{
			name: "neither field present",
			body: `{"id": 4, "resolution_id": 1, "friction": 2}`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Checkin
			if err := json.Unmarshal([]byte(tt.body), &c); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if c.DidMinimumAction != tt.want {
				t.Errorf("DidMinimumAction = %v, want %v", c.DidMinimumAction, tt.want)
			}
		})
	}
}

func TestCheckinUnmarshal_FrictionNormalized(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing defaults to 2", body: `{"id": 1, "resolution_id": 1}`, want: FrictionDefault},
		{name: "null defaults to 2", body: `{"id": 1, "resolution_id": 1, "friction": null}`, want: FrictionDefault},
		{name: "below range clamps up", body: `{"id": 1, "resolution_id": 1, "friction": 0}`, want: FrictionMin},
		{name: "above range clamps down", body: `{"id": 1, "resolution_id": 1, "friction": 9}`, want: FrictionMax},
		{name: "in range kept", body: `{"id": 1, "resolution_id": 1, "friction": 3}`, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Checkin
			if err := json.Unmarshal([]byte(tt.body), &c); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if c.Friction != tt.want {
				t.Errorf("Friction = %d, want %d", c.Friction, tt.want)
			}
		})
	}
}

func TestCheckinResultUnmarshal_Envelope(t *testing.T) {
	data := []byte(`{
		"checkin": {"id": 12, "resolution_id": 4, "did_minimum_action": true, "friction": 2},
		"drift_score": 0.55,
		"drift_triggered": true,
		"mirror_report": {
			"id": 2,
			"resolution_id": 4,
			"drift_score": 0.55,
			"findings": [{"finding": "evening sessions keep slipping", "evidence": ["3 missed evenings"], "order": 1}],
			"actionable_suggestions": []
		},
		"plan_updated": false,
		"debug": {"signals": [], "rules_applied": ["low_frequency"], "raw_json": {}}
	}`)

	var res CheckinResult
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if res.Checkin.ID != 12 {
		t.Errorf("checkin id = %d, want 12", res.Checkin.ID)
	}
	if !res.DriftTriggered {
		t.Error("expected drift_triggered to be true")
	}
	if res.MirrorReport == nil {
		t.Fatal("expected mirror report to be present")
	}
	if len(res.MirrorReport.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(res.MirrorReport.Findings))
	}
	if res.Debug == nil || len(res.Debug.RulesApplied) != 1 {
		t.Error("expected debug payload with one applied rule")
	}
	if res.PlanUpdated {
		t.Error("expected plan_updated to be false")
	}
}

func TestCheckinResultUnmarshal_NoReport(t *testing.T) {
	data := []byte(`{
		"checkin": {"id": 1, "resolution_id": 1, "did_minimum_action": true, "friction": 2},
		"drift_score": 0.1,
		"drift_triggered": false,
		"plan_updated": false
	}`)

	var res CheckinResult
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if res.MirrorReport != nil {
		t.Error("expected no mirror report on a calm check-in")
	}
	if res.Debug != nil {
		t.Error("expected no debug payload when backend omits it")
	}
}
