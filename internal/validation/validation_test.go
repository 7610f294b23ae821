package validation

import (
	"strings"
	"testing"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  run every morning  ", "run every morning"},
		{"run\t\tevery\nmorning", "run every morning"},
		{"", ""},
		{"   ", ""},
		{"already clean", "already clean"},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGoal(t *testing.T) {
	if r := Goal("Read 20 pages before bed"); !r.OK() {
		t.Errorf("valid goal rejected: %s", r.Error())
	}
	if r := Goal("   "); r.OK() {
		t.Error("whitespace-only goal accepted")
	}
	if r := Goal(strings.Repeat("a", model.MaxTitleLen+1)); r.OK() {
		t.Error("overlong goal accepted")
	}
}

func TestMinimumAction(t *testing.T) {
	if r := MinimumAction("Put on running shoes and step outside", 5); !r.OK() {
		t.Errorf("valid minimum action rejected: %s", r.Error())
	}
	if r := MinimumAction("", 5); r.OK() {
		t.Error("empty minimum action accepted")
	}
	if r := MinimumAction("stretch", 0); r.OK() {
		t.Error("zero-minute minimum action accepted")
	}
	if r := MinimumAction("stretch", model.MinMinutesCeil+1); r.OK() {
		t.Error("over-ceiling duration accepted")
	}
}

func TestFrequency(t *testing.T) {
	for _, f := range []int{1, 3, 7} {
		if r := Frequency(f); !r.OK() {
			t.Errorf("Frequency(%d) rejected: %s", f, r.Error())
		}
	}
	for _, f := range []int{0, 8, -1} {
		if r := Frequency(f); r.OK() {
			t.Errorf("Frequency(%d) accepted", f)
		}
	}
}

func TestDiaryEntry(t *testing.T) {
	if r := DiaryEntry("good session today", 4); !r.OK() {
		t.Errorf("valid entry rejected: %s", r.Error())
	}
	if r := DiaryEntry("", 3); r.OK() {
		t.Error("empty content accepted")
	}
	if r := DiaryEntry("fine", 6); r.OK() {
		t.Error("out-of-range mood accepted")
	}
}

func TestResult_ErrorJoinsIssues(t *testing.T) {
	r := MinimumAction("", 0)
	if len(r.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(r.Issues))
	}
	msg := r.Error()
	if !strings.Contains(msg, "minimum action") || !strings.Contains(msg, "minutes") {
		t.Errorf("joined error missing fields: %q", msg)
	}
}
