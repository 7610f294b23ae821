package checkin

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// drain runs a command and flattens any batch it produces into the
// messages the runtime would deliver.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func submittedOf(msgs []tea.Msg) []SubmittedMsg {
	var out []SubmittedMsg
	for _, m := range msgs {
		if s, ok := m.(SubmittedMsg); ok {
			out = append(out, s)
		}
	}
	return out
}

func TestHandleSubmit_SanitizesAndArmsGuard(t *testing.T) {
	m := New(80, 24)
	m.Start(model.Resolution{ID: 3, Title: "Run"})
	m.fb.didMinimum = false
	m.fb.extraDone = "  stretched   after "
	m.fb.blocker = "late  meeting"
	m.fb.friction = 9

	m, cmd := m.handleSubmit()

	if !m.Submitting() {
		t.Fatal("expected model to be in flight after submit")
	}
	subs := submittedOf(drain(cmd))
	if len(subs) != 1 {
		t.Fatalf("expected exactly one SubmittedMsg, got %d", len(subs))
	}
	c := subs[0].Create
	if c.ResolutionID != 3 || c.DidMinimumAction {
		t.Errorf("payload = %+v", c)
	}
	if c.ExtraDone != "stretched after" || c.Blocker != "late meeting" {
		t.Errorf("text not sanitized: %q / %q", c.ExtraDone, c.Blocker)
	}
	if c.Friction != model.FrictionMax {
		t.Errorf("friction = %d, want clamped to %d", c.Friction, model.FrictionMax)
	}
}

func TestUpdate_DropsInputWhileSubmitting(t *testing.T) {
	m := New(80, 24)
	m.Start(model.Resolution{ID: 1, Title: "Read"})
	m, _ = m.handleSubmit()

	// Mashing enter while the call is in flight must not produce a
	// second submission.
	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if subs := submittedOf(drain(cmd)); len(subs) != 0 {
			t.Fatalf("repeat submit %d produced %d SubmittedMsg", i, len(subs))
		}
	}
	if !m.Submitting() {
		t.Error("guard dropped while still in flight")
	}
}

func TestFailSubmit_RestoresFormAndKeepsValues(t *testing.T) {
	m := New(80, 24)
	m.Start(model.Resolution{ID: 1, Title: "Read"})
	m.fb.blocker = "travel week"
	m, _ = m.handleSubmit()

	cmd := m.FailSubmit("can't reach DriftMirror, try again")
	if m.Submitting() {
		t.Error("expected guard released after failure")
	}
	if cmd == nil {
		t.Error("expected form re-init command")
	}
	if m.fb.blocker != "travel week" {
		t.Errorf("field value lost on retry: %q", m.fb.blocker)
	}
	if m.errMsg == "" {
		t.Error("expected inline error for the retry screen")
	}
}
