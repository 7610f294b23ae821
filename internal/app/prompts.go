package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
	"github.com/driftmirror/driftmirror-cli/internal/validation"
)

// promptBindings holds the small prompt form values on the heap so huh's
// Value() pointers survive root-model copies.
type promptBindings struct {
	target      model.Resolution
	minimumText string
	revertYes   bool
}

// startEditMinimum opens the one-field form for the minimum-action text.
func (m Model) startEditMinimum(res model.Resolution) (tea.Model, tea.Cmd) {
	m.prompts.target = res
	m.prompts.minimumText = res.MinimumActionText

	m.editForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum action").
				Description("The smallest version that still counts.").
				Value(&m.prompts.minimumText).
				Validate(validateMinimumText),
		),
	).WithWidth(m.promptWidth())

	m.currentView = ViewEditMinimum
	cmd := m.editForm.Init()
	return m, cmd
}

func (m Model) updateEditMinimum(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editForm == nil {
		m.currentView = m.returnTo
		return m, nil
	}

	mdl, cmd := m.editForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.editForm = f
	}

	if m.editForm.State == huh.StateCompleted {
		text := validation.Sanitize(m.prompts.minimumText)
		m.currentView = m.returnTo
		return m, m.updateMinimum(m.prompts.target.ID, text)
	}
	if m.editForm.State == huh.StateAborted {
		m.currentView = m.returnTo
		return m, nil
	}
	return m, cmd
}

// startRevertConfirm opens the confirmation for restoring the original plan.
func (m Model) startRevertConfirm(res model.Resolution) (tea.Model, tea.Cmd) {
	m.prompts.target = res
	m.prompts.revertYes = false

	m.revertForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Restore the original plan for %q?", res.Title)).
				Description("A new plan version is created carrying the " +
					"original frequency, minutes, and time window.").
				Affirmative("Restore").
				Negative("Keep current").
				Value(&m.prompts.revertYes),
		),
	).WithWidth(m.promptWidth())

	m.currentView = ViewRevertConfirm
	cmd := m.revertForm.Init()
	return m, cmd
}

func (m Model) updateRevertConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.revertForm == nil {
		m.currentView = m.returnTo
		return m, nil
	}

	mdl, cmd := m.revertForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.revertForm = f
	}

	if m.revertForm.State == huh.StateCompleted {
		m.currentView = m.returnTo
		if m.prompts.revertYes {
			return m, m.revertPlan(m.prompts.target.ID)
		}
		return m, nil
	}
	if m.revertForm.State == huh.StateAborted {
		m.currentView = m.returnTo
		return m, nil
	}
	return m, cmd
}

func (m Model) viewPrompt(form *huh.Form, title string) string {
	if form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(title) + "\n" + form.View()
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m Model) promptWidth() int {
	w := m.layout.ContentWidth() - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func validateMinimumText(s string) error {
	clean := validation.Sanitize(s)
	if clean == "" {
		return fmt.Errorf("cannot be empty")
	}
	if len([]rune(clean)) > model.MaxMinimumActionLen {
		return fmt.Errorf("must be at most %d characters", model.MaxMinimumActionLen)
	}
	return nil
}
