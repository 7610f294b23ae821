package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/driftmirror/driftmirror-cli/internal/app"
)

// TuiCmd launches the full-screen interface. It is the default command.
type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	p := tea.NewProgram(app.New(ctx.Client, ctx.Cache), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// OnboardCmd launches the TUI straight into the goal wizard.
type OnboardCmd struct{}

func (c *OnboardCmd) Run(ctx *Context) error {
	p := tea.NewProgram(app.NewOnboarding(ctx.Client, ctx.Cache), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running onboarding: %w", err)
	}
	return nil
}
