package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Goal actions
	Checkin       key.Binding
	Mirror        key.Binding
	Summary       key.Binding
	Diary         key.Binding
	EditMinimum   key.Binding
	RevertPlan    key.Binding
	Delete        key.Binding
	NewGoal       key.Binding
	ToggleExpand  key.Binding
	MarkHelpful   key.Binding
	MarkUnhelpful key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Checkin: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "check in"),
		),
		Mirror: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mirror report"),
		),
		Summary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "progress summary"),
		),
		Diary: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "diary"),
		),
		EditMinimum: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit minimum action"),
		),
		RevertPlan: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "revert plan"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete goal"),
		),
		NewGoal: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new goal"),
		),
		ToggleExpand: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "expand finding"),
		),
		MarkHelpful: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "helpful"),
		),
		MarkUnhelpful: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "not helpful"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Checkin,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Command, k.Help, k.Refresh, k.NewGoal},
		{k.Checkin, k.Mirror, k.Summary, k.Diary},
		{k.EditMinimum, k.RevertPlan, k.Delete, k.ToggleExpand},
		{k.MarkHelpful, k.MarkUnhelpful},
	}
}
