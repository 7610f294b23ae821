package diary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/api"
	"github.com/driftmirror/driftmirror-cli/internal/keys"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
	"github.com/driftmirror/driftmirror-cli/internal/validation"
)

// CloseMsg signals the parent to close the diary view.
type CloseMsg struct{}

type diaryMode int

const (
	modeList diaryMode = iota
	modeForm
)

// previewLen bounds the content preview in list rows.
const previewLen = 60

type formBindings struct {
	content string
	mood    int
}

type entriesLoadedMsg struct {
	entries  []model.DiaryEntry
	syncedAt time.Time
	err      error
}

type entrySavedMsg struct{ err error }

// Model is the Bubble Tea model for the journal view.
type Model struct {
	mode   diaryMode
	client *api.Client
	cache  store.Store
	keys   *keys.KeyMap

	entries     []model.DiaryEntry
	selectedIdx int
	editingID   int
	isNew       bool
	staleAt     time.Time

	form      *huh.Form
	fb        *formBindings
	statusMsg string

	width  int
	height int
}

// New creates a new diary model. cache may be nil when snapshots are
// disabled.
func New(client *api.Client, cache store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:   modeList,
		client: client,
		cache:  cache,
		keys:   k,
		fb:     &formBindings{mood: 3},
		width:  width,
		height: height,
	}
}

// Init loads the journal.
func (m Model) Init() tea.Cmd {
	return m.loadEntries()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.entries = msg.entries
		m.staleAt = msg.syncedAt
		if msg.err != nil && msg.syncedAt.IsZero() {
			m.statusMsg = api.Humanize(msg.err)
		}
		if m.selectedIdx >= len(m.entries) && m.selectedIdx > 0 {
			m.selectedIdx = len(m.entries) - 1
		}
		return m, nil

	case entrySavedMsg:
		if msg.err != nil {
			m.statusMsg = api.Humanize(msg.err)
		} else {
			m.statusMsg = "Entry saved"
		}
		m.mode = modeList
		return m, m.loadEntries()

	case tea.KeyMsg:
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.handleListKey(msg)
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}
	return m, nil
}

// Editing reports whether the entry form is active, so the root model can
// stop intercepting shortcut keys.
func (m Model) Editing() bool {
	return m.mode == modeForm
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.entries) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.entries)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.entries) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.entries) - 1
			}
		}
		return m, nil

	case msg.String() == "n":
		m.isNew = true
		m.editingID = 0
		m.fb.content = ""
		m.fb.mood = 3
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case msg.String() == "e":
		if len(m.entries) == 0 {
			return m, nil
		}
		entry := m.entries[m.selectedIdx]
		m.isNew = false
		m.editingID = entry.ID
		m.fb.content = entry.Content
		m.fb.mood = model.ClampMood(entry.Mood)
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	moodOpts := make([]huh.Option[int], 0, model.MoodMax)
	for mood := model.MoodMin; mood <= model.MoodMax; mood++ {
		moodOpts = append(moodOpts, huh.NewOption(moodLabel(mood), mood))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What's on your mind?").
				Placeholder("Anything; it stays between you and the mirror...").
				Value(&m.fb.content).
				Validate(validateContent),
			huh.NewSelect[int]().
				Title("Mood").
				Options(moodOpts...).
				Value(&m.fb.mood),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.saveEntry()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the diary.
func (m Model) View() string {
	if m.mode == modeForm {
		if m.form == nil {
			return ""
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("Diary"))
	b.WriteString("\n\n")

	if !m.staleAt.IsZero() {
		b.WriteString(theme.HelpStyle.Render(
			"offline copy, last synced " + m.staleAt.Format("Jan 02 15:04"),
		))
		b.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("Nothing here yet. Press 'n' to write something."))
	} else {
		for i, entry := range m.entries {
			b.WriteString(m.renderEntry(i, entry))
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Italic(true).
			Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("n new | e edit | esc back"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(b.String())
}

func (m Model) renderEntry(idx int, entry model.DiaryEntry) string {
	mood := theme.MoodStyle(entry.Mood).Render(strings.Repeat("●", model.ClampMood(entry.Mood)))

	preview := entry.Content
	if runes := []rune(preview); len(runes) > previewLen {
		preview = string(runes[:previewLen]) + "…"
	}

	line := fmt.Sprintf("%s  %s  %s",
		entry.CreatedAt.Format("Jan 02"), mood, preview)

	if idx == m.selectedIdx {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// loadEntries fetches the journal, falling back to the snapshot cache.
func (m Model) loadEntries() tea.Cmd {
	client := m.client
	cache := m.cache
	return func() tea.Msg {
		ctx := context.Background()

		entries, err := client.ListDiaryEntries(ctx)
		if err == nil {
			if cache != nil {
				_ = cache.SaveSnapshot(ctx, store.KindDiary, store.GlobalID, entries)
			}
			return entriesLoadedMsg{entries: entries}
		}

		if cache != nil {
			var cached []model.DiaryEntry
			syncedAt, cacheErr := cache.LoadSnapshot(
				ctx, store.KindDiary, store.GlobalID, &cached,
			)
			if cacheErr == nil {
				return entriesLoadedMsg{entries: cached, syncedAt: syncedAt, err: err}
			}
		}

		return entriesLoadedMsg{err: err}
	}
}

func (m Model) saveEntry() tea.Cmd {
	client := m.client
	content := validation.Sanitize(m.fb.content)
	mood := model.ClampMood(m.fb.mood)
	editID := m.editingID
	isNew := m.isNew
	return func() tea.Msg {
		ctx := context.Background()
		if isNew {
			_, err := client.CreateDiaryEntry(ctx, model.DiaryEntryCreate{
				Content: content,
				Mood:    mood,
			})
			return entrySavedMsg{err: err}
		}
		_, err := client.UpdateDiaryEntry(ctx, editID, model.DiaryEntryUpdate{
			Content: &content,
			Mood:    &mood,
		})
		return entrySavedMsg{err: err}
	}
}

func validateContent(s string) error {
	clean := validation.Sanitize(s)
	if clean == "" {
		return fmt.Errorf("write at least a line")
	}
	if len([]rune(clean)) > model.MaxDiaryContentLen {
		return fmt.Errorf("must be at most %d characters", model.MaxDiaryContentLen)
	}
	return nil
}

func moodLabel(mood int) string {
	switch mood {
	case 1:
		return "1 - rough"
	case 2:
		return "2 - low"
	case 3:
		return "3 - okay"
	case 4:
		return "4 - good"
	default:
		return "5 - great"
	}
}
