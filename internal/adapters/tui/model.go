// Package tui renders the application state with bubbletea. It is a
// thin view layer: all key handling and mutation lives in the app
// package, the model here only routes messages and draws panes.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scribble/internal/app"
	"scribble/internal/config"
)

const tickInterval = 250 * time.Millisecond

type tickMsg time.Time

// Model wraps the application state for bubbletea.
type Model struct {
	app      *app.App
	markdown *markdownRenderer
	keys     keyMap

	width  int
	height int
}

// NewModel builds the TUI model around the live application state.
func NewModel(a *app.App, preview config.PreviewConfig) *Model {
	if preview.Enabled {
		a.PreviewEnabled = true
	}
	return &Model{
		app:      a,
		markdown: newMarkdownRenderer(preview.Theme),
		keys:     defaultKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.app.SetEditorHeight(m.editorHeight())
		return m, nil

	case tickMsg:
		m.app.ExpireFeedback(time.Time(msg))
		return m, tick()

	case app.EditorFinishedMsg:
		m.app.HandleEditorFinished(msg)
		return m, nil

	case tea.KeyMsg:
		if m.app.Mode == app.ModeNormal && key.Matches(msg, m.keys.Yank) {
			m.yankNote()
			return m, nil
		}
		cmd := m.app.HandleKey(msg)
		if m.app.ShouldQuit {
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

// yankNote copies the open note's content to the system clipboard.
func (m *Model) yankNote() {
	if m.app.CurrentNote == nil {
		m.app.SetMessage("No note to copy")
		return
	}
	if err := clipboard.WriteAll(m.app.EditorContent); err != nil {
		m.app.SetMessage("Clipboard unavailable: " + err.Error())
		return
	}
	m.app.SetOperationSuccess("Note copied to clipboard", "📋")
}

// editorHeight is the content rows available inside the editor frame.
func (m *Model) editorHeight() int {
	// Status bar plus the pane border rows.
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}
