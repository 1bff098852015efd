package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderers are cached per (width, theme); glamour setup is expensive
// enough to matter on every draw.
type rendererKey struct {
	width int
	theme string
}

type markdownRenderer struct {
	theme string
	cache map[rendererKey]*glamour.TermRenderer
}

func newMarkdownRenderer(theme string) *markdownRenderer {
	if theme == "" {
		theme = "dark"
	}
	return &markdownRenderer{
		theme: theme,
		cache: make(map[rendererKey]*glamour.TermRenderer),
	}
}

// Render converts markdown source to styled terminal output. On any
// renderer failure the raw source is returned so the preview still
// shows something.
func (m *markdownRenderer) Render(input string, width int) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r := m.renderer(width)
	if r == nil {
		return input
	}
	out, err := r.Render(input)
	if err != nil {
		return input
	}
	return strings.TrimRight(out, "\n")
}

func (m *markdownRenderer) renderer(width int) *glamour.TermRenderer {
	key := rendererKey{width: width, theme: m.theme}
	if r, ok := m.cache[key]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.cache[key] = r
	return r
}
