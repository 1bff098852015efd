package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"scribble/internal/adapters/tui/styles"
	"scribble/internal/app"
	"scribble/internal/domain"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	if m.app.Mode == app.ModeHelp {
		return m.helpView()
	}

	body := m.panesView()
	prompt := m.promptView()
	status := m.statusBar()

	sections := []string{body}
	if prompt != "" {
		sections = append(sections, prompt)
	}
	sections = append(sections, status)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) panesView() string {
	treeWidth := m.width / 4
	if treeWidth < 20 {
		treeWidth = 20
	}
	rest := m.width - treeWidth
	var editorWidth, previewWidth int
	if m.app.PreviewEnabled {
		editorWidth = rest / 2
		previewWidth = rest - editorWidth
	} else {
		editorWidth = rest
	}

	height := m.editorHeight()
	panes := []string{
		m.treePane(treeWidth, height),
		m.editorPane(editorWidth, height),
	}
	if m.app.PreviewEnabled {
		panes = append(panes, m.previewPane(previewWidth, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func (m *Model) treePane(width, height int) string {
	inner := width - 4
	var b strings.Builder

	rows := m.app.TreeItems
	for i, item := range rows {
		if i >= height {
			break
		}
		marker := styles.TreeLeaf
		if item.Type == domain.TreeItemFolder {
			if item.Expanded {
				marker = styles.TreeExpanded
			} else {
				marker = styles.TreeCollapsed
			}
		}
		line := strings.Repeat("  ", item.Depth) + marker + item.Name
		line = runewidth.Truncate(line, inner, "…")

		switch {
		case i == m.app.Selected:
			line = styles.RowSelected.Render(line)
		case item.Type == domain.TreeItemFolder:
			line = styles.RowFolder.Render(line)
		default:
			line = styles.RowNote.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(rows) == 0 {
		b.WriteString(styles.MutedText.Render("empty - press n"))
	}

	return m.framePane("Notes", b.String(), width, height, m.app.Focused == app.PaneFolders)
}

func (m *Model) editorPane(width, height int) string {
	inner := width - 4
	var b strings.Builder

	if m.app.CurrentNote == nil {
		b.WriteString(styles.MutedText.Render("No note open. Enter opens the selection."))
	} else {
		lines := strings.Split(m.app.EditorContent, "\n")
		end := min(len(lines), m.app.Scroll+height)
		for i := m.app.Scroll; i < end; i++ {
			line := lines[i]
			if m.app.Mode == app.ModeInsert && i == m.app.CursorRow {
				line = renderCursorLine(line, m.app.CursorCol)
			} else {
				line = runewidth.Truncate(line, inner, "…")
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		if popup := m.completionPopup(); popup != "" {
			b.WriteString(popup)
		}
	}

	title := "Editor"
	if m.app.CurrentNote != nil {
		title = runewidth.Truncate(m.app.CurrentNote.Title, inner, "…")
	}
	return m.framePane(title, b.String(), width, height, m.app.Focused == app.PaneEditor)
}

func (m *Model) previewPane(width, height int) string {
	content := ""
	if m.app.CurrentNote != nil {
		content = m.markdown.Render(m.app.EditorContent, width-4)
		lines := strings.Split(content, "\n")
		if len(lines) > m.app.Scroll {
			end := min(len(lines), m.app.Scroll+height)
			content = strings.Join(lines[m.app.Scroll:end], "\n")
		}
	}
	return m.framePane("Preview", content, width, height, m.app.Focused == app.PanePreview)
}

// renderCursorLine draws a block cursor at col, appending one at the
// line end when the cursor sits past the last character.
func renderCursorLine(line string, col int) string {
	if col >= len(line) {
		return line + styles.CursorBlock.Render(" ")
	}
	return line[:col] + styles.CursorBlock.Render(string(line[col])) + line[col+1:]
}

func (m *Model) completionPopup() string {
	st := &m.app.Completion
	if !st.Active || len(st.Suggestions) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range st.Suggestions {
		row := fmt.Sprintf("%s  %s", s.Trigger, s.Description)
		if i == st.Selected {
			row = styles.CompletionSelected.Render(row)
		}
		b.WriteString(row)
		if i < len(st.Suggestions)-1 {
			b.WriteByte('\n')
		}
	}
	return styles.CompletionBox.Render(b.String())
}

func (m *Model) framePane(title, content string, width, height int, focused bool) string {
	style := styles.Pane
	if focused {
		style = styles.PaneFocused
	}
	header := styles.PaneTitle.Render(title)
	return style.Width(width - 2).Height(height + 1).Render(header + "\n" + content)
}

// promptView renders the one-line input prompt for capture modes.
func (m *Model) promptView() string {
	var label, buffer string
	switch m.app.Mode {
	case app.ModeSearch:
		label, buffer = "/", m.app.InputBuffer
	case app.ModeSearchAdvanced:
		label, buffer = "search (regex:/case:):", m.app.InputBuffer
	case app.ModeSearchReplace:
		label, buffer = "replace (find|replace):", m.app.InputBuffer
	case app.ModeCommand:
		label, buffer = ":", m.app.CommandBuffer
	case app.ModeInputNote:
		label, buffer = "Note title:", m.app.InputBuffer
	case app.ModeInputFolder:
		label, buffer = "Folder name:", m.app.InputBuffer
	case app.ModeDeleteConfirm:
		return styles.ErrorMsg.Render("Delete? y/n")
	default:
		return ""
	}
	return styles.InputLabel.Render(label) + " " + styles.InputField.Render(buffer+"▌")
}

func (m *Model) statusBar() string {
	mode := styles.StatusMode.Render(m.app.Mode.String())

	var save string
	if m.app.CurrentNote != nil {
		save = " [" + m.app.SaveStatus.String() + "]"
		if m.app.SaveStatus == app.StatusModified {
			save = styles.StatusModified.Render(save)
		}
	}

	message := m.app.StatusMessage
	if r := m.app.Result; r != nil {
		rendered := r.Icon + " " + r.Message
		switch r.Kind {
		case app.ResultSuccess:
			message = styles.Success.Render(rendered)
		case app.ResultError:
			message = styles.ErrorMsg.Render(rendered)
		default:
			message = styles.Info.Render(rendered)
		}
	}

	left := mode + save + " "
	avail := m.width - lipgloss.Width(left) - 2
	if avail > 0 {
		message = runewidth.Truncate(message, avail, "…")
	}
	return styles.StatusBar.Width(m.width).Render(left + message)
}

func (m *Model) helpView() string {
	type binding struct{ key, desc string }
	sections := []struct {
		title string
		keys  []binding
	}{
		{"Navigation", []binding{
			{"j/k", "move selection / scroll"},
			{"g/G", "jump to top / bottom"},
			{"Tab", "cycle pane focus"},
			{"Enter", "open note / toggle folder"},
		}},
		{"Editing", []binding{
			{"i", "insert mode"},
			{"Esc", "leave insert mode (saves)"},
			{"e", "open in external editor"},
			{"Ctrl+S", "save"},
			{"Tab/Enter", "accept completion"},
			{"Ctrl+N/Ctrl+B", "cycle completions"},
		}},
		{"Organize", []binding{
			{"n", "new note"},
			{"f/F", "new folder / subfolder"},
			{"m", "move item"},
			{"d", "delete item"},
			{"y", "copy note to clipboard"},
		}},
		{"Search & commands", []binding{
			{"/", "search"},
			{"Ctrl+F", "advanced search (regex:, case:)"},
			{"Ctrl+R", "find and replace"},
			{":", "command (:w :q :wq :export :import :backup)"},
			{"Ctrl+P", "toggle preview"},
			{"q", "quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(styles.PaneTitle.Render("Scribble help"))
	b.WriteString("\n\n")
	for _, sec := range sections {
		b.WriteString(styles.InputLabel.Render(sec.title))
		b.WriteByte('\n')
		for _, k := range sec.keys {
			b.WriteString("  ")
			b.WriteString(styles.HelpKey.Render(runewidth.FillRight(k.key, 14)))
			b.WriteString(styles.HelpDesc.Render(k.desc))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString(styles.MutedText.Render("Esc or ? to close"))
	return styles.Pane.Width(m.width - 2).Render(b.String())
}
