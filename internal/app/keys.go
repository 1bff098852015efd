package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"scribble/internal/domain"
)

// HandleKey routes a key event to the active mode's handler. The
// transition per (mode, key) pair is deterministic; unmapped keys are
// no-ops except in DeleteConfirm, where anything but yes cancels.
func (a *App) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.Mode {
	case ModeNormal:
		return a.handleNormalKey(msg)
	case ModeInsert:
		a.handleInsertKey(msg)
	case ModeSearch:
		a.handleSearchKey(msg)
	case ModeSearchAdvanced:
		a.handleAdvancedSearchKey(msg)
	case ModeSearchReplace:
		a.handleReplaceKey(msg)
	case ModeCommand:
		a.handleCommandKey(msg)
	case ModeInputNote:
		a.handleInputKey(msg, a.FinishNewNoteInput)
	case ModeInputFolder:
		a.handleInputKey(msg, a.FinishNewFolderInput)
	case ModeMove:
		a.handleMoveKey(msg)
	case ModeHelp:
		a.handleHelpKey(msg)
	case ModeDeleteConfirm:
		a.handleDeleteConfirmKey(msg)
	}
	return nil
}

func (a *App) editorFocused() bool {
	return (a.Focused == PaneEditor || a.Focused == PanePreview) && a.CurrentNote != nil
}

func (a *App) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		if a.editorFocused() {
			a.ScrollDown()
		} else {
			a.NavigateDown()
		}
	case "k", "up":
		if a.editorFocused() {
			a.ScrollUp()
		} else {
			a.NavigateUp()
		}
	case "g":
		if a.editorFocused() {
			a.ScrollToTop()
		} else {
			a.NavigateTop()
		}
	case "G":
		if a.editorFocused() {
			a.ScrollToBottom()
		} else {
			a.NavigateBottom()
		}

	case "tab":
		a.CyclePane()

	case "enter":
		item, ok := a.SelectedItem()
		if !ok {
			break
		}
		switch item.Type {
		case domain.TreeItemNote:
			a.SelectNote(item.ID)
		case domain.TreeItemFolder:
			a.ToggleFolderExpansion()
		}

	case "n":
		var parent *uuid.UUID
		if item, ok := a.SelectedItem(); ok && item.Type == domain.TreeItemFolder {
			id := item.ID
			parent = &id
		}
		a.StartNewNoteInput(parent)

	case "f":
		// Plain f creates at the root; F creates inside the selection.
		a.StartNewFolderInput(nil)

	case "F":
		var parent *uuid.UUID
		if item, ok := a.SelectedItem(); ok {
			switch item.Type {
			case domain.TreeItemFolder:
				id := item.ID
				parent = &id
			case domain.TreeItemNote:
				if note, ok := a.Notebook.Notes[item.ID]; ok {
					parent = note.FolderID
				}
			}
		}
		a.StartNewFolderInput(parent)

	case "i":
		if a.CurrentNote != nil {
			a.Mode = ModeInsert
			a.Focused = PaneEditor
		} else {
			a.SetMessage("No note selected")
		}

	case "e":
		return a.OpenExternalEditor()

	case "d":
		a.StartDeleteConfirmation()

	case "m":
		a.StartMoveItem()

	case "/":
		a.Mode = ModeSearch
		a.InputBuffer = ""

	case "ctrl+f":
		a.Mode = ModeSearchAdvanced
		a.InputBuffer = ""

	case "ctrl+r":
		if a.CurrentNote != nil {
			a.Mode = ModeSearchReplace
			a.InputBuffer = ""
			a.CommandBuffer = ""
		} else {
			a.SetMessage("No note selected for replace")
		}

	case ":":
		a.Mode = ModeCommand
		a.CommandBuffer = ""

	case "ctrl+s":
		a.SaveCurrentNote()

	case "ctrl+p":
		a.TogglePreview()

	case "ctrl+u":
		if a.editorFocused() {
			a.ScrollHalfPageUp()
		}
	case "ctrl+d":
		if a.editorFocused() {
			a.ScrollHalfPageDown()
		}
	case "pgup":
		if a.editorFocused() {
			a.ScrollPageUp()
		}
	case "pgdown":
		if a.editorFocused() {
			a.ScrollPageDown()
		}

	case "q":
		a.Quit()

	case "?":
		a.Mode = ModeHelp
	}
	return nil
}

func (a *App) handleInsertKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		if a.Completion.Active {
			a.Completion.Deactivate()
			return
		}
		a.Mode = ModeNormal
		a.SaveCurrentNote()

	case "enter":
		if a.Completion.Active {
			a.ApplyAutocomplete()
			return
		}
		a.InsertNewline()

	case "backspace":
		a.Backspace()

	case "tab":
		if a.Completion.Active {
			a.ApplyAutocomplete()
			return
		}
		a.InsertText("    ")

	case "ctrl+n":
		a.Completion.Next()
	case "ctrl+b":
		a.Completion.Prev()

	case "ctrl+s":
		a.SaveCurrentNote()
	case "ctrl+p":
		a.TogglePreview()
	case "ctrl+u":
		a.ScrollHalfPageUp()
	case "ctrl+d":
		a.ScrollHalfPageDown()
	case "pgup":
		a.ScrollPageUp()
	case "pgdown":
		a.ScrollPageDown()

	case "up":
		a.CursorUp()
	case "down":
		a.CursorDown()
	case "left":
		a.CursorLeft()
	case "right":
		a.CursorRight()

	default:
		if text, ok := keyText(msg); ok {
			a.InsertText(text)
		}
	}
}

func (a *App) handleSearchKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		a.Mode = ModeNormal
		a.InputBuffer = ""
	case "enter":
		if a.InputBuffer != "" {
			a.RunSearch(a.InputBuffer)
		}
		a.Mode = ModeNormal
		a.InputBuffer = ""
	case "backspace":
		a.InputBuffer = trimLastRune(a.InputBuffer)
	default:
		if text, ok := keyText(msg); ok {
			a.InputBuffer += text
		}
	}
}

func (a *App) handleAdvancedSearchKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		a.Mode = ModeNormal
		a.InputBuffer = ""
	case "enter":
		if a.InputBuffer != "" {
			a.RunAdvancedSearch(a.InputBuffer)
		}
		a.Mode = ModeNormal
		a.InputBuffer = ""
	case "backspace":
		a.InputBuffer = trimLastRune(a.InputBuffer)
	case "up":
		// Recall the most recent query.
		if history := a.SearchHistory(); len(history) > 0 {
			a.InputBuffer = history[0]
		}
	default:
		if text, ok := keyText(msg); ok {
			a.InputBuffer += text
		}
	}
}

func (a *App) handleReplaceKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		a.Mode = ModeNormal
		a.InputBuffer = ""
		a.CommandBuffer = ""
	case "enter":
		isRegex := strings.Contains(a.CommandBuffer, "regex")
		caseSensitive := strings.Contains(a.CommandBuffer, "case")
		a.RunReplace(a.InputBuffer, isRegex, caseSensitive)
		a.Mode = ModeNormal
		a.InputBuffer = ""
		a.CommandBuffer = ""
	case "backspace":
		a.InputBuffer = trimLastRune(a.InputBuffer)
	case "ctrl+r":
		a.CommandBuffer += "regex "
	case "ctrl+c":
		a.CommandBuffer += "case "
	default:
		if text, ok := keyText(msg); ok {
			a.InputBuffer += text
		}
	}
}

func (a *App) handleCommandKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		a.Mode = ModeNormal
		a.CommandBuffer = ""
	case "enter":
		command := a.CommandBuffer
		a.Mode = ModeNormal
		a.CommandBuffer = ""
		a.ExecuteCommand(command)
	case "backspace":
		a.CommandBuffer = trimLastRune(a.CommandBuffer)
	default:
		if text, ok := keyText(msg); ok {
			a.CommandBuffer += text
		}
	}
}

func (a *App) handleInputKey(msg tea.KeyMsg, confirm func()) {
	switch msg.String() {
	case "esc":
		a.CancelInput()
	case "enter":
		confirm()
	case "backspace":
		a.InputBuffer = trimLastRune(a.InputBuffer)
	default:
		if text, ok := keyText(msg); ok {
			a.InputBuffer += text
		}
	}
}

func (a *App) handleMoveKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		a.CancelMove()
	case "j", "down":
		a.NavigateDown()
	case "k", "up":
		a.NavigateUp()
	case "g":
		a.NavigateTop()
	case "G":
		a.NavigateBottom()
	case "enter":
		a.ExecuteMove()
	case "?":
		a.SetMessage("Move mode: j/k=navigate, Enter=move here, Esc=cancel")
	}
}

func (a *App) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "?", "q":
		a.Mode = ModeNormal
	}
}

func (a *App) handleDeleteConfirmKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.ConfirmDelete()
	default:
		a.CancelDelete()
	}
}

// keyText extracts printable input from a key event.
func keyText(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes), true
	case tea.KeySpace:
		return " ", true
	default:
		return "", false
	}
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
