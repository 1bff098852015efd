package app

import (
	"strings"

	"scribble/internal/autocomplete"
)

// Editing appends at the end of the content buffer; the cursor row and
// column are re-derived from the content after every edit. They are
// authoritative only for display and autocomplete addressing.

// InsertText appends text to the editor buffer.
func (a *App) InsertText(text string) {
	a.EditorContent += text
	a.markModified()
	a.syncCursorToEnd()
	a.UpdateAutocompletion()
}

// InsertNewline appends a line break and advances the cursor row.
func (a *App) InsertNewline() {
	a.EditorContent += "\n"
	a.markModified()
	a.CursorRow++
	a.CursorCol = 0
	a.AdjustScrollToCursor()
	a.Completion.Deactivate()
}

// Backspace removes the last character of the buffer.
func (a *App) Backspace() {
	if a.EditorContent == "" {
		return
	}
	a.EditorContent = trimLastRune(a.EditorContent)
	a.markModified()
	a.syncCursorToEnd()
	a.UpdateAutocompletion()
}

func (a *App) markModified() {
	a.SaveStatus = StatusModified
}

// syncCursorToEnd re-derives (row, col) from the buffer after an edit.
func (a *App) syncCursorToEnd() {
	lines := strings.Split(a.EditorContent, "\n")
	a.CursorRow = len(lines) - 1
	a.CursorCol = len(lines[a.CursorRow])
	a.AdjustScrollToCursor()
}

// --- cursor movement (bounded, display-only) ---

func (a *App) CursorUp() {
	if a.CursorRow > 0 {
		a.CursorRow--
		a.AdjustScrollToCursor()
	}
}

func (a *App) CursorDown() {
	if a.CursorRow < a.lineCount()-1 {
		a.CursorRow++
		a.AdjustScrollToCursor()
	}
}

func (a *App) CursorLeft() {
	if a.CursorCol > 0 {
		a.CursorCol--
	}
}

func (a *App) CursorRight() {
	if a.CursorCol < len(a.currentLine()) {
		a.CursorCol++
	}
}

func (a *App) currentLine() string {
	lines := strings.Split(a.EditorContent, "\n")
	if a.CursorRow < len(lines) {
		return lines[a.CursorRow]
	}
	return ""
}

func (a *App) lineCount() int {
	if a.EditorContent == "" {
		return 0
	}
	return strings.Count(a.EditorContent, "\n") + 1
}

// --- scrolling ---

func (a *App) ScrollUp()   { a.scrollBy(-1) }
func (a *App) ScrollDown() { a.scrollBy(1) }

func (a *App) ScrollHalfPageUp()   { a.scrollBy(-a.visibleRows / 2) }
func (a *App) ScrollHalfPageDown() { a.scrollBy(a.visibleRows / 2) }

func (a *App) ScrollPageUp()   { a.scrollBy(-a.visibleRows) }
func (a *App) ScrollPageDown() { a.scrollBy(a.visibleRows) }

func (a *App) ScrollToTop() { a.Scroll = 0 }

func (a *App) ScrollToBottom() {
	a.Scroll = max(0, a.lineCount()-1)
}

func (a *App) scrollBy(delta int) {
	a.Scroll += delta
	if a.Scroll < 0 {
		a.Scroll = 0
	}
	if limit := a.lineCount() - 1; a.Scroll > limit {
		a.Scroll = max(0, limit)
	}
}

// AdjustScrollToCursor snaps the scroll offset so the cursor row stays
// inside the visible window.
func (a *App) AdjustScrollToCursor() {
	if a.CursorRow < a.Scroll {
		a.Scroll = a.CursorRow
	}
	if a.CursorRow >= a.Scroll+a.visibleRows {
		a.Scroll = a.CursorRow - a.visibleRows + 1
	}
}

// --- autocompletion ---

// UpdateAutocompletion re-checks the trigger table against the cursor
// position, activating or deactivating the popup.
func (a *App) UpdateAutocompletion() {
	suggestions, start, ok := a.completer.Check(a.EditorContent, a.CursorRow, a.CursorCol)
	if ok {
		a.Completion.Activate(suggestions, start)
	} else {
		a.Completion.Deactivate()
	}
}

// ApplyAutocomplete splices the selected completion into the buffer in
// place of the trigger text. Returns false if nothing was active.
func (a *App) ApplyAutocomplete() bool {
	if !a.Completion.Active {
		return false
	}
	suggestion, ok := a.Completion.Current()
	if !ok {
		return false
	}

	content, cursor := autocomplete.Apply(
		a.EditorContent, a.CursorRow, a.CursorCol, a.Completion.TriggerStart, suggestion)
	a.EditorContent = content
	a.CursorRow, a.CursorCol = autocomplete.Position(content, cursor)

	a.Completion.Deactivate()
	a.markModified()
	a.AdjustScrollToCursor()
	return true
}
