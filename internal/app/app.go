// Package app holds the interactive application state: the current mode,
// the notebook, the open note's working copy and the editor buffer. All
// mutation happens through methods on App, driven one key event at a time.
package app

import (
	"time"

	"github.com/google/uuid"

	"scribble/internal/autocomplete"
	"scribble/internal/domain"
	"scribble/internal/ports"
	"scribble/internal/search"
)

// Mode is the active input mode. Exactly one is active and it decides
// how every key is interpreted.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeSearch
	ModeSearchAdvanced
	ModeSearchReplace
	ModeCommand
	ModeInputNote
	ModeInputFolder
	ModeMove
	ModeHelp
	ModeDeleteConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeSearch:
		return "SEARCH"
	case ModeSearchAdvanced:
		return "SEARCH+"
	case ModeSearchReplace:
		return "REPLACE"
	case ModeCommand:
		return "COMMAND"
	case ModeInputNote:
		return "NEW NOTE"
	case ModeInputFolder:
		return "NEW FOLDER"
	case ModeMove:
		return "MOVE"
	case ModeHelp:
		return "HELP"
	case ModeDeleteConfirm:
		return "DELETE?"
	default:
		return "UNKNOWN"
	}
}

// FocusedPane identifies which pane receives navigation keys.
type FocusedPane int

const (
	PaneFolders FocusedPane = iota
	PaneEditor
	PanePreview
)

// SaveStatus tracks whether the open note has unsaved edits.
type SaveStatus int

const (
	StatusSaved SaveStatus = iota
	StatusModified
	StatusSaving
	StatusError
)

func (s SaveStatus) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusModified:
		return "modified"
	case StatusSaving:
		return "saving"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ResultKind classifies an operation result for display.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultError
	ResultInfo
)

// OperationResult is transient visual feedback for the last mutating
// operation. It expires a few seconds after being set.
type OperationResult struct {
	Kind    ResultKind
	Message string
	Icon    string
}

const (
	messageHistoryCap = 50
	feedbackTTL       = 3 * time.Second
	defaultVisibleRows = 20
)

// App is the single live application state. It owns the notebook and is
// only ever driven from the event loop, one event at a time.
type App struct {
	ShouldQuit bool
	Mode       Mode
	Focused    FocusedPane

	Notebook *domain.Notebook

	// Tree view
	TreeItems []domain.TreeItem
	Selected  int

	// Editor
	CurrentNote   *domain.Note // working copy, committed on save
	EditorContent string
	CursorRow     int
	CursorCol     int
	Scroll        int
	visibleRows   int

	// Search
	SearchQuery     string
	SearchResults   []*domain.Note
	EnhancedResults []search.Result
	searcher        *search.Engine

	// Status
	StatusMessage string
	history       []string

	// Input capture
	InputBuffer   string
	CommandBuffer string
	pendingParent *uuid.UUID

	// Move workflow
	moveID   *uuid.UUID
	moveType domain.TreeItemType

	// Delete workflow
	deleteID   *uuid.UUID
	deleteType domain.TreeItemType
	deleteName string

	PreviewEnabled bool

	// Autocompletion
	completer  *autocomplete.Engine
	Completion autocomplete.State

	SaveStatus SaveStatus
	Result     *OperationResult
	resultTime time.Time

	store    ports.NotebookStore
	exchange ports.NoteExchange
	opener   ports.EditorOpener

	editorTempPath string
}

// New loads the notebook from the store and builds the initial state.
// A load failure falls back to an empty notebook so the app still starts.
func New(store ports.NotebookStore, exchange ports.NoteExchange, opener ports.EditorOpener) *App {
	a := &App{
		Mode:        ModeNormal,
		Focused:     PaneFolders,
		searcher:    search.NewEngine(),
		completer:   autocomplete.NewEngine(),
		visibleRows: defaultVisibleRows,
		store:       store,
		exchange:    exchange,
		opener:      opener,
	}

	nb, err := store.Load()
	if err != nil {
		nb = domain.NewNotebook()
		a.SetOperationError("Failed to load notebook: "+err.Error(), "")
	}
	a.Notebook = nb

	if len(nb.Folders) == 0 && len(nb.Notes) == 0 {
		a.createDefaultStructure()
	}

	a.RefreshTree()
	a.SetMessage("Welcome to Scribble! Press ? for help")
	return a
}

func (a *App) createDefaultStructure() {
	a.Notebook.AddFolder(domain.NewFolder("General", nil))
	a.Notebook.AddFolder(domain.NewFolder("Projects", nil))
	a.Notebook.AddFolder(domain.NewFolder("Daily Notes", nil))

	welcome := domain.NewNote("Welcome to Scribble", nil)
	welcome.Content = "# Welcome to Scribble\n\nPress `n` to create a note, `?` for help.\n"
	a.Notebook.AddNote(welcome)
}

// RefreshTree rebuilds the flattened tree rows. Called after every
// structural mutation.
func (a *App) RefreshTree() {
	a.TreeItems = a.Notebook.TreeItems()
	if a.Selected >= len(a.TreeItems) {
		a.Selected = max(0, len(a.TreeItems)-1)
	}
}

// SelectedItem returns the highlighted tree row, if any.
func (a *App) SelectedItem() (domain.TreeItem, bool) {
	if a.Selected < 0 || a.Selected >= len(a.TreeItems) {
		return domain.TreeItem{}, false
	}
	return a.TreeItems[a.Selected], true
}

// SelectNote checks a note out of the notebook into the editor as a
// working copy.
func (a *App) SelectNote(id uuid.UUID) {
	note, ok := a.Notebook.Notes[id]
	if !ok {
		return
	}
	a.CurrentNote = note.Clone()
	a.EditorContent = note.Content
	a.CursorRow, a.CursorCol = 0, 0
	a.Scroll = 0
	a.Focused = PaneEditor
	a.SaveStatus = StatusSaved
}

// OpenNoteByID selects a note and moves the tree highlight onto it,
// expanding its folder if collapsed.
func (a *App) OpenNoteByID(id uuid.UUID) {
	a.SelectNote(id)

	note, ok := a.Notebook.Notes[id]
	if ok && note.FolderID != nil {
		if folder, ok := a.Notebook.Folders[*note.FolderID]; ok && !folder.Expanded {
			folder.Expanded = true
			a.RefreshTree()
		}
	}
	for i, item := range a.TreeItems {
		if item.ID == id && item.Type == domain.TreeItemNote {
			a.Selected = i
			break
		}
	}
	a.Focused = PaneEditor
}

// --- tree navigation ---

func (a *App) NavigateUp() {
	if a.Selected > 0 {
		a.Selected--
	}
}

func (a *App) NavigateDown() {
	if a.Selected < len(a.TreeItems)-1 {
		a.Selected++
	}
}

func (a *App) NavigateTop() {
	a.Selected = 0
}

func (a *App) NavigateBottom() {
	a.Selected = max(0, len(a.TreeItems)-1)
}

func (a *App) ToggleFolderExpansion() {
	item, ok := a.SelectedItem()
	if !ok || item.Type != domain.TreeItemFolder {
		return
	}
	if folder, ok := a.Notebook.Folders[item.ID]; ok {
		folder.Expanded = !folder.Expanded
		a.RefreshTree()
	}
}

// TogglePreview flips the preview pane on or off.
func (a *App) TogglePreview() {
	a.PreviewEnabled = !a.PreviewEnabled
	if a.PreviewEnabled {
		a.SetMessage("Preview enabled")
		if a.Focused == PaneFolders {
			a.Focused = PaneEditor
		}
	} else {
		a.SetMessage("Preview disabled")
		if a.Focused == PanePreview {
			a.Focused = PaneEditor
		}
	}
}

// CyclePane moves focus to the next pane, skipping the preview when it
// is disabled.
func (a *App) CyclePane() {
	if a.PreviewEnabled {
		switch a.Focused {
		case PaneFolders:
			a.Focused = PaneEditor
		case PaneEditor:
			a.Focused = PanePreview
		case PanePreview:
			a.Focused = PaneFolders
		}
		return
	}
	switch a.Focused {
	case PaneFolders:
		a.Focused = PaneEditor
	default:
		a.Focused = PaneFolders
	}
}

// --- status & feedback ---

// SetMessage records a status message, evicting the oldest once the
// history is full.
func (a *App) SetMessage(msg string) {
	a.StatusMessage = msg
	a.history = append([]string{msg}, a.history...)
	if len(a.history) > messageHistoryCap {
		a.history = a.history[:messageHistoryCap]
	}
}

// MessageHistory returns the status messages, newest first.
func (a *App) MessageHistory() []string {
	out := make([]string, len(a.history))
	copy(out, a.history)
	return out
}

func (a *App) SetOperationSuccess(msg, icon string) {
	if icon == "" {
		icon = "✅"
	}
	a.setResult(OperationResult{Kind: ResultSuccess, Message: msg, Icon: icon})
}

func (a *App) SetOperationError(msg, icon string) {
	if icon == "" {
		icon = "❌"
	}
	a.setResult(OperationResult{Kind: ResultError, Message: msg, Icon: icon})
}

func (a *App) SetOperationInfo(msg, icon string) {
	if icon == "" {
		icon = "ℹ"
	}
	a.setResult(OperationResult{Kind: ResultInfo, Message: msg, Icon: icon})
}

func (a *App) setResult(r OperationResult) {
	a.Result = &r
	a.resultTime = time.Now()
	a.SetMessage(r.Message)
}

// ExpireFeedback clears the operation result once it has been visible
// long enough. Driven by the periodic tick, not by key events.
func (a *App) ExpireFeedback(now time.Time) {
	if a.Result != nil && now.Sub(a.resultTime) > feedbackTTL {
		a.Result = nil
	}
}

// SetEditorHeight tells the state machine how many content rows the
// editor pane can show, for scroll clamping.
func (a *App) SetEditorHeight(rows int) {
	if rows > 0 {
		a.visibleRows = rows
	}
}

// SearchHistory exposes the recorded search queries, newest first.
func (a *App) SearchHistory() []string {
	return a.searcher.History()
}

func (a *App) Quit() {
	a.ShouldQuit = true
}

// Save persists the whole notebook through the store.
func (a *App) Save() error {
	return a.store.Save(a.Notebook)
}
