package app

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scribble/internal/domain"
	"scribble/internal/ports"
)

type stubStore struct {
	nb      *domain.Notebook
	saved   int
	loadErr error
	saveErr error
}

func (s *stubStore) Load() (*domain.Notebook, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.nb == nil {
		s.nb = domain.NewNotebook()
	}
	return s.nb, nil
}

func (s *stubStore) Save(nb *domain.Notebook) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved++
	return nil
}

func (s *stubStore) Backup() (string, error) {
	return "backups/notebook_backup_test.json", nil
}

type stubExchange struct {
	exported int
	imported int
}

func (s *stubExchange) Export(nb *domain.Notebook, dir string) (int, error) {
	s.exported++
	return len(nb.Notes), nil
}

func (s *stubExchange) Import(nb *domain.Notebook, dir string) (ports.ImportReport, error) {
	s.imported++
	return ports.ImportReport{Imported: 1}, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := New(&stubStore{}, &stubExchange{}, nil)
	return a
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeString(a *App, s string) {
	for _, r := range s {
		if r == ' ' {
			a.HandleKey(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		a.HandleKey(runes(string(r)))
	}
}

func TestNewCreatesDefaultStructure(t *testing.T) {
	a := newTestApp(t)

	if len(a.Notebook.Folders) != 3 {
		t.Errorf("default folders = %d, want 3", len(a.Notebook.Folders))
	}
	if len(a.Notebook.Notes) != 1 {
		t.Errorf("default notes = %d, want 1", len(a.Notebook.Notes))
	}
	if len(a.TreeItems) == 0 {
		t.Error("tree should be populated after startup")
	}
}

func TestNewSkipsDefaultStructureForExistingData(t *testing.T) {
	nb := domain.NewNotebook()
	nb.AddNote(domain.NewNote("Existing", nil))
	a := New(&stubStore{nb: nb}, &stubExchange{}, nil)

	if len(a.Notebook.Folders) != 0 {
		t.Errorf("folders = %d, want 0 for a non-empty notebook", len(a.Notebook.Folders))
	}
	if len(a.Notebook.Notes) != 1 {
		t.Errorf("notes = %d, want the existing one only", len(a.Notebook.Notes))
	}
}

func TestNewFallsBackToEmptyNotebookOnLoadError(t *testing.T) {
	a := New(&stubStore{loadErr: fmt.Errorf("disk on fire")}, &stubExchange{}, nil)
	if a.Notebook == nil {
		t.Fatal("app should still start with an empty notebook")
	}
}

func TestInsertModeRequiresOpenNote(t *testing.T) {
	a := newTestApp(t)

	a.HandleKey(runes("i"))
	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal when no note is open", a.Mode)
	}
	if !strings.Contains(a.StatusMessage, "No note selected") {
		t.Errorf("status = %q, want a no-note message", a.StatusMessage)
	}

	for _, n := range a.Notebook.Notes {
		a.SelectNote(n.ID)
	}
	a.HandleKey(runes("i"))
	if a.Mode != ModeInsert {
		t.Errorf("mode = %v, want Insert with a note open", a.Mode)
	}
	if a.Focused != PaneEditor {
		t.Errorf("focus = %v, want the editor", a.Focused)
	}
}

func TestEscFromInsertSaves(t *testing.T) {
	store := &stubStore{}
	a := New(store, &stubExchange{}, nil)
	for _, n := range a.Notebook.Notes {
		a.SelectNote(n.ID)
	}
	a.Mode = ModeInsert

	typeString(a, "hello")
	if a.SaveStatus != StatusModified {
		t.Errorf("save status = %v, want modified after typing", a.SaveStatus)
	}

	a.HandleKey(tea.KeyMsg{Type: tea.KeyEscape})
	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal after esc", a.Mode)
	}
	if a.SaveStatus != StatusSaved {
		t.Errorf("save status = %v, want saved after implicit save", a.SaveStatus)
	}
	if store.saved == 0 {
		t.Error("esc from insert mode should persist the notebook")
	}

	note := a.Notebook.Notes[a.CurrentNote.ID]
	if !strings.HasSuffix(note.Content, "hello") {
		t.Errorf("committed content = %q, want the typed text", note.Content)
	}
}

func TestNewNoteFlow(t *testing.T) {
	a := newTestApp(t)
	before := len(a.Notebook.Notes)

	a.HandleKey(runes("n"))
	if a.Mode != ModeInputNote {
		t.Fatalf("mode = %v, want InputNote", a.Mode)
	}

	typeString(a, "Shopping List")
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if a.Mode != ModeInsert {
		t.Errorf("mode = %v, want Insert on the new note", a.Mode)
	}
	if len(a.Notebook.Notes) != before+1 {
		t.Fatalf("notes = %d, want %d", len(a.Notebook.Notes), before+1)
	}
	if a.CurrentNote == nil || a.CurrentNote.Title != "Shopping List" {
		t.Errorf("open note = %+v, want the new note", a.CurrentNote)
	}
}

func TestNewNoteBlankTitleGetsDefault(t *testing.T) {
	a := newTestApp(t)

	a.HandleKey(runes("n"))
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if a.CurrentNote == nil || a.CurrentNote.Title != "Untitled Note" {
		t.Errorf("title = %v, want Untitled Note", a.CurrentNote)
	}
}

func TestNewFolderBlankNameGetsDefault(t *testing.T) {
	a := newTestApp(t)
	before := len(a.Notebook.Folders)

	a.HandleKey(runes("f"))
	if a.Mode != ModeInputFolder {
		t.Fatalf("mode = %v, want InputFolder", a.Mode)
	}
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal", a.Mode)
	}
	if len(a.Notebook.Folders) != before+1 {
		t.Fatalf("folders = %d, want %d", len(a.Notebook.Folders), before+1)
	}
	found := false
	for _, f := range a.Notebook.Folders {
		if f.Name == "New Folder" {
			found = true
		}
	}
	if !found {
		t.Error("blank folder name should default to New Folder")
	}
}

func TestCancelInputDiscardsBuffer(t *testing.T) {
	a := newTestApp(t)

	a.HandleKey(runes("n"))
	typeString(a, "draft")
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEscape})

	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal", a.Mode)
	}
	if a.InputBuffer != "" {
		t.Errorf("buffer = %q, want empty", a.InputBuffer)
	}
}

func TestDeleteNoteClearsOpenEditor(t *testing.T) {
	a := newTestApp(t)

	// Select the welcome note row.
	var noteIdx int
	for i, item := range a.TreeItems {
		if item.Type == domain.TreeItemNote {
			noteIdx = i
			break
		}
	}
	a.Selected = noteIdx
	item, _ := a.SelectedItem()
	a.SelectNote(item.ID)

	a.HandleKey(runes("d"))
	if a.Mode != ModeDeleteConfirm {
		t.Fatalf("mode = %v, want DeleteConfirm", a.Mode)
	}
	a.HandleKey(runes("y"))

	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal", a.Mode)
	}
	if a.CurrentNote != nil {
		t.Error("deleting the open note should close the editor")
	}
	if _, ok := a.Notebook.Notes[item.ID]; ok {
		t.Error("note still in the notebook")
	}
	if a.Selected >= len(a.TreeItems) && len(a.TreeItems) > 0 {
		t.Errorf("selection %d out of range after delete", a.Selected)
	}
}

func TestDeleteNonEmptyFolderRejected(t *testing.T) {
	a := newTestApp(t)

	var folder *domain.Folder
	for _, f := range a.Notebook.Folders {
		folder = f
		break
	}
	note := domain.NewNote("Inside", &folder.ID)
	a.Notebook.AddNote(note)
	a.RefreshTree()

	for i, item := range a.TreeItems {
		if item.ID == folder.ID {
			a.Selected = i
		}
	}

	a.HandleKey(runes("d"))
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if _, ok := a.Notebook.Folders[folder.ID]; !ok {
		t.Error("guarded folder deletion must leave the notebook unchanged")
	}
	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal after rejection", a.Mode)
	}
}

func TestDeleteConfirmAnyOtherKeyCancels(t *testing.T) {
	a := newTestApp(t)
	before := len(a.Notebook.Notes) + len(a.Notebook.Folders)

	a.HandleKey(runes("d"))
	a.HandleKey(runes("x"))

	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal", a.Mode)
	}
	if got := len(a.Notebook.Notes) + len(a.Notebook.Folders); got != before {
		t.Errorf("entity count changed from %d to %d on cancelled delete", before, got)
	}
}

func TestMoveNoteToFolder(t *testing.T) {
	a := newTestApp(t)

	var noteRow, folderRow int
	for i, item := range a.TreeItems {
		switch item.Type {
		case domain.TreeItemNote:
			noteRow = i
		case domain.TreeItemFolder:
			folderRow = i
		}
	}
	noteID := a.TreeItems[noteRow].ID
	folderID := a.TreeItems[folderRow].ID

	a.Selected = noteRow
	a.HandleKey(runes("m"))
	if a.Mode != ModeMove {
		t.Fatalf("mode = %v, want Move", a.Mode)
	}

	a.Selected = folderRow
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal after move", a.Mode)
	}
	note := a.Notebook.Notes[noteID]
	if note.FolderID == nil || *note.FolderID != folderID {
		t.Errorf("note folder = %v, want %v", note.FolderID, folderID)
	}
}

func TestMoveToSameLocationRejected(t *testing.T) {
	a := newTestApp(t)

	var folder *domain.Folder
	for _, f := range a.Notebook.Folders {
		folder = f
		break
	}
	note := domain.NewNote("Here", &folder.ID)
	a.Notebook.AddNote(note)
	a.RefreshTree()

	var noteRow, folderRow int
	for i, item := range a.TreeItems {
		if item.ID == note.ID {
			noteRow = i
		}
		if item.ID == folder.ID {
			folderRow = i
		}
	}

	a.Selected = noteRow
	a.HandleKey(runes("m"))
	a.Selected = folderRow
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal after rejection", a.Mode)
	}
	got := a.Notebook.Notes[note.ID]
	if got.FolderID == nil || *got.FolderID != folder.ID {
		t.Error("rejected move should not change the note")
	}
}

func TestMoveFolderIntoDescendantRejected(t *testing.T) {
	a := New(&stubStore{nb: domain.NewNotebook()}, &stubExchange{}, nil)
	a.Notebook = domain.NewNotebook()

	parent := domain.NewFolder("Parent", nil)
	a.Notebook.AddFolder(parent)
	child := domain.NewFolder("Child", &parent.ID)
	a.Notebook.AddFolder(child)
	a.RefreshTree()

	var parentRow, childRow int
	for i, item := range a.TreeItems {
		if item.ID == parent.ID {
			parentRow = i
		}
		if item.ID == child.ID {
			childRow = i
		}
	}

	a.Selected = parentRow
	a.HandleKey(runes("m"))
	a.Selected = childRow
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if a.Notebook.Folders[parent.ID].ParentID != nil {
		t.Error("cyclic move must be rejected before mutation")
	}
}

func TestSearchOpensFirstResult(t *testing.T) {
	a := newTestApp(t)

	target := domain.NewNote("Recipes", nil)
	target.Content = "pasta carbonara"
	a.Notebook.AddNote(target)
	a.RefreshTree()

	a.HandleKey(runes("/"))
	if a.Mode != ModeSearch {
		t.Fatalf("mode = %v, want Search", a.Mode)
	}
	typeString(a, "carbonara")
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if a.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal", a.Mode)
	}
	if a.CurrentNote == nil || a.CurrentNote.ID != target.ID {
		t.Error("search should open the first result")
	}
	if a.Focused != PaneEditor {
		t.Errorf("focus = %v, want the editor", a.Focused)
	}
}

func TestSearchNoMatches(t *testing.T) {
	a := newTestApp(t)

	a.HandleKey(runes("/"))
	typeString(a, "zzzznothing")
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.Contains(a.StatusMessage, "No matches") {
		t.Errorf("status = %q, want a no-matches message", a.StatusMessage)
	}
}

func TestAdvancedSearchRegexPrefix(t *testing.T) {
	a := newTestApp(t)

	target := domain.NewNote("Logs", nil)
	target.Content = "error code 404"
	a.Notebook.AddNote(target)
	a.RefreshTree()

	a.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlF})
	if a.Mode != ModeSearchAdvanced {
		t.Fatalf("mode = %v, want SearchAdvanced", a.Mode)
	}
	typeString(a, "regex:code \\d+")
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if a.CurrentNote == nil || a.CurrentNote.ID != target.ID {
		t.Error("regex search should open the matching note")
	}
}

func TestReplaceInOpenNote(t *testing.T) {
	a := newTestApp(t)

	note := domain.NewNote("Draft", nil)
	note.Content = "teh quick teh fox"
	a.Notebook.AddNote(note)
	a.RefreshTree()
	a.SelectNote(note.ID)

	a.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlR})
	if a.Mode != ModeSearchReplace {
		t.Fatalf("mode = %v, want SearchReplace", a.Mode)
	}
	typeString(a, "teh|the")
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if got := a.Notebook.Notes[note.ID].Content; got != "the quick the fox" {
		t.Errorf("content = %q, want replacements applied", got)
	}
	if a.EditorContent != "the quick the fox" {
		t.Errorf("editor buffer = %q, want it mirrored", a.EditorContent)
	}
}

func TestCommandSurface(t *testing.T) {
	tests := []struct {
		name    string
		command string
		check   func(t *testing.T, a *App, store *stubStore, ex *stubExchange)
	}{
		{
			name:    "quit",
			command: "q",
			check: func(t *testing.T, a *App, _ *stubStore, _ *stubExchange) {
				if !a.ShouldQuit {
					t.Error(":q should set the quit flag")
				}
			},
		},
		{
			name:    "write with no note",
			command: "w",
			check: func(t *testing.T, a *App, _ *stubStore, _ *stubExchange) {
				if !strings.Contains(a.StatusMessage, "No note to save") {
					t.Errorf("status = %q", a.StatusMessage)
				}
			},
		},
		{
			name:    "export",
			command: "export /tmp/out",
			check: func(t *testing.T, _ *App, _ *stubStore, ex *stubExchange) {
				if ex.exported != 1 {
					t.Error(":export should call the exchange")
				}
			},
		},
		{
			name:    "import",
			command: "import /tmp/in",
			check: func(t *testing.T, _ *App, _ *stubStore, ex *stubExchange) {
				if ex.imported != 1 {
					t.Error(":import should call the exchange")
				}
			},
		},
		{
			name:    "backup",
			command: "backup",
			check: func(t *testing.T, a *App, _ *stubStore, _ *stubExchange) {
				if !strings.Contains(a.StatusMessage, "Backup created") {
					t.Errorf("status = %q", a.StatusMessage)
				}
			},
		},
		{
			name:    "unknown",
			command: "frobnicate",
			check: func(t *testing.T, a *App, _ *stubStore, _ *stubExchange) {
				if !strings.Contains(a.StatusMessage, "Unknown command") {
					t.Errorf("status = %q", a.StatusMessage)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{}
			ex := &stubExchange{}
			a := New(store, ex, nil)

			a.HandleKey(runes(":"))
			if a.Mode != ModeCommand {
				t.Fatalf("mode = %v, want Command", a.Mode)
			}
			typeString(a, tt.command)
			a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

			if a.Mode != ModeNormal {
				t.Errorf("mode = %v, want Normal after the command", a.Mode)
			}
			tt.check(t, a, store, ex)
		})
	}
}

func TestWriteQuitOnlyQuitsOnSuccessfulSave(t *testing.T) {
	a := newTestApp(t)

	a.HandleKey(runes(":"))
	typeString(a, "wq")
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if a.ShouldQuit {
		t.Error(":wq with nothing to save must not quit")
	}
}

func TestAutocompleteLifecycleInInsertMode(t *testing.T) {
	a := newTestApp(t)
	for _, n := range a.Notebook.Notes {
		a.SelectNote(n.ID)
	}
	a.EditorContent = ""
	a.CursorRow, a.CursorCol = 0, 0
	a.Mode = ModeInsert

	typeString(a, "#")
	if !a.Completion.Active {
		t.Fatal("typing a trigger at line start should activate completion")
	}

	a.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if a.Completion.Active {
		t.Error("applying should deactivate the popup")
	}
	if !strings.HasPrefix(a.EditorContent, "# ") {
		t.Errorf("content = %q, want the heading completion", a.EditorContent)
	}
}

func TestAutocompleteNotTriggeredMidWord(t *testing.T) {
	a := newTestApp(t)
	for _, n := range a.Notebook.Notes {
		a.SelectNote(n.ID)
	}
	a.EditorContent = ""
	a.Mode = ModeInsert

	typeString(a, "x#")
	if a.Completion.Active {
		t.Error("trigger preceded by a non-space must not activate")
	}
}

func TestEscClosesCompletionBeforeLeavingInsert(t *testing.T) {
	a := newTestApp(t)
	for _, n := range a.Notebook.Notes {
		a.SelectNote(n.ID)
	}
	a.EditorContent = ""
	a.Mode = ModeInsert

	typeString(a, "#")
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEscape})
	if a.Mode != ModeInsert {
		t.Error("first esc should only dismiss the popup")
	}
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEscape})
	if a.Mode != ModeNormal {
		t.Error("second esc should leave insert mode")
	}
}

func TestMessageHistoryCapped(t *testing.T) {
	a := newTestApp(t)

	for i := 0; i < 80; i++ {
		a.SetMessage(fmt.Sprintf("message %d", i))
	}

	history := a.MessageHistory()
	if len(history) != 50 {
		t.Fatalf("history length = %d, want 50", len(history))
	}
	if history[0] != "message 79" {
		t.Errorf("newest = %q, want message 79", history[0])
	}
	if history[49] != "message 30" {
		t.Errorf("oldest kept = %q, want message 30", history[49])
	}
}

func TestFeedbackExpiresAfterThreeSeconds(t *testing.T) {
	a := newTestApp(t)

	a.SetOperationSuccess("done", "")
	if a.Result == nil {
		t.Fatal("result should be set")
	}

	a.ExpireFeedback(time.Now().Add(2 * time.Second))
	if a.Result == nil {
		t.Error("result expired too early")
	}
	a.ExpireFeedback(time.Now().Add(4 * time.Second))
	if a.Result != nil {
		t.Error("result should expire after the TTL")
	}
}

func TestAdjustScrollToCursor(t *testing.T) {
	a := newTestApp(t)
	a.SetEditorHeight(10)
	a.EditorContent = strings.Repeat("line\n", 100)

	a.CursorRow = 50
	a.Scroll = 60
	a.AdjustScrollToCursor()
	if a.Scroll != 50 {
		t.Errorf("scroll = %d, want snap up to the cursor row", a.Scroll)
	}

	a.CursorRow = 80
	a.AdjustScrollToCursor()
	if a.Scroll != 71 {
		t.Errorf("scroll = %d, want cursor_row-height+1 = 71", a.Scroll)
	}
}

func TestScrollClamped(t *testing.T) {
	a := newTestApp(t)
	a.EditorContent = "one\ntwo\nthree"

	a.ScrollToBottom()
	if a.Scroll != 2 {
		t.Errorf("scroll = %d, want 2", a.Scroll)
	}
	a.ScrollDown()
	if a.Scroll != 2 {
		t.Errorf("scroll = %d, must not pass the last line", a.Scroll)
	}
	a.ScrollToTop()
	a.ScrollUp()
	if a.Scroll != 0 {
		t.Errorf("scroll = %d, must not go negative", a.Scroll)
	}
}

func TestToggleFolderExpansionHidesNotes(t *testing.T) {
	a := newTestApp(t)

	var folder *domain.Folder
	for _, f := range a.Notebook.Folders {
		folder = f
		break
	}
	a.Notebook.AddNote(domain.NewNote("Hidden", &folder.ID))
	a.RefreshTree()

	rows := len(a.TreeItems)
	for i, item := range a.TreeItems {
		if item.ID == folder.ID {
			a.Selected = i
		}
	}
	a.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if len(a.TreeItems) != rows-1 {
		t.Errorf("rows = %d, want %d after collapsing", len(a.TreeItems), rows-1)
	}
}

func TestSearchHistoryRecall(t *testing.T) {
	a := newTestApp(t)

	a.RunSearch("first query")
	a.RunSearch("second query")

	a.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlF})
	a.HandleKey(tea.KeyMsg{Type: tea.KeyUp})

	if a.InputBuffer != "second query" {
		t.Errorf("recalled = %q, want the most recent query", a.InputBuffer)
	}
}
