package app

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"scribble/internal/adapters/editor"
	"scribble/internal/domain"
)

// --- create workflows ---

// StartNewNoteInput enters note-name capture, remembering the parent
// folder the note will land in.
func (a *App) StartNewNoteInput(parent *uuid.UUID) {
	a.pendingParent = parent
	a.Mode = ModeInputNote
	a.InputBuffer = ""
}

// StartNewFolderInput enters folder-name capture.
func (a *App) StartNewFolderInput(parent *uuid.UUID) {
	a.pendingParent = parent
	a.Mode = ModeInputFolder
	a.InputBuffer = ""
}

// FinishNewNoteInput creates the note and drops straight into Insert
// mode on it. A blank name gets a default title.
func (a *App) FinishNewNoteInput() {
	title := strings.TrimSpace(a.InputBuffer)
	if title == "" {
		title = "Untitled Note"
	}

	note := domain.NewNote(title, a.pendingParent)
	a.Notebook.AddNote(note)
	a.RefreshTree()
	a.SelectNote(note.ID)
	a.SetMessage("New note created")

	a.pendingParent = nil
	a.InputBuffer = ""
	a.Mode = ModeInsert
}

// FinishNewFolderInput creates the folder and returns to Normal mode.
func (a *App) FinishNewFolderInput() {
	name := strings.TrimSpace(a.InputBuffer)
	if name == "" {
		name = "New Folder"
	}

	a.Notebook.AddFolder(domain.NewFolder(name, a.pendingParent))
	a.RefreshTree()
	a.SetMessage("New folder created")

	a.pendingParent = nil
	a.InputBuffer = ""
	a.Mode = ModeNormal
}

// CancelInput discards the buffer and pending parent.
func (a *App) CancelInput() {
	a.Mode = ModeNormal
	a.InputBuffer = ""
	a.pendingParent = nil
}

// --- save ---

// SaveCurrentNote commits the working copy back into the notebook and
// persists it.
func (a *App) SaveCurrentNote() error {
	if a.CurrentNote == nil {
		a.SetOperationError("No note to save", "")
		return fmt.Errorf("no note to save")
	}
	a.SaveStatus = StatusSaving

	a.CurrentNote.UpdateContent(a.EditorContent)
	a.Notebook.Notes[a.CurrentNote.ID] = a.CurrentNote.Clone()
	a.RefreshTree()

	if err := a.Save(); err != nil {
		a.SaveStatus = StatusError
		a.SetOperationError("Failed to save: "+err.Error(), "")
		return err
	}

	a.SaveStatus = StatusSaved
	a.SetOperationSuccess("Note saved", "💾")
	return nil
}

// --- delete workflow ---

// StartDeleteConfirmation captures the selected item and asks for
// confirmation.
func (a *App) StartDeleteConfirmation() {
	item, ok := a.SelectedItem()
	if !ok {
		a.SetMessage("Nothing to delete")
		return
	}
	id := item.ID
	a.deleteID = &id
	a.deleteType = item.Type
	a.deleteName = item.Name
	a.Mode = ModeDeleteConfirm
}

// ConfirmDelete executes the pending deletion. Folder deletion is
// guarded: a non-empty folder is rejected and nothing changes.
func (a *App) ConfirmDelete() {
	if a.deleteID == nil {
		a.SetMessage("No item selected for deletion")
		a.Mode = ModeNormal
		return
	}
	id := *a.deleteID

	switch a.deleteType {
	case domain.TreeItemNote:
		a.Notebook.RemoveNote(id)
		if a.CurrentNote != nil && a.CurrentNote.ID == id {
			a.CurrentNote = nil
			a.EditorContent = ""
		}
		a.SetMessage(fmt.Sprintf("Note %q deleted", a.deleteName))
	case domain.TreeItemFolder:
		if err := a.Notebook.RemoveFolder(id); err != nil {
			a.SetOperationError(err.Error(), "")
			a.clearDeleteState()
			a.Mode = ModeNormal
			return
		}
		a.SetMessage(fmt.Sprintf("Folder %q deleted", a.deleteName))
	}

	a.clearDeleteState()
	a.Mode = ModeNormal
	a.RefreshTree()
}

// CancelDelete abandons the pending deletion.
func (a *App) CancelDelete() {
	a.clearDeleteState()
	a.Mode = ModeNormal
	a.SetMessage("Deletion cancelled")
}

func (a *App) clearDeleteState() {
	a.deleteID = nil
	a.deleteName = ""
}

// --- move workflow ---

// StartMoveItem remembers the selected item and switches to Move mode,
// where navigation picks a destination without touching the notebook.
func (a *App) StartMoveItem() {
	item, ok := a.SelectedItem()
	if !ok {
		a.SetMessage("Nothing selected to move")
		return
	}
	id := item.ID
	a.moveID = &id
	a.moveType = item.Type
	a.Mode = ModeMove
	a.SetMessage(fmt.Sprintf("Moving %s %q - select destination, Esc to cancel",
		strings.ToLower(item.Type.String()), item.Name))
}

// CancelMove abandons the pending move.
func (a *App) CancelMove() {
	a.moveID = nil
	a.Mode = ModeNormal
	a.SetMessage("Move cancelled")
}

// ExecuteMove resolves the highlighted row to a destination folder and
// performs the move. Highlighting a note targets that note's folder.
func (a *App) ExecuteMove() {
	if a.moveID == nil {
		a.SetMessage("No item selected for moving")
		a.CancelMove()
		return
	}
	dest, ok := a.SelectedItem()
	if !ok {
		a.SetMessage("No destination selected")
		a.CancelMove()
		return
	}

	var destFolder *uuid.UUID
	switch dest.Type {
	case domain.TreeItemFolder:
		id := dest.ID
		destFolder = &id
	case domain.TreeItemNote:
		if note, ok := a.Notebook.Notes[dest.ID]; ok {
			destFolder = note.FolderID
		}
	}

	var err error
	switch a.moveType {
	case domain.TreeItemNote:
		err = a.Notebook.MoveNote(*a.moveID, destFolder)
		if err == nil && a.CurrentNote != nil && a.CurrentNote.ID == *a.moveID {
			a.CurrentNote.FolderID = destFolder
		}
	case domain.TreeItemFolder:
		err = a.Notebook.MoveFolder(*a.moveID, destFolder)
	}
	if err != nil {
		a.SetMessage(err.Error())
		a.CancelMove()
		return
	}

	a.moveID = nil
	a.Mode = ModeNormal
	a.RefreshTree()

	destName := "Root"
	if destFolder != nil {
		if folder, ok := a.Notebook.Folders[*destFolder]; ok {
			destName = folder.Name
		}
	}
	a.SetOperationSuccess(fmt.Sprintf("Item moved to %q", destName), "📁")
}

// --- commands ---

// ExecuteCommand runs a colon command from the command buffer.
func (a *App) ExecuteCommand(command string) {
	command = strings.TrimSpace(command)
	switch command {
	case "q", "quit":
		a.Quit()
	case "w", "write":
		a.SaveCurrentNote()
	case "wq":
		if err := a.SaveCurrentNote(); err == nil {
			a.Quit()
		}
	case "backup":
		if path, err := a.store.Backup(); err != nil {
			a.SetOperationError("Backup failed: "+err.Error(), "🚨")
		} else {
			a.SetOperationSuccess("Backup created: "+path, "💾")
		}
	case "export":
		a.exportNotes("export")
	default:
		switch {
		case strings.HasPrefix(command, "export "):
			a.exportNotes(strings.TrimSpace(strings.TrimPrefix(command, "export ")))
		case strings.HasPrefix(command, "import "):
			dir := strings.TrimSpace(strings.TrimPrefix(command, "import "))
			a.importNotes(dir)
		default:
			a.SetMessage("Unknown command: " + command)
		}
	}
}

func (a *App) exportNotes(dir string) {
	count, err := a.exchange.Export(a.Notebook, dir)
	if err != nil {
		a.SetOperationError("Export failed: "+err.Error(), "🚨")
		return
	}
	a.SetOperationSuccess(fmt.Sprintf("Exported %d notes to %q", count, dir), "📦")
}

func (a *App) importNotes(dir string) {
	report, err := a.exchange.Import(a.Notebook, dir)
	if err != nil {
		a.SetOperationError("Import failed: "+err.Error(), "🚨")
		return
	}
	a.RefreshTree()
	msg := fmt.Sprintf("Imported %d notes from %q", report.Imported, dir)
	if len(report.Skipped) > 0 {
		msg += fmt.Sprintf(" (%d skipped)", len(report.Skipped))
	}
	a.SetOperationSuccess(msg, "📦")
}

// --- external editor ---

// EditorFinishedMsg reports the external editor process exiting.
type EditorFinishedMsg struct {
	Path string
	Err  error
}

// OpenExternalEditor hands the open note to the configured terminal
// editor via a temp file. The whole event loop suspends until the
// editor exits.
func (a *App) OpenExternalEditor() tea.Cmd {
	if a.CurrentNote == nil {
		a.SetMessage("No note selected")
		return nil
	}

	path, err := editor.TempFile(a.CurrentNote.Title, a.EditorContent)
	if err != nil {
		a.SetMessage("Failed to create temp file: " + err.Error())
		return nil
	}

	cmd, err := a.opener.Command(path)
	if err != nil {
		os.Remove(path)
		a.SetMessage(err.Error())
		return nil
	}

	a.editorTempPath = path
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return EditorFinishedMsg{Path: path, Err: err}
	})
}

// HandleEditorFinished reads the edited temp file back into the editor
// buffer and saves through the normal path.
func (a *App) HandleEditorFinished(msg EditorFinishedMsg) {
	defer os.Remove(msg.Path)
	a.editorTempPath = ""

	if msg.Err != nil {
		a.SetMessage("External editor failed: " + msg.Err.Error())
		return
	}

	content, err := os.ReadFile(msg.Path)
	if err != nil {
		a.SetMessage("Failed to read edited file: " + err.Error())
		return
	}

	a.EditorContent = string(content)
	a.syncCursorToEnd()
	if err := a.SaveCurrentNote(); err == nil {
		a.SetMessage("Note updated from external editor")
	}
}
