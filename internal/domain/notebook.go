package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notebook is the aggregate root: flat id-keyed tables of folders and notes
// plus the ordered list of root-level folder ids (insertion order is display
// order). The display tree is derived on demand, never stored.
type Notebook struct {
	Folders       map[uuid.UUID]*Folder `json:"folders"`
	Notes         map[uuid.UUID]*Note   `json:"notes"`
	RootFolderIDs []uuid.UUID           `json:"root_folder_ids"`
}

// NewNotebook returns an empty notebook.
func NewNotebook() *Notebook {
	return &Notebook{
		Folders:       make(map[uuid.UUID]*Folder),
		Notes:         make(map[uuid.UUID]*Note),
		RootFolderIDs: []uuid.UUID{},
	}
}

// Folder returns the folder with the given id, or nil.
func (nb *Notebook) Folder(id uuid.UUID) *Folder {
	return nb.Folders[id]
}

// Note returns the note with the given id, or nil.
func (nb *Notebook) Note(id uuid.UUID) *Note {
	return nb.Notes[id]
}

// AddFolder inserts a folder, tracking root membership.
func (nb *Notebook) AddFolder(f *Folder) {
	if f.ParentID == nil {
		nb.RootFolderIDs = append(nb.RootFolderIDs, f.ID)
	}
	nb.Folders[f.ID] = f
}

// AddNote inserts a note.
func (nb *Notebook) AddNote(n *Note) {
	nb.Notes[n.ID] = n
}

// RemoveNote removes a note unconditionally. Removing an unknown id is a
// no-op.
func (nb *Notebook) RemoveNote(id uuid.UUID) {
	delete(nb.Notes, id)
}

// RemoveFolder removes an empty folder. It fails with ErrFolderNotEmpty if
// any folder or note still references it as parent; there is no cascade.
func (nb *Notebook) RemoveFolder(id uuid.UUID) error {
	f := nb.Folders[id]
	if f == nil {
		return ErrNotFound
	}
	for _, child := range nb.Folders {
		if child.ParentID != nil && *child.ParentID == id {
			return &FolderNotEmptyError{Name: f.Name, Reason: "it contains subfolders"}
		}
	}
	for _, n := range nb.Notes {
		if n.FolderID != nil && *n.FolderID == id {
			return &FolderNotEmptyError{Name: f.Name, Reason: "it contains notes"}
		}
	}
	nb.RootFolderIDs = removeID(nb.RootFolderIDs, id)
	delete(nb.Folders, id)
	return nil
}

// FolderNotes returns the notes owned by the given folder, or the root-level
// notes when folderID is nil. Order is deterministic: creation time, then id.
func (nb *Notebook) FolderNotes(folderID *uuid.UUID) []*Note {
	var notes []*Note
	for _, n := range nb.Notes {
		if sameRef(n.FolderID, folderID) {
			notes = append(notes, n)
		}
	}
	sortByCreation(notes, func(n *Note) (time.Time, uuid.UUID) { return n.CreatedAt, n.ID })
	return notes
}

// ChildFolders returns the direct subfolders of a folder, in deterministic
// order.
func (nb *Notebook) ChildFolders(parentID uuid.UUID) []*Folder {
	var children []*Folder
	for _, f := range nb.Folders {
		if f.ParentID != nil && *f.ParentID == parentID {
			children = append(children, f)
		}
	}
	sortByCreation(children, func(f *Folder) (time.Time, uuid.UUID) { return f.CreatedAt, f.ID })
	return children
}

// SearchNotes is the legacy search path: case-insensitive substring over
// title, content and tags.
func (nb *Notebook) SearchNotes(query string) []*Note {
	q := strings.ToLower(query)
	var hits []*Note
	for _, n := range nb.Notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) ||
			anyTagContains(n.Tags, q) {
			hits = append(hits, n)
		}
	}
	sortByCreation(hits, func(n *Note) (time.Time, uuid.UUID) { return n.CreatedAt, n.ID })
	return hits
}

// MoveNote reassigns a note to another folder (nil = root). Moving to the
// current location fails with ErrSameLocation.
func (nb *Notebook) MoveNote(noteID uuid.UUID, destFolderID *uuid.UUID) error {
	n := nb.Notes[noteID]
	if n == nil {
		return ErrNotFound
	}
	if sameRef(n.FolderID, destFolderID) {
		return &MoveError{Name: n.Title, Reason: "note is already in this location", Err: ErrSameLocation}
	}
	n.FolderID = copyRef(destFolderID)
	n.ModifiedAt = time.Now().UTC()
	return nil
}

// MoveFolder reparents a folder (nil = root), keeping root membership
// consistent. It fails with ErrCyclicMove when the destination is the folder
// itself or one of its descendants, and with ErrSameLocation when the folder
// already lives there. The ancestor check runs before any mutation.
func (nb *Notebook) MoveFolder(folderID uuid.UUID, destFolderID *uuid.UUID) error {
	f := nb.Folders[folderID]
	if f == nil {
		return ErrNotFound
	}
	if destFolderID != nil && nb.IsAncestor(folderID, *destFolderID) {
		return &MoveError{Name: f.Name, Reason: "destination is inside the folder being moved", Err: ErrCyclicMove}
	}
	if sameRef(f.ParentID, destFolderID) {
		return &MoveError{Name: f.Name, Reason: "folder is already in this location", Err: ErrSameLocation}
	}
	if f.ParentID == nil {
		nb.RootFolderIDs = removeID(nb.RootFolderIDs, folderID)
	}
	f.ParentID = copyRef(destFolderID)
	if f.ParentID == nil {
		nb.RootFolderIDs = append(nb.RootFolderIDs, folderID)
	}
	return nil
}

// IsAncestor reports whether ancestorID is descendantID itself or appears in
// its parent chain. This is the cycle guard run before folder moves; the
// tree builder relies on it keeping the parent graph acyclic.
func (nb *Notebook) IsAncestor(ancestorID, descendantID uuid.UUID) bool {
	if ancestorID == descendantID {
		return true
	}
	d := nb.Folders[descendantID]
	for d != nil && d.ParentID != nil {
		if *d.ParentID == ancestorID {
			return true
		}
		d = nb.Folders[*d.ParentID]
	}
	return false
}

func anyTagContains(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func sameRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyRef(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func sortByCreation[T any](items []T, keys func(T) (time.Time, uuid.UUID)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := keys(items[i])
		tj, idj := keys(items[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi.String() < idj.String()
	})
}
