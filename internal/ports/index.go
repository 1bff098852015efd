package ports

import "scribble/internal/domain"

// IndexHit is one row returned by the note index.
type IndexHit struct {
	ID      string
	Title   string
	Snippet string
}

// NoteIndex is a queryable secondary index over the notebook, rebuilt from
// the aggregate rather than maintained incrementally.
type NoteIndex interface {
	Sync(nb *domain.Notebook) error
	Search(query string) ([]IndexHit, error)
	Close() error
}
