package ports

import "scribble/internal/domain"

// NotebookStore is the persistence contract for the aggregate notebook.
// Load returns an empty notebook when no prior data exists; Save must
// round-trip every note and folder field, including tags and optional
// folder references.
type NotebookStore interface {
	Load() (*domain.Notebook, error)
	Save(nb *domain.Notebook) error
	Backup() (string, error)
}
