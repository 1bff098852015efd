package ports

import "scribble/internal/domain"

// ImportReport summarizes a directory import. Per-file failures do not
// abort the batch; they are collected here.
type ImportReport struct {
	Imported int
	Skipped  []string
}

// NoteExchange moves notes between the notebook and plain markdown files.
type NoteExchange interface {
	Export(nb *domain.Notebook, dir string) (int, error)
	Import(nb *domain.Notebook, dir string) (ImportReport, error)
}
