package sqlite

import (
	"fmt"
	"strings"

	"scribble/internal/domain"
)

// Sync rebuilds the index from the notebook. The notebook is the source
// of truth, so a full rebuild inside one transaction keeps the index
// consistent without tracking per-note deltas.
func (idx *Index) Sync(nb *domain.Notebook) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin index sync: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM notes`); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO notes (id, title, content, tags, folder_id, modified)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare index insert: %w", err)
	}
	defer stmt.Close()

	for _, note := range nb.Notes {
		var folderID any
		if note.FolderID != nil {
			folderID = note.FolderID.String()
		}
		_, err := stmt.Exec(
			note.ID.String(),
			note.Title,
			note.Content,
			strings.Join(note.Tags, ","),
			folderID,
			note.ModifiedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to index note %q: %w", note.Title, err)
		}
	}

	return tx.Commit()
}
