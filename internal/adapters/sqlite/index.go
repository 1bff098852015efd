// Package sqlite maintains a queryable SQLite index over the notebook,
// used by the CLI search path. The index is a derived structure: it is
// rebuilt wholesale from the notebook rather than maintained incrementally.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"scribble/internal/ports"
)

const indexFile = "index.db"

// Index implements ports.NoteIndex backed by SQLite.
type Index struct {
	db *sql.DB
}

var _ ports.NoteIndex = (*Index)(nil)

// Open opens (creating if needed) the index database under dataDir.
func Open(dataDir string) (*Index, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, indexFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			tags TEXT NOT NULL,
			folder_id TEXT,
			modified INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup index schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Search returns notes whose title, content or tags contain the query,
// title matches first.
func (idx *Index) Search(query string) ([]ports.IndexHit, error) {
	pattern := "%" + query + "%"
	rows, err := idx.db.Query(`
		SELECT id, title, substr(content, 1, 120)
		FROM notes
		WHERE title LIKE ?1 OR content LIKE ?1 OR tags LIKE ?1
		ORDER BY (title LIKE ?1) DESC, title ASC
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("index query failed: %w", err)
	}
	defer rows.Close()

	var hits []ports.IndexHit
	for rows.Next() {
		var h ports.IndexHit
		if err := rows.Scan(&h.ID, &h.Title, &h.Snippet); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
