// Package export moves notes between the notebook and plain markdown files
// on disk: one file per note, title heading plus a metadata block on the way
// out, and the reverse parse on the way in.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scribble/internal/domain"
	"scribble/internal/ports"
)

const timeLayout = "2006-01-02 15:04:05"

// Exchange implements ports.NoteExchange.
type Exchange struct{}

var _ ports.NoteExchange = (*Exchange)(nil)

// NewExchange returns a file-based note exchange.
func NewExchange() *Exchange {
	return &Exchange{}
}

// Export writes every note to dir as <sanitized title>.md and returns the
// number of files written.
func (e *Exchange) Export(nb *domain.Notebook, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	count := 0
	for _, n := range nb.SearchNotes("") {
		path := filepath.Join(dir, SanitizeFilename(n.Title)+".md")
		if err := os.WriteFile(path, []byte(formatNote(n)), 0644); err != nil {
			return count, fmt.Errorf("failed to write note %q: %w", n.Title, err)
		}
		count++
	}
	return count, nil
}

// Import reads every .md file in dir into the notebook. A file whose title
// collides with an existing note is skipped and reported; the batch
// continues past per-file failures.
func (e *Exchange) Import(nb *domain.Notebook, dir string) (ports.ImportReport, error) {
	var report ports.ImportReport

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("failed to read import directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := importFile(nb, path); err != nil {
			report.Skipped = append(report.Skipped, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}
		report.Imported++
	}
	return report, nil
}

func importFile(nb *domain.Notebook, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title, content := parseNote(string(data), fallback)

	for _, existing := range nb.Notes {
		if existing.Title == title {
			return fmt.Errorf("note with title %q already exists", title)
		}
	}

	n := domain.NewNote(title, nil)
	n.Content = content
	n.FilePath = path
	nb.AddNote(n)
	return nil
}

func formatNote(n *domain.Note) string {
	return fmt.Sprintf("# %s\n\nCreated: %s\nModified: %s\nTags: %s\n\n---\n\n%s",
		n.Title,
		n.CreatedAt.Format(timeLayout),
		n.ModifiedAt.Format(timeLayout),
		strings.Join(n.Tags, ", "),
		n.Content,
	)
}

// parseNote extracts the title and content from a markdown file. A level-1
// heading on the first line becomes the title; otherwise the filename is
// used and the whole file is content. A metadata block written by Export is
// stripped so an export/import cycle reproduces the original content.
func parseNote(text, fallbackTitle string) (string, string) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "# ") {
		return fallbackTitle, text
	}

	title := strings.TrimPrefix(lines[0], "# ")
	rest := lines[1:]
	rest = stripMetadataBlock(rest)
	for len(rest) > 0 && rest[0] == "" {
		rest = rest[1:]
	}
	return title, strings.Join(rest, "\n")
}

func stripMetadataBlock(lines []string) []string {
	i := 0
	for i < len(lines) && lines[i] == "" {
		i++
	}
	if i >= len(lines) || !strings.HasPrefix(lines[i], "Created: ") {
		return lines
	}
	for i < len(lines) && lines[i] != "---" {
		i++
	}
	if i >= len(lines) {
		return lines
	}
	return lines[i+1:]
}

// SanitizeFilename replaces path separators, shell-hostile punctuation and
// control characters with underscores.
func SanitizeFilename(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, name)
	return strings.TrimSpace(sanitized)
}
