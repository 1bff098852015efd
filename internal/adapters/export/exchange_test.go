package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribble/internal/domain"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain title", "plain title"},
		{"a/b\\c:d", "a_b_c_d"},
		{`what? "quotes" <and> pipes|`, "what_ _quotes_ _and_ pipes_"},
		{"tab\there", "tab_here"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExport_WritesMetadataHeader(t *testing.T) {
	nb := domain.NewNotebook()
	n := domain.NewNote("My Note", nil)
	n.Content = "body text"
	n.Tags = []string{"one", "two"}
	nb.AddNote(n)

	dir := t.TempDir()
	count, err := NewExchange().Export(nb, dir)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("exported %d files, want 1", count)
	}

	data, err := os.ReadFile(filepath.Join(dir, "My Note.md"))
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	text := string(data)
	for _, want := range []string{"# My Note", "Created: ", "Modified: ", "Tags: one, two", "---", "body text"} {
		if !strings.Contains(text, want) {
			t.Errorf("exported file missing %q:\n%s", want, text)
		}
	}
}

func TestImport_TitleFromHeading(t *testing.T) {
	dir := t.TempDir()
	content := "# Imported Title\n\nSome body.\n"
	if err := os.WriteFile(filepath.Join(dir, "whatever.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	nb := domain.NewNotebook()
	report, err := NewExchange().Import(nb, dir)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if report.Imported != 1 || len(report.Skipped) != 0 {
		t.Fatalf("report = %+v", report)
	}

	notes := nb.SearchNotes("")
	if notes[0].Title != "Imported Title" {
		t.Errorf("title = %q", notes[0].Title)
	}
	if notes[0].Content != "Some body.\n" {
		t.Errorf("content = %q", notes[0].Content)
	}
}

func TestImport_TitleFromFilename(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shopping list.md"), []byte("milk\neggs"), 0644); err != nil {
		t.Fatal(err)
	}

	nb := domain.NewNotebook()
	if _, err := NewExchange().Import(nb, dir); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	notes := nb.SearchNotes("")
	if notes[0].Title != "shopping list" {
		t.Errorf("title = %q", notes[0].Title)
	}
	if notes[0].Content != "milk\neggs" {
		t.Errorf("content = %q", notes[0].Content)
	}
}

func TestImport_DuplicateTitleSkippedBatchContinues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dup.md"), []byte("# Existing\n\nnew body"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fresh.md"), []byte("# Fresh\n\nbody"), 0644); err != nil {
		t.Fatal(err)
	}

	nb := domain.NewNotebook()
	existing := domain.NewNote("Existing", nil)
	existing.Content = "old body"
	nb.AddNote(existing)

	report, err := NewExchange().Import(nb, dir)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if report.Imported != 1 {
		t.Errorf("imported = %d, want 1", report.Imported)
	}
	if len(report.Skipped) != 1 || !strings.Contains(report.Skipped[0], "Existing") {
		t.Errorf("skipped = %v", report.Skipped)
	}
	if existing.Content != "old body" {
		t.Error("existing note was overwritten")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := domain.NewNotebook()
	a := domain.NewNote("Alpha", nil)
	a.Content = "# Inner heading\n\nparagraph one\n\n- list item"
	a.Tags = []string{"t1"}
	b := domain.NewNote("Beta", nil)
	b.Content = "plain body"
	src.AddNote(a)
	src.AddNote(b)

	dir := t.TempDir()
	ex := NewExchange()
	if _, err := ex.Export(src, dir); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := domain.NewNotebook()
	report, err := ex.Import(dst, dir)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if report.Imported != 2 {
		t.Fatalf("imported = %d, want 2", report.Imported)
	}

	for _, orig := range []*domain.Note{a, b} {
		var found *domain.Note
		for _, n := range dst.Notes {
			if n.Title == orig.Title {
				found = n
			}
		}
		if found == nil {
			t.Fatalf("note %q missing after round trip", orig.Title)
		}
		// The metadata header added on export must not be re-ingested.
		if found.Content != orig.Content {
			t.Errorf("content for %q = %q, want %q", orig.Title, found.Content, orig.Content)
		}
		if strings.Contains(found.Content, "Created: ") {
			t.Errorf("metadata header leaked into content of %q", orig.Title)
		}
	}
}
