package app

import (
	"fmt"
	"strings"

	"scribble/internal/search"
)

// RunSearch executes a plain query: the legacy substring path keeps the
// flat result list populated, and the ranked search decides which note
// to open. The first ranked hit is opened automatically.
func (a *App) RunSearch(query string) {
	a.SearchQuery = query
	a.SearchResults = a.Notebook.SearchNotes(query)

	results, err := a.searcher.Search(a.Notebook, search.NewQuery(query))
	if err != nil {
		a.SetMessage("Search error: " + err.Error())
		return
	}
	a.EnhancedResults = results

	if len(results) == 0 {
		a.SetMessage(fmt.Sprintf("No matches found for %q", query))
		return
	}

	total := 0
	for _, r := range results {
		total += len(r.Matches)
	}
	first := results[0].Note
	a.OpenNoteByID(first.ID)
	a.SetMessage(fmt.Sprintf("Found %d notes with %d matches for %q - opened %q",
		len(results), total, query, first.Title))
}

// RunAdvancedSearch accepts regex: and case: prefixed queries.
func (a *App) RunAdvancedSearch(raw string) {
	q := search.NewQuery(raw)
	if rest, ok := strings.CutPrefix(raw, "regex:"); ok {
		q.Text = strings.TrimSpace(rest)
		q.Regex = true
	} else if rest, ok := strings.CutPrefix(raw, "case:"); ok {
		q.Text = strings.TrimSpace(rest)
		q.CaseSensitive = true
	}

	results, err := a.searcher.Search(a.Notebook, q)
	if err != nil {
		a.SetMessage("Search error: " + err.Error())
		return
	}
	a.EnhancedResults = results

	if len(results) == 0 {
		a.SetMessage("No matches found")
		return
	}

	total := 0
	for _, r := range results {
		total += len(r.Matches)
	}
	first := results[0].Note
	a.OpenNoteByID(first.ID)
	a.SetMessage(fmt.Sprintf("Found %d notes with %d matches - opened %q",
		len(results), total, first.Title))
}

// RunReplace parses "find|replace" and applies it to the open note's
// working copy, committing to the notebook immediately.
func (a *App) RunReplace(input string, isRegex, caseSensitive bool) {
	find, replace, ok := strings.Cut(input, "|")
	if !ok {
		a.SetMessage("Format: find_text|replace_text")
		return
	}
	if a.CurrentNote == nil {
		a.SetMessage("No note selected")
		return
	}

	count, err := a.searcher.ReplaceInNote(a.CurrentNote, find, replace, isRegex, caseSensitive)
	if err != nil {
		a.SetMessage("Replace error: " + err.Error())
		return
	}
	if count == 0 {
		a.SetMessage("No matches found to replace")
		return
	}

	a.EditorContent = a.CurrentNote.Content
	a.Notebook.Notes[a.CurrentNote.ID] = a.CurrentNote.Clone()
	a.RefreshTree()
	a.SetMessage(fmt.Sprintf("Replaced %d occurrences", count))
}
