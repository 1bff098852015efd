// Package search implements enhanced note search: plain or regex matching
// across title, content and tags, with relevance ranking, a bounded query
// history, and find/replace.
package search

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"scribble/internal/domain"
)

// MatchKind tags which field a match was found in.
type MatchKind int

const (
	MatchTitle MatchKind = iota
	MatchContent
	MatchTag
)

func (k MatchKind) String() string {
	switch k {
	case MatchTitle:
		return "title"
	case MatchContent:
		return "content"
	default:
		return "tag"
	}
}

// Query describes one search. FolderID nil searches all notes.
type Query struct {
	Text          string
	Regex         bool
	FolderID      *uuid.UUID
	CaseSensitive bool
}

// NewQuery returns a literal, case-insensitive, unscoped query.
func NewQuery(text string) Query {
	return Query{Text: text}
}

// Match is one occurrence within a field. Start and End are byte offsets
// into the matched line (for content) or the whole field (title, tag).
type Match struct {
	Line  int
	Text  string
	Start int
	End   int
	Kind  MatchKind
}

// Result pairs a note with its matches, ordered title, content, tags.
type Result struct {
	Note    *domain.Note
	Matches []Match
}

// Engine runs queries and records them in its history.
type Engine struct {
	history *History
}

// NewEngine creates an engine with the default 50-entry history.
func NewEngine() *Engine {
	return &Engine{history: NewHistory(50)}
}

// History exposes the recorded query history, most recent first.
func (e *Engine) History() []string {
	return e.history.Entries()
}

// ClearHistory drops all recorded queries.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// Search runs the query over the notebook and returns ranked results.
// Notes with no matches are dropped. Results sort by descending title-match
// count, then descending total matches, then ascending title for
// determinism. A regex compile failure rejects the whole query.
func (e *Engine) Search(nb *domain.Notebook, q Query) ([]Result, error) {
	if strings.TrimSpace(q.Text) != "" {
		e.history.Add(q.Text)
	}

	matcher, err := newMatcher(q)
	if err != nil {
		return nil, err
	}

	var candidates []*domain.Note
	if q.FolderID != nil {
		candidates = nb.FolderNotes(q.FolderID)
	} else {
		for _, n := range nb.Notes {
			candidates = append(candidates, n)
		}
	}

	var results []Result
	for _, n := range candidates {
		matches := searchNote(n, matcher)
		if len(matches) > 0 {
			results = append(results, Result{Note: n, Matches: matches})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		ti, tj := titleMatches(results[i]), titleMatches(results[j])
		if ti != tj {
			return ti > tj
		}
		if len(results[i].Matches) != len(results[j].Matches) {
			return len(results[i].Matches) > len(results[j].Matches)
		}
		return results[i].Note.Title < results[j].Note.Title
	})
	return results, nil
}

func titleMatches(r Result) int {
	count := 0
	for _, m := range r.Matches {
		if m.Kind == MatchTitle {
			count++
		}
	}
	return count
}

func searchNote(n *domain.Note, m matcher) []Match {
	var matches []Match
	matches = append(matches, m.find(n.Title, 0, MatchTitle)...)
	for i, line := range strings.Split(n.Content, "\n") {
		matches = append(matches, m.find(line, i, MatchContent)...)
	}
	for _, tag := range n.Tags {
		matches = append(matches, m.find(tag, 0, MatchTag)...)
	}
	return matches
}

// matcher finds all non-overlapping occurrences in one field.
type matcher interface {
	find(text string, line int, kind MatchKind) []Match
}

func newMatcher(q Query) (matcher, error) {
	if q.Regex {
		pattern := q.Text
		if !q.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		return &regexMatcher{re: re}, nil
	}
	return &literalMatcher{needle: q.Text, caseSensitive: q.CaseSensitive}, nil
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m *regexMatcher) find(text string, line int, kind MatchKind) []Match {
	var matches []Match
	for _, loc := range m.re.FindAllStringIndex(text, -1) {
		matches = append(matches, Match{Line: line, Text: text, Start: loc[0], End: loc[1], Kind: kind})
	}
	return matches
}

type literalMatcher struct {
	needle        string
	caseSensitive bool
}

// find scans repeatedly from the end of the previous match, so occurrences
// never overlap.
func (m *literalMatcher) find(text string, line int, kind MatchKind) []Match {
	if m.needle == "" {
		return nil
	}
	haystack, needle := text, m.needle
	if !m.caseSensitive {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}

	var matches []Match
	start := 0
	for {
		pos := strings.Index(haystack[start:], needle)
		if pos < 0 {
			return matches
		}
		abs := start + pos
		matches = append(matches, Match{Line: line, Text: text, Start: abs, End: abs + len(m.needle), Kind: kind})
		start = abs + len(m.needle)
	}
}
