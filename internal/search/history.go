package search

// History is a bounded list of past queries, most recent first. Adding an
// existing query moves it to the front instead of duplicating it; the oldest
// entry is evicted once the cap is reached.
type History struct {
	queries []string
	max     int
}

// NewHistory creates a history holding at most max entries.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add records a query. Blank queries are ignored.
func (h *History) Add(query string) {
	if query == "" {
		return
	}
	for i, q := range h.queries {
		if q == query {
			h.queries = append(h.queries[:i], h.queries[i+1:]...)
			break
		}
	}
	h.queries = append([]string{query}, h.queries...)
	for len(h.queries) > h.max {
		h.queries = h.queries[:len(h.queries)-1]
	}
}

// Entries returns the recorded queries, most recent first.
func (h *History) Entries() []string {
	return append([]string(nil), h.queries...)
}

// Clear drops all entries.
func (h *History) Clear() {
	h.queries = nil
}
