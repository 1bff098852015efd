// Package autocomplete implements markdown-aware autocompletion: a fixed
// catalog of triggers matched against the text before the cursor, and the
// text splice that applies a chosen suggestion.
package autocomplete

import "strings"

// Suggestion is one completion candidate. CursorOffset positions the cursor
// after insertion: negative counts back from the end of the inserted text,
// which places the cursor inside paired syntax like backticks.
type Suggestion struct {
	Trigger      string
	Completion   string
	Description  string
	CursorOffset int
}

// Engine holds the trigger catalog. Multiple suggestions may share a
// trigger; triggers that are suffixes of one another (*, **) are
// disambiguated by longest match.
type Engine struct {
	triggers map[string][]Suggestion
}

// NewEngine builds the engine with the fixed markdown catalog.
func NewEngine() *Engine {
	e := &Engine{triggers: make(map[string][]Suggestion)}
	for _, s := range catalog() {
		e.triggers[s.Trigger] = append(e.triggers[s.Trigger], s)
	}
	return e
}

func catalog() []Suggestion {
	return []Suggestion{
		{Trigger: "#", Completion: "# ", Description: "Heading 1"},
		{Trigger: "##", Completion: "## ", Description: "Heading 2"},
		{Trigger: "###", Completion: "### ", Description: "Heading 3"},
		{Trigger: "-", Completion: "- ", Description: "Bullet list item"},
		{Trigger: "*", Completion: "* ", Description: "Bullet list item (alt)"},
		{Trigger: "1.", Completion: "1. ", Description: "Numbered list item"},
		{Trigger: "- [", Completion: "- [ ] ", Description: "Todo checkbox (unchecked)"},
		{Trigger: "- [x", Completion: "- [x] ", Description: "Todo checkbox (checked)"},
		{Trigger: "```", Completion: "```\n\n```", Description: "Code block", CursorOffset: -4},
		{Trigger: "`", Completion: "``", Description: "Inline code", CursorOffset: -1},
		{Trigger: "**", Completion: "****", Description: "Bold text", CursorOffset: -2},
		{Trigger: "*", Completion: "**", Description: "Italic text", CursorOffset: -1},
		{Trigger: "[", Completion: "[](url)", Description: "Link", CursorOffset: -5},
		{Trigger: "![", Completion: "![alt text](image.png)", Description: "Image", CursorOffset: -17},
		{Trigger: ">", Completion: "> ", Description: "Blockquote"},
		{Trigger: "|", Completion: "| Header 1 | Header 2 |\n|----------|----------|\n| Cell 1   | Cell 2   |", Description: "Table", CursorOffset: -49},
		{Trigger: "---", Completion: "---", Description: "Horizontal rule"},
	}
}

// Check reports whether the cursor position should trigger autocompletion.
// It returns the suggestion set for the best trigger and the offset within
// the line where the trigger text begins. Among the triggers that end at the
// cursor, the one starting earliest wins (longest matching suffix).
//
// Triggers fire only at token boundaries: the text preceding the trigger
// must be empty, all whitespace, or end in a space. Mid-word text like "x#"
// never triggers.
func (e *Engine) Check(content string, line, col int) ([]Suggestion, int, bool) {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return nil, 0, false
	}
	current := lines[line]
	if col < 0 || col > len(current) {
		return nil, 0, false
	}
	upToCursor := current[:col]

	bestStart := -1
	var best string
	for trigger := range e.triggers {
		if !strings.HasSuffix(upToCursor, trigger) {
			continue
		}
		start := len(upToCursor) - len(trigger)
		if !atTokenBoundary(upToCursor[:start]) {
			continue
		}
		if bestStart == -1 || start < bestStart {
			bestStart = start
			best = trigger
		}
	}
	if bestStart == -1 {
		return nil, 0, false
	}
	return e.triggers[best], bestStart, true
}

func atTokenBoundary(prefix string) bool {
	if prefix == "" || strings.TrimSpace(prefix) == "" {
		return true
	}
	return strings.HasSuffix(prefix, " ")
}

// Apply splices a suggestion into content: the trigger text between
// triggerStart and the cursor is replaced by the completion, and the new
// absolute cursor position is returned, adjusted by the suggestion's offset
// and clamped against underflow. Positions are byte offsets derived from
// (line, col) by summing earlier line lengths plus one per newline.
func Apply(content string, line, col, triggerStart int, s Suggestion) (string, int) {
	lineStart := LineStart(content, line)
	triggerAbs := lineStart + triggerStart
	cursorAbs := lineStart + col

	var b strings.Builder
	b.WriteString(content[:triggerAbs])
	b.WriteString(s.Completion)
	b.WriteString(content[cursorAbs:])

	end := triggerAbs + len(s.Completion)
	pos := end + s.CursorOffset
	if pos < 0 {
		pos = 0
	}
	return b.String(), pos
}

// LineStart returns the absolute offset of the start of the given line.
func LineStart(content string, line int) int {
	lines := strings.Split(content, "\n")
	pos := 0
	for i := 0; i < line && i < len(lines); i++ {
		pos += len(lines[i]) + 1
	}
	return pos
}

// Position converts an absolute offset back into (line, col).
func Position(content string, abs int) (int, int) {
	lines := strings.Split(content, "\n")
	pos := 0
	for i, l := range lines {
		if pos+len(l) >= abs {
			return i, abs - pos
		}
		pos += len(l) + 1
	}
	last := len(lines) - 1
	return last, len(lines[last])
}
