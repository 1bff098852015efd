package autocomplete

import (
	"strings"
	"testing"
)

func TestCheck_TriggerMatching(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name      string
		content   string
		line      int
		col       int
		wantOK    bool
		wantStart int
		wantDesc  string // description of the first suggestion in the set
	}{
		{
			name:      "checkbox at line start",
			content:   "- [",
			line:      0,
			col:       3,
			wantOK:    true,
			wantStart: 0,
			wantDesc:  "Todo checkbox (unchecked)",
		},
		{
			name:    "hash mid-word never triggers",
			content: "x#",
			line:    0,
			col:     2,
			wantOK:  false,
		},
		{
			name:      "double star wins over single",
			content:   "**",
			line:      0,
			col:       2,
			wantOK:    true,
			wantStart: 0,
			wantDesc:  "Bold text",
		},
		{
			name:      "trigger after a space",
			content:   "some text #",
			line:      0,
			col:       11,
			wantOK:    true,
			wantStart: 10,
			wantDesc:  "Heading 1",
		},
		{
			name:      "indented trigger",
			content:   "  >",
			line:      0,
			col:       3,
			wantOK:    true,
			wantStart: 2,
			wantDesc:  "Blockquote",
		},
		{
			name:      "triple dash wins over dash",
			content:   "---",
			line:      0,
			col:       3,
			wantOK:    true,
			wantStart: 0,
			wantDesc:  "Horizontal rule",
		},
		{
			name:      "second line addressing",
			content:   "first line\n##",
			line:      1,
			col:       2,
			wantOK:    true,
			wantStart: 0,
			wantDesc:  "Heading 2",
		},
		{
			name:    "line out of bounds",
			content: "one line",
			line:    3,
			col:     0,
			wantOK:  false,
		},
		{
			name:    "column past end of line",
			content: "#",
			line:    0,
			col:     5,
			wantOK:  false,
		},
		{
			name:    "empty prefix no trigger",
			content: "",
			line:    0,
			col:     0,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions, start, ok := e.Check(tt.content, tt.line, tt.col)
			if ok != tt.wantOK {
				t.Fatalf("Check ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if start != tt.wantStart {
				t.Errorf("trigger start = %d, want %d", start, tt.wantStart)
			}
			if len(suggestions) == 0 || suggestions[0].Description != tt.wantDesc {
				t.Errorf("suggestions = %+v, want first %q", suggestions, tt.wantDesc)
			}
		})
	}
}

func TestCheck_SingleStarOffersBothSuggestions(t *testing.T) {
	e := NewEngine()
	suggestions, _, ok := e.Check("*", 0, 1)
	if !ok {
		t.Fatal("expected a trigger for *")
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions for *, got %d", len(suggestions))
	}
}

func TestApply(t *testing.T) {
	e := NewEngine()

	t.Run("code block places cursor inside", func(t *testing.T) {
		content := "```"
		suggestions, start, ok := e.Check(content, 0, 3)
		if !ok {
			t.Fatal("expected code block trigger")
		}
		var s Suggestion
		for _, cand := range suggestions {
			if cand.Description == "Code block" {
				s = cand
			}
		}
		got, pos := Apply(content, 0, 3, start, s)
		if got != "```\n\n```" {
			t.Errorf("content = %q", got)
		}
		if pos != 4 {
			t.Errorf("cursor = %d, want 4 (inside the fence)", pos)
		}
		line, col := Position(got, pos)
		if line != 1 || col != 0 {
			t.Errorf("cursor line/col = %d/%d, want 1/0", line, col)
		}
	})

	t.Run("replaces only the trigger text", func(t *testing.T) {
		content := "note: `"
		suggestions, start, ok := e.Check(content, 0, 7)
		if !ok {
			t.Fatal("expected inline code trigger")
		}
		got, pos := Apply(content, 0, 7, start, suggestions[0])
		if got != "note: ``" {
			t.Errorf("content = %q", got)
		}
		if pos != 7 {
			t.Errorf("cursor = %d, want 7 (between backticks)", pos)
		}
	})

	t.Run("preserves trailing content", func(t *testing.T) {
		content := "## \ntail"
		got, _ := Apply(content, 0, 2, 0, Suggestion{Trigger: "##", Completion: "## "})
		if !strings.HasSuffix(got, "\ntail") {
			t.Errorf("trailing content lost: %q", got)
		}
	})

	t.Run("negative offset clamps at zero", func(t *testing.T) {
		_, pos := Apply("`", 0, 1, 0, Suggestion{Trigger: "`", Completion: "``", CursorOffset: -10})
		if pos != 0 {
			t.Errorf("cursor = %d, want 0", pos)
		}
	})
}

func TestState_Cycling(t *testing.T) {
	var s State

	// Empty set: cycling is a no-op.
	s.Next()
	s.Prev()
	if s.Selected != 0 {
		t.Errorf("selection moved on empty set: %d", s.Selected)
	}

	s.Activate([]Suggestion{{Description: "a"}, {Description: "b"}, {Description: "c"}}, 0)
	s.Next()
	s.Next()
	s.Next() // wraps to 0
	if s.Selected != 0 {
		t.Errorf("forward wrap: selected = %d, want 0", s.Selected)
	}
	s.Prev() // wraps to 2
	if s.Selected != 2 {
		t.Errorf("backward wrap: selected = %d, want 2", s.Selected)
	}

	cur, ok := s.Current()
	if !ok || cur.Description != "c" {
		t.Errorf("Current = %+v, %v", cur, ok)
	}

	s.Deactivate()
	if s.Active || len(s.Suggestions) != 0 {
		t.Error("Deactivate did not clear state")
	}
}
