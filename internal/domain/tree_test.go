package domain

import (
	"testing"

	"github.com/google/uuid"
)

func buildSampleNotebook(t *testing.T) (*Notebook, *Folder, *Folder) {
	t.Helper()
	nb := NewNotebook()
	top := NewFolder("Top", nil)
	nb.AddFolder(top)
	sub := NewFolder("Sub", &top.ID)
	nb.AddFolder(sub)
	nb.AddNote(NewNote("Root note", nil))
	nb.AddNote(NewNote("Top note", &top.ID))
	nb.AddNote(NewNote("Sub note", &sub.ID))
	return nb, top, sub
}

func TestTreeItems_NoDuplicates(t *testing.T) {
	nb, _, _ := buildSampleNotebook(t)

	seen := make(map[uuid.UUID]int)
	for _, item := range nb.TreeItems() {
		seen[item.ID]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("item %s emitted %d times", id, count)
		}
	}
	// 2 folders + 3 notes, everything expanded.
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct items, got %d", len(seen))
	}
}

func TestTreeItems_CollapsedFolderHidesChildren(t *testing.T) {
	nb, top, sub := buildSampleNotebook(t)
	top.Expanded = false

	items := nb.TreeItems()
	for _, item := range items {
		if item.ID == sub.ID {
			t.Error("collapsed folder emitted its subfolder")
		}
		if item.Name == "Top note" || item.Name == "Sub note" {
			t.Errorf("collapsed folder emitted owned note %q", item.Name)
		}
	}
	// Root note + the collapsed folder row itself.
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}

func TestTreeItems_RootNotesFirstThenDepths(t *testing.T) {
	nb, top, sub := buildSampleNotebook(t)

	items := nb.TreeItems()
	if items[0].Type != TreeItemNote || items[0].Name != "Root note" || items[0].Depth != 0 {
		t.Errorf("expected root note first, got %+v", items[0])
	}

	depths := map[uuid.UUID]int{top.ID: 0, sub.ID: 1}
	for _, item := range items {
		if want, ok := depths[item.ID]; ok && item.Depth != want {
			t.Errorf("folder %q depth = %d, want %d", item.Name, item.Depth, want)
		}
		if item.Name == "Sub note" && item.Depth != 2 {
			t.Errorf("sub note depth = %d, want 2", item.Depth)
		}
	}
}

func TestBuildFolderTree_Deterministic(t *testing.T) {
	nb, _, _ := buildSampleNotebook(t)

	flatten := func() []string {
		var names []string
		for _, item := range nb.TreeItems() {
			names = append(names, item.Name)
		}
		return names
	}

	first := flatten()
	for i := 0; i < 10; i++ {
		again := flatten()
		if len(again) != len(first) {
			t.Fatalf("length changed between calls: %d vs %d", len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("order changed between calls at %d: %q vs %q", j, again[j], first[j])
			}
		}
	}
}
