// Package mcp exposes the notebook over the Model Context Protocol so
// assistants can read and edit notes through stdio.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scribble/internal/domain"
	"scribble/internal/ports"
	"scribble/internal/search"
)

// RegisterReadTools adds all read-only notebook tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.NotebookStore) {
	s.AddTool(treeTool(), treeHandler(store))
	s.AddTool(listNotesTool(), listNotesHandler(store))
	s.AddTool(readNoteTool(), readNoteHandler(store))
	s.AddTool(searchTool(), searchHandler(store))
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the notebook folder structure with note titles."),
	)
}

func treeHandler(store ports.NotebookStore) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nb, err := store.Load()
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, item := range nb.TreeItems() {
			indent := strings.Repeat("  ", item.Depth)
			marker := "-"
			if item.Type == domain.TreeItemFolder {
				marker = "+"
			}
			fmt.Fprintf(&sb, "%s%s %s\n", indent, marker, item.Name)
		}
		if sb.Len() == 0 {
			return mcp.NewToolResultText("The notebook is empty."), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_notes ---

func listNotesTool() mcp.Tool {
	return mcp.NewTool("list_notes",
		mcp.WithDescription("List notes with their IDs. Optionally restrict to a folder by name."),
		mcp.WithString("folder",
			mcp.Description("Folder name to list notes of. Omit to list every note."),
		),
	)
}

func listNotesHandler(store ports.NotebookStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nb, err := store.Load()
		if err != nil {
			return toolError(err)
		}

		folderName := req.GetString("folder", "")
		var notes []*domain.Note
		if folderName == "" {
			notes = nb.SearchNotes("")
		} else {
			folder := findFolderByName(nb, folderName)
			if folder == nil {
				return toolError(fmt.Errorf("no folder named %q", folderName))
			}
			notes = nb.FolderNotes(&folder.ID)
		}

		if len(notes) == 0 {
			return mcp.NewToolResultText("No notes found."), nil
		}
		var sb strings.Builder
		for _, n := range notes {
			fmt.Fprintf(&sb, "%s  %s\n", n.ID, n.Title)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- read_note ---

func readNoteTool() mcp.Tool {
	return mcp.NewTool("read_note",
		mcp.WithDescription("Read a note's content by ID or exact title."),
		mcp.WithString("note",
			mcp.Description("Note ID or exact title"),
			mcp.Required(),
		),
	)
}

func readNoteHandler(store ports.NotebookStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref := req.GetString("note", "")
		if ref == "" {
			return toolError(fmt.Errorf("note is required"))
		}

		nb, err := store.Load()
		if err != nil {
			return toolError(err)
		}

		note := findNote(nb, ref)
		if note == nil {
			return toolError(fmt.Errorf("no note matching %q", ref))
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n\n%s", note.Title, note.Content)
		if len(note.Tags) > 0 {
			fmt.Fprintf(&sb, "\n\nTags: %s", strings.Join(note.Tags, ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search notes by keyword across titles, content and tags. Prefix with regex: for a regular expression or case: for case-sensitive matching."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(store ports.NotebookStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		nb, err := store.Load()
		if err != nil {
			return toolError(err)
		}

		engine := search.NewEngine()
		results, err := engine.Search(nb, parseQuery(query))
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  (%d matches)\n", r.Note.ID, r.Note.Title, len(r.Matches))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func parseQuery(raw string) search.Query {
	q := search.NewQuery(raw)
	if rest, ok := strings.CutPrefix(raw, "regex:"); ok {
		q.Text = rest
		q.Regex = true
	} else if rest, ok := strings.CutPrefix(raw, "case:"); ok {
		q.Text = rest
		q.CaseSensitive = true
	}
	return q
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func findNote(nb *domain.Notebook, ref string) *domain.Note {
	for _, n := range nb.Notes {
		if n.ID.String() == ref {
			return n
		}
	}
	for _, n := range nb.Notes {
		if n.Title == ref {
			return n
		}
	}
	return nil
}

func findFolderByName(nb *domain.Notebook, name string) *domain.Folder {
	for _, f := range nb.Folders {
		if f.Name == name {
			return f
		}
	}
	return nil
}
