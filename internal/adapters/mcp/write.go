package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scribble/internal/domain"
	"scribble/internal/ports"
)

// RegisterWriteTools adds all mutating notebook tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.NotebookStore) {
	s.AddTool(createNoteTool(), createNoteHandler(store))
	s.AddTool(updateNoteTool(), updateNoteHandler(store))
	s.AddTool(deleteNoteTool(), deleteNoteHandler(store))
}

// --- create_note ---

func createNoteTool() mcp.Tool {
	return mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note, optionally inside a folder by name."),
		mcp.WithString("title",
			mcp.Description("Note title"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("Initial markdown content"),
		),
		mcp.WithString("folder",
			mcp.Description("Folder name to place the note in. Omit for the root."),
		),
	)
}

func createNoteHandler(store ports.NotebookStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title := req.GetString("title", "")
		if title == "" {
			return toolError(fmt.Errorf("title is required"))
		}

		nb, err := store.Load()
		if err != nil {
			return toolError(err)
		}

		var folderID *uuid.UUID
		if name := req.GetString("folder", ""); name != "" {
			folder := findFolderByName(nb, name)
			if folder == nil {
				return toolError(fmt.Errorf("no folder named %q", name))
			}
			id := folder.ID
			folderID = &id
		}

		note := domain.NewNote(title, folderID)
		note.Content = req.GetString("content", "")
		nb.AddNote(note)

		if err := store.Save(nb); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Created note %q (%s)", note.Title, note.ID)), nil
	}
}

// --- update_note ---

func updateNoteTool() mcp.Tool {
	return mcp.NewTool("update_note",
		mcp.WithDescription("Replace a note's content by ID or exact title."),
		mcp.WithString("note",
			mcp.Description("Note ID or exact title"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("New markdown content"),
			mcp.Required(),
		),
	)
}

func updateNoteHandler(store ports.NotebookStore) server.ToolHandlerFunc {
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

		note.UpdateContent(req.GetString("content", ""))
		if err := store.Save(nb); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Updated note %q", note.Title)), nil
	}
}

// --- delete_note ---

func deleteNoteTool() mcp.Tool {
	return mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note by ID or exact title."),
		mcp.WithString("note",
			mcp.Description("Note ID or exact title"),
			mcp.Required(),
		),
	)
}

func deleteNoteHandler(store ports.NotebookStore) server.ToolHandlerFunc {
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

		title := note.Title
		nb.RemoveNote(note.ID)
		if err := store.Save(nb); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted note %q", title)), nil
	}
}
