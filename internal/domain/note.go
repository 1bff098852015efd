package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note is a single markdown note. Content is the raw markdown source.
type Note struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	FolderID   *uuid.UUID `json:"folder_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
	Tags       []string   `json:"tags"`
	FilePath   string     `json:"file_path,omitempty"`
}

// NewNote creates an empty note. folderID may be nil for a root-level note.
func NewNote(title string, folderID *uuid.UUID) *Note {
	now := time.Now().UTC()
	return &Note{
		ID:         uuid.New(),
		Title:      title,
		FolderID:   folderID,
		CreatedAt:  now,
		ModifiedAt: now,
		Tags:       []string{},
	}
}

// UpdateContent replaces the note content and bumps the modification time.
// This is the only sanctioned way to change content, so modified_at never
// lags behind an edit.
func (n *Note) UpdateContent(content string) {
	n.Content = content
	n.ModifiedAt = time.Now().UTC()
}

// AddTag adds a tag if not already present.
func (n *Note) AddTag(tag string) {
	for _, t := range n.Tags {
		if t == tag {
			return
		}
	}
	n.Tags = append(n.Tags, tag)
	n.ModifiedAt = time.Now().UTC()
}

// RemoveTag removes a tag if present.
func (n *Note) RemoveTag(tag string) {
	for i, t := range n.Tags {
		if t == tag {
			n.Tags = append(n.Tags[:i], n.Tags[i+1:]...)
			n.ModifiedAt = time.Now().UTC()
			return
		}
	}
}

// Clone returns a deep copy, used for the editor's working copy.
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	if n.FolderID != nil {
		id := *n.FolderID
		c.FolderID = &id
	}
	return &c
}
