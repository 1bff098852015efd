package domain

import (
	"time"

	"github.com/google/uuid"
)

// Folder groups notes and other folders. ParentID nil means root level.
// Expanded is view state, but it persists across sessions so it lives here.
type Folder struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Expanded  bool       `json:"expanded"`
}

// NewFolder creates a folder, expanded by default.
func NewFolder(name string, parentID *uuid.UUID) *Folder {
	return &Folder{
		ID:        uuid.New(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
		Expanded:  true,
	}
}

// Rename changes the folder name.
func (f *Folder) Rename(name string) {
	f.Name = name
}
