package domain

import "github.com/google/uuid"

// FolderTreeNode is one node of the derived display tree. It is ephemeral:
// rebuilt from the notebook after every structural mutation, never persisted.
type FolderTreeNode struct {
	Folder   *Folder
	Children []*FolderTreeNode
	Notes    []*Note
	Depth    int
}

// TreeItemType tags a flattened row as a folder or a note.
type TreeItemType int

const (
	TreeItemFolder TreeItemType = iota
	TreeItemNote
)

func (t TreeItemType) String() string {
	if t == TreeItemFolder {
		return "folder"
	}
	return "note"
}

// TreeItem is one flattened, displayable row of the folder/note hierarchy.
type TreeItem struct {
	ID       uuid.UUID
	Name     string
	Type     TreeItemType
	Depth    int
	Expanded bool
}

// BuildFolderTree builds the display forest from the root folder id
// sequence, recursively attaching owned notes and child folders. The parent
// graph is kept acyclic at mutation time (IsAncestor guard), so the builder
// does not need its own cycle detection.
func (nb *Notebook) BuildFolderTree() []*FolderTreeNode {
	var tree []*FolderTreeNode
	for _, rootID := range nb.RootFolderIDs {
		if f := nb.Folders[rootID]; f != nil {
			tree = append(tree, nb.buildTreeNode(f, 0))
		}
	}
	return tree
}

func (nb *Notebook) buildTreeNode(f *Folder, depth int) *FolderTreeNode {
	node := &FolderTreeNode{Folder: f, Depth: depth}
	node.Notes = nb.FolderNotes(&f.ID)
	for _, child := range nb.ChildFolders(f.ID) {
		node.Children = append(node.Children, nb.buildTreeNode(child, depth+1))
	}
	return node
}

// TreeItems flattens the notebook into display rows: root-level notes first,
// then the folder forest depth-first. A folder's notes and subfolders are
// emitted only while the folder is expanded — this is the single place
// collapse is enforced.
func (nb *Notebook) TreeItems() []TreeItem {
	var items []TreeItem
	for _, n := range nb.FolderNotes(nil) {
		items = append(items, TreeItem{ID: n.ID, Name: n.Title, Type: TreeItemNote, Depth: 0})
	}
	for _, node := range nb.BuildFolderTree() {
		items = appendTreeNode(items, node)
	}
	return items
}

func appendTreeNode(items []TreeItem, node *FolderTreeNode) []TreeItem {
	items = append(items, TreeItem{
		ID:       node.Folder.ID,
		Name:     node.Folder.Name,
		Type:     TreeItemFolder,
		Depth:    node.Depth,
		Expanded: node.Folder.Expanded,
	})
	if !node.Folder.Expanded {
		return items
	}
	for _, n := range node.Notes {
		items = append(items, TreeItem{ID: n.ID, Name: n.Title, Type: TreeItemNote, Depth: node.Depth + 1})
	}
	for _, child := range node.Children {
		items = appendTreeNode(items, child)
	}
	return items
}
