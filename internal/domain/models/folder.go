package models

type Folder struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"project_id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_id"` // nil = top level
	Order     float64 `json:"order"`
	Collapsed bool    `json:"collapsed"`
}

type CreateFolderRequest struct {
	ProjectID string  `json:"project_id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_id,omitempty"`
}

// TreeNode is the root of a project's rendered tree.
type TreeNode struct {
	Folders   []*FolderTreeNode  `json:"folders"`
	Documents []DocumentTreeNode `json:"documents"`
}

// FolderTreeNode is a folder in the tree with nested children.
type FolderTreeNode struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	ParentID  *string            `json:"parent_id"`
	Order     float64            `json:"order"`
	Collapsed bool               `json:"collapsed"`
	Folders   []*FolderTreeNode  `json:"folders"`
	Documents []DocumentTreeNode `json:"documents"`
}

// DocumentTreeNode is a document in the tree (metadata only, no content).
type DocumentTreeNode struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Type      DocumentType `json:"type"`
	FolderID  *string      `json:"folder_id"`
	Enabled   bool         `json:"enabled"`
	Order     float64      `json:"order"`
	WordCount int          `json:"word_count"`
}
