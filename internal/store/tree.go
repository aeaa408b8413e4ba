package store

import (
	"fmt"

	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/domain/models"
)

// BuildTree assembles the nested sidebar view of a project. Each level
// keeps folders and documents in separate order-sorted lists.
func (s *Store) BuildTree(projectID string) (*models.TreeNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectByID(projectID) == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", projectID)}
	}

	root := &models.TreeNode{
		Folders:   s.buildFolderLevelLocked(projectID, nil),
		Documents: s.buildDocumentLevelLocked(projectID, nil),
	}
	return root, nil
}

func (s *Store) buildFolderLevelLocked(projectID string, parentID *string) []*models.FolderTreeNode {
	nodes := []*models.FolderTreeNode{}
	for _, f := range s.siblingFolders(projectID, parentID) {
		id := f.ID
		nodes = append(nodes, &models.FolderTreeNode{
			ID:        f.ID,
			Name:      f.Name,
			ParentID:  f.ParentID,
			Order:     f.Order,
			Collapsed: f.Collapsed,
			Folders:   s.buildFolderLevelLocked(projectID, &id),
			Documents: s.buildDocumentLevelLocked(projectID, &id),
		})
	}
	return nodes
}

// buildDocumentLevelLocked lists document metadata only. Content stays out
// of the tree payload so a sidebar refresh never ships full manuscripts.
func (s *Store) buildDocumentLevelLocked(projectID string, folderID *string) []models.DocumentTreeNode {
	nodes := []models.DocumentTreeNode{}
	for _, d := range s.siblingDocuments(projectID, folderID) {
		nodes = append(nodes, models.DocumentTreeNode{
			ID:        d.ID,
			Title:     d.Title,
			Type:      d.Type,
			FolderID:  d.FolderID,
			Enabled:   d.Enabled,
			Order:     d.Order,
			WordCount: d.WordCount,
		})
	}
	return nodes
}
