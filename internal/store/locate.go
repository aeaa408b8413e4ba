package store

import (
	"fmt"

	"github.com/jvgags/Poe-Write/internal/domain"
)

// ProjectIndex returns the project's position in the order-sorted project
// list.
func (s *Store) ProjectIndex(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := make([]*indexed, 0, len(s.projects))
	for _, p := range s.projects {
		sorted = append(sorted, &indexed{id: p.ID, order: p.Order})
	}
	return findIndex(sorted, id, "project")
}

// DocumentLocation returns the document's sibling group key and its index
// within the order-sorted group.
func (s *Store) DocumentLocation(id string) (folderID *string, index int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.documentByID(id)
	if doc == nil {
		return nil, 0, &domain.NotFoundError{Message: fmt.Sprintf("document %q not found", id)}
	}
	group := s.siblingDocuments(doc.ProjectID, doc.FolderID)
	for i, d := range group {
		if d.ID == id {
			return doc.FolderID, i, nil
		}
	}
	return doc.FolderID, 0, nil
}

// FolderLocation returns the folder's sibling group key and its index
// within the order-sorted group.
func (s *Store) FolderLocation(id string) (parentID *string, index int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderByID(id)
	if folder == nil {
		return nil, 0, &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", id)}
	}
	group := s.siblingFolders(folder.ProjectID, folder.ParentID)
	for i, f := range group {
		if f.ID == id {
			return folder.ParentID, i, nil
		}
	}
	return folder.ParentID, 0, nil
}

type indexed struct {
	id    string
	order float64
}

func findIndex(items []*indexed, id, kind string) (int, error) {
	sortByOrder(items, func(it *indexed) float64 { return it.order })
	for i, it := range items {
		if it.id == id {
			return i, nil
		}
	}
	return 0, &domain.NotFoundError{Message: fmt.Sprintf("%s %q not found", kind, id)}
}
