package store

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/domain/models"
)

// CreateFolder creates a folder ordered after its siblings in the
// (projectID, parentID) group.
func (s *Store) CreateFolder(req *models.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Name, validation.Required),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectByID(req.ProjectID) == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", req.ProjectID)}
	}
	if req.ParentID != nil && s.folderByID(*req.ParentID) == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("parent folder %q not found", *req.ParentID)}
	}

	siblings := s.siblingFolders(req.ProjectID, req.ParentID)
	folder := &models.Folder{
		ID:        s.newID(),
		ProjectID: req.ProjectID,
		Name:      req.Name,
		ParentID:  req.ParentID,
		Order:     nextOrder(siblings, func(f *models.Folder) float64 { return f.Order }),
	}
	s.folders = append(s.folders, folder)
	s.persistLocked()

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"project_id", folder.ProjectID,
		"parent_id", folder.ParentID,
	)
	cp := *folder
	return &cp, nil
}

// GetFolder returns a copy of the folder.
func (s *Store) GetFolder(id string) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderByID(id)
	if folder == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", id)}
	}
	cp := *folder
	return &cp, nil
}

// RenameFolder changes the folder name.
func (s *Store) RenameFolder(id, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if err := validation.Validate(name, validation.Required); err != nil {
		return nil, &domain.ValidationError{Message: "name: " + err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderByID(id)
	if folder == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", id)}
	}
	folder.Name = name
	s.persistLocked()
	cp := *folder
	return &cp, nil
}

// ToggleFolderCollapse flips the collapsed display state.
func (s *Store) ToggleFolderCollapse(id string) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderByID(id)
	if folder == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", id)}
	}
	folder.Collapsed = !folder.Collapsed
	s.persistLocked()
	cp := *folder
	return &cp, nil
}

// ReparentFolder moves the folder under newParentID (nil = top level),
// appending it at the end of the target sibling group. Fails with
// CycleError if the move would make the folder its own ancestor; the check
// runs before any state changes.
func (s *Store) ReparentFolder(id string, newParentID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderByID(id)
	if folder == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", id)}
	}
	if err := s.checkNoCycleLocked(id, newParentID); err != nil {
		return err
	}
	if newParentID != nil && s.folderByID(*newParentID) == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", *newParentID)}
	}

	oldParent := folder.ParentID
	target := s.siblingFolders(folder.ProjectID, newParentID)
	folder.Order = nextOrder(target, func(f *models.Folder) float64 { return f.Order })
	folder.ParentID = newParentID

	// Heal both groups: the target gets the appended folder renumbered in,
	// the source closes the gap.
	renumberFolders(s.siblingFolders(folder.ProjectID, newParentID))
	renumberFolders(s.siblingFolders(folder.ProjectID, oldParent))
	s.persistLocked()
	return nil
}

// ReorderFolder moves the folder into the (projectID, parentID) sibling
// group at targetIndex and renumbers the whole group to 0..N-1. A cross-
// group move changes the grouping key first, then inserts.
func (s *Store) ReorderFolder(id string, targetParentID *string, targetIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderByID(id)
	if folder == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", id)}
	}
	if err := s.checkNoCycleLocked(id, targetParentID); err != nil {
		return err
	}

	oldParent := folder.ParentID
	folder.ParentID = targetParentID

	group := s.siblingFolders(folder.ProjectID, targetParentID)
	rest := make([]*models.Folder, 0, len(group))
	for _, f := range group {
		if f.ID != id {
			rest = append(rest, f)
		}
	}
	targetIndex = clampIndex(targetIndex, len(rest))
	rest = append(rest[:targetIndex], append([]*models.Folder{folder}, rest[targetIndex:]...)...)
	renumberFolders(rest)
	if !sameID(oldParent, targetParentID) {
		renumberFolders(s.siblingFolders(folder.ProjectID, oldParent))
	}
	s.persistLocked()
	return nil
}

// DeleteFolder removes the folder. Its child folders and documents are
// reparented one level up, to the deleted folder's own parent: folders are
// organizational, never content containers whose deletion destroys content.
func (s *Store) DeleteFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderByID(id)
	if folder == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", id)}
	}
	newParent := folder.ParentID

	for _, d := range s.documents {
		if sameID(d.FolderID, &id) {
			d.FolderID = newParent
		}
	}
	for _, f := range s.folders {
		if sameID(f.ParentID, &id) {
			f.ParentID = newParent
		}
	}

	folders := s.folders[:0]
	for _, f := range s.folders {
		if f.ID != id {
			folders = append(folders, f)
		}
	}
	s.folders = folders

	renumberFolders(s.siblingFolders(folder.ProjectID, newParent))
	renumberDocuments(s.siblingDocuments(folder.ProjectID, newParent))
	s.persistLocked()

	s.logger.Info("folder deleted", "id", id, "name", folder.Name, "reparented_to", newParent)
	return nil
}

// IsFolderDescendant reports whether checkID sits anywhere below
// ancestorID in the folder tree.
func (s *Store) IsFolderDescendant(checkID, ancestorID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isDescendantLocked(checkID, ancestorID)
}

func (s *Store) isDescendantLocked(checkID, ancestorID string) bool {
	current := s.folderByID(checkID)
	for current != nil {
		if current.ParentID == nil {
			return false
		}
		if *current.ParentID == ancestorID {
			return true
		}
		current = s.folderByID(*current.ParentID)
	}
	return false
}

// checkNoCycleLocked walks the parent chain from newParentID upward and
// rejects the move if it ever reaches folderID.
func (s *Store) checkNoCycleLocked(folderID string, newParentID *string) error {
	if newParentID == nil {
		return nil
	}
	if *newParentID == folderID {
		return &domain.CycleError{Message: "cannot move a folder into itself"}
	}
	if s.isDescendantLocked(*newParentID, folderID) {
		return &domain.CycleError{Message: "cannot move a folder into its own subfolder"}
	}
	return nil
}
