package store

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/markup"
)

// CreateDocument creates an empty document ordered after its siblings in
// the (projectID, folderID) group.
func (s *Store) CreateDocument(req *models.CreateDocumentRequest) (*models.Document, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Title, validation.Required),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	if !req.Type.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown document type %q", req.Type)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectByID(req.ProjectID) == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", req.ProjectID)}
	}
	if req.FolderID != nil {
		folder := s.folderByID(*req.FolderID)
		if folder == nil {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", *req.FolderID)}
		}
		if folder.ProjectID != req.ProjectID {
			return nil, &domain.ValidationError{Message: "folder belongs to a different project"}
		}
	}

	now := s.now()
	siblings := s.siblingDocuments(req.ProjectID, req.FolderID)
	doc := &models.Document{
		ID:        s.newID(),
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Type:      req.Type,
		Enabled:   true,
		FolderID:  req.FolderID,
		Order:     nextOrder(siblings, func(d *models.Document) float64 { return d.Order }),
		Created:   now,
		Updated:   now,
	}
	s.documents = append(s.documents, doc)
	s.persistLocked()

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"type", doc.Type,
		"project_id", doc.ProjectID,
	)
	cp := *doc
	return &cp, nil
}

// GetDocument returns a copy of the document.
func (s *Store) GetDocument(id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.documentByID(id)
	if doc == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %q not found", id)}
	}
	cp := *doc
	return &cp, nil
}

// ListDocuments returns all documents of a project sorted by order.
func (s *Store) ListDocuments(projectID string) []*models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Document
	for _, d := range s.documents {
		if d.ProjectID == projectID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sortByOrder(out, func(d *models.Document) float64 { return d.Order })
	return out
}

// EnabledDocuments returns the enabled documents of a project sorted by
// order, optionally excluding one document (the one being edited).
func (s *Store) EnabledDocuments(projectID, excludeID string) []*models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Document
	for _, d := range s.documents {
		if d.ProjectID == projectID && d.Enabled && d.ID != excludeID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sortByOrder(out, func(d *models.Document) float64 { return d.Order })
	return out
}

// UpdateDocument applies the non-nil fields of req. A content update
// recomputes the word-count cache.
func (s *Store) UpdateDocument(id string, req *models.UpdateDocumentRequest) (*models.Document, error) {
	if req.Title != nil {
		if err := validation.Validate(strings.TrimSpace(*req.Title), validation.Required); err != nil {
			return nil, &domain.ValidationError{Message: "title: " + err.Error()}
		}
	}
	if req.Type != nil && !req.Type.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown document type %q", *req.Type)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.documentByID(id)
	if doc == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %q not found", id)}
	}
	if req.Title != nil {
		doc.Title = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		doc.Type = *req.Type
	}
	if req.Content != nil {
		doc.Content = *req.Content
		doc.WordCount = markup.CountWords(*req.Content)
	}
	doc.Updated = s.now()
	s.persistLocked()

	cp := *doc
	return &cp, nil
}

// DeleteDocument removes the document.
func (s *Store) DeleteDocument(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.documentByID(id)
	if doc == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %q not found", id)}
	}
	documents := s.documents[:0]
	for _, d := range s.documents {
		if d.ID != id {
			documents = append(documents, d)
		}
	}
	s.documents = documents
	s.persistLocked()

	s.logger.Info("document deleted", "id", id, "title", doc.Title)
	return nil
}

// ToggleEnabled flips whether the document acts as an AI context provider.
func (s *Store) ToggleEnabled(id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.documentByID(id)
	if doc == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %q not found", id)}
	}
	doc.Enabled = !doc.Enabled
	s.persistLocked()
	cp := *doc
	return &cp, nil
}

// SetAllEnabled sets the enabled flag on every document of a project.
func (s *Store) SetAllEnabled(projectID string, enabled bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, d := range s.documents {
		if d.ProjectID == projectID && d.Enabled != enabled {
			d.Enabled = enabled
			changed++
		}
	}
	if changed > 0 {
		s.persistLocked()
	}
	return changed
}

// DuplicateDocument clones the document and places the clone immediately
// after the source via a half-increment order. The fractional order is a
// documented transient state: the next full sibling-group mutation
// renumbers the group back to dense integers.
func (s *Store) DuplicateDocument(id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.documentByID(id)
	if src == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %q not found", id)}
	}

	now := s.now()
	clone := *src
	clone.ID = s.newID()
	clone.Title = src.Title + " (Copy)"
	clone.Order = src.Order + 0.5
	clone.Created = now
	clone.Updated = now
	s.documents = append(s.documents, &clone)
	s.persistLocked()

	s.logger.Info("document duplicated", "source_id", id, "clone_id", clone.ID)
	cp := clone
	return &cp, nil
}

// MoveDocumentToFolder reparents the document into folderID (nil = top
// level), appending it at the end of the target group, and renumbers both
// affected groups.
func (s *Store) MoveDocumentToFolder(id string, folderID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.documentByID(id)
	if doc == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %q not found", id)}
	}
	if folderID != nil {
		folder := s.folderByID(*folderID)
		if folder == nil {
			return &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", *folderID)}
		}
		// A foreign folder would key the document into another project's
		// sibling group.
		if folder.ProjectID != doc.ProjectID {
			return &domain.ValidationError{Message: "folder belongs to a different project"}
		}
	}

	oldFolder := doc.FolderID
	target := s.siblingDocuments(doc.ProjectID, folderID)
	doc.Order = nextOrder(target, func(d *models.Document) float64 { return d.Order })
	doc.FolderID = folderID

	renumberDocuments(s.siblingDocuments(doc.ProjectID, folderID))
	if !sameID(oldFolder, folderID) {
		renumberDocuments(s.siblingDocuments(doc.ProjectID, oldFolder))
	}
	s.persistLocked()
	return nil
}

// ReorderDocument moves the document into the (projectID, folderID)
// sibling group at targetIndex and renumbers the whole group to 0..N-1.
// A cross-group move changes the grouping key first, then inserts.
func (s *Store) ReorderDocument(id string, targetFolderID *string, targetIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.documentByID(id)
	if doc == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %q not found", id)}
	}
	if targetFolderID != nil {
		folder := s.folderByID(*targetFolderID)
		if folder == nil {
			return &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", *targetFolderID)}
		}
		if folder.ProjectID != doc.ProjectID {
			return &domain.ValidationError{Message: "folder belongs to a different project"}
		}
	}

	oldFolder := doc.FolderID
	doc.FolderID = targetFolderID

	group := s.siblingDocuments(doc.ProjectID, targetFolderID)
	rest := make([]*models.Document, 0, len(group))
	for _, d := range group {
		if d.ID != id {
			rest = append(rest, d)
		}
	}
	targetIndex = clampIndex(targetIndex, len(rest))
	rest = append(rest[:targetIndex], append([]*models.Document{doc}, rest[targetIndex:]...)...)
	renumberDocuments(rest)
	if !sameID(oldFolder, targetFolderID) {
		renumberDocuments(s.siblingDocuments(doc.ProjectID, oldFolder))
	}
	s.persistLocked()
	return nil
}
