package store

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/markup"
)

// CreateProject creates a project ordered after all existing projects.
func (s *Store) CreateProject(req *models.CreateProjectRequest) (*models.Project, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.TargetWordCount, validation.Min(0)),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	project := &models.Project{
		ID:              s.newID(),
		Title:           req.Title,
		Genre:           req.Genre,
		Description:     req.Description,
		TargetWordCount: req.TargetWordCount,
		Order:           nextOrder(s.projects, func(p *models.Project) float64 { return p.Order }),
		Created:         now,
		Updated:         now,
	}
	s.projects = append(s.projects, project)
	s.persistLocked()

	s.logger.Info("project created", "id", project.ID, "title", project.Title)
	cp := *project
	return &cp, nil
}

// GetProject returns a copy of the project with its aggregate word count
// recomputed from document content.
func (s *Store) GetProject(id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.projectByID(id)
	if project == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", id)}
	}
	cp := *project
	cp.CurrentWordCount = s.projectWordCountLocked(id)
	return &cp, nil
}

// ListProjects returns all projects sorted by order, aggregate word counts
// recomputed.
func (s *Store) ListProjects() []*models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Project, len(s.projects))
	for i, p := range s.projects {
		cp := *p
		cp.CurrentWordCount = s.projectWordCountLocked(p.ID)
		out[i] = &cp
	}
	sortByOrder(out, func(p *models.Project) float64 { return p.Order })
	return out
}

// projectWordCountLocked recomputes the aggregate directly from document
// content. Neither the project cache nor the per-document caches are
// trusted: an imported backup can carry stale or missing counts.
func (s *Store) projectWordCountLocked(projectID string) int {
	total := 0
	for _, d := range s.documents {
		if d.ProjectID == projectID {
			total += markup.CountWords(d.Content)
		}
	}
	return total
}

// UpdateProject applies the non-nil fields of req.
func (s *Store) UpdateProject(id string, req *models.UpdateProjectRequest) (*models.Project, error) {
	if req.Title != nil {
		if err := validation.Validate(*req.Title, validation.Required); err != nil {
			return nil, &domain.ValidationError{Message: "title: " + err.Error()}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.projectByID(id)
	if project == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", id)}
	}
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Genre != nil {
		project.Genre = *req.Genre
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.TargetWordCount != nil {
		project.TargetWordCount = *req.TargetWordCount
	}
	project.Updated = s.now()
	s.persistLocked()

	cp := *project
	return &cp, nil
}

// DeleteProject removes the project and cascades to all of its documents
// and folders atomically.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.projectByID(id)
	if project == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", id)}
	}

	projects := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			projects = append(projects, p)
		}
	}
	s.projects = projects

	documents := s.documents[:0]
	for _, d := range s.documents {
		if d.ProjectID != id {
			documents = append(documents, d)
		}
	}
	s.documents = documents

	folders := s.folders[:0]
	for _, f := range s.folders {
		if f.ProjectID != id {
			folders = append(folders, f)
		}
	}
	s.folders = folders

	s.persistLocked()
	s.logger.Info("project deleted", "id", id, "title", project.Title)
	return nil
}

// ReorderProject moves the project to targetIndex in the project list and
// renumbers all projects to a dense 0..N-1 sequence.
func (s *Store) ReorderProject(id string, targetIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.projectByID(id)
	if project == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", id)}
	}

	sortByOrder(s.projects, func(p *models.Project) float64 { return p.Order })
	rest := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.ID != id {
			rest = append(rest, p)
		}
	}
	targetIndex = clampIndex(targetIndex, len(rest))
	rest = append(rest[:targetIndex], append([]*models.Project{project}, rest[targetIndex:]...)...)
	for i, p := range rest {
		p.Order = float64(i)
	}
	s.projects = rest
	s.persistLocked()
	return nil
}

// CopyProject deep-clones a project with all its folders and documents.
// The clone is appended at the end of the project list; folder parentage
// is remapped onto the cloned folder IDs.
func (s *Store) CopyProject(id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.projectByID(id)
	if src == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %q not found", id)}
	}

	now := s.now()
	clone := &models.Project{
		ID:              s.newID(),
		Title:           src.Title + " (Copy)",
		Genre:           src.Genre,
		Description:     src.Description,
		TargetWordCount: src.TargetWordCount,
		Order:           nextOrder(s.projects, func(p *models.Project) float64 { return p.Order }),
		Created:         now,
		Updated:         now,
	}
	s.projects = append(s.projects, clone)

	// Clone folders first so documents can be remapped onto the new IDs.
	folderIDMap := make(map[string]string)
	var clonedFolders []*models.Folder
	for _, f := range s.folders {
		if f.ProjectID != id {
			continue
		}
		cf := *f
		cf.ID = s.newID()
		cf.ProjectID = clone.ID
		folderIDMap[f.ID] = cf.ID
		clonedFolders = append(clonedFolders, &cf)
	}
	for _, cf := range clonedFolders {
		if cf.ParentID != nil {
			mapped := folderIDMap[*cf.ParentID]
			cf.ParentID = &mapped
		}
		s.folders = append(s.folders, cf)
	}

	for _, d := range s.documents {
		if d.ProjectID != id {
			continue
		}
		cd := *d
		cd.ID = s.newID()
		cd.ProjectID = clone.ID
		cd.Created = now
		cd.Updated = now
		if cd.FolderID != nil {
			mapped := folderIDMap[*cd.FolderID]
			cd.FolderID = &mapped
		}
		s.documents = append(s.documents, &cd)
	}

	s.persistLocked()
	s.logger.Info("project copied", "source_id", id, "clone_id", clone.ID)
	cp := *clone
	return &cp, nil
}
