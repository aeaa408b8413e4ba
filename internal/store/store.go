package store

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jvgags/Poe-Write/internal/domain/models"
)

// Saver receives a snapshot of the full state after every committed
// mutation. Implementations may write asynchronously; the store never
// waits on them.
type Saver interface {
	Save(state *models.AppState)
}

// Store holds the canonical in-memory collections and exposes mutation
// primitives that preserve sibling-order density and folder acyclicity.
// Structural invariants are checked before commit, never after: a rejected
// mutation leaves the tree untouched.
type Store struct {
	mu        sync.Mutex
	projects  []*models.Project
	folders   []*models.Folder
	documents []*models.Document
	settings  models.Settings
	chat      []models.ChatMessage

	saver  Saver
	logger *slog.Logger
	newID  func() string
	now    func() time.Time
}

// New creates an empty store. saver may be nil (mutations are then
// in-memory only, used by tests).
func New(saver Saver, logger *slog.Logger) *Store {
	return &Store{
		settings: models.DefaultSettings(),
		saver:    saver,
		logger:   logger,
		newID:    func() string { return uuid.NewString() },
		now:      time.Now,
	}
}

// LoadState replaces all in-memory collections wholesale, e.g. on startup
// or backup restore. Missing keys are defaulted by Normalize.
func (s *Store) LoadState(state *models.AppState) {
	state.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = state.Projects
	s.documents = state.Documents
	s.folders = state.Folders
	s.settings = state.Settings
	s.chat = state.ChatHistory
}

// Snapshot returns a deep copy of the full state, safe to hand to the
// persistence gateway or an export writer.
func (s *Store) Snapshot() *models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *models.AppState {
	state := &models.AppState{
		Projects:    make([]*models.Project, len(s.projects)),
		Documents:   make([]*models.Document, len(s.documents)),
		Folders:     make([]*models.Folder, len(s.folders)),
		Settings:    s.settings,
		ChatHistory: append([]models.ChatMessage(nil), s.chat...),
		Version:     models.StateVersion,
		Timestamp:   s.now(),
	}
	for i, p := range s.projects {
		cp := *p
		state.Projects[i] = &cp
	}
	for i, d := range s.documents {
		cp := *d
		state.Documents[i] = &cp
	}
	for i, f := range s.folders {
		cp := *f
		state.Folders[i] = &cp
	}
	return state
}

// persistLocked pushes a snapshot to the saver. Every mutation path must
// end here so no committed change is ever silently unsaved on reload.
func (s *Store) persistLocked() {
	if s.saver == nil {
		return
	}
	s.saver.Save(s.snapshotLocked())
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings merges the given settings in and persists.
func (s *Store) UpdateSettings(settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.persistLocked()
}

// AppendChatMessage records one chat history entry.
func (s *Store) AppendChatMessage(role, content string) models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := models.ChatMessage{Role: role, Content: content, Timestamp: s.now()}
	s.chat = append(s.chat, msg)
	s.persistLocked()
	return msg
}

// ChatHistory returns a copy of the chat history.
func (s *Store) ChatHistory() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.chat...)
}

// ClearChatHistory removes all chat history entries.
func (s *Store) ClearChatHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = nil
	s.persistLocked()
}

// sameID compares two nullable IDs; two nils are equal.
func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sortByOrder[T any](items []T, order func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return order(items[i]) < order(items[j])
	})
}

func (s *Store) projectByID(id string) *models.Project {
	for _, p := range s.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Store) folderByID(id string) *models.Folder {
	for _, f := range s.folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (s *Store) documentByID(id string) *models.Document {
	for _, d := range s.documents {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// siblingDocuments returns the sibling group (projectID, folderID) sorted
// by order.
func (s *Store) siblingDocuments(projectID string, folderID *string) []*models.Document {
	var group []*models.Document
	for _, d := range s.documents {
		if d.ProjectID == projectID && sameID(d.FolderID, folderID) {
			group = append(group, d)
		}
	}
	sortByOrder(group, func(d *models.Document) float64 { return d.Order })
	return group
}

// siblingFolders returns the sibling group (projectID, parentID) sorted
// by order.
func (s *Store) siblingFolders(projectID string, parentID *string) []*models.Folder {
	var group []*models.Folder
	for _, f := range s.folders {
		if f.ProjectID == projectID && sameID(f.ParentID, parentID) {
			group = append(group, f)
		}
	}
	sortByOrder(group, func(f *models.Folder) float64 { return f.Order })
	return group
}

// renumberDocuments rewrites a sibling group's orders to a dense 0..N-1
// sequence in array order. Run after every structural change so that
// float-based temporary ordering never leaks into persisted state
// indefinitely.
func renumberDocuments(group []*models.Document) {
	for i, d := range group {
		d.Order = float64(i)
	}
}

func renumberFolders(group []*models.Folder) {
	for i, f := range group {
		f.Order = float64(i)
	}
}

func nextOrder[T any](group []T, order func(T) float64) float64 {
	max := -1.0
	for _, item := range group {
		if o := order(item); o > max {
			max = o
		}
	}
	return max + 1
}

func clampIndex(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if idx > length {
		return length
	}
	return idx
}
