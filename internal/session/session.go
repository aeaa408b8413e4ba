package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jvgags/Poe-Write/internal/annotate"
	"github.com/jvgags/Poe-Write/internal/assist"
	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/markup"
	"github.com/jvgags/Poe-Write/internal/store"
)

// Session is the editing context of one open document: the two surfaces,
// the duality engine keeping them consistent, the annotation overlays and
// the stream inserter. One session is active at a time.
type Session struct {
	ProjectID  string
	DocumentID string

	Markdown *markup.Buffer
	Preview  *markup.Buffer
	Engine   *markup.Engine
	Overlay  *annotate.Engine
	Inserter *assist.Inserter

	mu      sync.Mutex
	unsaved bool
}

// MarkUnsaved records a pending change.
func (s *Session) MarkUnsaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsaved = true
}

// Unsaved reports whether the session has changes the store has not seen.
func (s *Session) Unsaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsaved
}

func (s *Session) markSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsaved = false
}

// Streaming reports whether a generation is being inserted right now.
func (s *Session) Streaming() bool {
	return s.Inserter.Streaming()
}

// Manager opens and tracks the active session and drives idle auto-save.
type Manager struct {
	mu        sync.Mutex
	store     *store.Store
	conv      *markup.Converter
	renderer  *markup.Renderer
	logger    *slog.Logger
	current   *Session
	autosaver *AutoSaver
}

func NewManager(st *store.Store, conv *markup.Converter, renderer *markup.Renderer, logger *slog.Logger) *Manager {
	m := &Manager{store: st, conv: conv, renderer: renderer, logger: logger}
	interval := time.Duration(st.Settings().AutoSaveInterval) * time.Millisecond
	m.autosaver = NewAutoSaver(interval, m.autoSave)
	return m
}

// Open loads a document into a fresh session, replacing the current one.
// An unsaved current session is flushed to the store first; switching
// documents must never drop a pending edit. Legacy HTML content is
// migrated to markdown and persisted back immediately.
func (m *Manager) Open(projectID, documentID string) (*Session, error) {
	doc, err := m.store.GetDocument(documentID)
	if err != nil {
		return nil, err
	}
	if doc.ProjectID != projectID {
		return nil, &domain.NotFoundError{Message: "document is not part of this project"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		m.saveLocked(m.current)
		m.current.Inserter.Cancel()
	}

	settings := m.store.Settings()
	lexicon := settings.AIIsmsList
	if lexicon == "" {
		lexicon = annotate.DefaultLexicon
	}
	color := settings.HighlightColor

	s := &Session{
		ProjectID:  projectID,
		DocumentID: documentID,
		Markdown:   markup.NewBuffer(""),
		Preview:    markup.NewBuffer(""),
	}
	s.Engine = markup.NewEngine(m.conv, m.renderer, s.Markdown, s.Preview, color, m.logger, func(string) {
		s.MarkUnsaved()
		m.autosaver.Touch()
	})
	s.Overlay = annotate.NewEngine(s.Markdown, color, lexicon, m.logger)
	s.Overlay.SetDocumentType(doc.Type)
	s.Inserter = assist.NewInserter(s.Markdown, m.logger)

	content, migrated := s.Engine.Load(doc.Content)
	if migrated {
		if _, err := m.store.UpdateDocument(documentID, &models.UpdateDocumentRequest{Content: &content}); err != nil {
			m.logger.Warn("failed to persist migrated document", "id", documentID, "error", err)
		}
	}
	// Loading is not an edit.
	s.markSaved()

	settings.LastProjectID = &projectID
	settings.LastDocumentID = &documentID
	m.store.UpdateSettings(settings)
	m.autosaver.SetInterval(time.Duration(settings.AutoSaveInterval) * time.Millisecond)

	m.current = s
	m.logger.Info("document opened", "id", documentID, "title", doc.Title, "migrated", migrated)
	return s, nil
}

// Current returns the active session.
func (m *Manager) Current() (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.current != nil
}

// Save flushes the active session's canonical content to the store.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	return m.saveLocked(m.current)
}

// Close saves and drops the active session.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	err := m.saveLocked(m.current)
	m.current.Inserter.Cancel()
	m.current = nil
	m.autosaver.Stop()
	return err
}

func (m *Manager) saveLocked(s *Session) error {
	s.Engine.Flush()
	if !s.Unsaved() {
		return nil
	}
	content := s.Engine.Canonical()
	if _, err := m.store.UpdateDocument(s.DocumentID, &models.UpdateDocumentRequest{Content: &content}); err != nil {
		return err
	}
	s.markSaved()
	return nil
}

// ApplySettings propagates changed preferences into the live session:
// the phrase lexicon, the highlight color and the auto-save interval.
func (m *Manager) ApplySettings(settings models.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autosaver.SetInterval(time.Duration(settings.AutoSaveInterval) * time.Millisecond)
	if m.current == nil {
		return
	}
	lexicon := settings.AIIsmsList
	if lexicon == "" {
		lexicon = annotate.DefaultLexicon
	}
	m.current.Overlay.SetLexicon(lexicon)
	m.current.Overlay.SetHighlightColor(settings.HighlightColor)
	m.current.Engine.SetHighlightColor(settings.HighlightColor)
}

// autoSave is the idle-timer callback.
func (m *Manager) autoSave() {
	if err := m.Save(); err != nil {
		m.logger.Error("auto-save failed", "error", err)
	}
}
