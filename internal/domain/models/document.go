package models

import (
	"time"
)

// DocumentType is the closed set of document kinds. The type drives display
// iconography, AI-context assembly (enabled documents act as context
// providers) and phrase detection (Chapter documents only).
type DocumentType string

const (
	TypeChapter      DocumentType = "Chapter"
	TypeInstructions DocumentType = "Instructions"
	TypeSynopsis     DocumentType = "Synopsis"
	TypeWritingStyle DocumentType = "Writing Style"
	TypeCharacters   DocumentType = "Characters"
	TypeLocations    DocumentType = "Locations"
	TypeWorldbuild   DocumentType = "Worldbuilding"
	TypePlot         DocumentType = "Plot"
	TypeResearch     DocumentType = "Research"
	TypeNotes        DocumentType = "Notes"
	TypeOther        DocumentType = "Other"
)

// DocumentTypes lists every valid document type, in display order.
var DocumentTypes = []DocumentType{
	TypeChapter, TypeInstructions, TypeSynopsis, TypeWritingStyle,
	TypeCharacters, TypeLocations, TypeWorldbuild, TypePlot,
	TypeResearch, TypeNotes, TypeOther,
}

// Valid reports whether t is one of the closed enumeration values.
func (t DocumentType) Valid() bool {
	for _, dt := range DocumentTypes {
		if t == dt {
			return true
		}
	}
	return false
}

type Document struct {
	ID        string       `json:"id"`
	ProjectID string       `json:"project_id"`
	Title     string       `json:"title"`
	Type      DocumentType `json:"type"`
	Content   string       `json:"content"` // canonical markdown
	// WordCount is a cache recomputed on save. Never authoritative.
	WordCount int       `json:"word_count"`
	Enabled   bool      `json:"enabled"`
	FolderID  *string   `json:"folder_id"` // nil = top level
	Order     float64   `json:"order"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

type CreateDocumentRequest struct {
	ProjectID string       `json:"project_id"`
	Title     string       `json:"title"`
	Type      DocumentType `json:"type"`
	FolderID  *string      `json:"folder_id,omitempty"`
}

type UpdateDocumentRequest struct {
	Title   *string       `json:"title,omitempty"`
	Type    *DocumentType `json:"type,omitempty"`
	Content *string       `json:"content,omitempty"`
}
