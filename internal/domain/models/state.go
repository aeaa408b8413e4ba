package models

import (
	"time"
)

// StateVersion identifies the persisted blob format.
const StateVersion = "3.0"

// ChatMessage is one entry of the assistant chat history.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AppState is the full persisted state: one blob per installation.
type AppState struct {
	Projects    []*Project     `json:"projects"`
	Documents   []*Document    `json:"documents"`
	Folders     []*Folder      `json:"folders"`
	Settings    Settings       `json:"settings"`
	ChatHistory []ChatMessage  `json:"chatHistory"`
	Version     string         `json:"version"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Normalize fills in defaults for missing top-level keys so imports from
// older or partial backups always yield a usable state.
func (s *AppState) Normalize() {
	if s.Projects == nil {
		s.Projects = []*Project{}
	}
	if s.Documents == nil {
		s.Documents = []*Document{}
	}
	if s.Folders == nil {
		s.Folders = []*Folder{}
	}
	if s.ChatHistory == nil {
		s.ChatHistory = []ChatMessage{}
	}
	if s.Version == "" {
		s.Version = StateVersion
	}

	// Settings default per field, not wholesale: a partial import keeps
	// what it carries and fills the rest.
	defaults := DefaultSettings()
	if s.Settings.Theme == "" {
		s.Settings.Theme = defaults.Theme
	}
	if s.Settings.FontSize == 0 {
		s.Settings.FontSize = defaults.FontSize
	}
	if s.Settings.FontFamily == "" {
		s.Settings.FontFamily = defaults.FontFamily
	}
	if s.Settings.AutoSaveInterval == 0 {
		s.Settings.AutoSaveInterval = defaults.AutoSaveInterval
	}
	if s.Settings.HighlightColor == "" {
		s.Settings.HighlightColor = defaults.HighlightColor
	}
	if s.Settings.LastUsedModel == "" {
		s.Settings.LastUsedModel = defaults.LastUsedModel
	}
	if s.Settings.LastTemperature == 0 {
		s.Settings.LastTemperature = defaults.LastTemperature
	}
	if s.Settings.LastTokenCount == 0 {
		s.Settings.LastTokenCount = defaults.LastTokenCount
	}
}
