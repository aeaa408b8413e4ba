package models

// Settings carries user preferences persisted inside the state blob.
// Theme and font values are opaque strings to this backend; the UI owns
// their interpretation.
type Settings struct {
	Theme            string   `json:"theme"`
	FontSize         int      `json:"font_size"`
	FontFamily       string   `json:"font_family"`
	AutoSaveInterval int      `json:"auto_save_interval"` // milliseconds
	LastProjectID    *string  `json:"last_project_id"`
	LastDocumentID   *string  `json:"last_document_id"`
	FavoriteModels   []string `json:"favorite_models"`

	// Prompt overrides; empty string means use the built-in default.
	CustomSystemPrompt string `json:"custom_system_prompt"`
	CustomUserPrompt   string `json:"custom_user_prompt"`
	ContinueUserPrompt string `json:"continue_user_prompt"`
	GoUserPrompt       string `json:"go_user_prompt"`

	LastUsedModel   string  `json:"last_used_model"`
	LastTemperature float64 `json:"last_temperature"`
	LastTokenCount  int     `json:"last_token_count"`

	HighlightColor string `json:"highlight_color"`
	// AIIsmsList is the newline-delimited phrase lexicon; empty string means
	// use the built-in default list.
	AIIsmsList string `json:"aiisms_list"`
}

// DefaultSettings returns the settings a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		Theme:            "default",
		FontSize:         16,
		FontFamily:       "georgia",
		AutoSaveInterval: 60000,
		LastUsedModel:    "anthropic/claude-3.5-sonnet",
		LastTemperature:  0.7,
		LastTokenCount:   2048,
		HighlightColor:   "#fff59d",
	}
}
