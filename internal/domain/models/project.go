package models

import (
	"time"
)

type Project struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Genre           string    `json:"genre"`
	Description     string    `json:"description"`
	TargetWordCount int       `json:"target_word_count"`
	// CurrentWordCount is a display cache. Aggregate totals are recomputed
	// from document content wherever correctness matters.
	CurrentWordCount int       `json:"current_word_count"`
	Order            float64   `json:"order"`
	Created          time.Time `json:"created"`
	Updated          time.Time `json:"updated"`
}

type CreateProjectRequest struct {
	Title           string `json:"title"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
	TargetWordCount int    `json:"target_word_count"`
}

type UpdateProjectRequest struct {
	Title           *string `json:"title,omitempty"`
	Genre           *string `json:"genre,omitempty"`
	Description     *string `json:"description,omitempty"`
	TargetWordCount *int    `json:"target_word_count,omitempty"`
}
