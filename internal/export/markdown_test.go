package export

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/markup"
)

func newWriter() *Writer {
	return NewWriter(markup.NewConverter(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestFullDraft(t *testing.T) {
	w := newWriter()
	project := &models.Project{Title: "My Novel", Description: "A story of tea."}
	docs := []*models.Document{
		{Title: "Chapter One", Content: "It began with a kettle.", Enabled: true},
		{Title: "Scrapped", Content: "never mind", Enabled: false},
		{Title: "Chapter Two", Content: "<p>It ended with <b>toast</b>.</p>", Enabled: true},
	}

	got := w.FullDraft(project, docs)

	if !strings.HasPrefix(got, "# My Novel\n*A story of tea.*\n\n---\n\n") {
		t.Errorf("header = %q", got[:min(len(got), 60)])
	}
	if !strings.Contains(got, "# Chapter One\n\nIt began with a kettle.\n\n\n***\n\n\n") {
		t.Errorf("first section wrong:\n%q", got)
	}
	if strings.Contains(got, "Scrapped") {
		t.Error("disabled document included")
	}
	if !strings.Contains(got, "It ended with **toast**.") {
		t.Errorf("legacy html not converted:\n%q", got)
	}
}

func TestFullDraftNoDescription(t *testing.T) {
	got := newWriter().FullDraft(&models.Project{Title: "Bare"}, nil)
	if got != "# Bare\n\n---\n\n" {
		t.Errorf("draft = %q", got)
	}
}

func TestDraftFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"My Novel!", "my_novel__full_draft.md"},
		{"plain", "plain_full_draft.md"},
		{"Tea & Toast 2", "tea___toast_2_full_draft.md"},
	}
	for _, tt := range tests {
		if got := DraftFilename(tt.title); got != tt.want {
			t.Errorf("DraftFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
