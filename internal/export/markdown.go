package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/markup"
)

var unsafeFilenameRe = regexp.MustCompile(`[^a-z0-9]`)

// Writer flattens a project into one markdown draft.
type Writer struct {
	conv *markup.Converter
}

func NewWriter(conv *markup.Converter) *Writer {
	return &Writer{conv: conv}
}

// FullDraft renders the project title, its description in italics, then
// every enabled document in order as an H1 section separated by
// horizontal rules. Legacy HTML content is converted through the duality
// converter; conversion failures degrade to a per-section notice instead
// of sinking the whole export.
func (w *Writer) FullDraft(project *models.Project, docs []*models.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", project.Title)
	if project.Description != "" {
		fmt.Fprintf(&b, "*%s*\n", project.Description)
	}
	b.WriteString("\n---\n\n")

	for _, doc := range docs {
		if !doc.Enabled {
			continue
		}
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
		content := doc.Content
		if markup.HasLegacyHTML(content) {
			converted, err := w.conv.HTMLToMarkdown(content)
			if err != nil {
				converted = fmt.Sprintf("[Error converting content for: %s]", doc.Title)
			}
			content = converted
		}
		b.WriteString(content)
		b.WriteString("\n\n\n***\n\n\n")
	}
	return b.String()
}

// DraftFilename sanitizes the project title into the download name: every
// character outside [a-z0-9] becomes an underscore.
func DraftFilename(title string) string {
	safe := unsafeFilenameRe.ReplaceAllString(strings.ToLower(title), "_")
	return safe + "_full_draft.md"
}
