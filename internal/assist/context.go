package assist

import (
	"fmt"
	"strings"

	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/markup"
)

// DocumentsContext assembles the enabled context-provider documents into
// one block of "--- Type: Title ---" sections. Content is reduced to
// plain text so formatting noise never spends tokens. Empty when there
// are no documents.
func DocumentsContext(docs []*models.Document) string {
	if len(docs) == 0 {
		return ""
	}
	sections := make([]string, len(docs))
	for i, doc := range docs {
		text := markup.ExtractPlainText(doc.Content)
		sections[i] = fmt.Sprintf("--- %s: %s ---\n%s\n", doc.Type, doc.Title, text)
	}
	return "\n\nAdditional Context:\n" + strings.Join(sections, "\n")
}

// RawInstructions joins enabled documents with their content untouched,
// for the non-fiction flow where the documents are the instructions.
func RawInstructions(docs []*models.Document) string {
	sections := make([]string, len(docs))
	for i, doc := range docs {
		sections[i] = fmt.Sprintf("--- %s: %s ---\n%s\n", doc.Type, doc.Title, strings.TrimSpace(doc.Content))
	}
	return strings.Join(sections, "\n")
}

// recentWindow returns the trailing n bytes of text.
func recentWindow(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[len(text)-n:]
}

// headWindow returns the leading n bytes of text.
func headWindow(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}
