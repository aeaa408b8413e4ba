package markup

import "strings"

// CountWords counts whitespace-separated runs in the trimmed text.
// Markdown markers count as part of their adjacent word, matching what the
// status bar has always shown.
func CountWords(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	return len(strings.Fields(trimmed))
}
