package assist

import (
	"context"
	"strings"

	lorem "github.com/bozaro/golorem"
)

// LoremProvider generates placeholder prose locally, used when no API key
// is configured so every flow stays exercisable offline.
type LoremProvider struct {
	gen *lorem.Lorem
}

func NewLoremProvider() *LoremProvider {
	return &LoremProvider{gen: lorem.New()}
}

func (p *LoremProvider) Complete(_ context.Context, req CompletionRequest) (string, error) {
	// Roughly one paragraph per 100 requested tokens.
	paragraphs := req.MaxTokens / 100
	if paragraphs < 1 {
		paragraphs = 3
	}
	parts := make([]string, paragraphs)
	for i := range parts {
		parts[i] = p.gen.Paragraph(3, 6)
	}
	return strings.Join(parts, "\n\n"), nil
}
