package assist

import "context"

// Message is one chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the single request shape the completion boundary
// accepts: one JSON POST, one text response.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Provider produces one completion per request. Implementations map
// transport failures to RequestError and credential failures to AuthError.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
