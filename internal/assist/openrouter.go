package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/jvgags/Poe-Write/internal/domain"
)

// DefaultOpenRouterURL is the chat completions endpoint.
const DefaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterProvider talks to an OpenRouter-shaped completions API. The
// credential is sent to this endpoint and nowhere else.
type OpenRouterProvider struct {
	baseURL string
	apiKey  string
	referer string
	title   string
	client  *http.Client
	logger  *slog.Logger
}

func NewOpenRouterProvider(baseURL, apiKey, referer, title string, logger *slog.Logger) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = DefaultOpenRouterURL
	}
	return &OpenRouterProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		referer: referer,
		title:   title,
		client:  &http.Client{Timeout: 120 * time.Second},
		logger:  logger,
	}
}

func (p *OpenRouterProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if p.apiKey == "" {
		return "", &domain.AuthError{Message: "no API key configured"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", &domain.RequestError{Message: "encode request: " + err.Error()}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", &domain.RequestError{Message: "build request: " + err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("HTTP-Referer", p.referer)
	httpReq.Header.Set("X-Title", p.title)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &domain.RequestError{Message: "completion request: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.RequestError{Message: "read response: " + err.Error()}
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &domain.AuthError{Message: fmt.Sprintf("API rejected credential (status %d)", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("completion api error", "status", resp.StatusCode, "model", req.Model)
		return "", &domain.RequestError{Message: fmt.Sprintf("API error: %d", resp.StatusCode)}
	}

	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() {
		return "", &domain.RequestError{Message: "malformed API response: no completion choice"}
	}
	return strings.TrimSpace(content.String()), nil
}
