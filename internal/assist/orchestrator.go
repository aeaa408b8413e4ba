package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jvgags/Poe-Write/internal/store"
)

// Text windows sent to the completion service. Continuation sees the most
// recent prose; brainstorming needs less.
const (
	continueWindow   = 4000
	brainstormWindow = 2000
	chatDocWindow    = 2000
	chatContextHead  = 1000
	chatHistoryDepth = 10
	chatMaxTokens    = 2048
)

// GenerateParams carries one assist request. CurrentText is the live
// editor text, which may be ahead of the persisted document.
type GenerateParams struct {
	ProjectID    string  `json:"project_id"`
	DocumentID   string  `json:"document_id"`
	CurrentText  string  `json:"current_text"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	MaxTokens    int     `json:"max_tokens"`
	ContextNotes string  `json:"context_notes"`
}

// Orchestrator assembles prompts from store state and runs them through
// the configured provider. It never touches the editor: generated text
// goes back to the caller, who hands it to the stream inserter, so a
// failed request cannot partially insert anything.
type Orchestrator struct {
	store    *store.Store
	provider Provider
	logger   *slog.Logger
}

func NewOrchestrator(st *store.Store, provider Provider, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{store: st, provider: provider, logger: logger}
}

// Continue generates a story continuation. With no existing text the
// fresh-document variant asks the model to begin the story from context
// alone.
func (o *Orchestrator) Continue(ctx context.Context, p GenerateParams) (string, error) {
	settings := o.store.Settings()
	docsCtx := DocumentsContext(o.store.EnabledDocuments(p.ProjectID, p.DocumentID))

	var system, user string
	if strings.TrimSpace(p.CurrentText) == "" {
		genre := ""
		if project, err := o.store.GetProject(p.ProjectID); err == nil {
			genre = project.Genre
		}
		system = scratchSystemPrompt(genre, p.ContextNotes, docsCtx)
		user = "Begin the story now."
	} else {
		system = SystemPrompt(settings, p.MaxTokens, p.ContextNotes, docsCtx)
		user = UserPrompt(settings, recentWindow(p.CurrentText, continueWindow))
	}

	o.logger.Info("continuation requested", "model", p.Model, "max_tokens", p.MaxTokens)
	return o.provider.Complete(ctx, CompletionRequest{
		Model: p.Model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	})
}

// Improve rewrites a selected passage per the user's instructions. The
// token budget scales with the selection so long passages are not
// truncated mid-rewrite.
func (o *Orchestrator) Improve(ctx context.Context, selected, instructions, model string, temperature float64) (string, error) {
	maxTokens := len(selected) * 2
	if maxTokens < 1024 {
		maxTokens = 1024
	}
	user := fmt.Sprintf("Original text:\n%s\n\nInstructions: %s\n\nProvide the improved version:", selected, instructions)

	return o.provider.Complete(ctx, CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: improveSystemPrompt},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

// Brainstorm returns five numbered ideas for where the story could go.
func (o *Orchestrator) Brainstorm(ctx context.Context, p GenerateParams) (string, error) {
	docsCtx := DocumentsContext(o.store.EnabledDocuments(p.ProjectID, p.DocumentID))
	system := brainstormSystemPrompt(p.ContextNotes, docsCtx)

	excerpt := recentWindow(p.CurrentText, brainstormWindow)
	user := "Provide 5 creative story ideas or writing prompts."
	if excerpt != "" {
		user = fmt.Sprintf("Based on this story excerpt:\n\n%s\n\nProvide 5 creative ideas for what could happen next or how to develop the narrative.", excerpt)
	}

	return o.provider.Complete(ctx, CompletionRequest{
		Model: p.Model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: p.Temperature,
	})
}

// GoGenerate is the non-fiction flow: the enabled documents are the
// complete instructions, content passed through verbatim.
func (o *Orchestrator) GoGenerate(ctx context.Context, p GenerateParams) (string, error) {
	settings := o.store.Settings()
	instructions := RawInstructions(o.store.EnabledDocuments(p.ProjectID, p.DocumentID))
	system := goSystemPromptPrefix + "\n\n" + instructions

	return o.provider.Complete(ctx, CompletionRequest{
		Model: p.Model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: GoUserPrompt(settings)},
		},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	})
}

// Chat sends a conversational message with project context and the recent
// history, recording both sides in the persisted chat history. The user
// turn is recorded even when the request fails, mirroring how the
// conversation pane shows what was asked.
func (o *Orchestrator) Chat(ctx context.Context, message string, p GenerateParams) (string, error) {
	system := chatSystemPromptBase
	var contextText strings.Builder

	if doc := strings.TrimSpace(p.CurrentText); doc != "" && p.DocumentID != "" {
		if d, err := o.store.GetDocument(p.DocumentID); err == nil {
			fmt.Fprintf(&contextText, "\n\nCurrent document %q:\n%s", d.Title, recentWindow(p.CurrentText, chatDocWindow))
		}
	}
	if p.ProjectID != "" {
		enabled := o.store.EnabledDocuments(p.ProjectID, p.DocumentID)
		if len(enabled) > 0 {
			contextText.WriteString("\n\nContext documents:\n")
			for _, d := range enabled {
				text := headWindow(d.Content, chatContextHead)
				fmt.Fprintf(&contextText, "\n--- %s: %s ---\n%s\n", d.Type, d.Title, text)
			}
		}
	}
	if contextText.Len() > 0 {
		system += "\n\nContext about the current project:" + contextText.String()
	}

	messages := []Message{{Role: "system", Content: system}}
	history := o.store.ChatHistory()
	if len(history) > chatHistoryDepth {
		history = history[len(history)-chatHistoryDepth:]
	}
	for _, msg := range history {
		messages = append(messages, Message{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, Message{Role: "user", Content: message})
	o.store.AppendChatMessage("user", message)

	reply, err := o.provider.Complete(ctx, CompletionRequest{
		Model:       p.Model,
		Messages:    messages,
		Temperature: p.Temperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return "", err
	}
	o.store.AppendChatMessage("assistant", reply)
	return reply, nil
}
