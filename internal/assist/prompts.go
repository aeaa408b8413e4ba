package assist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jvgags/Poe-Write/internal/domain/models"
)

// Built-in prompt templates. Settings overrides replace them wholesale;
// an empty override means use the default. Placeholders are substituted
// once, first occurrence only, so a template can mention a placeholder
// literally by repeating it.
const (
	DefaultSystemPrompt = `You are a creative writing assistant helping to continue a story.
{CONTEXT_NOTES}
{DOCUMENTS_CONTEXT}

Generate approximately {TOKENS_TO_GENERATE} tokens that naturally continue the narrative. Match the writing style, tone, and voice of the existing text. Do not repeat content from the existing text.`

	DefaultUserPrompt = "Here is the story so far:\n\n{RECENT_TEXT}\n\nPlease continue the story naturally from where it left off."

	DefaultContinueUserPrompt = "Please continue the story naturally from where it left off."

	DefaultGoUserPrompt = "Based on all the instructions and context provided, write the article now."

	improveSystemPrompt = "You are a professional editor. Improve the provided text based on the user's specific instructions while maintaining the original meaning and voice. Return only the improved text without any preamble or explanation."

	goSystemPromptPrefix = "You are a professional writer creating high-quality non-fiction content. Use the following documents as your complete instructions and context. Write in a clear, engaging style appropriate for magazine articles."

	chatSystemPromptBase = "You are Poe, a helpful AI writing assistant. You help writers with their creative projects."
)

// SystemPrompt fills the continuation system template with the generation
// budget and assembled context.
func SystemPrompt(s models.Settings, tokensToGenerate int, contextNotes, documentsContext string) string {
	prompt := s.CustomSystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	prompt = strings.Replace(prompt, "{TOKENS_TO_GENERATE}", strconv.Itoa(tokensToGenerate), 1)
	if contextNotes != "" {
		prompt = strings.Replace(prompt, "{CONTEXT_NOTES}", "\n\nContext about the story:\n"+contextNotes, 1)
	} else {
		prompt = strings.Replace(prompt, "{CONTEXT_NOTES}", "", 1)
	}
	prompt = strings.Replace(prompt, "{DOCUMENTS_CONTEXT}", documentsContext, 1)
	return prompt
}

// UserPrompt fills the continuation user template with the recent-text
// window.
func UserPrompt(s models.Settings, recentText string) string {
	prompt := s.CustomUserPrompt
	if prompt == "" {
		prompt = DefaultUserPrompt
	}
	return strings.Replace(prompt, "{RECENT_TEXT}", recentText, 1)
}

// GoUserPrompt returns the non-fiction "write it now" user prompt.
func GoUserPrompt(s models.Settings) string {
	if s.GoUserPrompt != "" {
		return s.GoUserPrompt
	}
	return DefaultGoUserPrompt
}

// scratchSystemPrompt is the fresh-document variant: with no text to
// continue, the model starts the first scene from context alone.
func scratchSystemPrompt(genre, contextNotes, documentsContext string) string {
	if genre == "" {
		genre = "story"
	}
	notes := ""
	if contextNotes != "" {
		notes = "Additional Notes:\n" + contextNotes + "\n"
	}
	return fmt.Sprintf(`You are an expert novelist starting a new %s.
Use ALL the context below to begin writing the first scene/chapter in a compelling, immersive style.
Write in third-person limited (or first-person if the style guide says so).
Start directly with action or vivid description - no summaries or "Chapter 1" titles unless instructed.

Context:
%s%s`, genre, notes, documentsContext)
}

// brainstormSystemPrompt asks for a numbered list of ideas.
func brainstormSystemPrompt(contextNotes, documentsContext string) string {
	notes := ""
	if contextNotes != "" {
		notes = "\n\nContext:\n" + contextNotes
	}
	return fmt.Sprintf(`You are a creative writing assistant. Generate 5 creative ideas for continuing or enhancing the story.
%s
%s

Format your response as a numbered list.`, notes, documentsContext)
}
