package markup

import (
	"log/slog"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/jvgags/Poe-Write/internal/domain"
)

var (
	// legacyHTMLRe detects documents still stored as HTML from before
	// markdown became the canonical representation.
	legacyHTMLRe = regexp.MustCompile(`(?i)<\s*(p|div|br|h[1-6]|strong|em|b|i|u|s|strike|del|ul|ol|li|blockquote|span|a|img|mark|code|hr|pre)[\s/>]`)
	// excessNewlinesRe collapses runs of 3+ newlines to exactly one blank
	// line, keeping block separation stable across repeated conversions.
	excessNewlinesRe = regexp.MustCompile(`\n{3,}`)
)

// Converter turns editable HTML back into canonical markdown. The rule set
// must mirror the preview renderer exactly or round trips drift: in
// particular mark elements become ==text== and underline folds into bold,
// since markdown has no underline.
type Converter struct {
	conv   *md.Converter
	logger *slog.Logger
}

func NewConverter(logger *slog.Logger) *Converter {
	conv := md.NewConverter("", true, nil)
	// Each rule trims the content inside the delimiters, then restores a
	// separating space from the neighbor nodes. The surrounding whitespace
	// lives in sibling text nodes the library drops, so skipping the
	// AddSpaceIfNessesary step merges adjacent words.
	conv.AddRules(
		md.Rule{
			Filter: []string{"mark"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				trimmed := strings.TrimSpace(content)
				if trimmed == "" {
					return md.String("")
				}
				return md.String(md.AddSpaceIfNessesary(selec, "=="+trimmed+"=="))
			},
		},
		md.Rule{
			// Lossy on purpose: underline has no markdown form.
			Filter: []string{"u"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				trimmed := strings.TrimSpace(content)
				if trimmed == "" {
					return md.String("")
				}
				return md.String(md.AddSpaceIfNessesary(selec, "**"+trimmed+"**"))
			},
		},
		md.Rule{
			Filter: []string{"s", "strike", "del"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				trimmed := strings.TrimSpace(content)
				if trimmed == "" {
					return md.String("")
				}
				return md.String(md.AddSpaceIfNessesary(selec, "~~"+trimmed+"~~"))
			},
		},
	)
	return &Converter{conv: conv, logger: logger}
}

// HTMLToMarkdown converts rendered HTML to canonical markdown. Returns
// ConversionError on malformed input; callers fall back to
// ExtractPlainText rather than failing the edit.
func (c *Converter) HTMLToMarkdown(html string) (string, error) {
	out, err := c.conv.ConvertString(html)
	if err != nil {
		return "", &domain.ConversionError{Message: "convert html: " + err.Error()}
	}
	out = excessNewlinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out), nil
}

// MarkdownOrPlainText converts HTML to markdown, falling back to naive
// plain-text extraction when conversion fails. The fallback never errors.
func (c *Converter) MarkdownOrPlainText(html string) string {
	out, err := c.HTMLToMarkdown(html)
	if err != nil {
		c.logger.Warn("html conversion failed, extracting plain text", "error", err)
		return ExtractPlainText(html)
	}
	return out
}

// ExtractPlainText strips tags naively and returns the visible text. Used
// as the ConversionError fallback and for AI context assembly, where
// formatting noise only wastes tokens.
func ExtractPlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Last resort: drop everything between angle brackets.
		return strings.TrimSpace(regexp.MustCompile(`<[^>]*>`).ReplaceAllString(html, ""))
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text())
}

// HasLegacyHTML reports whether content looks like pre-migration HTML
// rather than markdown.
func HasLegacyHTML(content string) bool {
	return legacyHTMLRe.MatchString(content)
}

// MigrateLegacyContent upgrades HTML-era content to markdown. Markdown
// input passes through untouched, so the migration is idempotent.
func (c *Converter) MigrateLegacyContent(content string) (string, bool) {
	if !HasLegacyHTML(content) {
		return content, false
	}
	return c.MarkdownOrPlainText(content), true
}
