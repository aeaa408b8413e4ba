package markup

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/jvgags/Poe-Write/internal/domain"
)

// highlightSyntaxRe matches the ==text== highlight spans. The inner text
// may not contain '=' so that adjacent highlights never merge.
var highlightSyntaxRe = regexp.MustCompile(`==([^=]+)==`)

// Renderer produces the sanitized preview HTML for a canonical markdown
// string. Highlight syntax is pre-converted to inline-styled mark elements
// before the markdown pass so the sanitizer sees real elements, not source
// text.
type Renderer struct {
	gm     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	gm := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough),
		goldmark.WithRendererOptions(
			// Raw HTML must pass through for the injected mark elements;
			// bluemonday is the safety boundary, not the renderer.
			ghtml.WithUnsafe(),
			ghtml.WithHardWraps(),
		),
	)
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("mark", "u")
	policy.AllowStyles("background-color").OnElements("mark")
	return &Renderer{gm: gm, policy: policy}
}

// Render converts canonical markdown to sanitized editable HTML, tinting
// highlight spans with highlightColor.
func (r *Renderer) Render(markdown, highlightColor string) (string, error) {
	pre := highlightSyntaxRe.ReplaceAllString(markdown,
		fmt.Sprintf(`<mark style="background-color: %s">$1</mark>`, highlightColor))
	var buf bytes.Buffer
	if err := r.gm.Convert([]byte(pre), &buf); err != nil {
		return "", &domain.ConversionError{Message: "render markdown: " + err.Error()}
	}
	return r.policy.Sanitize(buf.String()), nil
}
