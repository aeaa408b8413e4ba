package annotate

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jvgags/Poe-Write/internal/domain"
)

// PreviewPhraseClass marks spans spliced into preview HTML around lexicon
// matches.
const PreviewPhraseClass = "preview-aiism"

// AnnotatePreviewHTML splices tooltip-carrying marker spans around every
// lexicon match in rendered preview HTML. Text inside script and style
// elements and inside spans spliced by a previous pass is skipped, which
// makes repeated passes idempotent.
func AnnotatePreviewHTML(htmlStr string, m *PhraseMatcher) (string, error) {
	if m == nil {
		return htmlStr, nil
	}
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", &domain.ConversionError{Message: "parse preview html: " + err.Error()}
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style:
				return
			case atom.Span:
				if hasClass(n, PreviewPhraseClass) {
					return
				}
			}
		}
		// Snapshot children first: splicing replaces text nodes in place.
		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}
		for _, c := range children {
			if c.Type == html.TextNode {
				spliceMatches(n, c, m)
			} else {
				walk(c)
			}
		}
	}
	walk(doc)
	return renderBody(doc)
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

// spliceMatches replaces one text node with alternating plain text nodes
// and marker spans around each lexicon match.
func spliceMatches(parent, textNode *html.Node, m *PhraseMatcher) {
	text := textNode.Data
	locs := m.matches(text)
	if len(locs) == 0 {
		return
	}
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[last:loc[0]]}, textNode)
		}
		matched := text[loc[0]:loc[1]]
		span := &html.Node{
			Type:     html.ElementNode,
			Data:     "span",
			DataAtom: atom.Span,
			Attr: []html.Attribute{
				{Key: "class", Val: PreviewPhraseClass},
				{Key: "title", Val: "AI-ism: " + matched},
			},
		}
		span.AppendChild(&html.Node{Type: html.TextNode, Data: matched})
		parent.InsertBefore(span, textNode)
		last = loc[1]
	}
	if last < len(text) {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[last:]}, textNode)
	}
	parent.RemoveChild(textNode)
}

// renderBody serializes the children of the parsed document's body,
// undoing the html/body wrapping html.Parse adds around fragments.
func renderBody(doc *html.Node) (string, error) {
	var body *html.Node
	var find func(n *html.Node)
	find = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if body == nil {
		return "", &domain.ConversionError{Message: "preview html has no body"}
	}
	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", &domain.ConversionError{Message: "render preview html: " + err.Error()}
		}
	}
	return buf.String(), nil
}
