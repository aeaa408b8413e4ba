package markup

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	t.Run("highlight spans become tinted marks", func(t *testing.T) {
		html, err := r.Render("a ==hot== word", "#fff59d")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(html, `<mark style="background-color: #fff59d">hot</mark>`) {
			t.Errorf("mark element missing or untinted: %q", html)
		}
	})

	t.Run("adjacent highlights stay separate", func(t *testing.T) {
		html, err := r.Render("==one== ==two==", "#fff59d")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if strings.Count(html, "<mark") != 2 {
			t.Errorf("want two mark elements, got: %q", html)
		}
	})

	t.Run("strikethrough renders", func(t *testing.T) {
		html, err := r.Render("~~gone~~", "#fff59d")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(html, "<del>gone</del>") {
			t.Errorf("del element missing: %q", html)
		}
	})

	t.Run("headings and emphasis render", func(t *testing.T) {
		html, err := r.Render("# Title\n\nSome **bold** text", "#fff59d")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>bold</strong>") {
			t.Errorf("markdown structure missing: %q", html)
		}
	})

	t.Run("scripts are sanitized away", func(t *testing.T) {
		html, err := r.Render("hello <script>alert(1)</script> there", "#fff59d")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if strings.Contains(html, "<script") || strings.Contains(html, "alert(1)") {
			t.Errorf("script survived sanitization: %q", html)
		}
	})

	t.Run("hard wraps become line breaks", func(t *testing.T) {
		html, err := r.Render("line one\nline two", "#fff59d")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(html, "<br") {
			t.Errorf("single newline did not become a break: %q", html)
		}
	})
}
