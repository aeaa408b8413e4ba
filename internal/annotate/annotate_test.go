package annotate

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/markup"
)

func TestComputeHighlights(t *testing.T) {
	t.Run("one span yields three decorations", func(t *testing.T) {
		decs := ComputeHighlights("a ==hot== word", "#fff59d")
		if len(decs) != 3 {
			t.Fatalf("decorations = %d, want 3", len(decs))
		}
		if decs[0].Kind != markup.DecorationHidden || decs[0].Start != 2 || decs[0].End != 4 {
			t.Errorf("opening marker = %+v", decs[0])
		}
		if decs[1].Kind != markup.DecorationHighlight || decs[1].Start != 4 || decs[1].End != 7 {
			t.Errorf("inner span = %+v", decs[1])
		}
		if decs[1].Color != "#fff59d" {
			t.Errorf("color = %q", decs[1].Color)
		}
		if decs[2].Kind != markup.DecorationHidden || decs[2].Start != 7 || decs[2].End != 9 {
			t.Errorf("closing marker = %+v", decs[2])
		}
	})

	t.Run("adjacent spans stay separate", func(t *testing.T) {
		decs := ComputeHighlights("==a== ==b==", "#fff59d")
		if len(decs) != 6 {
			t.Errorf("decorations = %d, want 6", len(decs))
		}
	})

	t.Run("unclosed marker matches nothing", func(t *testing.T) {
		if decs := ComputeHighlights("==dangling", "#fff59d"); len(decs) != 0 {
			t.Errorf("decorations = %d, want 0", len(decs))
		}
	})
}

func TestParseLexicon(t *testing.T) {
	tests := []struct {
		name    string
		lexicon string
		want    []string
	}{
		{
			name:    "comments and blanks skipped",
			lexicon: "# a comment\n\ntapestry\n",
			want:    []string{"tapestry"},
		},
		{
			name:    "bold header lines skipped",
			lexicon: "**Transitional phrases:**\nlittle did he know",
			want:    []string{"little did he know"},
		},
		{
			name:    "comma lines split into synonyms",
			lexicon: "dance, dances, dancing",
			want:    []string{"dance", "dances", "dancing"},
		},
		{
			name:    "dash prefix and quotes stripped",
			lexicon: `- "a testament to"`,
			want:    []string{"a testament to"},
		},
		{
			name:    "trailing parenthetical note stripped",
			lexicon: "delve (overused verb)",
			want:    []string{"delve"},
		},
		{
			name:    "parenthetical kept inside comma groups",
			lexicon: "shivers down, spine (and variants)",
			want:    []string{"shivers down", "spine (and variants)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLexicon(tt.lexicon)
			if len(got) != len(tt.want) {
				t.Fatalf("phrases = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("phrases = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestPhraseMatcher(t *testing.T) {
	t.Run("empty lexicon yields nil matcher", func(t *testing.T) {
		m := NewPhraseMatcher("# only comments\n")
		if m != nil {
			t.Fatal("matcher not nil for empty lexicon")
		}
		if decs := m.Find("anything"); decs != nil {
			t.Errorf("nil matcher returned decorations: %v", decs)
		}
	})

	t.Run("case insensitive with word boundaries", func(t *testing.T) {
		m := NewPhraseMatcher("tapestry")
		decs := m.Find("A Tapestry of tapestries")
		if len(decs) != 1 {
			t.Fatalf("decorations = %d, want 1 (no match inside 'tapestries')", len(decs))
		}
		if decs[0].Start != 2 || decs[0].End != 10 {
			t.Errorf("match = [%d, %d), want [2, 10)", decs[0].Start, decs[0].End)
		}
		if decs[0].Tooltip != "AI-ism: Tapestry" {
			t.Errorf("tooltip = %q", decs[0].Tooltip)
		}
	})

	t.Run("longer phrase wins over its prefix", func(t *testing.T) {
		m := NewPhraseMatcher("testament\na testament to")
		decs := m.Find("it was a testament to effort")
		if len(decs) != 1 {
			t.Fatalf("decorations = %d, want 1", len(decs))
		}
		if got := decs[0].End - decs[0].Start; got != len("a testament to") {
			t.Errorf("match length = %d, want the longer phrase", got)
		}
	})
}

func TestDefaultLexiconParses(t *testing.T) {
	phrases := ParseLexicon(DefaultLexicon)
	if len(phrases) == 0 {
		t.Fatal("built-in lexicon parsed to nothing")
	}
	for _, p := range phrases {
		if strings.HasPrefix(p, "**") || strings.HasPrefix(p, "#") {
			t.Errorf("header leaked into phrases: %q", p)
		}
	}
}

func newOverlay(t *testing.T, text, lexicon string) (*markup.Buffer, *Engine) {
	t.Helper()
	buf := markup.NewBuffer(text)
	e := NewEngine(buf, "#fff59d", lexicon, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.SetDebounce(0)
	return buf, e
}

func TestEngineChapterOnlyPhrases(t *testing.T) {
	buf, e := newOverlay(t, "a tapestry of sound", "tapestry")

	e.SetDocumentType(models.TypeNotes)
	if decs := buf.Decorations(LayerPhrases); len(decs) != 0 {
		t.Errorf("phrase layer on a Notes document: %v", decs)
	}

	e.SetDocumentType(models.TypeChapter)
	if decs := buf.Decorations(LayerPhrases); len(decs) != 1 {
		t.Errorf("phrase layer on a Chapter document = %d, want 1", len(decs))
	}
}

func TestEngineRecomputesAllLayers(t *testing.T) {
	buf, e := newOverlay(t, "==hot== tapestry", "tapestry")
	e.SetDocumentType(models.TypeChapter)
	e.SetQuery("hot")
	e.Recompute()

	if decs := buf.Decorations(LayerHighlight); len(decs) != 3 {
		t.Errorf("highlight layer = %d, want 3", len(decs))
	}
	if decs := buf.Decorations(LayerPhrases); len(decs) != 1 {
		t.Errorf("phrase layer = %d, want 1", len(decs))
	}
	if decs := buf.Decorations(LayerSearch); len(decs) != 1 {
		t.Errorf("search layer = %d, want 1", len(decs))
	}
}

func TestSearchNavigation(t *testing.T) {
	_, e := newOverlay(t, "aaa bcd AA", "")

	t.Run("overlapping matches counted", func(t *testing.T) {
		current, total := e.SetQuery("aa")
		if total != 2 {
			t.Fatalf("total = %d, want 2 (overlapping in 'aaa')", total)
		}
		if current != 1 {
			t.Errorf("current = %d, want 1", current)
		}
	})

	t.Run("matching is case sensitive", func(t *testing.T) {
		if _, total := e.SetQuery("AA"); total != 1 {
			t.Errorf("total = %d, want only the upper-case match", total)
		}
		e.SetQuery("aa")
	})

	t.Run("next wraps around", func(t *testing.T) {
		e.FindNext()
		current, _ := e.FindNext()
		if current != 1 {
			t.Errorf("current after full cycle = %d, want 1", current)
		}
	})

	t.Run("prev wraps backward", func(t *testing.T) {
		current, _ := e.FindPrev()
		if current != 2 {
			t.Errorf("current = %d, want 2", current)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		current, total := e.SetQuery("zzz")
		if current != 0 || total != 0 {
			t.Errorf("(current, total) = (%d, %d), want (0, 0)", current, total)
		}
	})
}

func TestSearchOffsetsMultibyteText(t *testing.T) {
	text := "İstanbul cat nap"
	buf, e := newOverlay(t, text, "")

	if _, total := e.SetQuery("cat"); total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	decs := buf.Decorations(LayerSearch)
	if len(decs) != 1 {
		t.Fatalf("search layer = %d, want 1", len(decs))
	}
	if got := text[decs[0].Start:decs[0].End]; got != "cat" {
		t.Errorf("decorated range = %q, want %q (offsets [%d %d])", got, "cat", decs[0].Start, decs[0].End)
	}
	if want := len("İstanbul "); decs[0].Start != want {
		t.Errorf("start = %d, want %d", decs[0].Start, want)
	}
}

func TestSearchCurrentMatchDecoration(t *testing.T) {
	buf, e := newOverlay(t, "one two one", "")
	e.SetQuery("one")
	e.FindNext()

	decs := buf.Decorations(LayerSearch)
	if len(decs) != 2 {
		t.Fatalf("search layer = %d, want 2", len(decs))
	}
	if decs[0].Kind != markup.DecorationMatch || decs[1].Kind != markup.DecorationCurrentMatch {
		t.Errorf("kinds = %q, %q; the second match should be active", decs[0].Kind, decs[1].Kind)
	}
}

func TestReplaceCurrent(t *testing.T) {
	buf, e := newOverlay(t, "red fish, red boat", "")
	e.SetQuery("red")

	if !e.ReplaceCurrent("blue") {
		t.Fatal("ReplaceCurrent = false with an active match")
	}
	if got := buf.Text(); got != "blue fish, red boat" {
		t.Errorf("text = %q", got)
	}

	e.ClearSearch()
	if e.ReplaceCurrent("green") {
		t.Error("ReplaceCurrent = true after ClearSearch")
	}
}

func TestReplaceAll(t *testing.T) {
	t.Run("replaces every match", func(t *testing.T) {
		buf, e := newOverlay(t, "red fish, red boat, red sky", "")
		e.SetQuery("red")
		if n := e.ReplaceAll("blue"); n != 3 {
			t.Errorf("replaced = %d, want 3", n)
		}
		if got := buf.Text(); got != "blue fish, blue boat, blue sky" {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("overlapping matches replaced non-overlapping", func(t *testing.T) {
		buf, e := newOverlay(t, "aaaa", "")
		e.SetQuery("aa")
		if n := e.ReplaceAll("b"); n != 2 {
			t.Errorf("replaced = %d, want 2", n)
		}
		if got := buf.Text(); got != "bb" {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("no query", func(t *testing.T) {
		_, e := newOverlay(t, "text", "")
		if n := e.ReplaceAll("x"); n != 0 {
			t.Errorf("replaced = %d, want 0", n)
		}
	})
}

func TestAnnotatePreviewHTML(t *testing.T) {
	m := NewPhraseMatcher("tapestry")

	t.Run("wraps matches in marker spans", func(t *testing.T) {
		out, err := AnnotatePreviewHTML("<p>A tapestry of sound</p>", m)
		if err != nil {
			t.Fatalf("AnnotatePreviewHTML: %v", err)
		}
		want := `<span class="preview-aiism" title="AI-ism: tapestry">tapestry</span>`
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want it to contain %q", out, want)
		}
		if !strings.HasPrefix(out, "<p>") {
			t.Errorf("fragment wrapping leaked into output: %q", out)
		}
	})

	t.Run("second pass is a no-op", func(t *testing.T) {
		once, err := AnnotatePreviewHTML("<p>A tapestry of sound</p>", m)
		if err != nil {
			t.Fatalf("first pass: %v", err)
		}
		twice, err := AnnotatePreviewHTML(once, m)
		if err != nil {
			t.Fatalf("second pass: %v", err)
		}
		if once != twice {
			t.Errorf("second pass changed output:\n%q\n%q", once, twice)
		}
	})

	t.Run("nil matcher passes through", func(t *testing.T) {
		in := "<p>A tapestry of sound</p>"
		out, err := AnnotatePreviewHTML(in, nil)
		if err != nil {
			t.Fatalf("AnnotatePreviewHTML: %v", err)
		}
		if out != in {
			t.Errorf("output = %q, want unchanged", out)
		}
	})

	t.Run("matches across elements stay untouched", func(t *testing.T) {
		// The phrase is split across two elements; per-text-node matching
		// must not stitch them together.
		out, err := AnnotatePreviewHTML("<p>tape<em>stry</em></p>", m)
		if err != nil {
			t.Fatalf("AnnotatePreviewHTML: %v", err)
		}
		if strings.Contains(out, PreviewPhraseClass) {
			t.Errorf("split phrase was marked: %q", out)
		}
	})
}
