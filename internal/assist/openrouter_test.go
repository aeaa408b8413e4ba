package assist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jvgags/Poe-Write/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenRouterProvider(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotReq CompletionRequest
		var gotAuth, gotReferer, gotTitle string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotReferer = r.Header.Get("HTTP-Referer")
			gotTitle = r.Header.Get("X-Title")
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Errorf("decode request: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"  Once upon a time.  "}}]}`)
		}))
		defer srv.Close()

		p := NewOpenRouterProvider(srv.URL, "sk-test", "http://localhost:8080", "Poe Write", discardLogger())
		got, err := p.Complete(context.Background(), CompletionRequest{
			Model:     "anthropic/claude-3.5-sonnet",
			Messages:  []Message{{Role: "user", Content: "hi"}},
			MaxTokens: 100,
		})
		if err != nil {
			t.Fatalf("Complete: %v", err)
		}
		if got != "Once upon a time." {
			t.Errorf("content = %q, want trimmed completion", got)
		}
		if gotAuth != "Bearer sk-test" {
			t.Errorf("Authorization = %q", gotAuth)
		}
		if gotReferer != "http://localhost:8080" || gotTitle != "Poe Write" {
			t.Errorf("attribution headers = %q, %q", gotReferer, gotTitle)
		}
		if gotReq.Model != "anthropic/claude-3.5-sonnet" || len(gotReq.Messages) != 1 {
			t.Errorf("forwarded request = %+v", gotReq)
		}
	})

	t.Run("missing key fails before any request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request sent despite missing key")
		}))
		defer srv.Close()

		p := NewOpenRouterProvider(srv.URL, "", "", "", discardLogger())
		_, err := p.Complete(context.Background(), CompletionRequest{})
		if !errors.Is(err, domain.ErrAuth) {
			t.Errorf("err = %v, want auth error", err)
		}
	})

	t.Run("rejected credential", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		p := NewOpenRouterProvider(srv.URL, "sk-bad", "", "", discardLogger())
		_, err := p.Complete(context.Background(), CompletionRequest{})
		if !errors.Is(err, domain.ErrAuth) {
			t.Errorf("err = %v, want auth error", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		p := NewOpenRouterProvider(srv.URL, "sk-test", "", "", discardLogger())
		_, err := p.Complete(context.Background(), CompletionRequest{})
		if !errors.Is(err, domain.ErrRequest) {
			t.Errorf("err = %v, want request error", err)
		}
	})

	t.Run("malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"choices":[]}`)
		}))
		defer srv.Close()

		p := NewOpenRouterProvider(srv.URL, "sk-test", "", "", discardLogger())
		_, err := p.Complete(context.Background(), CompletionRequest{})
		if !errors.Is(err, domain.ErrRequest) {
			t.Errorf("err = %v, want request error", err)
		}
	})
}

func TestLoremProvider(t *testing.T) {
	p := NewLoremProvider()
	got, err := p.Complete(context.Background(), CompletionRequest{MaxTokens: 500})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got == "" {
		t.Fatal("empty placeholder text")
	}
}
