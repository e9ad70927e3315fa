package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rohitmenonhart-xhunter/starweb-p1/config"
	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.AIConfig{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: srv.URL,
		Timeout: time.Second,
	}, srv.Client())
}

func chatReply(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestClient_Complete(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(chatReply("  Design Issues:\nnone  ")))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	got, err := c.Complete(context.Background(), Request{System: "sys", User: "user"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if got != "Design Issues:\nnone" {
		t.Errorf("content = %q, want trimmed reply", got)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody.Model != "test-model" || gotBody.Temperature != 0 {
		t.Errorf("request body = %+v", gotBody)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
}

func TestClient_CompleteWithImage(t *testing.T) {
	var rawBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&rawBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(chatReply("ok")))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	if _, err := c.Complete(context.Background(), Request{
		System:   "sys",
		User:     "critique this",
		ImagePNG: []byte{0x89, 'P', 'N', 'G'},
	}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	messages := rawBody["messages"].([]any)
	userMsg := messages[1].(map[string]any)
	parts, ok := userMsg["content"].([]any)
	if !ok || len(parts) != 2 {
		t.Fatalf("user content = %v, want two content parts", userMsg["content"])
	}
	imgPart := parts[1].(map[string]any)
	urlObj := imgPart["image_url"].(map[string]any)
	if !strings.HasPrefix(urlObj["url"].(string), "data:image/png;base64,") {
		t.Errorf("image url = %q, want a data URL", urlObj["url"])
	}
}

func TestClient_APIErrorsClassified(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"unauthorized", 401, `{"error":{"message":"bad key"}}`, "AI authentication failed"},
		{"rate limited", 429, `{"error":{"message":"slow down"}}`, "AI rate limited"},
		{"server error", 500, `oops`, "AI API returned 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv).Complete(context.Background(), Request{User: "u"})
			if err == nil {
				t.Fatal("expected an error")
			}

			var auditErr *models.AuditError
			if !errors.As(err, &auditErr) {
				t.Fatalf("error type = %T", err)
			}
			if auditErr.Code != models.ErrCodeAIFailure {
				t.Errorf("code = %q", auditErr.Code)
			}
			if !strings.Contains(auditErr.Message, tt.wantMsg) {
				t.Errorf("message = %q, want substring %q", auditErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClient_EmptyChoicesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).Complete(context.Background(), Request{User: "u"}); err == nil {
		t.Error("expected an error for empty choices")
	}
}

func TestClient_EmptyContentIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("   ")))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).Complete(context.Background(), Request{User: "u"}); err == nil {
		t.Error("expected an error for empty content")
	}
}
