package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rohitmenonhart-xhunter/starweb-p1/cache"
	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePipeline struct {
	result *models.FullAnalysis
	err    error
	calls  int
}

func (f *fakePipeline) Analyze(_ context.Context, url string) (*models.FullAnalysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &models.FullAnalysis{
		MainPage: models.PageAnalysis{URL: url, Title: "Fake"},
	}, nil
}

func postAnalyze(t *testing.T, p Pipeline, cc *cache.Cache, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/analyze", Analyze(p, cc, WebhookSink{}))

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyze_Success(t *testing.T) {
	p := &fakePipeline{}
	w := postAnalyze(t, p, nil, `{"url":"https://example.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp models.FullAnalysis
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.MainPage.URL != "https://example.com" {
		t.Errorf("mainPage.url = %q", resp.MainPage.URL)
	}
	if p.calls != 1 {
		t.Errorf("pipeline calls = %d, want 1", p.calls)
	}
}

func TestAnalyze_MalformedBody(t *testing.T) {
	p := &fakePipeline{}
	w := postAnalyze(t, p, nil, `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if p.calls != 0 {
		t.Errorf("pipeline was called for a malformed body")
	}
}

func TestAnalyze_InvalidScheme(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"ftp", "ftp://example.com"},
		{"no scheme", "example.com"},
		{"empty", ""},
		{"javascript", "javascript:alert(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePipeline{}
			w := postAnalyze(t, p, nil, `{"url":`+jsonString(tt.url)+`}`)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}

			var resp models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal error body: %v", err)
			}
			if resp.Error != "Invalid URL format" {
				t.Errorf("error = %q, want %q", resp.Error, "Invalid URL format")
			}
			// Rejection happens before any capture work.
			if p.calls != 0 {
				t.Error("pipeline was called for an invalid URL")
			}
		})
	}
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestAnalyze_PipelineErrorSurfaces(t *testing.T) {
	p := &fakePipeline{
		err: models.NewAuditError(models.ErrCodeNavigation, "target returned HTTP 404", nil),
	}
	w := postAnalyze(t, p, nil, `{"url":"https://example.com/missing"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if resp.Error != "target returned HTTP 404" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestAnalyze_CacheHitSkipsPipeline(t *testing.T) {
	p := &fakePipeline{}
	cc := cache.New(10, time.Minute)

	w1 := postAnalyze(t, p, cc, `{"url":"https://example.com"}`)
	if w1.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w1.Code)
	}

	w2 := postAnalyze(t, p, cc, `{"url":"https://example.com"}`)
	if w2.Code != http.StatusOK {
		t.Fatalf("second request status = %d", w2.Code)
	}

	if p.calls != 1 {
		t.Errorf("pipeline calls = %d, want 1 (second request served from cache)", p.calls)
	}
}
