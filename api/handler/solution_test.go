package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

type fakeSolver struct {
	solution  string
	lastIssue string
}

func (f *fakeSolver) Solve(_ context.Context, issue string) string {
	f.lastIssue = issue
	return f.solution
}

func postSolution(t *testing.T, s Solver, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/api/generate-solution", GenerateSolution(s))

	req := httptest.NewRequest(http.MethodPost, "/api/generate-solution", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateSolution_Success(t *testing.T) {
	s := &fakeSolver{solution: "add alt text"}
	w := postSolution(t, s, `{"issue":"3 images are missing alt text"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.SolutionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Solution != "add alt text" {
		t.Errorf("solution = %q", resp.Solution)
	}
	if s.lastIssue != "3 images are missing alt text" {
		t.Errorf("solver received issue %q", s.lastIssue)
	}
}

func TestGenerateSolution_EmptyIssue(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"empty string", `{"issue":""}`},
		{"whitespace only", `{"issue":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postSolution(t, &fakeSolver{}, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}

			var resp models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Error != "Issue is required" {
				t.Errorf("error = %q, want %q", resp.Error, "Issue is required")
			}
		})
	}
}

func TestGenerateSolution_MalformedBody(t *testing.T) {
	w := postSolution(t, &fakeSolver{}, `not json at all`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
