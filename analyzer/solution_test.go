package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rohitmenonhart-xhunter/starweb-p1/llm"
)

type scriptedChat struct {
	reply string
	err   error
}

func (s *scriptedChat) Complete(_ context.Context, _ llm.Request) (string, error) {
	return s.reply, s.err
}

func TestSolver_UsesAIWhenAvailable(t *testing.T) {
	s := NewSolver(&scriptedChat{reply: "resize the hero image"}, time.Second)

	got := s.Solve(context.Background(), "Hero image is 4MB")
	if got != "resize the hero image" {
		t.Errorf("Solve = %q, want the AI reply", got)
	}
}

func TestSolver_NilClientFallsBackToStatic(t *testing.T) {
	s := NewSolver(nil, time.Second)

	got := s.Solve(context.Background(), "3 images are missing alt text")
	if !strings.Contains(got, "alt") {
		t.Errorf("Solve = %q, want the static alt-text solution", got)
	}
}

func TestSolver_AIFailureFallsBackToStatic(t *testing.T) {
	s := NewSolver(&scriptedChat{err: errors.New("rate limited")}, time.Second)

	got := s.Solve(context.Background(), "Page is missing a meta description")
	if !strings.Contains(got, "meta name=\"description\"") {
		t.Errorf("Solve = %q, want the static meta-description solution", got)
	}
}

func TestStaticSolution_KeywordMatching(t *testing.T) {
	tests := []struct {
		name  string
		issue string
		want  string // substring the matched solution must contain
	}{
		{"alt text", "Images are missing ALT TEXT", "alt attribute"},
		{"meta description", "no meta description found", "meta name=\"description\""},
		{"h1", "Page has 3 H1 headings", "exactly one H1"},
		{"heading before generic", "heading levels are skipped", "heading hierarchy"},
		{"image", "oversized image on homepage", "WebP"},
		{"form", "form fields lack labels", "<label>"},
		{"contrast", "low contrast footer text", "contrast ratio"},
		{"link", "broken link in nav", "descriptive text"},
		{"content", "content is too thin", "body copy"},
		{"generic fallback", "something odd happened", "developer tools"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := staticSolution(tt.issue)
			if !strings.Contains(got, tt.want) {
				t.Errorf("staticSolution(%q) = %q, want substring %q", tt.issue, got, tt.want)
			}
		})
	}
}

func TestStaticSolution_H1TakesPriorityOverHeading(t *testing.T) {
	// "h1" appears in the chain before "heading", so an issue mentioning
	// both gets the H1 answer.
	got := staticSolution("H1 heading is missing")
	if !strings.Contains(got, "exactly one H1") {
		t.Errorf("staticSolution = %q, want the H1 solution", got)
	}
}
