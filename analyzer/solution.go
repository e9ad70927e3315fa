package analyzer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/rohitmenonhart-xhunter/starweb-p1/llm"
)

// Solver turns one reported issue into a short fix suggestion. It
// always answers: AI failures degrade through keyword-matched static
// solutions down to a generic fallback, never an error.
type Solver struct {
	client  ChatClient // nil when no AI credential is configured
	timeout time.Duration
}

// NewSolver creates a Solver. A nil client skips the AI entirely.
func NewSolver(client ChatClient, timeout time.Duration) *Solver {
	return &Solver{client: client, timeout: timeout}
}

// Solve returns a fix suggestion for the issue.
func (s *Solver) Solve(ctx context.Context, issue string) string {
	if s.client != nil {
		reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		text, err := s.client.Complete(reqCtx, llm.Request{
			System: solutionSystemPrompt,
			User:   issue,
		})
		if err == nil {
			return text
		}
		slog.Warn("solution generation failed, using static fallback", "error", err)
	}
	return staticSolution(issue)
}

// staticSolution is the deterministic fallback chain: keyword-matched
// canned fixes first, a generic suggestion last.
func staticSolution(issue string) string {
	lower := strings.ToLower(issue)

	switch {
	case strings.Contains(lower, "alt text") || strings.Contains(lower, "alt attribute"):
		return "Add a descriptive alt attribute to every meaningful image and an empty alt=\"\" to purely decorative ones, so screen readers and search engines can interpret the page."
	case strings.Contains(lower, "meta description"):
		return "Add a <meta name=\"description\"> tag of roughly 50-160 characters that summarizes the page; it drives the snippet shown in search results."
	case strings.Contains(lower, "h1"):
		return "Use exactly one H1 per page describing its main topic, and structure the rest of the content with H2/H3 subheadings in order."
	case strings.Contains(lower, "heading"):
		return "Introduce a clear heading hierarchy: one H1 for the page topic, H2s for sections, H3s for subsections, without skipping levels."
	case strings.Contains(lower, "image") || strings.Contains(lower, "performance"):
		return "Resize images to the dimensions they are displayed at, serve them in a modern format such as WebP or AVIF, and add loading=\"lazy\" to below-the-fold images."
	case strings.Contains(lower, "form"):
		return "Label every form input with an associated <label>, mark required fields, and show inline validation messages close to the field they concern."
	case strings.Contains(lower, "contrast") || strings.Contains(lower, "color"):
		return "Increase the contrast ratio between text and its background to at least 4.5:1 for body text, and verify it with an accessibility contrast checker."
	case strings.Contains(lower, "link"):
		return "Give every link a descriptive text instead of \"click here\", verify its target, and visually distinguish links from surrounding text."
	case strings.Contains(lower, "content") || strings.Contains(lower, "paragraph"):
		return "Expand the page with substantive, well-structured body copy: short paragraphs, descriptive subheadings, and content that answers the visitor's likely questions."
	default:
		return "Review this issue against current web best practices: confirm the problem in the browser's developer tools, apply the smallest fix that resolves it, and re-run the audit to verify."
	}
}
