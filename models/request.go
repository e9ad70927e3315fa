package models

import "strings"

// AnalyzeRequest is the payload for POST /analyze.
type AnalyzeRequest struct {
	// URL is the page to audit. Must be non-empty and start with
	// http:// or https://.
	URL string `json:"url"`
}

// ValidURL reports whether the request URL passes the scheme check.
// Rejection happens before any browser work.
func (r *AnalyzeRequest) ValidURL() bool {
	u := strings.TrimSpace(r.URL)
	return u != "" && (strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://"))
}

// SolutionRequest is the payload for POST /api/generate-solution.
type SolutionRequest struct {
	// Issue is the reported issue text to generate a fix for.
	Issue string `json:"issue"`
}

// LocateRequest is the payload for POST /api/locate-issue.
//
// Analyses are never persisted server-side, so the caller posts back
// the collections it received in the PageAnalysis together with a
// tagged issue reference {issue, category, index}.
type LocateRequest struct {
	Issue    string        `json:"issue"`
	Category IssueCategory `json:"category"`
	Index    int           `json:"index"`
	Content  PageContent   `json:"content"`
	Assets   Assets        `json:"assets"`
	Links    []Link        `json:"links"`
}
