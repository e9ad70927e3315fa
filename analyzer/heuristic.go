package analyzer

import (
	"fmt"

	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// Heuristic thresholds.
const (
	largeImageDim = 1000 // px, either dimension beyond this is "oversized"
	minParagraphs = 3
)

// Heuristic computes a deterministic AnalysisResult directly from the
// extracted content and assets — no network, no model. It serves both
// as the fallback when no AI credential is configured and as ground
// truth for tests. Rules are independent; any subset may fire, and
// every fired rule appends one issue and one companion recommendation.
func Heuristic(content *models.PageContent, assets *models.Assets) models.AnalysisResult {
	result := models.AnalysisResult{
		Visual: models.VisualReport{
			ExitPoints:      []string{},
			DesignIssues:    []string{},
			Recommendations: []string{},
		},
		Assets: models.AssetReport{
			PerformanceIssues:   []string{},
			AccessibilityIssues: []string{},
			Recommendations:     []string{},
		},
		Content: models.ContentReport{
			SEOIssues:       []string{},
			ContentIssues:   []string{},
			Recommendations: []string{},
		},
	}

	// Images without alternative text.
	missingAlt := 0
	for _, img := range assets.Images {
		if img.Alt == "" {
			missingAlt++
		}
	}
	if missingAlt > 0 {
		result.Assets.AccessibilityIssues = append(result.Assets.AccessibilityIssues,
			fmt.Sprintf("%d images are missing alt text", missingAlt))
		result.Assets.Recommendations = append(result.Assets.Recommendations,
			"Add descriptive alt text to every image for accessibility and SEO")
	}

	// Oversized images.
	oversized := 0
	for _, img := range assets.Images {
		if img.Width > largeImageDim && img.Height > largeImageDim {
			oversized++
		}
	}
	if oversized > 0 {
		result.Assets.PerformanceIssues = append(result.Assets.PerformanceIssues,
			fmt.Sprintf("%d images are larger than %dx%d pixels", oversized, largeImageDim, largeImageDim))
		result.Assets.Recommendations = append(result.Assets.Recommendations,
			"Serve resized and compressed variants of oversized images")
	}

	// Heading structure.
	if len(content.Headings) == 0 {
		result.Content.ContentIssues = append(result.Content.ContentIssues,
			"Page has no headings")
		result.Content.Recommendations = append(result.Content.Recommendations,
			"Add a heading hierarchy to structure the page content")
	}

	// Exactly one H1 is correct; zero and multiple are distinct issues.
	h1Count := 0
	for _, h := range content.Headings {
		if h.Level == 1 {
			h1Count++
		}
	}
	switch {
	case h1Count == 0:
		result.Content.ContentIssues = append(result.Content.ContentIssues,
			"Page is missing an H1 heading")
		result.Content.Recommendations = append(result.Content.Recommendations,
			"Add a single descriptive H1 heading")
	case h1Count > 1:
		result.Content.ContentIssues = append(result.Content.ContentIssues,
			fmt.Sprintf("Page has %d H1 headings; exactly one is expected", h1Count))
		result.Content.Recommendations = append(result.Content.Recommendations,
			"Keep exactly one H1 and demote the others to H2/H3")
	}

	// Meta description.
	if content.Metadata.Description == "" {
		result.Content.SEOIssues = append(result.Content.SEOIssues,
			"Page is missing a meta description")
		result.Content.Recommendations = append(result.Content.Recommendations,
			"Add a meta description of roughly 50-160 characters")
	}

	// Body text volume.
	if len(content.Paragraphs) < minParagraphs {
		result.Content.ContentIssues = append(result.Content.ContentIssues,
			fmt.Sprintf("Page has only %d paragraphs of body text", len(content.Paragraphs)))
		result.Content.Recommendations = append(result.Content.Recommendations,
			"Add more descriptive body content for readers and search engines")
	}

	return result
}
