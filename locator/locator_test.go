package locator

import (
	"testing"

	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

func box(x, y float64) models.BoundingBox {
	return models.BoundingBox{X: x, Y: y, Width: 100, Height: 20}
}

func linkSet(n int) []models.Link {
	links := make([]models.Link, n)
	for i := range links {
		links[i] = models.Link{URL: "https://example.com", Box: box(float64(i), 0)}
	}
	return links
}

func TestResolve_ExitPointUsesLinkAtIndex(t *testing.T) {
	links := linkSet(3)

	got, ok := Resolve(Ref{Category: models.CategoryExitPoint, Index: 1},
		&models.PageContent{}, &models.Assets{}, links)

	if !ok || got != links[1].Box {
		t.Errorf("Resolve = %v, %v; want link[1] box", got, ok)
	}
}

func TestResolve_IndexClampsToLastElement(t *testing.T) {
	links := linkSet(2)

	got, ok := Resolve(Ref{Category: models.CategoryExitPoint, Index: 99},
		&models.PageContent{}, &models.Assets{}, links)

	if !ok || got != links[1].Box {
		t.Errorf("Resolve with out-of-range index = %v, %v; want last link box", got, ok)
	}
}

func TestResolve_NegativeIndexClampsToFirst(t *testing.T) {
	links := linkSet(2)

	got, ok := Resolve(Ref{Category: models.CategoryExitPoint, Index: -5},
		&models.PageContent{}, &models.Assets{}, links)

	if !ok || got != links[0].Box {
		t.Errorf("Resolve with negative index = %v, %v; want first link box", got, ok)
	}
}

func TestResolve_DesignIssueUsesImageAtIndex(t *testing.T) {
	assets := &models.Assets{Images: []models.Image{
		{Src: "/a.png", Box: box(10, 10)},
		{Src: "/b.png", Box: box(20, 20)},
	}}

	got, ok := Resolve(Ref{Category: models.CategoryDesignIssue, Index: 1},
		&models.PageContent{}, assets, nil)

	if !ok || got != assets.Images[1].Box {
		t.Errorf("Resolve = %v, %v; want image[1] box", got, ok)
	}
}

func TestResolve_PerformanceMentionRouting(t *testing.T) {
	assets := &models.Assets{
		Images: []models.Image{{Src: "/a.png", Box: box(1, 1)}},
		Videos: []models.Video{{Src: "/v.mp4", Box: box(2, 2)}},
	}

	tests := []struct {
		name  string
		issue string
		want  models.BoundingBox
	}{
		{"image mention", "oversized image detected", assets.Images[0].Box},
		{"video mention", "autoplaying video slows load", assets.Videos[0].Box},
		{"no mention defaults to image", "page is slow", assets.Images[0].Box},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(Ref{Issue: tt.issue, Category: models.CategoryPerformance},
				&models.PageContent{}, assets, nil)
			if !ok || got != tt.want {
				t.Errorf("Resolve(%q) = %v, %v; want %v", tt.issue, got, ok, tt.want)
			}
		})
	}
}

func TestResolve_AccessibilityMentionRouting(t *testing.T) {
	content := &models.PageContent{
		Forms: []models.Form{{Box: box(1, 1)}},
		Navs:  []models.Nav{{Box: box(2, 2)}},
	}
	assets := &models.Assets{Images: []models.Image{{Src: "/a.png", Box: box(3, 3)}}}

	tests := []struct {
		name  string
		issue string
		want  models.BoundingBox
	}{
		{"form mention", "form inputs lack labels", content.Forms[0].Box},
		{"image mention", "image without alt", assets.Images[0].Box},
		{"navigation mention", "navigation not keyboard reachable", content.Navs[0].Box},
		{"default image", "poor screen reader support", assets.Images[0].Box},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(Ref{Issue: tt.issue, Category: models.CategoryAccessibility},
				content, assets, nil)
			if !ok || got != tt.want {
				t.Errorf("Resolve(%q) = %v, %v; want %v", tt.issue, got, ok, tt.want)
			}
		})
	}
}

func TestResolve_SEOMentionRouting(t *testing.T) {
	content := &models.PageContent{
		Headings:   []models.Heading{{Text: "H", Level: 1, Box: box(1, 1)}},
		Paragraphs: []models.Paragraph{{Text: "p", Box: box(2, 2)}},
	}

	tests := []struct {
		name  string
		issue string
		want  models.BoundingBox
	}{
		{"heading mention", "heading structure is flat", content.Headings[0].Box},
		{"content mention", "duplicate content detected", content.Paragraphs[0].Box},
		{"default heading", "missing canonical tag", content.Headings[0].Box},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(Ref{Issue: tt.issue, Category: models.CategorySEO},
				content, &models.Assets{}, nil)
			if !ok || got != tt.want {
				t.Errorf("Resolve(%q) = %v, %v; want %v", tt.issue, got, ok, tt.want)
			}
		})
	}
}

func TestResolve_ContentPrefersParagraphsThenHeadings(t *testing.T) {
	withParagraphs := &models.PageContent{
		Headings:   []models.Heading{{Text: "H", Level: 1, Box: box(1, 1)}},
		Paragraphs: []models.Paragraph{{Text: "p", Box: box(2, 2)}},
	}
	got, ok := Resolve(Ref{Category: models.CategoryContent}, withParagraphs, &models.Assets{}, nil)
	if !ok || got != withParagraphs.Paragraphs[0].Box {
		t.Errorf("Resolve = %v, %v; want paragraph box", got, ok)
	}

	headingsOnly := &models.PageContent{
		Headings: []models.Heading{{Text: "H", Level: 1, Box: box(1, 1)}},
	}
	got, ok = Resolve(Ref{Category: models.CategoryContent}, headingsOnly, &models.Assets{}, nil)
	if !ok || got != headingsOnly.Headings[0].Box {
		t.Errorf("Resolve without paragraphs = %v, %v; want heading box", got, ok)
	}
}

func TestResolve_OtherCategoryKeywordSniffing(t *testing.T) {
	content := &models.PageContent{
		Navs:       []models.Nav{{Box: box(1, 1)}},
		Paragraphs: []models.Paragraph{{Text: "p", Box: box(2, 2)}},
	}
	assets := &models.Assets{Images: []models.Image{{Src: "/a.png", Box: box(3, 3)}}}
	links := linkSet(1)

	tests := []struct {
		name  string
		issue string
		want  models.BoundingBox
	}{
		{"navigation", "confusing navigation layout", content.Navs[0].Box},
		{"image", "blurry image in header", assets.Images[0].Box},
		{"link", "dead link found", links[0].Box},
		{"text", "text is hard to read", content.Paragraphs[0].Box},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(Ref{Issue: tt.issue, Category: models.CategoryOther},
				content, assets, links)
			if !ok || got != tt.want {
				t.Errorf("Resolve(%q) = %v, %v; want %v", tt.issue, got, ok, tt.want)
			}
		})
	}
}

func TestResolve_FallbackChainOrder(t *testing.T) {
	// An exit-point ref with no links falls through to the chain, which
	// prefers images first.
	assets := &models.Assets{Images: []models.Image{{Src: "/a.png", Box: box(5, 5)}}}
	got, ok := Resolve(Ref{Category: models.CategoryExitPoint},
		&models.PageContent{}, assets, nil)
	if !ok || got != assets.Images[0].Box {
		t.Errorf("Resolve = %v, %v; want image box from fallback chain", got, ok)
	}

	// Without images, headings are next.
	content := &models.PageContent{Headings: []models.Heading{{Text: "H", Level: 2, Box: box(6, 6)}}}
	got, ok = Resolve(Ref{Category: models.CategoryExitPoint}, content, &models.Assets{}, nil)
	if !ok || got != content.Headings[0].Box {
		t.Errorf("Resolve = %v, %v; want heading box from fallback chain", got, ok)
	}

	// Videos are the chain's last resort.
	assets = &models.Assets{Videos: []models.Video{{Src: "/v.mp4", Box: box(7, 7)}}}
	got, ok = Resolve(Ref{Category: models.CategoryExitPoint}, &models.PageContent{}, assets, nil)
	if !ok || got != assets.Videos[0].Box {
		t.Errorf("Resolve = %v, %v; want video box from fallback chain", got, ok)
	}
}

func TestResolve_NotFoundOnlyWhenEverythingEmpty(t *testing.T) {
	_, ok := Resolve(Ref{Issue: "anything", Category: models.CategorySEO},
		&models.PageContent{}, &models.Assets{}, nil)
	if ok {
		t.Error("Resolve on fully empty collections should report not found")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		index, length int
		want          int
	}{
		{"in range", 1, 3, 1},
		{"zero", 0, 3, 0},
		{"last", 2, 3, 2},
		{"past end", 7, 3, 2},
		{"negative", -1, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clamp(tt.index, tt.length); got != tt.want {
				t.Errorf("clamp(%d, %d) = %d, want %d", tt.index, tt.length, got, tt.want)
			}
		})
	}
}
