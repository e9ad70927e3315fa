// Package locator maps an abstract issue reference back to a bounding
// box on the captured screenshot. Resolution is pure and deterministic:
// a per-category priority rule first, then a fixed fallback chain over
// the element kinds, then "no location".
package locator

import (
	"strings"

	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// Ref is a tagged issue reference: the issue text, which category list
// it came from, and its ordinal index within that list.
type Ref struct {
	Issue    string
	Category models.IssueCategory
	Index    int
}

// Resolve maps ref to a bounding box over the given page collections.
// The second return is false when no element of any kind exists to
// anchor the issue to — the caller renders a generic indicator.
//
// Index clamping via min(index, last) is a deliberate tie-break: once a
// category's element list is exhausted, every further issue collapses
// onto the last element rather than failing.
func Resolve(ref Ref, content *models.PageContent, assets *models.Assets, links []models.Link) (models.BoundingBox, bool) {
	if box, ok := resolveByCategory(ref, content, assets, links); ok {
		return box, true
	}
	return fallbackChain(content, assets, links)
}

func resolveByCategory(ref Ref, content *models.PageContent, assets *models.Assets, links []models.Link) (models.BoundingBox, bool) {
	switch ref.Category {
	case models.CategoryExitPoint:
		if len(links) > 0 {
			return links[clamp(ref.Index, len(links))].Box, true
		}

	case models.CategoryDesignIssue:
		if len(assets.Images) > 0 {
			return assets.Images[clamp(ref.Index, len(assets.Images))].Box, true
		}

	case models.CategoryPerformance:
		switch {
		case mentions(ref.Issue, "image") && len(assets.Images) > 0:
			return assets.Images[0].Box, true
		case mentions(ref.Issue, "video") && len(assets.Videos) > 0:
			return assets.Videos[0].Box, true
		case len(assets.Images) > 0:
			return assets.Images[0].Box, true
		}

	case models.CategoryAccessibility:
		switch {
		case mentions(ref.Issue, "form") && len(content.Forms) > 0:
			return content.Forms[0].Box, true
		case mentions(ref.Issue, "image") && len(assets.Images) > 0:
			return assets.Images[0].Box, true
		case mentions(ref.Issue, "navigation") && len(content.Navs) > 0:
			return content.Navs[0].Box, true
		case len(assets.Images) > 0:
			return assets.Images[0].Box, true
		}

	case models.CategorySEO:
		switch {
		case mentions(ref.Issue, "heading") && len(content.Headings) > 0:
			return content.Headings[0].Box, true
		case mentions(ref.Issue, "content") && len(content.Paragraphs) > 0:
			return content.Paragraphs[0].Box, true
		case len(content.Headings) > 0:
			return content.Headings[0].Box, true
		}

	case models.CategoryContent:
		if len(content.Paragraphs) > 0 {
			return content.Paragraphs[clamp(ref.Index, len(content.Paragraphs))].Box, true
		}
		if len(content.Headings) > 0 {
			return content.Headings[clamp(ref.Index, len(content.Headings))].Box, true
		}

	default: // CategoryOther and anything unrecognized
		switch {
		case mentions(ref.Issue, "navigation") && len(content.Navs) > 0:
			return content.Navs[0].Box, true
		case mentions(ref.Issue, "image") && len(assets.Images) > 0:
			return assets.Images[0].Box, true
		case mentions(ref.Issue, "link") && len(links) > 0:
			return links[0].Box, true
		case (mentions(ref.Issue, "content") || mentions(ref.Issue, "text")) && len(content.Paragraphs) > 0:
			return content.Paragraphs[0].Box, true
		}
	}

	return models.BoundingBox{}, false
}

// fallbackChain tries the element kinds in fixed order when the
// category rule yields nothing.
func fallbackChain(content *models.PageContent, assets *models.Assets, links []models.Link) (models.BoundingBox, bool) {
	switch {
	case len(assets.Images) > 0:
		return assets.Images[0].Box, true
	case len(content.Headings) > 0:
		return content.Headings[0].Box, true
	case len(content.Paragraphs) > 0:
		return content.Paragraphs[0].Box, true
	case len(links) > 0:
		return links[0].Box, true
	case len(content.Forms) > 0:
		return content.Forms[0].Box, true
	case len(content.Navs) > 0:
		return content.Navs[0].Box, true
	case len(assets.Videos) > 0:
		return assets.Videos[0].Box, true
	}
	return models.BoundingBox{}, false
}

// clamp bounds index into [0, length-1].
func clamp(index, length int) int {
	if index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}

func mentions(issue, keyword string) bool {
	return strings.Contains(strings.ToLower(issue), keyword)
}
