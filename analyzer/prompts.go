package analyzer

import (
	"fmt"
	"strings"

	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// The prompts pin the model to the labeled-section format the narrative
// parser expects. The reply is still parsed defensively: a dropped or
// renamed section simply yields an empty list.

const visualSystemPrompt = `You are a senior UX and conversion reviewer. You are given a full-page screenshot of a website. Critique its visual design.

Respond in plain text with exactly these labeled sections, one finding per line, no markdown:

Exit Points:
<places where a visitor is likely to abandon the page>

Design Issues:
<layout, spacing, contrast, hierarchy or consistency problems>

Recommendations:
<concrete improvements, one per line>

If a section has no findings, leave it empty but keep the label.`

const assetSystemPrompt = `You are a web performance and accessibility auditor. You are given statistics about the assets loaded by a page. Critique them.

Respond in plain text with exactly these labeled sections, one finding per line, no markdown:

Performance Issues:
<asset weight, count or loading problems>

Accessibility Issues:
<alt text, media and form accessibility problems>

Recommendations:
<concrete improvements, one per line>

If a section has no findings, leave it empty but keep the label.`

const contentSystemPrompt = `You are an SEO and content strategist. You are given statistics about a page's text content plus a markdown digest of its body. Critique them.

Respond in plain text with exactly these labeled sections, one finding per line, no markdown:

SEO Issues:
<metadata, heading structure and indexability problems>

Content Issues:
<thin, unclear or poorly structured copy>

Recommendations:
<concrete improvements, one per line>

If a section has no findings, leave it empty but keep the label.`

const solutionSystemPrompt = `You are a pragmatic web developer. Given one reported website issue, reply with a short, actionable fix: what to change and how, in two to four sentences of plain text. No markdown, no preamble.`

// assetStats renders the extracted asset collections as compact
// statistics for the asset prompt.
func assetStats(a *models.Assets) string {
	missingAlt := 0
	oversized := 0
	for _, img := range a.Images {
		if img.Alt == "" {
			missingAlt++
		}
		if img.Width > largeImageDim && img.Height > largeImageDim {
			oversized++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Images: %d (%d missing alt text, %d larger than %dx%d)\n",
		len(a.Images), missingAlt, oversized, largeImageDim, largeImageDim)
	fmt.Fprintf(&b, "Stylesheets: %d\n", len(a.Stylesheets))
	fmt.Fprintf(&b, "Scripts: %d\n", len(a.Scripts))
	fmt.Fprintf(&b, "Videos: %d\n", len(a.Videos))
	fmt.Fprintf(&b, "Fonts: %d\n", len(a.Fonts))

	const maxListed = 20
	for i, img := range a.Images {
		if i == maxListed {
			fmt.Fprintf(&b, "... and %d more images\n", len(a.Images)-maxListed)
			break
		}
		fmt.Fprintf(&b, "image %s alt=%q %dx%d\n", img.Src, img.Alt, int(img.Width), int(img.Height))
	}
	return b.String()
}

// contentStats renders the extracted content collections as compact
// statistics for the content prompt.
func contentStats(c *models.PageContent) string {
	h1 := 0
	for _, h := range c.Headings {
		if h.Level == 1 {
			h1++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %q\n", c.Metadata.Title)
	fmt.Fprintf(&b, "Meta description: %q\n", c.Metadata.Description)
	fmt.Fprintf(&b, "Meta keywords: %q\n", c.Metadata.Keywords)
	fmt.Fprintf(&b, "Headings: %d (%d H1)\n", len(c.Headings), h1)
	for _, h := range c.Headings {
		fmt.Fprintf(&b, "h%d: %s\n", h.Level, h.Text)
	}
	fmt.Fprintf(&b, "Paragraphs: %d\n", len(c.Paragraphs))
	fmt.Fprintf(&b, "Lists: %d\n", len(c.Lists))
	fmt.Fprintf(&b, "Buttons: %d\n", len(c.Buttons))
	fmt.Fprintf(&b, "Forms: %d\n", len(c.Forms))
	fmt.Fprintf(&b, "Navigation blocks: %d\n", len(c.Navs))
	return b.String()
}
