// Package extract turns a navigated, fully scrolled page into typed
// content, asset, and link records, each annotated with its bounding
// box at capture time. Missing elements are never errors: every absent
// collection resolves to an empty one, so downstream code never
// special-cases absence.
package extract

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// fontFileExt matches URLs of font files referenced by preload or
// stylesheet links.
var fontFileExt = regexp.MustCompile(`(?i)\.(woff2?|ttf|otf|eot)(\?|#|$)`)

// Extraction is everything pulled from one page.
type Extraction struct {
	Content models.PageContent
	Assets  models.Assets

	// Links is the raw anchor set with boxes, absolute URLs,
	// unparseable hrefs dropped.
	Links []models.Link

	// SiteLinks is the deduplicated same-site subset of Links, in
	// first-occurrence order.
	SiteLinks []string
}

// Extractor queries a finalized page render through the PageQuery
// capability. Queries run sequentially against the same render state.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract pulls all records from the page. pageURL is the base for
// resolving relative hrefs and the reference for same-site
// classification.
func (e *Extractor) Extract(ctx context.Context, q PageQuery, pageURL string) *Extraction {
	ex := &Extraction{
		Content: models.PageContent{
			Headings:   []models.Heading{},
			Paragraphs: []models.Paragraph{},
			Lists:      []models.ListBlock{},
			Buttons:    []models.Button{},
			Forms:      []models.Form{},
			Navs:       []models.Nav{},
		},
		Assets: models.Assets{
			Images:      []models.Image{},
			Stylesheets: []models.Stylesheet{},
			Scripts:     []models.Script{},
			Videos:      []models.Video{},
			Fonts:       []models.Font{},
		},
		Links:     []models.Link{},
		SiteLinks: []string{},
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		slog.Warn("extract: unparseable page URL, links will be skipped", "url", pageURL, "error", err)
		base = nil
	}

	e.extractHeadings(ctx, q, ex)
	e.extractParagraphs(ctx, q, ex)
	e.extractLists(ctx, q, ex)
	e.extractImages(ctx, q, ex)
	e.extractVideos(ctx, q, ex)
	e.extractScripts(ctx, q, ex)
	e.extractStylesheetsAndFonts(ctx, q, ex)
	e.extractButtons(ctx, q, ex)
	e.extractForms(ctx, q, ex)
	e.extractNavs(ctx, q, ex)
	e.extractFooter(ctx, q, ex)
	e.extractMetadata(ctx, q, ex)
	if base != nil {
		e.extractLinks(ctx, q, ex, base)
	}

	return ex
}

// queryAll wraps PageQuery.QueryAll with the null-object policy: a
// query failure logs and yields no elements instead of aborting the
// extraction.
func queryAll(ctx context.Context, q PageQuery, selector string) []ElementInfo {
	els, err := q.QueryAll(ctx, selector)
	if err != nil {
		slog.Warn("extract: query failed", "selector", selector, "error", err)
		return nil
	}
	return els
}

func (e *Extractor) extractHeadings(ctx context.Context, q PageQuery, ex *Extraction) {
	for _, el := range queryAll(ctx, q, "h1, h2, h3, h4, h5, h6") {
		text := strings.TrimSpace(el.Text)
		if text == "" {
			continue
		}
		level := 0
		if len(el.Tag) == 2 && (el.Tag[0] == 'h' || el.Tag[0] == 'H') {
			level, _ = strconv.Atoi(el.Tag[1:])
		}
		if level < 1 || level > 6 {
			continue
		}
		ex.Content.Headings = append(ex.Content.Headings, models.Heading{
			Text:  text,
			Level: level,
			Box:   sanitizeBox(el.Box),
		})
	}
}

func (e *Extractor) extractParagraphs(ctx context.Context, q PageQuery, ex *Extraction) {
	for _, el := range queryAll(ctx, q, "p") {
		text := strings.TrimSpace(el.Text)
		if text == "" {
			continue
		}
		ex.Content.Paragraphs = append(ex.Content.Paragraphs, models.Paragraph{
			Text: text,
			Box:  sanitizeBox(el.Box),
		})
	}
}

func (e *Extractor) extractLists(ctx context.Context, q PageQuery, ex *Extraction) {
	for _, el := range queryAll(ctx, q, "ul, ol") {
		items := splitLines(el.Text)
		if len(items) == 0 {
			continue
		}
		kind := "unordered"
		if strings.EqualFold(el.Tag, "ol") {
			kind = "ordered"
		}
		ex.Content.Lists = append(ex.Content.Lists, models.ListBlock{
			Items: items,
			Kind:  kind,
			Box:   sanitizeBox(el.Box),
		})
	}
}

func (e *Extractor) extractImages(ctx context.Context, q PageQuery, ex *Extraction) {
	for _, el := range queryAll(ctx, q, "img") {
		src := el.Attr("src")
		if src == "" {
			continue
		}
		ex.Assets.Images = append(ex.Assets.Images, models.Image{
			Src:    src,
			Alt:    strings.TrimSpace(el.Attr("alt")),
			Width:  parseDim(el.Attr("width")),
			Height: parseDim(el.Attr("height")),
			Box:    sanitizeBox(el.Box),
		})
	}
}

func (e *Extractor) extractVideos(ctx context.Context, q PageQuery, ex *Extraction) {
	for _, el := range queryAll(ctx, q, "video") {
		ex.Assets.Videos = append(ex.Assets.Videos, models.Video{
			Src:    el.Attr("src"),
			Poster: el.Attr("poster"),
			Box:    sanitizeBox(el.Box),
		})
	}
}

func (e *Extractor) extractScripts(ctx context.Context, q PageQuery, ex *Extraction) {
	for _, el := range queryAll(ctx, q, "script") {
		src := el.Attr("src")
		ex.Assets.Scripts = append(ex.Assets.Scripts, models.Script{
			Src:    src,
			Inline: src == "",
		})
	}
}

// extractStylesheetsAndFonts walks the head links once. Font detection
// is limited to preload/stylesheet links whose URL matches a font-file
// extension.
func (e *Extractor) extractStylesheetsAndFonts(ctx context.Context, q PageQuery, ex *Extraction) {
	for _, el := range queryAll(ctx, q, "link[rel=stylesheet], link[rel=preload]") {
		href := el.Attr("href")
		if href == "" {
			continue
		}
		rel := strings.ToLower(el.Attr("rel"))

		if rel == "stylesheet" {
			ex.Assets.Stylesheets = append(ex.Assets.Stylesheets, models.Stylesheet{Href: href})
		}
		if fontFileExt.MatchString(href) {
			source := "stylesheet"
			if rel == "preload" {
				source = "preload"
			}
			ex.Assets.Fonts = append(ex.Assets.Fonts, models.Font{URL: href, Source: source})
		}
	}
}

func (e *Extractor) extractButtons(ctx context.Context, q PageQuery, ex *Extraction) {
	for _, el := range queryAll(ctx, q, `button, [role=button], input[type=submit], input[type=button]`) {
		text := strings.TrimSpace(el.Text)
		if text == "" {
			text = strings.TrimSpace(el.Attr("value"))
		}
		ex.Content.Buttons = append(ex.Content.Buttons, models.Button{
			Text: text,
			Box:  sanitizeBox(el.Box),
		})
	}
}

// extractForms associates inputs to their form by box containment: the
// capability exposes flat element lists, and an input's center point
// lies inside exactly the form that renders it.
func (e *Extractor) extractForms(ctx context.Context, q PageQuery, ex *Extraction) {
	forms := queryAll(ctx, q, "form")
	if len(forms) == 0 {
		return
	}
	inputs := queryAll(ctx, q, "form input, form select, form textarea")

	records := make([]models.Form, len(forms))
	for i, f := range forms {
		records[i] = models.Form{Inputs: []models.FormInput{}, Box: sanitizeBox(f.Box)}
	}

	for _, in := range inputs {
		idx := containingForm(forms, in.Box)
		typ := strings.ToLower(in.Attr("type"))
		if typ == "" {
			switch strings.ToLower(in.Tag) {
			case "select":
				typ = "select"
			case "textarea":
				typ = "textarea"
			default:
				typ = "text"
			}
		}
		_, required := in.Attrs["required"]
		records[idx].Inputs = append(records[idx].Inputs, models.FormInput{
			Type:        typ,
			Placeholder: in.Attr("placeholder"),
			Required:    required,
		})
	}

	ex.Content.Forms = records
}

// containingForm returns the index of the form whose box contains the
// input's center, defaulting to the first form.
func containingForm(forms []ElementInfo, box models.BoundingBox) int {
	cx := box.X + box.Width/2
	cy := box.Y + box.Height/2
	for i, f := range forms {
		b := f.Box
		if cx >= b.X && cx <= b.X+b.Width && cy >= b.Y && cy <= b.Y+b.Height {
			return i
		}
	}
	return 0
}

func (e *Extractor) extractNavs(ctx context.Context, q PageQuery, ex *Extraction) {
	for _, el := range queryAll(ctx, q, "nav") {
		items := splitLines(el.Text)
		ex.Content.Navs = append(ex.Content.Navs, models.Nav{
			Items: items,
			Box:   sanitizeBox(el.Box),
		})
	}
}

func (e *Extractor) extractFooter(ctx context.Context, q PageQuery, ex *Extraction) {
	footers := queryAll(ctx, q, "footer")
	if len(footers) == 0 {
		return
	}
	ex.Content.Footer = &models.Footer{
		Text: strings.TrimSpace(footers[0].Text),
		Box:  sanitizeBox(footers[0].Box),
	}
}

func (e *Extractor) extractMetadata(ctx context.Context, q PageQuery, ex *Extraction) {
	if titles := queryAll(ctx, q, "title"); len(titles) > 0 {
		ex.Content.Metadata.Title = strings.TrimSpace(titles[0].Text)
	}

	for _, el := range queryAll(ctx, q, "meta") {
		content := el.Attr("content")
		if content == "" {
			continue
		}
		switch strings.ToLower(el.Attr("name")) {
		case "description":
			ex.Content.Metadata.Description = content
		case "keywords":
			ex.Content.Metadata.Keywords = content
		}
		switch strings.ToLower(el.Attr("property")) {
		case "og:title":
			ex.Content.Metadata.OGTitle = content
		case "og:description":
			ex.Content.Metadata.OGDescription = content
		case "og:image":
			ex.Content.Metadata.OGImage = content
		}
	}
}

// extractLinks resolves anchor hrefs to absolute URLs (dropping
// unparseable ones), keeps the raw set with boxes, and computes the
// deduplicated same-site subset.
func (e *Extractor) extractLinks(ctx context.Context, q PageQuery, ex *Extraction, base *url.URL) {
	seen := make(map[string]struct{})

	for _, el := range queryAll(ctx, q, "a[href]") {
		href := strings.TrimSpace(el.Attr("href"))
		if href == "" {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			continue
		}
		absStr := abs.String()

		ex.Links = append(ex.Links, models.Link{
			URL:  absStr,
			Text: strings.TrimSpace(el.Text),
			Box:  sanitizeBox(el.Box),
		})

		if sameSite(base, abs) {
			if _, dup := seen[absStr]; !dup {
				seen[absStr] = struct{}{}
				ex.SiteLinks = append(ex.SiteLinks, absStr)
			}
		}
	}
}

// sameSite compares registrable domains (eTLD+1), so www.example.com
// and blog.example.com count as the same site. Hosts without a public
// suffix (IPs, localhost) fall back to exact-host comparison.
func sameSite(a, b *url.URL) bool {
	ha := strings.ToLower(a.Hostname())
	hb := strings.ToLower(b.Hostname())
	if ha == "" || hb == "" {
		return false
	}
	da, errA := publicsuffix.EffectiveTLDPlusOne(ha)
	db, errB := publicsuffix.EffectiveTLDPlusOne(hb)
	if errA != nil || errB != nil {
		return ha == hb
	}
	return da == db
}

// splitLines breaks rendered multi-line text into trimmed, non-empty
// lines.
func splitLines(text string) []string {
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseDim parses a numeric dimension attribute, tolerating a "px"
// suffix. Unparseable values resolve to 0.
func parseDim(v string) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
