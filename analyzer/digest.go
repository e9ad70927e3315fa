package analyzer

import (
	"log/slog"
	nurl "net/url"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	readability "github.com/go-shiori/go-readability"
)

// maxDigestRunes caps the markdown digest attached to the content
// prompt so a long page never blows the model's context.
const maxDigestRunes = 8000

// minArticleLength is the minimum readability TextContent length for
// the extraction to be considered successful; below it the raw HTML is
// converted instead.
const minArticleLength = 50

// ContentDigest converts the rendered page HTML into a capped markdown
// digest for the content-category prompt. Readability isolates the main
// body first; when it fails or finds too little, the full HTML is
// converted. A digest is an enrichment, never a requirement — on total
// failure an empty string is returned and the prompt carries statistics
// only.
func ContentDigest(rawHTML, pageURL string) string {
	source := rawHTML

	if parsed, err := nurl.Parse(pageURL); err == nil {
		article, err := readability.FromReader(strings.NewReader(rawHTML), parsed)
		if err == nil && len(strings.TrimSpace(article.TextContent)) >= minArticleLength {
			source = article.Content
		}
	}

	md, err := htmltomarkdown.ConvertString(source)
	if err != nil {
		slog.Warn("content digest: markdown conversion failed", "error", err)
		return ""
	}

	md = strings.TrimSpace(md)
	if utf8.RuneCountInString(md) > maxDigestRunes {
		runes := []rune(md)
		md = string(runes[:maxDigestRunes])
	}
	return md
}
