package analyzer

import (
	"regexp"
	"strings"
)

// Section labels the narrative parser knows about, per category. The
// model is asked to answer with exactly these sections; its reply is
// still treated as untrusted free text.
var (
	visualLabels  = []string{"Exit Points:", "Design Issues:", "Recommendations:"}
	assetLabels   = []string{"Performance Issues:", "Accessibility Issues:", "Recommendations:"}
	contentLabels = []string{"SEO Issues:", "Content Issues:", "Recommendations:"}
)

// ordinalPrefix strips leading "1. " / "2) " style numbering.
var ordinalPrefix = regexp.MustCompile(`^\d+[.)]\s+`)

// SplitSections splits one free-text narrative organized as consecutive
// labeled sections into ordered per-section line lists, parallel to
// labels. For each label the text between it and the next known label
// (or end of text) is taken via non-greedy, newline-inclusive matching.
//
// A missing label yields an empty list, never an error: omission means
// "no issues of this kind". A list item that itself contains a known
// label is ambiguous and swallows the following lines — a documented
// limitation of labeled-section splitting.
func SplitSections(text string, labels []string) [][]string {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	boundary := "(?:" + strings.Join(quoted, "|") + `|\z)`

	out := make([][]string, len(labels))
	for i, label := range labels {
		re, err := regexp.Compile(`(?is)` + regexp.QuoteMeta(label) + `(.*?)` + boundary)
		if err != nil {
			out[i] = []string{}
			continue
		}
		m := re.FindStringSubmatch(text)
		if m == nil {
			out[i] = []string{}
			continue
		}
		out[i] = cleanLines(m[1])
	}
	return out
}

// cleanLines splits a section body on line breaks, trims, drops pure
// bullet-marker lines, strips bullet markers and ordinals, and drops
// empties. Model order is preserved.
func cleanLines(body string) []string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "-*•"))
		line = ordinalPrefix.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
