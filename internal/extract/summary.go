// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

var (
	// arxivPreamble matches the header arXiv prepends to RSS abstracts:
	// "arXiv:2408.01234v2 [cond-mat.str-el] Announce Type: new Abstract:".
	arxivPreamble = regexp.MustCompile(`(?i)^\s*arXiv:\d{4}\.\d{4,5}(?:v\d+)?(?:\s+\[[^\]]+\])?(?:\s+Announce Type:\s*\w+)?(?:\s*New)?\s*(?:Abstract:)?\s*`)

	tagPattern = regexp.MustCompile(`<[^>]+>`)
	wsPattern  = regexp.MustCompile(`\s+`)

	// citationStamp matches the APS trailing annotation:
	// "[Phys. Rev. Lett. 136, 031001] Published Wed Jan 21, 2026".
	citationStamp = regexp.MustCompile(`(?i)\[[^\]]+\]\s*(?:Published|Accepted|Updated)\b.*$`)

	authorsLabel     = regexp.MustCompile(`(?i)^(?:authors?|author\(s\))\s*:`)
	afterAuthors     = regexp.MustCompile(`(?i)^[\s,.;:–—-]*(?:and)?\s*`)
	sentenceBoundary = regexp.MustCompile(`\.\s+| {2,}`)

	leadingDOI      = regexp.MustCompile(`(?i)^\s*DOI:\s*\S+\s*`)
	trailingBracket = regexp.MustCompile(`\s*\[[^\]]+\]\s*$`)
)

// CleanSummary normalizes a raw abstract. The steps run in a fixed
// order, each on the previous step's output: strip the arXiv preamble,
// strip HTML tags and collapse whitespace, strip the trailing publisher
// citation stamp, strip a leading "Author(s): ..." prefix, strip a
// leading bare "DOI: ..." token, and strip any trailing bracketed
// citation remnant.
func CleanSummary(raw string, authors []string) string {
	s := arxivPreamble.ReplaceAllString(raw, "")

	s = tagPattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(wsPattern.ReplaceAllString(s, " "))

	s = strings.TrimSpace(citationStamp.ReplaceAllString(s, ""))

	s = stripAuthorsPrefix(s, authors)

	s = leadingDOI.ReplaceAllString(s, "")

	return strings.TrimSpace(trailingBracket.ReplaceAllString(s, ""))
}

// stripAuthorsPrefix removes a leading "Author(s): A, B, and C" prefix.
// The end of the prefix is found by locating the last supplied author
// name within the first 300 characters; when no name matches, the text
// after the first sentence boundary or double space is returned.
func stripAuthorsPrefix(text string, authors []string) string {
	s := strings.TrimLeft(text, " \t\r\n")
	if !authorsLabel.MatchString(s) {
		return text
	}

	lastEnd := -1
	low := strings.ToLower(s)
	for _, name := range authors {
		nm := strings.TrimSpace(name)
		if nm == "" {
			continue
		}
		pos := strings.Index(low, strings.ToLower(nm))
		if pos >= 0 && pos < 300 && pos+len(nm) > lastEnd {
			lastEnd = pos + len(nm)
		}
	}
	if lastEnd > 0 {
		return afterAuthors.ReplaceAllString(s[lastEnd:], "")
	}

	if m := sentenceBoundary.FindStringIndex(s); m != nil {
		return s[m[1]:]
	}
	return s
}
