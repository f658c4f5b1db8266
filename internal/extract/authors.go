// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

var (
	andSeparator = regexp.MustCompile(`(?i)\s+and\s+`)
	leadingAnd   = regexp.MustCompile(`(?i)^and\s+`)
)

// Authors returns the entry's author names in feed order. A structured
// author list is preferred; a lone author value that is really a
// combined string ("A, B, and C", as APS RSS emits) is split into
// discrete names.
func Authors(e Entry) []string {
	var names []string
	for _, a := range e.Item.Authors {
		if a == nil {
			continue
		}
		if nm := strings.TrimSpace(a.Name); nm != "" {
			names = append(names, nm)
		}
	}
	if len(names) > 1 {
		return names
	}
	if len(names) == 1 {
		return SplitAuthorString(names[0])
	}
	if e.Item.Author != nil {
		return SplitAuthorString(e.Item.Author.Name)
	}
	return nil
}

// SplitAuthorString converts a free-text author string like
// "A, B, and C" into ["A", "B", "C"]. Leading "and" tokens are stripped
// regardless of where the split left them.
func SplitAuthorString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = andSeparator.ReplaceAllString(s, ", ")
	s = strings.ReplaceAll(s, ", and ", ", ")

	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(leadingAnd.ReplaceAllString(strings.TrimSpace(p), ""))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
