// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

var (
	bracketGroup  = regexp.MustCompile(`\[([^\]]+)\]`)
	citationShape = regexp.MustCompile(`^(.*?)(\d+)\s*,\s*([A-Za-z0-9]+)\s*$`)
)

// Citation holds journal/volume/page metadata recovered from a bracketed
// citation stamp in a raw abstract. Text is set whenever a bracket was
// found; the structured fields only when its contents match the
// "<journal> <volume>, <pages>" shape.
type Citation struct {
	Journal string
	Volume  string
	Pages   string
	Text    string
}

// ParseCitation extracts the last bracketed group from a raw abstract
// and attempts to parse it as a journal citation. APS feeds append these
// stamps to the abstract field instead of using a structured citation
// element.
func ParseCitation(raw string) Citation {
	if raw == "" {
		return Citation{}
	}
	matches := bracketGroup.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return Citation{}
	}

	text := strings.TrimSpace(matches[len(matches)-1][1])
	c := Citation{Text: text}

	if m := citationShape.FindStringSubmatch(text); m != nil {
		c.Journal = strings.TrimSpace(m[1])
		c.Volume = strings.TrimSpace(m[2])
		c.Pages = strings.TrimSpace(m[3])
	}
	return c
}
