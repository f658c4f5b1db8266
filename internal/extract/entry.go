// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls normalized fields (DOI, date, authors, link,
// abstract, citation) out of heterogeneous RSS/Atom entries. Feed
// dialects disagree on where metadata lives, so every extractor walks an
// ordered list of recognized keys and returns an explicit absent value
// when nothing matches.
package extract

import (
	"html"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// Entry is a capability layer over one parsed feed item. It exposes the
// candidate values for each logical field in lookup-priority order,
// covering the plain item fields, Dublin Core, and the PRISM extension
// namespace used by journal publishers.
type Entry struct {
	Item *gofeed.Item
}

// Title returns the entry title, trimmed and with entities decoded.
func (e Entry) Title() string {
	return strings.TrimSpace(html.UnescapeString(e.Item.Title))
}

// RawSummary returns the abstract text as the feed delivers it:
// the description, falling back to the first content block.
func (e Entry) RawSummary() string {
	if e.Item.Description != "" {
		return e.Item.Description
	}
	return e.Item.Content
}

// RawLink returns the entry's primary link: the link field, falling back
// to the first entry of the link list.
func (e Entry) RawLink() string {
	if e.Item.Link != "" {
		return e.Item.Link
	}
	if len(e.Item.Links) > 0 {
		return e.Item.Links[0]
	}
	return ""
}

// GUID returns the entry identifier (the Atom <id> for arXiv entries).
func (e Entry) GUID() string {
	return e.Item.GUID
}

// LinkHrefs returns all link values carried by the entry.
func (e Entry) LinkHrefs() []string {
	return e.Item.Links
}

// identifierCandidates returns metadata values that may embed a DOI, in
// lookup priority: PRISM doi, the arXiv Atom doi, a custom doi field,
// Dublin Core identifiers, then the raw GUID.
func (e Entry) identifierCandidates() []string {
	var out []string
	out = append(out, e.extension("prism", "doi")...)
	out = append(out, e.extension("arxiv", "doi")...)
	out = append(out, e.custom("doi")...)
	if dc := e.Item.DublinCoreExt; dc != nil {
		out = append(out, dc.Identifier...)
	}
	if e.Item.GUID != "" {
		out = append(out, e.Item.GUID)
	}
	return out
}

// textCandidates returns the abstract-bearing fields scanned after the
// identifier fields.
func (e Entry) textCandidates() []string {
	var out []string
	if e.Item.Description != "" {
		out = append(out, e.Item.Description)
	}
	if e.Item.Content != "" {
		out = append(out, e.Item.Content)
	}
	return out
}

// dateStrings returns raw date strings from the well-known item fields.
func (e Entry) dateStrings() []string {
	var out []string
	if e.Item.Updated != "" {
		out = append(out, e.Item.Updated)
	}
	if e.Item.Published != "" {
		out = append(out, e.Item.Published)
	}
	return out
}

// vendorDateStrings returns values from the secondary, vendor-specific
// date keys: dc:date, prism:publicationDate, and an "issued" custom
// field some publishers emit.
func (e Entry) vendorDateStrings() []string {
	var out []string
	if dc := e.Item.DublinCoreExt; dc != nil {
		out = append(out, dc.Date...)
	}
	out = append(out, e.extension("prism", "publicationDate")...)
	out = append(out, e.custom("issued")...)
	return out
}

// extension returns the values of one extension element, e.g.
// ("prism", "publicationDate").
func (e Entry) extension(space, name string) []string {
	exts, ok := e.Item.Extensions[space]
	if !ok {
		return nil
	}
	return extensionValues(exts[name])
}

// custom returns the values of a non-namespaced custom field.
func (e Entry) custom(name string) []string {
	if v, ok := e.Item.Custom[name]; ok && v != "" {
		return []string{v}
	}
	return nil
}

func extensionValues(elems []ext.Extension) []string {
	var out []string
	for _, el := range elems {
		if el.Value != "" {
			out = append(out, el.Value)
		}
	}
	return out
}
