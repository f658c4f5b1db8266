// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup computes publication identity keys and tracks which
// identities a build run has already ingested. Two records with equal
// keys are the same publication; the first ingested wins all fields.
package dedup

import (
	"regexp"
	"strings"
)

// Kind tags the identity space a key was drawn from.
type Kind string

const (
	KindDOI   Kind = "doi"
	KindArxiv Kind = "arxiv"
	KindLink  Kind = "link"
)

// arxivIDPattern matches a modern arXiv identifier, with an optional
// version suffix that is not part of the identity.
var arxivIDPattern = regexp.MustCompile(`(\d{4}\.\d{4,5})(?:v\d+)?`)

// Key is a normalized publication identity.
type Key struct {
	Kind  Kind
	Value string
}

// Compute derives the dedup key for a record. Priority: DOI when
// present, else an arXiv identifier embedded in the link, else the link
// itself. Values are lowercased so case variants collapse.
func Compute(doi, link string) Key {
	if doi != "" {
		return Key{Kind: KindDOI, Value: strings.ToLower(doi)}
	}
	if m := arxivIDPattern.FindStringSubmatch(link); m != nil {
		return Key{Kind: KindArxiv, Value: strings.ToLower(m[1])}
	}
	return Key{Kind: KindLink, Value: strings.ToLower(link)}
}

// Set tracks the keys seen during one build run. It is owned by the
// merge engine and shared across all feed ingestions, so overlap
// between feeds collapses naturally.
type Set map[Key]struct{}

// NewSet returns an empty seen-set.
func NewSet() Set {
	return make(Set)
}

// Add records k and reports whether it was new. A false return means
// the publication was already ingested and the entry should be skipped.
func (s Set) Add(k Key) bool {
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = struct{}{}
	return true
}
