// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "regexp"

// doiPattern matches a DOI-shaped token anywhere in a string, e.g.
// "10.1103/PhysRevLett.136.031001".
var doiPattern = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:A-Z0-9]+`)

// DOI scans the entry for a DOI: identifier metadata first, then the
// abstract/content text, then every link href, then the primary link.
// Returns "" when no field carries a DOI-shaped token.
func DOI(e Entry) string {
	for _, v := range e.identifierCandidates() {
		if m := doiPattern.FindString(v); m != "" {
			return m
		}
	}
	for _, v := range e.textCandidates() {
		if m := doiPattern.FindString(v); m != "" {
			return m
		}
	}
	for _, href := range e.LinkHrefs() {
		if m := doiPattern.FindString(href); m != "" {
			return m
		}
	}
	return doiPattern.FindString(e.RawLink())
}
