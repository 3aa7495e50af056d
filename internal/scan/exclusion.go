// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package scan

import (
	"regexp"
	"strings"
)

// Candidate is one search result considered for a local entry. ReleaseGroup
// is best-effort; empty means extraction failed and the candidate can never
// be excluded on group grounds.
type Candidate struct {
	Title        string
	ReleaseGroup string
	IndexerID    string
	Tracker      string
	Link         string
}

var (
	// trailing "[GROUP]" style tag
	bracketGroupRe = regexp.MustCompile(`\[([A-Za-z0-9._ ]+)\]\s*$`)
	// trailing "-GROUP" segment, no spaces inside
	hyphenGroupRe = regexp.MustCompile(`-([A-Za-z0-9._]+)\s*$`)
	// release metadata tokens that are never a group name
	metadataTokenRe = regexp.MustCompile(`(?i)^(\d{3,4}[pi]|\d{4}|s\d{1,2}(e\d{1,3})?|e\d{1,3}|[xh]26[45]|hevc|avc|xvid|divx|blu-?ray|web-?(dl|rip)?|hdtv|dvdrip|bdrip|remux|uhd|hdr10?\+?|dv|proper|repack|internal|limited|extended|complete|multi|aac|ac3|eac3|ddp?[257]\.?[01]?|atmos|truehd|dts(-?hd)?(-?ma)?|flac|mp3)$`)
)

// extractGroupHeuristic pulls a release group out of a title by string
// convention alone: the final hyphen-delimited segment, a bracketed tag at
// the end, or a trailing word that is not recognizable release metadata.
// Returns "" when no convention applies.
func extractGroupHeuristic(title string) string {
	name := stripKnownExtension(strings.TrimSpace(title))

	if m := hyphenGroupRe.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if m := bracketGroupRe.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1])
	}

	// Indexers sometimes rewrite titles with plain spaces. Take the last
	// word when it cannot be mistaken for quality/codec metadata.
	fields := strings.Fields(name)
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		if len(last) >= 2 && !metadataTokenRe.MatchString(last) && containsLetter(last) {
			return last
		}
	}
	return ""
}

func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// ExtractReleaseGroup resolves the release group for a title: parsed
// release metadata first, string convention as fallback. Every group
// lookup in the engine goes through here so the extraction rules can be
// refined in one place.
func ExtractReleaseGroup(cache *ReleaseCache, title string) string {
	if cache != nil {
		if group := cache.Parse(title).Group; group != "" {
			return group
		}
	}
	return extractGroupHeuristic(title)
}

// GroupSet is a case-insensitive set of excluded release groups.
type GroupSet map[string]struct{}

// NewGroupSet builds a GroupSet from a list of group names.
func NewGroupSet(groups []string) GroupSet {
	set := make(GroupSet, len(groups))
	for _, g := range groups {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		set[g] = struct{}{}
	}
	return set
}

// Contains reports whether group is in the set. An empty group never
// matches.
func (s GroupSet) Contains(group string) bool {
	if group == "" {
		return false
	}
	_, ok := s[strings.ToLower(group)]
	return ok
}

// FilterExcluded returns the order-preserving subsequence of candidates
// whose release group is not excluded. Input is not mutated.
func FilterExcluded(candidates []Candidate, excluded GroupSet) []Candidate {
	if len(excluded) == 0 {
		return candidates
	}

	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if excluded.Contains(c.ReleaseGroup) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
