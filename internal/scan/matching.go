// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package scan

// overlapThreshold is the token-set overlap ratio a candidate must reach
// when the contiguous rule misses. Tolerates minor punctuation and
// ordering drift without accepting unrelated titles.
const overlapThreshold = 0.8

// Matches decides whether a candidate title covers a local entry name.
//
// Primary rule: the candidate token sequence contains the local token
// sequence contiguously, so tracker titles with extra leading or trailing
// metadata still match. Fallback: the share of local tokens present in the
// candidate reaches overlapThreshold. An empty local name never matches.
func Matches(local, candidate NormalizedName) bool {
	if len(local.Tokens) == 0 {
		return false
	}
	if containsContiguous(candidate.Tokens, local.Tokens) {
		return true
	}
	return overlapRatio(local.Tokens, candidate.Tokens) >= overlapThreshold
}

// containsContiguous reports whether needle appears in haystack as a
// contiguous subsequence.
func containsContiguous(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		match := true
		for i, tok := range needle {
			if haystack[start+i] != tok {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// overlapRatio is the fraction of local tokens found in the candidate token
// set. Duplicate local tokens each count.
func overlapRatio(local, candidate []string) float64 {
	if len(local) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(candidate))
	for _, tok := range candidate {
		set[tok] = struct{}{}
	}

	shared := 0
	for _, tok := range local {
		if _, ok := set[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(local))
}
