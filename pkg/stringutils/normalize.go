// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package stringutils contains small string helpers shared by the matching
// engine and the query client.
package stringutils

import (
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// CleanExtraSpaces collapses runs of whitespace into single spaces and trims.
func CleanExtraSpaces(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// NormalizeForMatching lowercases and collapses whitespace so two spellings
// of the same title compare equal.
func NormalizeForMatching(s string) string {
	return CleanExtraSpaces(strings.ToLower(s))
}

// separatorReplacer maps release-name punctuation to spaces. Brackets count
// as separators so "(2020)" tokenizes to "2020" instead of sticking to the
// neighbouring word.
var separatorReplacer = strings.NewReplacer(
	".", " ",
	"_", " ",
	"-", " ",
	"[", " ",
	"]", " ",
	"(", " ",
	")", " ",
	"{", " ",
	"}", " ",
)

// ReplaceSeparators substitutes common release-name separators with spaces.
func ReplaceSeparators(s string) string {
	return separatorReplacer.Replace(s)
}
