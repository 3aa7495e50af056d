// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package scan implements the matching engine: it inventories one directory
// level of local releases, queries an indexer for each entry and decides
// whether the tracker already carries a matching release.
package scan

import (
	"path/filepath"
	"strings"

	"github.com/arrscanarr/scanarr/pkg/stringutils"
)

// videoExtensions defines common video container extensions, used for
// sample detection and extension stripping.
var videoExtensions = map[string]struct{}{
	".mkv": {}, ".mp4": {}, ".avi": {}, ".m4v": {}, ".wmv": {}, ".mov": {},
	".ts": {}, ".m2ts": {}, ".mts": {}, ".vob": {}, ".mpg": {}, ".mpeg": {},
	".webm": {}, ".flv": {}, ".3gp": {}, ".asf": {}, ".rm": {}, ".rmvb": {},
	".ogv": {}, ".divx": {}, ".xvid": {},
}

// strippableExtensions covers everything Normalize removes from the end of
// an entry name: video containers plus audio and common release extras.
var strippableExtensions = map[string]struct{}{
	// Audio
	".flac": {}, ".mp3": {}, ".wav": {}, ".aac": {}, ".ogg": {}, ".m4a": {},
	".wma": {}, ".ape": {},
	// Release extras
	".nfo": {}, ".sfv": {}, ".srt": {}, ".sub": {}, ".idx": {}, ".torrent": {},
	".rar": {}, ".zip": {},
}

// imageExtensions defines common image file extensions, used for proof
// detection.
var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".tiff": {},
	".tif": {}, ".webp": {}, ".svg": {}, ".ico": {}, ".psd": {}, ".raw": {},
	".cr2": {}, ".nef": {}, ".arw": {}, ".dng": {},
}

// NormalizedName is the comparable token form of a release name. Tokens are
// lowercase, separator-free and ordered; Original keeps the raw input.
type NormalizedName struct {
	Tokens   []string
	Original string
}

// Canonical returns the lowercase space-joined token form.
func (n NormalizedName) Canonical() string {
	return strings.Join(n.Tokens, " ")
}

// Normalize canonicalizes a raw file or folder name into its token form.
// It strips a known trailing extension, treats release punctuation and
// brackets as separators, lowercases and drops empty tokens. It always
// succeeds; an empty input yields an empty token sequence.
func Normalize(raw string) NormalizedName {
	name := stripKnownExtension(raw)
	name = stringutils.ReplaceSeparators(name)
	return NormalizedName{
		Tokens:   strings.Fields(stringutils.NormalizeForMatching(name)),
		Original: raw,
	}
}

// stripKnownExtension removes a trailing media extension. Unknown
// extensions stay: a dotted title segment is not an extension.
func stripKnownExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := videoExtensions[ext]; ok {
		return name[:len(name)-len(ext)]
	}
	if _, ok := strippableExtensions[ext]; ok {
		return name[:len(name)-len(ext)]
	}
	return name
}

func isVideoFile(name string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func isImageFile(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
