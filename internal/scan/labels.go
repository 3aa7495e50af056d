// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Sample file size bounds. Video files in this range inside a release
// folder are usually samples that trackers reject.
const (
	sampleMinSize = 1 << 20   // 1 MiB
	sampleMaxSize = 110 << 20 // 110 MiB
)

// Labels carries per-entry indicators shown next to unmatched entries.
type Labels struct {
	// HasSamples means the folder contains video files between 1 and
	// 110 MiB.
	HasSamples bool
	// HasProof means the folder contains image files with "proof" in
	// their name.
	HasProof bool
}

// String renders the compact label form, e.g. "(SP)", or "" when no label
// applies.
func (l Labels) String() string {
	var b strings.Builder
	if l.HasSamples {
		b.WriteByte('S')
	}
	if l.HasProof {
		b.WriteByte('P')
	}
	if b.Len() == 0 {
		return ""
	}
	return "(" + b.String() + ")"
}

// DetectLabels walks a folder recursively and reports sample and proof
// indicators. Files are never opened; only names and sizes are inspected.
// Walk errors are logged and treated as "no label", never fatal.
func DetectLabels(path string) Labels {
	var labels Labels

	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("could not inspect folder for labels")
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		switch {
		case !labels.HasSamples && isVideoFile(name):
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if size := info.Size(); size >= sampleMinSize && size <= sampleMaxSize {
				labels.HasSamples = true
			}
		case !labels.HasProof && isImageFile(name):
			if strings.Contains(strings.ToLower(name), "proof") {
				labels.HasProof = true
			}
		}

		if labels.HasSamples && labels.HasProof {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("label detection aborted")
	}

	return labels
}
