// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalEntry is one immediate child of the scan root. Entries are release
// units: traversal never descends further for matching purposes.
type LocalEntry struct {
	Path        string
	DisplayName string
	IsDirectory bool
}

// ListEntries enumerates the immediate children of rootPath in directory
// order. Hidden entries are skipped. A read failure here is fatal to the
// scan: without an entry list there is nothing to verify.
func ListEntries(rootPath string) ([]LocalEntry, error) {
	dirEntries, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", rootPath)
	}

	entries := make([]LocalEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		entries = append(entries, LocalEntry{
			Path:        filepath.Join(rootPath, de.Name()),
			DisplayName: de.Name(),
			IsDirectory: de.IsDir(),
		})
	}
	return entries, nil
}
