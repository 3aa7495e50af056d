// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package buildinfo exposes the version information stamped in at build time.
package buildinfo

import (
	"encoding/json"
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""

	// UserAgent identifies requests made against indexer APIs.
	UserAgent = ""
)

func init() {
	UserAgent = fmt.Sprintf("scanarr/%s (%s %s)", Version, runtime.GOOS, runtime.GOARCH)
}

// String returns a human-readable version block.
func String() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild date: %s\nGo: %s\n",
		Version, Commit, Date, runtime.Version())
}

// JSON returns the version information as a JSON document.
func JSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
	})
}
