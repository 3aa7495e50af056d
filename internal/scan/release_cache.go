// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package scan

import (
	"time"

	"github.com/autobrr/autobrr/pkg/ttlcache"
	"github.com/moistari/rls"
)

// Within one scan the same candidate titles come back from the indexer
// over and over, and rls parsing is not free. ReleaseCache memoizes the
// parsed form per title.
type ReleaseCache struct {
	entries *ttlcache.Cache[string, rls.Release]
}

const parseCacheTTL = 5 * time.Minute

// NewReleaseCache creates an empty cache. Entries expire after
// parseCacheTTL so a long-running process does not hold every title it
// ever saw.
func NewReleaseCache() *ReleaseCache {
	return &ReleaseCache{
		entries: ttlcache.New(ttlcache.Options[string, rls.Release]{}.
			SetDefaultTTL(parseCacheTTL)),
	}
}

// Parse returns the rls parse of name, computing it on first use.
func (rc *ReleaseCache) Parse(name string) rls.Release {
	if release, ok := rc.entries.Get(name); ok {
		return release
	}

	release := rls.ParseString(name)
	rc.entries.Set(name, release, ttlcache.DefaultTTL)
	return release
}
