// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "dotted release name",
			raw:  "Show.Name.S01E01.1080p-GROUPA",
			want: []string{"show", "name", "s01e01", "1080p", "groupa"},
		},
		{
			name: "spaces and parens",
			raw:  "Movie Title (2020) BluRay-GROUPC",
			want: []string{"movie", "title", "2020", "bluray", "groupc"},
		},
		{
			name: "strips known extension",
			raw:  "Movie.Title.2020.mkv",
			want: []string{"movie", "title", "2020"},
		},
		{
			name: "unknown extension kept",
			raw:  "Movie.Title.2020.part1",
			want: []string{"movie", "title", "2020", "part1"},
		},
		{
			name: "consecutive separators collapse",
			raw:  "Show..Name--S01__E01",
			want: []string{"show", "name", "s01", "e01"},
		},
		{
			name: "underscores and brackets",
			raw:  "Some_Show_[2019]_720p",
			want: []string{"some", "show", "2019", "720p"},
		},
		{
			name: "empty input",
			raw:  "",
			want: []string{},
		},
		{
			name: "only separators",
			raw:  "...___---",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tt.raw)
			assert.Equal(t, tt.want, got.Tokens)
			assert.Equal(t, tt.raw, got.Original)
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	t.Parallel()

	a := Normalize("Show.Name.S01E01.1080p-GROUPA")
	b := Normalize("Show.Name.S01E01.1080p-GROUPA")
	assert.Equal(t, a, b)
}

// Re-normalizing the canonical token-joined form yields the same tokens.
func TestNormalizeIdempotentOnCanonicalForm(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Show.Name.S01E01.1080p-GROUPA",
		"Movie Title (2020) BluRay-GROUPC",
		"Some_Show_[2019]_720p.mkv",
		"",
	}
	for _, raw := range inputs {
		first := Normalize(raw)
		second := Normalize(first.Canonical())
		assert.Equal(t, first.Tokens, second.Tokens, "input %q", raw)
	}
}
