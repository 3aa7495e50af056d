// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanExtraSpaces(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", CleanExtraSpaces("  a   b \t c  "))
	assert.Equal(t, "", CleanExtraSpaces("   "))
}

func TestNormalizeForMatching(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "show name s01e01", NormalizeForMatching("  Show  Name S01E01 "))
}

func TestReplaceSeparators(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Movie Title  2020  x264 GROUP", ReplaceSeparators("Movie.Title.(2020).x264-GROUP"))
}
