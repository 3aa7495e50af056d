// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileOfSize(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}

func TestDetectLabelsSamples(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// 2 MiB video inside a nested Sample dir
	writeFileOfSize(t, filepath.Join(dir, "Sample", "sample.mkv"), 2<<20)
	// small non-video files never count
	writeFileOfSize(t, filepath.Join(dir, "movie.nfo"), 4<<20)

	labels := DetectLabels(dir)
	assert.True(t, labels.HasSamples)
	assert.False(t, labels.HasProof)
	assert.Equal(t, "(S)", labels.String())
}

func TestDetectLabelsSmallVideoIgnored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// below the 1 MiB floor
	writeFileOfSize(t, filepath.Join(dir, "tiny.mkv"), 512<<10)

	labels := DetectLabels(dir)
	assert.False(t, labels.HasSamples)
}

func TestDetectLabelsProof(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFileOfSize(t, filepath.Join(dir, "Proof", "Proof-01.jpg"), 100)
	// non-image with proof in the name does not count
	writeFileOfSize(t, filepath.Join(dir, "proof.txt"), 100)

	labels := DetectLabels(dir)
	assert.True(t, labels.HasProof)
	assert.False(t, labels.HasSamples)
	assert.Equal(t, "(P)", labels.String())
}

func TestDetectLabelsBoth(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFileOfSize(t, filepath.Join(dir, "sample.mp4"), 5<<20)
	writeFileOfSize(t, filepath.Join(dir, "screens", "proof.png"), 10)

	labels := DetectLabels(dir)
	assert.True(t, labels.HasSamples)
	assert.True(t, labels.HasProof)
	assert.Equal(t, "(SP)", labels.String())
}

func TestDetectLabelsNone(t *testing.T) {
	t.Parallel()

	labels := DetectLabels(t.TempDir())
	assert.False(t, labels.HasSamples)
	assert.False(t, labels.HasProof)
	assert.Equal(t, "", labels.String())
}
