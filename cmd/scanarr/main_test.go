// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommandJSON(t *testing.T) {
	t.Parallel()

	cmd := RunVersionCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--json"})

	require.NoError(t, cmd.Execute())

	var info map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, "dev", info["version"])
	assert.Contains(t, info, "commit")
	assert.Contains(t, info, "date")
}

func TestVersionCommandText(t *testing.T) {
	t.Parallel()

	cmd := RunVersionCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Version: dev")
}

func TestScanCommandHonoursCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no search should be issued after cancellation")
	}))
	defer srv.Close()

	rootPath := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(rootPath, "Some.Release.2020-GROUPA"), 0755))

	cmd := RunScanCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{
		rootPath,
		"--api-url", srv.URL,
		"--api-key", "secret",
		"--tracker", "mytracker",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cmd.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
