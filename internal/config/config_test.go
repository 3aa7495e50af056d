// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestNewDefaults(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9117", c.Config.APIURL)
	assert.Equal(t, 10, c.Config.MaxRetries)
	assert.Equal(t, 30*time.Second, c.Config.RequestTimeout)
	assert.Equal(t, time.Duration(0), c.Config.Delay)
	assert.False(t, c.Config.VerifyTorrents)
	assert.Empty(t, c.Config.ExcludeGroups)
}

func TestNewFromFile(t *testing.T) {
	configPath := writeConfig(t, `
apiUrl = "http://jackett.local:9117"
apiKey = "secret"
tracker = "mytracker"
delay = "2s"
maxRetries = 5
excludeGroups = ["GROUPB", "GROUPC"]
verifyTorrents = true
logLevel = "DEBUG"
`)

	c, err := New(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://jackett.local:9117", c.Config.APIURL)
	assert.Equal(t, "secret", c.Config.APIKey)
	assert.Equal(t, "mytracker", c.Config.Tracker)
	assert.Equal(t, 2*time.Second, c.Config.Delay)
	assert.Equal(t, 5, c.Config.MaxRetries)
	assert.Equal(t, []string{"GROUPB", "GROUPC"}, c.Config.ExcludeGroups)
	assert.True(t, c.Config.VerifyTorrents)
	assert.Equal(t, "DEBUG", c.Config.LogLevel)
}

func TestNewFromDirectory(t *testing.T) {
	configPath := writeConfig(t, `apiKey = "from-dir"`)

	c, err := New(filepath.Dir(configPath))
	require.NoError(t, err)
	assert.Equal(t, "from-dir", c.Config.APIKey)
}

func TestEnvOverridesFile(t *testing.T) {
	configPath := writeConfig(t, `
apiKey = "from-file"
tracker = "from-file"
`)

	t.Setenv("SCANARR__API_KEY", "from-env")
	t.Setenv("SCANARR__DELAY", "3s")

	c, err := New(configPath)
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.Config.APIKey)
	assert.Equal(t, "from-file", c.Config.Tracker)
	assert.Equal(t, 3*time.Second, c.Config.Delay)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.APIKey = "" },
			wantErr: "apiKey",
		},
		{
			name:    "missing tracker",
			mutate:  func(c *Config) { c.Tracker = " " },
			wantErr: "tracker",
		},
		{
			name:    "bad retries",
			mutate:  func(c *Config) { c.MaxRetries = 0 },
			wantErr: "maxRetries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				APIURL:     "http://127.0.0.1:9117",
				APIKey:     "key",
				Tracker:    "tracker",
				MaxRetries: 3,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestWatchReloadsOnChange(t *testing.T) {
	configPath := writeConfig(t, `
apiKey = "secret"
tracker = "mytracker"
delay = "1s"
`)

	c, err := New(configPath)
	require.NoError(t, err)
	require.Equal(t, time.Second, c.Config.Delay)

	reloaded := make(chan *Config, 1)
	c.Watch(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	require.NoError(t, os.WriteFile(configPath, []byte(`
apiKey = "secret"
tracker = "mytracker"
delay = "3s"
logLevel = "DEBUG"
`), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 3*time.Second, cfg.Delay)
		assert.Equal(t, "DEBUG", cfg.LogLevel)
		assert.Equal(t, 3*time.Second, c.Config.Delay)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not picked up")
	}
}
