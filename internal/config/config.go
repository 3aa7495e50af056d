// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package config loads scanarr configuration from a TOML file, environment
// variables and command-line overrides, in that order of increasing
// precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds every knob the scanner and the query client consume.
type Config struct {
	// Indexer aggregate API (Jackett-style).
	APIURL  string `mapstructure:"apiUrl"`
	APIKey  string `mapstructure:"apiKey"`
	Tracker string `mapstructure:"tracker"`

	// Delay is the minimum interval between search requests.
	Delay time.Duration `mapstructure:"delay"`

	// MaxRetries bounds how often a failed search is retried before the
	// entry is reported as unverifiable.
	MaxRetries int `mapstructure:"maxRetries"`

	// RequestTimeout applies per HTTP request.
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`

	// ExcludeGroups lists release groups whose candidates (and local
	// entries) are skipped. Comparison is case-insensitive.
	ExcludeGroups []string `mapstructure:"excludeGroups"`

	// VerifyTorrents downloads the matched candidate's torrent file and
	// confirms the embedded name before accepting the match.
	VerifyTorrents bool `mapstructure:"verifyTorrents"`

	// MaxResults guards against queries that are too broad. A response
	// with more results than this is treated as unverifiable. Zero
	// disables the guard.
	MaxResults int `mapstructure:"maxResults"`

	LogLevel string `mapstructure:"logLevel"`
	LogPath  string `mapstructure:"logPath"`
}

// AppConfig wraps Config with the viper instance that produced it.
type AppConfig struct {
	Config *Config
	viper  *viper.Viper
}

// New loads configuration from the provided path (file or directory).
// An empty path means defaults plus environment variables only.
func New(configPath string) (*AppConfig, error) {
	c := &AppConfig{viper: viper.New()}

	c.defaults()
	c.bindEnv()

	if err := c.load(configPath); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := c.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Config = cfg

	return c, nil
}

func (c *AppConfig) defaults() {
	c.viper.SetDefault("apiUrl", "http://127.0.0.1:9117")
	c.viper.SetDefault("apiKey", "")
	c.viper.SetDefault("tracker", "")
	c.viper.SetDefault("delay", time.Duration(0))
	c.viper.SetDefault("maxRetries", 10)
	c.viper.SetDefault("requestTimeout", 30*time.Second)
	c.viper.SetDefault("excludeGroups", []string{})
	c.viper.SetDefault("verifyTorrents", false)
	c.viper.SetDefault("maxResults", 25)
	c.viper.SetDefault("logLevel", "INFO")
	c.viper.SetDefault("logPath", "")
}

// bindEnv maps SCANARR__* environment variables onto config keys.
func (c *AppConfig) bindEnv() {
	envMap := map[string]string{
		"apiUrl":         "SCANARR__API_URL",
		"apiKey":         "SCANARR__API_KEY",
		"tracker":        "SCANARR__TRACKER",
		"delay":          "SCANARR__DELAY",
		"maxRetries":     "SCANARR__MAX_RETRIES",
		"requestTimeout": "SCANARR__REQUEST_TIMEOUT",
		"excludeGroups":  "SCANARR__EXCLUDE_GROUPS",
		"verifyTorrents": "SCANARR__VERIFY_TORRENTS",
		"maxResults":     "SCANARR__MAX_RESULTS",
		"logLevel":       "SCANARR__LOG_LEVEL",
		"logPath":        "SCANARR__LOG_PATH",
	}
	for key, env := range envMap {
		_ = c.viper.BindEnv(key, env)
	}
}

func (c *AppConfig) load(configPath string) error {
	c.viper.SetConfigType("toml")

	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	switch {
	case err == nil && info.IsDir():
		c.viper.SetConfigName("config")
		c.viper.AddConfigPath(configPath)
	case err == nil:
		c.viper.SetConfigFile(configPath)
	default:
		return fmt.Errorf("config path %q: %w", configPath, err)
	}

	if err := c.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	return nil
}

// Watch re-reads the config file on change and invokes onChange with the
// fresh Config. Overrides applied after loading are not re-applied. A
// no-op when no config file is in use.
func (c *AppConfig) Watch(onChange func(*Config)) {
	if c.viper.ConfigFileUsed() == "" {
		return
	}

	c.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("file", filepath.Base(e.Name)).Msg("config file changed, reloading")

		cfg := &Config{}
		if err := c.viper.Unmarshal(cfg); err != nil {
			log.Error().Err(err).Msg("could not reload config")
			return
		}
		c.Config = cfg
		if onChange != nil {
			onChange(cfg)
		}
	})
	c.viper.WatchConfig()
}

// Validate checks that the fields a scan cannot run without are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("apiUrl is required")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("apiKey is required")
	}
	if strings.TrimSpace(c.Tracker) == "" {
		return fmt.Errorf("tracker is required")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("maxRetries must be at least 1")
	}
	return nil
}
