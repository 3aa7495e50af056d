// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/arrscanarr/scanarr/internal/config"
	"github.com/arrscanarr/scanarr/internal/jackett"
	"github.com/arrscanarr/scanarr/internal/logger"
	"github.com/arrscanarr/scanarr/internal/scan"
)

// RunScanCommand builds the scan subcommand.
func RunScanCommand() *cobra.Command {
	var (
		configPath     string
		apiURL         string
		apiKey         string
		tracker        string
		excludeGroups  []string
		delay          time.Duration
		maxRetries     int
		verifyTorrents bool
		skipExcluded   bool
		noLabels       bool
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory and report entries missing from the tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.New(configPath)
			if err != nil {
				return err
			}
			cfg := appCfg.Config

			// Flags win over file and environment.
			flags := cmd.Flags()
			if flags.Changed("api-url") {
				cfg.APIURL = apiURL
			}
			if flags.Changed("api-key") {
				cfg.APIKey = apiKey
			}
			if flags.Changed("tracker") {
				cfg.Tracker = tracker
			}
			if flags.Changed("exclude-group") {
				cfg.ExcludeGroups = excludeGroups
			}
			if flags.Changed("delay") {
				cfg.Delay = delay
			}
			if flags.Changed("max-retries") {
				cfg.MaxRetries = maxRetries
			}
			if flags.Changed("verify-torrents") {
				cfg.VerifyTorrents = verifyTorrents
			}
			if verbose {
				cfg.LogLevel = "DEBUG"
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger.Setup(logger.Options{Level: cfg.LogLevel, Path: cfg.LogPath})

			limiter := jackett.NewRateLimiter(cfg.Delay)

			// Long scans can outlive a config edit; pick up the knobs
			// that are safe to change mid-run. Flag overrides stay
			// pinned.
			appCfg.Watch(func(fresh *config.Config) {
				if !flags.Changed("delay") {
					limiter.SetInterval(fresh.Delay)
				}
				if !verbose {
					logger.Setup(logger.Options{Level: fresh.LogLevel, Path: fresh.LogPath})
				}
			})

			client := jackett.NewClient(jackett.Options{
				BaseURL:    cfg.APIURL,
				APIKey:     cfg.APIKey,
				Tracker:    cfg.Tracker,
				Timeout:    cfg.RequestTimeout,
				MaxRetries: cfg.MaxRetries,
				Limiter:    limiter,
			})

			svc := scan.NewService(client, scan.Options{
				ExcludeGroups:     cfg.ExcludeGroups,
				VerifyTorrents:    cfg.VerifyTorrents,
				MaxResults:        cfg.MaxResults,
				SkipExcludedLocal: skipExcluded,
				DetectLabels:      !noLabels,
			})

			report, err := svc.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			report.Render(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file or directory")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "indexer API base URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "indexer API key")
	cmd.Flags().StringVar(&tracker, "tracker", "", "tracker name/ID to search")
	cmd.Flags().StringSliceVar(&excludeGroups, "exclude-group", nil, "release group to exclude (repeatable)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "minimum delay between search requests")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 0, "search retry budget per entry")
	cmd.Flags().BoolVar(&verifyTorrents, "verify-torrents", false, "download matched torrents and verify the embedded name")
	cmd.Flags().BoolVar(&skipExcluded, "skip-excluded-local", false, "skip local entries released by an excluded group")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "disable sample/proof inspection of unmatched folders")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return cmd
}
