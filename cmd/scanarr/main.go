// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arrscanarr/scanarr/internal/buildinfo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "scanarr",
		Short: "Check which local releases are missing from a tracker",
		Long: `scanarr inventories the files and folders of a directory and searches a
Jackett-style indexer API for each of them, reporting the releases the
tracker does not carry.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(RunScanCommand())
	rootCmd.AddCommand(RunVersionCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// RunVersionCommand builds the version subcommand.
func RunVersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				out, err := buildinfo.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), buildinfo.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
