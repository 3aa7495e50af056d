// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the log sinks and verbosity.
type Options struct {
	Level string // trace, debug, info, warn, error
	Path  string // optional rotating log file

	MaxSizeMB  int
	MaxBackups int
}

// Setup initializes the global logger with a console writer and an optional
// rotating file sink.
func Setup(opts Options) {
	level := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		},
	}

	if opts.Path != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 50
		}
		maxBackups := opts.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 3
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
