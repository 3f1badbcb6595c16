// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logging builds the structured logger shared by every binary.
//
// Logs are JSON lines tagged with the application name. Interactive binaries
// set a log file so that log lines never interleave with their own output;
// the file is rotated by lumberjack.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taibuivan/shopfront/internal/platform/config"
)

// Options controls where and how verbosely logs are written.
type Options struct {
	App        string
	Debug      bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Fallback is used when File is empty. Defaults to stderr.
	Fallback io.Writer
}

// FromConfig derives [Options] from the loaded configuration.
func FromConfig(app string, cfg *config.Config) Options {
	return Options{
		App:        app,
		Debug:      cfg.Debug,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	}
}

// New returns a JSON logger and a close function for its sink.
func New(options Options) (*slog.Logger, func() error) {
	level := slog.LevelInfo
	if options.Debug {
		level = slog.LevelDebug
	}

	writer, closer := sink(options)

	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))

	if options.App != "" {
		logger = logger.With(slog.String("app", options.App))
	}

	return logger, closer
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sink(options Options) (io.Writer, func() error) {
	if options.File == "" {
		if options.Fallback != nil {
			return options.Fallback, func() error { return nil }
		}
		return os.Stderr, func() error { return nil }
	}

	rotator := &lumberjack.Logger{
		Filename:   options.File,
		MaxSize:    options.MaxSizeMB,
		MaxBackups: options.MaxBackups,
		MaxAge:     options.MaxAgeDays,
		Compress:   true,
	}
	return rotator, rotator.Close
}
