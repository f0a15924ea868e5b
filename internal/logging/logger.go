// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging wraps the charmbracelet logger used across assetdesk.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below instead of reaching for L directly.
var L = clog.NewWithOptions(os.Stderr, clog.Options{
	Prefix:          "assetdesk",
	ReportTimestamp: true,
})

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}

// SetLevel sets the level from a config string (debug, info, warn, error).
// Unknown values fall back to info.
func SetLevel(level string) {
	lvl, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = clog.InfoLevel
	}
	L.SetLevel(lvl)
}

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.InfoLevel)
}

// SetOutput redirects the logger.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}

// DefaultLogFile returns <user cache dir>/assetdesk/assetdesk.log.
func DefaultLogFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not get user cache directory: %w", err)
	}
	return filepath.Join(dir, "assetdesk", "assetdesk.log"), nil
}

// RedirectToFile sends log output to path (or DefaultLogFile when empty)
// until the returned restore func is called. The TUI owns the terminal
// while it runs, so logs must not be written to stderr.
func RedirectToFile(path string) (restore func(), err error) {
	if path == "" {
		if path, err = DefaultLogFile(); err != nil {
			return func() {}, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return func() {}, fmt.Errorf("could not create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return func() {}, fmt.Errorf("could not open log file %s: %w", path, err)
	}
	L.SetOutput(f)
	return func() {
		L.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
