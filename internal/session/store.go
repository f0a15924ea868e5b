// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package session keeps the bearer credential issued by the asset API.
// It is the only place that reads or writes the persisted credential: the API
// client asks a Store right before building each authenticated request, the
// login flow sets it and the logout flow clears it.
package session // import "github.com/toeirei/assetdesk/internal/session"

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/toeirei/assetdesk/internal/config"
)

// DefaultTTL is how long a credential stays valid when no ttl is given.
const DefaultTTL = 7 * 24 * time.Hour

// Store holds at most one credential.
type Store interface {
	// Get returns the credential, or ok=false when none is stored or it expired.
	Get() (token string, ok bool)
	// Set persists token for ttl; ttl <= 0 means DefaultTTL.
	Set(token string, ttl time.Duration) error
	// Clear removes the credential. Clearing an empty store is not an error.
	Clear() error
}

type options struct {
	now func() time.Time
}

// Option configures a Store backend.
type Option func(*options)

// WithClock replaces time.Now, mainly so tests can move past the expiry window.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

// Open builds the backend named by cfg.Backend.
func Open(cfg config.Session, opts ...Option) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendFile:
		path := cfg.Path
		if path == "" {
			p, err := DefaultPath("session.yaml")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewFileStore(path, opts...), nil
	case config.BackendSQLite:
		path := cfg.Path
		if path == "" {
			p, err := DefaultPath("session.db")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(path, cfg.Profile, opts...)
	case config.BackendMemory:
		return NewMemoryStore(opts...), nil
	default:
		return nil, fmt.Errorf("unsupported session backend '%s'", cfg.Backend)
	}
}

// DefaultPath returns <user config dir>/assetdesk/<name>.
func DefaultPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "assetdesk", name), nil
}

// Close releases backend resources when the store holds any.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
