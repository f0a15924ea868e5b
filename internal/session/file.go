// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/toeirei/assetdesk/internal/logging"
)

type fileDocument struct {
	Token     string `yaml:"token"`
	ExpiresAt string `yaml:"expires_at"`
}

// FileStore persists the credential as a small YAML document. The file is
// read on every Get so a logout from another process is seen immediately.
type FileStore struct {
	path string
	mu   sync.Mutex
	opts options
}

// NewFileStore returns a store backed by path. The file is created on first Set.
func NewFileStore(path string, opts ...Option) *FileStore {
	return &FileStore{path: path, opts: buildOptions(opts)}
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warnf("session: reading %s: %v", f.path, err)
		}
		return "", false
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logging.Warnf("session: decoding %s: %v", f.path, err)
		return "", false
	}
	if doc.Token == "" {
		return "", false
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, doc.ExpiresAt)
	if err != nil {
		logging.Warnf("session: bad expiry in %s: %v", f.path, err)
		return "", false
	}
	if !f.opts.now().Before(expiresAt) {
		return "", false
	}
	return doc.Token, true
}

func (f *FileStore) Set(token string, ttl time.Duration) error {
	if token == "" {
		return f.Clear()
	}

	doc := fileDocument{
		Token:     token,
		ExpiresAt: f.opts.now().Add(normalizeTTL(ttl)).UTC().Format(time.RFC3339Nano),
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create session directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
