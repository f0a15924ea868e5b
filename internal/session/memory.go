// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"sync"
	"time"
)

// MemoryStore keeps the credential in process memory only.
type MemoryStore struct {
	mu        sync.RWMutex
	token     []byte
	expiresAt time.Time
	opts      options
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{opts: buildOptions(opts)}
}

func (m *MemoryStore) Get() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == nil || !m.opts.now().Before(m.expiresAt) {
		return "", false
	}
	// string() copies, callers never see the backing slice.
	return string(m.token), true
}

func (m *MemoryStore) Set(token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.wipe()
	if token == "" {
		return nil
	}
	m.token = []byte(token)
	m.expiresAt = m.opts.now().Add(normalizeTTL(ttl))
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wipe()
	return nil
}

func (m *MemoryStore) wipe() {
	for i := range m.token {
		m.token[i] = 0
	}
	m.token = nil
	m.expiresAt = time.Time{}
}
