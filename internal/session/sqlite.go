// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sessionRow is one named profile's credential.
type sessionRow struct {
	bun.BaseModel `bun:"table:sessions"`

	Profile   string `bun:"profile,pk"`
	Token     string `bun:"token,notnull"`
	ExpiresAt int64  `bun:"expires_at,notnull"` // unix nanoseconds
}

// SQLiteStore keeps one credential per profile in a sqlite file.
type SQLiteStore struct {
	bun     *bun.DB
	profile string
	opts    options
}

// OpenSQLite opens (and if needed creates) the sqlite file at path.
func OpenSQLite(path, profile string, opts ...Option) (*SQLiteStore, error) {
	if profile == "" {
		profile = "default"
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("could not create session directory %s: %w", dir, err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*sessionRow)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	_ = os.Chmod(path, 0o600)

	return &SQLiteStore{bun: db, profile: profile, opts: buildOptions(opts)}, nil
}

// Profile returns the row key this store reads and writes.
func (s *SQLiteStore) Profile() string { return s.profile }

func (s *SQLiteStore) Get() (string, bool) {
	var row sessionRow
	err := s.bun.NewSelect().Model(&row).Where("profile = ?", s.profile).Scan(context.Background())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logging.Warnf("session: reading profile %s: %v", s.profile, err)
		}
		return "", false
	}
	if row.Token == "" || s.opts.now().UnixNano() >= row.ExpiresAt {
		return "", false
	}
	return row.Token, true
}

func (s *SQLiteStore) Set(token string, ttl time.Duration) error {
	if token == "" {
		return s.Clear()
	}
	row := sessionRow{
		Profile:   s.profile,
		Token:     token,
		ExpiresAt: s.opts.now().Add(normalizeTTL(ttl)).UnixNano(),
	}
	_, err := s.bun.NewInsert().
		Model(&row).
		On("CONFLICT (profile) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("expires_at = EXCLUDED.expires_at").
		Exec(context.Background())
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear() error {
	_, err := s.bun.NewDelete().
		Model((*sessionRow)(nil)).
		Where("profile = ?", s.profile).
		Exec(context.Background())
	if err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.bun.Close()
}
