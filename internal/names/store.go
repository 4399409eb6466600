// Copyright (c) 2026 dotandev
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package names

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dotandev/paysum/internal/errors"
	"github.com/dotandev/paysum/internal/logger"
	_ "modernc.org/sqlite"
)

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// Store is the persistent key-value store backing the name cache.
// Keys take the form "name_<accountId>"; values are either a
// JSON-serialized record or, for entries written by older versions,
// a bare name string. The store does not interpret values.
type Store struct {
	db *sql.DB
}

// OpenStore creates or opens the name database at path.
func OpenStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WrapStoreFailure("create database directory", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, errors.WrapStoreFailure("open database", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, errors.WrapStoreFailure("initialize schema", err)
	}

	// Set file permissions to 600 (read/write for owner only)
	if err := os.Chmod(path, 0600); err != nil {
		logger.Logger.Warn("Failed to set database permissions", "error", err)
	}

	return store, nil
}

// initSchema creates the names table if it doesn't exist
func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS names (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		schema_version INTEGER NOT NULL
	);
	`

	if _, err := s.db.Exec(query); err != nil {
		return errors.WrapStoreFailure("create schema", err)
	}

	return nil
}

// Get returns the raw value for a key, with found=false on a miss.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM names WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.WrapStoreFailure("read key "+key, err)
	}
	return value, true, nil
}

// Put stores a raw value under a key, replacing any prior value.
func (s *Store) Put(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO names (key, value, updated_at, schema_version)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at,
		schema_version = excluded.schema_version
	`

	_, err := s.db.ExecContext(ctx, query, key, value, time.Now(), SchemaVersion)
	if err != nil {
		return errors.WrapStoreFailure("write key "+key, err)
	}

	logger.Logger.Debug("Name entry saved", "key", key)
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM names WHERE key = ?`, key); err != nil {
		return errors.WrapStoreFailure("delete key "+key, err)
	}

	logger.Logger.Debug("Name entry deleted", "key", key)
	return nil
}

// likeEscaper neutralizes the LIKE wildcards, so "name_" matches the
// literal underscore and not any single character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Keys enumerates every stored key with the given prefix, in key order.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM names WHERE key LIKE ? ESCAPE '\' ORDER BY key`,
		likeEscaper.Replace(prefix)+"%")
	if err != nil {
		return nil, errors.WrapStoreFailure("list keys", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.WrapStoreFailure("scan key", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.WrapStoreFailure("iterate keys", err)
	}

	return keys, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
