// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/snapshot_store.go
// Summary: Persists layout snapshots to disk with a content hash.

package session

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/framegrace/tablayout/layout"
)

// ErrSnapshotCorrupt is returned by Load when the stored hash does not match.
var ErrSnapshotCorrupt = errors.New("snapshot hash mismatch")

// SnapshotStore persists layout snapshots to disk with a content hash for integrity checks.
type SnapshotStore struct {
	path string
	mu   sync.Mutex
}

// StoredSnapshot is the serialized representation written to disk.
type StoredSnapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	Hash      string         `json:"hash"`
	Layout    layout.Layout  `json:"layout"`
	Tabs      map[string]Tab `json:"tabs"`
}

func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Path returns the file the store writes to.
func (s *SnapshotStore) Path() string { return s.path }

// Save writes the layout and tab metadata to disk.
func (s *SnapshotStore) Save(l layout.Layout, tabs map[string]Tab) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := contentHash(l, tabs)
	if err != nil {
		return err
	}
	stored := StoredSnapshot{
		Timestamp: time.Now().UTC(),
		Hash:      hash,
		Layout:    l,
		Tabs:      tabs,
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Load retrieves the most recent stored snapshot from disk.
func (s *SnapshotStore) Load() (StoredSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored StoredSnapshot
	data, err := os.ReadFile(s.path)
	if err != nil {
		return stored, err
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return stored, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}

	hash, err := contentHash(stored.Layout, stored.Tabs)
	if err != nil {
		return stored, err
	}
	if hash != stored.Hash {
		return stored, fmt.Errorf("%s: %w", s.path, ErrSnapshotCorrupt)
	}
	return stored, nil
}

// contentHash hashes the structure without identifiers, so that a layout
// saved, restored, and saved again keeps its hash.
func contentHash(l layout.Layout, tabs map[string]Tab) (string, error) {
	hasher := sha1.New()
	structure, err := json.Marshal(l.StripIDs())
	if err != nil {
		return "", err
	}
	hasher.Write(structure)
	meta, err := json.Marshal(tabs)
	if err != nil {
		return "", err
	}
	hasher.Write(meta)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
