// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/session_test.go
// Summary: Exercises session restore, autosave, and snapshot integrity.
// Usage: Executed during `go test` to guard against regressions.

package session

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/framegrace/tablayout/config"
	"github.com/framegrace/tablayout/layout"
)

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	return config.Settings{
		SnapshotPath: filepath.Join(t.TempDir(), "session.json"),
		Autosave:     true,
		Strict:       true,
		MaxTabWidth:  18,
	}
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func TestSnapshotStoreSaveAndLoad(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "nested", "snapshot.json"))
	l := layout.SplitLayout(layout.Vertical,
		layout.PaneLayout("a", "a"),
		layout.PaneLayout("b", "b"),
	)
	tabs := map[string]Tab{"a": {Title: "shell"}, "b": {Title: "logs"}}

	if err := store.Save(l, tabs); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Hash == "" || loaded.Timestamp.IsZero() {
		t.Fatalf("missing metadata: %+v", loaded)
	}
	if loaded.Tabs["b"].Title != "logs" {
		t.Fatalf("unexpected tabs %+v", loaded.Tabs)
	}
	if got := loaded.Layout.Tabs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected layout tabs %v", got)
	}
}

func TestSnapshotStoreDetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewSnapshotStore(path)
	if err := store.Save(layout.PaneLayout("a", "a"), map[string]Tab{"a": {Title: "one"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	data = bytes.Replace(data, []byte(`"one"`), []byte(`"two"`), 1)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrSnapshotCorrupt) {
		t.Fatalf("expected ErrSnapshotCorrupt, got %v", err)
	}
}

func TestSessionStartsEmpty(t *testing.T) {
	s, err := New(testSettings(t), quietLogger())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer s.Close()

	tree := s.Manager().Tree()
	if tree.Len() != 1 || tree.TabCount() != 0 {
		t.Fatalf("expected empty root pane, got %d nodes %d tabs", tree.Len(), tree.TabCount())
	}
}

func TestSessionOpenAssignsIDs(t *testing.T) {
	s, err := New(testSettings(t), quietLogger())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer s.Close()

	first, ok := s.Open("shell", 0)
	if !ok {
		t.Fatalf("open rejected")
	}
	second, ok := s.Open("editor", 0)
	if !ok || second == first {
		t.Fatalf("expected a distinct id, got %q and %q", first, second)
	}
	root, _ := s.Manager().Tree().Pane(s.Manager().Tree().Root())
	if len(root.Order) != 2 || root.Order[1] != second || root.Active != second {
		t.Fatalf("expected %s appended and active, got %+v", second, root)
	}
	if s.Title(second) != "editor" {
		t.Fatalf("unexpected title %q", s.Title(second))
	}
	if s.Title("unknown") != "unknown" {
		t.Fatalf("unknown tab should fall back to its id")
	}
	if _, ok := s.Open("x", 99); ok {
		t.Fatalf("open into unknown pane accepted")
	}
}

func TestSessionAutosaveAndRestore(t *testing.T) {
	settings := testSettings(t)
	s, err := New(settings, quietLogger())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	a, _ := s.Open("alpha", 0)
	b, _ := s.Open("beta", 0)
	if !s.Manager().MoveTabSplit(b, s.Manager().Tree().Root(), layout.EdgeRight) {
		t.Fatalf("split rejected")
	}
	if err := s.LastSaveError(); err != nil {
		t.Fatalf("autosave failed: %v", err)
	}
	want := s.Manager().Layout().StripIDs()
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	restored, err := New(settings, quietLogger())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	defer restored.Close()
	got := restored.Manager().Layout().StripIDs()
	if got.Kind != want.Kind || got.Direction != want.Direction || len(got.Children) != 2 {
		t.Fatalf("restored layout %+v, want %+v", got, want)
	}
	if restored.Title(a) != "alpha" || restored.Title(b) != "beta" {
		t.Fatalf("titles not restored")
	}
	c, ok := restored.Open("gamma", 0)
	if !ok || c == a || c == b {
		t.Fatalf("restored session reused an id: %q", c)
	}
}

func TestSessionFallsBackOnCorruptSnapshot(t *testing.T) {
	settings := testSettings(t)
	if err := os.WriteFile(settings.SnapshotPath, []byte(`{"hash":"bad","layout":{"kind":"pane"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var buf bytes.Buffer
	s, err := New(settings, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer s.Close()
	if !strings.Contains(buf.String(), "ignoring snapshot") {
		t.Fatalf("expected corrupt snapshot to be logged, got %q", buf.String())
	}
}

func TestSessionInitialLayoutFile(t *testing.T) {
	settings := testSettings(t)
	settings.Autosave = false
	settings.InitialLayout = filepath.Join(t.TempDir(), "layout.json")
	raw := `{"kind":"split","direction":"horizontal","children":[
		{"kind":"pane","order":["top"],"active":"top"},
		{"kind":"pane","order":["bottom"],"active":"bottom"}]}`
	if err := os.WriteFile(settings.InitialLayout, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := New(settings, quietLogger())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.Title("top") != "top" {
		t.Fatalf("initial tabs should be titled by id")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(settings.SnapshotPath); !os.IsNotExist(err) {
		t.Fatalf("snapshot written with autosave off: %v", err)
	}

	settings.InitialLayout = filepath.Join(t.TempDir(), "missing.json")
	if _, err := New(settings, quietLogger()); err == nil {
		t.Fatalf("expected error for missing initial layout")
	}
}

func TestTransitionLogger(t *testing.T) {
	var buf bytes.Buffer
	obs := NewTransitionLogger(log.New(&buf, "", 0))
	obs.ObserveTransition(layout.SelectTab{Tab: "a"}, true, 2, time.Millisecond)
	if !strings.Contains(buf.String(), "applied=true panes=2") {
		t.Fatalf("unexpected log line %q", buf.String())
	}
	var nilLogger *TransitionLogger
	nilLogger.ObserveTransition(layout.SelectTab{Tab: "a"}, false, 1, 0)
}
