// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/session.go
// Summary: Owns one layout surface with tab titles, restore, and autosave.
// Usage: Created by the CLI from config settings; UIs drive it through Manager.

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strconv"
	"sync"

	"github.com/framegrace/tablayout/config"
	"github.com/framegrace/tablayout/layout"
)

// Tab is the payload stored for every tab of a session.
type Tab struct {
	Title string `json:"title"`
}

// Session couples a layout manager with snapshot persistence.
type Session struct {
	manager *layout.Manager[Tab]
	store   *SnapshotStore
	logger  *log.Logger

	mu          sync.Mutex
	nextTab     int
	unsubscribe func()
	lastSaveErr error
}

// New restores the session described by settings. The saved snapshot wins
// over the configured initial layout; with neither, the session starts empty.
func New(settings config.Settings, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		store:  NewSnapshotStore(settings.SnapshotPath),
		logger: logger,
	}

	input, tabs, err := s.initialState(settings)
	if err != nil {
		return nil, err
	}

	mgr, err := layout.New(input, tabs,
		layout.WithStrictValidation(settings.Strict),
		layout.WithLogger(logger),
		layout.WithObserver(NewTransitionLogger(debugLog)),
	)
	if err != nil {
		return nil, err
	}
	s.manager = mgr
	s.nextTab = len(tabs)

	if settings.Autosave {
		s.unsubscribe = mgr.Subscribe(s.autosave)
	}
	return s, nil
}

func (s *Session) initialState(settings config.Settings) (layout.Layout, map[string]Tab, error) {
	stored, err := s.store.Load()
	switch {
	case err == nil:
		debugLog.Printf("Session: restored snapshot from %s (saved %s)", s.store.Path(), stored.Timestamp)
		return stored.Layout, stored.Tabs, nil
	case errors.Is(err, fs.ErrNotExist):
	default:
		s.logger.Printf("Session: ignoring snapshot %s: %v", s.store.Path(), err)
	}

	if settings.InitialLayout == "" {
		return layout.EmptyLayout(), map[string]Tab{}, nil
	}
	input, err := layout.LoadFile(settings.InitialLayout)
	if err != nil {
		return layout.Layout{}, nil, fmt.Errorf("initial layout: %w", err)
	}
	tabs := make(map[string]Tab)
	for _, id := range input.Tabs() {
		tabs[id] = Tab{Title: id}
	}
	return input, tabs, nil
}

func (s *Session) autosave(l layout.Layout, tabs map[string]Tab) {
	err := s.store.Save(l, tabs)
	s.mu.Lock()
	s.lastSaveErr = err
	s.mu.Unlock()
	if err != nil {
		s.logger.Printf("Session: autosave to %s failed: %v", s.store.Path(), err)
	}
}

// Manager exposes the underlying layout manager.
func (s *Session) Manager() *layout.Manager[Tab] { return s.manager }

// Store returns the snapshot store backing the session.
func (s *Session) Store() *SnapshotStore { return s.store }

// Open admits a new tab titled title at the end of pane. A zero pane means
// the first pane in depth-first order. It returns the new tab id.
func (s *Session) Open(title string, pane layout.NodeID) (string, bool) {
	tree := s.manager.Tree()
	if pane == 0 {
		pane = tree.Panes()[0]
	}
	node, ok := tree.Pane(pane)
	if !ok {
		return "", false
	}
	id := s.newTabID()
	if !s.manager.AddTab(id, Tab{Title: title}, pane, len(node.Order)) {
		return "", false
	}
	return id, true
}

func (s *Session) newTabID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		s.nextTab++
		id := "tab-" + strconv.Itoa(s.nextTab)
		if _, taken := s.manager.PaneOf(id); !taken {
			return id
		}
	}
}

// Title returns the title of tab, or the tab id when none is registered.
func (s *Session) Title(tab string) string {
	if t, ok := s.manager.Tab(tab); ok && t.Title != "" {
		return t.Title
	}
	return tab
}

// Save writes the current layout to the snapshot store.
func (s *Session) Save() error {
	return s.store.Save(s.manager.Layout(), s.manager.Tabs())
}

// LastSaveError reports the result of the most recent autosave.
func (s *Session) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// Close stops autosaving and writes a final snapshot when autosave was on.
func (s *Session) Close() error {
	if s.unsubscribe == nil {
		return nil
	}
	s.unsubscribe()
	s.unsubscribe = nil
	return s.Save()
}
