// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/manager.go
// Summary: Owner of the current layout snapshot and its change listeners.
// Usage: One Manager per layout surface; UI events call its methods.

package layout

import (
	"fmt"
	"log"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Listener receives the nested layout and a copy of the tab payloads. The
// values are shared by every listener of one notification and must not be
// modified.
type Listener[T any] func(layout Layout, tabs map[string]T)

// TransitionObserver is told about every action the Manager handles.
type TransitionObserver interface {
	ObserveTransition(action Action, applied bool, panes int, duration time.Duration)
}

type subscription[T any] struct {
	id int
	fn Listener[T]
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	strict   bool
	realm    uuid.UUID
	logger   *log.Logger
	observer TransitionObserver
}

// WithStrictValidation validates the tree after each applied transition and
// panics with *CorruptionError when an invariant fails.
func WithStrictValidation(enabled bool) Option {
	return func(o *options) { o.strict = enabled }
}

// WithRealm fixes the drag-and-drop realm instead of minting a random one.
func WithRealm(realm uuid.UUID) Option {
	return func(o *options) { o.realm = realm }
}

// WithLogger sets the logger used for operational messages.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers an observer for transition metrics.
func WithObserver(obs TransitionObserver) Option {
	return func(o *options) { o.observer = obs }
}

// Manager owns the current tree and the payload of every tab. It is the only
// mutator; readers get immutable snapshots.
type Manager[T any] struct {
	mu        sync.Mutex
	tree      *Tree
	tabs      map[string]T
	listeners []subscription[T]
	nextSub   int
	opts      options
}

// New builds a Manager from a nested layout and the payloads of its tabs.
func New[T any](input Layout, tabs map[string]T, opts ...Option) (*Manager[T], error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.realm == uuid.Nil {
		o.realm = uuid.New()
	}
	if o.logger == nil {
		o.logger = log.Default()
	}

	tree, err := Build(input)
	if err != nil {
		return nil, fmt.Errorf("build layout: %w", err)
	}
	payloads := make(map[string]T, len(tabs))
	for _, tab := range input.Tabs() {
		if v, ok := tabs[tab]; ok {
			payloads[tab] = v
		}
	}
	return &Manager[T]{tree: tree, tabs: payloads, opts: o}, nil
}

// Realm identifies this Manager to drag-and-drop sources.
func (m *Manager[T]) Realm() uuid.UUID { return m.opts.realm }

// Tree returns the current snapshot.
func (m *Manager[T]) Tree() *Tree {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree
}

// Layout returns the nested form of the current snapshot.
func (m *Manager[T]) Layout() Layout {
	return m.Tree().Snapshot()
}

// PaneOf returns the pane holding tab.
func (m *Manager[T]) PaneOf(tab string) (NodeID, bool) {
	return m.Tree().PaneOf(tab)
}

// Tab returns the payload registered for tab.
func (m *Manager[T]) Tab(tab string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.tabs[tab]
	return v, ok
}

// Tabs returns a copy of the payload registry.
func (m *Manager[T]) Tabs() map[string]T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.tabs)
}

// Subscribe registers fn and calls it once with the current state. The
// returned function removes the subscription; calling it again is harmless.
func (m *Manager[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	m.mu.Lock()
	m.nextSub++
	id := m.nextSub
	m.listeners = append(m.listeners, subscription[T]{id: id, fn: fn})
	layout := m.tree.Snapshot()
	tabs := maps.Clone(m.tabs)
	m.mu.Unlock()

	fn(layout, tabs)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.listeners {
			if sub.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// SelectTab activates tab within its pane.
func (m *Manager[T]) SelectTab(tab string) bool {
	return m.Apply(SelectTab{Tab: tab})
}

// CloseTab removes tab from the layout and forgets its payload.
func (m *Manager[T]) CloseTab(tab string) bool {
	return m.Apply(CloseTab{Tab: tab})
}

// MoveTab moves tab to position pos of pane dest.
func (m *Manager[T]) MoveTab(tab string, dest NodeID, pos int) bool {
	return m.Apply(MoveTab{Tab: tab, Dest: dest, Pos: pos})
}

// MoveTabSplit moves tab into a new pane opened on the edge side of dest.
func (m *Manager[T]) MoveTabSplit(tab string, dest NodeID, edge Edge) bool {
	return m.Apply(MoveTabSplit{Tab: tab, Dest: dest, Edge: edge})
}

// AddTab admits a new tab with its payload into pane dest at pos.
func (m *Manager[T]) AddTab(tab string, payload T, dest NodeID, pos int) bool {
	return m.apply(AddTab{Tab: tab, Dest: dest, Pos: pos}, func() {
		m.tabs[tab] = payload
	})
}

// Apply runs action against the current snapshot and notifies listeners when
// it changed the layout.
func (m *Manager[T]) Apply(action Action) bool {
	var commit func()
	switch a := action.(type) {
	case CloseTab:
		commit = func() { delete(m.tabs, a.Tab) }
	case AddTab:
		commit = func() {
			var zero T
			m.tabs[a.Tab] = zero
		}
	}
	return m.apply(action, commit)
}

type notification[T any] struct {
	listeners []subscription[T]
	layout    Layout
	tabs      map[string]T
}

func (m *Manager[T]) apply(action Action, commit func()) bool {
	start := time.Now()
	ok, panes, note := m.transition(action, commit)
	if m.opts.observer != nil {
		m.opts.observer.ObserveTransition(action, ok, panes, time.Since(start))
	}
	for _, sub := range note.listeners {
		sub.fn(note.layout, note.tabs)
	}
	return ok
}

// transition advances the current snapshot under the lock. Listeners are
// collected here and called by the caller once the lock is released.
func (m *Manager[T]) transition(action Action, commit func()) (bool, int, notification[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := Reduce(m.tree, action)
	if !ok {
		return false, len(m.tree.Panes()), notification[T]{}
	}
	if m.opts.strict {
		if err := next.Validate(); err != nil {
			m.opts.logger.Printf("Layout: invariant check failed after %s: %v", action, err)
			panic(&CorruptionError{Detail: fmt.Sprintf("after %s: %v", action, err)})
		}
	}
	m.tree = next
	if commit != nil {
		commit()
	}
	return true, len(next.Panes()), notification[T]{
		listeners: append([]subscription[T](nil), m.listeners...),
		layout:    next.Snapshot(),
		tabs:      maps.Clone(m.tabs),
	}
}
