// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/drop.go
// Summary: Realm-scoped entry point for drag-and-drop collaborators.

package layout

import "github.com/google/uuid"

// Drop is a gesture result: drop Tab on pane Dest, either at tab position Pos
// (Edge == EdgeNone) or into a new pane on the Edge side of Dest.
type Drop struct {
	Realm uuid.UUID
	Tab   string
	Dest  NodeID
	Pos   int
	Edge  Edge
}

// Action converts the drop into the reducer action it stands for.
func (d Drop) Action() Action {
	if d.Edge == EdgeNone {
		return MoveTab{Tab: d.Tab, Dest: d.Dest, Pos: d.Pos}
	}
	return MoveTabSplit{Tab: d.Tab, Dest: d.Dest, Edge: d.Edge}
}

// CanDrop reports whether d originates from this Manager's realm and targets
// a known tab and pane. Drop targets use it to decide whether to highlight.
func (m *Manager[T]) CanDrop(d Drop) bool {
	if d.Realm != m.opts.realm {
		return false
	}
	t := m.Tree()
	if _, ok := t.PaneOf(d.Tab); !ok {
		return false
	}
	_, ok := t.Pane(d.Dest)
	return ok
}

// Drop applies d if CanDrop accepts it.
func (m *Manager[T]) Drop(d Drop) bool {
	if !m.CanDrop(d) {
		debugLog.Printf("layout: drop of %q from realm %s refused", d.Tab, d.Realm)
		return false
	}
	return m.Apply(d.Action())
}
