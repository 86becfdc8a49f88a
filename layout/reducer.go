// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/reducer.go
// Summary: Pure state transition function over layout snapshots.
// Usage: Reduce(tree, action) returns the next snapshot and whether it changed.

package layout

import "slices"

// Reduce applies action to t. When the action is rejected it returns t itself
// and false; otherwise a new snapshot and true. t is never modified.
//
// Reduce panics with *CorruptionError if t already violates its invariants.
func Reduce(t *Tree, action Action) (*Tree, bool) {
	d := t.draft()
	var ok bool
	switch a := action.(type) {
	case SelectTab:
		ok = d.selectTab(a)
	case CloseTab:
		ok = d.closeTab(a)
	case MoveTab:
		ok = d.moveTab(a)
	case MoveTabSplit:
		ok = d.moveTabSplit(a)
	case AddTab:
		ok = d.addTab(a)
	default:
		panic("layout: unhandled action type")
	}
	if !ok {
		debugLog.Printf("layout: %s rejected", action)
		return t, false
	}
	debugLog.Printf("layout: %s applied, %d nodes", action, len(d.nodes))
	return d, true
}

func (t *Tree) selectTab(a SelectTab) bool {
	p, ok := t.lookupTab(a.Tab)
	if !ok || !slices.Contains(p.Order, a.Tab) {
		return false
	}
	t.set(selectTab(p, a.Tab))
	return true
}

func (t *Tree) closeTab(a CloseTab) bool {
	p, ok := t.lookupTab(a.Tab)
	if !ok {
		return false
	}
	t.set(removeTab(p, a.Tab))
	t.unindexTab(a.Tab)
	t.collapseEmptyPane(p.ID)
	return true
}

func (t *Tree) moveTab(a MoveTab) bool {
	src, ok := t.lookupTab(a.Tab)
	if !ok {
		return false
	}
	dest, ok := t.nodes[a.Dest]
	if !ok || !dest.IsPane() {
		return false
	}
	if !slices.Contains(src.Order, a.Tab) {
		corrupt("index places tab %q in pane %s which does not list it", a.Tab, src.ID)
	}

	if src.ID == dest.ID {
		t.set(moveTabWithinPane(src, a.Tab, a.Pos))
		return true
	}

	t.set(removeTab(src, a.Tab))
	t.set(insertTab(dest, a.Tab, a.Pos))
	t.index[a.Tab] = dest.ID
	t.collapseEmptyPane(src.ID)
	return true
}

func (t *Tree) moveTabSplit(a MoveTabSplit) bool {
	dest, ok := t.nodes[a.Dest]
	if !ok || !dest.IsPane() {
		return false
	}
	src, ok := t.index[a.Tab]
	if !ok {
		return false
	}
	if src == dest.ID && len(dest.Order) == 1 {
		return false
	}
	dir := a.Edge.Split()
	if !dir.valid() {
		return false
	}

	var parent NodeID
	pos := 0
	if dest.Parent != 0 {
		destParent := t.mustSplit(dest.Parent)
		if destParent.Direction == dir {
			parent = destParent.ID
			pos = slices.Index(destParent.Children, dest.ID)
			if pos < 0 {
				corrupt("pane %s not listed by parent %s", dest.ID, destParent.ID)
			}
		}
	}

	if parent == 0 {
		// The destination moves to a fresh id and a new split takes over its
		// old id and position.
		parent = dest.ID
		moved := t.allocID()
		t.promote(dest.ID, moved, parent)
		t.set(Node{
			ID:        parent,
			Parent:    dest.Parent,
			Kind:      KindSplit,
			Direction: dir,
			Children:  []NodeID{moved},
		})
		if src == dest.ID {
			src = moved
		}
	}
	if a.Edge.after() {
		pos++
	}

	fresh := t.allocID()
	t.set(Node{ID: fresh, Parent: parent, Kind: KindPane})
	split := t.mustSplit(parent)
	split.Children = slices.Insert(slices.Clone(split.Children), pos, fresh)
	t.set(split)

	if !t.moveTab(MoveTab{Tab: a.Tab, Dest: fresh, Pos: 0}) {
		corrupt("moving tab %q from %s into new pane %s failed", a.Tab, src, fresh)
	}
	return true
}

func (t *Tree) addTab(a AddTab) bool {
	if a.Tab == "" {
		return false
	}
	if _, exists := t.index[a.Tab]; exists {
		return false
	}
	dest, ok := t.nodes[a.Dest]
	if !ok || !dest.IsPane() {
		return false
	}
	t.set(insertTab(dest, a.Tab, a.Pos))
	t.index[a.Tab] = dest.ID
	return true
}
