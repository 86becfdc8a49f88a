// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/surgery.go
// Summary: Structural repairs that restore normalization after an edit.
// Usage: Called by the reducer on a draft; never on a published snapshot.

package layout

import "slices"

func (t *Tree) reparent(children []NodeID, parent NodeID) {
	for _, id := range children {
		child := t.mustNode(id)
		child.Parent = parent
		t.set(child)
	}
}

// promote relabels node from as to and hangs it under parent. Children of a
// split follow the new id; tabs of a pane are re-indexed to it.
func (t *Tree) promote(from, to, parent NodeID) {
	n := t.mustNode(from)
	delete(t.nodes, from)
	n.ID = to
	n.Parent = parent
	t.set(n)

	if n.IsPane() {
		t.indexTabs(n.Order, to)
	} else {
		t.reparent(n.Children, to)
	}
	if parent == 0 {
		t.root = to
	}
	debugLog.Printf("layout: promote %s -> %s (parent %s)", from, to, parent)
}

// mergeIntoParent splices a split into its parent when both share a
// direction. Anything else is left alone.
func (t *Tree) mergeIntoParent(id NodeID) {
	n := t.mustNode(id)
	if n.Parent == 0 || n.Kind != KindSplit {
		return
	}
	parent := t.mustSplit(n.Parent)
	if parent.Direction != n.Direction {
		return
	}
	i := slices.Index(parent.Children, id)
	if i < 0 {
		corrupt("split %s not listed by parent %s", id, parent.ID)
	}

	children := slices.Delete(slices.Clone(parent.Children), i, i+1)
	parent.Children = slices.Insert(children, i, n.Children...)
	t.set(parent)
	delete(t.nodes, id)
	t.reparent(n.Children, parent.ID)
	debugLog.Printf("layout: merged %s split %s into %s", n.Direction, id, parent.ID)
}

// collapseEmptyPane removes an empty non-root pane. A parent left with one
// child is replaced by that child, which may then fold into the grandparent.
func (t *Tree) collapseEmptyPane(id NodeID) {
	p := t.mustPane(id)
	if len(p.Order) > 0 || p.Parent == 0 {
		return
	}
	delete(t.nodes, id)

	parent := t.mustSplit(p.Parent)
	i := slices.Index(parent.Children, id)
	if i < 0 {
		corrupt("pane %s not listed by parent %s", id, parent.ID)
	}
	remaining := slices.Delete(slices.Clone(parent.Children), i, i+1)
	if len(remaining) > 1 {
		parent.Children = remaining
		t.set(parent)
		debugLog.Printf("layout: dropped empty pane %s from %s", id, parent.ID)
		return
	}
	if len(remaining) == 0 {
		corrupt("split %s had a single child %s", parent.ID, id)
	}

	debugLog.Printf("layout: unsplit %s after closing pane %s", parent.ID, id)
	t.promote(remaining[0], parent.ID, parent.Parent)
	t.mergeIntoParent(parent.ID)
}
