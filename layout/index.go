// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/index.go
// Summary: Incremental maintenance of the tab location index.

package layout

func (t *Tree) indexTabs(tabs []string, pane NodeID) {
	for _, tab := range tabs {
		t.index[tab] = pane
	}
}

func (t *Tree) unindexTab(tab string) {
	delete(t.index, tab)
}

// lookupTab returns the pane holding tab. A stale index entry pointing at a
// missing node or at a split is corruption.
func (t *Tree) lookupTab(tab string) (Node, bool) {
	id, ok := t.index[tab]
	if !ok {
		return Node{}, false
	}
	return t.mustPane(id), true
}
