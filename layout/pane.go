// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/pane.go
// Summary: Pure edits on a single pane record.

package layout

import "slices"

func clampPos(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}

// selectTab makes tab active if the pane lists it.
func selectTab(p Node, tab string) Node {
	if !slices.Contains(p.Order, tab) {
		return p
	}
	p.Active = tab
	return p
}

// insertTab places tab at the clamped position and activates it.
func insertTab(p Node, tab string, pos int) Node {
	pos = clampPos(pos, len(p.Order))
	p.Order = slices.Insert(slices.Clone(p.Order), pos, tab)
	p.Active = tab
	return p
}

// removeTab drops tab from the pane. When it was active, the tab that slides
// into its slot becomes active, or the new last tab if it was at the end.
func removeTab(p Node, tab string) Node {
	i := slices.Index(p.Order, tab)
	if i < 0 {
		return p
	}
	p.Order = slices.Delete(slices.Clone(p.Order), i, i+1)
	if len(p.Order) == 0 {
		p.Order = nil
		p.Active = ""
		return p
	}
	if p.Active == tab {
		p.Active = p.Order[min(i, len(p.Order)-1)]
	}
	return p
}

// moveTabWithinPane reorders tab to the clamped position. Active is unchanged.
func moveTabWithinPane(p Node, tab string, pos int) Node {
	i := slices.Index(p.Order, tab)
	if i < 0 {
		return p
	}
	order := slices.Delete(slices.Clone(p.Order), i, i+1)
	pos = clampPos(pos, len(order))
	p.Order = slices.Insert(order, pos, tab)
	return p
}
