// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/geometry.go
// Summary: Assigns screen rectangles to the panes of a layout.

package render

import "github.com/framegrace/tablayout/layout"

// Rect is a cell rectangle on screen.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Geometry divides area evenly along each split's direction. Vertical splits
// place children side by side, horizontal splits stack them. The last child
// absorbs any remainder.
func Geometry(l layout.Layout, area Rect) map[layout.NodeID]Rect {
	out := make(map[layout.NodeID]Rect)
	assign(l, area, out)
	return out
}

func assign(l layout.Layout, area Rect, out map[layout.NodeID]Rect) {
	if l.Kind != layout.KindSplit {
		out[l.ID] = area
		return
	}
	n := len(l.Children)
	if n == 0 {
		return
	}
	offset := 0
	for i, child := range l.Children {
		r := area
		if l.Direction == layout.Vertical {
			size := area.Width / n
			if i == n-1 {
				size = area.Width - offset
			}
			r.X, r.Width = area.X+offset, size
			offset += size
		} else {
			size := area.Height / n
			if i == n-1 {
				size = area.Height - offset
			}
			r.Y, r.Height = area.Y+offset, size
			offset += size
		}
		assign(child, r, out)
	}
}

// EdgeAt maps a cell inside r to a drop edge. The outer quarter on each side
// selects that edge; the centre selects no edge.
func EdgeAt(r Rect, x, y int) layout.Edge {
	if !r.Contains(x, y) {
		return layout.EdgeNone
	}
	dx, dy := x-r.X, y-r.Y
	qw, qh := max(r.Width/4, 1), max(r.Height/4, 1)
	switch {
	case dx < qw:
		return layout.EdgeLeft
	case dx >= r.Width-qw:
		return layout.EdgeRight
	case dy < qh:
		return layout.EdgeTop
	case dy >= r.Height-qh:
		return layout.EdgeBottom
	}
	return layout.EdgeNone
}
