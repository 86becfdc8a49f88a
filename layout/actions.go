// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/actions.go
// Summary: Action values accepted by the reducer.

package layout

import (
	"fmt"
	"strconv"
)

// Action is one requested transition. The set of actions is closed.
type Action interface {
	action()
	fmt.Stringer
}

// SelectTab makes Tab the active tab of its pane.
type SelectTab struct {
	Tab string
}

// CloseTab removes Tab and collapses its pane if that leaves it empty.
type CloseTab struct {
	Tab string
}

// MoveTab places Tab at Pos in pane Dest, reordering when Dest already holds it.
type MoveTab struct {
	Tab  string
	Dest NodeID
	Pos  int
}

// MoveTabSplit opens a new pane on the Edge side of Dest and moves Tab into it.
type MoveTabSplit struct {
	Tab  string
	Dest NodeID
	Edge Edge
}

// AddTab admits a tab that is not yet part of the layout into pane Dest.
type AddTab struct {
	Tab  string
	Dest NodeID
	Pos  int
}

func (SelectTab) action()    {}
func (CloseTab) action()     {}
func (MoveTab) action()      {}
func (MoveTabSplit) action() {}
func (AddTab) action()       {}

func (a SelectTab) String() string { return "selectTab(" + a.Tab + ")" }
func (a CloseTab) String() string  { return "closeTab(" + a.Tab + ")" }
func (a MoveTab) String() string {
	return fmt.Sprintf("moveTab(%s, %s, %d)", a.Tab, a.Dest, a.Pos)
}
func (a MoveTabSplit) String() string {
	return fmt.Sprintf("moveTabSplit(%s, %s, %s)", a.Tab, a.Dest, a.Edge)
}
func (a AddTab) String() string {
	return fmt.Sprintf("addTab(%s, %s, %d)", a.Tab, a.Dest, a.Pos)
}

// Edge names the side of a pane where a new pane is opened.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "none"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	}
	return "Edge(" + strconv.Itoa(int(e)) + ")"
}

// ParseEdge converts "left", "right", "top" or "bottom" to an Edge.
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "left":
		return EdgeLeft, nil
	case "right":
		return EdgeRight, nil
	case "top":
		return EdgeTop, nil
	case "bottom":
		return EdgeBottom, nil
	}
	return EdgeNone, fmt.Errorf("unknown edge %q", s)
}

// Split returns the orientation of a split that places panes along e.
func (e Edge) Split() SplitType {
	switch e {
	case EdgeLeft, EdgeRight:
		return Vertical
	case EdgeTop, EdgeBottom:
		return Horizontal
	}
	return 0
}

// after reports whether the new pane goes after its neighbour.
func (e Edge) after() bool {
	return e == EdgeRight || e == EdgeBottom
}
