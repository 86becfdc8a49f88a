// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/tree.go
// Summary: Flat node arena for the tab layout tree.
// Usage: Every snapshot handed to readers is a *Tree; transitions work on drafts.

package layout

import (
	"fmt"
	"slices"
	"strconv"
)

// NodeID identifies a node within one lineage of snapshots. Zero means "none".
type NodeID uint64

func (id NodeID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Kind distinguishes leaf panes from split nodes.
type Kind string

const (
	KindPane  Kind = "pane"
	KindSplit Kind = "split"
)

// SplitType is the orientation of a split node. Vertical splits lay their
// children side by side, horizontal splits stack them.
type SplitType int

const (
	Horizontal SplitType = iota + 1
	Vertical
)

func (s SplitType) String() string {
	switch s {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "SplitType(" + strconv.Itoa(int(s)) + ")"
}

func (s SplitType) valid() bool {
	return s == Horizontal || s == Vertical
}

// MarshalText implements encoding.TextMarshaler.
func (s SplitType) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid split type %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SplitType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "horizontal":
		*s = Horizontal
	case "vertical":
		*s = Vertical
	default:
		return fmt.Errorf("%w: unknown split direction %q", ErrMalformedLayout, text)
	}
	return nil
}

// Node is one record of the arena. Panes use Order and Active, splits use
// Direction and Children.
type Node struct {
	ID        NodeID
	Parent    NodeID
	Kind      Kind
	Direction SplitType
	Children  []NodeID
	Order     []string
	Active    string
}

// IsPane reports whether the node is a leaf tab strip.
func (n Node) IsPane() bool { return n.Kind == KindPane }

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool { return n.Parent == 0 }

func (n Node) clone() Node {
	n.Children = slices.Clone(n.Children)
	n.Order = slices.Clone(n.Order)
	return n
}

// Tree is an immutable snapshot of the layout: the node arena, the root, and
// the tab location index. Methods that return nodes return copies.
type Tree struct {
	nodes  map[NodeID]Node
	root   NodeID
	index  map[string]NodeID
	nextID NodeID
}

func newTree() *Tree {
	return &Tree{
		nodes:  make(map[NodeID]Node),
		index:  make(map[string]NodeID),
		nextID: 1,
	}
}

// draft returns a private copy that a transition may edit. Node records are
// values and every edit replaces slices rather than writing through them, so
// copying the two maps is enough to keep the original snapshot untouched.
func (t *Tree) draft() *Tree {
	d := &Tree{
		nodes:  make(map[NodeID]Node, len(t.nodes)+2),
		index:  make(map[string]NodeID, len(t.index)+1),
		root:   t.root,
		nextID: t.nextID,
	}
	for id, n := range t.nodes {
		d.nodes[id] = n
	}
	for tab, pane := range t.index {
		d.index[tab] = pane
	}
	return d
}

// allocID mints an identifier that has never been used in this lineage.
func (t *Tree) allocID() NodeID {
	id := t.nextID
	t.nextID++
	return id
}

// Root returns the identifier of the root node.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node with the given identifier.
func (t *Tree) Node(id NodeID) (Node, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Pane returns a copy of the pane with the given identifier. It reports false
// when the id is unknown or names a split.
func (t *Tree) Pane(id NodeID) (Node, bool) {
	n, ok := t.nodes[id]
	if !ok || !n.IsPane() {
		return Node{}, false
	}
	return n.clone(), true
}

// PaneOf returns the pane currently holding tab.
func (t *Tree) PaneOf(tab string) (NodeID, bool) {
	id, ok := t.index[tab]
	return id, ok
}

// Panes returns the pane identifiers in depth-first, left-to-right order.
func (t *Tree) Panes() []NodeID {
	var out []NodeID
	t.Walk(func(n Node) {
		if n.IsPane() {
			out = append(out, n.ID)
		}
	})
	return out
}

// TabCount returns the number of tabs indexed by the tree.
func (t *Tree) TabCount() int { return len(t.index) }

// Walk visits every node depth-first starting at the root.
func (t *Tree) Walk(f func(Node)) {
	t.walk(t.root, f)
}

func (t *Tree) walk(id NodeID, f func(Node)) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	f(n.clone())
	for _, child := range n.Children {
		t.walk(child, f)
	}
}

func (t *Tree) mustNode(id NodeID) Node {
	n, ok := t.nodes[id]
	if !ok {
		corrupt("node %s not found", id)
	}
	return n
}

func (t *Tree) mustPane(id NodeID) Node {
	n := t.mustNode(id)
	if !n.IsPane() {
		corrupt("node %s is a split, expected a pane", id)
	}
	return n
}

func (t *Tree) mustSplit(id NodeID) Node {
	n := t.mustNode(id)
	if n.Kind != KindSplit {
		corrupt("node %s is a pane, expected a split", id)
	}
	return n
}

func (t *Tree) set(n Node) {
	t.nodes[n.ID] = n
}

// Validate checks the structural invariants of the tree and the agreement of
// the tab location index with pane contents.
func (t *Tree) Validate() error {
	root, ok := t.nodes[t.root]
	if !ok {
		return fmt.Errorf("root %s missing", t.root)
	}
	if root.Parent != 0 {
		return fmt.Errorf("root %s has parent %s", t.root, root.Parent)
	}

	seen := make(map[NodeID]bool, len(t.nodes))
	owner := make(map[string]NodeID, len(t.index))
	var visit func(id, parent NodeID) error
	visit = func(id, parent NodeID) error {
		if seen[id] {
			return fmt.Errorf("node %s reachable twice", id)
		}
		seen[id] = true
		n, ok := t.nodes[id]
		if !ok {
			return fmt.Errorf("node %s referenced by %s is missing", id, parent)
		}
		if n.ID != id {
			return fmt.Errorf("node stored at %s carries id %s", id, n.ID)
		}
		if n.Parent != parent {
			return fmt.Errorf("node %s has parent %s, expected %s", id, n.Parent, parent)
		}
		switch n.Kind {
		case KindPane:
			if len(n.Children) != 0 {
				return fmt.Errorf("pane %s has children", id)
			}
			if len(n.Order) == 0 {
				if n.Active != "" {
					return fmt.Errorf("empty pane %s has active tab %q", id, n.Active)
				}
				if parent != 0 {
					return fmt.Errorf("empty pane %s is not the root", id)
				}
			} else if !slices.Contains(n.Order, n.Active) {
				return fmt.Errorf("pane %s active tab %q not in order", id, n.Active)
			}
			for _, tab := range n.Order {
				if prev, dup := owner[tab]; dup {
					return fmt.Errorf("tab %q listed by panes %s and %s", tab, prev, id)
				}
				owner[tab] = id
			}
		case KindSplit:
			if !n.Direction.valid() {
				return fmt.Errorf("split %s has invalid direction", id)
			}
			if len(n.Children) < 2 {
				return fmt.Errorf("split %s has %d children", id, len(n.Children))
			}
			for _, child := range n.Children {
				if c, ok := t.nodes[child]; ok && c.Kind == KindSplit && c.Direction == n.Direction {
					return fmt.Errorf("split %s nests same-direction split %s", id, child)
				}
				if err := visit(child, id); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("node %s has unknown kind %q", id, n.Kind)
		}
		return nil
	}
	if err := visit(t.root, 0); err != nil {
		return err
	}
	if len(seen) != len(t.nodes) {
		return fmt.Errorf("%d nodes unreachable from root", len(t.nodes)-len(seen))
	}
	if len(owner) != len(t.index) {
		return fmt.Errorf("index holds %d tabs, panes hold %d", len(t.index), len(owner))
	}
	for tab, pane := range owner {
		if t.index[tab] != pane {
			return fmt.Errorf("index maps tab %q to %s, pane %s lists it", tab, t.index[tab], pane)
		}
	}
	for id := range t.nodes {
		if id >= t.nextID {
			return fmt.Errorf("node %s not below next id %s", id, t.nextID)
		}
	}
	return nil
}
