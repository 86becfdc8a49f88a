// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/codec.go
// Summary: Conversion between the nested layout description and the flat arena.
// Usage: Build seeds a tree from input; Snapshot hands a nested copy to renderers.

package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Layout is the nested description of a layout tree. On input ID is ignored;
// on output every node carries its identifier.
type Layout struct {
	ID        NodeID    `json:"id,omitempty"`
	Kind      Kind      `json:"kind"`
	Direction SplitType `json:"direction,omitempty"`
	Children  []Layout  `json:"children,omitempty"`
	Order     []string  `json:"order,omitempty"`
	Active    string    `json:"active,omitempty"`
}

// EmptyLayout is a single pane without tabs.
func EmptyLayout() Layout {
	return Layout{Kind: KindPane}
}

// PaneLayout is a convenience constructor for a pane description.
func PaneLayout(active string, order ...string) Layout {
	return Layout{Kind: KindPane, Order: order, Active: active}
}

// SplitLayout is a convenience constructor for a split description.
func SplitLayout(dir SplitType, children ...Layout) Layout {
	return Layout{Kind: KindSplit, Direction: dir, Children: children}
}

// Build flattens a nested description into a fresh tree. Input that is not
// already normalized is rejected with an error wrapping ErrMalformedLayout.
func Build(input Layout) (*Tree, error) {
	t := newTree()
	root, err := t.flatten(input, 0)
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

func (t *Tree) flatten(in Layout, parent NodeID) (NodeID, error) {
	id := t.allocID()

	switch in.Kind {
	case KindSplit:
		if !in.Direction.valid() {
			return 0, malformed("split with invalid direction %d", int(in.Direction))
		}
		if len(in.Children) < 2 {
			return 0, malformed("split with %d children", len(in.Children))
		}
		n := Node{ID: id, Parent: parent, Kind: KindSplit, Direction: in.Direction}
		n.Children = make([]NodeID, 0, len(in.Children))
		for _, child := range in.Children {
			if child.Kind == KindSplit && child.Direction == in.Direction {
				return 0, malformed("%s split nested in a %s split", child.Direction, in.Direction)
			}
			cid, err := t.flatten(child, id)
			if err != nil {
				return 0, err
			}
			n.Children = append(n.Children, cid)
		}
		t.set(n)

	case KindPane:
		if len(in.Order) == 0 {
			if in.Active != "" {
				return 0, malformed("empty pane with active tab %q", in.Active)
			}
			if parent != 0 {
				return 0, malformed("empty pane inside a split")
			}
		} else if !slices.Contains(in.Order, in.Active) {
			return 0, malformed("active tab %q not in pane order", in.Active)
		}
		for _, tab := range in.Order {
			if tab == "" {
				return 0, malformed("empty tab id")
			}
			if _, dup := t.index[tab]; dup {
				return 0, malformed("tab %q listed twice", tab)
			}
			t.index[tab] = id
		}
		t.set(Node{
			ID:     id,
			Parent: parent,
			Kind:   KindPane,
			Order:  slices.Clone(in.Order),
			Active: in.Active,
		})

	default:
		return 0, malformed("unknown node kind %q", in.Kind)
	}
	return id, nil
}

// Snapshot returns the nested form of the tree with identifiers attached.
func (t *Tree) Snapshot() Layout {
	return t.unflatten(t.root)
}

func (t *Tree) unflatten(id NodeID) Layout {
	n := t.mustNode(id)
	if n.IsPane() {
		return Layout{
			ID:     id,
			Kind:   KindPane,
			Order:  slices.Clone(n.Order),
			Active: n.Active,
		}
	}
	out := Layout{
		ID:        id,
		Kind:      KindSplit,
		Direction: n.Direction,
		Children:  make([]Layout, len(n.Children)),
	}
	for i, child := range n.Children {
		out.Children[i] = t.unflatten(child)
	}
	return out
}

// StripIDs returns a copy of l with every identifier cleared, which is the
// shape Build accepts.
func (l Layout) StripIDs() Layout {
	l.ID = 0
	l.Order = slices.Clone(l.Order)
	if l.Children != nil {
		children := make([]Layout, len(l.Children))
		for i, child := range l.Children {
			children[i] = child.StripIDs()
		}
		l.Children = children
	}
	return l
}

// Tabs lists every tab in the description, depth-first.
func (l Layout) Tabs() []string {
	var out []string
	if l.Kind == KindPane {
		return append(out, l.Order...)
	}
	for _, child := range l.Children {
		out = append(out, child.Tabs()...)
	}
	return out
}

// LoadFile reads a nested layout description encoded as JSON.
func LoadFile(path string) (Layout, error) {
	var l Layout
	data, err := os.ReadFile(path)
	if err != nil {
		return l, err
	}
	if err := json.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("decode layout %s: %w", path, err)
	}
	return l, nil
}
