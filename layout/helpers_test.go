package layout

import (
	"reflect"
	"slices"
	"testing"
)

func mustBuild(t *testing.T, l Layout) *Tree {
	t.Helper()
	tree, err := Build(l)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("built tree invalid: %v", err)
	}
	return tree
}

func mustApply(t *testing.T, tree *Tree, action Action) *Tree {
	t.Helper()
	next, ok := Reduce(tree, action)
	if !ok {
		t.Fatalf("%s was rejected", action)
	}
	if err := next.Validate(); err != nil {
		t.Fatalf("after %s: %v", action, err)
	}
	return next
}

func mustReject(t *testing.T, tree *Tree, action Action) {
	t.Helper()
	before := tree.Snapshot()
	next, ok := Reduce(tree, action)
	if ok {
		t.Fatalf("%s should have been rejected", action)
	}
	if next != tree {
		t.Fatalf("%s returned a different snapshot", action)
	}
	if !reflect.DeepEqual(before, tree.Snapshot()) {
		t.Fatalf("%s modified the snapshot", action)
	}
}

func expectPane(t *testing.T, tree *Tree, id NodeID, active string, order ...string) {
	t.Helper()
	p, ok := tree.Pane(id)
	if !ok {
		t.Fatalf("pane %s missing", id)
	}
	if !slices.Equal(p.Order, order) {
		t.Fatalf("pane %s: expected order %v, got %v", id, order, p.Order)
	}
	if p.Active != active {
		t.Fatalf("pane %s: expected active %q, got %q", id, active, p.Active)
	}
	for _, tab := range order {
		if owner, _ := tree.PaneOf(tab); owner != id {
			t.Fatalf("tab %s indexed to %s, expected %s", tab, owner, id)
		}
	}
}

func expectSplit(t *testing.T, tree *Tree, id NodeID, dir SplitType, children ...NodeID) {
	t.Helper()
	n, ok := tree.Node(id)
	if !ok {
		t.Fatalf("split %s missing", id)
	}
	if n.Kind != KindSplit || n.Direction != dir {
		t.Fatalf("node %s: expected %s split, got %s %s", id, dir, n.Direction, n.Kind)
	}
	if !slices.Equal(n.Children, children) {
		t.Fatalf("split %s: expected children %v, got %v", id, children, n.Children)
	}
}
