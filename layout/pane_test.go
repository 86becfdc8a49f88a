package layout

import (
	"slices"
	"testing"
)

func paneOf(active string, order ...string) Node {
	return Node{ID: 1, Kind: KindPane, Order: order, Active: active}
}

func TestSelectTabUnknownIsNoop(t *testing.T) {
	p := paneOf("a", "a", "b")
	got := selectTab(p, "zz")
	if got.Active != "a" {
		t.Fatalf("expected active a, got %q", got.Active)
	}
	got = selectTab(p, "b")
	if got.Active != "b" {
		t.Fatalf("expected active b, got %q", got.Active)
	}
}

func TestInsertTabClampsAndActivates(t *testing.T) {
	cases := []struct {
		pos  int
		want []string
	}{
		{-3, []string{"x", "a", "b"}},
		{0, []string{"x", "a", "b"}},
		{1, []string{"a", "x", "b"}},
		{2, []string{"a", "b", "x"}},
		{99, []string{"a", "b", "x"}},
	}
	for _, tc := range cases {
		p := paneOf("a", "a", "b")
		got := insertTab(p, "x", tc.pos)
		if !slices.Equal(got.Order, tc.want) {
			t.Fatalf("pos %d: expected %v, got %v", tc.pos, tc.want, got.Order)
		}
		if got.Active != "x" {
			t.Fatalf("pos %d: inserted tab not active", tc.pos)
		}
		if !slices.Equal(p.Order, []string{"a", "b"}) {
			t.Fatalf("pos %d: input pane modified: %v", tc.pos, p.Order)
		}
	}
}

func TestRemoveTabTieBreak(t *testing.T) {
	order := []string{"a", "b", "c", "d"}
	for i, tab := range order {
		p := paneOf(tab, order...)
		got := removeTab(p, tab)
		after := slices.Delete(slices.Clone(order), i, i+1)
		want := after[min(i, len(order)-2)]
		if got.Active != want {
			t.Fatalf("removing %s at %d: expected active %s, got %s", tab, i, want, got.Active)
		}
		if !slices.Equal(got.Order, after) {
			t.Fatalf("removing %s: expected order %v, got %v", tab, after, got.Order)
		}
	}
}

func TestRemoveInactiveTabKeepsActive(t *testing.T) {
	got := removeTab(paneOf("c", "a", "b", "c"), "a")
	if got.Active != "c" {
		t.Fatalf("expected active c, got %s", got.Active)
	}
}

func TestRemoveLastTabClearsActive(t *testing.T) {
	got := removeTab(paneOf("a", "a"), "a")
	if len(got.Order) != 0 || got.Active != "" {
		t.Fatalf("expected empty pane, got %+v", got)
	}
	same := removeTab(paneOf("a", "a"), "missing")
	if same.Active != "a" || len(same.Order) != 1 {
		t.Fatalf("removing a missing tab changed the pane: %+v", same)
	}
}

func TestMoveTabWithinPane(t *testing.T) {
	p := paneOf("b", "a", "b", "c")
	got := moveTabWithinPane(p, "a", 2)
	if !slices.Equal(got.Order, []string{"b", "c", "a"}) {
		t.Fatalf("unexpected order %v", got.Order)
	}
	if got.Active != "b" {
		t.Fatalf("active changed to %s", got.Active)
	}
	got = moveTabWithinPane(p, "c", -1)
	if !slices.Equal(got.Order, []string{"c", "a", "b"}) {
		t.Fatalf("unexpected order %v", got.Order)
	}
	got = moveTabWithinPane(p, "b", 10)
	if !slices.Equal(got.Order, []string{"a", "c", "b"}) || got.Active != "b" {
		t.Fatalf("unexpected pane %+v", got)
	}
	if !slices.Equal(p.Order, []string{"a", "b", "c"}) {
		t.Fatalf("input pane modified: %v", p.Order)
	}
}
