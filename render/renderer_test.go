package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/tablayout/config"
	"github.com/framegrace/tablayout/layout"
)

func snapshot(t *testing.T, in layout.Layout) layout.Layout {
	t.Helper()
	tree, err := layout.Build(in)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return tree.Snapshot()
}

func newScreen(t *testing.T, width, height int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)
	return screen
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	runes := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		ch, _, _, w := screen.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes = append(runes, ch)
		if w > 1 {
			i += w - 1
		}
	}
	return strings.TrimRight(string(runes), " ")
}

func testSettings() config.Settings {
	return config.Settings{TabSeparator: "|", MaxTabWidth: 6}
}

func TestGeometrySplitsEvenly(t *testing.T) {
	l := snapshot(t, layout.SplitLayout(layout.Vertical,
		layout.PaneLayout("a", "a"),
		layout.SplitLayout(layout.Horizontal,
			layout.PaneLayout("b", "b"),
			layout.PaneLayout("c", "c"),
			layout.PaneLayout("d", "d"),
		),
	))
	g := Geometry(l, Rect{Width: 41, Height: 10})

	if g[2] != (Rect{X: 0, Y: 0, Width: 20, Height: 10}) {
		t.Fatalf("left pane %+v", g[2])
	}
	if g[4] != (Rect{X: 20, Y: 0, Width: 21, Height: 3}) {
		t.Fatalf("first stacked pane %+v", g[4])
	}
	if g[6] != (Rect{X: 20, Y: 6, Width: 21, Height: 4}) {
		t.Fatalf("last stacked pane should absorb remainder, got %+v", g[6])
	}
}

func TestEdgeAt(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 8}
	cases := []struct {
		x, y int
		want layout.Edge
	}{
		{10, 14, layout.EdgeLeft},
		{29, 14, layout.EdgeRight},
		{20, 10, layout.EdgeTop},
		{20, 17, layout.EdgeBottom},
		{20, 14, layout.EdgeNone},
		{0, 0, layout.EdgeNone},
	}
	for _, tc := range cases {
		if got := EdgeAt(r, tc.x, tc.y); got != tc.want {
			t.Fatalf("EdgeAt(%d,%d) = %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDrawTabStrip(t *testing.T) {
	screen := newScreen(t, 30, 4)
	titles := map[string]string{"a": "shell", "b": "a-very-long-title"}
	r := New(testSettings(), func(tab string) string { return titles[tab] })

	r.Draw(screen, snapshot(t, layout.PaneLayout("b", "a", "b")))

	strip := readScreenLine(screen, 0, 0, 30)
	if strip != " shell | a-ver…" {
		t.Fatalf("unexpected tab strip %q", strip)
	}
	_, _, style, _ := screen.GetContent(9, 0)
	if style != activeStyle {
		t.Fatalf("active tab not highlighted")
	}
	if body := readScreenLine(screen, 0, 1, 30); !strings.Contains(body, "#1") {
		t.Fatalf("expected pane id in body, got %q", body)
	}
}

func TestDrawClipsWideRunes(t *testing.T) {
	screen := newScreen(t, 6, 2)
	r := New(testSettings(), func(string) string { return "日本語" })
	r.Draw(screen, snapshot(t, layout.PaneLayout("a", "a")))

	// " 日本語 " is 8 cells wide; only whole runes that fit in 6 are drawn.
	if got := readScreenLine(screen, 0, 0, 6); got != " 日本" {
		t.Fatalf("unexpected clipped strip %q", got)
	}
}

func TestHitTestAndTabAt(t *testing.T) {
	screen := newScreen(t, 40, 6)
	r := New(testSettings(), nil)
	r.Draw(screen, snapshot(t, layout.SplitLayout(layout.Vertical,
		layout.PaneLayout("a", "a", "b"),
		layout.PaneLayout("c", "c"),
	)))

	if pane, ok := r.HitTest(5, 3); !ok || pane != 2 {
		t.Fatalf("HitTest left = %s %v", pane, ok)
	}
	if pane, ok := r.HitTest(25, 0); !ok || pane != 3 {
		t.Fatalf("HitTest right = %s %v", pane, ok)
	}
	if _, ok := r.HitTest(50, 50); ok {
		t.Fatalf("HitTest outside screen succeeded")
	}

	// Strip of the left pane: " a | b ".
	if tab, idx, ok := r.TabAt(5, 0); !ok || tab != "b" || idx != 1 {
		t.Fatalf("TabAt = %q %d %v", tab, idx, ok)
	}
	if _, _, ok := r.TabAt(5, 2); ok {
		t.Fatalf("TabAt below the strip succeeded")
	}
}

func TestDropAt(t *testing.T) {
	screen := newScreen(t, 40, 9)
	r := New(testSettings(), nil)
	r.Draw(screen, snapshot(t, layout.PaneLayout("a", "a", "b")))

	if pane, pos, edge, ok := r.DropAt(1, 0); !ok || pane != 1 || pos != 0 || edge != layout.EdgeNone {
		t.Fatalf("strip drop = %s %d %s %v", pane, pos, edge, ok)
	}
	if _, pos, _, _ := r.DropAt(30, 0); pos != 2 {
		t.Fatalf("drop past last label should append, got %d", pos)
	}
	if _, _, edge, _ := r.DropAt(39, 4); edge != layout.EdgeRight {
		t.Fatalf("expected right edge, got %s", edge)
	}
	if _, _, edge, _ := r.DropAt(20, 4); edge != layout.EdgeNone {
		t.Fatalf("expected centre drop, got %s", edge)
	}
}

func TestDescribe(t *testing.T) {
	l := snapshot(t, layout.SplitLayout(layout.Horizontal,
		layout.PaneLayout("b", "a", "b"),
		layout.PaneLayout("c", "c"),
	))
	got := Describe(l, nil)
	want := "split #1 horizontal\n  pane #2  a(a) *b(b)\n  pane #3 *c(c)\n"
	if got != want {
		t.Fatalf("unexpected outline:\n%s", got)
	}
}
