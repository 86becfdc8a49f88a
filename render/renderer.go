// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/renderer.go
// Summary: Draws layout snapshots onto a tcell screen and resolves clicks.
// Usage: The CLI calls Draw after every layout notification and HitTest on mouse input.

package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/tablayout/config"
	"github.com/framegrace/tablayout/layout"
)

var (
	stripStyle  = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	activeStyle = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack).Bold(true)
	bodyStyle   = tcell.StyleDefault
	idStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

type tabSpan struct {
	tab    string
	x0, x1 int
}

type region struct {
	pane layout.NodeID
	rect Rect
	tabs []tabSpan
}

// Renderer draws a layout and remembers where it put each pane.
type Renderer struct {
	separator   string
	maxTabWidth int
	title       func(tab string) string

	mu      sync.Mutex
	regions []region
}

// New creates a renderer from render settings. title maps tab ids to labels;
// nil shows the ids themselves.
func New(settings config.Settings, title func(tab string) string) *Renderer {
	if title == nil {
		title = func(tab string) string { return tab }
	}
	width := settings.MaxTabWidth
	if width < 4 {
		width = 4
	}
	return &Renderer{
		separator:   settings.TabSeparator,
		maxTabWidth: width,
		title:       title,
	}
}

// Draw paints l over the whole screen and shows it.
func (r *Renderer) Draw(screen tcell.Screen, l layout.Layout) {
	width, height := screen.Size()
	screen.Clear()

	geometry := Geometry(l, Rect{Width: width, Height: height})
	var regions []region
	var walk func(layout.Layout)
	walk = func(node layout.Layout) {
		if node.Kind == layout.KindSplit {
			for _, child := range node.Children {
				walk(child)
			}
			return
		}
		rect := geometry[node.ID]
		regions = append(regions, region{
			pane: node.ID,
			rect: rect,
			tabs: r.drawPane(screen, node, rect),
		})
	}
	walk(l)

	r.mu.Lock()
	r.regions = regions
	r.mu.Unlock()
	screen.Show()
}

func (r *Renderer) drawPane(screen tcell.Screen, pane layout.Layout, rect Rect) []tabSpan {
	if rect.Width <= 0 || rect.Height <= 0 {
		return nil
	}
	limit := rect.X + rect.Width

	fill(screen, rect.X, rect.Y, rect.Width, stripStyle)
	var spans []tabSpan
	x := rect.X
	for i, tab := range pane.Order {
		if i > 0 && r.separator != "" {
			x = drawString(screen, x, rect.Y, limit, r.separator, stripStyle)
		}
		label := " " + runewidth.Truncate(r.title(tab), r.maxTabWidth, "…") + " "
		style := stripStyle
		if tab == pane.Active {
			style = activeStyle
		}
		start := x
		x = drawString(screen, x, rect.Y, limit, label, style)
		if x > start {
			spans = append(spans, tabSpan{tab: tab, x0: start, x1: x})
		}
		if x >= limit {
			break
		}
	}

	for row := 1; row < rect.Height; row++ {
		fill(screen, rect.X, rect.Y+row, rect.Width, bodyStyle)
		if rect.X > 0 {
			screen.SetContent(rect.X, rect.Y+row, '│', nil, borderStyle)
		}
	}
	if rect.Height > 1 {
		label := fmt.Sprintf("#%s", pane.ID)
		if len(pane.Order) == 0 {
			label += " (empty)"
		}
		drawString(screen, rect.X+2, rect.Y+1, limit, label, idStyle)
	}
	return spans
}

func fill(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// drawString writes s starting at x and stops before limit. Wide runes that
// would straddle limit are dropped. It returns the next free column.
func drawString(screen tcell.Screen, x, y, limit int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}

// HitTest returns the pane drawn under (x, y) by the last Draw.
func (r *Renderer) HitTest(x, y int) (layout.NodeID, bool) {
	reg, ok := r.regionAt(x, y)
	return reg.pane, ok
}

// TabAt returns the tab whose label covers (x, y) and its index in the pane.
func (r *Renderer) TabAt(x, y int) (string, int, bool) {
	reg, ok := r.regionAt(x, y)
	if !ok || y != reg.rect.Y {
		return "", 0, false
	}
	for i, span := range reg.tabs {
		if x >= span.x0 && x < span.x1 {
			return span.tab, i, true
		}
	}
	return "", 0, false
}

// DropAt resolves a drop at (x, y) into a destination pane, insert position,
// and edge. Drops on the tab strip insert before the tab under the cursor or
// append past the last label; drops on the body pick an edge.
func (r *Renderer) DropAt(x, y int) (layout.NodeID, int, layout.Edge, bool) {
	reg, ok := r.regionAt(x, y)
	if !ok {
		return 0, 0, layout.EdgeNone, false
	}
	if y == reg.rect.Y {
		for i, span := range reg.tabs {
			if x < span.x1 {
				return reg.pane, i, layout.EdgeNone, true
			}
		}
		return reg.pane, len(reg.tabs), layout.EdgeNone, true
	}
	body := Rect{X: reg.rect.X, Y: reg.rect.Y + 1, Width: reg.rect.Width, Height: reg.rect.Height - 1}
	return reg.pane, len(reg.tabs), EdgeAt(body, x, y), true
}

func (r *Renderer) regionAt(x, y int) (region, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regions {
		if reg.rect.Contains(x, y) {
			return reg, true
		}
	}
	return region{}, false
}

// Describe renders l as an indented text outline.
func Describe(l layout.Layout, title func(string) string) string {
	if title == nil {
		title = func(tab string) string { return tab }
	}
	var b strings.Builder
	var walk func(layout.Layout, int)
	walk = func(node layout.Layout, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		if node.Kind == layout.KindSplit {
			fmt.Fprintf(&b, "split #%s %s\n", node.ID, node.Direction)
			for _, child := range node.Children {
				walk(child, depth+1)
			}
			return
		}
		fmt.Fprintf(&b, "pane #%s", node.ID)
		for _, tab := range node.Order {
			marker := " "
			if tab == node.Active {
				marker = "*"
			}
			fmt.Fprintf(&b, " %s%s(%s)", marker, tab, title(tab))
		}
		b.WriteString("\n")
	}
	walk(l, 0)
	return b.String()
}
