// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tablayout/interactive.go
// Summary: Terminal UI that renders the session and maps mouse drags to drops.

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/tablayout/config"
	"github.com/framegrace/tablayout/layout"
	"github.com/framegrace/tablayout/render"
	"github.com/framegrace/tablayout/session"
)

type ui struct {
	sess     *session.Session
	screen   tcell.Screen
	renderer *render.Renderer
	focus    layout.NodeID
	dragging string
	buttons  tcell.ButtonMask
}

func runInteractive(sess *session.Session, settings config.Settings) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	u := &ui{
		sess:     sess,
		screen:   screen,
		renderer: render.New(settings, sess.Title),
	}

	redraw := make(chan layout.Layout, 1)
	unsubscribe := sess.Manager().Subscribe(func(l layout.Layout, _ map[string]session.Tab) {
		select {
		case <-redraw:
		default:
		}
		redraw <- l
	})
	defer unsubscribe()

	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case l := <-redraw:
			u.renderer.Draw(screen, l)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !u.handleEvent(ev) {
				return nil
			}
		}
	}
}

// handleEvent returns false when the UI should exit.
func (u *ui) handleEvent(ev tcell.Event) bool {
	mgr := u.sess.Manager()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
		u.renderer.Draw(u.screen, mgr.Layout())
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 't':
			u.sess.Open("shell", u.focusedPane())
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'w':
			if pane, ok := mgr.Tree().Pane(u.focusedPane()); ok && pane.Active != "" {
				mgr.CloseTab(pane.Active)
			}
		case ev.Key() == tcell.KeyTab:
			u.cycle()
		}
	case *tcell.EventMouse:
		u.handleMouse(ev)
	}
	return true
}

func (u *ui) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && u.buttons&tcell.Button1 == 0
	released := buttons&tcell.Button1 == 0 && u.buttons&tcell.Button1 != 0
	u.buttons = buttons

	mgr := u.sess.Manager()
	switch {
	case pressed:
		if pane, ok := u.renderer.HitTest(x, y); ok {
			u.focus = pane
		}
		if tab, _, ok := u.renderer.TabAt(x, y); ok {
			u.dragging = tab
			mgr.SelectTab(tab)
		}
	case released && u.dragging != "":
		tab := u.dragging
		u.dragging = ""
		if over, _, ok := u.renderer.TabAt(x, y); ok && over == tab {
			return
		}
		dest, pos, edge, ok := u.renderer.DropAt(x, y)
		if !ok {
			return
		}
		if mgr.Drop(layout.Drop{Realm: mgr.Realm(), Tab: tab, Dest: dest, Pos: pos, Edge: edge}) {
			u.focus, _ = mgr.PaneOf(tab)
		}
	}
}

func (u *ui) focusedPane() layout.NodeID {
	tree := u.sess.Manager().Tree()
	if _, ok := tree.Pane(u.focus); ok {
		return u.focus
	}
	u.focus = tree.Panes()[0]
	return u.focus
}

func (u *ui) cycle() {
	mgr := u.sess.Manager()
	pane, ok := mgr.Tree().Pane(u.focusedPane())
	if !ok || len(pane.Order) < 2 {
		return
	}
	for i, tab := range pane.Order {
		if tab == pane.Active {
			mgr.SelectTab(pane.Order[(i+1)%len(pane.Order)])
			return
		}
	}
}
