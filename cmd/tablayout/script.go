// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tablayout/script.go
// Summary: Line-oriented command interpreter for headless sessions.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/framegrace/tablayout/layout"
	"github.com/framegrace/tablayout/render"
	"github.com/framegrace/tablayout/session"
)

type scriptRunner struct {
	sess *session.Session
	out  io.Writer
}

// runScript executes one command per line. Rejected actions are reported and
// the script continues; malformed commands stop it.
func runScript(sess *session.Session, in io.Reader, out io.Writer) error {
	r := &scriptRunner{sess: sess, out: out}
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := r.exec(strings.Fields(text)); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return scanner.Err()
}

func (r *scriptRunner) exec(args []string) error {
	mgr := r.sess.Manager()
	switch cmd := args[0]; cmd {
	case "open":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: open TITLE [PANE]")
		}
		var pane layout.NodeID
		if len(args) == 3 {
			id, err := parsePane(args[2])
			if err != nil {
				return err
			}
			pane = id
		}
		id, ok := r.sess.Open(args[1], pane)
		if !ok {
			fmt.Fprintf(r.out, "rejected: open %s\n", args[1])
			return nil
		}
		fmt.Fprintln(r.out, id)
	case "select":
		if len(args) != 2 {
			return fmt.Errorf("usage: select TAB")
		}
		r.report(layout.SelectTab{Tab: args[1]}, mgr.SelectTab(args[1]))
	case "close":
		if len(args) != 2 {
			return fmt.Errorf("usage: close TAB")
		}
		r.report(layout.CloseTab{Tab: args[1]}, mgr.CloseTab(args[1]))
	case "move":
		if len(args) != 4 {
			return fmt.Errorf("usage: move TAB PANE POS")
		}
		pane, err := parsePane(args[2])
		if err != nil {
			return err
		}
		pos, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("bad position %q", args[3])
		}
		r.report(layout.MoveTab{Tab: args[1], Dest: pane, Pos: pos}, mgr.MoveTab(args[1], pane, pos))
	case "split":
		if len(args) != 4 {
			return fmt.Errorf("usage: split TAB PANE EDGE")
		}
		pane, err := parsePane(args[2])
		if err != nil {
			return err
		}
		edge, err := layout.ParseEdge(args[3])
		if err != nil {
			return err
		}
		r.report(layout.MoveTabSplit{Tab: args[1], Dest: pane, Edge: edge}, mgr.MoveTabSplit(args[1], pane, edge))
	case "dump":
		fmt.Fprint(r.out, render.Describe(mgr.Layout(), r.sess.Title))
	case "json":
		data, err := json.Marshal(mgr.Layout())
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%s\n", data)
	case "validate":
		if err := mgr.Tree().Validate(); err != nil {
			fmt.Fprintf(r.out, "invalid: %v\n", err)
			return nil
		}
		fmt.Fprintln(r.out, "ok")
	case "save":
		if err := r.sess.Save(); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "saved %s\n", r.sess.Store().Path())
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (r *scriptRunner) report(action layout.Action, applied bool) {
	if !applied {
		fmt.Fprintf(r.out, "rejected: %s\n", action)
	}
}

func parsePane(s string) (layout.NodeID, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("bad pane id %q", s)
	}
	return layout.NodeID(n), nil
}
