// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tablayout/main.go
// Summary: Entry point for the tab layout demo and script runner.
// Usage: Run on a terminal for the interactive view, or pipe a script into stdin.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/tablayout/config"
	"github.com/framegrace/tablayout/layout"
	"github.com/framegrace/tablayout/session"
)

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	layoutPath := flag.String("layout", "", "Initial layout JSON file, used when no snapshot exists")
	snapshotPath := flag.String("snapshot", "", "Path to persist the session snapshot")
	verboseLogs := flag.Bool("verbose-logs", false, "Enable verbose layout logging")
	strict := flag.Bool("strict", false, "Validate every transition and abort on corruption")
	headless := flag.Bool("headless", false, "Read commands from stdin instead of opening the terminal UI")
	flag.Parse()

	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Config: using defaults: %v", err)
	}
	settings := cfg.Settings()
	if *layoutPath != "" {
		settings.InitialLayout = *layoutPath
	}
	if *snapshotPath != "" {
		settings.SnapshotPath = *snapshotPath
	}
	settings.Strict = settings.Strict || *strict
	settings.Verbose = settings.Verbose || *verboseLogs

	layout.SetVerboseLogging(settings.Verbose)
	session.SetVerboseLogging(settings.Verbose)

	sess, err := session.New(settings, log.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open session: %v\n", err)
		os.Exit(1)
	}

	if *headless || !term.IsTerminal(int(os.Stdin.Fd())) {
		err = runScript(sess, os.Stdin, os.Stdout)
	} else {
		err = runInteractive(sess, settings)
	}
	if cerr := sess.Close(); cerr != nil {
		log.Printf("Session: final save failed: %v", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
