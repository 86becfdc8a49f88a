// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/metrics.go
// Summary: Logs layout transition metrics for diagnostics.

package session

import (
	"log"
	"time"

	"github.com/framegrace/tablayout/layout"
)

// TransitionLogger logs every action handled by a layout manager.
type TransitionLogger struct {
	logger *log.Logger
}

// NewTransitionLogger creates an observer that logs transition metrics.
func NewTransitionLogger(l *log.Logger) *TransitionLogger {
	if l == nil {
		l = log.Default()
	}
	return &TransitionLogger{logger: l}
}

func (t *TransitionLogger) ObserveTransition(action layout.Action, applied bool, panes int, duration time.Duration) {
	if t == nil || t.logger == nil {
		return
	}
	t.logger.Printf("transition action=%s applied=%t panes=%d duration=%s", action, applied, panes, duration)
}
