// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/errors.go
// Summary: Error values for construction failures and tree corruption.

package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLayout is wrapped by every construction-time rejection.
	ErrMalformedLayout = errors.New("malformed layout")
	// ErrCorrupt marks a broken internal invariant.
	ErrCorrupt = errors.New("layout data corruption")
)

// CorruptionError is the panic value raised when a transition finds the tree
// in a state its invariants rule out. It indicates a programming error.
type CorruptionError struct {
	Detail string
}

func (e *CorruptionError) Error() string {
	return ErrCorrupt.Error() + ": " + e.Detail
}

func (e *CorruptionError) Unwrap() error { return ErrCorrupt }

func corrupt(format string, args ...any) {
	panic(&CorruptionError{Detail: fmt.Sprintf(format, args...)})
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedLayout, fmt.Sprintf(format, args...))
}
