// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// All kernels MUST return these sentinels and tests MUST check them via
// errors.Is. No kernel panics on user-triggered error conditions. Errors are
// wrapped with call context (fmt.Errorf("...: %w")) at the detection site.

package tensor

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (rows<=0 or cols<=0)
	// or when row lengths are ragged in FromRows.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Row) MUST return this, not panic.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrShapeMismatch indicates incompatible operand shapes, e.g. Add/Mul with
	// differing widths, a multi-row right operand with a foreign row count, or
	// Concat along an axis whose complementary dimension differs.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrNilDense indicates that a nil *Dense (receiver or argument) was used.
	ErrNilDense = errors.New("tensor: nil dense")

	// ErrAxis indicates an axis other than 0 (rows) or 1 (cols) was requested.
	ErrAxis = errors.New("tensor: axis must be 0 or 1")
)
