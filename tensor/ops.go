// SPDX-License-Identifier: MIT
// Package tensor: composition kernels (Concat / Add / Mul).
//
// Purpose:
//   - These three kernels are the whole impose algebra of lvlcond. Each one
//     validates its operands, allocates a fresh output Dense and fills it in
//     a deterministic row-major pass. Inputs are never mutated.
//
// Broadcasting policy (single source of truth):
//   - Add/Mul require identical shapes, with ONE exception: a 1-row right
//     operand of matching width broadcasts over every row of the left
//     operand (per-batch bias/scale vectors). Anything else is
//     ErrShapeMismatch — shapes are asserted, never silently stretched.

package tensor

import "fmt"

// Axes accepted by Concat.
const (
	// AxisRows stacks operands vertically (grow the batch).
	AxisRows = 0
	// AxisCols appends operands horizontally (grow the feature width).
	// This is the default composition axis of a (batch, features) layout.
	AxisCols = 1
)

// Concat joins a and b along the given axis and returns a new Dense.
//
//   - axis=AxisCols: a (r×ca), b (r×cb) → out (r×(ca+cb)); row counts must match.
//   - axis=AxisRows: a (ra×c), b (rb×c) → out ((ra+rb)×c); widths must match.
//
// Errors: ErrNilDense, ErrAxis, ErrShapeMismatch.
// Complexity: O(r·c) time and space.
func Concat(a, b *Dense, axis int) (*Dense, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("tensor.Concat: %w", ErrNilDense)
	}
	switch axis {
	case AxisCols:
		if a.r != b.r {
			return nil, fmt.Errorf("tensor.Concat(axis=1): %d vs %d rows: %w", a.r, b.r, ErrShapeMismatch)
		}
		out := &Dense{r: a.r, c: a.c + b.c, data: make([]float64, a.r*(a.c+b.c))}
		for i := 0; i < a.r; i++ {
			dst := i * out.c
			copy(out.data[dst:dst+a.c], a.data[i*a.c:(i+1)*a.c])
			copy(out.data[dst+a.c:dst+out.c], b.data[i*b.c:(i+1)*b.c])
		}

		return out, nil
	case AxisRows:
		if a.c != b.c {
			return nil, fmt.Errorf("tensor.Concat(axis=0): %d vs %d cols: %w", a.c, b.c, ErrShapeMismatch)
		}
		out := &Dense{r: a.r + b.r, c: a.c, data: make([]float64, (a.r+b.r)*a.c)}
		copy(out.data[:len(a.data)], a.data)
		copy(out.data[len(a.data):], b.data)

		return out, nil
	default:
		return nil, fmt.Errorf("tensor.Concat: axis %d: %w", axis, ErrAxis)
	}
}

// Add returns a + b elementwise. A 1-row b of matching width broadcasts over
// every row of a. Errors: ErrNilDense, ErrShapeMismatch.
// Complexity: O(r·c) time and space.
func Add(a, b *Dense) (*Dense, error) {
	return zipWith("Add", a, b, func(x, y float64) float64 { return x + y })
}

// Mul returns the Hadamard product a ∘ b. Same shape and broadcast contract
// as Add. Errors: ErrNilDense, ErrShapeMismatch.
// Complexity: O(r·c) time and space.
func Mul(a, b *Dense) (*Dense, error) {
	return zipWith("Mul", a, b, func(x, y float64) float64 { return x * y })
}

// zipWith is the shared elementwise kernel behind Add and Mul.
// Deterministic i→j order; single flat-buffer pass per operand.
func zipWith(op string, a, b *Dense, f func(x, y float64) float64) (*Dense, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("tensor.%s: %w", op, ErrNilDense)
	}
	if a.c != b.c {
		return nil, fmt.Errorf("tensor.%s: %d vs %d cols: %w", op, a.c, b.c, ErrShapeMismatch)
	}
	broadcast := b.r == 1 && a.r != 1
	if !broadcast && a.r != b.r {
		return nil, fmt.Errorf("tensor.%s: %d vs %d rows: %w", op, a.r, b.r, ErrShapeMismatch)
	}

	out := &Dense{r: a.r, c: a.c, data: make([]float64, len(a.data))}
	for i := 0; i < a.r; i++ {
		base := i * a.c
		bBase := base
		if broadcast {
			bBase = 0 // reuse b's single row for every row of a
		}
		for j := 0; j < a.c; j++ {
			out.data[base+j] = f(a.data[base+j], b.data[bBase+j])
		}
	}

	return out, nil
}
