package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlcond/tensor"
)

// mustDense builds a Dense from literal rows, failing the test on error.
func mustDense(t *testing.T, rows [][]float64) *tensor.Dense {
	t.Helper()
	m, err := tensor.FromRows(rows)
	require.NoError(t, err)

	return m
}

// TestConcat_Cols verifies feature-axis concatenation, the default
// composition axis of the conditioning algebra.
func TestConcat_Cols(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := mustDense(t, [][]float64{{9}, {8}})

	out, err := tensor.Concat(a, b, tensor.AxisCols)
	require.NoError(t, err)

	want := mustDense(t, [][]float64{{1, 2, 9}, {3, 4, 8}})
	assert.True(t, out.Equal(want, 0), "cols concat should append features per row")
}

// TestConcat_Rows verifies batch-axis stacking.
func TestConcat_Rows(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}})
	b := mustDense(t, [][]float64{{3, 4}, {5, 6}})

	out, err := tensor.Concat(a, b, tensor.AxisRows)
	require.NoError(t, err)

	want := mustDense(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	assert.True(t, out.Equal(want, 0))
}

// TestConcat_Errors covers nil operands, bad axes and mismatched shapes.
func TestConcat_Errors(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}})

	_, err := tensor.Concat(nil, a, tensor.AxisCols)
	assert.ErrorIs(t, err, tensor.ErrNilDense)

	_, err = tensor.Concat(a, a, 2)
	assert.ErrorIs(t, err, tensor.ErrAxis)

	b := mustDense(t, [][]float64{{1}, {2}})
	_, err = tensor.Concat(a, b, tensor.AxisCols)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "row counts must match for cols concat")

	c := mustDense(t, [][]float64{{1, 2, 3}})
	_, err = tensor.Concat(a, c, tensor.AxisRows)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "widths must match for rows concat")
}

// TestAdd_SameShape verifies plain elementwise addition without broadcasting.
func TestAdd_SameShape(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := mustDense(t, [][]float64{{10, 20}, {30, 40}})

	out, err := tensor.Add(a, b)
	require.NoError(t, err)
	assert.True(t, out.Equal(mustDense(t, [][]float64{{11, 22}, {33, 44}}), 0))
}

// TestAdd_BroadcastRow verifies the single permitted broadcast: a 1-row right
// operand applied over every row of the left operand.
func TestAdd_BroadcastRow(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	bias := mustDense(t, [][]float64{{0.5, 0.5}})

	out, err := tensor.Add(a, bias)
	require.NoError(t, err)
	assert.True(t, out.Equal(mustDense(t, [][]float64{{1.5, 2.5}, {3.5, 4.5}}), 1e-12))
}

// TestAdd_NoMutation ensures kernels return fresh storage instead of
// accumulating into an operand.
func TestAdd_NoMutation(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}})
	b := mustDense(t, [][]float64{{3, 4}})

	_, err := tensor.Add(a, b)
	require.NoError(t, err)
	assert.True(t, a.Equal(mustDense(t, [][]float64{{1, 2}}), 0), "left operand must be untouched")
	assert.True(t, b.Equal(mustDense(t, [][]float64{{3, 4}}), 0), "right operand must be untouched")
}

// TestMul_BroadcastAndErrors verifies the Hadamard kernel and its shape contract.
func TestMul_BroadcastAndErrors(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	scale := mustDense(t, [][]float64{{2, 0.5}})

	out, err := tensor.Mul(a, scale)
	require.NoError(t, err)
	assert.True(t, out.Equal(mustDense(t, [][]float64{{2, 1}, {6, 2}}), 1e-12))

	// Mismatched widths are asserted, never silently broadcast.
	bad := mustDense(t, [][]float64{{1, 2, 3}})
	_, err = tensor.Mul(a, bad)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	// Multi-row operand with a foreign row count is also rejected.
	bad2 := mustDense(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	_, err = tensor.Mul(a, bad2)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = tensor.Mul(a, nil)
	assert.ErrorIs(t, err, tensor.ErrNilDense)
}
