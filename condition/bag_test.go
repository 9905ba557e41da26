package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlcond/condition"
	"github.com/katalvlaran/lvlcond/tensor"
)

// TestEmbeddingBag_BadDims verifies construction rejects non-positive sizes.
func TestEmbeddingBag_BadDims(t *testing.T) {
	_, err := condition.NewEmbeddingBag(0, 4)
	assert.ErrorIs(t, err, condition.ErrBadDim)

	_, err = condition.NewEmbeddingBag(4, 0)
	assert.ErrorIs(t, err, condition.ErrBadDim)
}

// TestEmbeddingBag_UsableWithoutFit verifies the fixed index space makes the
// condition usable straight after construction, Fit being a no-op.
func TestEmbeddingBag_UsableWithoutFit(t *testing.T) {
	b, err := condition.NewEmbeddingBag(3, 2)
	require.NoError(t, err)

	tr, err := b.Transform([][]int{{0, 2}, {1}})
	require.NoError(t, err)
	enc, err := b.Encode(tr)
	require.NoError(t, err)

	r, cols := enc.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 2, b.SizeIncrement())
	assert.NoError(t, b.Fit(nil), "Fit accepts anything and does nothing")
}

// TestEmbeddingBag_MeanPool verifies a two-index bag encodes to the exact
// mean of the two table rows, and an empty bag to the zero row.
func TestEmbeddingBag_MeanPool(t *testing.T) {
	b, err := condition.NewEmbeddingBag(3, 2)
	require.NoError(t, err)

	params := b.Parameters()
	enc, err := b.Encode([][]int{{0, 1}, {}})
	require.NoError(t, err)

	row, _ := enc.Row(0)
	for j := range row {
		want := (params[0].Data[j] + params[1].Data[j]) / 2
		assert.InDelta(t, want, row[j], 1e-12)
	}
	empty, _ := enc.Row(1)
	assert.Equal(t, []float64{0, 0}, empty)
}

// TestEmbeddingBag_IndexBounds verifies out-of-range indices error with
// ErrBadInput instead of panicking.
func TestEmbeddingBag_IndexBounds(t *testing.T) {
	b, err := condition.NewEmbeddingBag(2, 2)
	require.NoError(t, err)

	_, err = b.Encode([][]int{{2}})
	assert.ErrorIs(t, err, condition.ErrBadInput)
	_, err = b.Encode([][]int{{-1}})
	assert.ErrorIs(t, err, condition.ErrBadInput)
	_, err = b.Encode([][]int{})
	assert.ErrorIs(t, err, condition.ErrBadInput, "empty batch")
	_, err = b.Encode("nope")
	assert.ErrorIs(t, err, condition.ErrBadInput)
}

// TestEmbeddingBag_BackwardScattersMeanGrad verifies Backward distributes
// grad/|bag| to every member and Step moves the touched rows.
func TestEmbeddingBag_BackwardScattersMeanGrad(t *testing.T) {
	b, err := condition.NewEmbeddingBag(3, 2)
	require.NoError(t, err)

	grad, err := tensor.FromRows([][]float64{{2, 4}})
	require.NoError(t, err)

	assert.ErrorIs(t, b.Backward(grad), condition.ErrNoForward, "no forward pass yet")

	b.ZeroGrad()
	_, err = b.Encode([][]int{{0, 2}})
	require.NoError(t, err)
	require.NoError(t, b.Backward(grad))

	params := b.Parameters()
	assert.Equal(t, []float64{1, 2}, params[0].Grad)
	assert.Equal(t, []float64{0, 0}, params[1].Grad, "untouched row stays clean")
	assert.Equal(t, []float64{1, 2}, params[2].Grad)

	before := append([]float64(nil), params[0].Data...)
	b.Step()
	assert.NotEqual(t, before, params[0].Data)
}

// TestEmbeddingBag_EncodeImposeWidens verifies concatenation after the code
// columns.
func TestEmbeddingBag_EncodeImposeWidens(t *testing.T) {
	b, err := condition.NewEmbeddingBag(4, 3)
	require.NoError(t, err)

	code, err := tensor.FromRows([][]float64{{1, 1}})
	require.NoError(t, err)
	out, err := b.EncodeImpose(code, [][]int{{1, 2}})
	require.NoError(t, err)

	_, cols := out.Shape()
	assert.Equal(t, 2+3, cols)
}
