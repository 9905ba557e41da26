package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlcond/condition"
	"github.com/katalvlaran/lvlcond/tensor"
)

// fixedContinuous builds a fitted 1→outDim condition whose projection is
// overwritten to emit exactly `vec` for the raw input {1}: W set to zero,
// bias set to vec. That makes imposition arithmetic exact in list tests.
func fixedContinuous(t *testing.T, mode condition.Mode, vec []float64) *condition.Continuous {
	t.Helper()
	c, err := condition.NewContinuous(1, len(vec), mode)
	require.NoError(t, err)
	require.NoError(t, c.Fit([][]float64{{0}, {2}}))

	params := c.Parameters() // outDim weight rows, then the bias
	for o := 0; o < len(vec); o++ {
		params[o].Data[0] = 0
		params[len(vec)].Data[o] = vec[o]
	}

	return c
}

// TestList_ConstructionGuards verifies empty lists, nil conditions, empty
// names and duplicate names are all rejected with their sentinels.
func TestList_ConstructionGuards(t *testing.T) {
	_, err := condition.NewList()
	assert.ErrorIs(t, err, condition.ErrBadInput)

	_, err = condition.NewList(condition.Named{Name: "a", Cond: nil})
	assert.ErrorIs(t, err, condition.ErrNilCondition)

	_, err = condition.NewList(condition.Named{Name: "", Cond: condition.NewMultiHot()})
	assert.ErrorIs(t, err, condition.ErrEmptyName)

	_, err = condition.NewList(
		condition.Named{Name: "dup", Cond: condition.NewMultiHot()},
		condition.Named{Name: "dup", Cond: condition.NewMultiHot()},
	)
	assert.ErrorIs(t, err, condition.ErrDuplicateName)
}

// TestList_OrderAndAccess verifies insertion order is preserved and Get
// finds members by name.
func TestList_OrderAndAccess(t *testing.T) {
	first := condition.NewMultiHot()
	second := condition.NewMultiHot()
	l, err := condition.NewList(
		condition.Named{Name: "genre", Cond: first},
		condition.Named{Name: "year", Cond: second},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"genre", "year"}, l.Names())

	got, ok := l.Get("year")
	assert.True(t, ok)
	assert.Same(t, second, got)
	_, ok = l.Get("missing")
	assert.False(t, ok)
}

// TestList_LengthMismatch verifies every batch operation refuses input
// batches not aligned one-to-one with the conditions.
func TestList_LengthMismatch(t *testing.T) {
	l, err := condition.NewList(condition.Named{Name: "only", Cond: condition.NewMultiHot()})
	require.NoError(t, err)

	assert.ErrorIs(t, l.Fit([]any{1, 2}), condition.ErrLengthMismatch)
	_, err = l.Transform([]any{})
	assert.ErrorIs(t, err, condition.ErrLengthMismatch)
	_, err = l.FitTransform([]any{1, 2})
	assert.ErrorIs(t, err, condition.ErrLengthMismatch)
	_, err = l.Encode([]any{1, 2})
	assert.ErrorIs(t, err, condition.ErrLengthMismatch)
	_, err = l.EncodeImpose(nil, []any{1, 2})
	assert.ErrorIs(t, err, condition.ErrLengthMismatch)
}

// TestList_OrderSensitivity pins the fold semantics down with concrete
// numbers: a bias over the 2-wide code followed by a 1-wide concat yields
// [[1.5, 2.5, 9.0]]; running the concat first widens the code to 3, so the
// same 2-wide bias no longer fits and a 3-wide one is needed.
func TestList_OrderSensitivity(t *testing.T) {
	code, err := tensor.FromRows([][]float64{{1, 2}})
	require.NoError(t, err)
	raw := []any{[][]float64{{1}}, [][]float64{{1}}}

	biasThenConcat, err := condition.NewList(
		condition.Named{Name: "bias", Cond: fixedContinuous(t, condition.Bias, []float64{0.5, 0.5})},
		condition.Named{Name: "concat", Cond: fixedContinuous(t, condition.Concat, []float64{9})},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, biasThenConcat.SizeIncrement())

	tr, err := biasThenConcat.Transform(raw)
	require.NoError(t, err)
	out, err := biasThenConcat.EncodeImpose(code, tr)
	require.NoError(t, err)
	row, _ := out.Row(0)
	assert.Equal(t, []float64{1.5, 2.5, 9}, row)

	// Reversed order: the bias now sees the widened 3-column code and the
	// 2-wide encoding no longer matches.
	concatThenNarrowBias, err := condition.NewList(
		condition.Named{Name: "concat", Cond: fixedContinuous(t, condition.Concat, []float64{9})},
		condition.Named{Name: "bias", Cond: fixedContinuous(t, condition.Bias, []float64{0.5, 0.5})},
	)
	require.NoError(t, err)

	tr, err = concatThenNarrowBias.Transform(raw)
	require.NoError(t, err)
	_, err = concatThenNarrowBias.EncodeImpose(code, tr)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.ErrorContains(t, err, `"bias"`, "the failing member is named in the error")

	// A bias spanning the full widened code restores the pipeline.
	concatThenWideBias, err := condition.NewList(
		condition.Named{Name: "concat", Cond: fixedContinuous(t, condition.Concat, []float64{9})},
		condition.Named{Name: "bias", Cond: fixedContinuous(t, condition.Bias, []float64{0.5, 0.5, 0.5})},
	)
	require.NoError(t, err)

	tr, err = concatThenWideBias.Transform(raw)
	require.NoError(t, err)
	out, err = concatThenWideBias.EncodeImpose(code, tr)
	require.NoError(t, err)
	row, _ = out.Row(0)
	assert.Equal(t, []float64{1.5, 2.5, 9.5}, row)
}

// TestList_SizeIncrementSums verifies the aggregate increment is the sum of
// the members' increments across mixed strategies.
func TestList_SizeIncrementSums(t *testing.T) {
	l, err := condition.NewList(
		condition.Named{Name: "c3", Cond: fixedContinuous(t, condition.Concat, []float64{1, 2, 3})},
		condition.Named{Name: "b2", Cond: fixedContinuous(t, condition.Bias, []float64{0, 0})},
		condition.Named{Name: "c1", Cond: fixedContinuous(t, condition.Concat, []float64{4})},
	)
	require.NoError(t, err)

	assert.Equal(t, 4, l.SizeIncrement())
}

// TestList_ErrorsAreNamed verifies failures inside a member surface the
// member's name, so pipelines with many conditions stay debuggable.
func TestList_ErrorsAreNamed(t *testing.T) {
	cat, err := condition.NewCategoricalEmbedding(2)
	require.NoError(t, err)
	l, err := condition.NewList(condition.Named{Name: "genre", Cond: cat})
	require.NoError(t, err)

	_, err = l.Transform([]any{[]string{"a"}})
	assert.ErrorIs(t, err, condition.ErrUnfitted)
	assert.ErrorContains(t, err, `"genre"`)
}

// TestList_TrainingFanOut verifies ZeroGrad/Step/Train/Eval reach every
// member: one training step through the list moves a trainable member's
// parameters.
func TestList_TrainingFanOut(t *testing.T) {
	cat, err := condition.NewCategoricalEmbedding(2)
	require.NoError(t, err)
	l, err := condition.NewList(
		condition.Named{Name: "genre", Cond: cat},
		condition.Named{Name: "flags", Cond: condition.NewMultiHot()},
	)
	require.NoError(t, err)

	raw := []any{
		[]string{"rock", "jazz", "rock"},
		[]map[string]float64{{"explicit": 1}, {}, {"explicit": 1}},
	}
	tr, err := l.FitTransform(raw)
	require.NoError(t, err)

	code, err := tensor.NewDense(3, 2)
	require.NoError(t, err)
	out, err := l.EncodeImpose(code, tr)
	require.NoError(t, err)
	_, cols := out.Shape()
	assert.Equal(t, 2+l.SizeIncrement(), cols)

	before := append([]float64(nil), cat.Parameters()[0].Data...)
	l.ZeroGrad()
	_, err = cat.Encode(tr[0])
	require.NoError(t, err)
	grad, err := tensor.FromRows([][]float64{{1, 1}, {1, 1}, {1, 1}})
	require.NoError(t, err)
	require.NoError(t, cat.Backward(grad))
	l.Step()
	assert.NotEqual(t, before, cat.Parameters()[0].Data)

	assert.NotPanics(t, func() {
		l.Train()
		l.Eval()
	})
}
