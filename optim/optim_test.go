package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlcond/optim"
)

// TestSGD_StepMovesAgainstGradient verifies p ← p − lr·g.
func TestSGD_StepMovesAgainstGradient(t *testing.T) {
	p := optim.NewParam(2)
	p.Data[0], p.Data[1] = 1.0, -1.0
	p.Grad[0], p.Grad[1] = 0.5, -0.5

	sgd := optim.NewSGD([]*optim.Param{p}, optim.WithLR(0.1))
	sgd.Step()

	assert.InDelta(t, 0.95, p.Data[0], 1e-12)
	assert.InDelta(t, -0.95, p.Data[1], 1e-12)
}

// TestSGD_ZeroGradClears verifies gradient buffers are cleared in place.
func TestSGD_ZeroGradClears(t *testing.T) {
	p := optim.NewParam(3)
	p.Grad[0], p.Grad[1], p.Grad[2] = 1, 2, 3

	sgd := optim.NewSGD([]*optim.Param{p})
	sgd.ZeroGrad()

	assert.Equal(t, []float64{0, 0, 0}, p.Grad)
}

// TestAdam_FirstStepMagnitude checks the well-known Adam property that the
// very first step has magnitude ≈ lr regardless of gradient scale.
func TestAdam_FirstStepMagnitude(t *testing.T) {
	p := optim.NewParam(1)
	p.Grad[0] = 123.0 // large gradient; bias correction normalizes it away

	adam := optim.NewAdam([]*optim.Param{p}, optim.WithLR(0.01))
	adam.Step()

	assert.InDelta(t, -0.01, p.Data[0], 1e-6, "first Adam step magnitude should be ≈ lr")
}

// TestAdam_ZeroGradientIsNoOp ensures Step on cleared gradients leaves the
// parameters untouched — this is what makes unconditional per-iteration Step
// calls safe on freshly constructed conditions.
func TestAdam_ZeroGradientIsNoOp(t *testing.T) {
	p := optim.NewParam(2)
	p.Data[0], p.Data[1] = 3, 4

	adam := optim.NewAdam([]*optim.Param{p})
	adam.Step()
	adam.Step()

	assert.Equal(t, []float64{3, 4}, p.Data, "steps over zero gradients must not move params")
}

// TestAdam_ClipBoundsGradients verifies elementwise clipping before the update.
func TestAdam_ClipBoundsGradients(t *testing.T) {
	p := optim.NewParam(2)
	p.Grad[0], p.Grad[1] = 100, -100

	adam := optim.NewAdam([]*optim.Param{p}, optim.WithClip(1.0))
	adam.Step()

	assert.InDelta(t, 1.0, p.Grad[0], 0, "clip must clamp stored gradients")
	assert.InDelta(t, -1.0, p.Grad[1], 0)
}

// TestAdam_SharedPointerSemantics ensures the updater mutates the exact Param
// storage the owning condition holds, never a copy.
func TestAdam_SharedPointerSemantics(t *testing.T) {
	p := optim.NewParam(1)
	p.Grad[0] = 1

	adam := optim.NewAdam([]*optim.Param{p}, optim.WithLR(0.5))
	adam.Step()

	require.NotEqual(t, 0.0, p.Data[0], "the caller-visible Param must have moved")
}

// TestOptions_PanicOnNonsense documents the constructor contract: invalid
// hyperparameters are programmer errors and panic with stable messages.
func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { optim.WithLR(0) })
	assert.Panics(t, func() { optim.WithLR(-1) })
	assert.Panics(t, func() { optim.WithBetas(1.0, 0.5) })
	assert.Panics(t, func() { optim.WithEps(0) })
	assert.NotPanics(t, func() { optim.WithClip(-5) }, "non-positive clip just disables clipping")
}
