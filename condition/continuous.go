// SPDX-License-Identifier: MIT

package condition

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlcond/optim"
	"github.com/katalvlaran/lvlcond/tensor"
)

// Continuous conditions on real-valued feature vectors: Fit learns
// per-column mean and standard deviation, Transform standardizes, and
// Encode projects through a learned affine map y = Wx + b. Unlike the
// other variants its imposition strategy is chosen at construction from
// the Mode enum, so one type covers concat, bias, and scale placements.
//
// Raw input is [][]float64 or *tensor.Dense, one row per example,
// exactly inDim columns.
type Continuous struct {
	modeFlag

	imp    imposer
	inDim  int
	outDim int

	// normalization stats, learned by Fit
	mean []float64
	std  []float64

	// affine projection: w has outDim rows of length inDim, b has length outDim
	w       []*optim.Param
	b       *optim.Param
	updater optim.Updater

	lastInput *tensor.Dense // standardized forward cache for Backward
}

var (
	_ Condition = (*Continuous)(nil)
	_ Backprop  = (*Continuous)(nil)
	_ Trainable = (*Continuous)(nil)
)

// NewContinuous builds an inDim→outDim affine condition imposed with the
// given mode. Returns ErrBadDim on non-positive sizes and ErrBadMode on an
// unknown mode. Note that with Bias or Scale the caller's code width must
// equal outDim (after any preceding concatenations).
func NewContinuous(inDim, outDim int, mode Mode, opts ...Option) (*Continuous, error) {
	if inDim <= 0 || outDim <= 0 {
		return nil, fmt.Errorf("NewContinuous(%d,%d): %w", inDim, outDim, ErrBadDim)
	}
	o := gatherOptions(opts...)
	imp, err := newImposer(mode, o.axis)
	if err != nil {
		return nil, fmt.Errorf("NewContinuous: %w", err)
	}

	w := newTable(o.seed, outDim, inDim, o.initScale, false)
	b := optim.NewParam(outDim)
	params := append(append([]*optim.Param(nil), w...), b)

	return &Continuous{
		modeFlag: modeFlag{training: true},
		imp:      imp,
		inDim:    inDim,
		outDim:   outDim,
		w:        w,
		b:        b,
		updater:  optim.NewAdam(params, o.optim...),
	}, nil
}

// Fit learns per-column mean and standard deviation over the batch.
// Columns with zero variance get std 1 so Transform stays finite.
func (c *Continuous) Fit(raw any) error {
	x, err := c.toDense("Continuous.Fit", raw)
	if err != nil {
		return err
	}
	n, _ := x.Shape()

	mean := make([]float64, c.inDim)
	for i := 0; i < n; i++ {
		row, _ := x.Row(i)
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}

	std := make([]float64, c.inDim)
	for i := 0; i < n; i++ {
		row, _ := x.Row(i)
		for j, v := range row {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / float64(n))
		if std[j] == 0 {
			std[j] = 1
		}
	}

	c.mean, c.std = mean, std
	c.lastInput = nil

	return nil
}

// Transform standardizes each column with the fitted stats and returns a
// fresh *tensor.Dense. Errors: ErrUnfitted before Fit, ErrBadInput on
// foreign types or a width other than inDim.
func (c *Continuous) Transform(raw any) (any, error) {
	if c.mean == nil {
		return nil, fmt.Errorf("Continuous.Transform: %w", ErrUnfitted)
	}
	x, err := c.toDense("Continuous.Transform", raw)
	if err != nil {
		return nil, err
	}
	n, _ := x.Shape()

	out, err := tensor.NewDense(n, c.inDim)
	if err != nil {
		return nil, fmt.Errorf("Continuous.Transform: %w", err)
	}
	row := make([]float64, c.inDim)
	for i := 0; i < n; i++ {
		src, _ := x.Row(i)
		for j, v := range src {
			row[j] = (v - c.mean[j]) / c.std[j]
		}
		if err = out.SetRow(i, row); err != nil {
			return nil, fmt.Errorf("Continuous.Transform: %w", err)
		}
	}

	return out, nil
}

// FitTransform equals Fit followed by Transform on the same batch.
func (c *Continuous) FitTransform(raw any) (any, error) {
	if err := c.Fit(raw); err != nil {
		return nil, err
	}

	return c.Transform(raw)
}

// Encode projects the standardized batch through y = Wx + b.
func (c *Continuous) Encode(transformed any) (*tensor.Dense, error) {
	x, ok := transformed.(*tensor.Dense)
	if !ok {
		return nil, fmt.Errorf("Continuous.Encode: want *tensor.Dense, got %T: %w", transformed, ErrBadInput)
	}
	n, cols := x.Shape()
	if cols != c.inDim {
		return nil, fmt.Errorf("Continuous.Encode: %d columns, want %d: %w", cols, c.inDim, ErrBadInput)
	}

	out, err := tensor.NewDense(n, c.outDim)
	if err != nil {
		return nil, fmt.Errorf("Continuous.Encode: %w", err)
	}
	row := make([]float64, c.outDim)
	for i := 0; i < n; i++ {
		src, _ := x.Row(i)
		for o := 0; o < c.outDim; o++ {
			sum := c.b.Data[o]
			wo := c.w[o].Data
			for j, v := range src {
				sum += wo[j] * v
			}
			row[o] = sum
		}
		if err = out.SetRow(i, row); err != nil {
			return nil, fmt.Errorf("Continuous.Encode: %w", err)
		}
	}

	c.lastInput = x

	return out, nil
}

// Impose places the encoding into the code per the construction-time mode.
func (c *Continuous) Impose(code, encoded *tensor.Dense) (*tensor.Dense, error) {
	return c.imp.Impose(code, encoded)
}

// EncodeImpose is the convenience composition Impose(code, Encode(in)).
func (c *Continuous) EncodeImpose(code *tensor.Dense, transformed any) (*tensor.Dense, error) {
	enc, err := c.Encode(transformed)
	if err != nil {
		return nil, err
	}

	return c.Impose(code, enc)
}

// SizeIncrement is outDim under concat and 0 under bias or scale.
func (c *Continuous) SizeIncrement() int {
	if c.imp.widens() {
		return c.outDim
	}

	return 0
}

// Backward accumulates dW and db from the output gradient and the cached
// standardized input. Returns ErrNoForward without a matching Encode.
func (c *Continuous) Backward(grad *tensor.Dense) error {
	if c.lastInput == nil {
		return fmt.Errorf("Continuous.Backward: %w", ErrNoForward)
	}
	n, cols := grad.Shape()
	xn, _ := c.lastInput.Shape()
	if n != xn || cols != c.outDim {
		return fmt.Errorf("Continuous.Backward: grad %dx%d for %dx%d forward: %w",
			n, cols, xn, c.outDim, ErrNoForward)
	}

	for i := 0; i < n; i++ {
		g, _ := grad.Row(i)
		x, _ := c.lastInput.Row(i)
		for o, gv := range g {
			c.b.Grad[o] += gv
			wg := c.w[o].Grad
			for j, xv := range x {
				wg[j] += gv * xv
			}
		}
	}

	return nil
}

// ZeroGrad clears the owned gradients.
func (c *Continuous) ZeroGrad() { c.updater.ZeroGrad() }

// Step applies one update via the condition's own Adam.
func (c *Continuous) Step() { c.updater.Step() }

// Parameters exposes the projection weights followed by the bias.
func (c *Continuous) Parameters() []*optim.Param {
	return append(append([]*optim.Param(nil), c.w...), c.b)
}

// toDense accepts [][]float64 or *tensor.Dense and asserts the inDim width.
func (c *Continuous) toDense(ctx string, raw any) (*tensor.Dense, error) {
	var x *tensor.Dense
	switch v := raw.(type) {
	case *tensor.Dense:
		x = v
	case [][]float64:
		var err error
		if x, err = tensor.FromRows(v); err != nil {
			return nil, fmt.Errorf("%s: %w", ctx, err)
		}
	default:
		return nil, fmt.Errorf("%s: want [][]float64 or *tensor.Dense, got %T: %w", ctx, raw, ErrBadInput)
	}
	n, cols := x.Shape()
	if n == 0 {
		return nil, fmt.Errorf("%s: empty batch: %w", ctx, ErrBadInput)
	}
	if cols != c.inDim {
		return nil, fmt.Errorf("%s: %d columns, want %d: %w", ctx, cols, c.inDim, ErrBadInput)
	}

	return x, nil
}
