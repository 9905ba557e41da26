// Package condition: the three composition strategies.
//
// Each strategy is a small embeddable type. Concrete conditions commit to
// one by embedding (concatenation variants) or by resolving a Mode once at
// construction (the Continuous escape hatch). Every Impose returns a new
// code value so that chained composition stays a pure left-to-right fold.

package condition

import (
	"fmt"

	"github.com/katalvlaran/lvlcond/tensor"
)

// imposer is the strategy surface a condition delegates its Impose to.
type imposer interface {
	Impose(code, encoded *tensor.Dense) (*tensor.Dense, error)
	// widens reports whether this strategy grows the code width
	// (true only for concatenation).
	widens() bool
}

// newImposer resolves a Mode to its strategy exactly once, at construction.
// Returns ErrBadMode for anything outside {Concat, Bias, Scale}.
func newImposer(mode Mode, axis int) (imposer, error) {
	switch mode {
	case Concat:
		return concatImposer{axis: axis}, nil
	case Bias:
		return biasImposer{}, nil
	case Scale:
		return scaleImposer{}, nil
	default:
		return nil, fmt.Errorf("mode %d: %w", int(mode), ErrBadMode)
	}
}

// concatImposer appends the encoding along a fixed axis, widening the code.
type concatImposer struct {
	axis int
}

// Impose returns Concat(code, encoded) along the configured axis.
func (ci concatImposer) Impose(code, encoded *tensor.Dense) (*tensor.Dense, error) {
	out, err := tensor.Concat(code, encoded, ci.axis)
	if err != nil {
		return nil, fmt.Errorf("concat impose: %w", err)
	}

	return out, nil
}

func (concatImposer) widens() bool { return true }

// biasImposer adds the encoding elementwise. The encoding must match the
// running code width (a single row broadcasts over the batch); the strategy
// applies to the ENTIRE code, including any previously concatenated columns.
type biasImposer struct{}

// Impose returns code + encoded.
func (biasImposer) Impose(code, encoded *tensor.Dense) (*tensor.Dense, error) {
	out, err := tensor.Add(code, encoded)
	if err != nil {
		return nil, fmt.Errorf("bias impose: %w", err)
	}

	return out, nil
}

func (biasImposer) widens() bool { return false }

// SizeIncrement of a biasing strategy is 0 by definition.
func (biasImposer) SizeIncrement() int { return 0 }

// scaleImposer multiplies the encoding elementwise; shape contract and scope
// policy are identical to biasing.
type scaleImposer struct{}

// Impose returns code ∘ encoded.
func (scaleImposer) Impose(code, encoded *tensor.Dense) (*tensor.Dense, error) {
	out, err := tensor.Mul(code, encoded)
	if err != nil {
		return nil, fmt.Errorf("scale impose: %w", err)
	}

	return out, nil
}

func (scaleImposer) widens() bool { return false }

// SizeIncrement of a scaling strategy is 0 by definition.
func (scaleImposer) SizeIncrement() int { return 0 }

// noTrain provides the no-op optimizer and mode lifecycle for conditions
// without trainable parameters. Embedding it keeps ZeroGrad/Step/Train/Eval
// unconditionally callable across a mixed list.
type noTrain struct{}

// ZeroGrad is a no-op: nothing to clear.
func (noTrain) ZeroGrad() {}

// Step is a no-op: nothing to update.
func (noTrain) Step() {}

// Train is a no-op: no mode-dependent behavior.
func (noTrain) Train() {}

// Eval is a no-op: no mode-dependent behavior.
func (noTrain) Eval() {}

// modeFlag carries the train/eval switch for trainable variants.
// Constructors start it in training mode, matching the contract default.
type modeFlag struct {
	training bool
}

// Train sets training mode. Idempotent.
func (f *modeFlag) Train() { f.training = true }

// Eval sets evaluation mode. Idempotent.
func (f *modeFlag) Eval() { f.training = false }
