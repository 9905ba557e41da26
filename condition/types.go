// Package condition: the Condition contract and its supporting enums.
package condition

import (
	"github.com/katalvlaran/lvlcond/optim"
	"github.com/katalvlaran/lvlcond/tensor"
)

// Mode names the three composition strategies. It exists for the
// construction-time dispatch of the Continuous variant and for reporting;
// concrete conditions never branch on it per call.
type Mode int

const (
	// Concat appends the encoding along the feature axis, widening the code.
	Concat Mode = iota
	// Bias adds the encoding elementwise; the code width is unchanged.
	Bias
	// Scale multiplies the encoding elementwise; the code width is unchanged.
	Scale
)

// String returns the mode name for diagnostics.
func (m Mode) String() string {
	switch m {
	case Concat:
		return "concat"
	case Bias:
		return "bias"
	case Scale:
		return "scale"
	default:
		return "invalid"
	}
}

// Reduce selects how a multi-valued index bag is pooled into one vector.
type Reduce int

const (
	// ReduceNone expects single-valued input (bags of exactly one index).
	ReduceNone Reduce = iota
	// ReduceMean averages the embedded items over the padded bag length.
	ReduceMean
	// ReduceSum sums the embedded items.
	ReduceSum
	// ReduceMax takes the elementwise maximum over the embedded items.
	ReduceMax
)

// String returns the reducer name for diagnostics.
func (r Reduce) String() string {
	switch r {
	case ReduceNone:
		return "none"
	case ReduceMean:
		return "mean"
	case ReduceSum:
		return "sum"
	case ReduceMax:
		return "max"
	default:
		return "invalid"
	}
}

// Condition is the full capability set a conditioning unit must satisfy.
// Conformance is verified at compile time (each variant carries a
// `var _ Condition = (*X)(nil)` assertion) — there is no runtime
// capability probing.
//
// Raw and transformed values cross this boundary as `any` because members of
// one ConditionList are heterogeneous (string labels next to numeric rows).
// Each variant documents the concrete types it accepts and returns a wrapped
// ErrBadInput for anything else.
type Condition interface {
	// Fit consumes the ENTIRE raw corpus for this condition (not a
	// mini-batch) and builds the fitted state. Must be called before any
	// Transform/Encode that requires fitted state. Refitting silently
	// replaces the prior fitted state and invalidates any code dimensions
	// computed from the old SizeIncrement. Stateless conditions implement
	// Fit as a no-op returning nil.
	Fit(raw any) error

	// Transform deterministically maps raw domain values to the normalized
	// representation Encode expects (index bags, dense rows). It never
	// mutates fitted state: calling it twice on identical input yields
	// identical output. Out-of-vocabulary values map to the reserved
	// index/zero representation — never an error.
	Transform(raw any) (any, error)

	// FitTransform is Fit followed by Transform on the same input. Variants
	// may override the composition for efficiency but must produce output
	// identical to the two separate calls.
	FitTransform(raw any) (any, error)

	// Encode maps a transformed batch to its numeric encoding: a Dense with
	// one row per example and a fixed trailing width — SizeIncrement() for
	// concatenation conditions, the expected code width for bias/scale.
	// May invoke trainable parameters.
	Encode(transformed any) (*tensor.Dense, error)

	// Impose merges the encoding into code per the condition's strategy and
	// returns a NEW code value; neither operand is mutated. Incompatible
	// shapes fail here, immediately.
	Impose(code, encoded *tensor.Dense) (*tensor.Dense, error)

	// EncodeImpose is the convenience composition Impose(code, Encode(in)).
	EncodeImpose(code *tensor.Dense, transformed any) (*tensor.Dense, error)

	// SizeIncrement reports the width this condition adds to the code:
	// positive for concatenation (meaningful once the encoding width is
	// known, i.e. after Fit for vocabulary-sized variants), always 0 for
	// bias/scale.
	SizeIncrement() int

	// ZeroGrad clears owned gradient accumulators. Called before every
	// backward pass; a cheap no-op on non-trainable conditions and safe any
	// number of times before Fit.
	ZeroGrad()

	// Step applies one update to owned trainable parameters via the bound
	// updater. Called after every backward pass; no-op when there is nothing
	// to train (including before Fit on vocabulary-sized variants).
	Step()

	// Train switches mode-dependent behavior to training mode (the default).
	// Idempotent; no side effects beyond the flag.
	Train()

	// Eval switches mode-dependent behavior to evaluation mode.
	// Idempotent; no side effects beyond the flag.
	Eval()
}

// Backprop is the optional capability of trainable conditions: it scatters
// the gradient of the loss with respect to the condition's LAST Encode output
// into the owned parameter gradients. The external loop calls it between
// ZeroGrad and Step. grad must match the last Encode output's shape.
type Backprop interface {
	Backward(grad *tensor.Dense) error
}

// Trainable exposes a condition's owned parameters read-only (diagnostics,
// checkpointing). The returned slice aliases live storage: callers must not
// mutate it.
type Trainable interface {
	Parameters() []*optim.Param
}
