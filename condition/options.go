// Package condition: functional configuration shared by the variant
// constructors. Defaults are documented constants (single source of truth);
// WithX constructors panic only on nonsensical values (programmer error) and
// never at apply time.

package condition

import (
	"math"

	"github.com/katalvlaran/lvlcond/optim"
	"github.com/katalvlaran/lvlcond/tensor"
)

// Defaults for variant construction.
const (
	// DefaultSeed seeds deterministic parameter initialization.
	DefaultSeed int64 = 1

	// DefaultInitScale bounds uniform parameter initialization to
	// [-DefaultInitScale, +DefaultInitScale].
	DefaultInitScale = 0.08

	// DefaultConcatAxis is the feature axis of a (batch, features) layout.
	DefaultConcatAxis = tensor.AxisCols
)

// Internal panic messages (no magic strings).
const (
	panicVocabCapInvalid  = "condition: WithVocabCap: cap must be > 0"
	panicVocabFracInvalid = "condition: WithVocabFraction: fraction must be in (0,1]"
	panicReduceInvalid    = "condition: WithReduce: unknown reducer"
	panicAxisInvalid      = "condition: WithConcatAxis: axis must be tensor.AxisRows or tensor.AxisCols"
	panicInitInvalid      = "condition: WithInitScale: scale must be finite, positive"
)

// cutoffKind tags the vocabulary size-limit policy.
type cutoffKind int

const (
	cutoffNone     cutoffKind = iota // keep all distinct values
	cutoffCap                        // keep exactly the top-N most frequent
	cutoffFraction                   // keep the top fraction×distinct most frequent
)

// Option mutates construction-time configuration. Safe to apply repeatedly;
// last-writer-wins.
type Option func(*options)

// options is the resolved configuration consumed by variant constructors.
// Unexported to prevent external mutation; public entry points accept
// ...Option and resolve via gatherOptions.
type options struct {
	seed      int64
	initScale float64
	reduce    Reduce
	axis      int

	vocabKind cutoffKind
	vocabCap  int
	vocabFrac float64

	optim []optim.Option // forwarded to the condition's own updater
}

// gatherOptions resolves setters against documented defaults.
// Last-writer-wins; O(k) for k options.
func gatherOptions(opts ...Option) options {
	o := options{
		seed:      DefaultSeed,
		initScale: DefaultInitScale,
		reduce:    ReduceNone,
		axis:      DefaultConcatAxis,
		vocabKind: cutoffNone,
	}
	for _, set := range opts {
		set(&o)
	}

	return o
}

// WithSeed fixes the seed for deterministic parameter initialization.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithInitScale bounds uniform parameter initialization to ±scale.
// Panics on non-finite or non-positive scale.
func WithInitScale(scale float64) Option {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		panic(panicInitInvalid)
	}

	return func(o *options) { o.initScale = scale }
}

// WithReduce selects the bag reducer for multi-valued categorical input.
// The default ReduceNone expects single-valued input. Panics on an unknown
// reducer.
func WithReduce(r Reduce) Option {
	if r != ReduceNone && r != ReduceMean && r != ReduceSum && r != ReduceMax {
		panic(panicReduceInvalid)
	}

	return func(o *options) { o.reduce = r }
}

// WithConcatAxis overrides the concatenation axis (default tensor.AxisCols,
// the feature axis). Panics on any other axis.
func WithConcatAxis(axis int) Option {
	if axis != tensor.AxisRows && axis != tensor.AxisCols {
		panic(panicAxisInvalid)
	}

	return func(o *options) { o.axis = axis }
}

// WithVocabCap keeps exactly the top-n most frequent values at Fit time
// (ties broken by first-seen corpus order); everything else maps to the
// reserved index 0. Panics when n <= 0. Mutually exclusive with
// WithVocabFraction; the last one applied wins.
func WithVocabCap(n int) Option {
	if n <= 0 {
		panic(panicVocabCapInvalid)
	}

	return func(o *options) {
		o.vocabKind = cutoffCap
		o.vocabCap = n
	}
}

// WithVocabFraction keeps the top fraction×distinct most frequent values at
// Fit time. Panics unless fraction lies in (0,1].
func WithVocabFraction(fraction float64) Option {
	if math.IsNaN(fraction) || fraction <= 0 || fraction > 1 {
		panic(panicVocabFracInvalid)
	}

	return func(o *options) {
		o.vocabKind = cutoffFraction
		o.vocabFrac = fraction
	}
}

// WithOptim forwards updater options (learning rate, betas, clipping) to the
// condition's own Adam instance.
func WithOptim(opts ...optim.Option) Option {
	return func(o *options) { o.optim = append(o.optim, opts...) }
}
