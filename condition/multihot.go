// Package condition: the frequency/count-based multi-hot variant.

package condition

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlcond/tensor"
)

// MultiHot conditions on categorical dictionaries through a fixed
// feature-name→column vocabulary, emitting one multi-hot row per example.
// It carries no trainable parameters.
//
// Raw input is []map[string]float64: one dictionary per example, mapping a
// feature name to its value (1 for plain one-hot/multi-hot indicators, any
// weight otherwise). Fit assigns columns deterministically: keys are sorted
// within each example, then registered first-seen across the corpus.
// Transform already produces the numeric encoding, so Encode is the identity
// required by the default contract.
type MultiHot struct {
	concatImposer
	noTrain

	columns map[string]int
	names   []string // column order, for diagnostics
}

// Compile-time conformance check.
var _ Condition = (*MultiHot)(nil)

// NewMultiHot creates an unfitted multi-hot condition.
func NewMultiHot(opts ...Option) *MultiHot {
	o := gatherOptions(opts...)

	return &MultiHot{concatImposer: concatImposer{axis: o.axis}}
}

// Fit builds the feature→column vocabulary over the entire corpus.
// Returns ErrEmptyVocabulary when no example carries any feature: a
// concatenation condition with zero width would violate its invariant.
func (m *MultiHot) Fit(raw any) error {
	dicts, err := toDicts("MultiHot.Fit", raw)
	if err != nil {
		return err
	}

	columns := make(map[string]int)
	names := make([]string, 0)
	keys := make([]string, 0, 8)
	for _, d := range dicts {
		keys = keys[:0]
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys) // deterministic order within one example
		for _, k := range keys {
			if _, seen := columns[k]; !seen {
				columns[k] = len(names)
				names = append(names, k)
			}
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("MultiHot.Fit: %w", ErrEmptyVocabulary)
	}

	m.columns, m.names = columns, names

	return nil
}

// Transform maps dictionaries to an (n × features) multi-hot Dense.
// Unknown feature names are dropped silently — designed degradation, not an
// error. Errors: ErrUnfitted before Fit, ErrBadInput on foreign types or an
// empty batch.
func (m *MultiHot) Transform(raw any) (any, error) {
	if m.columns == nil {
		return nil, fmt.Errorf("MultiHot.Transform: %w", ErrUnfitted)
	}
	dicts, err := toDicts("MultiHot.Transform", raw)
	if err != nil {
		return nil, err
	}
	if len(dicts) == 0 {
		return nil, fmt.Errorf("MultiHot.Transform: empty batch: %w", ErrBadInput)
	}

	out, err := tensor.NewDense(len(dicts), len(m.names))
	if err != nil {
		return nil, fmt.Errorf("MultiHot.Transform: %w", err)
	}
	for i, d := range dicts {
		for k, v := range d {
			col, known := m.columns[k]
			if !known {
				continue // out-of-vocabulary feature: zero representation
			}
			if err = out.Set(i, col, v); err != nil {
				return nil, fmt.Errorf("MultiHot.Transform: %w", err)
			}
		}
	}

	return out, nil
}

// FitTransform fits on raw and transforms the same input.
func (m *MultiHot) FitTransform(raw any) (any, error) {
	if err := m.Fit(raw); err != nil {
		return nil, err
	}

	return m.Transform(raw)
}

// Encode is the identity: Transform already produced the numeric rows.
// Width checks are deferred to Impose, which asserts against the code shape.
func (m *MultiHot) Encode(transformed any) (*tensor.Dense, error) {
	enc, ok := transformed.(*tensor.Dense)
	if !ok {
		return nil, fmt.Errorf("MultiHot.Encode: want *tensor.Dense, got %T: %w", transformed, ErrBadInput)
	}

	return enc, nil
}

// EncodeImpose is the convenience composition Impose(code, Encode(in)).
func (m *MultiHot) EncodeImpose(code *tensor.Dense, transformed any) (*tensor.Dense, error) {
	enc, err := m.Encode(transformed)
	if err != nil {
		return nil, err
	}

	return m.Impose(code, enc)
}

// SizeIncrement reports the number of feature columns; 0 before Fit.
func (m *MultiHot) SizeIncrement() int { return len(m.names) }

// FeatureNames returns the column order assigned at Fit. The slice is a copy.
func (m *MultiHot) FeatureNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)

	return out
}

// toDicts asserts the []map[string]float64 raw input shape.
func toDicts(ctx string, raw any) ([]map[string]float64, error) {
	dicts, ok := raw.([]map[string]float64)
	if !ok {
		return nil, fmt.Errorf("%s: want []map[string]float64, got %T: %w", ctx, raw, ErrBadInput)
	}

	return dicts, nil
}
