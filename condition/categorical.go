// Package condition: the categorical-embedding variant.

package condition

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlcond/optim"
	"github.com/katalvlaran/lvlcond/tensor"
)

// CategoricalEmbedding conditions on categorical attributes through a
// trainable lookup table over a frequency-ranked vocabulary.
//
// Lifecycle:
//   - Fit consumes the whole raw corpus ([]string for single-valued
//     attributes, [][]string for multi-valued ones), builds the vocabulary
//     (index 0 reserved for OOV/padding; optional cutoff via WithVocabCap or
//     WithVocabFraction) and allocates the table plus its own Adam updater.
//   - Transform maps raw values to index bags ([][]int); unseen values map
//     to 0 by design.
//   - Encode pads every bag to the batch's maximum length with index 0,
//     embeds, and reduces along the item axis by the configured aggregator
//     (WithReduce; the default expects single-valued bags). The mean reducer
//     divides by the padded length — the zero pad row contributes nothing to
//     the sum but does count toward the divisor.
//   - Impose concatenates along the feature axis: SizeIncrement() == the
//     embedding width.
//
// Row 0 of the table stays frozen at zero, so an out-of-vocabulary value
// always embeds to the same zero vector it pads with.
type CategoricalEmbedding struct {
	concatImposer
	modeFlag

	dim  int
	opts options

	vocab   *Vocabulary
	table   []*optim.Param // row 0 frozen at zero; rows 1.. trainable
	updater optim.Updater

	// forward cache consumed by Backward
	lastBags   [][]int // padded bags from the last Encode
	lastArgmax [][]int // winning item position per (example, feature); ReduceMax only
}

// Compile-time conformance checks.
var (
	_ Condition = (*CategoricalEmbedding)(nil)
	_ Backprop  = (*CategoricalEmbedding)(nil)
	_ Trainable = (*CategoricalEmbedding)(nil)
)

// NewCategoricalEmbedding creates an unfitted categorical condition that
// will embed into embeddingDim features. Returns ErrBadDim when
// embeddingDim <= 0. The condition starts in training mode.
func NewCategoricalEmbedding(embeddingDim int, opts ...Option) (*CategoricalEmbedding, error) {
	if embeddingDim <= 0 {
		return nil, fmt.Errorf("NewCategoricalEmbedding(%d): %w", embeddingDim, ErrBadDim)
	}
	o := gatherOptions(opts...)

	return &CategoricalEmbedding{
		concatImposer: concatImposer{axis: o.axis},
		modeFlag:      modeFlag{training: true},
		dim:           embeddingDim,
		opts:          o,
	}, nil
}

// Fit builds the vocabulary over the entire raw corpus and allocates the
// embedding table and its updater. Refitting replaces all fitted state and
// invalidates code dimensions computed from the previous SizeIncrement.
// Accepts []string or [][]string.
func (c *CategoricalEmbedding) Fit(raw any) error {
	bags, err := toStringBags("CategoricalEmbedding.Fit", raw)
	if err != nil {
		return err
	}
	flat := make([]string, 0, len(bags))
	for _, bag := range bags {
		flat = append(flat, bag...)
	}

	c.vocab = buildVocabulary(flat, c.opts)
	c.table = newTable(c.opts.seed, c.vocab.Len()+1, c.dim, c.opts.initScale, true)
	c.updater = optim.NewAdam(c.table[1:], c.opts.optim...)
	c.lastBags, c.lastArgmax = nil, nil

	return nil
}

// Transform maps raw values ([]string or [][]string) to index bags.
// Out-of-vocabulary values map to the reserved index 0 — never an error.
// Pure: fitted state is read, never mutated.
func (c *CategoricalEmbedding) Transform(raw any) (any, error) {
	if c.vocab == nil {
		return nil, fmt.Errorf("CategoricalEmbedding.Transform: %w", ErrUnfitted)
	}
	bags, err := toStringBags("CategoricalEmbedding.Transform", raw)
	if err != nil {
		return nil, err
	}

	out := make([][]int, len(bags))
	for i, bag := range bags {
		row := make([]int, len(bag))
		for k, tok := range bag {
			row[k] = c.vocab.Lookup(tok)
		}
		out[i] = row
	}

	return out, nil
}

// FitTransform fits on raw and transforms the same input.
func (c *CategoricalEmbedding) FitTransform(raw any) (any, error) {
	if err := c.Fit(raw); err != nil {
		return nil, err
	}

	return c.Transform(raw)
}

// Encode embeds index bags ([][]int) into an (n × dim) Dense: pad to the
// batch maximum length with 0, look up, reduce per the configured aggregator.
// Errors: ErrUnfitted before Fit, ErrBadInput on foreign types or indices
// outside the table, ErrMultiValue for multi-item bags under ReduceNone.
func (c *CategoricalEmbedding) Encode(transformed any) (*tensor.Dense, error) {
	if c.vocab == nil {
		return nil, fmt.Errorf("CategoricalEmbedding.Encode: %w", ErrUnfitted)
	}
	bags, ok := transformed.([][]int)
	if !ok {
		return nil, fmt.Errorf("CategoricalEmbedding.Encode: want [][]int, got %T: %w", transformed, ErrBadInput)
	}
	if len(bags) == 0 {
		return nil, fmt.Errorf("CategoricalEmbedding.Encode: empty batch: %w", ErrBadInput)
	}

	// Determine the padded bag length for this batch.
	maxLen := 1
	for i, bag := range bags {
		if c.opts.reduce == ReduceNone && len(bag) != 1 {
			return nil, fmt.Errorf("CategoricalEmbedding.Encode: bag %d has %d items: %w", i, len(bag), ErrMultiValue)
		}
		if len(bag) > maxLen {
			maxLen = len(bag)
		}
	}

	padded := make([][]int, len(bags))
	for i, bag := range bags {
		row := make([]int, maxLen) // zero-filled: pad index 0
		for k, idx := range bag {
			if idx < 0 || idx >= len(c.table) {
				return nil, fmt.Errorf("CategoricalEmbedding.Encode: index %d outside table of %d rows: %w", idx, len(c.table), ErrBadInput)
			}
			row[k] = idx
		}
		padded[i] = row
	}

	out, err := tensor.NewDense(len(bags), c.dim)
	if err != nil {
		return nil, fmt.Errorf("CategoricalEmbedding.Encode: %w", err)
	}
	var argmax [][]int
	if c.opts.reduce == ReduceMax {
		argmax = make([][]int, len(bags))
	}

	row := make([]float64, c.dim)
	for i, bag := range padded {
		for j := range row {
			row[j] = 0
		}
		switch c.opts.reduce {
		case ReduceMax:
			win := make([]int, c.dim)
			for j := range row {
				row[j] = math.Inf(-1)
			}
			for p, idx := range bag {
				vec := c.table[idx].Data
				for j, v := range vec {
					if v > row[j] {
						row[j] = v
						win[j] = p
					}
				}
			}
			argmax[i] = win
		default: // ReduceNone, ReduceSum, ReduceMean share the running sum
			for _, idx := range bag {
				vec := c.table[idx].Data
				for j, v := range vec {
					row[j] += v
				}
			}
			if c.opts.reduce == ReduceMean {
				inv := 1.0 / float64(maxLen)
				for j := range row {
					row[j] *= inv
				}
			}
		}
		if err = out.SetRow(i, row); err != nil {
			return nil, fmt.Errorf("CategoricalEmbedding.Encode: %w", err)
		}
	}

	c.lastBags = padded
	c.lastArgmax = argmax

	return out, nil
}

// EncodeImpose is the convenience composition Impose(code, Encode(in)).
func (c *CategoricalEmbedding) EncodeImpose(code *tensor.Dense, transformed any) (*tensor.Dense, error) {
	enc, err := c.Encode(transformed)
	if err != nil {
		return nil, err
	}

	return c.Impose(code, enc)
}

// SizeIncrement reports the embedding width this condition concatenates.
func (c *CategoricalEmbedding) SizeIncrement() int { return c.dim }

// Backward scatters the gradient of the last Encode output into the table
// gradients, honoring the configured reducer. The frozen row 0 never
// accumulates. Returns ErrNoForward without a matching preceding Encode.
func (c *CategoricalEmbedding) Backward(grad *tensor.Dense) error {
	if c.lastBags == nil {
		return fmt.Errorf("CategoricalEmbedding.Backward: %w", ErrNoForward)
	}
	r, cols := grad.Shape()
	if r != len(c.lastBags) || cols != c.dim {
		return fmt.Errorf("CategoricalEmbedding.Backward: grad %dx%d for %dx%d forward: %w",
			r, cols, len(c.lastBags), c.dim, ErrNoForward)
	}

	for i, bag := range c.lastBags {
		g, err := grad.Row(i)
		if err != nil {
			return fmt.Errorf("CategoricalEmbedding.Backward: %w", err)
		}
		switch c.opts.reduce {
		case ReduceMax:
			for j, p := range c.lastArgmax[i] {
				if idx := bag[p]; idx != 0 {
					c.table[idx].Grad[j] += g[j]
				}
			}
		case ReduceMean:
			inv := 1.0 / float64(len(bag))
			for _, idx := range bag {
				if idx == 0 {
					continue
				}
				for j, gv := range g {
					c.table[idx].Grad[j] += gv * inv
				}
			}
		default: // ReduceNone, ReduceSum
			for _, idx := range bag {
				if idx == 0 {
					continue
				}
				for j, gv := range g {
					c.table[idx].Grad[j] += gv
				}
			}
		}
	}

	return nil
}

// ZeroGrad clears the owned gradients; safe any number of times before Fit.
func (c *CategoricalEmbedding) ZeroGrad() {
	if c.updater != nil {
		c.updater.ZeroGrad()
	}
}

// Step applies one update via the condition's own Adam; no-op before Fit.
func (c *CategoricalEmbedding) Step() {
	if c.updater != nil {
		c.updater.Step()
	}
}

// Parameters exposes the trainable rows (row 0 excluded) read-only.
func (c *CategoricalEmbedding) Parameters() []*optim.Param {
	if c.table == nil {
		return nil
	}

	return c.table[1:]
}

// Vocab returns the fitted vocabulary, or nil before Fit. Diagnostics only.
func (c *CategoricalEmbedding) Vocab() *Vocabulary { return c.vocab }

// toStringBags normalizes []string (single-valued) and [][]string
// (multi-valued) raw input into bags of strings.
func toStringBags(ctx string, raw any) ([][]string, error) {
	switch v := raw.(type) {
	case []string:
		bags := make([][]string, len(v))
		for i, s := range v {
			bags[i] = []string{s}
		}

		return bags, nil
	case [][]string:
		return v, nil
	default:
		return nil, fmt.Errorf("%s: want []string or [][]string, got %T: %w", ctx, raw, ErrBadInput)
	}
}
