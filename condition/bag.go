// Package condition: the trainable pooled-embedding (embedding bag) variant.

package condition

import (
	"fmt"

	"github.com/katalvlaran/lvlcond/optim"
	"github.com/katalvlaran/lvlcond/tensor"
)

// EmbeddingBag conditions on bags of indices through a trainable table with
// mean pooling, the classic embedding-bag layer. The vocabulary size is
// fixed at construction, so Fit is a no-op and the condition is usable
// immediately — the caller owns the index space.
//
// Raw input is [][]int: one bag per example, indices in [0, numEmbeddings).
// An empty bag pools to the zero row. Every row of the table is trainable
// (no reserved index here; reservation policy belongs to the caller's index
// space, see CategoricalEmbedding for the vocabulary-owning variant).
type EmbeddingBag struct {
	concatImposer
	modeFlag

	dim     int
	table   []*optim.Param
	updater optim.Updater

	lastBags [][]int // forward cache consumed by Backward
}

// Compile-time conformance checks.
var (
	_ Condition = (*EmbeddingBag)(nil)
	_ Backprop  = (*EmbeddingBag)(nil)
	_ Trainable = (*EmbeddingBag)(nil)
)

// NewEmbeddingBag allocates a (numEmbeddings × embeddingDim) trainable table
// with its own Adam updater. Returns ErrBadDim on non-positive sizes.
// The condition starts in training mode.
func NewEmbeddingBag(numEmbeddings, embeddingDim int, opts ...Option) (*EmbeddingBag, error) {
	if numEmbeddings <= 0 || embeddingDim <= 0 {
		return nil, fmt.Errorf("NewEmbeddingBag(%d,%d): %w", numEmbeddings, embeddingDim, ErrBadDim)
	}
	o := gatherOptions(opts...)
	table := newTable(o.seed, numEmbeddings, embeddingDim, o.initScale, false)

	return &EmbeddingBag{
		concatImposer: concatImposer{axis: o.axis},
		modeFlag:      modeFlag{training: true},
		dim:           embeddingDim,
		table:         table,
		updater:       optim.NewAdam(table, o.optim...),
	}, nil
}

// Fit is a no-op: the index space is fixed at construction.
func (b *EmbeddingBag) Fit(any) error { return nil }

// Transform validates and passes the index bags through unchanged ([][]int).
func (b *EmbeddingBag) Transform(raw any) (any, error) {
	bags, ok := raw.([][]int)
	if !ok {
		return nil, fmt.Errorf("EmbeddingBag.Transform: want [][]int, got %T: %w", raw, ErrBadInput)
	}

	return bags, nil
}

// FitTransform equals Fit followed by Transform; Fit being a no-op, it is
// Transform.
func (b *EmbeddingBag) FitTransform(raw any) (any, error) { return b.Transform(raw) }

// Encode mean-pools the table rows of every bag into an (n × dim) Dense.
// Errors: ErrBadInput on foreign types, out-of-range indices, or an empty
// batch.
func (b *EmbeddingBag) Encode(transformed any) (*tensor.Dense, error) {
	bags, ok := transformed.([][]int)
	if !ok {
		return nil, fmt.Errorf("EmbeddingBag.Encode: want [][]int, got %T: %w", transformed, ErrBadInput)
	}
	if len(bags) == 0 {
		return nil, fmt.Errorf("EmbeddingBag.Encode: empty batch: %w", ErrBadInput)
	}

	out, err := tensor.NewDense(len(bags), b.dim)
	if err != nil {
		return nil, fmt.Errorf("EmbeddingBag.Encode: %w", err)
	}

	row := make([]float64, b.dim)
	for i, bag := range bags {
		for j := range row {
			row[j] = 0
		}
		for _, idx := range bag {
			if idx < 0 || idx >= len(b.table) {
				return nil, fmt.Errorf("EmbeddingBag.Encode: index %d outside table of %d rows: %w", idx, len(b.table), ErrBadInput)
			}
			vec := b.table[idx].Data
			for j, v := range vec {
				row[j] += v
			}
		}
		if len(bag) > 0 {
			inv := 1.0 / float64(len(bag))
			for j := range row {
				row[j] *= inv
			}
		}
		if err = out.SetRow(i, row); err != nil {
			return nil, fmt.Errorf("EmbeddingBag.Encode: %w", err)
		}
	}

	b.lastBags = bags

	return out, nil
}

// EncodeImpose is the convenience composition Impose(code, Encode(in)).
func (b *EmbeddingBag) EncodeImpose(code *tensor.Dense, transformed any) (*tensor.Dense, error) {
	enc, err := b.Encode(transformed)
	if err != nil {
		return nil, err
	}

	return b.Impose(code, enc)
}

// SizeIncrement reports the embedding width this condition concatenates.
func (b *EmbeddingBag) SizeIncrement() int { return b.dim }

// Backward scatters grad/|bag| into each bag member's gradient (the mean
// pool backward). Returns ErrNoForward without a matching preceding Encode.
func (b *EmbeddingBag) Backward(grad *tensor.Dense) error {
	if b.lastBags == nil {
		return fmt.Errorf("EmbeddingBag.Backward: %w", ErrNoForward)
	}
	r, cols := grad.Shape()
	if r != len(b.lastBags) || cols != b.dim {
		return fmt.Errorf("EmbeddingBag.Backward: grad %dx%d for %dx%d forward: %w",
			r, cols, len(b.lastBags), b.dim, ErrNoForward)
	}

	for i, bag := range b.lastBags {
		if len(bag) == 0 {
			continue
		}
		g, err := grad.Row(i)
		if err != nil {
			return fmt.Errorf("EmbeddingBag.Backward: %w", err)
		}
		inv := 1.0 / float64(len(bag))
		for _, idx := range bag {
			for j, gv := range g {
				b.table[idx].Grad[j] += gv * inv
			}
		}
	}

	return nil
}

// ZeroGrad clears the owned gradients.
func (b *EmbeddingBag) ZeroGrad() { b.updater.ZeroGrad() }

// Step applies one update via the condition's own Adam.
func (b *EmbeddingBag) Step() { b.updater.Step() }

// Parameters exposes the table rows read-only.
func (b *EmbeddingBag) Parameters() []*optim.Param { return b.table }
