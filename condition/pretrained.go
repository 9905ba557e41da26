// Package condition: the pretrained-embedding variant.

package condition

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlcond/tensor"
)

// PretrainedEmbedding conditions on token sequences through an externally
// supplied, fixed vocabulary and embedding table. Nothing here trains: the
// vectors stay exactly as supplied. Fit computes smoothed inverse document
// frequencies over the corpus; Encode emits the IDF-weighted average of the
// pretrained vectors per example (term frequency × IDF weighting, the usual
// frequency-weighted vectorizer).
//
// Raw input is [][]string: one token sequence per example. Tokens outside
// the supplied vocabulary are dropped at Transform time; an example whose
// tokens are all unknown encodes to the zero row — designed degradation.
type PretrainedEmbedding struct {
	concatImposer
	noTrain

	dim     int
	index   map[string]int
	vectors [][]float64 // one pretrained vector per vocabulary entry

	idf []float64 // fitted smoothed IDF per vocabulary entry; nil before Fit
}

// Compile-time conformance check.
var _ Condition = (*PretrainedEmbedding)(nil)

// NewPretrainedEmbedding wraps a fixed vocabulary and its embedding table.
// vocab and vectors must be aligned and non-empty, and every vector must
// share one width; violations return ErrBadInput (or ErrBadDim for an empty
// width). A token repeated in vocab keeps its first row.
func NewPretrainedEmbedding(vocab []string, vectors [][]float64, opts ...Option) (*PretrainedEmbedding, error) {
	if len(vocab) == 0 || len(vocab) != len(vectors) {
		return nil, fmt.Errorf("NewPretrainedEmbedding: %d tokens for %d vectors: %w", len(vocab), len(vectors), ErrBadInput)
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("NewPretrainedEmbedding: empty vectors: %w", ErrBadDim)
	}

	index := make(map[string]int, len(vocab))
	rows := make([][]float64, len(vocab))
	for i, tok := range vocab {
		if len(vectors[i]) != dim {
			return nil, fmt.Errorf("NewPretrainedEmbedding: vector %d has width %d, want %d: %w", i, len(vectors[i]), dim, ErrBadInput)
		}
		if _, seen := index[tok]; !seen {
			index[tok] = i // first occurrence wins
		}
		rows[i] = append([]float64(nil), vectors[i]...) // deep copy
	}
	o := gatherOptions(opts...)

	return &PretrainedEmbedding{
		concatImposer: concatImposer{axis: o.axis},
		dim:           dim,
		index:         index,
		vectors:       rows,
	}, nil
}

// Fit computes smoothed IDF weights over the whole corpus:
// idf(t) = ln((1+N)/(1+df(t))) + 1, with df counting documents containing t.
// Refitting replaces the weights.
func (p *PretrainedEmbedding) Fit(raw any) error {
	docs, err := toTokenDocs("PretrainedEmbedding.Fit", raw)
	if err != nil {
		return err
	}

	df := make([]int, len(p.vectors))
	seen := make(map[int]bool, 16)
	for _, doc := range docs {
		for k := range seen {
			delete(seen, k)
		}
		for _, tok := range doc {
			if row, known := p.index[tok]; known && !seen[row] {
				seen[row] = true
				df[row]++
			}
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(p.vectors))
	for row := range idf {
		idf[row] = math.Log((1+n)/(1+float64(df[row]))) + 1
	}
	p.idf = idf

	return nil
}

// Transform maps token documents ([][]string) to vocabulary row indices
// ([][]int); unknown tokens are dropped. Requires Fit (the lifecycle holds
// even though IDF is consumed only at Encode).
func (p *PretrainedEmbedding) Transform(raw any) (any, error) {
	if p.idf == nil {
		return nil, fmt.Errorf("PretrainedEmbedding.Transform: %w", ErrUnfitted)
	}
	docs, err := toTokenDocs("PretrainedEmbedding.Transform", raw)
	if err != nil {
		return nil, err
	}

	out := make([][]int, len(docs))
	for i, doc := range docs {
		row := make([]int, 0, len(doc))
		for _, tok := range doc {
			if idx, known := p.index[tok]; known {
				row = append(row, idx)
			}
		}
		out[i] = row
	}

	return out, nil
}

// FitTransform fits on raw and transforms the same input.
func (p *PretrainedEmbedding) FitTransform(raw any) (any, error) {
	if err := p.Fit(raw); err != nil {
		return nil, err
	}

	return p.Transform(raw)
}

// Encode emits one (tf·idf)-weighted average of pretrained vectors per
// example: Σ w·vec / Σ w over the distinct rows of the bag, w = tf·idf.
// An empty bag yields the zero row. Errors: ErrUnfitted before Fit,
// ErrBadInput on foreign types, indices outside the table, or empty batches.
func (p *PretrainedEmbedding) Encode(transformed any) (*tensor.Dense, error) {
	if p.idf == nil {
		return nil, fmt.Errorf("PretrainedEmbedding.Encode: %w", ErrUnfitted)
	}
	bags, ok := transformed.([][]int)
	if !ok {
		return nil, fmt.Errorf("PretrainedEmbedding.Encode: want [][]int, got %T: %w", transformed, ErrBadInput)
	}
	if len(bags) == 0 {
		return nil, fmt.Errorf("PretrainedEmbedding.Encode: empty batch: %w", ErrBadInput)
	}

	out, err := tensor.NewDense(len(bags), p.dim)
	if err != nil {
		return nil, fmt.Errorf("PretrainedEmbedding.Encode: %w", err)
	}

	row := make([]float64, p.dim)
	tf := make(map[int]int, 16)
	distinct := make([]int, 0, 16) // first-occurrence order keeps sums deterministic
	for i, bag := range bags {
		for j := range row {
			row[j] = 0
		}
		for k := range tf {
			delete(tf, k)
		}
		distinct = distinct[:0]
		for _, idx := range bag {
			if idx < 0 || idx >= len(p.vectors) {
				return nil, fmt.Errorf("PretrainedEmbedding.Encode: index %d outside table of %d rows: %w", idx, len(p.vectors), ErrBadInput)
			}
			if tf[idx] == 0 {
				distinct = append(distinct, idx)
			}
			tf[idx]++
		}

		var totalW float64
		for _, idx := range distinct {
			w := float64(tf[idx]) * p.idf[idx]
			totalW += w
			vec := p.vectors[idx]
			for j, v := range vec {
				row[j] += w * v
			}
		}
		if totalW > 0 {
			inv := 1.0 / totalW
			for j := range row {
				row[j] *= inv
			}
		}
		if err = out.SetRow(i, row); err != nil {
			return nil, fmt.Errorf("PretrainedEmbedding.Encode: %w", err)
		}
	}

	return out, nil
}

// EncodeImpose is the convenience composition Impose(code, Encode(in)).
func (p *PretrainedEmbedding) EncodeImpose(code *tensor.Dense, transformed any) (*tensor.Dense, error) {
	enc, err := p.Encode(transformed)
	if err != nil {
		return nil, err
	}

	return p.Impose(code, enc)
}

// SizeIncrement reports the pretrained vector width.
func (p *PretrainedEmbedding) SizeIncrement() int { return p.dim }

// toTokenDocs asserts the [][]string raw input shape.
func toTokenDocs(ctx string, raw any) ([][]string, error) {
	docs, ok := raw.([][]string)
	if !ok {
		return nil, fmt.Errorf("%s: want [][]string, got %T: %w", ctx, raw, ErrBadInput)
	}

	return docs, nil
}
