// Package condition: frequency-ranked vocabulary with a reserved index 0.

package condition

import "sort"

// Vocabulary maps categorical values to dense indices 1..Len(), reserving
// index 0 for out-of-vocabulary and padding. Built once over a corpus by
// descending frequency; equal counts break ties by first-seen corpus order,
// so construction is fully deterministic. Immutable after construction.
type Vocabulary struct {
	index  map[string]int
	tokens []string // kept tokens in rank order; tokens[i] has index i+1
}

// NewVocabulary builds a vocabulary over values, honoring the size-limit
// options (WithVocabCap / WithVocabFraction; default keeps every distinct
// value). Complexity: O(n + d·log d) for n values and d distinct.
func NewVocabulary(values []string, opts ...Option) *Vocabulary {
	o := gatherOptions(opts...)

	return buildVocabulary(values, o)
}

// buildVocabulary is the shared construction path for NewVocabulary and the
// categorical condition's Fit.
func buildVocabulary(values []string, o options) *Vocabulary {
	counts := make(map[string]int, len(values))
	order := make([]string, 0, len(values)) // distinct values, first-seen order
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	// Stable sort by descending count keeps first-seen order for ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	keep := len(order)
	switch o.vocabKind {
	case cutoffCap:
		if o.vocabCap < keep {
			keep = o.vocabCap
		}
	case cutoffFraction:
		keep = int(o.vocabFrac * float64(len(order)))
		if keep > len(order) {
			keep = len(order)
		}
	}
	order = order[:keep]

	idx := make(map[string]int, keep)
	for i, tok := range order {
		idx[tok] = i + 1 // index 0 stays reserved
	}

	return &Vocabulary{index: idx, tokens: order}
}

// Lookup returns the index of tok, or 0 when tok is out of vocabulary.
// Complexity: O(1).
func (v *Vocabulary) Lookup(tok string) int {
	return v.index[tok] // missing key yields the reserved 0
}

// Len returns the number of kept tokens, excluding the reserved index 0.
// A table sized for this vocabulary therefore needs Len()+1 rows.
func (v *Vocabulary) Len() int { return len(v.tokens) }

// Tokens returns the kept tokens in rank order (index i+1 ↔ Tokens()[i]).
// The returned slice is a copy.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)

	return out
}
