// Package condition: shared embedding-table construction.

package condition

import (
	"math/rand"

	"github.com/katalvlaran/lvlcond/optim"
)

// newTable allocates rows embedding rows of width dim, initialized uniformly
// in ±scale from a seeded source (fully deterministic for a given seed).
// When zeroFirst is set, row 0 is left at zero — the frozen representation of
// the reserved out-of-vocabulary/padding index.
func newTable(seed int64, rows, dim int, scale float64, zeroFirst bool) []*optim.Param {
	rng := rand.New(rand.NewSource(seed))
	table := make([]*optim.Param, rows)
	for i := range table {
		p := optim.NewParam(dim)
		if !zeroFirst || i > 0 {
			for j := range p.Data {
				p.Data[j] = (rng.Float64()*2 - 1) * scale
			}
		}
		table[i] = p
	}

	return table
}
