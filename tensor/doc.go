// Package tensor provides the numeric substrate for lvlcond: a dense,
// row-major float64 matrix interpreted as a batch of code vectors
// (rows = examples, columns = features), plus the three kernels the
// condition composition algebra is built on:
//
//   - Concat — append features (or stack rows) along a chosen axis
//   - Add    — elementwise addition with batch-axis broadcasting
//   - Mul    — elementwise (Hadamard) multiplication, same broadcast rule
//
// 🚀 Design rules
//
//   - No panics on user-triggered conditions: every public entry returns a
//     package sentinel error, matched via errors.Is.
//   - Every kernel returns a NEW Dense; inputs are never mutated. This keeps
//     downstream composition a pure left-to-right fold.
//   - Deterministic loop orders (row-major i→j) everywhere; no map iteration.
//   - Broadcasting is narrow and explicit: a 1-row right operand broadcasts
//     over the left operand's rows. Any other shape mismatch is an error —
//     never a silent stretch.
//
// ⚙️ Usage:
//
//	code, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	bias, _ := tensor.FromRows([][]float64{{0.5, 0.5}})
//	out, err := tensor.Add(code, bias) // broadcasts bias over both rows
//
// Complexity: all kernels are O(r·c) time and memory.
package tensor
