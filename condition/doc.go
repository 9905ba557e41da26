// Package condition implements the condition composition framework of
// lvlcond: the contract a conditioning unit must satisfy, the three
// composition strategies it may use to merge itself into a running code,
// the ordered aggregation that chains heterogeneous conditions, and the
// lifecycle that lets each condition own and update its own trainable
// parameters in lockstep with an external training loop.
//
// 🚀 The contract
//
//	Every condition moves data through four stages:
//
//	  raw corpus ──Fit──▶ fitted state (vocabulary, stats; built exactly once)
//	  raw batch ──Transform──▶ normalized batch (index bags, dense rows)
//	  normalized ──Encode──▶ numeric encoding (*tensor.Dense, fixed width)
//	  code + encoding ──Impose──▶ new code (concat / bias / scale)
//
//	and exposes a parameter lifecycle (ZeroGrad/Step) plus a mode toggle
//	(Train/Eval). Non-trainable conditions implement all lifecycle hooks as
//	cheap no-ops, so callers invoke them unconditionally.
//
// ✨ Composition strategies
//
//   - Concatenation: Impose appends the encoding along the feature axis,
//     widening the code by SizeIncrement() (> 0 once fitted).
//   - Biasing: Impose is elementwise addition; SizeIncrement() is always 0.
//   - Scaling: Impose is elementwise multiplication; SizeIncrement() is always 0.
//
// A concrete condition commits to one strategy at construction — there is no
// per-call branching on a mode enum. The Continuous variant is the single
// escape hatch: it takes a Mode argument and resolves it to a strategy once,
// inside its constructor.
//
// Bias/scale scope policy: a bias or scale imposed after a concatenation
// applies to the ENTIRE widened code. Its encoding must match the running
// width at its position in the chain (or be a broadcastable single row);
// incompatible shapes fail at the Impose call, never silently.
//
// 📦 Reference variants
//
//	CategoricalEmbedding — trainable lookup table over a frequency-ranked
//	                       vocabulary (index 0 reserved for OOV/padding)
//	MultiHot             — fixed feature→column vocabulary, multi-hot rows
//	PretrainedEmbedding  — IDF-weighted average of externally supplied vectors
//	EmbeddingBag         — trainable mean-pooled bag of indices
//	Continuous           — standardized numeric input through a learned
//	                       affine projection; concat, bias or scale mode
//
// 🔗 The ConditionList
//
//	An ordered, named aggregate. EncodeImpose threads the code through every
//	member sequentially in registration order — the output width after step k
//	is the input width for step k+1, so conditions observe each other's
//	accumulated effect. All batched operations require one aligned input per
//	registered condition and fail fast on length mismatch.
//
// ⚙️ One training iteration:
//
//	list.ZeroGrad()                               // before backward
//	code, err := list.EncodeImpose(code, inputs)  // forward
//	...                                           // external loss + backward,
//	                                              // Backward(grad) per trainable
//	list.Step()                                   // after backward
//
// Out-of-vocabulary values never error: they map to the reserved index/zero
// representation by design. Everything else that violates the contract
// (length mismatch, unfitted use, incompatible shapes) surfaces immediately
// as a sentinel error at the violating call.
package condition
