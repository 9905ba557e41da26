// Package lvlcond is a pluggable conditioning toolkit for latent-variable
// models: it folds heterogeneous side-information (categorical labels, free
// text, continuous measurements) into a numeric code batch at arbitrary
// points of an encode/decode pipeline.
//
// 🚀 What is lvlcond?
//
//	A small, pure-Go library built around one idea: a Condition is a unit
//	that encodes auxiliary data and imposes itself onto a running code via
//	exactly one of three composition strategies:
//		• Concatenation — append encoded features, widening the code
//		• Biasing       — elementwise addition, width unchanged
//		• Scaling       — elementwise multiplication, width unchanged
//
//	An ordered ConditionList chains many heterogeneous conditions: each
//	condition observes the accumulated effect of all conditions registered
//	before it (a pure left-to-right fold, never in-place accumulation).
//
// ✨ Why choose lvlcond?
//
//   - Typed contract – one explicit Condition interface, verified at compile time
//   - Self-owned training – trainable conditions carry their own parameters
//     and updater; ZeroGrad/Step are cheap no-ops on everything else
//   - Deterministic – seeded initialization, stable vocabulary order,
//     first-seen tie-breaks, no hidden global state
//   - Pure Go – no cgo, no numeric backend lock-in
//
// Under the hood, everything is organized under three subpackages:
//
//	condition/ — the Condition contract, the three strategies, five reference
//	             variants (categorical embedding, multi-hot counts, pretrained
//	             embeddings, trainable embedding bag, continuous projection)
//	             and the ordered ConditionList aggregator
//	optim/     — Param, SGD and Adam updaters for condition-owned parameters
//	tensor/    — the Dense row-major (batch × features) substrate with the
//	             concat / add / multiply kernels the strategies are built on
//
// Quick sketch of one training iteration:
//
//	code ──▶ list.EncodeImpose(code, inputs) ──▶ conditioned code ──▶ model
//	                                                │ loss (external)
//	list.ZeroGrad() ◀── before backward             ▼
//	list.Step()     ◀── after backward ◀── Backward(grad) per trainable cond
//
// See condition/doc.go for the full contract and examples/ for runnable demos.
//
//	go get github.com/katalvlaran/lvlcond
package lvlcond
