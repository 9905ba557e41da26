// Package optim provides the gradient-based parameter updaters that trainable
// conditions own. It is deliberately tiny: a Param couples one value slice
// with its gradient slice, an Updater advances all registered Params one step
// and clears their gradients on demand.
//
// Lifecycle contract (mirrors the surrounding training loop):
//
//	updater.ZeroGrad()   // before the external backward pass
//	...                  // backward accumulates into Param.Grad
//	updater.Step()       // after backward: apply the update rule
//
// Two updaters are provided:
//
//   - SGD  — plain p ← p − lr·g
//   - Adam — bias-corrected first/second moments with optional elementwise
//     gradient clipping
//
// Updaters never share or copy parameter storage: they hold the same *Param
// pointers the owning condition holds. One updater per condition, bound 1:1.
package optim
