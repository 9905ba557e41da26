// SPDX-License-Identifier: MIT
// Package condition: sentinel error set.
// Every contract violation surfaces as one of these sentinels, wrapped with
// call context (fmt.Errorf("...: %w")) at the violating call. Tests match via
// errors.Is. Out-of-vocabulary values are NOT errors — they map to the
// reserved index 0 by design.

package condition

import "errors"

var (
	// ErrBadInput is returned when a raw or transformed value has a type or
	// shape the condition does not accept (documented per variant).
	ErrBadInput = errors.New("condition: unsupported input")

	// ErrUnfitted indicates Transform/Encode was called before Fit on a
	// condition whose fitted state is required. The wrap names the condition
	// and the violating call.
	ErrUnfitted = errors.New("condition: not fitted")

	// ErrLengthMismatch indicates a batched ConditionList operation received
	// an input sequence whose length differs from the number of registered
	// conditions.
	ErrLengthMismatch = errors.New("condition: input count does not match condition count")

	// ErrBadMode is returned for a Mode outside {Concat, Bias, Scale}.
	ErrBadMode = errors.New("condition: invalid mode")

	// ErrBadDim is returned when a constructor receives a non-positive
	// dimension.
	ErrBadDim = errors.New("condition: dimension must be > 0")

	// ErrMultiValue indicates a multi-valued bag reached a condition
	// configured for single-valued input (no reducer set).
	ErrMultiValue = errors.New("condition: multi-valued input without a configured reducer")

	// ErrEmptyVocabulary indicates Fit produced no features at all, leaving a
	// concatenation condition with nothing to contribute.
	ErrEmptyVocabulary = errors.New("condition: fit produced an empty vocabulary")

	// ErrNoForward indicates Backward was called without a preceding Encode,
	// or with a gradient whose shape does not match that Encode's output.
	ErrNoForward = errors.New("condition: backward without matching forward pass")

	// ErrNilCondition indicates a nil Condition was registered in a list.
	ErrNilCondition = errors.New("condition: nil condition")

	// ErrEmptyName indicates a list entry with an empty name.
	ErrEmptyName = errors.New("condition: empty condition name")

	// ErrDuplicateName indicates two list entries share a name.
	ErrDuplicateName = errors.New("condition: duplicate condition name")
)
