// SPDX-License-Identifier: MIT

package condition

import (
	"fmt"

	"github.com/katalvlaran/lvlcond/tensor"
)

// Named pairs a condition with the key it is addressed by inside a
// ConditionList.
type Named struct {
	Name string
	Cond Condition
}

// ConditionList is an ordered, named aggregate of conditions. Order is the
// whole point: EncodeImpose folds the code through the conditions in
// insertion order, so a concat placed before a bias changes the width the
// bias must match. Batch-level operations require one raw input per
// condition, aligned by position.
type ConditionList struct {
	names  []string
	conds  []Condition
	byName map[string]int
}

// NewList builds a ConditionList from the given pairs, preserving order.
// Errors: ErrBadInput on an empty list, ErrNilCondition, ErrEmptyName, and
// ErrDuplicateName, each naming the offending entry.
func NewList(items ...Named) (*ConditionList, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("condition.NewList: no conditions: %w", ErrBadInput)
	}

	l := &ConditionList{
		names:  make([]string, 0, len(items)),
		conds:  make([]Condition, 0, len(items)),
		byName: make(map[string]int, len(items)),
	}
	for i, it := range items {
		if it.Cond == nil {
			return nil, fmt.Errorf("condition.NewList: entry %d (%q): %w", i, it.Name, ErrNilCondition)
		}
		if it.Name == "" {
			return nil, fmt.Errorf("condition.NewList: entry %d: %w", i, ErrEmptyName)
		}
		if _, dup := l.byName[it.Name]; dup {
			return nil, fmt.Errorf("condition.NewList: %q: %w", it.Name, ErrDuplicateName)
		}
		l.byName[it.Name] = i
		l.names = append(l.names, it.Name)
		l.conds = append(l.conds, it.Cond)
	}

	return l, nil
}

// Len reports the number of conditions.
func (l *ConditionList) Len() int { return len(l.conds) }

// Names returns the condition names in insertion order (a copy).
func (l *ConditionList) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)

	return out
}

// Get returns the condition registered under name, or false when absent.
func (l *ConditionList) Get(name string) (Condition, bool) {
	i, ok := l.byName[name]
	if !ok {
		return nil, false
	}

	return l.conds[i], true
}

// checkAligned asserts one raw input per condition.
func (l *ConditionList) checkAligned(op string, n int) error {
	if n != len(l.conds) {
		return fmt.Errorf("condition.ConditionList.%s: %d inputs for %d conditions: %w",
			op, n, len(l.conds), ErrLengthMismatch)
	}

	return nil
}

// Fit fits each condition on its positionally aligned raw input.
func (l *ConditionList) Fit(raw []any) error {
	if err := l.checkAligned("Fit", len(raw)); err != nil {
		return err
	}
	for i, c := range l.conds {
		if err := c.Fit(raw[i]); err != nil {
			return fmt.Errorf("condition %q: %w", l.names[i], err)
		}
	}

	return nil
}

// Transform maps each aligned raw input through its condition, preserving
// order.
func (l *ConditionList) Transform(raw []any) ([]any, error) {
	if err := l.checkAligned("Transform", len(raw)); err != nil {
		return nil, err
	}
	out := make([]any, len(raw))
	for i, c := range l.conds {
		t, err := c.Transform(raw[i])
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", l.names[i], err)
		}
		out[i] = t
	}

	return out, nil
}

// FitTransform fits then transforms each condition on its aligned input.
func (l *ConditionList) FitTransform(raw []any) ([]any, error) {
	if err := l.checkAligned("FitTransform", len(raw)); err != nil {
		return nil, err
	}
	out := make([]any, len(raw))
	for i, c := range l.conds {
		t, err := c.FitTransform(raw[i])
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", l.names[i], err)
		}
		out[i] = t
	}

	return out, nil
}

// Encode encodes each aligned transformed input, preserving order.
func (l *ConditionList) Encode(transformed []any) ([]*tensor.Dense, error) {
	if err := l.checkAligned("Encode", len(transformed)); err != nil {
		return nil, err
	}
	out := make([]*tensor.Dense, len(transformed))
	for i, c := range l.conds {
		enc, err := c.Encode(transformed[i])
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", l.names[i], err)
		}
		out[i] = enc
	}

	return out, nil
}

// EncodeImpose threads the code through every condition in insertion order:
// the output of condition i is the code seen by condition i+1. Errors are
// wrapped with the name of the condition that raised them.
func (l *ConditionList) EncodeImpose(code *tensor.Dense, transformed []any) (*tensor.Dense, error) {
	if err := l.checkAligned("EncodeImpose", len(transformed)); err != nil {
		return nil, err
	}
	for i, c := range l.conds {
		next, err := c.EncodeImpose(code, transformed[i])
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", l.names[i], err)
		}
		code = next
	}

	return code, nil
}

// SizeIncrement sums the member increments: the total widening a code
// undergoes through one EncodeImpose pass.
func (l *ConditionList) SizeIncrement() int {
	total := 0
	for _, c := range l.conds {
		total += c.SizeIncrement()
	}

	return total
}

// ZeroGrad fans out to every member.
func (l *ConditionList) ZeroGrad() {
	for _, c := range l.conds {
		c.ZeroGrad()
	}
}

// Step fans out to every member.
func (l *ConditionList) Step() {
	for _, c := range l.conds {
		c.Step()
	}
}

// Train switches every member to training mode.
func (l *ConditionList) Train() {
	for _, c := range l.conds {
		c.Train()
	}
}

// Eval switches every member to evaluation mode.
func (l *ConditionList) Eval() {
	for _, c := range l.conds {
		c.Eval()
	}
}
