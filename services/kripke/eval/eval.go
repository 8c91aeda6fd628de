// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package eval implements Kripke satisfaction: the recursive evaluation of
// a modal formula at a world of a relational model.
//
// Evaluation is a pure tree walk with no caching; each call recomputes from
// the model's current state. Recursion depth is bounded by the formula
// depth, never by model size. The caller must keep the model stable for the
// duration of one walk (see services/kripke.Service for locking).
package eval

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/kripke/services/kripke/formula"
	"github.com/AleutianAI/kripke/services/kripke/model"
)

// Sentinel errors for evaluation preconditions.
var (
	// ErrInvalidModel is returned when the model fails Validate: a
	// dangling relation endpoint or orphaned valuation key.
	ErrInvalidModel = errors.New("invalid model")

	// ErrUnknownWorld is returned when evaluation is requested at a world
	// that is not in the model.
	ErrUnknownWorld = errors.New("unknown world")

	// ErrNilFormula is returned when the formula is nil.
	ErrNilFormula = errors.New("nil formula")
)

// Evaluate reports whether f is satisfied at world in m.
//
// Preconditions: the model must validate and the world must exist. The
// semantics are standard Kripke satisfaction:
//
//   - a proposition holds iff its valuation (or the model default) is true
//   - ¬, ∧, ∨, → are classical
//   - □φ holds iff φ holds in every accessible world (vacuously true)
//   - ◇φ holds iff φ holds in some accessible world (vacuously false)
func Evaluate(m *model.Model, f formula.Formula, world string) (bool, error) {
	if f == nil {
		return false, ErrNilFormula
	}
	if !m.Validate() {
		return false, fmt.Errorf("%w: dangling relation endpoint or orphaned valuation", ErrInvalidModel)
	}
	if !m.HasWorld(world) {
		return false, fmt.Errorf("%w: %q", ErrUnknownWorld, world)
	}
	return satisfies(m, f, world), nil
}

// satisfies is the recursive core. The preconditions hold on entry, and
// accessible worlds of a valid model are themselves worlds, so no
// re-checking happens during descent.
func satisfies(m *model.Model, f formula.Formula, world string) bool {
	switch f := f.(type) {
	case formula.Proposition:
		return m.GetValuation(world, f.Name())
	case formula.Negation:
		return !satisfies(m, f.Operand(), world)
	case formula.Conjunction:
		return satisfies(m, f.Left(), world) && satisfies(m, f.Right(), world)
	case formula.Disjunction:
		return satisfies(m, f.Left(), world) || satisfies(m, f.Right(), world)
	case formula.Implication:
		return !satisfies(m, f.Left(), world) || satisfies(m, f.Right(), world)
	case formula.Necessity:
		for _, w := range m.AccessibleWorlds(world) {
			if !satisfies(m, f.Operand(), w) {
				return false
			}
		}
		return true
	case formula.Possibility:
		for _, w := range m.AccessibleWorlds(world) {
			if satisfies(m, f.Operand(), w) {
				return true
			}
		}
		return false
	default:
		// Unreachable: the formula variant set is sealed.
		panic(fmt.Sprintf("eval: unknown formula variant %T", f))
	}
}

// EvaluateAllWorlds evaluates f independently at every world of m and
// returns a world → truth map. Map iteration order is the only ordering
// callers get.
func EvaluateAllWorlds(m *model.Model, f formula.Formula) (map[string]bool, error) {
	if f == nil {
		return nil, ErrNilFormula
	}
	if !m.Validate() {
		return nil, fmt.Errorf("%w: dangling relation endpoint or orphaned valuation", ErrInvalidModel)
	}
	results := make(map[string]bool, m.WorldCount())
	for _, world := range m.Worlds() {
		results[world] = satisfies(m, f, world)
	}
	return results, nil
}
