// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package formula

import "fmt"

// Formula is one node of an immutable modal-logic formula tree.
//
// The variant set is closed: Proposition, Negation, Conjunction,
// Disjunction, Implication, Necessity, and Possibility are the only
// implementations. A type switch over a Formula is exhaustive over those
// seven cases.
type Formula interface {
	fmt.Stringer

	// sealed marks the closed variant set.
	sealed()
}

// Proposition is an atomic proposition, identified by name.
type Proposition struct {
	name string
}

// Negation is ¬operand.
type Negation struct {
	operand Formula
}

// Conjunction is left ∧ right.
type Conjunction struct {
	left, right Formula
}

// Disjunction is left ∨ right.
type Disjunction struct {
	left, right Formula
}

// Implication is left → right.
type Implication struct {
	left, right Formula
}

// Necessity is □operand: the operand holds in every accessible world.
type Necessity struct {
	operand Formula
}

// Possibility is ◇operand: the operand holds in some accessible world.
type Possibility struct {
	operand Formula
}

func (Proposition) sealed() {}
func (Negation) sealed()    {}
func (Conjunction) sealed() {}
func (Disjunction) sealed() {}
func (Implication) sealed() {}
func (Necessity) sealed()   {}
func (Possibility) sealed() {}

// =============================================================================
// Constructors
// =============================================================================

// Prop builds an atomic proposition. The name must be non-empty.
func Prop(name string) (Formula, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty proposition name", ErrInvalidFormula)
	}
	return Proposition{name: name}, nil
}

// Not builds the negation of operand.
func Not(operand Formula) (Formula, error) {
	if operand == nil {
		return nil, fmt.Errorf("%w: nil operand for ¬", ErrInvalidFormula)
	}
	return Negation{operand: operand}, nil
}

// And builds the conjunction of left and right.
func And(left, right Formula) (Formula, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: nil operand for ∧", ErrInvalidFormula)
	}
	return Conjunction{left: left, right: right}, nil
}

// Or builds the disjunction of left and right.
func Or(left, right Formula) (Formula, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: nil operand for ∨", ErrInvalidFormula)
	}
	return Disjunction{left: left, right: right}, nil
}

// Implies builds the implication left → right.
func Implies(left, right Formula) (Formula, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: nil operand for →", ErrInvalidFormula)
	}
	return Implication{left: left, right: right}, nil
}

// Box builds □operand (necessity).
func Box(operand Formula) (Formula, error) {
	if operand == nil {
		return nil, fmt.Errorf("%w: nil operand for □", ErrInvalidFormula)
	}
	return Necessity{operand: operand}, nil
}

// Diamond builds ◇operand (possibility).
func Diamond(operand Formula) (Formula, error) {
	if operand == nil {
		return nil, fmt.Errorf("%w: nil operand for ◇", ErrInvalidFormula)
	}
	return Possibility{operand: operand}, nil
}

// Must unwraps a constructor result, panicking on error. Intended for
// formula literals in tests and examples where the inputs are constants.
func Must(f Formula, err error) Formula {
	if err != nil {
		panic(err)
	}
	return f
}

// =============================================================================
// Accessors
// =============================================================================

// Name returns the proposition name.
func (p Proposition) Name() string { return p.name }

// Operand returns the negated formula.
func (n Negation) Operand() Formula { return n.operand }

// Left returns the left conjunct.
func (c Conjunction) Left() Formula { return c.left }

// Right returns the right conjunct.
func (c Conjunction) Right() Formula { return c.right }

// Left returns the left disjunct.
func (d Disjunction) Left() Formula { return d.left }

// Right returns the right disjunct.
func (d Disjunction) Right() Formula { return d.right }

// Left returns the antecedent.
func (i Implication) Left() Formula { return i.left }

// Right returns the consequent.
func (i Implication) Right() Formula { return i.right }

// Operand returns the formula under the box.
func (n Necessity) Operand() Formula { return n.operand }

// Operand returns the formula under the diamond.
func (p Possibility) Operand() Formula { return p.operand }

// =============================================================================
// Rendering
// =============================================================================

// String renders with the Unicode surface syntax: unary operators prefix
// their operand, binary operators are parenthesized.

func (p Proposition) String() string { return p.name }

func (n Negation) String() string {
	return "¬" + n.operand.String()
}

func (c Conjunction) String() string {
	return fmt.Sprintf("(%s ∧ %s)", c.left, c.right)
}

func (d Disjunction) String() string {
	return fmt.Sprintf("(%s ∨ %s)", d.left, d.right)
}

func (i Implication) String() string {
	return fmt.Sprintf("(%s → %s)", i.left, i.right)
}

func (n Necessity) String() string {
	return "□" + n.operand.String()
}

func (p Possibility) String() string {
	return "◇" + p.operand.String()
}
