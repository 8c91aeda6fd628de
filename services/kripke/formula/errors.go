// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package formula provides the modal-logic formula tree and its parser.
//
// A Formula is an immutable tree over seven variants: atomic propositions,
// negation, conjunction, disjunction, implication, and the modal box
// (necessity) and diamond (possibility) operators. The variant set is
// closed: every Formula value is one of the types in this package, sealed
// by an unexported marker method, so consumers can switch exhaustively.
//
// Constructors validate their children up front; a nil child or an empty
// proposition name never makes it into a tree. Once built, formulas are
// never mutated and may be shared freely across evaluations and models.
package formula

import (
	"errors"
	"fmt"
)

// Sentinel errors for formula construction and parsing.
var (
	// ErrInvalidFormula is returned when a constructor receives a nil
	// child or an empty proposition name.
	ErrInvalidFormula = errors.New("invalid formula")

	// ErrParse is the base error for surface-syntax parse failures. Use
	// errors.Is to detect it; the wrapped *ParseError carries position
	// detail.
	ErrParse = errors.New("parse error")
)

// ParseError describes a surface-syntax parse failure at a rune offset.
type ParseError struct {
	// Pos is the rune offset into the input where parsing failed.
	Pos int

	// Msg describes what was expected or found.
	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

// Unwrap makes errors.Is(err, ErrParse) work.
func (e *ParseError) Unwrap() error {
	return ErrParse
}
