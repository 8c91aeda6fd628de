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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSurfaceForms(t *testing.T) {
	tests := []struct {
		input string
		want  string // canonical String() rendering
	}{
		{"p", "p"},
		{"¬p", "¬p"},
		{"□p", "□p"},
		{"◇p", "◇p"},
		{"p ∧ q", "(p ∧ q)"},
		{"p ∨ q", "(p ∨ q)"},
		{"p → q", "(p → q)"},
		{"□(p → q)", "□(p → q)"},
		{"◇(p ∧ q)", "◇(p ∧ q)"},
		{"¬□p", "¬□p"},
		{"((p))", "p"},
		{"rain → ◇wet", "(rain → ◇wet)"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			f, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.String())
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Unary binds tightest.
		{"¬p ∧ q", "(¬p ∧ q)"},
		{"□p → q", "(□p → q)"},
		// ∧ over ∨ over →.
		{"p ∧ q ∨ r", "((p ∧ q) ∨ r)"},
		{"p ∨ q ∧ r", "(p ∨ (q ∧ r))"},
		{"p ∧ q → r", "((p ∧ q) → r)"},
		{"p → q ∨ r", "(p → (q ∨ r))"},
		// → is right-associative.
		{"p → q → r", "(p → (q → r))"},
		// Left-associative chains for ∧/∨.
		{"p ∧ q ∧ r", "((p ∧ q) ∧ r)"},
		// Parentheses override.
		{"(p ∨ q) ∧ r", "((p ∨ q) ∧ r)"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			f, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.String())
		})
	}
}

func TestParseASCIIAliases(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"~p", "¬p"},
		{"!p", "¬p"},
		{"[]p", "□p"},
		{"<>p", "◇p"},
		{"p & q", "(p ∧ q)"},
		{"p | q", "(p ∨ q)"},
		{"p -> q", "(p → q)"},
		{"[](p -> q)", "□(p → q)"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			f, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"∧ p",
		"p ∧",
		"(p",
		"p)",
		"□",
		"p q",
		">",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)

			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	// String() output is itself parseable and stable.
	inputs := []string{"□(p → q)", "◇p ∧ ¬q", "(p ∨ q) → □r"}
	for _, input := range inputs {
		f, err := Parse(input)
		require.NoError(t, err)
		again, err := Parse(f.String())
		require.NoError(t, err)
		assert.Equal(t, f.String(), again.String())
	}
}
