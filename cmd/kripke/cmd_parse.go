// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/kripke/services/kripke/formula"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var parseTree bool

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var parseCmd = &cobra.Command{
	Use:   "parse FORMULA...",
	Short: "Parse a formula and echo its canonical form",
	Long: `Parse a modal formula and echo it back in canonical notation
(the unicode operators, fully parenthesized). Arguments are joined with
spaces, so quoting is optional. With --tree the parsed structure is
printed one node per line instead.

Examples:
  kripke parse "[](rain -> wet)"
  kripke parse p '&' q
  kripke parse --tree "<>p | []q"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runParse,
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	parseCmd.Flags().BoolVar(&parseTree, "tree", false, "Print the parsed structure one node per line")
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func runParse(cmd *cobra.Command, args []string) {
	out, err := formatFormula(strings.Join(args, " "), parseTree)
	if err != nil {
		exitError("Failed to parse formula", err)
	}
	fmt.Println(out)
}

// formatFormula parses input and renders either the canonical one-line
// form or an indented node tree.
func formatFormula(input string, asTree bool) (string, error) {
	f, err := formula.Parse(input)
	if err != nil {
		return "", err
	}
	if !asTree {
		return f.String(), nil
	}
	var b strings.Builder
	writeFormulaTree(&b, f, 0)
	return strings.TrimRight(b.String(), "\n"), nil
}

func writeFormulaTree(b *strings.Builder, f formula.Formula, depth int) {
	indent := strings.Repeat("  ", depth)
	switch node := f.(type) {
	case formula.Proposition:
		fmt.Fprintf(b, "%sprop %s\n", indent, node.Name())
	case formula.Negation:
		fmt.Fprintf(b, "%s¬\n", indent)
		writeFormulaTree(b, node.Operand(), depth+1)
	case formula.Conjunction:
		fmt.Fprintf(b, "%s∧\n", indent)
		writeFormulaTree(b, node.Left(), depth+1)
		writeFormulaTree(b, node.Right(), depth+1)
	case formula.Disjunction:
		fmt.Fprintf(b, "%s∨\n", indent)
		writeFormulaTree(b, node.Left(), depth+1)
		writeFormulaTree(b, node.Right(), depth+1)
	case formula.Implication:
		fmt.Fprintf(b, "%s→\n", indent)
		writeFormulaTree(b, node.Left(), depth+1)
		writeFormulaTree(b, node.Right(), depth+1)
	case formula.Necessity:
		fmt.Fprintf(b, "%s□\n", indent)
		writeFormulaTree(b, node.Operand(), depth+1)
	case formula.Possibility:
		fmt.Fprintf(b, "%s◇\n", indent)
		writeFormulaTree(b, node.Operand(), depth+1)
	}
}
