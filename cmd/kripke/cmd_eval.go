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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/kripke/services/kripke/eval"
	"github.com/AleutianAI/kripke/services/kripke/formula"
	"github.com/AleutianAI/kripke/services/kripke/model"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	evalWorld      string
	evalAllWorlds  bool
	evalJSONOutput bool

	reachableMaxSteps int
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

// evalCmd evaluates a modal formula against a model file.
var evalCmd = &cobra.Command{
	Use:   "eval FILE FORMULA",
	Short: "Evaluate a modal formula against a model",
	Long: `Evaluate a modal formula at one world, or at every world with --all.

Formulas use the connectives ¬ ∧ ∨ → □ ◇ or their ASCII forms
~ ! & | -> [] <>.

Examples:
  kripke eval demo.json "□(rain → wet)" --world w1
  kripke eval demo.json "[](rain -> wet)" --world w1
  kripke eval demo.json "<>rain" --all
  kripke eval demo.json "p & q" --all --json`,
	Args: cobra.ExactArgs(2),
	Run:  runEval,
}

// reachableCmd answers bounded reachability queries.
var reachableCmd = &cobra.Command{
	Use:   "reachable FILE FROM TO",
	Short: "Check whether one world reaches another through the relation",
	Long: `Check whether TO is reachable from FROM by following accessibility
pairs, within a bounded number of steps.

Examples:
  kripke reachable demo.json w1 w3
  kripke reachable demo.json w1 w3 --max-steps 2`,
	Args: cobra.ExactArgs(3),
	Run:  runReachable,
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	evalCmd.Flags().StringVarP(&evalWorld, "world", "w", "",
		"World to evaluate at")
	evalCmd.Flags().BoolVar(&evalAllWorlds, "all", false,
		"Evaluate at every world")
	evalCmd.Flags().BoolVar(&evalJSONOutput, "json", false,
		"Output as JSON for scripting")

	reachableCmd.Flags().IntVar(&reachableMaxSteps, "max-steps", -1,
		"Maximum relation hops (negative for the default bound)")
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func runEval(cmd *cobra.Command, args []string) {
	if !evalAllWorlds && evalWorld == "" {
		exitError("Either --world or --all is required", nil)
	}

	m := loadModel(args[0])
	f, err := formula.Parse(args[1])
	if err != nil {
		exitError("Failed to parse formula", err)
	}

	if evalAllWorlds {
		results, err := eval.EvaluateAllWorlds(m, f)
		if err != nil {
			exitError("Evaluation failed", err)
		}
		outputEvalAll(m, f, results)
		return
	}

	result, err := eval.Evaluate(m, f, evalWorld)
	if err != nil {
		exitError("Evaluation failed", err)
	}
	if evalJSONOutput {
		outputJSON(map[string]any{
			"formula": f.String(),
			"world":   evalWorld,
			"result":  result,
		})
		return
	}
	fmt.Printf("%s at %s: %v\n", f, evalWorld, result)
}

func outputEvalAll(m *model.Model, f formula.Formula, results map[string]bool) {
	if evalJSONOutput {
		outputJSON(map[string]any{
			"formula": f.String(),
			"results": results,
		})
		return
	}
	fmt.Printf("%s:\n", f)
	for _, w := range m.Worlds() {
		fmt.Printf("  %s: %v\n", w, results[w])
	}
}

func runReachable(cmd *cobra.Command, args []string) {
	m := loadModel(args[0])
	from, to := args[1], args[2]
	if !m.HasWorld(from) {
		exitError(fmt.Sprintf("Unknown world %q", from), nil)
	}
	if !m.HasWorld(to) {
		exitError(fmt.Sprintf("Unknown world %q", to), nil)
	}

	if m.IsReachable(from, to, reachableMaxSteps) {
		fmt.Printf("%s reaches %s\n", from, to)
		return
	}
	fmt.Printf("%s does not reach %s\n", from, to)
	os.Exit(1)
}

// outputJSON pretty-prints v to stdout.
func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		exitError("Failed to encode output", err)
	}
}
