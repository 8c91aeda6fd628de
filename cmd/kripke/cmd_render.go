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
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/kripke/services/kripke/visualization"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	renderFormat       string
	renderDirection    string
	renderNoValuations bool
	renderOutput       string
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

// renderCmd renders a model file as a graph description.
var renderCmd = &cobra.Command{
	Use:   "render [FILE]",
	Short: "Render a model as Graphviz DOT or Mermaid",
	Long: `Render a model's worlds and accessibility relation as a graph.

Examples:
  kripke render demo.json
  kripke render demo.json --format mermaid
  kripke render demo.json -o demo.dot
  kripke render demo.json --direction TB --no-valuations`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRender,
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", "dot",
		"Output format: dot, mermaid")
	renderCmd.Flags().StringVar(&renderDirection, "direction", "LR",
		"Graph layout direction: LR, TB, BT, RL")
	renderCmd.Flags().BoolVar(&renderNoValuations, "no-valuations", false,
		"Omit valuation labels from world nodes")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "",
		"Write to a file instead of stdout")
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func runRender(cmd *cobra.Command, args []string) {
	m := loadModel(modelPath(args))

	opts := visualization.Options{
		Direction:      renderDirection,
		ShowValuations: !renderNoValuations,
	}
	out, err := visualization.NewRenderer(&opts).Render(m, visualization.OutputFormat(renderFormat))
	if err != nil {
		exitError("Render failed", err)
	}

	if renderOutput == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(renderOutput, []byte(out), 0644); err != nil {
		exitError("Failed to write output", err)
	}
	fmt.Printf("Wrote %s\n", renderOutput)
}
