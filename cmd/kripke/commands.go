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

	"github.com/AleutianAI/kripke/services/kripke/model"
	"github.com/AleutianAI/kripke/services/kripke/storage"
)

// --- Global Command Variables ---
var (
	configPath string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "kripke",
		Short: "A cli for building and evaluating Kripke models",
		Long: `Kripke is a workbench for possible-worlds models: build frames,
assign valuations, apply closures, and evaluate modal formulas.

Models live in JSON files. Use 'kripke shell' for an interactive
session or 'kripke edit' for the full-screen editor.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "kripke.yaml",
		"Path to the optional config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log progress to stderr")

	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(reachableCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(editCmd)
}

// modelPath resolves the model file for a command: the positional
// argument when given, otherwise the configured default.
func modelPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultModel
}

// loadModel reads a model file, exiting with a message on failure.
func loadModel(path string) *model.Model {
	if path == "" {
		exitError("No model file given and no default_model configured", nil)
	}
	m, err := storage.LoadFile(path)
	if err != nil {
		exitError("Failed to load model", err)
	}
	return m
}

// saveModel writes a model file, exiting with a message on failure.
func saveModel(path string, m *model.Model) {
	if err := storage.SaveFile(path, m); err != nil {
		exitError("Failed to save model", err)
	}
}

// exitError prints an error to stderr and exits non-zero.
func exitError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
