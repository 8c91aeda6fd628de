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
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/kripke/services/kripke/model"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	resetYes bool
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

// modelCmd is the parent model command.
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Create and edit model files",
	Long: `Commands for building a Kripke model in a JSON file.

Examples:
  kripke model new demo.json
  kripke model add-world demo.json w1 w2 w3
  kripke model add-relation demo.json w1 w2
  kripke model set demo.json w1 rain true
  kripke model closure demo.json reflexive transitive
  kripke model show demo.json`,
}

var modelNewCmd = &cobra.Command{
	Use:   "new FILE",
	Short: "Create an empty model file",
	Args:  cobra.ExactArgs(1),
	Run:   runModelNew,
}

var modelShowCmd = &cobra.Command{
	Use:   "show [FILE]",
	Short: "Print a model",
	Args:  cobra.MaximumNArgs(1),
	Run:   runModelShow,
}

var modelAddWorldCmd = &cobra.Command{
	Use:   "add-world FILE ID...",
	Short: "Add one or more worlds",
	Args:  cobra.MinimumNArgs(2),
	Run:   runModelAddWorld,
}

var modelRemoveWorldCmd = &cobra.Command{
	Use:   "remove-world FILE ID",
	Short: "Remove a world and every relation and valuation touching it",
	Args:  cobra.ExactArgs(2),
	Run:   runModelRemoveWorld,
}

var modelAddRelationCmd = &cobra.Command{
	Use:   "add-relation FILE SOURCE TARGET",
	Short: "Add an accessibility pair",
	Args:  cobra.ExactArgs(3),
	Run:   runModelAddRelation,
}

var modelRemoveRelationCmd = &cobra.Command{
	Use:   "remove-relation FILE SOURCE TARGET",
	Short: "Remove an accessibility pair",
	Args:  cobra.ExactArgs(3),
	Run:   runModelRemoveRelation,
}

var modelSetCmd = &cobra.Command{
	Use:   "set FILE WORLD PROPOSITION VALUE",
	Short: "Assign a truth value to a proposition at a world",
	Args:  cobra.ExactArgs(4),
	Run:   runModelSet,
}

var modelDefaultCmd = &cobra.Command{
	Use:   "default FILE VALUE",
	Short: "Set the fallback value for unassigned propositions",
	Args:  cobra.ExactArgs(2),
	Run:   runModelDefault,
}

var modelClosureCmd = &cobra.Command{
	Use:   "closure FILE OPERATION...",
	Short: "Apply frame closures: reflexive, symmetric, transitive",
	Long: `Apply one or more closure operations to the accessibility relation,
in the order given.

Examples:
  kripke model closure demo.json reflexive
  kripke model closure demo.json reflexive symmetric transitive`,
	Args: cobra.MinimumNArgs(2),
	Run:  runModelClosure,
}

var modelValidateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Check that relations and valuations only mention known worlds",
	Args:  cobra.MaximumNArgs(1),
	Run:   runModelValidate,
}

var modelResetCmd = &cobra.Command{
	Use:   "reset FILE",
	Short: "Replace a model file with an empty model",
	Args:  cobra.ExactArgs(1),
	Run:   runModelReset,
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	modelResetCmd.Flags().BoolVar(&resetYes, "yes", false,
		"Skip the confirmation prompt")

	modelCmd.AddCommand(modelNewCmd)
	modelCmd.AddCommand(modelShowCmd)
	modelCmd.AddCommand(modelAddWorldCmd)
	modelCmd.AddCommand(modelRemoveWorldCmd)
	modelCmd.AddCommand(modelAddRelationCmd)
	modelCmd.AddCommand(modelRemoveRelationCmd)
	modelCmd.AddCommand(modelSetCmd)
	modelCmd.AddCommand(modelDefaultCmd)
	modelCmd.AddCommand(modelClosureCmd)
	modelCmd.AddCommand(modelValidateCmd)
	modelCmd.AddCommand(modelResetCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func runModelNew(cmd *cobra.Command, args []string) {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		exitError(fmt.Sprintf("%s already exists", path), nil)
	}
	saveModel(path, model.New())
	fmt.Printf("Created %s\n", path)
}

func runModelShow(cmd *cobra.Command, args []string) {
	m := loadModel(modelPath(args))
	fmt.Println(m)
}

func runModelAddWorld(cmd *cobra.Command, args []string) {
	path := args[0]
	m := loadModel(path)
	for _, id := range args[1:] {
		if err := m.AddWorld(id); err != nil {
			exitError(fmt.Sprintf("Failed to add world %q", id), err)
		}
	}
	saveModel(path, m)
	fmt.Printf("Added %d world(s)\n", len(args)-1)
}

func runModelRemoveWorld(cmd *cobra.Command, args []string) {
	path := args[0]
	m := loadModel(path)
	if err := m.RemoveWorld(args[1]); err != nil {
		exitError("Failed to remove world", err)
	}
	saveModel(path, m)
	fmt.Printf("Removed world %s\n", args[1])
}

func runModelAddRelation(cmd *cobra.Command, args []string) {
	path := args[0]
	m := loadModel(path)
	if err := m.AddRelation(args[1], args[2]); err != nil {
		exitError("Failed to add relation", err)
	}
	saveModel(path, m)
	fmt.Printf("Added relation (%s, %s)\n", args[1], args[2])
}

func runModelRemoveRelation(cmd *cobra.Command, args []string) {
	path := args[0]
	m := loadModel(path)
	if err := m.RemoveRelation(args[1], args[2]); err != nil {
		exitError("Failed to remove relation", err)
	}
	saveModel(path, m)
	fmt.Printf("Removed relation (%s, %s)\n", args[1], args[2])
}

func runModelSet(cmd *cobra.Command, args []string) {
	path := args[0]
	value, err := strconv.ParseBool(args[3])
	if err != nil {
		exitError(fmt.Sprintf("VALUE must be true or false, got %q", args[3]), nil)
	}
	m := loadModel(path)
	if err := m.SetValuation(args[1], args[2], value); err != nil {
		exitError("Failed to set valuation", err)
	}
	saveModel(path, m)
	fmt.Printf("%s(%s) = %v\n", args[2], args[1], value)
}

func runModelDefault(cmd *cobra.Command, args []string) {
	path := args[0]
	value, err := strconv.ParseBool(args[1])
	if err != nil {
		exitError(fmt.Sprintf("VALUE must be true or false, got %q", args[1]), nil)
	}
	m := loadModel(path)
	m.SetDefaultValuation(value)
	saveModel(path, m)
	fmt.Printf("Default valuation = %v\n", value)
}

func runModelClosure(cmd *cobra.Command, args []string) {
	path := args[0]
	m := loadModel(path)
	before := m.RelationCount()
	for _, op := range args[1:] {
		switch op {
		case "reflexive":
			m.MakeReflexive()
		case "symmetric":
			m.MakeSymmetric()
		case "transitive":
			m.MakeTransitive()
		default:
			exitError(fmt.Sprintf("Unknown closure operation %q", op), nil)
		}
	}
	saveModel(path, m)
	fmt.Printf("Applied %v: %d -> %d relations\n", args[1:], before, m.RelationCount())
}

func runModelValidate(cmd *cobra.Command, args []string) {
	m := loadModel(modelPath(args))
	if !m.Validate() {
		fmt.Println("Model is INCONSISTENT: relations or valuations mention unknown worlds")
		os.Exit(1)
	}
	fmt.Println("Model is consistent")
}

func runModelReset(cmd *cobra.Command, args []string) {
	path := args[0]
	// Only reset files that actually hold a model.
	m := loadModel(path)

	if !resetYes {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			exitError("Refusing to reset without --yes on non-interactive input", nil)
		}
		var confirmed bool
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Reset %s?", path)).
			Description(fmt.Sprintf("This discards %d worlds and %d relations.",
				m.WorldCount(), m.RelationCount())).
			Affirmative("Reset").
			Negative("Keep").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			exitError("Confirmation failed", err)
		}
		if !confirmed {
			fmt.Println("Aborted")
			return
		}
	}

	saveModel(path, model.New())
	fmt.Printf("Reset %s\n", path)
}
