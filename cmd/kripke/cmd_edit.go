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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/kripke/services/kripke/storage"
	"github.com/AleutianAI/kripke/services/kripke/tui"
)

// editCmd is the full-screen model editor.
var editCmd = &cobra.Command{
	Use:   "edit [FILE]",
	Short: "Full-screen interactive model editor",
	Long: `Open the full-screen editor. The top pane shows the model, the
middle pane scrolls command output, and the bottom line takes the same
commands as 'kripke shell'. Ctrl+S saves, Esc quits.

Examples:
  kripke edit demo.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		exitError("The editor needs a terminal; use 'kripke shell' for piped input", nil)
	}

	path := modelPath(args)
	session := tui.NewSession(nil, path)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			m, err := storage.LoadFile(path)
			if err != nil {
				exitError("Failed to load model", err)
			}
			session = tui.NewSession(m, path)
		}
	}

	editor := tui.NewEditor(session, tui.EditorConfig{Path: path})
	p := tea.NewProgram(editor, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		exitError("Editor failed", err)
	}

	result, ok := final.(tui.Editor)
	if !ok {
		exitError(fmt.Sprintf("Unexpected model type from bubbletea: %T", final), nil)
	}
	if result.Session().Dirty {
		fmt.Println("note: unsaved changes were discarded")
	}
}
