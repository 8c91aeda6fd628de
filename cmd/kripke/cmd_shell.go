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
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/kripke/services/kripke/storage"
	"github.com/AleutianAI/kripke/services/kripke/tui"
)

// shellCmd is the line-oriented interactive session.
var shellCmd = &cobra.Command{
	Use:   "shell [FILE]",
	Short: "Interactive command session",
	Long: `Start an interactive session against a model. With FILE, the model
is loaded first and 'save' writes back to it. Commands also read fine
from a pipe, so sessions can be scripted.

Examples:
  kripke shell
  kripke shell demo.json
  echo -e "add-world w1\nshow" | kripke shell demo.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runShell,
}

func runShell(cmd *cobra.Command, args []string) {
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

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive {
		fmt.Println("kripke shell - type 'help' for commands, 'quit' to leave")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("kripke> ")
		}
		if !scanner.Scan() {
			break
		}

		out, err := session.Execute(scanner.Text())
		if errors.Is(err, tui.ErrQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
	if err := scanner.Err(); err != nil {
		exitError("Input failed", err)
	}

	if session.Dirty && interactive {
		fmt.Println("note: unsaved changes were discarded (use 'save' before quitting)")
	}
}
