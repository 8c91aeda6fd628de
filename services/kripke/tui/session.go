// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tui provides the interactive frontends for editing and
// querying Kripke models: a line-command session shared by the shell
// and the full-screen editor built on bubbletea.
//
// # Thread Safety
//
// Sessions and editor models are designed for single-threaded use
// within one interactive loop. Do not share them across goroutines.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AleutianAI/kripke/services/kripke/eval"
	"github.com/AleutianAI/kripke/services/kripke/formula"
	"github.com/AleutianAI/kripke/services/kripke/model"
	"github.com/AleutianAI/kripke/services/kripke/storage"
	"github.com/AleutianAI/kripke/services/kripke/visualization"
)

// Session interprets editor commands against a single model. It backs
// both the plain shell REPL and the full-screen editor.
type Session struct {
	model *model.Model

	// Path is the file the model is saved to and loaded from. Commands
	// may override it per invocation.
	Path string

	// Dirty is true when the model has unsaved changes.
	Dirty bool
}

// NewSession creates a session over m. A nil m starts empty.
func NewSession(m *model.Model, path string) *Session {
	if m == nil {
		m = model.New()
	}
	return &Session{model: m, Path: path}
}

// Model returns the session's model.
func (s *Session) Model() *model.Model {
	return s.model
}

// ErrQuit is returned by Execute when the user asked to leave.
var ErrQuit = fmt.Errorf("quit")

// Execute runs one command line and returns its output. ErrQuit means
// the session should end; any other error describes a failed command
// and leaves the session usable.
func (s *Session) Execute(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help", "?":
		return helpText, nil

	case "quit", "exit", "q":
		return "", ErrQuit

	case "show":
		return s.model.String(), nil

	case "worlds":
		return strings.Join(s.model.Worlds(), "\n"), nil

	case "relations":
		pairs := s.model.Relations()
		out := make([]string, len(pairs))
		for i, p := range pairs {
			out[i] = p.String()
		}
		return strings.Join(out, "\n"), nil

	case "add-world":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: add-world <id>")
		}
		if err := s.model.AddWorld(args[0]); err != nil {
			return "", err
		}
		s.Dirty = true
		return fmt.Sprintf("added world %s", args[0]), nil

	case "remove-world":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: remove-world <id>")
		}
		if err := s.model.RemoveWorld(args[0]); err != nil {
			return "", err
		}
		s.Dirty = true
		return fmt.Sprintf("removed world %s", args[0]), nil

	case "add-relation":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: add-relation <source> <target>")
		}
		if err := s.model.AddRelation(args[0], args[1]); err != nil {
			return "", err
		}
		s.Dirty = true
		return fmt.Sprintf("added relation (%s, %s)", args[0], args[1]), nil

	case "remove-relation":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: remove-relation <source> <target>")
		}
		if err := s.model.RemoveRelation(args[0], args[1]); err != nil {
			return "", err
		}
		s.Dirty = true
		return fmt.Sprintf("removed relation (%s, %s)", args[0], args[1]), nil

	case "set":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: set <world> <proposition> <true|false>")
		}
		value, err := strconv.ParseBool(args[2])
		if err != nil {
			return "", fmt.Errorf("usage: set <world> <proposition> <true|false>")
		}
		if err := s.model.SetValuation(args[0], args[1], value); err != nil {
			return "", err
		}
		s.Dirty = true
		return fmt.Sprintf("%s(%s) = %v", args[1], args[0], value), nil

	case "default":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: default <true|false>")
		}
		value, err := strconv.ParseBool(args[0])
		if err != nil {
			return "", fmt.Errorf("usage: default <true|false>")
		}
		s.model.SetDefaultValuation(value)
		s.Dirty = true
		return fmt.Sprintf("default valuation = %v", value), nil

	case "reflexive":
		s.model.MakeReflexive()
		s.Dirty = true
		return "applied reflexive closure", nil

	case "symmetric":
		s.model.MakeSymmetric()
		s.Dirty = true
		return "applied symmetric closure", nil

	case "transitive":
		s.model.MakeTransitive()
		s.Dirty = true
		return "applied transitive closure", nil

	case "validate":
		if s.model.Validate() {
			return "model is consistent", nil
		}
		return "model is INCONSISTENT", nil

	case "reachable":
		if len(args) != 2 && len(args) != 3 {
			return "", fmt.Errorf("usage: reachable <from> <to> [max-steps]")
		}
		maxSteps := -1
		if len(args) == 3 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return "", fmt.Errorf("usage: reachable <from> <to> [max-steps]")
			}
			maxSteps = n
		}
		return fmt.Sprintf("%v", s.model.IsReachable(args[0], args[1], maxSteps)), nil

	case "eval":
		if len(args) < 2 {
			return "", fmt.Errorf("usage: eval <world> <formula>")
		}
		f, err := formula.Parse(strings.Join(args[1:], " "))
		if err != nil {
			return "", err
		}
		result, err := eval.Evaluate(s.model, f, args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s at %s: %v", f, args[0], result), nil

	case "eval-all":
		if len(args) < 1 {
			return "", fmt.Errorf("usage: eval-all <formula>")
		}
		f, err := formula.Parse(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		results, err := eval.EvaluateAllWorlds(s.model, f)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s:\n", f)
		for _, w := range s.model.Worlds() {
			fmt.Fprintf(&b, "  %s: %v\n", w, results[w])
		}
		return strings.TrimRight(b.String(), "\n"), nil

	case "render":
		format := visualization.FormatDOT
		if len(args) == 1 {
			format = visualization.OutputFormat(args[0])
		} else if len(args) > 1 {
			return "", fmt.Errorf("usage: render [dot|mermaid]")
		}
		return visualization.NewRenderer(nil).Render(s.model, format)

	case "save":
		path := s.Path
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return "", fmt.Errorf("usage: save <path>")
		}
		if err := storage.SaveFile(path, s.model); err != nil {
			return "", err
		}
		s.Path = path
		s.Dirty = false
		return fmt.Sprintf("saved to %s", path), nil

	case "load":
		path := s.Path
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return "", fmt.Errorf("usage: load <path>")
		}
		m, err := storage.LoadFile(path)
		if err != nil {
			return "", err
		}
		s.model = m
		s.Path = path
		s.Dirty = false
		return fmt.Sprintf("loaded %s (%d worlds, %d relations)",
			path, m.WorldCount(), m.RelationCount()), nil

	case "reset":
		s.model = model.New()
		s.Dirty = true
		return "model cleared", nil

	default:
		return "", fmt.Errorf("unknown command %q (try: help)", cmd)
	}
}

const helpText = `commands:
  show                              print the model
  worlds                            list worlds
  relations                         list accessibility pairs
  add-world <id>                    add a world
  remove-world <id>                 remove a world and its relations
  add-relation <source> <target>    add an accessibility pair
  remove-relation <source> <target> remove an accessibility pair
  set <world> <prop> <true|false>   assign a valuation
  default <true|false>              set the fallback valuation
  reflexive|symmetric|transitive    apply a frame closure
  validate                          check structural consistency
  reachable <from> <to> [steps]     bounded reachability
  eval <world> <formula>            evaluate a formula at a world
  eval-all <formula>                evaluate at every world
  render [dot|mermaid]              print a graph rendering
  save [path] / load [path]         persist or restore the model
  reset                             start over with an empty model
  quit                              leave`
