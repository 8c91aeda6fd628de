// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// run executes a sequence of commands, failing the test on any error.
func run(t *testing.T, s *Session, lines ...string) string {
	t.Helper()
	var last string
	for _, line := range lines {
		out, err := s.Execute(line)
		if err != nil {
			t.Fatalf("Execute(%q): %v", line, err)
		}
		last = out
	}
	return last
}

func TestSession_BuildAndEval(t *testing.T) {
	s := NewSession(nil, "")

	run(t, s,
		"add-world w1",
		"add-world w2",
		"add-relation w1 w2",
		"set w2 p true",
	)

	out := run(t, s, "eval w1 <>p")
	if !strings.Contains(out, "true") {
		t.Errorf("expected ◇p true at w1, got %q", out)
	}

	out = run(t, s, "eval-all p")
	if !strings.Contains(out, "w1: false") || !strings.Contains(out, "w2: true") {
		t.Errorf("unexpected eval-all output: %q", out)
	}

	if !s.Dirty {
		t.Error("expected session dirty after edits")
	}
}

func TestSession_Closures(t *testing.T) {
	s := NewSession(nil, "")
	run(t, s,
		"add-world a",
		"add-world b",
		"add-relation a b",
		"symmetric",
	)
	if !s.Model().HasRelation("b", "a") {
		t.Error("expected symmetric closure to add (b, a)")
	}
}

func TestSession_Errors(t *testing.T) {
	s := NewSession(nil, "")

	tests := []struct {
		name string
		line string
	}{
		{"unknown command", "frobnicate"},
		{"missing args", "add-world"},
		{"bad bool", "set w p maybe"},
		{"relation without worlds", "add-relation x y"},
		{"parse error", "eval w1 p ∧"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Execute(tt.line); err == nil {
				t.Errorf("Execute(%q): expected error", tt.line)
			}
		})
	}

	// A failed command leaves the session usable.
	if _, err := s.Execute("add-world w1"); err != nil {
		t.Fatalf("session unusable after error: %v", err)
	}
}

func TestSession_Quit(t *testing.T) {
	s := NewSession(nil, "")
	if _, err := s.Execute("quit"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
	if _, err := s.Execute("exit"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit for exit, got %v", err)
	}
}

func TestSession_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	s := NewSession(nil, path)
	run(t, s,
		"add-world w1",
		"set w1 p true",
		"save",
	)
	if s.Dirty {
		t.Error("expected clean session after save")
	}

	s2 := NewSession(nil, "")
	out := run(t, s2, "load "+path)
	if !strings.Contains(out, "1 worlds") {
		t.Errorf("unexpected load output: %q", out)
	}
	if !s2.Model().GetValuation("w1", "p") {
		t.Error("expected valuation restored from file")
	}
}

func TestSession_EmptyLine(t *testing.T) {
	s := NewSession(nil, "")
	out, err := s.Execute("   ")
	if err != nil || out != "" {
		t.Errorf("blank line: got %q, %v", out, err)
	}
}
