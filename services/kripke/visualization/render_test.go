// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package visualization

import (
	"strings"
	"testing"

	"github.com/AleutianAI/kripke/services/kripke/model"
)

func buildModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	for _, w := range []string{"w1", "w2"} {
		if err := m.AddWorld(w); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.AddRelation("w1", "w2"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetValuation("w1", "p", true); err != nil {
		t.Fatal(err)
	}
	if err := m.SetValuation("w1", "q", false); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestDOT(t *testing.T) {
	out := NewRenderer(nil).DOT(buildModel(t))

	for _, want := range []string{
		"digraph KripkeModel {",
		"rankdir=LR;",
		`"w1" [label="w1\n{p:T, q:F}"];`,
		`"w2" [label="w2"];`,
		`"w1" -> "w2";`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}

func TestDOTWithoutValuations(t *testing.T) {
	r := NewRenderer(&Options{Direction: "TB", ShowValuations: false})
	out := r.DOT(buildModel(t))

	if !strings.Contains(out, "rankdir=TB;") {
		t.Error("direction option ignored")
	}
	if strings.Contains(out, "p:T") {
		t.Error("valuations rendered despite ShowValuations=false")
	}
}

func TestMermaid(t *testing.T) {
	out := NewRenderer(nil).Mermaid(buildModel(t))

	for _, want := range []string{
		"graph LR",
		`W0(["w1<br/>{p:T, q:F}"])`,
		`W1(["w2"])`,
		"W0 --> W1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Mermaid output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := NewRenderer(nil).Render(buildModel(t), OutputFormat("svg"))
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRenderEmptyModel(t *testing.T) {
	out, err := NewRenderer(nil).Render(model.New(), FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "digraph KripkeModel {") {
		t.Errorf("empty model should still render a graph shell:\n%s", out)
	}
}
