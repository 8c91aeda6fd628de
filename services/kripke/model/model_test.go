// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package model

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// buildChain returns a model with worlds w1..w3 and edges w1→w2, w2→w3.
func buildChain(t *testing.T) *Model {
	t.Helper()
	m := New()
	for _, w := range []string{"w1", "w2", "w3"} {
		if err := m.AddWorld(w); err != nil {
			t.Fatalf("AddWorld(%s): %v", w, err)
		}
	}
	if err := m.AddRelation("w1", "w2"); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	if err := m.AddRelation("w2", "w3"); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	return m
}

func TestAddWorld(t *testing.T) {
	m := New()
	if err := m.AddWorld("w1"); err != nil {
		t.Fatalf("AddWorld: %v", err)
	}
	if !m.HasWorld("w1") {
		t.Error("expected w1 to exist")
	}

	// Idempotent.
	if err := m.AddWorld("w1"); err != nil {
		t.Fatalf("AddWorld twice: %v", err)
	}
	if got := m.WorldCount(); got != 1 {
		t.Errorf("WorldCount = %d, want 1", got)
	}

	if err := m.AddWorld(""); !errors.Is(err, ErrInvalidWorldID) {
		t.Errorf("AddWorld(\"\") = %v, want ErrInvalidWorldID", err)
	}
}

func TestRemoveWorld(t *testing.T) {
	m := buildChain(t)
	if err := m.SetValuation("w2", "p", true); err != nil {
		t.Fatalf("SetValuation: %v", err)
	}

	if err := m.RemoveWorld("w2"); err != nil {
		t.Fatalf("RemoveWorld: %v", err)
	}
	if m.HasWorld("w2") {
		t.Error("w2 still present")
	}
	if m.RelationCount() != 0 {
		t.Errorf("relations mentioning w2 survived: %v", m.Relations())
	}
	if !m.Validate() {
		t.Error("model invalid after removal")
	}

	if err := m.RemoveWorld("w2"); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("RemoveWorld(absent) = %v, want ErrWorldNotFound", err)
	}
}

func TestRelations(t *testing.T) {
	m := New()
	if err := m.AddWorld("w1"); err != nil {
		t.Fatal(err)
	}

	if err := m.AddRelation("w1", "missing"); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("AddRelation to absent world = %v, want ErrWorldNotFound", err)
	}

	if err := m.AddWorld("w2"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddRelation("w1", "w2"); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	// Set semantics: duplicate insertion is a no-op.
	if err := m.AddRelation("w1", "w2"); err != nil {
		t.Fatalf("AddRelation duplicate: %v", err)
	}
	if got := m.RelationCount(); got != 1 {
		t.Errorf("RelationCount = %d, want 1", got)
	}

	if err := m.RemoveRelation("w2", "w1"); !errors.Is(err, ErrRelationNotFound) {
		t.Errorf("RemoveRelation(absent) = %v, want ErrRelationNotFound", err)
	}
	if err := m.RemoveRelation("w1", "w2"); err != nil {
		t.Fatalf("RemoveRelation: %v", err)
	}
	if m.HasRelation("w1", "w2") {
		t.Error("relation survived removal")
	}
}

func TestMakeReflexive(t *testing.T) {
	m := buildChain(t)
	m.MakeReflexive()
	for _, w := range m.Worlds() {
		if !m.HasRelation(w, w) {
			t.Errorf("missing self pair for %s", w)
		}
	}

	// Idempotent: a second pass changes nothing.
	before := m.Relations()
	m.MakeReflexive()
	if !reflect.DeepEqual(before, m.Relations()) {
		t.Error("MakeReflexive is not idempotent")
	}
}

func TestMakeSymmetric(t *testing.T) {
	m := buildChain(t)
	m.MakeSymmetric()

	want := []Pair{
		{"w1", "w2"}, {"w2", "w1"},
		{"w2", "w3"}, {"w3", "w2"},
	}
	got := m.Relations()
	if len(got) != len(want) {
		t.Fatalf("Relations = %v, want R ∪ R⁻¹ = %v", got, want)
	}
	for _, p := range want {
		if !m.HasRelation(p.Source, p.Target) {
			t.Errorf("missing pair %s", p)
		}
	}
}

func TestMakeTransitive(t *testing.T) {
	m := New()
	for _, w := range []string{"a", "b", "c", "d"} {
		if err := m.AddWorld(w); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range []Pair{{"a", "b"}, {"b", "c"}, {"c", "d"}} {
		if err := m.AddRelation(p.Source, p.Target); err != nil {
			t.Fatal(err)
		}
	}

	m.MakeTransitive()

	// Closed under composition.
	for _, ab := range m.Relations() {
		for _, bc := range m.Relations() {
			if ab.Target == bc.Source && !m.HasRelation(ab.Source, bc.Target) {
				t.Errorf("not closed: (%s,%s),(%s,%s) present but (%s,%s) missing",
					ab.Source, ab.Target, bc.Source, bc.Target, ab.Source, bc.Target)
			}
		}
	}

	// Minimal: exactly the 6 pairs of the chain closure, nothing more.
	if got := m.RelationCount(); got != 6 {
		t.Errorf("RelationCount = %d, want 6: %v", got, m.Relations())
	}
	if m.HasRelation("d", "a") {
		t.Error("closure invented a backwards edge")
	}
}

func TestMakeTransitiveCycle(t *testing.T) {
	m := New()
	for _, w := range []string{"a", "b"} {
		if err := m.AddWorld(w); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.AddRelation("a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddRelation("b", "a"); err != nil {
		t.Fatal(err)
	}

	// Must terminate and include the induced self loops.
	m.MakeTransitive()
	if !m.HasRelation("a", "a") || !m.HasRelation("b", "b") {
		t.Errorf("cycle closure incomplete: %v", m.Relations())
	}
}

func TestValuations(t *testing.T) {
	m := buildChain(t)

	if err := m.SetValuation("missing", "p", true); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("SetValuation(absent world) = %v, want ErrWorldNotFound", err)
	}
	if err := m.SetValuation("w1", "", true); !errors.Is(err, ErrInvalidProposition) {
		t.Errorf("SetValuation(empty prop) = %v, want ErrInvalidProposition", err)
	}

	if err := m.SetValuation("w1", "p", true); err != nil {
		t.Fatalf("SetValuation: %v", err)
	}
	if !m.GetValuation("w1", "p") {
		t.Error("GetValuation(w1, p) = false, want true")
	}

	// Lenient reads: unset pairs and unknown worlds resolve to the default,
	// never an error.
	if m.GetValuation("w1", "unset") {
		t.Error("unset prop should resolve to default false")
	}
	if m.GetValuation("nowhere", "p") {
		t.Error("unknown world should resolve to default false")
	}

	m.SetDefaultValuation(true)
	if !m.GetValuation("w1", "unset") {
		t.Error("unset prop should resolve to default true after SetDefaultValuation")
	}
}

func TestAccessibleWorlds(t *testing.T) {
	m := buildChain(t)
	m.MakeReflexive()

	got := m.AccessibleWorlds("w1")
	want := []string{"w1", "w2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AccessibleWorlds(w1) = %v, want %v", got, want)
	}
	if got := m.AccessibleWorlds("nowhere"); len(got) != 0 {
		t.Errorf("AccessibleWorlds(unknown) = %v, want empty", got)
	}
}

func TestIsReachable(t *testing.T) {
	m := buildChain(t)

	tests := []struct {
		name     string
		start    string
		target   string
		maxSteps int
		want     bool
	}{
		{"one hop", "w1", "w2", 100, true},
		{"two hops", "w1", "w3", 100, true},
		{"wrong direction", "w3", "w1", 100, false},
		{"zero steps self", "w1", "w1", 0, true},
		{"zero steps other", "w1", "w2", 0, false},
		{"bounded short", "w1", "w3", 1, false},
		{"default bound", "w1", "w3", -1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.IsReachable(tc.start, tc.target, tc.maxSteps); got != tc.want {
				t.Errorf("IsReachable(%s, %s, %d) = %v, want %v",
					tc.start, tc.target, tc.maxSteps, got, tc.want)
			}
		})
	}
}

func TestIsReachableCyclic(t *testing.T) {
	m := New()
	for _, w := range []string{"a", "b"} {
		if err := m.AddWorld(w); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.AddRelation("a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddRelation("b", "a"); err != nil {
		t.Fatal(err)
	}

	// Visited set must stop the walk from spinning on the cycle.
	if m.IsReachable("a", "missing", 100) {
		t.Error("reached a world that does not exist")
	}
}

func TestValidate(t *testing.T) {
	m := buildChain(t)
	if !m.Validate() {
		t.Fatal("fresh model should validate")
	}

	// Inject a dangling endpoint behind the public API's back.
	m.relation[Pair{Source: "w1", Target: "ghost"}] = struct{}{}
	if m.Validate() {
		t.Error("dangling relation endpoint not detected")
	}
	delete(m.relation, Pair{Source: "w1", Target: "ghost"})

	m.valuation["ghost"] = map[string]bool{"p": true}
	if m.Validate() {
		t.Error("orphaned valuation key not detected")
	}
}

func TestString(t *testing.T) {
	m := buildChain(t)
	if err := m.SetValuation("w1", "p", true); err != nil {
		t.Fatal(err)
	}
	out := m.String()
	for _, want := range []string{"Worlds: {w1, w2, w3}", "(w1→w2)", "w1: {p:T}"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}
