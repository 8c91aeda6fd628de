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
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxSteps is the default hop bound for IsReachable.
const DefaultMaxSteps = 100

// Pair is an ordered accessibility pair: Target is accessible from Source.
type Pair struct {
	Source string
	Target string
}

// String returns the pair in "(source→target)" form.
func (p Pair) String() string {
	return fmt.Sprintf("(%s→%s)", p.Source, p.Target)
}

// Model is a Kripke structure: worlds, an accessibility relation, and
// per-world propositional valuations.
type Model struct {
	worlds    map[string]struct{}
	relation  map[Pair]struct{}
	valuation map[string]map[string]bool

	// defaultValuation is returned for any (world, prop) pair that has
	// never been set.
	defaultValuation bool
}

// New creates an empty model with a false default valuation.
func New() *Model {
	return &Model{
		worlds:    make(map[string]struct{}),
		relation:  make(map[Pair]struct{}),
		valuation: make(map[string]map[string]bool),
	}
}

// =============================================================================
// World Management
// =============================================================================

// AddWorld inserts a world into the model. Adding a world that already
// exists is a no-op. The identifier must be non-empty.
func (m *Model) AddWorld(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidWorldID)
	}
	m.worlds[id] = struct{}{}
	if _, ok := m.valuation[id]; !ok {
		m.valuation[id] = make(map[string]bool)
	}
	return nil
}

// RemoveWorld removes a world together with every relation pair that
// mentions it and its valuation entry. Either the whole removal happens or
// nothing does.
func (m *Model) RemoveWorld(id string) error {
	if !m.HasWorld(id) {
		return fmt.Errorf("%w: %q", ErrWorldNotFound, id)
	}
	delete(m.worlds, id)
	for pair := range m.relation {
		if pair.Source == id || pair.Target == id {
			delete(m.relation, pair)
		}
	}
	delete(m.valuation, id)
	return nil
}

// HasWorld reports whether the world is in the model.
func (m *Model) HasWorld(id string) bool {
	_, ok := m.worlds[id]
	return ok
}

// Worlds returns the world identifiers in sorted order.
func (m *Model) Worlds() []string {
	ids := make([]string, 0, len(m.worlds))
	for id := range m.worlds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WorldCount returns the number of worlds.
func (m *Model) WorldCount() int {
	return len(m.worlds)
}

// =============================================================================
// Relation Management
// =============================================================================

// AddRelation inserts the accessibility pair (source, target). Both
// endpoints must already be worlds in the model. Duplicate insertion is a
// no-op.
func (m *Model) AddRelation(source, target string) error {
	if !m.HasWorld(source) {
		return fmt.Errorf("%w: source %q", ErrWorldNotFound, source)
	}
	if !m.HasWorld(target) {
		return fmt.Errorf("%w: target %q", ErrWorldNotFound, target)
	}
	m.relation[Pair{Source: source, Target: target}] = struct{}{}
	return nil
}

// RemoveRelation removes the exact pair (source, target).
func (m *Model) RemoveRelation(source, target string) error {
	pair := Pair{Source: source, Target: target}
	if _, ok := m.relation[pair]; !ok {
		return fmt.Errorf("%w: %s", ErrRelationNotFound, pair)
	}
	delete(m.relation, pair)
	return nil
}

// HasRelation reports whether the exact pair (source, target) is present.
func (m *Model) HasRelation(source, target string) bool {
	_, ok := m.relation[Pair{Source: source, Target: target}]
	return ok
}

// Relations returns the relation pairs sorted by source, then target.
func (m *Model) Relations() []Pair {
	pairs := make([]Pair, 0, len(m.relation))
	for pair := range m.relation {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Source != pairs[j].Source {
			return pairs[i].Source < pairs[j].Source
		}
		return pairs[i].Target < pairs[j].Target
	})
	return pairs
}

// RelationCount returns the number of relation pairs.
func (m *Model) RelationCount() int {
	return len(m.relation)
}

// MakeReflexive ensures (w, w) is in the relation for every world w.
// Pure addition: existing pairs are never removed. Idempotent.
func (m *Model) MakeReflexive() {
	for w := range m.worlds {
		m.relation[Pair{Source: w, Target: w}] = struct{}{}
	}
}

// MakeSymmetric ensures (b, a) is in the relation for every existing pair
// (a, b). The pass runs over a snapshot of the relation taken at call time,
// so pairs added by the pass are not themselves re-symmetrized. The result
// is exactly R ∪ R⁻¹.
func (m *Model) MakeSymmetric() {
	snapshot := make([]Pair, 0, len(m.relation))
	for pair := range m.relation {
		snapshot = append(snapshot, pair)
	}
	for _, pair := range snapshot {
		m.relation[Pair{Source: pair.Target, Target: pair.Source}] = struct{}{}
	}
}

// MakeTransitive computes the transitive closure of the relation by
// fixed-point iteration: scan all pairs (a,b),(b,c) and add (a,c) until a
// full pass adds nothing. Terminates because the relation is bounded by
// |Worlds|² pairs, and produces the minimal transitive superset of the
// input relation.
func (m *Model) MakeTransitive() {
	for {
		changed := false
		pairs := make([]Pair, 0, len(m.relation))
		for pair := range m.relation {
			pairs = append(pairs, pair)
		}
		for _, ab := range pairs {
			for _, bc := range pairs {
				if ab.Target != bc.Source {
					continue
				}
				ac := Pair{Source: ab.Source, Target: bc.Target}
				if _, ok := m.relation[ac]; !ok {
					m.relation[ac] = struct{}{}
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// =============================================================================
// Valuation Management
// =============================================================================

// SetValuation sets the truth value of prop in world, overwriting any prior
// value. The world must exist and the proposition name must be non-empty.
func (m *Model) SetValuation(world, prop string, value bool) error {
	if !m.HasWorld(world) {
		return fmt.Errorf("%w: %q", ErrWorldNotFound, world)
	}
	if prop == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProposition)
	}
	m.valuation[world][prop] = value
	return nil
}

// GetValuation returns the truth value of prop in world, falling back to
// the model's default valuation when the pair has never been set. Unlike
// SetValuation this is deliberately lenient: an unknown world also resolves
// to the default rather than failing.
func (m *Model) GetValuation(world, prop string) bool {
	if props, ok := m.valuation[world]; ok {
		if v, ok := props[prop]; ok {
			return v
		}
	}
	return m.defaultValuation
}

// SetDefaultValuation sets the truth value used for propositions that have
// never been set.
func (m *Model) SetDefaultValuation(v bool) {
	m.defaultValuation = v
}

// DefaultValuation returns the fallback truth value.
func (m *Model) DefaultValuation() bool {
	return m.defaultValuation
}

// Propositions returns the proposition names set in world, sorted. Returns
// nil for an unknown world.
func (m *Model) Propositions(world string) []string {
	props, ok := m.valuation[world]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Queries
// =============================================================================

// AccessibleWorlds returns the sorted set of worlds accessible from world.
// Empty if the world has no successors (or is unknown).
func (m *Model) AccessibleWorlds(world string) []string {
	var out []string
	for pair := range m.relation {
		if pair.Source == world {
			out = append(out, pair.Target)
		}
	}
	sort.Strings(out)
	return out
}

// IsReachable reports whether target can be reached from start by following
// relation edges in at most maxSteps hops. A negative maxSteps uses
// DefaultMaxSteps. Zero steps reach only the start world itself. The search
// is a depth-first walk with an explicit visited set, so it terminates on
// cyclic relations.
func (m *Model) IsReachable(start, target string, maxSteps int) bool {
	if maxSteps < 0 {
		maxSteps = DefaultMaxSteps
	}

	type frame struct {
		world string
		steps int
	}
	visited := make(map[string]struct{})
	stack := []frame{{world: start}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.world == target {
			return true
		}
		if cur.steps >= maxSteps {
			continue
		}
		for pair := range m.relation {
			if pair.Source != cur.world {
				continue
			}
			if _, seen := visited[pair.Target]; seen {
				continue
			}
			visited[pair.Target] = struct{}{}
			stack = append(stack, frame{world: pair.Target, steps: cur.steps + 1})
		}
	}
	return false
}

// Validate reports whether the model is consistent: every relation pair's
// endpoints and every valuation key are members of the world set. Read-only.
func (m *Model) Validate() bool {
	for pair := range m.relation {
		if !m.HasWorld(pair.Source) || !m.HasWorld(pair.Target) {
			return false
		}
	}
	for world := range m.valuation {
		if !m.HasWorld(world) {
			return false
		}
	}
	return true
}

// =============================================================================
// Debugging
// =============================================================================

// String pretty-prints the model with sorted worlds, relations, and
// valuations.
func (m *Model) String() string {
	var b strings.Builder

	b.WriteString("Kripke Model:\n")

	b.WriteString("Worlds: {")
	b.WriteString(strings.Join(m.Worlds(), ", "))
	b.WriteString("}\n")

	b.WriteString("Relations: {")
	pairs := m.Relations()
	parts := make([]string, len(pairs))
	for i, pair := range pairs {
		parts[i] = pair.String()
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("}\n")

	b.WriteString("Valuations:")
	for _, world := range m.Worlds() {
		props := make([]string, 0, len(m.valuation[world]))
		for _, name := range m.Propositions(world) {
			val := "F"
			if m.valuation[world][name] {
				val = "T"
			}
			props = append(props, fmt.Sprintf("%s:%s", name, val))
		}
		b.WriteString(fmt.Sprintf("\n  %s: {%s}", world, strings.Join(props, ", ")))
	}
	return b.String()
}
