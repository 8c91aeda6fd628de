// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package visualization renders Kripke models as diagrams.
//
// Worlds become nodes, accessibility pairs become directed edges, and
// valuations are appended to node labels. All rendering is local string
// generation; no external services are involved.
package visualization

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/kripke/services/kripke/model"
)

// OutputFormat specifies the rendering output format.
type OutputFormat string

const (
	FormatDOT     OutputFormat = "dot"
	FormatMermaid OutputFormat = "mermaid"
)

// ErrUnknownFormat is returned for an unrecognized output format.
var ErrUnknownFormat = fmt.Errorf("unknown output format")

// Options configures rendering.
type Options struct {
	// Direction is the graph direction (LR, TB, BT, RL).
	// Default: "LR"
	Direction string

	// ShowValuations appends each world's valuations to its label.
	// Default: true
	ShowValuations bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Direction:      "LR",
		ShowValuations: true,
	}
}

// Renderer generates visual representations of a Kripke model.
//
// Thread Safety: safe for concurrent use.
type Renderer struct {
	options Options
}

// NewRenderer creates a renderer. A nil opts uses defaults.
func NewRenderer(opts *Options) *Renderer {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}
	if opts.Direction == "" {
		opts.Direction = "LR"
	}
	return &Renderer{options: *opts}
}

// Render generates the model in the requested format.
func (r *Renderer) Render(m *model.Model, format OutputFormat) (string, error) {
	switch format {
	case FormatDOT:
		return r.DOT(m), nil
	case FormatMermaid:
		return r.Mermaid(m), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DOT generates a Graphviz DOT representation of the model.
func (r *Renderer) DOT(m *model.Model) string {
	var b strings.Builder

	b.WriteString("digraph KripkeModel {\n")
	fmt.Fprintf(&b, "  rankdir=%s;\n", r.options.Direction)
	b.WriteString("  node [shape=circle];\n")
	b.WriteString("\n")

	for _, world := range m.Worlds() {
		label := world
		if r.options.ShowValuations {
			if vals := r.valuationLabel(m, world); vals != "" {
				label = fmt.Sprintf("%s\\n{%s}", world, vals)
			}
		}
		fmt.Fprintf(&b, "  %q [label=\"%s\"];\n", world, label)
	}
	b.WriteString("\n")

	for _, pair := range m.Relations() {
		fmt.Fprintf(&b, "  %q -> %q;\n", pair.Source, pair.Target)
	}

	b.WriteString("}\n")
	return b.String()
}

// Mermaid generates a Mermaid flowchart representation of the model.
func (r *Renderer) Mermaid(m *model.Model) string {
	var b strings.Builder

	fmt.Fprintf(&b, "graph %s\n", r.options.Direction)

	ids := mermaidIDs(m)
	for _, world := range m.Worlds() {
		label := world
		if r.options.ShowValuations {
			if vals := r.valuationLabel(m, world); vals != "" {
				label = fmt.Sprintf("%s<br/>{%s}", world, vals)
			}
		}
		fmt.Fprintf(&b, "  %s([\"%s\"])\n", ids[world], label)
	}

	for _, pair := range m.Relations() {
		fmt.Fprintf(&b, "  %s --> %s\n", ids[pair.Source], ids[pair.Target])
	}

	return b.String()
}

// valuationLabel returns "p:T, q:F" style text for a world's valuations.
func (r *Renderer) valuationLabel(m *model.Model, world string) string {
	props := m.Propositions(world)
	if len(props) == 0 {
		return ""
	}
	parts := make([]string, len(props))
	for i, name := range props {
		val := "F"
		if m.GetValuation(world, name) {
			val = "T"
		}
		parts[i] = fmt.Sprintf("%s:%s", name, val)
	}
	return strings.Join(parts, ", ")
}

// mermaidIDs assigns safe node identifiers, since Mermaid node ids cannot
// carry arbitrary characters the way quoted DOT ids can.
func mermaidIDs(m *model.Model) map[string]string {
	ids := make(map[string]string, m.WorldCount())
	for i, world := range m.Worlds() {
		ids[world] = fmt.Sprintf("W%d", i)
	}
	return ids
}
