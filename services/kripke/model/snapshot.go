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

// Snapshot is the structured, order-independent serialization of a model.
//
// The field names W, R, V and default_valuation are the durable contract:
// persistence collaborators encode this struct (JSON in practice) and must
// not invent their own shape. Sequence order of W and R carries no meaning;
// only set equality is preserved across a round trip.
type Snapshot struct {
	// Worlds is the set of world identifiers, as a sequence.
	Worlds []string `json:"W"`

	// Relations is the set of accessibility pairs as [source, target]
	// two-element sequences.
	Relations [][2]string `json:"R"`

	// Valuations maps world → proposition → truth value.
	Valuations map[string]map[string]bool `json:"V"`

	// DefaultValuation is the fallback truth value. Absent on load means
	// false.
	DefaultValuation bool `json:"default_valuation"`
}

// Snapshot exports the model. Worlds and relations come out sorted so the
// encoding is deterministic, which keeps files diffable; consumers must not
// rely on the order.
func (m *Model) Snapshot() *Snapshot {
	s := &Snapshot{
		Worlds:           m.Worlds(),
		Relations:        make([][2]string, 0, len(m.relation)),
		Valuations:       make(map[string]map[string]bool, len(m.valuation)),
		DefaultValuation: m.defaultValuation,
	}
	for _, pair := range m.Relations() {
		s.Relations = append(s.Relations, [2]string{pair.Source, pair.Target})
	}
	for world, props := range m.valuation {
		copied := make(map[string]bool, len(props))
		for name, v := range props {
			copied[name] = v
		}
		s.Valuations[world] = copied
	}
	return s
}

// FromSnapshot builds a model from a snapshot. Worlds listed without a
// valuation entry get an empty one, so the restored model behaves exactly
// like one built through AddWorld. The snapshot is not validated here;
// callers that accept untrusted data should run Validate on the result.
func FromSnapshot(s *Snapshot) (*Model, error) {
	m := New()
	for _, id := range s.Worlds {
		if err := m.AddWorld(id); err != nil {
			return nil, err
		}
	}
	for _, pair := range s.Relations {
		m.relation[Pair{Source: pair[0], Target: pair[1]}] = struct{}{}
	}
	for world, props := range s.Valuations {
		copied := make(map[string]bool, len(props))
		for name, v := range props {
			copied[name] = v
		}
		m.valuation[world] = copied
	}
	m.defaultValuation = s.DefaultValuation
	return m, nil
}
