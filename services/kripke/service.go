// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package kripke

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/AleutianAI/kripke/services/kripke/eval"
	"github.com/AleutianAI/kripke/services/kripke/formula"
	"github.com/AleutianAI/kripke/services/kripke/model"
	"github.com/AleutianAI/kripke/services/kripke/storage"
	"github.com/AleutianAI/kripke/services/kripke/visualization"
)

// ServiceVersion is the Kripke workbench service version.
const ServiceVersion = "0.1.0"

// Service holds named models and serializes access to them. Model
// values are never handed out; callers get snapshots or operation
// results, so a model can never be mutated mid-evaluation.
//
// Thread Safety: safe for concurrent use.
type Service struct {
	mu     sync.RWMutex
	models map[string]*model.Model
	store  *storage.Store
	logger *slog.Logger
}

// NewService creates a service with no persistence.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		models: make(map[string]*model.Model),
		logger: logger,
	}
}

// WithStore attaches a persistent store and loads every model it holds.
// Subsequent mutations are written through to the store.
func (s *Service) WithStore(ctx context.Context, store *storage.Store) error {
	names, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list persisted models: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
	for _, name := range names {
		m, err := store.Load(ctx, name)
		if err != nil {
			return fmt.Errorf("load model %q: %w", name, err)
		}
		s.models[name] = m
	}
	s.logger.Info("Loaded persisted models", "count", len(names))
	return nil
}

// persist writes a model through to the store, if one is attached.
// Callers hold the write lock.
func (s *Service) persist(ctx context.Context, name string) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, name, s.models[name]); err != nil {
		return fmt.Errorf("persist model %q: %w", name, err)
	}
	return nil
}

// mutate runs fn on the named model under the write lock, then persists.
func (s *Service) mutate(ctx context.Context, name string, op string, fn func(*model.Model) error) error {
	if name == "" {
		return ErrEmptyModelName
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.models[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	if err := fn(m); err != nil {
		recordMutation(ctx, op, time.Since(start), false)
		return err
	}
	if err := s.persist(ctx, name); err != nil {
		recordMutation(ctx, op, time.Since(start), false)
		return err
	}
	recordMutation(ctx, op, time.Since(start), true)
	return nil
}

// read runs fn on the named model under the read lock.
func (s *Service) read(name string, fn func(*model.Model) error) error {
	if name == "" {
		return ErrEmptyModelName
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.models[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	return fn(m)
}

// CreateModel creates an empty model under the given name.
func (s *Service) CreateModel(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyModelName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.models[name]; ok {
		return fmt.Errorf("%w: %s", ErrModelExists, name)
	}
	s.models[name] = model.New()
	if err := s.persist(ctx, name); err != nil {
		delete(s.models, name)
		return err
	}
	s.logger.Info("Created model", "name", name)
	return nil
}

// DeleteModel removes a model from memory and from the store.
func (s *Service) DeleteModel(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyModelName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.models[name]; !ok {
		return fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	if s.store != nil {
		if err := s.store.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete persisted model %q: %w", name, err)
		}
	}
	delete(s.models, name)
	s.logger.Info("Deleted model", "name", name)
	return nil
}

// ImportModel installs a model from a snapshot. Without overwrite, an
// existing model of the same name is an error.
func (s *Service) ImportModel(ctx context.Context, name string, snap *model.Snapshot, overwrite bool) error {
	if name == "" {
		return ErrEmptyModelName
	}
	if snap == nil {
		return ErrNoSnapshot
	}

	m, err := model.FromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("import model %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.models[name]
	if existed && !overwrite {
		return fmt.Errorf("%w: %s", ErrModelExists, name)
	}
	s.models[name] = m
	if err := s.persist(ctx, name); err != nil {
		if existed {
			s.models[name] = prev
		} else {
			delete(s.models, name)
		}
		return err
	}
	s.logger.Info("Imported model", "name", name,
		"worlds", m.WorldCount(), "relations", m.RelationCount())
	return nil
}

// ListModels returns a summary of every model, sorted by name.
func (s *Service) ListModels() []ModelSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ModelSummary, 0, len(s.models))
	for name, m := range s.models {
		out = append(out, ModelSummary{
			Name:      name,
			Worlds:    m.WorldCount(),
			Relations: m.RelationCount(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetSnapshot returns a snapshot of the named model.
func (s *Service) GetSnapshot(name string) (*model.Snapshot, error) {
	var snap *model.Snapshot
	err := s.read(name, func(m *model.Model) error {
		snap = m.Snapshot()
		return nil
	})
	return snap, err
}

// AddWorld adds a world to the named model.
func (s *Service) AddWorld(ctx context.Context, name, world string) error {
	return s.mutate(ctx, name, "add_world", func(m *model.Model) error {
		return m.AddWorld(world)
	})
}

// RemoveWorld removes a world along with its relations and valuations.
func (s *Service) RemoveWorld(ctx context.Context, name, world string) error {
	return s.mutate(ctx, name, "remove_world", func(m *model.Model) error {
		return m.RemoveWorld(world)
	})
}

// AddRelation adds an accessibility pair. Both worlds must exist.
func (s *Service) AddRelation(ctx context.Context, name, source, target string) error {
	return s.mutate(ctx, name, "add_relation", func(m *model.Model) error {
		return m.AddRelation(source, target)
	})
}

// RemoveRelation removes an accessibility pair.
func (s *Service) RemoveRelation(ctx context.Context, name, source, target string) error {
	return s.mutate(ctx, name, "remove_relation", func(m *model.Model) error {
		return m.RemoveRelation(source, target)
	})
}

// SetValuation assigns a truth value to a proposition at a world.
func (s *Service) SetValuation(ctx context.Context, name, world, prop string, value bool) error {
	return s.mutate(ctx, name, "set_valuation", func(m *model.Model) error {
		return m.SetValuation(world, prop, value)
	})
}

// SetDefaultValuation sets the fallback value for unassigned propositions.
func (s *Service) SetDefaultValuation(ctx context.Context, name string, value bool) error {
	return s.mutate(ctx, name, "set_default_valuation", func(m *model.Model) error {
		m.SetDefaultValuation(value)
		return nil
	})
}

// ApplyClosure applies the named closure operations in order. The whole
// request fails up front if any name is unknown, leaving the model
// untouched.
func (s *Service) ApplyClosure(ctx context.Context, name string, operations []string) error {
	for _, op := range operations {
		switch op {
		case "reflexive", "symmetric", "transitive":
		default:
			return fmt.Errorf("%w: %s", ErrUnknownClosure, op)
		}
	}
	return s.mutate(ctx, name, "closure", func(m *model.Model) error {
		for _, op := range operations {
			switch op {
			case "reflexive":
				m.MakeReflexive()
			case "symmetric":
				m.MakeSymmetric()
			case "transitive":
				m.MakeTransitive()
			}
		}
		return nil
	})
}

// Validate reports whether the named model is structurally consistent.
func (s *Service) Validate(name string) (bool, error) {
	var valid bool
	err := s.read(name, func(m *model.Model) error {
		valid = m.Validate()
		return nil
	})
	return valid, err
}

// Reachable reports whether target is reachable from start within
// maxSteps relation hops. A negative maxSteps uses the default bound.
func (s *Service) Reachable(name, from, to string, maxSteps int) (bool, error) {
	var reachable bool
	err := s.read(name, func(m *model.Model) error {
		reachable = m.IsReachable(from, to, maxSteps)
		return nil
	})
	return reachable, err
}

// Evaluate parses input and evaluates it at a world of the named model.
// Returns the canonical rendering of the parsed formula alongside the
// truth value.
func (s *Service) Evaluate(ctx context.Context, name, input, world string) (string, bool, error) {
	f, err := formula.Parse(input)
	if err != nil {
		return "", false, err
	}

	start := time.Now()
	var result bool
	err = s.read(name, func(m *model.Model) error {
		var evalErr error
		result, evalErr = eval.Evaluate(m, f, world)
		return evalErr
	})
	recordEvaluation(ctx, "single", time.Since(start), err == nil)
	if err != nil {
		return "", false, err
	}
	return f.String(), result, nil
}

// EvaluateAll parses input and evaluates it at every world of the named
// model.
func (s *Service) EvaluateAll(ctx context.Context, name, input string) (string, map[string]bool, error) {
	f, err := formula.Parse(input)
	if err != nil {
		return "", nil, err
	}

	start := time.Now()
	var results map[string]bool
	err = s.read(name, func(m *model.Model) error {
		var evalErr error
		results, evalErr = eval.EvaluateAllWorlds(m, f)
		return evalErr
	})
	recordEvaluation(ctx, "all_worlds", time.Since(start), err == nil)
	if err != nil {
		return "", nil, err
	}
	return f.String(), results, nil
}

// Render produces a DOT or Mermaid rendering of the named model.
func (s *Service) Render(name string, format visualization.OutputFormat, opts *visualization.Options) (string, error) {
	r := visualization.NewRenderer(opts)
	var out string
	err := s.read(name, func(m *model.Model) error {
		var renderErr error
		out, renderErr = r.Render(m, format)
		return renderErr
	})
	return out, err
}
