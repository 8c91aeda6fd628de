// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package model provides the relational (Kripke) model for modal logic.
//
// A Model owns three pieces of state: a set of worlds, a directed
// accessibility relation between worlds, and per-world valuations of
// atomic propositions. Closure operations (reflexive, symmetric,
// transitive) extend the relation in place; Snapshot/FromSnapshot give a
// lossless structured serialization.
//
// # Invariants
//
// Every relation pair's endpoints are members of the world set, and every
// valuation key is a member of the world set. Mutations are all-or-nothing:
// a failed operation leaves the model untouched. Validate() re-checks the
// invariants and is the precondition evaluators rely on.
//
// # Thread Safety
//
// Model is NOT safe for concurrent use. Callers that share a model across
// goroutines must serialize mutations against each other and against
// evaluation reads (see services/kripke.Service for the locking wrapper).
package model

import "errors"

// Sentinel errors for model operations.
var (
	// ErrInvalidWorldID is returned when a world identifier is empty or
	// otherwise not a usable identifier.
	ErrInvalidWorldID = errors.New("invalid world identifier")

	// ErrInvalidProposition is returned when a proposition name is empty.
	ErrInvalidProposition = errors.New("invalid proposition name")

	// ErrWorldNotFound is returned when an operation references a world
	// that is not in the model.
	ErrWorldNotFound = errors.New("world not found")

	// ErrRelationNotFound is returned when removing a relation pair that
	// is not present.
	ErrRelationNotFound = errors.New("relation not found")
)
