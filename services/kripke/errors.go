// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package kripke is the model workbench service: named Kripke models held
// in memory, optionally persisted, with operations for editing frames,
// applying closures, and evaluating modal formulas.
package kripke

import "errors"

var (
	// ErrEmptyModelName indicates a model name was empty.
	ErrEmptyModelName = errors.New("model name is empty")

	// ErrModelExists indicates a create collided with an existing model.
	ErrModelExists = errors.New("model already exists")

	// ErrModelNotFound indicates the named model does not exist.
	ErrModelNotFound = errors.New("model not found")

	// ErrUnknownClosure indicates an unrecognized closure operation name.
	ErrUnknownClosure = errors.New("unknown closure operation")

	// ErrNoSnapshot indicates an import request carried no snapshot body.
	ErrNoSnapshot = errors.New("snapshot is missing")
)
