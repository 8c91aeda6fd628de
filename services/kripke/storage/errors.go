// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package storage persists Kripke models.
//
// Two media are supported: a BadgerDB-backed store of named models (the
// server's durable registry) and plain JSON files holding a single model
// snapshot (the CLI's working format). Both encode the model.Snapshot
// contract; neither invents its own shape. A fsnotify-based Watcher
// reloads a model file when it changes on disk.
package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrModelNotFound is returned when a named model is not in the store.
	ErrModelNotFound = errors.New("model not found in store")

	// ErrEmptyName is returned when a store operation gets an empty model
	// name.
	ErrEmptyName = errors.New("model name must not be empty")

	// ErrClosed is returned when using a store after Close.
	ErrClosed = errors.New("store is closed")
)
