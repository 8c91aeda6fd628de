// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/kripke/services/kripke/model"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	m := sampleModel(t)
	m.SetDefaultValuation(true)

	require.NoError(t, SaveFile(path, m))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Worlds(), loaded.Worlds())
	assert.Equal(t, m.Relations(), loaded.Relations())
	assert.True(t, loaded.DefaultValuation())
	assert.True(t, loaded.GetValuation("w1", "p"))
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0644))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, SaveFile(path, sampleModel(t)))

	reloaded := make(chan *model.Model, 1)
	w, err := NewWatcher(path, func(m *model.Model) {
		select {
		case reloaded <- m:
		default:
		}
	}, nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	// Mutate and save; the watcher should hand us the new model.
	m := sampleModel(t)
	require.NoError(t, m.AddWorld("w9"))
	require.NoError(t, SaveFile(path, m))

	select {
	case got := <-reloaded:
		assert.Contains(t, got.Worlds(), "w9")
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload within 5s")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, SaveFile(path, sampleModel(t)))

	reloaded := make(chan *model.Model, 1)
	w, err := NewWatcher(path, func(m *model.Model) { reloaded <- m }, nil)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	select {
	case <-reloaded:
		t.Fatal("watcher reacted to an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
