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
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AleutianAI/kripke/services/kripke/model"
)

// DefaultDebounceWindow is how long the watcher waits for further writes
// before reloading. Editors often produce several events per save.
const DefaultDebounceWindow = 100 * time.Millisecond

// ReloadHandler is called with the freshly loaded model after the watched
// file changes. It runs on the watcher's goroutine.
type ReloadHandler func(m *model.Model)

// Watcher reloads a model snapshot file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself: atomic
// save-via-rename (which SaveFile performs) replaces the inode, and a
// watch on the old inode would go quiet after the first save.
//
// Thread Safety: safe for concurrent use. The handler is called from a
// single goroutine.
type Watcher struct {
	path     string
	handler  ReloadHandler
	debounce time.Duration
	logger   *slog.Logger

	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the given model file. A nil logger
// discards log output.
func NewWatcher(path string, handler ReloadHandler, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     filepath.Clean(path),
		handler:  handler,
		debounce: DefaultDebounceWindow,
		logger:   logger,
		watcher:  fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The goroutine exits when Stop is called or the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.run(ctx)
	return nil
}

// Stop halts the watcher. Safe to call multiple times.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

func (w *Watcher) run(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("model file watcher error", "error", err)
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	m, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("model file reload failed", "path", w.path, "error", err)
		return
	}
	w.logger.Info("model file reloaded", "path", w.path, "worlds", m.WorldCount())
	w.handler(m)
}
