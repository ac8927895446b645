package store

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

// TestWatcher_ReloadOnWrite tests that modifying the watched file triggers a
// single debounced reload.
func TestWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policies.yaml")
	if err := os.WriteFile(path, []byte("retention_policies: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	w, err := NewWatcher(path, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}

	var reloads atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	// Let the watch loop register its directory watch.
	time.Sleep(100 * time.Millisecond)

	// A burst of writes should collapse into one reload.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("retention_policies: []\n"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.After(2 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("reload never fired")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// Wait out the debounce window; the burst must not fire again.
	time.Sleep(200 * time.Millisecond)
	if got := reloads.Load(); got != 1 {
		t.Errorf("reloads = %d, want 1", got)
	}

	cancel()
	if err := <-watchErr; err != nil {
		t.Errorf("Watch() returned error: %v", err)
	}
}

// TestWatcher_AtomicSave tests that a rename over the watched path (editor
// atomic save) triggers a reload.
func TestWatcher_AtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policies.yaml")
	if err := os.WriteFile(path, []byte("retention_policies: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	w, err := NewWatcher(path, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Stop()

	var reloads atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	tmp := filepath.Join(dir, ".policies.yaml.tmp")
	if err := os.WriteFile(tmp, []byte("retention_policies: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("failed to rename: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("reload after rename never fired")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// TestWatcher_IgnoresOtherFiles tests that events for sibling files do not
// trigger a reload.
func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policies.yaml")
	if err := os.WriteFile(path, []byte("retention_policies: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	w, err := NewWatcher(path, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Stop()

	var reloads atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	sibling := filepath.Join(dir, "unrelated.yaml")
	if err := os.WriteFile(sibling, []byte("noise: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write sibling file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := reloads.Load(); got != 0 {
		t.Errorf("sibling file triggered %d reloads", got)
	}
}

// TestWatcher_DoubleWatchRefused tests that a second Watch call fails while
// one is running.
func TestWatcher_DoubleWatchRefused(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policies.yaml")

	w, err := NewWatcher(path, 0, nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Watch(ctx, func() error { return nil })
	}()

	time.Sleep(100 * time.Millisecond)

	if err := w.Watch(ctx, func() error { return nil }); err == nil {
		t.Error("second Watch() did not fail")
	}
}

// TestWatcher_ContextCancelReleasesResources tests that a watch ended by
// context cancellation closes the filesystem watcher even when Stop is never
// the one to end it.
func TestWatcher_ContextCancelReleasesResources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policies.yaml")

	w, err := NewWatcher(path, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Watch(ctx, func() error { return nil })
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-watchErr:
		if err != nil {
			t.Fatalf("Watch() returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after cancellation")
	}

	if err := w.watcher.Add(dir); err == nil {
		t.Error("filesystem watcher still open after cancellation")
	}

	// Stop after a cancelled watch is a no-op, not a hang or a panic.
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() after cancellation failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() failed: %v", err)
	}
}

// TestShouldProcessEvent tests the event filter.
func TestShouldProcessEvent(t *testing.T) {
	w := &Watcher{path: "/etc/saturn/policies.yaml"}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "write to watched file",
			event: fsnotify.Event{Name: "/etc/saturn/policies.yaml", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "create of watched file",
			event: fsnotify.Event{Name: "/etc/saturn/policies.yaml", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "chmod only",
			event: fsnotify.Event{Name: "/etc/saturn/policies.yaml", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "sibling file",
			event: fsnotify.Event{Name: "/etc/saturn/other.yaml", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "unclean path still matches",
			event: fsnotify.Event{Name: "/etc/saturn/../saturn/policies.yaml", Op: fsnotify.Write},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
