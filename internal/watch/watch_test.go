package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "model.obj")
	if err := os.WriteFile(target, []byte("v 0 0 0\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	w, err := New(target)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) { changes <- path })
	}()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.obj"), []byte("v 1 1 1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(target, []byte("v 0 0 0\nv 1 0 0\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case got := <-changes:
		if got != w.Path() {
			t.Errorf("changed path = %q, want %q", got, w.Path())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "model.obj"))
	if err == nil {
		t.Error("expected error watching a missing directory, got nil")
	}
}
