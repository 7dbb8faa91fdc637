package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Arena tracks every temporary artifact a single render execution creates,
// so the whole set can be swept at job end regardless of which stage failed.
// Each render owns its own arena; there is no process-wide temp state.
type Arena struct {
	dir string

	mu    sync.Mutex
	paths []string
}

func NewArena(baseDir string) (*Arena, error) {
	dir := filepath.Join(baseDir, uuid.New().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	return &Arena{dir: dir}, nil
}

// Allocate reserves a temp path under the arena. The file is not created;
// the path is recorded for the final sweep.
func (a *Arena) Allocate(name string) string {
	path := filepath.Join(a.dir, name)

	a.mu.Lock()
	a.paths = append(a.paths, path)
	a.mu.Unlock()

	return path
}

// Release deletes one artifact early, once the next stage has consumed it.
// Best-effort: a failed delete is left for Sweep.
func (a *Arena) Release(path string) {
	os.Remove(path)
}

// Sweep removes every allocated artifact and the arena directory itself.
// Deletion failures are swallowed — cleanup never masks a render failure.
func (a *Arena) Sweep() {
	a.mu.Lock()
	paths := a.paths
	a.paths = nil
	a.mu.Unlock()

	for _, path := range paths {
		os.Remove(path)
	}
	os.Remove(a.dir)
}
