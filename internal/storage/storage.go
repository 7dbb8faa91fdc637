package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage is disk-addressed local file storage. Assets carry a (disk, path)
// pair; each disk maps to a root directory. The encoder needs real local
// paths for every input, so this layer never hands out anything but paths
// rooted under a registered disk.
//
// The "local" disk doubles as the durable output sink: Put writes under its
// root and returns the relative path as the durable reference.
type Storage struct {
	disks map[string]string
}

const DefaultDisk = "local"

func New(root string) (*Storage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	return &Storage{
		disks: map[string]string{DefaultDisk: root},
	}, nil
}

// RegisterDisk adds a named disk rooted at dir.
func (s *Storage) RegisterDisk(name, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create disk %s root: %w", name, err)
	}
	s.disks[name] = dir
	return nil
}

// Exists reports whether path is present on the named disk. Unknown disks
// count as missing.
func (s *Storage) Exists(disk, path string) bool {
	root, ok := s.disks[disk]
	if !ok {
		return false
	}
	_, err := os.Stat(filepath.Join(root, path))
	return err == nil
}

// Path resolves a (disk, path) pair to an absolute local path.
func (s *Storage) Path(disk, path string) string {
	root, ok := s.disks[disk]
	if !ok {
		root = s.disks[DefaultDisk]
	}
	return filepath.Join(root, path)
}

// Put writes data under the default disk and returns nothing but error;
// the relative path passed in is the durable reference.
func (s *Storage) Put(path string, data []byte) error {
	full := s.Path(DefaultDisk, path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Read returns the bytes stored at path on the default disk.
func (s *Storage) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(DefaultDisk, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Open opens the file at path on the default disk for streaming.
func (s *Storage) Open(path string) (*os.File, error) {
	f, err := os.Open(s.Path(DefaultDisk, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
