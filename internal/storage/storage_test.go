package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPutAndRead(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	if err := s.Put("renders/final_abc.mp4", []byte("video")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	data, err := s.Read("renders/final_abc.mp4")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "video" {
		t.Errorf("expected 'video', got %q", data)
	}
}

func TestExists(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	if s.Exists(DefaultDisk, "nope.mp4") {
		t.Error("missing file reported as present")
	}
	if s.Exists("no-such-disk", "nope.mp4") {
		t.Error("unknown disk must count as missing")
	}

	if err := s.Put("assets/clip.mp4", []byte("x")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !s.Exists(DefaultDisk, "assets/clip.mp4") {
		t.Error("stored file reported as missing")
	}
}

func TestRegisteredDisk(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	uploads := t.TempDir()
	if err := s.RegisterDisk("uploads", uploads); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(uploads, "a.mp3"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if !s.Exists("uploads", "a.mp3") {
		t.Error("file on registered disk reported as missing")
	}
	if got := s.Path("uploads", "a.mp3"); got != filepath.Join(uploads, "a.mp3") {
		t.Errorf("unexpected resolved path: %s", got)
	}
}

func TestOpenStreamsDefaultDisk(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := s.Put("assets/a.mp4", []byte("stream")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	f, err := s.Open("assets/a.mp4")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	buf := make([]byte, 6)
	if _, err := f.Read(buf); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(buf) != "stream" {
		t.Errorf("expected 'stream', got %q", buf)
	}
}
