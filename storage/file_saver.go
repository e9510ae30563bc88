package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirSaver writes artifacts into a directory. Content is first written to a
// temporary file next to the destination and renamed into place only once fully
// written, so a failed save never leaves a partial file behind.
type DirSaver struct {
	dir string
}

// NewDirSaver returns a saver rooted at dir. The directory is created on first save.
func NewDirSaver(dir string) *DirSaver {
	return &DirSaver{dir: dir}
}

// Save copies r into dir/name and returns the written path.
func (s *DirSaver) Save(name string, r io.Reader) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("save: invalid file name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("save: create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("save: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	published := false
	defer func() {
		if !published {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("save: write %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("save: close %q: %w", name, err)
	}

	dest := filepath.Join(s.dir, name)
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("save: publish %q: %w", name, err)
	}
	published = true
	return dest, nil
}
