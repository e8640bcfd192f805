package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FS is the file system the editor reads, backs up and writes through.
type FS interface {
	ReadFile(path string) ([]byte, error)
	// WriteFile must replace the file as a whole or leave it untouched.
	WriteFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	IsWritable(path string) bool
	MkdirAll(path string, perm os.FileMode) error
	ListDir(path string) ([]string, error)
}

// OSFS is the FS backed by the operating system.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes to a temporary file in the same directory and renames it
// over path. An existing file keeps its permissions.
func (OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp.%d", base, time.Now().UnixNano()))

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsWritable opens the file for writing without truncating it.
func (OSFS) IsWritable(path string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func (OSFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OSFS) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
