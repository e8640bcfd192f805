package editor

import (
	"errors"
	"fmt"
)

// ErrEditDisabled is returned by Save when editing is turned off.
var ErrEditDisabled = errors.New("editing is disabled")

// ParseFailure means the file could not be read or parsed; no form can be
// built from it.
type ParseFailure struct {
	File string
	Err  error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.File, e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }

// BackupFailure means the pre-write backup could not be created. The target
// file was not touched.
type BackupFailure struct {
	File      string
	BackupDir string
	Err       error
}

func (e *BackupFailure) Error() string {
	return fmt.Sprintf("failed to back up %s into %s: %v", e.File, e.BackupDir, e.Err)
}

func (e *BackupFailure) Unwrap() error { return e.Err }

// WriteFailure means new content could not be produced or written. When
// Backup is set, a copy of the previous content exists there.
type WriteFailure struct {
	File   string
	Backup string
	Err    error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.File, e.Err)
}

func (e *WriteFailure) Unwrap() error { return e.Err }
