package editor

import (
	"errors"
	"fmt"
)

// Status turns the outcome of Load or Save into the one-line message shown
// to the user.
func (e *Editor) Status(err error) string {
	var (
		parseErr  *ParseFailure
		backupErr *BackupFailure
		writeErr  *WriteFailure
	)
	switch {
	case err == nil:
		return fmt.Sprintf("%s saved", e.opts.File)
	case errors.Is(err, ErrEditDisabled):
		return ErrEditDisabled.Error()
	case errors.As(err, &backupErr):
		return fmt.Sprintf("Check write permissions on %s", backupErr.BackupDir)
	case errors.As(err, &parseErr):
		return fmt.Sprintf("%s could not be parsed", parseErr.File)
	case errors.As(err, &writeErr):
		return fmt.Sprintf("%s cannot be saved", writeErr.File)
	default:
		return fmt.Sprintf("%s cannot be saved", e.opts.File)
	}
}
