package fieldkey

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every DecodeError via errors.Is.
var ErrMalformed = errors.New("malformed field name")

var errLineBreak = errors.New("line break in encoded component")

// DecodeError reports a field name that does not have the expected shape.
type DecodeError struct {
	Name   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed field name %q: %s: %v", e.Name, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed field name %q: %s", e.Name, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformed) true for any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformed
}

func malformed(name, reason string, err error) error {
	return &DecodeError{Name: name, Reason: reason, Err: err}
}
