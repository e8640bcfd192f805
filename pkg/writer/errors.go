package writer

import (
	"fmt"
	"strings"

	"github.com/grovetools/iniedit/pkg/tree"
)

// WriteError reports a field that cannot be expressed as INI text.
type WriteError struct {
	Section  string
	Property string
	Reason   string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write [%s] %s: %s", e.Section, e.Property, e.Reason)
}

const lineBreaks = "\r\n"

func validate(f field) error {
	fail := func(reason string) error {
		return &WriteError{Section: f.id.Section, Property: f.id.Property, Reason: reason}
	}

	switch {
	case f.id.Section == "":
		return fail("empty section name")
	case strings.ContainsAny(f.id.Section, "]"+lineBreaks):
		return fail("section name contains ']' or a line break")
	case strings.TrimSpace(f.id.Section) != f.id.Section:
		return fail("section name has surrounding whitespace")
	case f.id.Property == "":
		return fail("empty property name")
	case strings.ContainsAny(f.id.Property, "=[]"+lineBreaks):
		return fail("property name contains '=', '[', ']' or a line break")
	case strings.ContainsAny(f.id.Property[:1], ";#\"`"):
		return fail("property name starts with a comment or quote character")
	case strings.TrimSpace(f.id.Property) != f.id.Property:
		return fail("property name has surrounding whitespace")
	case f.id.List && strings.ContainsAny(f.id.ArrayKey, "=[]\x00"+lineBreaks):
		return fail("array key contains '=', '[', ']', NUL or a line break")
	case f.value.Kind == tree.KindText && strings.ContainsAny(f.value.Text, lineBreaks):
		return fail("value contains a line break")
	}
	return nil
}
