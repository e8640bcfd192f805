// Package valuetype decides how a value is presented for editing and turns
// a submitted string back into a typed value.
package valuetype

import (
	"strings"

	"github.com/grovetools/iniedit/pkg/tree"
)

// Resolver classifies values for rendering and materializes submissions.
type Resolver struct {
	// Sniff enables content sniffing for files scanned without types:
	// text values "1", "0", "", "true" and "false" render as checkboxes.
	// Off by default; typed scans carry booleans explicitly.
	Sniff bool
}

// ClassifyForRender returns the kind of input a value is edited with.
func (r Resolver) ClassifyForRender(v tree.Value) tree.Kind {
	if v.Kind == tree.KindBool {
		return tree.KindBool
	}
	if r.Sniff && looksBoolean(v.Text) {
		return tree.KindBool
	}
	return tree.KindText
}

// Checked returns the checkbox state of a value rendered as a boolean.
func (r Resolver) Checked(v tree.Value) bool {
	if v.Kind == tree.KindBool {
		return v.Bool
	}
	return v.Text == "1" || v.Text == "true"
}

// Display returns the string an edit form shows for v under the given kind.
// Booleans become "1" or "0" and text is quote-escaped, so that Materialize
// gives v back unchanged.
func (r Resolver) Display(v tree.Value, kind tree.Kind) string {
	if kind == tree.KindBool {
		if r.Checked(v) {
			return "1"
		}
		return "0"
	}
	return Escape(v.String())
}

// Materialize converts a submitted string into a value of the given kind.
// The kind comes from the field name, never from the content.
func (r Resolver) Materialize(raw string, kind tree.Kind) tree.Value {
	if kind == tree.KindBool {
		return tree.Bool(IsOn(raw))
	}
	return tree.Text(Unescape(raw))
}

// IsOn reports whether a checkbox value means "checked".
func IsOn(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "on", "true", "yes":
		return true
	default:
		return false
	}
}

// Escape backslash-escapes double quotes for a quoted INI value.
func Escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Unescape reverses Escape: Unescape(Escape(s)) == s for every s, since
// each quote Escape emits is preceded by the backslash it inserted.
func Unescape(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}

func looksBoolean(s string) bool {
	switch s {
	case "1", "0", "", "true", "false":
		return true
	default:
		return false
	}
}
