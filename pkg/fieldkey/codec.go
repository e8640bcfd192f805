// Package fieldkey encodes the identity of one editable configuration slot
// into a flat string usable as a form field name, and decodes it back.
//
// Wire format:
//
//	<b64(section)>#<b64(property)>#<kind>          scalar
//	<b64(section)>#<b64(property)>#<kind>[]        list, append
//	<b64(section)>#<b64(property)>#<kind>[<b64(key)>]  list, keyed
//
// b64 is unpadded base64url, whose alphabet never contains '#', '[' or ']'.
package fieldkey

import (
	"encoding/base64"
	"strings"

	"github.com/grovetools/iniedit/pkg/tree"
)

// FormPrefix marks the fields of a browser form that belong to the editor.
const FormPrefix = "ini#"

const separator = "#"

var encoding = base64.RawURLEncoding.Strict()

// Identity names one configuration slot.
type Identity struct {
	Section  string
	Property string
	Kind     tree.Kind
	// List marks a list entry. ArrayKey is only meaningful for lists; an
	// empty key means "append at the next position".
	List     bool
	ArrayKey string
}

// Codec converts identities to field names and back.
type Codec struct {
	// Prefix is prepended on encode and required on decode.
	Prefix string
}

// Default is the codec without a prefix.
var Default = Codec{}

// Form is the codec used for browser form fields.
var Form = Codec{Prefix: FormPrefix}

// Encode returns the field name for id. ArrayKey is ignored for scalars.
func (c Codec) Encode(id Identity) string {
	var b strings.Builder
	b.WriteString(c.Prefix)
	b.WriteString(encoding.EncodeToString([]byte(id.Section)))
	b.WriteString(separator)
	b.WriteString(encoding.EncodeToString([]byte(id.Property)))
	b.WriteString(separator)
	b.WriteString(id.Kind.String())
	if id.List {
		b.WriteByte('[')
		b.WriteString(encoding.EncodeToString([]byte(id.ArrayKey)))
		b.WriteByte(']')
	}
	return b.String()
}

// Decode parses a field name produced by Encode.
func (c Codec) Decode(name string) (Identity, error) {
	var id Identity

	rest, ok := strings.CutPrefix(name, c.Prefix)
	if !ok {
		return id, malformed(name, "missing prefix "+c.Prefix, nil)
	}

	if open := strings.IndexByte(rest, '['); open >= 0 {
		if !strings.HasSuffix(rest, "]") || open == len(rest)-1 {
			return id, malformed(name, "unterminated array key", nil)
		}
		inner := rest[open+1 : len(rest)-1]
		if strings.ContainsAny(inner, "[]") {
			return id, malformed(name, "nested brackets", nil)
		}
		key, err := DecodeComponent(inner)
		if err != nil {
			return id, malformed(name, "invalid array key", err)
		}
		id.List = true
		id.ArrayKey = key
		rest = rest[:open]
	} else if strings.ContainsRune(rest, ']') {
		return id, malformed(name, "unexpected ']'", nil)
	}

	parts := strings.Split(rest, separator)
	if len(parts) != 3 {
		return Identity{}, malformed(name, "expected section#property#kind", nil)
	}

	section, err := DecodeComponent(parts[0])
	if err != nil {
		return Identity{}, malformed(name, "invalid section", err)
	}
	property, err := DecodeComponent(parts[1])
	if err != nil {
		return Identity{}, malformed(name, "invalid property", err)
	}
	kind, ok := tree.ParseKind(parts[2])
	if !ok {
		return Identity{}, malformed(name, "unknown kind "+parts[2], nil)
	}

	id.Section = section
	id.Property = property
	id.Kind = kind
	return id, nil
}

// EncodeComponent applies the transport-safe encoding to one name part.
func EncodeComponent(s string) string {
	return encoding.EncodeToString([]byte(s))
}

// DecodeComponent reverses EncodeComponent. Padding, line breaks and
// non-canonical trailing bits are rejected so each string has one encoding.
func DecodeComponent(s string) (string, error) {
	if strings.ContainsAny(s, "\r\n") {
		return "", errLineBreak
	}
	b, err := encoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Encode encodes with the Default codec.
func Encode(id Identity) string {
	return Default.Encode(id)
}

// Decode decodes with the Default codec.
func Decode(name string) (Identity, error) {
	return Default.Decode(name)
}
