// Package tree holds the in-memory model of an INI configuration: ordered
// sections of scalar and list properties with typed values.
package tree

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the type marker carried by every value and field.
type Kind int

const (
	KindText Kind = iota // Free text, written double-quoted
	KindBool             // Boolean, written as bare true/false
)

// String returns the literal tag used in encoded field names.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParseKind accepts exactly the tags produced by Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "text":
		return KindText, true
	case "bool":
		return KindBool, true
	default:
		return KindText, false
	}
}

// Value is a typed property value.
type Value struct {
	Kind Kind
	Bool bool
	Text string
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// String returns the value as it reads in a file, without quoting.
func (v Value) String() string {
	if v.Kind == KindBool {
		if v.Bool {
			return "true"
		}
		return "false"
	}
	return v.Text
}

// AsText converts a boolean into its text form. Text values are returned unchanged.
func (v Value) AsText() Value {
	if v.Kind == KindText {
		return v
	}
	return Text(v.String())
}

// Entry is one element of a list property. Positional entries have Keyed
// unset and an empty Key.
type Entry struct {
	Key   string
	Keyed bool
	Value Value
}

// Property is either a scalar or a list.
type Property struct {
	Name    string
	List    bool
	Scalar  Value
	Entries []Entry
}

// NewScalar returns a scalar property.
func NewScalar(name string, v Value) *Property {
	return &Property{Name: name, Scalar: v}
}

// NewList returns an empty list property.
func NewList(name string) *Property {
	return &Property{Name: name, List: true}
}

// Append adds an entry to a list property. A keyed entry whose key already
// exists replaces the earlier one in place.
func (p *Property) Append(e Entry) {
	if e.Keyed {
		for i := range p.Entries {
			if p.Entries[i].Keyed && p.Entries[i].Key == e.Key {
				p.Entries[i].Value = e.Value
				return
			}
		}
	}
	p.Entries = append(p.Entries, e)
}

// Kind returns the property's type. A list is boolean only when every
// entry is, so an empty list is text.
func (p *Property) Kind() Kind {
	if !p.List {
		return p.Scalar.Kind
	}
	if len(p.Entries) == 0 {
		return KindText
	}
	for _, e := range p.Entries {
		if e.Value.Kind != KindBool {
			return KindText
		}
	}
	return KindBool
}

// Normalize makes a list's entries agree with its kind: in a mixed list
// booleans become their text form.
func (p *Property) Normalize() {
	if !p.List || p.Kind() == KindBool {
		return
	}
	for i := range p.Entries {
		p.Entries[i].Value = p.Entries[i].Value.AsText()
	}
}

// Section is an ordered set of uniquely named properties.
type Section struct {
	Name  string
	props *orderedmap.OrderedMap[string, *Property]
}

// NewSection returns an empty section.
func NewSection(name string) *Section {
	return &Section{
		Name:  name,
		props: orderedmap.New[string, *Property](),
	}
}

// Set adds or replaces a property, keeping the original position on replace.
func (s *Section) Set(p *Property) {
	s.props.Set(p.Name, p)
}

// Property looks up a property by name.
func (s *Section) Property(name string) (*Property, bool) {
	return s.props.Get(name)
}

// Properties returns the properties in file order.
func (s *Section) Properties() []*Property {
	out := make([]*Property, 0, s.props.Len())
	for pair := s.props.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of properties.
func (s *Section) Len() int {
	return s.props.Len()
}

// Tree is an ordered set of uniquely named sections.
type Tree struct {
	sections *orderedmap.OrderedMap[string, *Section]
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{sections: orderedmap.New[string, *Section]()}
}

// Section returns the named section, creating it at the end if missing.
func (t *Tree) Section(name string) *Section {
	if s, ok := t.sections.Get(name); ok {
		return s
	}
	s := NewSection(name)
	t.sections.Set(name, s)
	return s
}

// Lookup returns the named section without creating it.
func (t *Tree) Lookup(name string) (*Section, bool) {
	return t.sections.Get(name)
}

// Sections returns the sections in file order.
func (t *Tree) Sections() []*Section {
	out := make([]*Section, 0, t.sections.Len())
	for pair := t.sections.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of sections.
func (t *Tree) Len() int {
	return t.sections.Len()
}

// Has reports whether section/property exists.
func (t *Tree) Has(section, property string) bool {
	s, ok := t.sections.Get(section)
	if !ok {
		return false
	}
	_, ok = s.Property(property)
	return ok
}

// Equal compares names, order, kinds and values of two trees.
func (t *Tree) Equal(o *Tree) bool {
	if t.Len() != o.Len() {
		return false
	}
	a, b := t.Sections(), o.Sections()
	for i := range a {
		if a[i].Name != b[i].Name || !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}

func (s *Section) equal(o *Section) bool {
	if s.Len() != o.Len() {
		return false
	}
	a, b := s.Properties(), o.Properties()
	for i := range a {
		if !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}

func (p *Property) equal(o *Property) bool {
	if p.Name != o.Name || p.List != o.List {
		return false
	}
	if !p.List {
		return p.Scalar == o.Scalar
	}
	if len(p.Entries) != len(o.Entries) {
		return false
	}
	for i := range p.Entries {
		if p.Entries[i] != o.Entries[i] {
			return false
		}
	}
	return true
}
