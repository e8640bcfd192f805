// Package fieldset flattens a configuration tree into the editable fields a
// form renders, one per scalar and one per list entry.
package fieldset

import (
	"github.com/grovetools/iniedit/pkg/fieldkey"
	"github.com/grovetools/iniedit/pkg/submission"
	"github.com/grovetools/iniedit/pkg/tree"
	"github.com/grovetools/iniedit/pkg/valuetype"
)

// Field is one editable slot with its encoded name and current value.
type Field struct {
	Identity fieldkey.Identity
	Name     string
	Value    tree.Value
	// Display is the string the form shows; for booleans "1" or "0".
	Display string
}

// Checked reports the checkbox state of a boolean field.
func (f Field) Checked() bool {
	return f.Identity.Kind == tree.KindBool && f.Display == "1"
}

// Inputs returns the pairs a browser posts for the field unchanged.
// Booleans post a hidden "0" fallback followed by "1" when checked.
func (f Field) Inputs() []submission.Pair {
	if f.Identity.Kind != tree.KindBool {
		return []submission.Pair{{Name: f.Name, Value: f.Display}}
	}
	pairs := []submission.Pair{{Name: f.Name, Value: "0"}}
	if f.Checked() {
		pairs = append(pairs, submission.Pair{Name: f.Name, Value: "1"})
	}
	return pairs
}

// Builder derives fields from a tree.
type Builder struct {
	Codec    fieldkey.Codec
	Resolver valuetype.Resolver
}

// Build walks the tree once, in file order.
func (b Builder) Build(t *tree.Tree) []Field {
	var fields []Field
	for _, section := range t.Sections() {
		for _, p := range section.Properties() {
			fields = append(fields, b.property(section.Name, p)...)
		}
	}
	return fields
}

// property returns the fields of a single property.
func (b Builder) property(section string, p *tree.Property) []Field {
	if !p.List {
		kind := b.Resolver.ClassifyForRender(p.Scalar)
		id := fieldkey.Identity{Section: section, Property: p.Name, Kind: kind}
		return []Field{b.field(id, p.Scalar)}
	}

	kind := b.listKind(p)
	fields := make([]Field, 0, len(p.Entries))
	for _, e := range p.Entries {
		id := fieldkey.Identity{
			Section:  section,
			Property: p.Name,
			Kind:     kind,
			List:     true,
			ArrayKey: e.Key,
		}
		fields = append(fields, b.field(id, e.Value))
	}
	return fields
}

// listKind is bool only when every entry renders as a checkbox.
func (b Builder) listKind(p *tree.Property) tree.Kind {
	if len(p.Entries) == 0 {
		return tree.KindText
	}
	for _, e := range p.Entries {
		if b.Resolver.ClassifyForRender(e.Value) != tree.KindBool {
			return tree.KindText
		}
	}
	return tree.KindBool
}

func (b Builder) field(id fieldkey.Identity, v tree.Value) Field {
	return Field{
		Identity: id,
		Name:     b.Codec.Encode(id),
		Value:    v,
		Display:  b.Resolver.Display(v, id.Kind),
	}
}

// Build derives fields with the prefix-less codec and no content sniffing.
func Build(t *tree.Tree) []Field {
	return Builder{}.Build(t)
}

// Submission returns what an unedited form posts for fields.
func Submission(fields []Field) submission.Submission {
	var sub submission.Submission
	for _, f := range fields {
		sub = append(sub, f.Inputs()...)
	}
	return sub
}

// Sections returns section names in the order the fields reference them.
func Sections(fields []Field) []string {
	var names []string
	seen := map[string]bool{}
	for _, f := range fields {
		if !seen[f.Identity.Section] {
			seen[f.Identity.Section] = true
			names = append(names, f.Identity.Section)
		}
	}
	return names
}
