// Package writer rebuilds INI text from an edit form submission.
package writer

import (
	"io"
	"strings"

	"github.com/grovetools/iniedit/pkg/fieldkey"
	"github.com/grovetools/iniedit/pkg/submission"
	"github.com/grovetools/iniedit/pkg/tree"
	"github.com/grovetools/iniedit/pkg/valuetype"
	"github.com/sirupsen/logrus"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Writer serializes submissions. The zero value uses the prefix-less codec
// and discards log output.
type Writer struct {
	Codec    fieldkey.Codec
	Resolver valuetype.Resolver
	Logger   logrus.FieldLogger
}

// New returns a writer for browser form submissions.
func New(logger logrus.FieldLogger) *Writer {
	return &Writer{Codec: fieldkey.Form, Logger: logger}
}

// Serialize is Writer.Serialize with the zero-value writer.
func Serialize(sub submission.Submission, sectionOrder []string) (string, error) {
	return (&Writer{}).Serialize(sub, sectionOrder)
}

// field is a decoded, typed submission entry.
type field struct {
	id    fieldkey.Identity
	value tree.Value
}

// block is a run of lines for one property: a single scalar line, or every
// entry of a list gathered at the list's first position.
type block struct {
	property string
	lines    []string
}

type sectionRows struct {
	blocks []*block
	lists  map[string]*block
}

// Serialize decodes every field of sub, groups the fields by section in
// submission order and renders INI text. Fields with malformed names are
// skipped. Sections listed in sectionOrder are written first, in that order;
// the others follow in the order they were first seen.
func (w *Writer) Serialize(sub submission.Submission, sectionOrder []string) (string, error) {
	fields := w.decode(sub)

	sections := orderedmap.New[string, *sectionRows]()
	for _, f := range fields {
		if err := validate(f); err != nil {
			return "", err
		}

		rows, ok := sections.Get(f.id.Section)
		if !ok {
			rows = &sectionRows{lists: map[string]*block{}}
			sections.Set(f.id.Section, rows)
		}

		line := formatLine(f)
		if !f.id.List {
			rows.blocks = append(rows.blocks, &block{property: f.id.Property, lines: []string{line}})
			continue
		}
		list, ok := rows.lists[f.id.Property]
		if !ok {
			list = &block{property: f.id.Property}
			rows.lists[f.id.Property] = list
			rows.blocks = append(rows.blocks, list)
		}
		list.lines = append(list.lines, line)
	}

	var out strings.Builder
	for _, name := range order(sections, sectionOrder) {
		rows, _ := sections.Get(name)
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString("[" + name + "]\n")

		previous := ""
		for i, b := range rows.blocks {
			if i > 0 && b.property != previous {
				out.WriteString("\n")
			}
			for _, line := range b.lines {
				out.WriteString(line)
				out.WriteString("\n")
			}
			previous = b.property
		}
	}
	return out.String(), nil
}

// decode turns submission pairs into typed fields, dropping the ones whose
// names cannot be decoded. An unchecked boolean directly followed by a
// checked one of the same name is a hidden fallback superseded by its
// checkbox.
func (w *Writer) decode(sub submission.Submission) []field {
	logger := w.logger()
	fields := make([]field, 0, len(sub))

	for i, pair := range sub {
		id, err := w.Codec.Decode(pair.Name)
		if err != nil {
			logger.WithError(err).Debug("Skipping field")
			continue
		}

		if pair.Grouped() {
			for _, e := range pair.Entries {
				key, err := fieldkey.DecodeComponent(e.Key)
				if err != nil {
					logger.WithField("field", pair.Name).WithError(err).Debug("Skipping list entry")
					continue
				}
				entryID := id
				entryID.List = true
				entryID.ArrayKey = key
				fields = append(fields, field{id: entryID, value: w.Resolver.Materialize(e.Value, id.Kind)})
			}
			continue
		}

		if id.Kind == tree.KindBool && supersededFallback(sub, i) {
			continue
		}
		fields = append(fields, field{id: id, value: w.Resolver.Materialize(pair.Value, id.Kind)})
	}
	return fields
}

// supersededFallback reports whether sub[i] is an unchecked hidden input
// immediately followed by the checked checkbox of the same name.
func supersededFallback(sub submission.Submission, i int) bool {
	if i+1 >= len(sub) || valuetype.IsOn(sub[i].Value) {
		return false
	}
	next := sub[i+1]
	return next.Name == sub[i].Name && !next.Grouped() && valuetype.IsOn(next.Value)
}

func (w *Writer) logger() logrus.FieldLogger {
	if w.Logger != nil {
		return w.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func order(sections *orderedmap.OrderedMap[string, *sectionRows], preferred []string) []string {
	names := make([]string, 0, sections.Len())
	seen := make(map[string]bool, sections.Len())
	for _, name := range preferred {
		if _, ok := sections.Get(name); ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	for pair := sections.Oldest(); pair != nil; pair = pair.Next() {
		if !seen[pair.Key] {
			names = append(names, pair.Key)
		}
	}
	return names
}

func formatLine(f field) string {
	if !f.id.List {
		return f.id.Property + "=" + FormatValue(f.value)
	}
	return f.id.Property + "[" + f.id.ArrayKey + "]=" + FormatValue(f.value)
}

// FormatValue renders a value the way it appears on the right of '='.
func FormatValue(v tree.Value) string {
	if v.Kind == tree.KindBool {
		return v.String()
	}
	return `"` + valuetype.Escape(v.Text) + `"`
}
