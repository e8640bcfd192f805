// Package inifile reads INI files into a tree.Tree using gopkg.in/ini.v1.
//
// Keys written as name[] become positional list entries and name[key]
// keyed entries; every other key is a scalar. Entries of one list keep
// their order in the file, positional and keyed alike.
package inifile

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/grovetools/iniedit/pkg/tree"
	"github.com/grovetools/iniedit/pkg/valuetype"
	"gopkg.in/ini.v1"
)

var listKey = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]*)\]$`)

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		AllowShadows:               true,
		AllowDuplicateShadowValues: true,
		PreserveSurroundedQuote:    true,
		IgnoreInlineComment:        true,
		IgnoreContinuation:         true,
		KeyValueDelimiters:         "=",
	}
}

// Load parses the file at path.
func Load(path string, mode ScanMode) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := ini.LoadSources(loadOptions(), numberPositional(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return build(f, mode), nil
}

// Parse parses INI content.
func Parse(data []byte, mode ScanMode) (*tree.Tree, error) {
	f, err := ini.LoadSources(loadOptions(), numberPositional(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI data: %w", err)
	}
	return build(f, mode), nil
}

func build(f *ini.File, mode ScanMode) *tree.Tree {
	t := tree.New()
	for _, sec := range f.Sections() {
		keys := sec.Keys()
		if len(keys) == 0 && sec.Name() == ini.DefaultSection {
			continue
		}
		section := t.Section(sec.Name())
		for _, key := range keys {
			// ValueWithShadows drops empty values, so an empty key has none.
			values := key.ValueWithShadows()
			if len(values) == 0 {
				values = []string{key.Value()}
			}
			addKey(section, key.Name(), values, mode)
		}
		for _, p := range section.Properties() {
			p.Normalize()
		}
	}
	return t
}

func addKey(section *tree.Section, name string, values []string, mode ScanMode) {
	m := listKey.FindStringSubmatch(name)
	if m == nil {
		// Repeated scalars: the last assignment wins.
		section.Set(tree.NewScalar(name, scanValue(values[len(values)-1], mode)))
		return
	}

	property, key := m[1], m[2]
	list, ok := section.Property(property)
	if !ok || !list.List {
		list = tree.NewList(property)
		section.Set(list)
	}

	if key == "" || strings.HasPrefix(key, positionalMark) {
		for _, v := range values {
			list.Append(tree.Entry{Value: scanValue(v, mode)})
		}
		return
	}
	list.Append(tree.Entry{Key: key, Keyed: true, Value: scanValue(values[len(values)-1], mode)})
}

// scanValue types one raw value. Quoted values are always text, and a
// double-quoted value is unescaped in every mode since the writer escapes
// every value it quotes.
func scanValue(raw string, mode ScanMode) tree.Value {
	if inner, ok := unquote(raw, '"'); ok {
		return tree.Text(valuetype.Unescape(inner))
	}
	if inner, ok := unquote(raw, '\''); ok {
		return tree.Text(inner)
	}
	if mode == ScanRaw {
		return tree.Text(raw)
	}

	switch strings.ToLower(raw) {
	case "true", "on", "yes":
		if mode == ScanTyped {
			return tree.Bool(true)
		}
		return tree.Text("1")
	case "false", "off", "no", "none":
		if mode == ScanTyped {
			return tree.Bool(false)
		}
		return tree.Text("")
	case "null":
		return tree.Text("")
	}
	return tree.Text(raw)
}

func unquote(s string, q byte) (string, bool) {
	if len(s) >= 2 && s[0] == q && s[len(s)-1] == q {
		return s[1 : len(s)-1], true
	}
	return "", false
}
