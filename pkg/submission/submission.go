// Package submission models the ordered set of fields posted by an edit form.
package submission

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one value of a grouped list input. Key is the transport-encoded
// array key; empty means "append".
type Entry struct {
	Key   string `yaml:"key,omitempty"`
	Value string `yaml:"value"`
}

// Pair is one posted field. A pair with Entries is a grouped list input
// whose Name has no bracket suffix; Value is then ignored.
type Pair struct {
	Name    string  `yaml:"name"`
	Value   string  `yaml:"value,omitempty"`
	Entries []Entry `yaml:"entries,omitempty"`
}

// Grouped reports whether the pair carries list entries.
func (p Pair) Grouped() bool {
	return p.Entries != nil
}

// Submission is the ordered sequence of posted fields. Order reflects the
// user's arrangement of the form and is significant.
type Submission []Pair

// Add appends a single field.
func (s *Submission) Add(name, value string) {
	*s = append(*s, Pair{Name: name, Value: value})
}

// AddGroup appends a grouped list input.
func (s *Submission) AddGroup(name string, entries ...Entry) {
	if entries == nil {
		entries = []Entry{}
	}
	*s = append(*s, Pair{Name: name, Entries: entries})
}

// Names returns the field names in order.
func (s Submission) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}
	return names
}

// ParseForm decodes an application/x-www-form-urlencoded body keeping the
// order of fields, which url.ParseQuery does not.
func ParseForm(r io.Reader) (Submission, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read form body: %w", err)
	}

	body := strings.TrimRight(string(data), "\r\n")
	sub := Submission{}
	if body == "" {
		return sub, nil
	}

	for _, part := range strings.Split(body, "&") {
		if part == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(part, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, fmt.Errorf("failed to decode field name %q: %w", rawName, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("failed to decode value of %q: %w", name, err)
		}
		sub.Add(name, value)
	}
	return sub, nil
}

// Encode renders the submission as a form body, the inverse of ParseForm.
// Grouped pairs are flattened into name[key]=value fields.
func (s Submission) Encode() string {
	parts := make([]string, 0, len(s))
	for _, p := range s {
		if p.Grouped() {
			for _, e := range p.Entries {
				parts = append(parts, url.QueryEscape(p.Name+"["+e.Key+"]")+"="+url.QueryEscape(e.Value))
			}
			continue
		}
		parts = append(parts, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

// LoadFile reads a submission from disk. YAML files hold a list of pairs;
// anything else is treated as a form-encoded body.
func LoadFile(path string) (Submission, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read submission %s: %w", path, err)
		}
		var sub Submission
		if err := yaml.Unmarshal(data, &sub); err != nil {
			return nil, fmt.Errorf("failed to parse submission %s: %w", path, err)
		}
		return sub, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open submission %s: %w", path, err)
		}
		defer f.Close()
		return ParseForm(f)
	}
}

// YAML renders the submission in the format LoadFile reads.
func (s Submission) YAML() ([]byte, error) {
	return yaml.Marshal([]Pair(s))
}
