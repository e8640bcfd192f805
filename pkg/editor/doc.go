package editor

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// DocLineKind classifies a line of an INI-formatted documentation file.
type DocLineKind int

const (
	DocPlain DocLineKind = iota
	DocComment
	DocSection
	DocProperty
)

func (k DocLineKind) String() string {
	switch k {
	case DocComment:
		return "comment"
	case DocSection:
		return "section"
	case DocProperty:
		return "property"
	default:
		return "plain"
	}
}

// DocLine is one line of the documentation panel.
type DocLine struct {
	Kind DocLineKind
	Text string
}

var docPropertyRe = regexp.MustCompile(`^[a-z][a-z0-9_.]*`)

// Documentation reads the documentation file. An empty DocPath means there
// is no panel and returns nil. Only the ini format classifies lines; text
// and html lines are returned as plain.
func (e *Editor) Documentation() ([]DocLine, error) {
	if e.opts.DocPath == "" {
		return nil, nil
	}
	data, err := e.fs.ReadFile(e.opts.DocPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read documentation %s: %w", e.opts.DocPath, err)
	}

	var lines []DocLine
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		text := scanner.Text()
		kind := DocPlain
		if e.opts.DocFormat == DocINI {
			kind = classifyDocLine(text)
		}
		lines = append(lines, DocLine{Kind: kind, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documentation %s: %w", e.opts.DocPath, err)
	}
	return lines, nil
}

func classifyDocLine(line string) DocLineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, ";"):
		return DocComment
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		return DocSection
	case docPropertyRe.MatchString(line):
		return DocProperty
	default:
		return DocPlain
	}
}
