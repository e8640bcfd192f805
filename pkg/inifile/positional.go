package inifile

import (
	"bytes"
	"regexp"
	"strconv"
)

// positionalMark starts the placeholder key given to each name[] line so
// that ini.v1 keeps every positional entry at its own position instead of
// grouping the shadows of name[] under the first one.
const positionalMark = "\x00"

var (
	positionalLine = regexp.MustCompile(`^(\s*[^;#\[\]=\s][^\[\]=]*)\[\]\s*=`)
	tripleQuote    = []byte(`"""`)
)

// numberPositional rewrites every name[] key to name[\x00<n>] with n
// counting up through the file. Lines inside a """ multi-line value are
// left alone.
func numberPositional(data []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(data))

	n := 0
	inMultiline := false
	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		if inMultiline {
			if bytes.Contains(line, tripleQuote) {
				inMultiline = false
			}
			out.Write(line)
			continue
		}

		if m := positionalLine.FindSubmatchIndex(line); m != nil {
			out.Write(line[:m[3]])
			out.WriteString("[" + positionalMark + strconv.Itoa(n) + "]")
			out.Write(line[m[3]+2:])
			n++
		} else {
			out.Write(line)
		}
		inMultiline = opensMultiline(line)
	}
	return out.Bytes()
}

// opensMultiline reports whether a key line starts a """ value that does
// not close on the same line.
func opensMultiline(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || bytes.IndexByte([]byte(";#["), trimmed[0]) >= 0 {
		return false
	}
	i := bytes.IndexByte(trimmed, '=')
	if i < 0 {
		return false
	}
	value := bytes.TrimSpace(trimmed[i+1:])
	return bytes.HasPrefix(value, tripleQuote) && !bytes.Contains(value[len(tripleQuote):], tripleQuote)
}
