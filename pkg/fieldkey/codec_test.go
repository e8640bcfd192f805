package fieldkey

import (
	"errors"
	"testing"

	"github.com/grovetools/iniedit/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_WireFormat(t *testing.T) {
	tests := []struct {
		name     string
		id       Identity
		expected string
	}{
		{
			name:     "scalar text",
			id:       Identity{Section: "db", Property: "host", Kind: tree.KindText},
			expected: "ZGI#aG9zdA#text",
		},
		{
			name:     "scalar bool",
			id:       Identity{Section: "db", Property: "host", Kind: tree.KindBool},
			expected: "ZGI#aG9zdA#bool",
		},
		{
			name:     "list append",
			id:       Identity{Section: "db", Property: "ports", Kind: tree.KindText, List: true},
			expected: "ZGI#cG9ydHM#text[]",
		},
		{
			name:     "list keyed",
			id:       Identity{Section: "db", Property: "ports", Kind: tree.KindText, List: true, ArrayKey: "x"},
			expected: "ZGI#cG9ydHM#text[eA]",
		},
		{
			name:     "empty components",
			id:       Identity{Kind: tree.KindText},
			expected: "##text",
		},
		{
			name:     "delimiter in section",
			id:       Identity{Section: "a#b", Property: "x", Kind: tree.KindText},
			expected: "YSNi#eA#text",
		},
		{
			name:     "scalar ignores array key",
			id:       Identity{Section: "db", Property: "host", Kind: tree.KindText, ArrayKey: "x"},
			expected: "ZGI#aG9zdA#text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Encode(tt.id))
		})
	}
}

func TestFormCodec_Prefix(t *testing.T) {
	id := Identity{Section: "db", Property: "host", Kind: tree.KindText}
	name := Form.Encode(id)
	assert.Equal(t, "ini#ZGI#aG9zdA#text", name)

	decoded, err := Form.Decode(name)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)

	_, err = Form.Decode("ZGI#aG9zdA#text")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Form.Decode("save_ini_form")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRoundTrip(t *testing.T) {
	awkward := []string{
		"",
		" ",
		"#",
		"a#b#c",
		"[",
		"]",
		"[]",
		"key[x]",
		"a=b",
		"tab\there",
		"line\nbreak",
		"crlf\r\n",
		"quote\"d",
		"ümlaut",
		"日本語",
		"\x00\xff\xfe",
		"ini#",
		"==",
		"-_+/",
	}

	kinds := []tree.Kind{tree.KindText, tree.KindBool}

	for _, codec := range []Codec{Default, Form} {
		for _, section := range awkward {
			for _, property := range awkward {
				for _, kind := range kinds {
					ids := []Identity{
						{Section: section, Property: property, Kind: kind},
						{Section: section, Property: property, Kind: kind, List: true},
					}
					for _, key := range awkward {
						ids = append(ids, Identity{Section: section, Property: property, Kind: kind, List: true, ArrayKey: key})
					}
					for _, id := range ids {
						name := codec.Encode(id)
						got, err := codec.Decode(name)
						require.NoError(t, err, "decode %q", name)
						require.Equal(t, id, got, "round trip of %q", name)
					}
				}
			}
		}
	}
}

func TestDecode_DistinguishesListStates(t *testing.T) {
	scalar, err := Decode("ZGI#cG9ydHM#text")
	require.NoError(t, err)
	assert.False(t, scalar.List)
	assert.Empty(t, scalar.ArrayKey)

	appendEntry, err := Decode("ZGI#cG9ydHM#text[]")
	require.NoError(t, err)
	assert.True(t, appendEntry.List)
	assert.Empty(t, appendEntry.ArrayKey)

	keyed, err := Decode("ZGI#cG9ydHM#text[eA]")
	require.NoError(t, err)
	assert.True(t, keyed.List)
	assert.Equal(t, "x", keyed.ArrayKey)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing kind", "ZGI#aG9zdA"},
		{"too many parts", "ZGI#aG9zdA#text#x"},
		{"unknown kind", "ZGI#aG9zdA#int"},
		{"upper case kind", "ZGI#aG9zdA#TEXT"},
		{"invalid base64 char", "Z+I#aG9zdA#text"},
		{"padded base64", "ZGI=#aG9zdA#text"},
		{"non-canonical base64", "eB#aG9zdA#text"},
		{"line break in component", "ZG\nI#aG9zdA#text"},
		{"unterminated bracket", "ZGI#aG9zdA#text["},
		{"bracket not at end", "ZGI#aG9zdA#text[eA]x"},
		{"nested bracket", "ZGI#aG9zdA#text[[eA]]"},
		{"stray closing bracket", "ZGI#aG9zdA#text]"},
		{"bad array key", "ZGI#aG9zdA#text[!!]"},
		{"bracket inside section", "Z[GI#aG9zdA#text]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.input, decodeErr.Name)
			assert.NotEmpty(t, decodeErr.Reason)
		})
	}
}

func TestComponent(t *testing.T) {
	assert.Equal(t, "w6k", EncodeComponent("é"))

	s, err := DecodeComponent("w6k")
	require.NoError(t, err)
	assert.Equal(t, "é", s)

	_, err = DecodeComponent("w6k=")
	assert.Error(t, err)
}
