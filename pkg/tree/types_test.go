package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindText, "text"},
		{KindBool, "bool"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("bool")
	assert.True(t, ok)
	assert.Equal(t, KindBool, k)

	k, ok = ParseKind("text")
	assert.True(t, ok)
	assert.Equal(t, KindText, k)

	for _, bad := range []string{"", "Bool", "TEXT", "int", "bool "} {
		_, ok := ParseKind(bad)
		assert.False(t, ok, "ParseKind(%q) should fail", bad)
	}
}

func TestProperty_Kind(t *testing.T) {
	assert.Equal(t, KindBool, NewScalar("a", Bool(false)).Kind())
	assert.Equal(t, KindText, NewScalar("a", Text("x")).Kind())

	empty := NewList("l")
	assert.Equal(t, KindText, empty.Kind())

	bools := NewList("l")
	bools.Append(Entry{Value: Bool(true)})
	bools.Append(Entry{Value: Bool(false)})
	assert.Equal(t, KindBool, bools.Kind())

	mixed := NewList("l")
	mixed.Append(Entry{Value: Bool(true)})
	mixed.Append(Entry{Value: Text("x")})
	assert.Equal(t, KindText, mixed.Kind())

	mixed.Normalize()
	assert.Equal(t, Text("true"), mixed.Entries[0].Value)
	assert.Equal(t, Text("x"), mixed.Entries[1].Value)
}

func TestProperty_AppendKeyedReplaces(t *testing.T) {
	p := NewList("ports")
	p.Append(Entry{Value: Text("a")})
	p.Append(Entry{Key: "x", Keyed: true, Value: Text("b")})
	p.Append(Entry{Value: Text("c")})
	p.Append(Entry{Key: "x", Keyed: true, Value: Text("d")})

	require.Len(t, p.Entries, 3)
	assert.Equal(t, "d", p.Entries[1].Value.Text)
	assert.Equal(t, "c", p.Entries[2].Value.Text)
}

func TestTree_OrderAndLookup(t *testing.T) {
	tr := New()
	tr.Section("b").Set(NewScalar("k", Text("1")))
	tr.Section("a").Set(NewScalar("k", Text("2")))
	tr.Section("b").Set(NewScalar("j", Text("3")))

	sections := tr.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "b", sections[0].Name)
	assert.Equal(t, "a", sections[1].Name)

	names := []string{}
	for _, p := range sections[0].Properties() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"k", "j"}, names)

	assert.True(t, tr.Has("b", "j"))
	assert.False(t, tr.Has("a", "j"))
	assert.False(t, tr.Has("missing", "k"))

	_, ok := tr.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, tr.Len())
}

func TestTree_Equal(t *testing.T) {
	build := func(host string, ports ...string) *Tree {
		tr := New()
		db := tr.Section("db")
		db.Set(NewScalar("host", Text(host)))
		l := NewList("ports")
		for _, p := range ports {
			l.Append(Entry{Value: Text(p)})
		}
		db.Set(l)
		return tr
	}

	assert.True(t, build("h", "1", "2").Equal(build("h", "1", "2")))
	assert.False(t, build("h", "1", "2").Equal(build("x", "1", "2")))
	assert.False(t, build("h", "1", "2").Equal(build("h", "2", "1")))
	assert.False(t, build("h", "1").Equal(build("h", "1", "2")))

	typed := New()
	typed.Section("s").Set(NewScalar("on", Bool(true)))
	untyped := New()
	untyped.Section("s").Set(NewScalar("on", Text("true")))
	assert.False(t, typed.Equal(untyped))
}
