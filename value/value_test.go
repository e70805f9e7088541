package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAnyConversions(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind Kind
		text string
	}{
		{"nil", nil, KindNull, ""},
		{"bool", true, KindBool, "true"},
		{"int", 42, KindNumber, "42"},
		{"uint", uint8(7), KindNumber, "7"},
		{"whole float", 3.0, KindNumber, "3"},
		{"float", 1.5, KindNumber, "1.5"},
		{"string", "hello", KindString, "hello"},
		{"slice", []any{1, "a"}, KindSeq, `[1, "a"]`},
		{"map", map[string]any{"k": 1}, KindMap, `{"k": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FromAny(tt.in)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.String())
		})
	}
}

func TestFromAnyStruct(t *testing.T) {
	type user struct {
		Name   string `json:"name"`
		Age    int    `json:"age"`
		Secret string `json:"-"`
		Plain  bool
	}
	v := FromAny(user{Name: "Alice", Age: 30, Secret: "x", Plain: true})
	require.Equal(t, KindMap, v.Kind())

	name, ok := v.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name.String())

	_, ok = v.Get("Secret")
	assert.False(t, ok)
	_, ok = v.Get("-")
	assert.False(t, ok)

	plain, ok := v.Get("Plain")
	require.True(t, ok)
	assert.True(t, plain.IsTrue())
}

func TestFromAnyPointerAndNesting(t *testing.T) {
	s := "deref"
	v := FromAny(map[string]any{"p": &s, "n": (*string)(nil)})

	p, ok := v.Get("p")
	require.True(t, ok)
	assert.Equal(t, "deref", p.String())

	n, ok := v.Get("n")
	require.True(t, ok)
	assert.True(t, n.IsNull())
}

func TestTruthiness(t *testing.T) {
	assert.False(t, Null().IsTrue())
	assert.False(t, False().IsTrue())
	assert.True(t, True().IsTrue())
	// Everything besides null and false is truthy, including values whose
	// text form is empty and empty containers.
	assert.True(t, FromString("").IsTrue())
	assert.True(t, FromInt(0).IsTrue())
	assert.True(t, FromSlice(nil).IsTrue())
	assert.True(t, FromMap(map[string]Value{}).IsTrue())
}

func TestGetIsMapOnly(t *testing.T) {
	m := FromMap(map[string]Value{"k": FromInt(1), "": FromString("empty key")})

	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, "1", v.String())

	// The empty string is an ordinary key.
	v, ok = m.Get("")
	require.True(t, ok)
	assert.Equal(t, "empty key", v.String())

	_, ok = m.Get("absent")
	assert.False(t, ok)

	for _, nonMap := range []Value{Null(), True(), FromInt(1), FromString("s"), FromSlice([]Value{})} {
		_, ok := nonMap.Get("k")
		assert.False(t, ok, "Get on %s", nonMap.Kind())
	}
}

func TestSeqAccess(t *testing.T) {
	seq := FromSlice([]Value{FromString("a"), FromString("b")})
	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, "a", seq.Index(0).String())
	assert.Equal(t, "b", seq.Index(1).String())
	assert.True(t, seq.Index(2).IsNull())
	assert.True(t, seq.Index(-1).IsNull())

	assert.Equal(t, 0, FromString("not a seq").Len())
}

func TestStringRepresentation(t *testing.T) {
	// Null interpolates as nothing, unlike its debug form.
	assert.Equal(t, "", Null().String())
	assert.Equal(t, "null", Null().Repr())

	assert.Equal(t, `"quoted"`, FromString("quoted").Repr())
	assert.Equal(t, "1.5", FromFloat(1.5).String())
	assert.Equal(t, "2.0", FromFloat(2).String())
}

func TestEqual(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.True(t, FromInt(1).Equal(FromFloat(1)))
	assert.False(t, FromInt(1).Equal(FromString("1")))
	assert.True(t,
		FromSlice([]Value{FromInt(1)}).Equal(FromSlice([]Value{FromInt(1)})))
	assert.False(t,
		FromSlice([]Value{FromInt(1)}).Equal(FromSlice([]Value{FromInt(2)})))
	assert.True(t,
		FromMap(map[string]Value{"a": True()}).Equal(FromMap(map[string]Value{"a": True()})))
	assert.False(t,
		FromMap(map[string]Value{"a": True()}).Equal(FromMap(map[string]Value{"b": True()})))
}
