package mustache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyformat99/mustache/internal/testutil"
	"github.com/skyformat99/mustache/value"
)

// chain builds a scope chain from the given contexts, outermost first,
// and returns the innermost frame.
func chain(contexts ...value.Value) *Frame {
	var f *Frame
	for _, ctx := range contexts {
		f = newFrame(f, ctx)
	}
	return f
}

func TestLookupChainShadowing(t *testing.T) {
	outer := testutil.Document(t, `{x: outer, y: only-outer}`)
	inner := testutil.Document(t, `{x: inner}`)
	f := chain(outer, inner)

	v, ok := lookupChain(f, "x")
	require.True(t, ok)
	assert.Equal(t, "inner", v.String(), "nearest enclosing scope wins")

	v, ok = lookupChain(f, "y")
	require.True(t, ok)
	assert.Equal(t, "only-outer", v.String())

	_, ok = lookupChain(f, "z")
	assert.False(t, ok)
}

func TestLookupChainSkipsNonMapFrames(t *testing.T) {
	root := testutil.Document(t, `{x: root}`)
	f := chain(root, value.FromString("scalar context"), value.FromSlice(nil))

	v, ok := lookupChain(f, "x")
	require.True(t, ok)
	assert.Equal(t, "root", v.String())
}

func TestDescend(t *testing.T) {
	root := testutil.Document(t, `{b: {c: found}}`)

	v, ok := descend(root, "b.c")
	require.True(t, ok)
	assert.Equal(t, "found", v.String())

	_, ok = descend(root, "b.missing")
	assert.False(t, ok)

	// Mid-path non-map is a miss, not an error.
	_, ok = descend(testutil.Document(t, `{b: scalar}`), "b.c")
	assert.False(t, ok)

	_, ok = descend(value.FromString("not a map"), "b")
	assert.False(t, ok)
}

func TestResolvePlainName(t *testing.T) {
	f := chain(testutil.Document(t, `{count: 3}`))

	v, ok := resolve(f, "count")
	require.True(t, ok)
	assert.Equal(t, "3", v.String())

	_, ok = resolve(f, "missing")
	assert.False(t, ok)
}

func TestResolveDottedHeadUsesScopeChain(t *testing.T) {
	// The first segment resolves lexically: "nested" lives in an ancestor
	// frame, not the innermost one.
	root := testutil.Document(t, `{nested: {item: dot notation success}}`)
	f := chain(root, testutil.Document(t, `{other: 1}`))

	v, ok := resolve(f, "nested.item")
	require.True(t, ok)
	assert.Equal(t, "dot notation success", v.String())
}

func TestResolveDottedTailNeverFallsBack(t *testing.T) {
	// Once the head is located, descent is absolute: a missing nested
	// field must not resolve against an unrelated ancestor scope.
	root := testutil.Document(t, `{b: ancestor, a: {}}`)
	f := chain(root)

	_, ok := resolve(f, "a.b")
	assert.False(t, ok)

	// Same when the head resolves to a non-map.
	f = chain(testutil.Document(t, `{b: ancestor, a: scalar}`))
	_, ok = resolve(f, "a.b")
	assert.False(t, ok)
}

func TestResolveEmptySegmentsAreLiteralKeys(t *testing.T) {
	doc := value.FromMap(map[string]value.Value{
		"a": value.FromMap(map[string]value.Value{
			"": value.FromString("trailing dot"),
		}),
		"": value.FromMap(map[string]value.Value{
			"x": value.FromString("empty head"),
			"":  value.FromString("double empty"),
		}),
	})
	f := chain(doc)

	v, ok := resolve(f, "a.")
	require.True(t, ok)
	assert.Equal(t, "trailing dot", v.String())

	v, ok = resolve(f, ".x")
	require.True(t, ok)
	assert.Equal(t, "empty head", v.String())

	// A lone dot is the empty key twice, not an implicit iterator.
	v, ok = resolve(f, ".")
	require.True(t, ok)
	assert.Equal(t, "double empty", v.String())
}

func TestResolveDeepPath(t *testing.T) {
	f := chain(testutil.Document(t, `{a: {b: {c: {d: deep}}}}`))

	v, ok := resolve(f, "a.b.c.d")
	require.True(t, ok)
	assert.Equal(t, "deep", v.String())

	_, ok = resolve(f, "a.b.x.d")
	assert.False(t, ok)
}
