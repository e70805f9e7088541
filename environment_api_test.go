package mustache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTemplateNotFound(t *testing.T) {
	env := NewEnvironment()

	_, err := env.GetTemplate("missing")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrTemplateNotFound, e.Kind)
}

func TestAddTemplateSyntaxError(t *testing.T) {
	env := NewEnvironment()

	err := env.AddTemplate("bad.mustache", "line\n{{#open}}")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrSyntax, e.Kind)
	assert.Equal(t, "bad.mustache", e.Name)
	assert.Equal(t, 2, e.Line)
}

func TestLoader(t *testing.T) {
	loads := 0
	env := NewEnvironment()
	env.SetLoader(func(name string) (string, error) {
		if name != "lazy" {
			return "", fmt.Errorf("unknown template %q", name)
		}
		loads++
		return "loaded {{name}}", nil
	})

	tmpl, err := env.GetTemplate("lazy")
	require.NoError(t, err)

	result, err := tmpl.Render(map[string]any{"name": "once"})
	require.NoError(t, err)
	assert.Equal(t, "loaded once", result)

	// Loaded templates are cached.
	_, err = env.GetTemplate("lazy")
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	_, err = env.GetTemplate("other")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrTemplateNotFound, e.Kind)
}

func TestSetEscapeFunc(t *testing.T) {
	env := NewEnvironment()
	env.SetEscapeFunc(func(s string) string { return "[" + s + "]" })

	tmpl, err := env.TemplateFromString("{{v}} and {{{v}}}")
	require.NoError(t, err)

	result, err := tmpl.Render(map[string]any{"v": "x"})
	require.NoError(t, err)
	assert.Equal(t, "[x] and x", result)

	// nil disables escaping entirely.
	env.SetEscapeFunc(nil)
	result, err = tmpl.Render(map[string]any{"v": "<x>"})
	require.NoError(t, err)
	assert.Equal(t, "<x> and <x>", result)
}

func TestSetDelimiters(t *testing.T) {
	env := NewEnvironment()
	env.SetDelimiters("<%", "%>")

	tmpl, err := env.TemplateFromString("<%name%> {{name}}")
	require.NoError(t, err)

	result, err := tmpl.Render(map[string]any{"name": "v"})
	require.NoError(t, err)
	assert.Equal(t, "v {{name}}", result)
}

func TestTemplateAccessors(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.AddTemplate("greeting", "Hello {{name}}!"))

	tmpl, err := env.GetTemplate("greeting")
	require.NoError(t, err)
	assert.Equal(t, "greeting", tmpl.Name())
	assert.Equal(t, "Hello {{name}}!", tmpl.Source())
}

func TestFuelTracker(t *testing.T) {
	tracker := newFuelTracker(3)
	require.NoError(t, tracker.consume(2))
	assert.Equal(t, uint64(1), tracker.remainingFuel())

	err := tracker.consume(1)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrOutOfFuel, e.Kind)
	assert.Equal(t, uint64(0), tracker.remainingFuel())
}
