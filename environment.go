package mustache

import (
	"strings"
	"sync"

	"github.com/skyformat99/mustache/parser"
	"github.com/skyformat99/mustache/value"
)

// EscapeFunc transforms interpolated text before it reaches the output.
// The renderer decides whether a tag is escaped; the function decides how.
type EscapeFunc func(string) string

// LoaderFunc loads template source by name. It is consulted for templates
// and partials that are not already registered.
type LoaderFunc func(name string) (string, error)

// Environment holds the configuration and compiled templates.
type Environment struct {
	templates   map[string]*parser.Program
	templatesMu sync.RWMutex
	loader      LoaderFunc
	escapeFunc  EscapeFunc
	delims      parser.Delimiters
	fuel        uint64
}

// NewEnvironment creates a new environment with default settings: HTML
// escaping, standard {{ }} delimiters, no loader, no render budget.
func NewEnvironment() *Environment {
	return &Environment{
		templates:  make(map[string]*parser.Program),
		escapeFunc: EscapeHTML,
		delims:     parser.DefaultDelimiters(),
	}
}

// AddTemplate compiles and registers a template from source. Registered
// templates are also available as partials under their name.
func (e *Environment) AddTemplate(name, source string) error {
	prog, err := parser.ParseWithDelimiters(source, name, e.delims)
	if err != nil {
		return wrapSyntaxError(err)
	}

	e.templatesMu.Lock()
	e.templates[name] = prog
	e.templatesMu.Unlock()
	return nil
}

// GetTemplate retrieves a template by name, consulting the loader for
// unregistered names.
func (e *Environment) GetTemplate(name string) (*Template, error) {
	prog, err := e.program(name)
	if err != nil {
		return nil, err
	}
	return &Template{env: e, prog: prog}, nil
}

// TemplateFromString compiles a template from source without storing it.
func (e *Environment) TemplateFromString(source string) (*Template, error) {
	return e.TemplateFromNamedString("<string>", source)
}

// TemplateFromNamedString compiles a named template from source without
// storing it.
func (e *Environment) TemplateFromNamedString(name, source string) (*Template, error) {
	prog, err := parser.ParseWithDelimiters(source, name, e.delims)
	if err != nil {
		return nil, wrapSyntaxError(err)
	}
	return &Template{env: e, prog: prog}, nil
}

// SetLoader sets the template loader function.
func (e *Environment) SetLoader(loader LoaderFunc) {
	e.loader = loader
}

// SetEscapeFunc replaces the escape function applied to escaped
// interpolations. A nil function disables escaping entirely.
func (e *Environment) SetEscapeFunc(f EscapeFunc) {
	e.escapeFunc = f
}

// SetDelimiters sets the initial tag markers used when compiling
// templates. Templates may still switch markers inline.
func (e *Environment) SetDelimiters(open, close string) {
	e.delims = parser.Delimiters{Open: open, Close: close}
}

// SetFuel sets a per-render instruction budget. Zero disables the budget.
func (e *Environment) SetFuel(fuel uint64) {
	e.fuel = fuel
}

// program returns the compiled program for name, loading and caching it
// on demand.
func (e *Environment) program(name string) (*parser.Program, error) {
	e.templatesMu.RLock()
	prog, ok := e.templates[name]
	e.templatesMu.RUnlock()
	if ok {
		return prog, nil
	}

	if e.loader != nil {
		source, err := e.loader(name)
		if err != nil {
			return nil, NewError(ErrTemplateNotFound, name)
		}
		if err := e.AddTemplate(name, source); err != nil {
			return nil, err
		}
		e.templatesMu.RLock()
		prog = e.templates[name]
		e.templatesMu.RUnlock()
		return prog, nil
	}

	return nil, NewError(ErrTemplateNotFound, name)
}

// Template represents a compiled template bound to its environment.
type Template struct {
	env  *Environment
	prog *parser.Program
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.prog.Name
}

// Source returns the template source.
func (t *Template) Source() string {
	return t.prog.Source
}

// Render renders the template against a document built from any Go value
// via value.FromAny.
func (t *Template) Render(doc any) (string, error) {
	return t.RenderValue(value.FromAny(doc))
}

// RenderValue renders the template against a document Value. On error the
// returned string holds the output emitted before the failure.
func (t *Template) RenderValue(doc value.Value) (string, error) {
	state := newState(t.env, t.prog.Name)
	return state.render(t.prog, doc)
}

// EscapeHTML escapes a string for HTML output. This is the default escape
// function of a new Environment.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		case '/':
			b.WriteString("&#x2f;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
