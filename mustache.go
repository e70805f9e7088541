// Package mustache implements a logic-less mustache template engine.
//
// Templates bind named placeholders to values in a hierarchical,
// dynamically-typed document of maps, arrays, strings, numbers, booleans
// and null. Rendering is driven by three pieces: a scope chain of section
// frames, a two-phase name resolver, and a section policy that decides
// repetition.
//
// # Quick Start
//
//	env := mustache.NewEnvironment()
//	env.AddTemplate("hello", "Hello {{name}}!")
//	tmpl, _ := env.GetTemplate("hello")
//	result, _ := tmpl.Render(map[string]any{"name": "World"})
//	fmt.Println(result) // Output: Hello World!
//
// # Template Syntax
//
//	{{name}}                 interpolation, HTML-escaped
//	{{{name}}} / {{& name}}  interpolation, unescaped
//	{{#users}}...{{/users}}  section: repeats per array element, once for
//	                         other truthy values, never for falsy ones
//	{{^users}}...{{/users}}  inverted section: renders when falsy/empty
//	{{! ignored }}           comment
//	{{> header}}             partial
//	{{=<% %>=}}              delimiter change
//
// # Name Resolution
//
// Plain names are looked up along the chain of enclosing sections,
// innermost first, so nested sections shadow outer ones. Dotted names
// like "a.b.c" resolve their first segment against the scope chain and
// then descend strictly into the found value: a missing nested field
// never falls back to an ancestor scope.
//
// # Documents
//
// Any Go value can serve as the document; it is converted with
// value.FromAny. The renderer treats the document as read-only, so one
// document may back concurrent renders.
//
// # Error Handling
//
// Lookup misses are not errors: a missing interpolation emits nothing and
// a missing section repeats zero times. Compilation problems and
// structural render failures are reported as *mustache.Error with a kind,
// template name and line.
package mustache

// Re-export commonly used types from the value subpackage.
import (
	"github.com/skyformat99/mustache/value"
)

// Value is a dynamically typed value in the document tree.
type Value = value.Value

// Kind describes the type of a Value.
type Kind = value.Kind

// Common value kinds
const (
	KindNull   = value.KindNull
	KindBool   = value.KindBool
	KindNumber = value.KindNumber
	KindString = value.KindString
	KindSeq    = value.KindSeq
	KindMap    = value.KindMap
)

// Value constructors
var (
	Null       = value.Null
	True       = value.True
	False      = value.False
	FromBool   = value.FromBool
	FromInt    = value.FromInt
	FromFloat  = value.FromFloat
	FromString = value.FromString
	FromSlice  = value.FromSlice
	FromMap    = value.FromMap
	FromAny    = value.FromAny
)
