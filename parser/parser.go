// Package parser compiles mustache template source into a flat instruction
// sequence executed by the rendering engine.
//
// Supported syntax:
//
//	{{name}}         interpolation, escaped
//	{{{name}}}       interpolation, unescaped (default delimiters only)
//	{{& name}}       interpolation, unescaped
//	{{#name}}...{{/name}}   section
//	{{^name}}...{{/name}}   inverted section
//	{{! comment }}   comment
//	{{> name}}       partial
//	{{=<% %>=}}      delimiter change
//
// Section, comment, partial and delimiter tags standing alone on a line are
// removed together with the surrounding line whitespace and trailing
// newline, so block structure does not leak blank lines into the output.
package parser

import (
	"fmt"
	"strings"
)

// Delimiters configures the tag markers used while scanning.
type Delimiters struct {
	Open  string
	Close string
}

// DefaultDelimiters returns the standard mustache markers.
func DefaultDelimiters() Delimiters {
	return Delimiters{Open: "{{", Close: "}}"}
}

// SyntaxError describes a template compilation failure.
type SyntaxError struct {
	Message string
	Name    string // template name
	Line    int    // 1-based
}

func (e *SyntaxError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("syntax error: %s (at %s line %d)", e.Message, e.Name, e.Line)
	}
	return fmt.Sprintf("syntax error: %s (at line %d)", e.Message, e.Line)
}

// Parse compiles template source using the default delimiters.
func Parse(source, name string) (*Program, error) {
	return ParseWithDelimiters(source, name, DefaultDelimiters())
}

// ParseWithDelimiters compiles template source with custom initial tag
// markers. A {{=...=}} tag inside the template switches markers from that
// point on.
func ParseWithDelimiters(source, name string, delims Delimiters) (*Program, error) {
	if delims.Open == "" || delims.Close == "" {
		delims = DefaultDelimiters()
	}
	p := &scanner{
		src:    source,
		name:   name,
		delims: delims,
		line:   1,
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return &Program{Name: name, Source: source, Instructions: p.out}, nil
}

type openSection struct {
	name  string
	index int
	line  int
}

type scanner struct {
	src    string
	name   string
	delims Delimiters
	pos    int
	line   int
	out    []Instruction
	stack  []openSection
}

func (p *scanner) run() error {
	for p.pos < len(p.src) {
		idx := strings.Index(p.src[p.pos:], p.delims.Open)
		if idx < 0 {
			p.emitText(p.src[p.pos:])
			p.pos = len(p.src)
			break
		}

		text := p.src[p.pos : p.pos+idx]
		tagStart := p.pos + idx
		tagLine := p.line + strings.Count(text, "\n")

		kind, tagName, after, err := p.parseTag(tagStart, tagLine)
		if err != nil {
			return err
		}

		if standaloneKind(kind) && p.standaloneBefore(tagStart) {
			if end, ok := p.standaloneAfter(after); ok {
				text = trimLineIndent(text)
				after = end
			}
		}

		p.emitText(text)
		p.line = tagLine + strings.Count(p.src[tagStart:after], "\n")
		p.pos = after

		if err := p.emitTag(kind, tagName, tagLine); err != nil {
			return err
		}
	}

	if len(p.stack) > 0 {
		open := p.stack[len(p.stack)-1]
		return &SyntaxError{
			Message: fmt.Sprintf("unclosed section %q", open.name),
			Name:    p.name,
			Line:    open.line,
		}
	}
	return nil
}

type tagKind int

const (
	tagNone tagKind = iota // delimiter change, comment: no instruction
	tagVar
	tagUnescaped
	tagSectionOpen
	tagInverted
	tagSectionClose
	tagPartial
)

func standaloneKind(k tagKind) bool {
	switch k {
	case tagSectionOpen, tagInverted, tagSectionClose, tagPartial, tagNone:
		return true
	default:
		return false
	}
}

// parseTag scans one tag starting at the open delimiter and returns its
// kind, name and the position just past the close delimiter. Delimiter
// changes are applied as a side effect.
func (p *scanner) parseTag(start, line int) (tagKind, string, int, error) {
	inner := start + len(p.delims.Open)

	// Triple mustache is only recognized with the default markers.
	if p.delims.Open == "{{" && inner < len(p.src) && p.src[inner] == '{' {
		end := strings.Index(p.src[inner+1:], "}}}")
		if end < 0 {
			return 0, "", 0, &SyntaxError{Message: "unclosed tag", Name: p.name, Line: line}
		}
		name := strings.TrimSpace(p.src[inner+1 : inner+1+end])
		return tagUnescaped, name, inner + 1 + end + 3, nil
	}

	end := strings.Index(p.src[inner:], p.delims.Close)
	if end < 0 {
		return 0, "", 0, &SyntaxError{Message: "unclosed tag", Name: p.name, Line: line}
	}
	content := p.src[inner : inner+end]
	after := inner + end + len(p.delims.Close)

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return tagVar, "", after, nil
	}

	switch trimmed[0] {
	case '#':
		return tagSectionOpen, strings.TrimSpace(trimmed[1:]), after, nil
	case '^':
		return tagInverted, strings.TrimSpace(trimmed[1:]), after, nil
	case '/':
		return tagSectionClose, strings.TrimSpace(trimmed[1:]), after, nil
	case '!':
		return tagNone, "", after, nil
	case '>':
		return tagPartial, strings.TrimSpace(trimmed[1:]), after, nil
	case '&':
		return tagUnescaped, strings.TrimSpace(trimmed[1:]), after, nil
	case '=':
		if err := p.setDelimiters(trimmed, line); err != nil {
			return 0, "", 0, err
		}
		return tagNone, "", after, nil
	default:
		return tagVar, trimmed, after, nil
	}
}

func (p *scanner) setDelimiters(spec string, line int) error {
	if len(spec) < 2 || !strings.HasSuffix(spec, "=") {
		return &SyntaxError{Message: "malformed delimiter tag", Name: p.name, Line: line}
	}
	fields := strings.Fields(spec[1 : len(spec)-1])
	if len(fields) != 2 || strings.Contains(fields[0], "=") || strings.Contains(fields[1], "=") {
		return &SyntaxError{Message: "malformed delimiter tag", Name: p.name, Line: line}
	}
	p.delims = Delimiters{Open: fields[0], Close: fields[1]}
	return nil
}

func (p *scanner) emitTag(kind tagKind, name string, line int) error {
	switch kind {
	case tagNone:
		return nil
	case tagVar:
		p.out = append(p.out, Instruction{Op: OpArg, Name: name, Escape: true, Line: line})
	case tagUnescaped:
		p.out = append(p.out, Instruction{Op: OpArg, Name: name, Escape: false, Line: line})
	case tagSectionOpen:
		p.stack = append(p.stack, openSection{name: name, index: len(p.out), line: line})
		p.out = append(p.out, Instruction{Op: OpSectionOpen, Name: name, Line: line})
	case tagInverted:
		p.stack = append(p.stack, openSection{name: name, index: len(p.out), line: line})
		p.out = append(p.out, Instruction{Op: OpSectionOpen, Name: name, Inverted: true, Line: line})
	case tagSectionClose:
		if len(p.stack) == 0 {
			return &SyntaxError{
				Message: fmt.Sprintf("closing unopened section %q", name),
				Name:    p.name,
				Line:    line,
			}
		}
		open := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		if open.name != name {
			return &SyntaxError{
				Message: fmt.Sprintf("section close mismatch: expected %q, found %q", open.name, name),
				Name:    p.name,
				Line:    line,
			}
		}
		p.out[open.index].Jump = len(p.out)
		p.out = append(p.out, Instruction{Op: OpSectionClose, Name: name, Line: line})
	case tagPartial:
		p.out = append(p.out, Instruction{Op: OpPartial, Name: name, Line: line})
	}
	return nil
}

func (p *scanner) emitText(text string) {
	if text == "" {
		return
	}
	p.out = append(p.out, Instruction{Op: OpText, Text: text})
}

// standaloneBefore reports whether only spaces and tabs separate the tag
// from the start of its line.
func (p *scanner) standaloneBefore(tagStart int) bool {
	for i := tagStart - 1; i >= 0; i-- {
		switch p.src[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// standaloneAfter reports whether only spaces and tabs separate the tag
// from the end of its line, returning the position just past the newline.
func (p *scanner) standaloneAfter(after int) (int, bool) {
	i := after
	for i < len(p.src) && (p.src[i] == ' ' || p.src[i] == '\t') {
		i++
	}
	if i == len(p.src) {
		return i, true
	}
	if p.src[i] == '\n' {
		return i + 1, true
	}
	if p.src[i] == '\r' && i+1 < len(p.src) && p.src[i+1] == '\n' {
		return i + 2, true
	}
	return after, false
}

// trimLineIndent drops trailing spaces and tabs, the indentation of a
// removed standalone line.
func trimLineIndent(text string) string {
	return strings.TrimRight(text, " \t")
}
