package mustache

import (
	"strings"

	"github.com/skyformat99/mustache/value"
)

// Name resolution happens in two phases with deliberately different
// semantics:
//
//  1. The first segment of a dotted name (or the whole name if it has no
//     dot) is looked up along the scope chain, innermost frame first, so
//     names in nested sections shadow names in enclosing ones.
//  2. Any remaining segments descend strictly into the value found in
//     phase one. No further chain walking occurs: a missing nested field
//     must not accidentally resolve against an unrelated ancestor scope.
//
// Empty segments are literal keys, so "a." looks up the empty-string key
// inside "a", and "." looks up the empty-string key twice. There is no
// implicit-iterator special case.

// lookupChain walks the scope chain from f to the root, returning the
// first map context that contains key. Only map contexts participate;
// frames holding other kinds are stepped over.
func lookupChain(f *Frame, key string) (value.Value, bool) {
	for ; f != nil; f = f.parent {
		if v, ok := f.context.Get(key); ok {
			return v, true
		}
	}
	return value.Null(), false
}

// descend resolves a dotted path against a fixed local root. Every
// segment requires the current value to be a map containing that exact
// key; anything else is a miss.
func descend(root value.Value, path string) (value.Value, bool) {
	current := root
	for _, seg := range strings.Split(path, ".") {
		next, ok := current.Get(seg)
		if !ok {
			return value.Null(), false
		}
		current = next
	}
	return current, true
}

// resolve binds a possibly-dotted name against the scope chain rooted at
// f. The boolean is false when the name is not found anywhere.
func resolve(f *Frame, name string) (value.Value, bool) {
	head := name
	tail := ""
	dotted := false
	if i := strings.IndexByte(name, '.'); i >= 0 {
		head, tail = name[:i], name[i+1:]
		dotted = true
	}

	v, ok := lookupChain(f, head)
	if !ok {
		return value.Null(), false
	}
	if !dotted {
		return v, true
	}
	return descend(v, tail)
}
