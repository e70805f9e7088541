package mustache

import (
	"fmt"

	"github.com/skyformat99/mustache/value"
)

// sectionTest decides how many times a section body repeats.
//
// Unresolved names, null and false yield 0. Sequences yield their length,
// which is the only way a present value contributes 0. Everything else
// yields 1. The callable flag is accepted for dialects with lambda
// sections and ignored: a callable value degrades to ordinary truthy
// behavior.
func sectionTest(f *Frame, name string, callable bool) int {
	v, ok := resolve(f, name)
	if !ok || !v.IsTrue() {
		return 0
	}
	if v.Kind() == value.KindSeq {
		return v.Len()
	}
	return 1
}

// sectionEnter resolves the child context for repetition index of a
// section. For sequences that is the element at index; any other value is
// its own child context, so scalars and maps repeat once without
// indexing.
//
// The name is resolved again, independently of sectionTest. Resolution is
// pure, so a miss here after a positive test is an invariant violation
// and surfaces as a structural error.
func sectionEnter(f *Frame, name string, index int) (value.Value, error) {
	v, ok := resolve(f, name)
	if !ok {
		return value.Null(), NewError(ErrStructure,
			fmt.Sprintf("section %q vanished between test and entry (depth %d)", name, f.depth()))
	}
	if v.Kind() == value.KindSeq {
		return v.Index(index), nil
	}
	return v, nil
}
