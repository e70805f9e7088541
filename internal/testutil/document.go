// Package testutil provides test helpers for building document trees.
package testutil

import (
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/skyformat99/mustache/value"
)

// Document decodes a YAML (or JSON) source string into a document Value.
// It fails the test on malformed input.
func Document(t *testing.T, src string) value.Value {
	t.Helper()
	var raw any
	if err := yaml.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("failed to decode test document: %v", err)
	}
	return value.FromAny(raw)
}
