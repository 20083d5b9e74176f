package slug_test

import (
	"testing"

	"cinehub/pkg/slug"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple title", input: "The Matrix", expected: "the-matrix"},
		{name: "punctuation stripped", input: "Kill Bill: Vol. 1", expected: "kill-bill-vol-1"},
		{name: "collapses whitespace", input: "  Pulp   Fiction  ", expected: "pulp-fiction"},
		{name: "already hyphenated", input: "sci-fi", expected: "sci-fi"},
		{name: "purely numeric", input: "1917", expected: "1917"},
		{name: "mixed case with digits", input: "Blade Runner 2049", expected: "blade-runner-2049"},
		{name: "only punctuation", input: "???", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.Make(tt.input))
		})
	}
}
