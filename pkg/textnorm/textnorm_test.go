package textnorm

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"dropped pronoun", "am home", "I am home"},
		{"dropped pronoun upper case", "AM here", "I am here"},
		{"dropped pronoun mixed case", "Am ready", "I am ready"},
		{"bar and whitespace", "a|b   c", "a b c"},
		{"leading and trailing space", "  hello world \t", "hello world"},
		{"tabs and newlines", "one\ttwo\nthree", "one two three"},
		{"non-breaking space", "one\u00a0two", "one two"},
		{"only bars", "|||", ""},
		{"empty", "", ""},
		{"am inside line untouched", "I am here", "I am here"},
		{"amber is not am", "amber light", "amber light"},
		{"am alone has no trailing space", "am", "am"},
		{"pronoun behind bar", "|am tired", "I am tired"},
		{"pronoun behind whitespace", "   am tired", "I am tired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"am home",
		"AM here",
		" am  |x",
		"|am|am|",
		"a|b   c",
		"am\tam am",
		"Hello, world.",
		" am there",
		"I am I am",
		"||| am",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNewNormalizerCustomCorrections(t *testing.T) {
	n := NewNormalizer(Correction{
		Pattern:     regexp.MustCompile(`\b0(\d)\b`),
		Replacement: "O$1",
	})

	assert.Equal(t, "O7 is here", n.Normalize("07 is here"))
	// The default pronoun rule is not part of a custom table.
	assert.Equal(t, "am home", n.Normalize("am home"))
}

func TestNewNormalizerDefaults(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, "I am home", n.Normalize("am   home"))
}
