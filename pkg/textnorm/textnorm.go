// Package textnorm cleans single lines of OCR output before they are
// grouped into paragraphs.
//
// Normalization runs a small table of regex corrections for known OCR
// artifacts, replaces stray vertical bars (Tesseract often reads a capital I
// or a lowercase l as '|'), and collapses whitespace. The result is a single
// trimmed line, possibly empty; callers decide what to do with empty lines.
package textnorm

import (
	"regexp"
	"strings"
)

// Correction rewrites the part of a line matched by Pattern with Replacement.
// Replacement follows regexp.Regexp.ReplaceAllString expansion rules.
type Correction struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// DefaultCorrections is the correction table applied by Normalize.
//
// A line that starts with "am " has almost always lost its leading capital I.
var DefaultCorrections = []Correction{
	{Pattern: regexp.MustCompile(`(?i)^am `), Replacement: "I am "},
}

// Normalizer applies a correction table followed by glyph and whitespace cleanup.
type Normalizer struct {
	corrections []Correction
}

// NewNormalizer creates a normalizer with the given corrections.
// With no arguments it uses DefaultCorrections.
func NewNormalizer(corrections ...Correction) *Normalizer {
	if len(corrections) == 0 {
		corrections = DefaultCorrections
	}
	return &Normalizer{corrections: corrections}
}

// Normalize cleans one raw line.
//
// The correction table runs on the raw line first and again on the cleaned
// line, so a correction hidden behind leading whitespace or a stray bar still
// fires and Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(raw string) string {
	text := n.correct(raw)
	text = clean(text)
	return n.correct(text)
}

func (n *Normalizer) correct(text string) string {
	for _, c := range n.corrections {
		text = c.Pattern.ReplaceAllString(text, c.Replacement)
	}
	return text
}

// clean replaces vertical bars with spaces, collapses whitespace runs and trims.
func clean(text string) string {
	text = strings.ReplaceAll(text, "|", " ")
	return strings.Join(strings.Fields(text), " ")
}

var defaultNormalizer = NewNormalizer()

// Normalize cleans one raw line using DefaultCorrections.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}
