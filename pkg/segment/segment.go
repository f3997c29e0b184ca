// Package segment rebuilds paragraphs from OCR lines.
//
// OCR line breaks follow the layout of the page, not sentence or paragraph
// boundaries. The Segmenter approximates paragraph boundaries with two cheap
// signals: terminal punctuation and line length. It is a heuristic, not a
// guarantee; short lines such as titles and captions end up as paragraphs of
// their own, and an unpunctuated run of long lines ends up as one paragraph.
package segment

import (
	"strings"
	"unicode/utf8"
)

// Config holds the paragraph-closing heuristics.
type Config struct {
	// MinWords is the word count below which a line closes the current
	// paragraph on its own (titles, captions, headings).
	// Default: 5
	MinWords int

	// Terminators is the set of characters that close a paragraph when a line
	// ends with one of them.
	// Default: ".?!:"
	Terminators string
}

// DefaultConfig returns the default segmentation heuristics.
func DefaultConfig() Config {
	return Config{
		MinWords:    5,
		Terminators: ".?!:",
	}
}

// Segmenter groups normalized lines into paragraphs.
type Segmenter struct {
	config Config
}

// NewSegmenter creates a segmenter with the default configuration.
func NewSegmenter() *Segmenter {
	return &Segmenter{config: DefaultConfig()}
}

// NewSegmenterWithConfig creates a segmenter with a custom configuration.
func NewSegmenterWithConfig(config Config) *Segmenter {
	return &Segmenter{config: config}
}

// Config returns the configuration in use.
func (s *Segmenter) Config() Config {
	return s.config
}

// Segment groups lines, already normalized and in reading order, into
// paragraphs. Blank lines are skipped. Lines are never reordered and every
// word of the input appears exactly once in the output.
func (s *Segmenter) Segment(lines []string) []string {
	var paragraphs []string
	var current strings.Builder

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(line)

		if s.closes(line) {
			paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	if current.Len() > 0 {
		paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
	}

	return paragraphs
}

// closes reports whether line ends the paragraph it was appended to.
func (s *Segmenter) closes(line string) bool {
	if last, size := utf8.DecodeLastRuneInString(line); size > 0 && strings.ContainsRune(s.config.Terminators, last) {
		return true
	}
	return len(strings.Fields(line)) < s.config.MinWords
}

// Segment groups lines into paragraphs using DefaultConfig.
func Segment(lines []string) []string {
	return NewSegmenter().Segment(lines)
}
