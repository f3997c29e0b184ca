// Package bitext holds bilingual records and writes them out.
//
// The text format pairs every original paragraph with its translation,
// followed by a blank line:
//
//	original
//	translated
//
// The JSON format carries the language pair and a status per record telling
// whether the translation succeeded or the original text was kept.
package bitext

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Status records how the translated side of a record was produced.
type Status string

const (
	// StatusTranslated means the translator returned the text.
	StatusTranslated Status = "translated"
	// StatusFallback means translation failed and the original was kept.
	StatusFallback Status = "fallback"
)

// Record is one paragraph and its translation.
type Record struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Status     Status `json:"status"`
}

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text or json)", s)
}

// Document is the JSON form of a run's output.
type Document struct {
	Source  string   `json:"source"`
	Target  string   `json:"target"`
	Records []Record `json:"records"`
}

// Encoder writes records in one format.
type Encoder interface {
	Encode(w io.Writer, doc Document) error
}

// NewEncoder returns the encoder for f.
func NewEncoder(f Format) (Encoder, error) {
	switch f {
	case FormatText, "":
		return TextEncoder{}, nil
	case FormatJSON:
		return JSONEncoder{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", f)
}

// TextEncoder writes "original\ntranslated\n\n" per record and nothing else.
// Line breaks inside either side are written as spaces so that every record
// stays two lines long.
type TextEncoder struct{}

// Encode implements Encoder.
func (TextEncoder) Encode(w io.Writer, doc Document) error {
	for _, r := range doc.Records {
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", singleLine(r.Original), singleLine(r.Translated)); err != nil {
			return err
		}
	}
	return nil
}

// singleLine replaces line breaks with spaces. Other whitespace is kept.
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " ")
}

// JSONEncoder writes the document as indented JSON.
type JSONEncoder struct{}

// Encode implements Encoder.
func (JSONEncoder) Encode(w io.Writer, doc Document) error {
	if doc.Records == nil {
		doc.Records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Fallbacks counts the records that kept their original text.
func Fallbacks(records []Record) int {
	n := 0
	for _, r := range records {
		if r.Status == StatusFallback {
			n++
		}
	}
	return n
}
