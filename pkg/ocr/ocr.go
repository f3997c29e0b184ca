// Package ocr defines the OCR engine abstraction and the grouping of recognized
// word tokens into text lines.
//
// An Engine turns an image into Tokens, each carrying the (block, paragraph, line)
// position the engine assigned to it. GroupLines reassembles the tokens into lines
// in reading order. Concrete engines live in sub-packages (tesseract, gosseract)
// and in pkg/gdocai.
package ocr

import (
	"context"
	"fmt"

	"github.com/gardar/ocrtranslate/pkg/hocr"
	"github.com/gardar/ocrtranslate/pkg/imageio"
)

// PositionKey locates a token in the engine's layout hierarchy.
type PositionKey struct {
	Block     int
	Paragraph int
	Line      int
}

// Compare orders keys lexicographically by block, paragraph, then line.
// It returns -1, 0 or +1.
func (k PositionKey) Compare(o PositionKey) int {
	switch {
	case k.Block != o.Block:
		return sign(k.Block - o.Block)
	case k.Paragraph != o.Paragraph:
		return sign(k.Paragraph - o.Paragraph)
	default:
		return sign(k.Line - o.Line)
	}
}

// Less reports whether k sorts before o.
func (k PositionKey) Less(o PositionKey) bool {
	return k.Compare(o) < 0
}

func (k PositionKey) String() string {
	return fmt.Sprintf("%d.%d.%d", k.Block, k.Paragraph, k.Line)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Token is one recognized word.
type Token struct {
	Word       string
	Key        PositionKey
	BBox       hocr.BoundingBox
	Confidence float64 // 0-100
}

// Recognition is the result of running an engine on one image.
type Recognition struct {
	// Tokens in no guaranteed order.
	Tokens []Token
	// Width and Height of the recognized image in pixels.
	Width  int
	Height int
	// HOCR is the engine's own hOCR document, if it produces one.
	HOCR *hocr.HOCR
}

// Document returns the engine's hOCR document, or builds one from the tokens.
func (r *Recognition) Document() *hocr.HOCR {
	if r.HOCR != nil {
		return r.HOCR
	}
	words := make([]hocr.PositionedWord, 0, len(r.Tokens))
	for _, t := range r.Tokens {
		words = append(words, hocr.PositionedWord{
			Word: hocr.Word{
				Text:       t.Word,
				BBox:       t.BBox,
				Confidence: t.Confidence,
			},
			Block:     t.Key.Block,
			Paragraph: t.Key.Paragraph,
			Line:      t.Key.Line,
		})
	}
	return hocr.FromWords(words, float64(r.Width), float64(r.Height))
}

// Engine recognizes text in images.
type Engine interface {
	// Name identifies the engine in logs.
	Name() string
	// Recognize runs OCR on img. lang is an engine language code such as
	// "eng"; engines that detect the language themselves may ignore it.
	Recognize(ctx context.Context, img imageio.Image, lang string) (*Recognition, error)
}

// TokensFromHOCR flattens a parsed hOCR document into tokens.
func TokensFromHOCR(doc *hocr.HOCR) []Token {
	words := hocr.Words(doc)
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, Token{
			Word:       w.Text,
			Key:        PositionKey{Block: w.Block, Paragraph: w.Paragraph, Line: w.Line},
			BBox:       w.BBox,
			Confidence: w.Confidence,
		})
	}
	return tokens
}
