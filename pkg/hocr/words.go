package hocr

import "fmt"

// PositionedWord is a word together with the (block, paragraph, line)
// position it was found at.
type PositionedWord struct {
	Word
	Block     int
	Paragraph int
	Line      int
}

// Words flattens a document into positioned words in document order.
//
// Areas are blocks, numbered from 1 across all pages. Paragraphs are numbered
// from 1 within their block and lines from 1 within their paragraph. Content
// that skips a level is given the next free number at the level it skipped:
// lines directly under an area form one extra paragraph of that area, words
// directly under a paragraph form one extra line, and paragraphs or lines
// directly under a page are numbered as blocks of their own after the page's
// areas.
func Words(doc *HOCR) []PositionedWord {
	var out []PositionedWord
	block := 0

	for _, page := range doc.Pages {
		for _, area := range page.Areas {
			block++
			par := 0
			for _, p := range area.Paragraphs {
				par++
				out = appendParagraph(out, p, block, par)
			}
			if len(area.Lines) > 0 {
				par++
				out = appendLines(out, area.Lines, block, par)
			}
			if len(area.Words) > 0 {
				par++
				out = appendWords(out, area.Words, block, par, 1)
			}
		}

		for _, p := range page.Paragraphs {
			block++
			out = appendParagraph(out, p, block, 1)
		}

		if len(page.Lines) > 0 {
			block++
			out = appendLines(out, page.Lines, block, 1)
		}
	}
	return out
}

func appendParagraph(out []PositionedWord, p Paragraph, block, par int) []PositionedWord {
	out = appendLines(out, p.Lines, block, par)
	if len(p.Words) > 0 {
		out = appendWords(out, p.Words, block, par, len(p.Lines)+1)
	}
	return out
}

func appendLines(out []PositionedWord, lines []Line, block, par int) []PositionedWord {
	for i, l := range lines {
		out = appendWords(out, l.Words, block, par, i+1)
	}
	return out
}

func appendWords(out []PositionedWord, words []Word, block, par, line int) []PositionedWord {
	for _, w := range words {
		out = append(out, PositionedWord{Word: w, Block: block, Paragraph: par, Line: line})
	}
	return out
}

// FromWords builds a single-page document from positioned words. Areas,
// paragraphs and lines are created in order of first appearance and their
// bounding boxes enclose their words. width and height give the page box.
func FromWords(words []PositionedWord, width, height float64) *HOCR {
	page := Page{
		ID:         "page_1",
		PageNumber: 1,
		BBox:       NewBoundingBox(0, 0, width, height),
		Metadata:   make(map[string]string),
	}

	type parKey struct{ block, par int }
	type lineKey struct{ block, par, line int }
	areaIdx := make(map[int]int)
	parIdx := make(map[parKey]int)
	lineIdx := make(map[lineKey]int)

	for i, w := range words {
		ai, ok := areaIdx[w.Block]
		if !ok {
			ai = len(page.Areas)
			areaIdx[w.Block] = ai
			page.Areas = append(page.Areas, Area{
				ID:       fmt.Sprintf("block_1_%d", ai+1),
				Metadata: make(map[string]string),
			})
		}
		area := &page.Areas[ai]

		pk := parKey{w.Block, w.Paragraph}
		pi, ok := parIdx[pk]
		if !ok {
			pi = len(area.Paragraphs)
			parIdx[pk] = pi
			area.Paragraphs = append(area.Paragraphs, Paragraph{
				ID:       fmt.Sprintf("par_1_%d", len(parIdx)),
				Metadata: make(map[string]string),
			})
		}
		par := &area.Paragraphs[pi]

		lk := lineKey{w.Block, w.Paragraph, w.Line}
		li, ok := lineIdx[lk]
		if !ok {
			li = len(par.Lines)
			lineIdx[lk] = li
			par.Lines = append(par.Lines, Line{
				ID:       fmt.Sprintf("line_1_%d", len(lineIdx)),
				Metadata: make(map[string]string),
			})
		}
		line := &par.Lines[li]

		word := w.Word
		if word.ID == "" {
			word.ID = fmt.Sprintf("word_1_%d", i+1)
		}
		if word.Metadata == nil {
			word.Metadata = make(map[string]string)
		}
		line.Words = append(line.Words, word)

		line.BBox = line.BBox.Union(word.BBox)
		par.BBox = par.BBox.Union(word.BBox)
		area.BBox = area.BBox.Union(word.BBox)
	}

	return &HOCR{
		Title:    "Document OCR",
		Language: "unknown",
		Metadata: map[string]string{
			"ocr-system":          "ocrtranslate",
			"ocr-number-of-pages": "1",
			"ocr-capabilities":    "ocr_page ocr_carea ocr_par ocr_line ocrx_word",
		},
		Pages: []Page{page},
	}
}
