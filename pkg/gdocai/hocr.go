package gdocai

import (
	"fmt"
	"slices"
	"strconv"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/ocrtranslate/pkg/hocr"
)

// DocumentHOCR converts a Document AI response to an hOCR document.
func DocumentHOCR(doc *documentaipb.Document) *hocr.HOCR {
	lang := documentLanguage(doc)
	if lang == "" {
		lang = "unknown"
	}

	result := &hocr.HOCR{
		Title:    "Document OCR",
		Language: lang,
		Metadata: map[string]string{
			"ocr-system":          "Document AI OCR",
			"ocr-number-of-pages": strconv.Itoa(len(doc.GetPages())),
			"ocr-capabilities":    "ocrp_lang ocr_page ocr_carea ocr_par ocr_line ocrx_word",
			"ocr-langs":           lang,
		},
	}
	for i, page := range doc.GetPages() {
		number := int(page.PageNumber)
		if number == 0 {
			number = i + 1
		}
		result.Pages = append(result.Pages, pageHOCR(page, doc.Text, number))
	}
	return result
}

// pageHOCR converts a single Document AI page. Paragraphs are placed in the
// first block containing them and lines in the first paragraph containing
// them; whatever no parent claims is attached to the page directly.
func pageHOCR(page *documentaipb.Document_Page, fullText string, pageNumber int) hocr.Page {
	ocrPage := hocr.Page{
		ID:         fmt.Sprintf("page_%d", pageNumber),
		PageNumber: pageNumber,
		Metadata:   make(map[string]string),
	}
	if len(page.DetectedLanguages) > 0 {
		ocrPage.Lang = page.DetectedLanguages[0].LanguageCode
	}
	if dim := page.Dimension; dim != nil {
		ocrPage.BBox = hocr.NewBoundingBox(0, 0, float64(dim.Width), float64(dim.Height))
	}

	assignedParagraphs := make(map[int]bool)
	assignedLines := make(map[int]bool)

	paragraph := func(pidx int, id string) hocr.Paragraph {
		para := page.Paragraphs[pidx]
		ocrParagraph := hocr.Paragraph{
			ID:       id,
			BBox:     layoutBBox(para.Layout, page.Dimension),
			Metadata: make(map[string]string),
		}
		for lidx, line := range page.Lines {
			if assignedLines[lidx] || !isElementInParent(line.Layout, para.Layout) {
				continue
			}
			assignedLines[lidx] = true
			ocrParagraph.Lines = append(ocrParagraph.Lines,
				lineHOCR(page, fullText, fmt.Sprintf("%s_%d", id, lidx), lidx))
		}
		return ocrParagraph
	}

	for aidx, block := range page.Blocks {
		ocrArea := hocr.Area{
			ID:       fmt.Sprintf("block_%d_%d", pageNumber, aidx),
			BBox:     layoutBBox(block.Layout, page.Dimension),
			Metadata: make(map[string]string),
		}
		for pidx, para := range page.Paragraphs {
			if assignedParagraphs[pidx] || !isElementInParent(para.Layout, block.Layout) {
				continue
			}
			assignedParagraphs[pidx] = true
			ocrArea.Paragraphs = append(ocrArea.Paragraphs,
				paragraph(pidx, fmt.Sprintf("par_%d_%d_%d", pageNumber, aidx, pidx)))
		}
		ocrPage.Areas = append(ocrPage.Areas, ocrArea)
	}

	for pidx := range page.Paragraphs {
		if assignedParagraphs[pidx] {
			continue
		}
		ocrPage.Paragraphs = append(ocrPage.Paragraphs,
			paragraph(pidx, fmt.Sprintf("par_%d_direct_%d", pageNumber, pidx)))
	}

	for lidx := range page.Lines {
		if assignedLines[lidx] {
			continue
		}
		ocrPage.Lines = append(ocrPage.Lines,
			lineHOCR(page, fullText, fmt.Sprintf("line_%d_direct_%d", pageNumber, lidx), lidx))
	}

	return ocrPage
}

// lineHOCR converts line lidx of page together with the tokens it contains.
func lineHOCR(page *documentaipb.Document_Page, fullText, id string, lidx int) hocr.Line {
	line := page.Lines[lidx]
	ocrLine := hocr.Line{
		ID:       id,
		BBox:     layoutBBox(line.Layout, page.Dimension),
		Metadata: make(map[string]string),
	}
	if len(line.DetectedLanguages) > 0 {
		ocrLine.Lang = line.DetectedLanguages[0].LanguageCode
	}

	for tidx, token := range page.Tokens {
		if !isElementInParent(token.Layout, line.Layout) {
			continue
		}
		word := hocr.Word{
			ID:       fmt.Sprintf("%s_word_%d", id, tidx),
			Text:     tokenText(token, fullText),
			BBox:     layoutBBox(token.Layout, page.Dimension),
			Metadata: make(map[string]string),
		}
		if token.Layout != nil {
			word.Confidence = float64(token.Layout.Confidence * 100)
		}
		if len(token.DetectedLanguages) > 0 {
			word.Lang = token.DetectedLanguages[0].LanguageCode
		}
		ocrLine.Words = append(ocrLine.Words, word)
	}
	return ocrLine
}

// layoutBBox converts normalized vertices (0-1) to pixel coordinates. Absolute
// vertices are used when no normalized ones are present.
func layoutBBox(layout *documentaipb.Document_Page_Layout, dimension *documentaipb.Document_Page_Dimension) hocr.BoundingBox {
	if layout == nil || layout.BoundingPoly == nil {
		return hocr.BoundingBox{}
	}

	var xs, ys []float64
	if nv := layout.BoundingPoly.NormalizedVertices; len(nv) > 0 && dimension != nil {
		for _, v := range nv {
			xs = append(xs, float64(v.X*dimension.Width))
			ys = append(ys, float64(v.Y*dimension.Height))
		}
	} else {
		for _, v := range layout.BoundingPoly.Vertices {
			xs = append(xs, float64(v.X))
			ys = append(ys, float64(v.Y))
		}
	}
	if len(xs) == 0 {
		return hocr.BoundingBox{}
	}
	return hocr.NewBoundingBox(slices.Min(xs), slices.Min(ys), slices.Max(xs), slices.Max(ys))
}

// documentLanguage finds the most common language in the document
// by counting language occurrences across pages and tokens.
func documentLanguage(doc *documentaipb.Document) string {
	langCount := make(map[string]int)
	for _, page := range doc.GetPages() {
		for _, lang := range page.DetectedLanguages {
			langCount[lang.LanguageCode]++
		}
		for _, token := range page.Tokens {
			for _, lang := range token.DetectedLanguages {
				langCount[lang.LanguageCode]++
			}
		}
	}

	var mostCommon string
	var highest int
	for lang, count := range langCount {
		if count > highest || (count == highest && lang < mostCommon) {
			highest = count
			mostCommon = lang
		}
	}
	return mostCommon
}
