package pdfocr

import (
	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/ocrtranslate/pkg/hocr"
)

type layerStats struct {
	words       int
	unencodable int
}

// drawOCRLayer draws the words of page onto a new layer.
func drawOCRLayer(
	pdf *fpdf.Fpdf,
	page hocr.Page,
	config OCRConfig,
	transform func(x, y float64) (float64, float64),
) layerStats {
	layer := pdf.AddLayer(config.LayerName, true)
	pdf.BeginLayer(layer)
	pdf.SetFont(config.Font.Name, config.Font.Style, config.Font.Size)

	if config.Debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
		pdf.SetDrawColor(255, 0, 0)
	} else {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	var stats layerStats
	doc := hocr.HOCR{Pages: []hocr.Page{page}}
	for _, w := range hocr.Words(&doc) {
		if w.Text == "" || w.BBox.IsEmpty() {
			continue
		}
		stats.words++
		if !drawWord(pdf, w.Word, transform, config) {
			stats.unencodable++
		}
	}

	pdf.EndLayer()
	return stats
}

// latin1 encodes to ISO-8859-1 for the core fonts, replacing characters
// outside it.
var latin1 = encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())

// drawWord renders a single word onto the PDF layer. It reports whether the
// word could be encoded without replacements.
func drawWord(pdf *fpdf.Fpdf, word hocr.Word, transform func(x, y float64) (float64, float64),
	config OCRConfig) bool {

	x, y := transform(word.BBox.X1, word.BBox.Y1)
	x2, y2 := transform(word.BBox.X2, word.BBox.Y2)
	wordWidth := x2 - x

	exact := true
	if _, err := charmap.ISO8859_1.NewEncoder().String(word.Text); err != nil {
		exact = false
	}
	text, err := latin1.String(word.Text)
	if err != nil {
		return false
	}

	strWidth := pdf.GetStringWidth(text)
	if strWidth > 0 {
		scale := wordWidth / strWidth
		pdf.SetFontSize(config.Font.Size * scale)
	}

	fontSize, _ := pdf.GetFontSize()
	baseline := y + fontSize*config.Font.AscentRatio

	pdf.Text(x, baseline, text)
	pdf.SetFontSize(config.Font.Size)

	if config.Debug {
		pdf.Rect(x, y, wordWidth, y2-y, "D")
	}
	return exact
}
