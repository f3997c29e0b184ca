package pdfocr

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/gardar/ocrtranslate/pkg/hocr"
)

// createPDFFromImage builds a one-page PDF from an image and the OCR data of
// that page. The page is sized to the image in points, one point per pixel.
func createPDFFromImage(page hocr.Page, imageData []byte, imageType string, config OCRConfig) ([]byte, error) {
	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image config: %w", err)
	}
	w, h := float64(imgCfg.Width), float64(imgCfg.Height)

	// hOCR coordinates may come from a differently sized rendering of the image.
	hocrW, hocrH := page.BBox.X2, page.BBox.Y2
	if hocrW <= 0 || hocrH <= 0 {
		hocrW, hocrH = w, h
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCreator("ocrtranslate", true)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(imageData))
	pdf.ImageOptions("page", 0, 0, w, h, false, opts, 0, "")

	transform := func(x, y float64) (float64, float64) {
		return normalizeCoords(x, y, hocrW, hocrH, w, h)
	}

	stats := drawOCRLayer(pdf, page, config, transform)
	if stats.unencodable > 0 {
		logger.Warn("some words cannot be represented in the PDF text layer",
			zap.Int("words", stats.words),
			zap.Int("unencodable", stats.unencodable))
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}
