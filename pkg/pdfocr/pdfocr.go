// Package pdfocr builds searchable PDFs from a page image and its hOCR.
//
// The image fills the page and every recognized word is drawn on top of it as
// invisible text in its own optional content layer, scaled to the word's
// bounding box. The resulting PDF looks like the scan but its text can be
// searched, selected and copied. With Debug set, the text is drawn in red with
// its bounding box so the placement can be checked.
//
// Main Functions:
//
// - AssembleWithOCR: Creates a PDF from an image and its hOCR
package pdfocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gardar/ocrtranslate/pkg/hocr"
)

// AssembleWithOCR creates a one-page PDF from imageData with the first page
// of doc as its text layer.
func AssembleWithOCR(doc *hocr.HOCR, imageData []byte, config OCRConfig) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("HOCR struct is nil")
	}
	if len(doc.Pages) == 0 {
		return nil, errors.New("HOCR data contains no pages")
	}
	if len(imageData) == 0 {
		return nil, errors.New("no image data provided")
	}

	img, imageType, err := pdfImage(imageData)
	if err != nil {
		return nil, err
	}
	return createPDFFromImage(doc.Pages[0], img, imageType, config)
}

// pdfImage returns image data in a format fpdf can embed, converting other
// formats to PNG, and the image type name fpdf expects.
func pdfImage(data []byte) ([]byte, string, error) {
	imageType, err := detectImageType(data)
	if err != nil {
		return nil, "", err
	}
	switch imageType {
	case "JPEG", "PNG", "GIF":
		return data, imageType, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s image: %w", imageType, err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, decoded, imaging.PNG); err != nil {
		return nil, "", fmt.Errorf("failed to convert %s image to PNG: %w", imageType, err)
	}
	return buf.Bytes(), "PNG", nil
}
