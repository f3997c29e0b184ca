package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

var hocrTemplate = template.Must(template.New("hocr.tmpl").Funcs(template.FuncMap{
	"bbox":      formatBBox,
	"pageTitle": pageTitle,
	"lineTitle": lineTitle,
	"wordTitle": wordTitle,
}).ParseFS(templateFS, "templates/hocr.tmpl"))

// GenerateHOCRDocument renders the document as hOCR HTML.
func GenerateHOCRDocument(doc *HOCR) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("hOCR document is nil")
	}

	var buf bytes.Buffer
	if err := hocrTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}
	return buf.String(), nil
}

func formatBBox(b BoundingBox) string {
	return fmt.Sprintf("bbox %d %d %d %d", round(b.X1), round(b.Y1), round(b.X2), round(b.Y2))
}

func pageTitle(p Page) string {
	parts := []string{formatBBox(p.BBox)}
	if p.ImageName != "" {
		parts = append([]string{fmt.Sprintf("image %q", p.ImageName)}, parts...)
	}
	if p.PageNumber > 0 {
		parts = append(parts, fmt.Sprintf("ppageno %d", p.PageNumber-1))
	}
	return strings.Join(parts, "; ")
}

func lineTitle(l Line) string {
	if l.Baseline == "" {
		return formatBBox(l.BBox)
	}
	return formatBBox(l.BBox) + "; baseline " + l.Baseline
}

func wordTitle(w Word) string {
	return fmt.Sprintf("%s; x_wconf %d", formatBBox(w.BBox), round(w.Confidence))
}

func round(f float64) int {
	return int(f + 0.5)
}
