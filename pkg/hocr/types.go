package hocr

// HOCR represents an entire hOCR document
type HOCR struct {
	Title       string            // Document title
	Description string            // Document description
	Language    string            // Document language
	Metadata    map[string]string // ocr-system, ocr-capabilities, ocr-langs, ...
	Pages       []Page            // Pages in the document
}

// Page is one page of recognized text ('ocr_page')
type Page struct {
	ID         string
	Title      string // Original title attribute
	PageNumber int
	ImageName  string
	Lang       string
	BBox       BoundingBox
	Areas      []Area      // Content areas (Tesseract blocks)
	Paragraphs []Paragraph // Paragraphs directly under the page
	Lines      []Line      // Lines directly under the page
	Metadata   map[string]string
}

// Class returns the hOCR class of a page.
func (Page) Class() string { return "ocr_page" }

// Area is a content area ('ocr_carea'), which Tesseract emits once per block
type Area struct {
	ID         string
	Lang       string
	BBox       BoundingBox
	Paragraphs []Paragraph
	Lines      []Line // Lines directly under the area
	Words      []Word // Words directly under the area
	Metadata   map[string]string
}

// Class returns the hOCR class of an area.
func (Area) Class() string { return "ocr_carea" }

// Paragraph is a paragraph inside an area or directly on a page ('ocr_par')
type Paragraph struct {
	ID       string
	Lang     string
	BBox     BoundingBox
	Lines    []Line
	Words    []Word // Words directly under the paragraph
	Metadata map[string]string
}

// Class returns the hOCR class of a paragraph.
func (Paragraph) Class() string { return "ocr_par" }

// Line is a line of text ('ocr_line')
type Line struct {
	ID       string
	Lang     string
	BBox     BoundingBox
	Baseline string
	Words    []Word
	Metadata map[string]string
}

// Class returns the hOCR class of a line.
func (Line) Class() string { return "ocr_line" }

// Word is a recognized word with its bounding box ('ocrx_word')
type Word struct {
	ID         string
	Text       string
	BBox       BoundingBox
	Confidence float64 // 0-100, from x_wconf
	Lang       string
	Metadata   map[string]string
}

// Class returns the hOCR class of a word.
func (Word) Class() string { return "ocrx_word" }

// BoundingBox is a rectangle in image pixel coordinates, origin top-left.
type BoundingBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// NewBoundingBox creates a bounding box from the x1 y1 x2 y2 values of an
// hOCR 'bbox' property.
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// IsEmpty reports whether the box has no area.
func (b BoundingBox) IsEmpty() bool { return b.X2 <= b.X1 || b.Y2 <= b.Y1 }

// Union returns the smallest box containing both b and o. An empty box is
// treated as absent.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return BoundingBox{
		X1: min(b.X1, o.X1),
		Y1: min(b.Y1, o.Y1),
		X2: max(b.X2, o.X2),
		Y2: max(b.Y2, o.Y2),
	}
}
