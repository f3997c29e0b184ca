package hocr

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// lineClasses are the hOCR classes Tesseract uses for text lines. Headers,
// captions and floating text are lines with a typographic hint attached.
var lineClasses = []string{"ocr_line", "ocr_header", "ocr_caption", "ocr_textfloat"}

func withLines(classes ...string) []string {
	return append(classes, lineClasses...)
}

var charsetPattern = regexp.MustCompile(`(?i)charset\s*=\s*["']?([a-z0-9_\-]+)`)

// ParseHOCR converts raw hOCR data into a structured HOCR object.
func ParseHOCR(data []byte) (HOCR, error) {
	result := HOCR{Metadata: make(map[string]string)}

	decoded, err := decodeCharset(data)
	if err != nil {
		return result, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR HTML: %w", err)
	}

	extractDocumentMeta(&result, doc)

	for _, n := range descendantsWithClass(doc, "ocr_page") {
		result.Pages = append(result.Pages, processPage(n))
	}

	if len(result.Pages) == 0 {
		return result, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return result, nil
}

// decodeCharset converts the document to UTF-8 when its meta tag declares a
// single-byte encoding.
func decodeCharset(data []byte) ([]byte, error) {
	m := charsetPattern.FindSubmatch(data)
	if m == nil {
		return data, nil
	}

	var enc encoding.Encoding
	switch strings.ToLower(string(m[1])) {
	case "utf-8", "utf8":
		return data, nil
	case "iso-8859-1", "latin1", "latin-1":
		enc = charmap.ISO8859_1
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported hOCR charset %q", m[1])
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", m[1], err)
	}
	return decoded, nil
}

// ParseTitle breaks down an hOCR title attribute into its properties.
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) == 0 {
			continue
		}
		result[items[0]] = items[1:]
	}
	return result
}

// ParseBoundingBoxFromTitle extracts the bbox property of a title string,
// or nil when it is missing or malformed.
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	bbox, ok := ParseTitle(title)["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var coords [4]float64
	for i := range coords {
		v, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		coords[i] = v
	}
	result := NewBoundingBox(coords[0], coords[1], coords[2], coords[3])
	return &result
}

// extractDocumentMeta reads the title, language and ocr-* meta tags.
func extractDocumentMeta(result *HOCR, doc *html.Node) {
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.Data {
		case "html":
			if lang := attr(n, "lang"); lang != "" {
				result.Language = lang
			} else if lang := attr(n, "xml:lang"); lang != "" {
				result.Language = lang
			}
		case "title":
			if n.FirstChild != nil {
				result.Title = strings.TrimSpace(n.FirstChild.Data)
			}
		case "meta":
			name, content := attr(n, "name"), attr(n, "content")
			if name == "" || content == "" {
				return false
			}
			switch {
			case strings.HasPrefix(name, "ocr-"):
				result.Metadata[name] = content
			case name == "description":
				result.Description = content
			case name == "dc.language":
				result.Language = content
			}
		case "body":
			return false
		}
		return true
	})
}

func processPage(n *html.Node) Page {
	page := Page{
		ID:       attr(n, "id"),
		Lang:     attr(n, "lang"),
		Title:    attr(n, "title"),
		Metadata: make(map[string]string),
	}

	props := ParseTitle(page.Title)
	if bbox := ParseBoundingBoxFromTitle(page.Title); bbox != nil {
		page.BBox = *bbox
	}
	if image, ok := props["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(strings.Join(image, " "), `"`)
	}
	if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
		if n, err := strconv.Atoi(ppageno[0]); err == nil {
			page.PageNumber = n + 1
		}
	}
	storeProps(page.Metadata, props, "bbox", "image", "ppageno")

	for _, c := range descendantsWithClass(n, withLines("ocr_carea", "ocr_par")...) {
		switch {
		case hasClass(c, "ocr_carea"):
			page.Areas = append(page.Areas, processArea(c))
		case hasClass(c, "ocr_par"):
			page.Paragraphs = append(page.Paragraphs, processParagraph(c))
		default:
			page.Lines = append(page.Lines, processLine(c))
		}
	}
	return page
}

func processArea(n *html.Node) Area {
	area := Area{
		ID:       attr(n, "id"),
		Lang:     attr(n, "lang"),
		Metadata: make(map[string]string),
	}
	area.BBox = titleProps(n, area.Metadata)

	for _, c := range descendantsWithClass(n, withLines("ocr_par", "ocrx_word")...) {
		switch {
		case hasClass(c, "ocr_par"):
			area.Paragraphs = append(area.Paragraphs, processParagraph(c))
		case hasClass(c, "ocrx_word"):
			area.Words = append(area.Words, processWord(c))
		default:
			area.Lines = append(area.Lines, processLine(c))
		}
	}
	return area
}

func processParagraph(n *html.Node) Paragraph {
	paragraph := Paragraph{
		ID:       attr(n, "id"),
		Lang:     attr(n, "lang"),
		Metadata: make(map[string]string),
	}
	paragraph.BBox = titleProps(n, paragraph.Metadata)

	for _, c := range descendantsWithClass(n, withLines("ocrx_word")...) {
		if hasClass(c, "ocrx_word") {
			paragraph.Words = append(paragraph.Words, processWord(c))
		} else {
			paragraph.Lines = append(paragraph.Lines, processLine(c))
		}
	}
	return paragraph
}

func processLine(n *html.Node) Line {
	line := Line{
		ID:       attr(n, "id"),
		Lang:     attr(n, "lang"),
		Metadata: make(map[string]string),
	}
	line.BBox = titleProps(n, line.Metadata)
	if baseline, ok := line.Metadata["baseline"]; ok {
		line.Baseline = baseline
		delete(line.Metadata, "baseline")
	}

	for _, c := range descendantsWithClass(n, "ocrx_word") {
		line.Words = append(line.Words, processWord(c))
	}
	return line
}

func processWord(n *html.Node) Word {
	word := Word{
		ID:       attr(n, "id"),
		Lang:     attr(n, "lang"),
		Text:     textContent(n),
		Metadata: make(map[string]string),
	}
	word.BBox = titleProps(n, word.Metadata)
	if conf, ok := word.Metadata["x_wconf"]; ok {
		word.Confidence, _ = strconv.ParseFloat(conf, 64)
		delete(word.Metadata, "x_wconf")
	}
	return word
}

// titleProps parses the title attribute of n, stores every property except
// bbox in meta and returns the bounding box.
func titleProps(n *html.Node, meta map[string]string) BoundingBox {
	title := attr(n, "title")
	storeProps(meta, ParseTitle(title), "bbox")
	if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
		return *bbox
	}
	return BoundingBox{}
}

func storeProps(meta map[string]string, props map[string][]string, skip ...string) {
	for k, v := range props {
		if !contains(skip, k) {
			meta[k] = strings.Join(v, " ")
		}
	}
}

// descendantsWithClass returns, in document order, the outermost descendants
// of n carrying any of the given classes. Matching stops descent, so nested
// elements belong to the matched ancestor.
func descendantsWithClass(n *html.Node, classes ...string) []*html.Node {
	var found []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(node *html.Node) bool {
			if node.Type != html.ElementNode {
				return true
			}
			for _, cl := range classes {
				if hasClass(node, cl) {
					found = append(found, node)
					return false
				}
			}
			return true
		})
	}
	return found
}

// walk visits n and its descendants depth-first; returning false from visit
// skips the node's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func hasClass(n *html.Node, class string) bool {
	return contains(strings.Fields(attr(n, "class")), class)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates the trimmed text of n and its descendants.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return strings.TrimSpace(sb.String())
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
