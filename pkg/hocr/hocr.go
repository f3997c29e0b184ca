// Package hocr parses, builds and renders hOCR, the HTML-based format
// Tesseract and other OCR engines use to describe recognized text layout.
//
// The object model follows the hOCR hierarchy:
// Document → Pages → Areas (ocr_carea) → Paragraphs (ocr_par) → Lines (ocr_line) → Words (ocrx_word).
//
// Besides parsing (ParseHOCR) and rendering (GenerateHOCRDocument), the
// package flattens a document into position-keyed words (Words) and builds a
// document back from such words (FromWords). The position key of a word is
// its (area, paragraph, line) index triple, numbered from 1 the way
// Tesseract numbers block_num, par_num and line_num in its TSV output.
package hocr
