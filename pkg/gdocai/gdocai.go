// Package gdocai provides an OCR engine backed by Google Document AI.
//
// The engine sends the image to a Document AI OCR processor and converts the
// response into an hOCR document. Document AI describes layout as flat lists of
// blocks, paragraphs, lines and tokens per page, tied together by the ranges of
// the document text each element covers. The conversion nests every element
// inside the parent whose text range contains it, which yields the same
// (block, paragraph, line) structure Tesseract reports.
//
// Key Features:
//
// - Process an image with a Document AI OCR processor
// - Convert the Document AI response to hOCR with pixel bounding boxes
// - Dump the raw response as JSON for debugging
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via a credentials file or GOOGLE_APPLICATION_CREDENTIALS
package gdocai

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"go.uber.org/zap"

	"github.com/gardar/ocrtranslate/pkg/imageio"
	"github.com/gardar/ocrtranslate/pkg/ocr"
)

// Engine is an ocr.Engine that calls Document AI.
type Engine struct {
	cfg     Config
	logger  *zap.Logger
	process func(ctx context.Context, content []byte, mimeType string) (*documentaipb.Document, error)
}

var _ ocr.Engine = (*Engine)(nil)

// New creates an engine after validating cfg.
func New(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{cfg: cfg, logger: logger}
	e.process = func(ctx context.Context, content []byte, mimeType string) (*documentaipb.Document, error) {
		return ProcessDocument(ctx, content, mimeType, &e.cfg)
	}
	return e, nil
}

// Name implements ocr.Engine.
func (e *Engine) Name() string { return "documentai" }

// Recognize implements ocr.Engine. Document AI detects the language itself,
// so lang is only used as the document language when none is detected.
func (e *Engine) Recognize(ctx context.Context, img imageio.Image, lang string) (*ocr.Recognition, error) {
	e.logger.Debug("sending image to Document AI",
		zap.String("processor", e.cfg.ProcessorID),
		zap.String("mime_type", img.MIMEType()))

	doc, err := e.process(ctx, img.Data, img.MIMEType())
	if err != nil {
		return nil, err
	}

	if e.cfg.DumpResponse != "" {
		if err := dumpResponse(doc, e.cfg.DumpResponse); err != nil {
			e.logger.Warn("failed to dump Document AI response", zap.Error(err))
		}
	}

	h := DocumentHOCR(doc)
	if h.Language == "unknown" && lang != "" {
		h.Language = lang
	}

	rec := &ocr.Recognition{
		Tokens: ocr.TokensFromHOCR(h),
		Width:  img.Width,
		Height: img.Height,
		HOCR:   h,
	}
	if rec.Width == 0 && len(h.Pages) > 0 {
		rec.Width = int(h.Pages[0].BBox.Width())
		rec.Height = int(h.Pages[0].BBox.Height())
	}
	return rec, nil
}

func dumpResponse(doc *documentaipb.Document, path string) error {
	data, err := ToJSON(doc)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return os.WriteFile(path, []byte(data), 0o644)
}
