//go:build !gosseract

// Package gosseract runs Tesseract in process through libtesseract.
//
// This is the stub used when the "gosseract" build tag is not set. New
// returns ErrNotEnabled. To enable the engine, rebuild with:
//
//	go build -tags gosseract ./...
//
// This requires the Tesseract and Leptonica development packages.
package gosseract

import (
	"context"

	"github.com/gardar/ocrtranslate/pkg/imageio"
	"github.com/gardar/ocrtranslate/pkg/ocr"
)

// Enabled reports whether the engine was compiled in.
const Enabled = false

// Engine is unavailable in this build.
type Engine struct{}

var _ ocr.Engine = (*Engine)(nil)

// New always returns ErrNotEnabled.
func New(cfg Config) (*Engine, error) {
	return nil, ErrNotEnabled
}

// Name implements ocr.Engine.
func (e *Engine) Name() string { return "gosseract" }

// Recognize always returns ErrNotEnabled.
func (e *Engine) Recognize(ctx context.Context, img imageio.Image, lang string) (*ocr.Recognition, error) {
	return nil, ErrNotEnabled
}
