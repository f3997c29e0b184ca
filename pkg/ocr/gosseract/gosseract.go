//go:build gosseract

// Package gosseract runs Tesseract in process through libtesseract.
//
// It is compiled only with the "gosseract" build tag, because it needs cgo
// and the Tesseract and Leptonica development headers:
//
//	go build -tags gosseract ./...
package gosseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"

	"github.com/gardar/ocrtranslate/pkg/hocr"
	"github.com/gardar/ocrtranslate/pkg/imageio"
	"github.com/gardar/ocrtranslate/pkg/ocr"
)

// Enabled reports whether the engine was compiled in.
const Enabled = true

// Engine is an ocr.Engine backed by the gosseract client.
type Engine struct {
	psm           int
	logger        *zap.Logger
	clientFactory func() *gosseract.Client
}

var _ ocr.Engine = (*Engine)(nil)

// New creates an engine.
func New(cfg Config) (*Engine, error) {
	e := &Engine{
		psm:           cfg.PageSegMode,
		logger:        cfg.Logger,
		clientFactory: gosseract.NewClient,
	}
	if e.psm <= 0 {
		e.psm = int(gosseract.PSM_AUTO)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e, nil
}

// Name implements ocr.Engine.
func (e *Engine) Name() string { return "gosseract" }

// Recognize implements ocr.Engine.
func (e *Engine) Recognize(ctx context.Context, img imageio.Image, lang string) (*ocr.Recognition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(img.Data); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if lang != "" {
		if err := c.SetLanguage(lang); err != nil {
			return nil, fmt.Errorf("set language: %w", err)
		}
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(e.psm)); err != nil {
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}

	boxes, err := c.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	tokens := make([]ocr.Token, 0, len(boxes))
	for _, b := range boxes {
		tokens = append(tokens, ocr.Token{
			Word: b.Word,
			Key: ocr.PositionKey{
				Block:     b.BlockNum,
				Paragraph: b.ParNum,
				Line:      b.LineNum,
			},
			BBox: hocr.NewBoundingBox(
				float64(b.Box.Min.X), float64(b.Box.Min.Y),
				float64(b.Box.Max.X), float64(b.Box.Max.Y),
			),
			Confidence: b.Confidence,
		})
	}
	e.logger.Debug("gosseract finished", zap.Int("tokens", len(tokens)))

	return &ocr.Recognition{
		Tokens: tokens,
		Width:  img.Width,
		Height: img.Height,
	}, nil
}
