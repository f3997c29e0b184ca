// Package tesseract runs the tesseract command line program and reads its hOCR output.
package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gardar/ocrtranslate/pkg/hocr"
	"github.com/gardar/ocrtranslate/pkg/imageio"
	"github.com/gardar/ocrtranslate/pkg/ocr"
)

// DefaultPageSegMode is Tesseract's fully automatic page segmentation.
const DefaultPageSegMode = 3

// Config configures the engine.
type Config struct {
	// Path to the tesseract binary; looked up in PATH when it has no separator.
	Path string
	// PageSegMode is passed as --psm. Zero selects DefaultPageSegMode.
	PageSegMode int
	Logger      *zap.Logger
}

// Engine is an ocr.Engine backed by the tesseract executable.
type Engine struct {
	path   string
	psm    int
	logger *zap.Logger
}

var _ ocr.Engine = (*Engine)(nil)

// New creates an engine, filling unset config fields with defaults.
func New(cfg Config) *Engine {
	e := &Engine{
		path:   cfg.Path,
		psm:    cfg.PageSegMode,
		logger: cfg.Logger,
	}
	if e.path == "" {
		e.path = "tesseract"
	}
	if e.psm <= 0 {
		e.psm = DefaultPageSegMode
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Name implements ocr.Engine.
func (e *Engine) Name() string { return "tesseract" }

// Recognize implements ocr.Engine.
func (e *Engine) Recognize(ctx context.Context, img imageio.Image, lang string) (*ocr.Recognition, error) {
	if _, err := exec.LookPath(e.path); err != nil {
		return nil, fmt.Errorf("tesseract not found: %w", err)
	}

	input := img.Path
	if input == "" {
		tmp, err := writeTemp(img)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp)
		input = tmp
	}

	args := []string{input, "stdout"}
	if lang != "" {
		args = append(args, "-l", lang)
	}
	args = append(args, "--psm", strconv.Itoa(e.psm), "hocr")

	cmd := exec.CommandContext(ctx, e.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("running tesseract", zap.String("command", cmd.String()))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("tesseract failed: %w", err)
		}
		return nil, fmt.Errorf("tesseract failed: %w: %s", err, msg)
	}

	doc, err := hocr.ParseHOCR(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to parse tesseract output: %w", err)
	}

	rec := &ocr.Recognition{
		Tokens: ocr.TokensFromHOCR(&doc),
		Width:  img.Width,
		Height: img.Height,
		HOCR:   &doc,
	}
	if rec.Width == 0 && len(doc.Pages) > 0 {
		rec.Width = int(doc.Pages[0].BBox.Width())
		rec.Height = int(doc.Pages[0].BBox.Height())
	}
	e.logger.Debug("tesseract finished", zap.Int("tokens", len(rec.Tokens)))
	return rec, nil
}

func writeTemp(img imageio.Image) (string, error) {
	if len(img.Data) == 0 {
		return "", errors.New("image has neither a path nor data")
	}
	f, err := os.CreateTemp("", "ocrtranslate-*"+img.Extension())
	if err != nil {
		return "", fmt.Errorf("failed to create temporary image: %w", err)
	}
	if _, err := f.Write(img.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temporary image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temporary image: %w", err)
	}
	return f.Name(), nil
}
