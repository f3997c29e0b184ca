package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gardar/ocrtranslate/pkg/bitext"
	"github.com/gardar/ocrtranslate/pkg/config"
	"github.com/gardar/ocrtranslate/pkg/gdocai"
	"github.com/gardar/ocrtranslate/pkg/imageio"
	"github.com/gardar/ocrtranslate/pkg/ocr"
	"github.com/gardar/ocrtranslate/pkg/ocr/gosseract"
	"github.com/gardar/ocrtranslate/pkg/ocr/tesseract"
	"github.com/gardar/ocrtranslate/pkg/segment"
	"github.com/gardar/ocrtranslate/pkg/translate"
)

// NewEngine creates the OCR engine named by cfg.OCR.Engine.
func NewEngine(cfg *config.Config, logger *zap.Logger) (ocr.Engine, error) {
	switch cfg.OCR.Engine {
	case config.EngineTesseract, "":
		return tesseract.New(tesseract.Config{
			Path:        cfg.OCR.TesseractPath,
			PageSegMode: cfg.OCR.PageSegMode,
			Logger:      logger,
		}), nil
	case config.EngineGosseract:
		e, err := gosseract.New(gosseract.Config{
			PageSegMode: cfg.OCR.PageSegMode,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}
		return e, nil
	case config.EngineDocumentAI:
		e, err := gdocai.New(cfg.OCR.DocumentAI, logger)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown OCR engine %q", cfg.OCR.Engine)
}

// NewTranslator creates the translation backend named by cfg.Translator.Backend.
func NewTranslator(ctx context.Context, cfg *config.Config) (translate.Translator, error) {
	opts := cfg.TranslateOptions()
	switch cfg.Translator.Backend {
	case config.BackendGoogle, "":
		return translate.NewGoogleWeb(opts), nil
	case config.BackendCloud:
		t, err := translate.NewCloud(ctx, opts)
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.BackendOpenAI:
		t, err := translate.NewOpenAI(opts)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown translator %q", cfg.Translator.Backend)
}

// FromConfig builds a driver and the job settings shared by every image from cfg.
func FromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Driver, Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Job{}, fmt.Errorf("invalid configuration: %w", err)
	}

	engine, err := NewEngine(cfg, logger)
	if err != nil {
		return nil, Job{}, fmt.Errorf("failed to create OCR engine: %w", err)
	}
	translator, err := NewTranslator(ctx, cfg)
	if err != nil {
		return nil, Job{}, fmt.Errorf("failed to create translator: %w", err)
	}
	ocrLang, err := cfg.OCRLanguage()
	if err != nil {
		return nil, Job{}, err
	}
	format, err := bitext.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, Job{}, err
	}

	opts := []Option{
		WithLogger(logger),
		WithSegmenter(segment.NewSegmenterWithConfig(cfg.SegmentOptions())),
	}
	if cfg.Preprocess {
		opts = append(opts, WithPreprocess(imageio.DefaultPreprocessOptions()))
	}

	job := Job{
		Source:  cfg.SourceLang,
		Target:  cfg.TargetLang,
		OCRLang: ocrLang,
		Format:  format,
	}
	return NewDriver(engine, translator, opts...), job, nil
}
