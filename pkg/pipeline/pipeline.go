// Package pipeline runs the OCR to bilingual text conversion for one image.
//
// A run loads the image, recognizes its words, groups them into lines in
// reading order, normalizes each line, merges lines into paragraphs and
// translates each paragraph. The original and translated paragraphs are then
// written as one bilingual file. A paragraph whose translation fails keeps its
// original text and is marked as a fallback; the run continues.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gardar/ocrtranslate/pkg/bitext"
	"github.com/gardar/ocrtranslate/pkg/hocr"
	"github.com/gardar/ocrtranslate/pkg/imageio"
	"github.com/gardar/ocrtranslate/pkg/ocr"
	"github.com/gardar/ocrtranslate/pkg/pdfocr"
	"github.com/gardar/ocrtranslate/pkg/segment"
	"github.com/gardar/ocrtranslate/pkg/textnorm"
	"github.com/gardar/ocrtranslate/pkg/translate"
)

// ImageReadError reports an input image that could not be read or decoded.
type ImageReadError struct {
	Path string
	Err  error
}

func (e *ImageReadError) Error() string {
	return fmt.Sprintf("cannot read image %s: %v", e.Path, e.Err)
}

func (e *ImageReadError) Unwrap() error { return e.Err }

// Job describes one run.
type Job struct {
	ImagePath  string
	OutputPath string
	// Source and Target are BCP 47 tags passed to the translator.
	Source string
	Target string
	// OCRLang is the engine language code, e.g. "eng".
	OCRLang string
	Format  bitext.Format
	// PDFPath, when set, receives a searchable PDF of the image.
	PDFPath string
	// HOCRPath, when set, receives the recognized page as hOCR.
	HOCRPath string
}

// Result summarizes a finished run.
type Result struct {
	Records []bitext.Record
	// Lines is the number of non-empty normalized lines.
	Lines int
	// Fallbacks is the number of records that kept their original text.
	Fallbacks  int
	OutputPath string
	PDFPath    string
	HOCRPath   string
}

// Driver runs jobs with one engine and one translator.
type Driver struct {
	engine     ocr.Engine
	translator translate.Translator
	normalizer *textnorm.Normalizer
	segmenter  *segment.Segmenter
	preprocess *imageio.PreprocessOptions
	logger     *zap.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithNormalizer replaces the default line normalizer.
func WithNormalizer(n *textnorm.Normalizer) Option {
	return func(d *Driver) { d.normalizer = n }
}

// WithSegmenter replaces the default paragraph segmenter.
func WithSegmenter(s *segment.Segmenter) Option {
	return func(d *Driver) { d.segmenter = s }
}

// WithPreprocess enables image preprocessing before OCR.
func WithPreprocess(opts imageio.PreprocessOptions) Option {
	return func(d *Driver) { d.preprocess = &opts }
}

// NewDriver creates a driver.
func NewDriver(engine ocr.Engine, translator translate.Translator, opts ...Option) *Driver {
	d := &Driver{
		engine:     engine,
		translator: translator,
		normalizer: textnorm.NewNormalizer(),
		segmenter:  segment.NewSegmenter(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes job. Nothing is written when the image cannot be loaded or
// recognized. The output file is replaced in full once every paragraph has
// been handled.
func (d *Driver) Run(ctx context.Context, job Job) (*Result, error) {
	log := d.logger.With(zap.String("image", job.ImagePath))

	original, err := imageio.Load(job.ImagePath)
	if err != nil {
		return nil, &ImageReadError{Path: job.ImagePath, Err: err}
	}
	log.Debug("image loaded",
		zap.String("format", original.Format),
		zap.Int("width", original.Width),
		zap.Int("height", original.Height))

	img := original
	if d.preprocess != nil {
		img, err = imageio.Preprocess(original, *d.preprocess)
		if err != nil {
			return nil, &ImageReadError{Path: job.ImagePath, Err: err}
		}
		log.Debug("image preprocessed", zap.Int("width", img.Width), zap.Int("height", img.Height))
	}

	log.Info("running OCR", zap.String("engine", d.engine.Name()), zap.String("lang", job.OCRLang))
	rec, err := d.engine.Recognize(ctx, img, job.OCRLang)
	if err != nil {
		return nil, fmt.Errorf("OCR with %s failed: %w", d.engine.Name(), err)
	}

	lines := d.normalizeLines(ocr.GroupLines(rec.Tokens))
	paragraphs := d.segmenter.Segment(lines)
	log.Info("text recognized",
		zap.Int("tokens", len(rec.Tokens)),
		zap.Int("lines", len(lines)),
		zap.Int("paragraphs", len(paragraphs)))

	records, err := d.translateAll(ctx, paragraphs, job.Source, job.Target)
	if err != nil {
		return nil, err
	}

	enc, err := bitext.NewEncoder(job.Format)
	if err != nil {
		return nil, err
	}
	doc := bitext.Document{Source: job.Source, Target: job.Target, Records: records}
	if err := bitext.WriteFile(job.OutputPath, doc, enc); err != nil {
		return nil, err
	}

	result := &Result{
		Records:    records,
		Lines:      len(lines),
		Fallbacks:  bitext.Fallbacks(records),
		OutputPath: job.OutputPath,
	}

	var page *hocr.HOCR
	if job.HOCRPath != "" || job.PDFPath != "" {
		page = rec.Document()
	}

	if job.HOCRPath != "" {
		if err := writeHOCR(job.HOCRPath, page); err != nil {
			return result, err
		}
		result.HOCRPath = job.HOCRPath
	}

	if job.PDFPath != "" {
		cfg := pdfocr.DefaultConfig()
		cfg.Logger = log
		// The text layer is in the coordinates of the recognized image, which
		// differs from the original when preprocessing resized or rotated it.
		if err := writePDF(job.PDFPath, page, img.Data, cfg); err != nil {
			return result, err
		}
		result.PDFPath = job.PDFPath
	}

	return result, nil
}

// normalizeLines normalizes each line and drops the ones left empty.
func (d *Driver) normalizeLines(lines []ocr.Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if text := d.normalizer.Normalize(l.Text()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// translateAll translates each paragraph once. A failed translation keeps
// the original text; only cancellation of ctx stops the loop.
func (d *Driver) translateAll(ctx context.Context, paragraphs []string, source, target string) ([]bitext.Record, error) {
	records := make([]bitext.Record, 0, len(paragraphs))
	for _, p := range paragraphs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		translated, err := d.translator.Translate(ctx, p, source, target)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			d.logger.Warn("translation failed, keeping original text",
				zap.String("translator", d.translator.Name()),
				zap.String("text", p),
				zap.Error(err))
			records = append(records, bitext.Record{Original: p, Translated: p, Status: bitext.StatusFallback})
			continue
		}
		records = append(records, bitext.Record{Original: p, Translated: translated, Status: bitext.StatusTranslated})
	}
	return records, nil
}

func writeHOCR(path string, doc *hocr.HOCR) error {
	html, err := hocr.GenerateHOCRDocument(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write hOCR output: %w", err)
	}
	return nil
}

func writePDF(path string, doc *hocr.HOCR, imageData []byte, cfg pdfocr.OCRConfig) error {
	data, err := pdfocr.AssembleWithOCR(doc, imageData, cfg)
	if err != nil {
		return fmt.Errorf("failed to create searchable PDF: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write searchable PDF: %w", err)
	}
	return nil
}
