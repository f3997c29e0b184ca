// Package config loads ocrtranslate settings from a YAML file.
//
// Example:
//
//	source_lang: en
//	target_lang: zh-CN
//	output_format: text
//	ocr:
//	  engine: tesseract
//	  page_seg_mode: 3
//	translator:
//	  backend: google
//	  timeout: 30s
//	segment:
//	  min_words: 5
//	  terminators: ".?!:"
//
// Values missing from the file keep their defaults. The translator API key can
// also be supplied through the OCRTRANSLATE_API_KEY environment variable.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gardar/ocrtranslate/pkg/bitext"
	"github.com/gardar/ocrtranslate/pkg/gdocai"
	"github.com/gardar/ocrtranslate/pkg/langcode"
	"github.com/gardar/ocrtranslate/pkg/segment"
	"github.com/gardar/ocrtranslate/pkg/translate"
)

// APIKeyEnv names the environment variable holding the translator API key.
const APIKeyEnv = "OCRTRANSLATE_API_KEY"

// Engine and backend names.
const (
	EngineTesseract  = "tesseract"
	EngineGosseract  = "gosseract"
	EngineDocumentAI = "documentai"

	BackendGoogle = "google"
	BackendCloud  = "cloud"
	BackendOpenAI = "openai"
)

// Config holds every setting of a run.
type Config struct {
	SourceLang   string           `yaml:"source_lang"`
	TargetLang   string           `yaml:"target_lang"`
	OutputFormat string           `yaml:"output_format"`
	Preprocess   bool             `yaml:"preprocess"`
	LogLevel     string           `yaml:"log_level"`
	OCR          OCRConfig        `yaml:"ocr"`
	Translator   TranslatorConfig `yaml:"translator"`
	Segment      SegmentConfig    `yaml:"segment"`
}

// OCRConfig selects and tunes the OCR engine.
type OCRConfig struct {
	Engine string `yaml:"engine"`
	// Language is the engine language code, e.g. "eng". Derived from
	// SourceLang when empty.
	Language      string        `yaml:"language"`
	TesseractPath string        `yaml:"tesseract_path"`
	PageSegMode   int           `yaml:"page_seg_mode"`
	DocumentAI    gdocai.Config `yaml:"documentai"`
}

// TranslatorConfig selects and tunes the translation backend.
type TranslatorConfig struct {
	Backend         string        `yaml:"backend"`
	Endpoint        string        `yaml:"endpoint"`
	APIKey          string        `yaml:"api_key"`
	CredentialsFile string        `yaml:"credentials_file"`
	Model           string        `yaml:"model"`
	Timeout         time.Duration `yaml:"timeout"`
}

// SegmentConfig tunes paragraph segmentation.
type SegmentConfig struct {
	MinWords    int    `yaml:"min_words"`
	Terminators string `yaml:"terminators"`
}

// Default returns the built-in settings.
func Default() *Config {
	seg := segment.DefaultConfig()
	return &Config{
		SourceLang:   "en",
		TargetLang:   "zh-CN",
		OutputFormat: string(bitext.FormatText),
		LogLevel:     "info",
		OCR: OCRConfig{
			Engine:        EngineTesseract,
			TesseractPath: "tesseract",
			PageSegMode:   3,
		},
		Translator: TranslatorConfig{
			Backend: BackendGoogle,
			Model:   translate.DefaultOpenAIModel,
			Timeout: translate.DefaultTimeout,
		},
		Segment: SegmentConfig{
			MinWords:    seg.MinWords,
			Terminators: seg.Terminators,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults. The API key environment variable is applied last when the
// file sets no key.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if cfg.Translator.APIKey == "" {
		cfg.Translator.APIKey = os.Getenv(APIKeyEnv)
	}
	return cfg, nil
}

// OCRLanguage returns the engine language, deriving it from SourceLang when
// none is configured.
func (c *Config) OCRLanguage() (string, error) {
	if c.OCR.Language != "" {
		return c.OCR.Language, nil
	}
	return langcode.Tesseract(c.SourceLang)
}

// SegmentOptions converts the segmentation settings.
func (c *Config) SegmentOptions() segment.Config {
	return segment.Config{
		MinWords:    c.Segment.MinWords,
		Terminators: c.Segment.Terminators,
	}
}

// TranslateOptions converts the translator settings.
func (c *Config) TranslateOptions() translate.Options {
	return translate.Options{
		Endpoint:        c.Translator.Endpoint,
		APIKey:          c.Translator.APIKey,
		CredentialsFile: c.Translator.CredentialsFile,
		Model:           c.Translator.Model,
		Timeout:         c.Translator.Timeout,
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if _, err := langcode.Parse(c.SourceLang); err != nil {
		errs = append(errs, fmt.Errorf("source_lang: %w", err))
	} else if _, err := c.OCRLanguage(); err != nil {
		errs = append(errs, fmt.Errorf("source_lang: %w", err))
	}
	if _, err := langcode.Parse(c.TargetLang); err != nil {
		errs = append(errs, fmt.Errorf("target_lang: %w", err))
	}
	if _, err := bitext.ParseFormat(c.OutputFormat); err != nil {
		errs = append(errs, fmt.Errorf("output_format: %w", err))
	}

	switch c.OCR.Engine {
	case EngineTesseract, EngineGosseract:
	case EngineDocumentAI:
		if err := c.OCR.DocumentAI.Validate(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("ocr.engine: unknown engine %q", c.OCR.Engine))
	}
	// Mode 0 only detects orientation and script and recognizes no text.
	if c.OCR.PageSegMode < 1 || c.OCR.PageSegMode > 13 {
		errs = append(errs, fmt.Errorf("ocr.page_seg_mode: %d is outside 1-13", c.OCR.PageSegMode))
	}

	switch c.Translator.Backend {
	case BackendGoogle, BackendCloud:
	case BackendOpenAI:
		if c.Translator.APIKey == "" && c.Translator.Endpoint == "" {
			errs = append(errs, fmt.Errorf("translator: openai needs api_key or %s", APIKeyEnv))
		}
	default:
		errs = append(errs, fmt.Errorf("translator.backend: unknown backend %q", c.Translator.Backend))
	}
	if c.Translator.Timeout < 0 {
		errs = append(errs, errors.New("translator.timeout: must not be negative"))
	}

	if c.Segment.MinWords < 0 {
		errs = append(errs, errors.New("segment.min_words: must not be negative"))
	}

	return errors.Join(errs...)
}
