package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gardar/ocrtranslate/pkg/config"
	"github.com/gardar/ocrtranslate/pkg/pipeline"
)

// DefaultOutput is the output path used when -o is not given.
const DefaultOutput = "translated_output.txt"

type options struct {
	output     string
	source     string
	target     string
	engine     string
	ocrLang    string
	translator string
	format     string
	pdf        string
	hocr       string
	preprocess bool
	configPath string
	logLevel   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "ocrtranslate [flags] <input-image>",
		Short: "Translate the printed text of an image into a bilingual text file",
		Long: `ocrtranslate recognizes the printed text in an image, rebuilds its paragraphs,
translates each paragraph and writes the original and translated text side by side.`,
		Args:         cobra.ExactArgs(1),
		Version:      fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, out, opts, args[0])
		},
	}
	cmd.SetOut(out)
	cmd.SetVersionTemplate("ocrtranslate {{.Version}}\n")

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", DefaultOutput, "path of the bilingual output file")
	f.StringVar(&opts.source, "source", "en", "source language")
	f.StringVar(&opts.target, "target", "zh-CN", "target language")
	f.StringVar(&opts.engine, "engine", config.EngineTesseract, "OCR engine: tesseract, gosseract or documentai")
	f.StringVar(&opts.ocrLang, "ocr-lang", "", "OCR language code, derived from --source when empty")
	f.StringVar(&opts.translator, "translator", config.BackendGoogle, "translation backend: google, cloud or openai")
	f.StringVar(&opts.format, "format", "text", "output format: text or json")
	f.StringVar(&opts.pdf, "pdf", "", "also write a searchable PDF of the image to this path")
	f.StringVar(&opts.hocr, "hocr", "", "also write the recognized page as hOCR to this path")
	f.BoolVar(&opts.preprocess, "preprocess", false, "grayscale, upscale and sharpen the image before OCR")
	f.StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.BoolP("version", "V", false, "print version information")

	return cmd
}

func run(cmd *cobra.Command, out io.Writer, opts options, input string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cmd.Flags(), cfg)

	logger, err := newLogger(cfg.LogLevel, out)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	driver, job, err := pipeline.FromConfig(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	job.ImagePath = input
	job.OutputPath = opts.output
	job.PDFPath = opts.pdf
	job.HOCRPath = opts.hocr

	res, err := driver.Run(cmd.Context(), job)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Translated output saved to:", res.OutputPath)
	if res.HOCRPath != "" {
		fmt.Fprintln(out, "Rendered hOCR output saved to:", res.HOCRPath)
	}
	if res.PDFPath != "" {
		fmt.Fprintln(out, "Searchable PDF saved to:", res.PDFPath)
	}
	if res.Fallbacks > 0 {
		fmt.Fprintf(out, "%d of %d paragraphs were not translated and kept their original text\n",
			res.Fallbacks, len(res.Records))
	}
	return nil
}

// apply copies the flags given on the command line over cfg.
func (o options) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("source") {
		cfg.SourceLang = o.source
	}
	if flags.Changed("target") {
		cfg.TargetLang = o.target
	}
	if flags.Changed("engine") {
		cfg.OCR.Engine = o.engine
	}
	if flags.Changed("ocr-lang") {
		cfg.OCR.Language = o.ocrLang
	}
	if flags.Changed("translator") {
		cfg.Translator.Backend = o.translator
	}
	if flags.Changed("format") {
		cfg.OutputFormat = o.format
	}
	if flags.Changed("preprocess") {
		cfg.Preprocess = o.preprocess
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
}

// newLogger builds a console logger writing to w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
