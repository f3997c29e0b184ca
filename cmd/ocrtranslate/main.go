// ocrtranslate is a command-line tool that reads printed text from an image,
// translates it paragraph by paragraph and writes a bilingual text file.
//
// The image is run through an OCR engine, the recognized words are regrouped
// into lines and paragraphs, and every paragraph is translated on its own.
// A paragraph whose translation fails keeps its original text.
//
// Usage:
//
//	ocrtranslate [flags] <input-image>
//
// Flags:
//
//	-o, --output string      Path of the bilingual output file (default "translated_output.txt")
//	    --source string      Source language (default "en")
//	    --target string      Target language (default "zh-CN")
//	    --engine string      OCR engine: tesseract, gosseract or documentai
//	    --ocr-lang string    OCR language code, derived from --source when empty
//	    --translator string  Translation backend: google, cloud or openai
//	    --format string      Output format: text or json
//	    --pdf string         Also write a searchable PDF of the image
//	    --hocr string        Also write the recognized page as hOCR
//	    --preprocess         Grayscale, upscale and sharpen the image before OCR
//	    --config string      Path to a YAML configuration file
//	    --log-level string   debug, info, warn or error
//	-V, --version            Print version information
//
// Example:
//
//	ocrtranslate page.png
//	ocrtranslate --target de --format json -o page.json page.png
//	ocrtranslate --config ocrtranslate.yml --engine documentai --pdf page.pdf scan.jpg
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Set at build time with -ldflags "-X main.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
