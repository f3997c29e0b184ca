package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "en", cfg.SourceLang)
	assert.Equal(t, "zh-CN", cfg.TargetLang)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, EngineTesseract, cfg.OCR.Engine)
	assert.Equal(t, BackendGoogle, cfg.Translator.Backend)
	assert.Equal(t, 5, cfg.Segment.MinWords)
	assert.Equal(t, ".?!:", cfg.Segment.Terminators)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	path := writeConfig(t, `
source_lang: de
target_lang: en
output_format: json
ocr:
  engine: documentai
  documentai:
    project_id: my-project
    location: eu
    processor_id: abc123
translator:
  backend: cloud
  timeout: 5s
segment:
  min_words: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.SourceLang)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, EngineDocumentAI, cfg.OCR.Engine)
	assert.Equal(t, "eu", cfg.OCR.DocumentAI.Location)
	assert.Equal(t, 5*time.Second, cfg.Translator.Timeout)
	assert.Equal(t, 3, cfg.Segment.MinWords)
	assert.Equal(t, ".?!:", cfg.Segment.Terminators, "unset keys keep defaults")
	assert.Equal(t, "tesseract", cfg.OCR.TesseractPath)
	assert.NoError(t, cfg.Validate())

	lang, err := cfg.OCRLanguage()
	require.NoError(t, err)
	assert.Equal(t, "deu", lang)
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Translator.APIKey)

	cfg, err = Load(writeConfig(t, "translator:\n  api_key: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Translator.APIKey)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "source_lang: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.TargetLang = "!!"
	cfg.OutputFormat = "xml"
	cfg.OCR.Engine = "paper"
	cfg.Translator.Backend = "openai"
	cfg.Translator.APIKey = ""
	cfg.Segment.MinWords = -1

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"target_lang", "output_format", "ocr.engine", "openai", "segment.min_words"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateUndeterminedSourceLanguage(t *testing.T) {
	cfg := Default()
	cfg.SourceLang = "und"
	assert.ErrorContains(t, cfg.Validate(), "source_lang")

	cfg.OCR.Language = "eng"
	assert.NoError(t, cfg.Validate())
}

func TestValidatePageSegMode(t *testing.T) {
	for _, psm := range []int{-1, 0, 14} {
		cfg := Default()
		cfg.OCR.PageSegMode = psm
		assert.ErrorContains(t, cfg.Validate(), "ocr.page_seg_mode", "psm %d", psm)
	}
	for _, psm := range []int{1, 6, 13} {
		cfg := Default()
		cfg.OCR.PageSegMode = psm
		assert.NoError(t, cfg.Validate(), "psm %d", psm)
	}
}

func TestValidateDocumentAI(t *testing.T) {
	cfg := Default()
	cfg.OCR.Engine = EngineDocumentAI
	assert.ErrorContains(t, cfg.Validate(), "project_id")
}

func TestOCRLanguageOverride(t *testing.T) {
	cfg := Default()
	cfg.OCR.Language = "eng+chi_sim"
	lang, err := cfg.OCRLanguage()
	require.NoError(t, err)
	assert.Equal(t, "eng+chi_sim", lang)

	cfg.OCR.Language = ""
	lang, err = cfg.OCRLanguage()
	require.NoError(t, err)
	assert.Equal(t, "eng", lang)
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Translator.Endpoint = "http://localhost"
	assert.Equal(t, 5, cfg.SegmentOptions().MinWords)
	assert.Equal(t, "http://localhost", cfg.TranslateOptions().Endpoint)
	assert.Equal(t, 30*time.Second, cfg.TranslateOptions().Timeout)
}
