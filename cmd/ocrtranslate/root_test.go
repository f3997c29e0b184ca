package main

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/ocrtranslate/pkg/pipeline"
)

const pageHOCR = `<html><head><title></title></head><body>
<div class='ocr_page' id='page_1' title='bbox 0 0 80 40; ppageno 0'>
 <div class='ocr_carea' id='block_1_1' title='bbox 0 0 80 10'>
  <p class='ocr_par' id='par_1_1' title='bbox 0 0 80 10'>
   <span class='ocr_line' id='line_1_1' title='bbox 0 0 80 10'>
    <span class='ocrx_word' id='word_1_1' title='bbox 0 0 30 10; x_wconf 96'>Hello</span>
   </span>
  </p>
 </div>
 <div class='ocr_carea' id='block_1_2' title='bbox 0 20 80 30'>
  <p class='ocr_par' id='par_1_2' title='bbox 0 20 80 30'>
   <span class='ocr_line' id='line_1_2' title='bbox 0 20 80 30'>
    <span class='ocrx_word' id='word_1_2' title='bbox 0 20 20 30; x_wconf 91'>am</span>
    <span class='ocrx_word' id='word_1_3' title='bbox 25 20 60 30; x_wconf 90'>here.</span>
   </span>
  </p>
 </div>
</div></body></html>`

// setup writes an input image, a fake tesseract binary and a config file
// pointing at it and at endpoint. It returns the image and config paths.
func setup(t *testing.T, endpoint string) (imagePath, configPath string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 80, 40))))
	imagePath = filepath.Join(dir, "page.png")
	require.NoError(t, os.WriteFile(imagePath, buf.Bytes(), 0o644))

	hocrPath := filepath.Join(dir, "page.hocr")
	require.NoError(t, os.WriteFile(hocrPath, []byte(pageHOCR), 0o644))
	bin := filepath.Join(dir, "tesseract")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\ncat "+hocrPath+"\n"), 0o755))

	configPath = filepath.Join(dir, "ocrtranslate.yml")
	cfg := fmt.Sprintf("ocr:\n  tesseract_path: %s\ntranslator:\n  endpoint: %s\n", bin, endpoint)
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))
	return imagePath, configPath
}

// translateServer mimics the mobile translate page. Text listed in fail gets
// a server error.
type translateServer struct {
	mu      sync.Mutex
	targets []string
	fail    map[string]bool
}

func (s *translateServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	s.targets = append(s.targets, q.Get("tl"))
	s.mu.Unlock()

	if s.fail[q.Get("q")] {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	fmt.Fprintf(w, `<html><body><div class="result-container">%s: %s</div></body></html>`,
		html.EscapeString(q.Get("tl")), html.EscapeString(q.Get("q")))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun(t *testing.T) {
	ts := &translateServer{fail: map[string]bool{"Hello": true}}
	srv := httptest.NewServer(ts)
	defer srv.Close()

	img, cfg := setup(t, srv.URL)
	output := filepath.Join(t.TempDir(), "out.txt")
	hocrOut := filepath.Join(t.TempDir(), "out.hocr")

	stdout, err := execute(t, "--config", cfg, "-o", output, "--hocr", hocrOut, "--target", "de", img)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nHello\n\nI am here.\nde: I am here.\n\n", string(data))
	assert.Equal(t, []string{"de", "de"}, ts.targets)
	assert.FileExists(t, hocrOut)

	assert.Contains(t, stdout, "translation failed, keeping original text")
	assert.Contains(t, stdout, "Translated output saved to: "+output)
	assert.Contains(t, stdout, "Rendered hOCR output saved to: "+hocrOut)
	assert.Contains(t, stdout, "1 of 2 paragraphs were not translated")
}

func TestRunJSON(t *testing.T) {
	srv := httptest.NewServer(&translateServer{})
	defer srv.Close()

	img, cfg := setup(t, srv.URL)
	output := filepath.Join(t.TempDir(), "out.json")

	stdout, err := execute(t, "--config", cfg, "--format", "json", "--log-level", "error", "-o", output, img)
	require.NoError(t, err)
	assert.Equal(t, "Translated output saved to: "+output+"\n", stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"translated": "zh-CN: Hello"`)
	assert.Contains(t, string(data), `"status": "translated"`)
}

func TestRunMissingImage(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.txt")

	_, err := execute(t, "-o", output, filepath.Join(t.TempDir(), "missing.png"))

	var readErr *pipeline.ImageReadError
	require.ErrorAs(t, err, &readErr)
	assert.NoFileExists(t, output)
}

func TestRunInvalidFlags(t *testing.T) {
	img := filepath.Join(t.TempDir(), "page.png")

	_, err := execute(t, "--engine", "abbyy", img)
	assert.ErrorContains(t, err, "abbyy")

	_, err = execute(t, "--format", "xml", img)
	assert.ErrorContains(t, err, "xml")

	_, err = execute(t, "--log-level", "loud", img)
	assert.ErrorContains(t, err, "invalid log level")

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yml"), img)
	assert.Error(t, err)
}

func TestArgs(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)

	_, err = execute(t, "a.png", "b.png")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, err := execute(t, "-V")
	require.NoError(t, err)
	assert.Equal(t, "ocrtranslate dev (commit none, built unknown)\n", stdout)
}
