package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(40, 20)))
	path := writeFile(t, "page.png", buf.Bytes())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, img.Path)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 20, img.Height)
	assert.Equal(t, "image/png", img.MIMEType())
	assert.Equal(t, ".png", img.Extension())
}

func TestLoadBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(8, 6)))
	path := writeFile(t, "page.bmp", buf.Bytes())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bmp", img.Format)
	assert.Equal(t, "image/bmp", img.MIMEType())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "empty.png", nil))
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Load(writeFile(t, "garbage.png", []byte("not an image")))
	assert.Error(t, err)
}

func TestPreprocess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(50, 25)))
	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	img.Path = "page.png"

	out, err := Preprocess(img, PreprocessOptions{MinHeight: 100, Sharpen: 1, Contrast: 20})
	require.NoError(t, err)
	assert.Empty(t, out.Path)
	assert.Equal(t, "png", out.Format)
	assert.Equal(t, 100, out.Height)
	assert.Equal(t, 200, out.Width)

	decoded, err := png.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	r, g, b, _ := decoded.At(10, 10).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestPreprocessKeepsLargeImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(30, 30)))
	img, err := Decode(buf.Bytes())
	require.NoError(t, err)

	out, err := Preprocess(img, PreprocessOptions{MinHeight: 10})
	require.NoError(t, err)
	assert.Equal(t, 30, out.Width)
	assert.Equal(t, 30, out.Height)
}
