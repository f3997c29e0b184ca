// Package imageio loads input images for OCR and optionally prepares them for recognition.
//
// Images are read into memory once and decoded to validate them and to learn their
// dimensions. PNG, JPEG and GIF are supported through the standard library, BMP, TIFF
// and WebP through golang.org/x/image.
//
// Key Features:
//
// - Load an image file and detect its format and size
// - Preprocess an image for OCR (grayscale, upscaling of small images, sharpening, contrast)
// - Report the MIME type an OCR service expects for the image
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned for a zero-length input file.
var ErrEmptyImage = errors.New("image is empty")

// Image is an encoded image held in memory.
type Image struct {
	// Path is the file the bytes were read from. It is empty once the
	// image has been transformed and no longer matches any file.
	Path   string
	Data   []byte
	Format string // "png", "jpeg", "gif", "bmp", "tiff" or "webp"
	Width  int
	Height int
}

// Load reads and decodes the image at path.
func Load(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image: %w", err)
	}
	img, err := Decode(data)
	if err != nil {
		return Image{}, err
	}
	img.Path = path
	return img, nil
}

// Decode validates encoded image bytes and fills in format and size.
func Decode(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, ErrEmptyImage
	}
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image: %w", err)
	}
	b := decoded.Bounds()
	return Image{
		Data:   data,
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// MIMEType returns the media type of the image format.
func (img Image) MIMEType() string {
	switch img.Format {
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

// Extension returns the usual file extension for the image format, with the dot.
func (img Image) Extension() string {
	if img.Format == "jpeg" {
		return ".jpg"
	}
	if img.Format == "" {
		return ".png"
	}
	return "." + img.Format
}
