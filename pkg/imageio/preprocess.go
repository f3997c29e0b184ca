package imageio

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// PreprocessOptions tunes Preprocess.
type PreprocessOptions struct {
	// MinHeight is the height below which images are upscaled. Zero disables upscaling.
	MinHeight int
	// Sharpen is the sigma of the sharpening filter. Zero disables it.
	Sharpen float64
	// Contrast is the contrast change in percent (-100..100).
	Contrast float64
}

// DefaultPreprocessOptions returns the settings used by the CLI.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		MinHeight: 1000,
		Sharpen:   1.0,
		Contrast:  30,
	}
}

// Preprocess converts img to grayscale, upscales it when it is smaller than
// opts.MinHeight, sharpens it and raises its contrast. The result is PNG
// encoded and has no Path. Bounding boxes recognized on the result are in
// the result's coordinates.
func Preprocess(img Image, opts PreprocessOptions) (Image, error) {
	src, err := imaging.Decode(bytes.NewReader(img.Data), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image for preprocessing: %w", err)
	}

	dst := imaging.Grayscale(src)
	if h := dst.Bounds().Dy(); opts.MinHeight > 0 && h > 0 && h < opts.MinHeight {
		dst = imaging.Resize(dst, 0, opts.MinHeight, imaging.Lanczos)
	}
	if opts.Sharpen > 0 {
		dst = imaging.Sharpen(dst, opts.Sharpen)
	}
	if opts.Contrast != 0 {
		dst = imaging.AdjustContrast(dst, opts.Contrast)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, imaging.PNG); err != nil {
		return Image{}, fmt.Errorf("failed to encode preprocessed image: %w", err)
	}

	b := dst.Bounds()
	return Image{
		Data:   buf.Bytes(),
		Format: "png",
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}
