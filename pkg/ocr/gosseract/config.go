package gosseract

import "go.uber.org/zap"

// Config configures the engine.
type Config struct {
	// PageSegMode is Tesseract's page segmentation mode; 0 selects automatic.
	PageSegMode int
	Logger      *zap.Logger
}
