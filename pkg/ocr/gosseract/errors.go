package gosseract

import "errors"

// ErrNotEnabled is returned when the engine was not compiled in.
var ErrNotEnabled = errors.New("gosseract engine not enabled; rebuild with -tags gosseract")
