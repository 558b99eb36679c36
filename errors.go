package termpix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidScale is returned when a scale factor is not in (0, 1] or
	// leaves an axis with no blocks.
	ErrInvalidScale = errors.New("invalid scale")

	// ErrMismatchedSize is returned when two caches of different dimensions
	// are compared.
	ErrMismatchedSize = errors.New("mismatched size")
)

// ImageLoadError reports a failure to open or decode an image.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load image: %v", e.Err)
	}
	return fmt.Sprintf("failed to load image %q: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}
