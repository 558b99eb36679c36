package termpix

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode opens and decodes the image at path into a Raster.
// Failures are returned as *ImageLoadError.
func Decode(path string) (*Raster, error) {
	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	r, err := FromImage(img)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	return r, nil
}

// DecodeReader decodes an image stream into a Raster
func DecodeReader(rd io.Reader) (*Raster, error) {
	if rd == nil {
		return nil, &ImageLoadError{Err: fmt.Errorf("reader cannot be nil")}
	}
	img, _, err := image.Decode(rd)
	if err != nil {
		return nil, &ImageLoadError{Err: fmt.Errorf("failed to decode image: %w", err)}
	}
	r, err := FromImage(img)
	if err != nil {
		return nil, &ImageLoadError{Err: err}
	}
	return r, nil
}

// DecodeImage opens and decodes the image at path without copying it into a
// Raster, for callers that resize before building a cache
func DecodeImage(path string) (image.Image, error) {
	return decodeImage(path)
}

func decodeImage(path string) (image.Image, error) {
	if path == "" {
		return nil, &ImageLoadError{Err: fmt.Errorf("path cannot be empty")}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: fmt.Errorf("failed to decode image: %w", err)}
	}
	return img, nil
}

// DecodeConfig reads only the image header at path and returns its size
func DecodeConfig(path string) (width, height int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, &ImageLoadError{Path: path, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, &ImageLoadError{Path: path, Err: fmt.Errorf("failed to decode image config: %w", err)}
	}
	return cfg.Width, cfg.Height, nil
}
