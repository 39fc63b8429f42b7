package solo

import (
	"fmt"
	"image"
	"os"

	// decoders for capture images
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ProbeImage returns the pixel dimensions of the image file at path without
// decoding its pixel data
func ProbeImage(path string) (width, height int, format string, err error) {

	f, err := os.Open(path)

	if err != nil {
		return 0, 0, "", fmt.Errorf("error opening image: %w", err)
	}

	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)

	if err != nil {
		return 0, 0, "", fmt.Errorf("error decoding image header: %w", err)
	}

	return cfg.Width, cfg.Height, format, nil
}
