package media

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const (
	MaxWidth  = 1024
	MaxHeight = 768
)

// FitImage decodes an uploaded image, scales it down to fit within
// MaxWidth x MaxHeight and re-encodes it as JPEG.
func FitImage(r io.Reader) ([]byte, string, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("unknown image format: %w", err)
	}

	dst := src
	bounds := src.Bounds()
	if bounds.Dx() > MaxWidth || bounds.Dy() > MaxHeight {
		dst = imaging.Fit(src, MaxWidth, MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
