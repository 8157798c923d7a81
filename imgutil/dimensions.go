package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/webp"
)

// Dimensions returns the pixel width and height of an encoded image.
// PNG, JPEG and GIF are read from the header only; WebP is decoded.
func Dimensions(data []byte, mimeType string) (width, height int, err error) {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	if mimeType == "image/webp" {
		img, err := webp.Decode(bytes.NewReader(data), &decoder.Options{})
		if err != nil {
			return 0, 0, fmt.Errorf("failed to decode WebP: %w", err)
		}
		b := img.Bounds()
		return b.Dx(), b.Dy(), nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
