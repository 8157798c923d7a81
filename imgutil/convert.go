package imgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"

	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/webp"
)

// ErrUnsupportedFormat is returned for image formats that cannot be converted.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ToEmbeddable returns data in a format document writers can embed (PNG,
// JPEG or GIF). WebP is re-encoded as PNG; the other formats pass through.
func ToEmbeddable(data []byte, mimeType string) ([]byte, string, error) {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	switch mimeType {
	case "image/png", "image/jpeg", "image/gif":
		return data, mimeType, nil
	case "image/webp":
		img, err := webp.Decode(bytes.NewReader(data), &decoder.Options{})
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode WebP: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
}
