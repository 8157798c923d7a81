package studio

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrInvalidCount       = errors.New("image count must be positive")
	ErrInvalidAspectRatio = errors.New("unsupported aspect ratio")
	ErrInvalidResolution  = errors.New("unsupported resolution")
	ErrInvalidMode        = errors.New("unsupported generation mode")
	ErrEmptyImageData     = errors.New("image data cannot be empty")
	ErrInvalidMIMEType    = errors.New("invalid or unsupported MIME type")
	ErrImageTooLarge      = errors.New("image data exceeds maximum size")
)

// Image size limits
const (
	// MaxImageSize is the maximum allowed upload size in bytes (20MB)
	MaxImageSize = 20 * 1024 * 1024
)

// ValidMIMETypes contains the supported upload MIME types
var ValidMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ValidateRequest checks the closed enumerations and the count of req.
// The prompt and reference image are not checked: an empty prompt is
// meaningful and image payloads are the caller's responsibility.
func ValidateRequest(req GenerationRequest) error {
	if req.Count <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, req.Count)
	}
	if !req.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
	if !req.AspectRatio.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAspectRatio, req.AspectRatio)
	}
	if !req.Resolution.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidResolution, req.Resolution)
	}
	return nil
}

// ValidateUpload validates raw image bytes before they are turned into a
// data URL for a request.
func ValidateUpload(data []byte, mimeType string) error {
	if len(data) == 0 {
		return ErrEmptyImageData
	}
	if len(data) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(data), MaxImageSize)
	}
	if mimeType == "" {
		return fmt.Errorf("%w: MIME type is required", ErrInvalidMIMEType)
	}
	if !ValidMIMETypes[mimeType] {
		return fmt.Errorf("%w: %s", ErrInvalidMIMEType, mimeType)
	}
	return nil
}
