package studio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lithiumheat/studio/imgutil"
)

// Storage persists generated images.
// Implementations can wrap existing storage clients (GCS, S3, etc.); DirStorage
// writes to the local filesystem.
type Storage interface {
	// SaveFile saves data under path and returns where it can be found.
	// The contentType is the image's MIME type (e.g., "image/png").
	SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

// StorageResult contains information about a saved image.
type StorageResult struct {
	// ImageID is the GeneratedImage the file was written from
	ImageID string

	// URL is where the image can be accessed
	URL string

	// Path is the storage path/key where the image was saved
	Path string

	// Size is the number of bytes saved
	Size int
}

// SaveImages decodes each image's data URL and saves it under
// {basePath}/{image id}.{extension}. It stops at the first failure and
// returns what was saved so far.
func SaveImages(ctx context.Context, storage Storage, images []GeneratedImage, basePath string) ([]StorageResult, error) {
	if storage == nil {
		return nil, ErrStorageNotConfigured
	}
	if len(images) == 0 {
		return nil, nil
	}

	results := make([]StorageResult, 0, len(images))
	for _, img := range images {
		mimeType, data, err := imgutil.DecodeDataURL(img.URL)
		if err != nil {
			return results, fmt.Errorf("image %s: %w", img.ID, err)
		}

		path := img.ID + "." + ExtensionFromMIME(mimeType)
		if basePath != "" {
			path = basePath + "/" + path
		}

		url, err := storage.SaveFile(ctx, data, path, mimeType)
		if err != nil {
			return results, err
		}

		results = append(results, StorageResult{
			ImageID: img.ID,
			URL:     url,
			Path:    path,
			Size:    len(data),
		})
	}

	return results, nil
}

// DirStorage is a Storage rooted at a local directory.
type DirStorage struct {
	Root string
}

// SaveFile writes data to Root/path, creating directories as needed, and
// returns the absolute file path.
func (s *DirStorage) SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes storage root", path)
	}

	full := filepath.Join(s.Root, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", full, err)
	}

	abs, err := filepath.Abs(full)
	if err != nil {
		return full, nil
	}
	return abs, nil
}

// GetMIMEType guesses an image MIME type from a file extension.
func GetMIMEType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

// ExtensionFromMIME returns a file extension for common image MIME types.
func ExtensionFromMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
