// Package export packs a task's images into a ZIP archive or a PDF catalogue.
package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/lithiumheat/studio"
	"github.com/lithiumheat/studio/imgutil"
)

const (
	// ArchiveFolder is the folder holding the images inside the ZIP.
	ArchiveFolder = "lithium_heat_source_assets"

	// ArchiveFileName is the suggested file name of the ZIP.
	ArchiveFileName = "lithium_assets_pack.zip"

	// CatalogFileName is the suggested file name of the PDF.
	CatalogFileName = "lithium_assets_catalog.pdf"

	pageMargin = 10.0
)

// ErrNoImages is returned when there is nothing to export.
var ErrNoImages = errors.New("no images to export")

// EntryName is the archive path of the n-th image (0-based).
func EntryName(n int, img studio.GeneratedImage) string {
	id := img.ID
	if len(id) > 5 {
		id = id[:5]
	}
	return fmt.Sprintf("%s/image_%d_%s.png", ArchiveFolder, n+1, id)
}

// WriteZIP writes every image into a ZIP archive on w.
func WriteZIP(w io.Writer, images []studio.GeneratedImage) error {
	if len(images) == 0 {
		return ErrNoImages
	}

	zw := zip.NewWriter(w)
	for i, img := range images {
		_, data, err := imgutil.DecodeDataURL(img.URL)
		if err != nil {
			return fmt.Errorf("image %s: %w", img.ID, err)
		}

		f, err := zw.Create(EntryName(i, img))
		if err != nil {
			return fmt.Errorf("create zip entry: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("write zip entry: %w", err)
		}
	}
	return zw.Close()
}

// WritePDF writes an A4 catalogue with one page per image. Each image spans
// the page width minus margins and is captioned "Asset #<n> - <resolution>".
func WritePDF(w io.Writer, images []studio.GeneratedImage) error {
	if len(images) == 0 {
		return ErrNoImages
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)

	for i, img := range images {
		mimeType, data, err := imgutil.DecodeDataURL(img.URL)
		if err != nil {
			return fmt.Errorf("image %s: %w", img.ID, err)
		}
		data, mimeType, err = imgutil.ToEmbeddable(data, mimeType)
		if err != nil {
			return fmt.Errorf("image %s: %w", img.ID, err)
		}

		pdf.AddPage()
		pageWidth, pageHeight := pdf.GetPageSize()

		name := fmt.Sprintf("asset_%d", i)
		opts := fpdf.ImageOptions{ImageType: imageType(mimeType)}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		pdf.ImageOptions(name, pageMargin, pageMargin, pageWidth-2*pageMargin, 0, false, opts, 0, "")
		pdf.Text(pageMargin, pageHeight-pageMargin, fmt.Sprintf("Asset #%d - %s", i+1, img.Resolution))

		if err := pdf.Error(); err != nil {
			return fmt.Errorf("render page %d: %w", i+1, err)
		}
	}

	return pdf.Output(w)
}

func imageType(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return "JPG"
	default:
		return strings.ToUpper(strings.TrimPrefix(mimeType, "image/"))
	}
}
