package export

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithiumheat/studio"
	"github.com/lithiumheat/studio/imgutil"
)

func testImages(t *testing.T) []studio.GeneratedImage {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			src.Set(x, y, color.RGBA{0, 128, 255, 255})
		}
	}

	var pngBuf, jpgBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	require.NoError(t, jpeg.Encode(&jpgBuf, src, nil))

	return []studio.GeneratedImage{
		{ID: "1712345678901_0", URL: imgutil.EncodeDataURL("image/png", pngBuf.Bytes()), Resolution: studio.Resolution1K},
		{ID: "ab_1", URL: imgutil.EncodeDataURL("image/jpeg", jpgBuf.Bytes()), Resolution: studio.Resolution4K},
	}
}

func TestWriteZIP(t *testing.T) {
	images := testImages(t)

	var buf bytes.Buffer
	require.NoError(t, WriteZIP(&buf, images))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	assert.Equal(t, "lithium_heat_source_assets/image_1_17123.png", zr.File[0].Name)
	assert.Equal(t, "lithium_heat_source_assets/image_2_ab_1.png", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)

	_, want, err := imgutil.DecodeDataURL(images[0].URL)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteZIP_Errors(t *testing.T) {
	assert.ErrorIs(t, WriteZIP(io.Discard, nil), ErrNoImages)
	assert.ErrorIs(t, WriteZIP(io.Discard, []studio.GeneratedImage{{ID: "x", URL: "nope"}}), imgutil.ErrMalformedDataURL)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, testImages(t)))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "%%EOF")
}

func TestWritePDF_Errors(t *testing.T) {
	assert.ErrorIs(t, WritePDF(io.Discard, nil), ErrNoImages)

	bad := []studio.GeneratedImage{{ID: "x", URL: imgutil.EncodeDataURL("application/octet-stream", []byte("??"))}}
	assert.ErrorIs(t, WritePDF(io.Discard, bad), imgutil.ErrUnsupportedFormat)
}

func TestImageType(t *testing.T) {
	assert.Equal(t, "JPG", imageType("image/jpeg"))
	assert.Equal(t, "PNG", imageType("image/png"))
	assert.Equal(t, "GIF", imageType("image/gif"))
}
