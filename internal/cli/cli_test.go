package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithiumheat/studio/export"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{200, 120, 40, 255}), image.Point{}, draw.Src)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fakeGemini answers every generateContent call with one PNG image and
// one text part.
func fakeGemini(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	payload := base64.StdEncoding.EncodeToString(pngBytes(t, 8, 8))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[` +
			`{"text":"Bright studio light on a white sweep."},` +
			`{"inlineData":{"mimeType":"image/png","data":"` + payload + `"}}]}}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	missing := filepath.Join(t.TempDir(), "none.env")
	err := Execute(context.Background(), append([]string{"--env-file", missing}, args...), strings.NewReader(""), &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestSuiteCommand(t *testing.T) {
	var calls int32
	srv := fakeGemini(t, &calls)
	t.Setenv("GEMINI_API_KEY", "test-key")
	dir := t.TempDir()

	out, _, err := run(t, "suite", "--base-url", srv.URL, "-o", dir,
		"-p", "linen shirt on a hanger", "-n", "2", "-r", "3:2", "--zip", "--pdf")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines[:2] {
		_, err := os.Stat(l)
		assert.NoError(t, err, l)
		assert.True(t, strings.HasSuffix(l, ".png"))
	}
	assert.True(t, strings.HasSuffix(lines[2], export.ArchiveFileName))
	assert.True(t, strings.HasSuffix(lines[3], export.CatalogFileName))
}

func TestRestoreCommand(t *testing.T) {
	var calls int32
	srv := fakeGemini(t, &calls)
	t.Setenv("GEMINI_API_KEY", "test-key")
	dir := t.TempDir()

	photo := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(photo, pngBytes(t, 160, 90), 0o644))

	out, _, err := run(t, "restore", "--base-url", srv.URL, "-o", dir, "-i", photo)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
}

func TestSuggestCommand(t *testing.T) {
	var calls int32
	srv := fakeGemini(t, &calls)
	t.Setenv("GEMINI_API_KEY", "test-key")

	out, _, err := run(t, "suggest", "--base-url", srv.URL, "-p", "ceramic vase")
	require.NoError(t, err)
	assert.Equal(t, "Bright studio light on a white sweep.\n", out)
}

func TestModelsCommand(t *testing.T) {
	out, _, err := run(t, "models")
	require.NoError(t, err)
	assert.Contains(t, out, "gemini-3-pro-image-preview")
	assert.Contains(t, out, "ratio 16:9")
	assert.NotContains(t, out, "ratio 2:3")
}

func TestCommandErrors(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	_, _, err := run(t, "suite", "-r", "5:4", "-p", "x")
	assert.Error(t, err)

	_, _, err = run(t, "suite")
	assert.Error(t, err)

	_, _, err = run(t, "restore")
	assert.Error(t, err)

	_, _, err = run(t, "suite", "-p", "x", "-i", filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestSuiteCommand_NoCredential(t *testing.T) {
	var calls int32
	srv := fakeGemini(t, &calls)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	_, _, err := run(t, "suite", "--base-url", srv.URL, "-o", t.TempDir(), "-p", "x")
	require.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
