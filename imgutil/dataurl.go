package imgutil

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrMalformedDataURL is returned when a string has no "data:" prefix or no
// payload separator.
var ErrMalformedDataURL = errors.New("malformed data URL")

// ParseDataURL splits a data URL of the form "data:<mime>;base64,<payload>"
// into its MIME type and base64 payload. The MIME type is taken from the
// declaration, never sniffed from the payload, and the payload is not
// decoded or validated.
func ParseDataURL(dataURL string) (mimeType, payload string, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", "", ErrMalformedDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", ErrMalformedDataURL
	}
	mimeType, _, _ = strings.Cut(header, ";")
	return mimeType, payload, nil
}

// EncodeDataURL builds a base64 data URL from raw bytes.
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL returns the MIME type and the decoded bytes of a data URL.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	mimeType, payload, err := ParseDataURL(dataURL)
	if err != nil {
		return "", nil, err
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return mimeType, data, nil
}
