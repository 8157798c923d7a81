package studio

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

// ErrorClass is the recovery-relevant category of a failed remote call.
type ErrorClass int

const (
	// ErrorClassOther covers everything not listed below, including
	// malformed responses and network failures.
	ErrorClassOther ErrorClass = iota

	// ErrorClassAuthDenied means the remote rejected the credential.
	ErrorClassAuthDenied

	// ErrorClassTransientServer means the remote is temporarily unavailable.
	ErrorClassTransientServer
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorClassAuthDenied:
		return "auth_denied"
	case ErrorClassTransientServer:
		return "transient_server"
	default:
		return "other"
	}
}

var (
	// ErrNoImageData is returned when a response carries no image parts.
	ErrNoImageData = errors.New("no image data in response")

	// ErrNoCredential is returned when no API key could be acquired.
	ErrNoCredential = errors.New("no API key available")

	// ErrStorageNotConfigured is returned when storage operations are attempted
	// without a configured storage backend.
	ErrStorageNotConfigured = errors.New("storage not configured")

	// ErrSuggesterNotConfigured is returned by SuggestPrompt when no
	// suggestion endpoint was configured.
	ErrSuggesterNotConfigured = errors.New("prompt suggester not configured")
)

// StatusError carries an HTTP-like status code from a remote failure.
// Providers that do not surface genai.APIError can return it so that
// ClassifyError still sees the code.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(e.Code))
	if e.Status != "" {
		b.WriteString(" ")
		b.WriteString(e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

var (
	authMarkers      = []string{"403", "PERMISSION_DENIED", "The caller does not have permission"}
	transientMarkers = []string{"500", "503", "INTERNAL", "UNAVAILABLE"}
)

// ClassifyError maps a remote failure onto an ErrorClass.
// Status codes are checked first, message markers second; auth wins over
// transient when both match.
func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassOther
	}

	if code, ok := statusCode(err); ok {
		switch code {
		case http.StatusForbidden:
			return ErrorClassAuthDenied
		case http.StatusInternalServerError, http.StatusServiceUnavailable:
			return ErrorClassTransientServer
		}
	}

	msg := err.Error()
	if containsAny(msg, authMarkers) {
		return ErrorClassAuthDenied
	}
	if containsAny(msg, transientMarkers) {
		return ErrorClassTransientServer
	}
	return ErrorClassOther
}

func statusCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code, true
	}
	return 0, false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
