package studio

import "time"

// ImagePart is one inline image returned by the image endpoint.
type ImagePart struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the part; empty means PNG
	MIMEType string
}

// GeneratedImage represents a single generated image result. It is created
// from one successful response part and is never modified afterwards.
type GeneratedImage struct {
	// ID is "<run id>_<index>", index being the position in the run's output
	ID string

	// URL is a base64 data URL of the image
	URL string

	// Prompt is the user prompt the image was generated from
	Prompt string

	Timestamp   time.Time
	Resolution  Resolution
	AspectRatio AspectRatio
}

// TaskStatus is the lifecycle state of a TaskGroup.
type TaskStatus string

const (
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// TaskGroup is one user-visible run kept in the session history.
type TaskGroup struct {
	ID        string
	Mode      Mode
	Status    TaskStatus
	Timestamp time.Time
	Images    []GeneratedImage

	// Error is the failure notice of a failed run
	Error string

	// OriginalInput is the uploaded reference image, as a data URL
	OriginalInput string

	// InputPrompt is the user's text for the run
	InputPrompt string
}
