package studio

import "net/http"

// Provider represents a model provider/backend.
type Provider string

const (
	ProviderGeminiAPI Provider = "gemini"
)

// ProviderConfig configures a remote client. The API key is not part of it:
// keys are handed to every call by the CredentialSource.
type ProviderConfig struct {
	// Provider type
	Provider Provider

	// BaseURL for custom endpoints (optional)
	BaseURL string

	// ImageModel overrides the image-generation model name (optional)
	ImageModel string

	// TextModel overrides the prompt-suggestion model name (optional)
	TextModel string

	// HTTPClient used for remote calls (optional)
	HTTPClient *http.Client
}

// ModelCapabilities describes what a model can take and produce.
type ModelCapabilities struct {
	SupportsImageInput  bool
	SupportsImageOutput bool
	SupportsTextOutput  bool

	// MaxOutputImages generated per request
	MaxOutputImages int
}

// ImageConstraints lists the image configurations a model accepts.
type ImageConstraints struct {
	SupportedAspectRatios []AspectRatio
	SupportedResolutions  []Resolution
}

// ModelInfo contains the metadata of a remote model.
type ModelInfo struct {
	// Identity
	Name         string   // Public model name (e.g., "nano-banana-pro")
	Provider     Provider // Which provider serves this model
	APIModelName string   // Actual API name (e.g., "gemini-3-pro-image-preview")

	Capabilities ModelCapabilities

	ContextLength    int
	ImageConstraints ImageConstraints
}

// Supports reports whether the model accepts ratio at resolution.
// A model without image constraints accepts nothing.
func (m ModelInfo) Supports(ratio AspectRatio, resolution Resolution) bool {
	ratioOK := false
	for _, r := range m.ImageConstraints.SupportedAspectRatios {
		if r == ratio {
			ratioOK = true
			break
		}
	}
	if !ratioOK {
		return false
	}
	for _, r := range m.ImageConstraints.SupportedResolutions {
		if r == resolution {
			return true
		}
	}
	return false
}
