package studio

import "context"

// ImageClient is the boundary to the remote image-generation endpoint.
// Implement this interface to add support for new providers.
type ImageClient interface {
	// GenerateImages issues exactly one remote call authenticated with apiKey
	// and returns the image parts of the response, possibly none.
	GenerateImages(ctx context.Context, apiKey string, params *CallParams) ([]ImagePart, error)
}

// PromptSuggester is the boundary to the text/multimodal endpoint used to
// draft a generation prompt from a rough request.
type PromptSuggester interface {
	// SuggestPrompt sends the instruction and the optional image and returns
	// the model's free text.
	SuggestPrompt(ctx context.Context, apiKey, instruction string, image *InlineImage) (string, error)
}

// CredentialSource hands out the API key used for remote calls.
type CredentialSource interface {
	// Acquire returns a key. Non-forced acquisition reuses an already
	// selected key; forced acquisition always re-selects.
	Acquire(ctx context.Context, force bool) (string, error)
}
