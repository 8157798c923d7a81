package gemini

import "github.com/lithiumheat/studio"

// ProImageInfo is the model info for Gemini 3 Pro Image (nano-banana-pro).
// It serves every resolution, 1K included.
var ProImageInfo = studio.ModelInfo{
	Name:         "nano-banana-pro",
	Provider:     studio.ProviderGeminiAPI,
	APIModelName: APIModelProImage,

	Capabilities: studio.ModelCapabilities{
		SupportsImageInput:  true,
		SupportsImageOutput: true,
		SupportsTextOutput:  true,
		MaxOutputImages:     4,
	},

	ContextLength: 65536,

	// Only the ratios the endpoint accepts; 2:3 and 3:2 are sanitized away
	// before a call is made.
	ImageConstraints: studio.ImageConstraints{
		SupportedAspectRatios: studio.AcceptedAspectRatios(),
		SupportedResolutions:  studio.Resolutions(),
	},
}

// FlashTextInfo is the model info for the prompt-suggestion model.
var FlashTextInfo = studio.ModelInfo{
	Name:         "gemini-flash",
	Provider:     studio.ProviderGeminiAPI,
	APIModelName: APIModelFlashText,

	Capabilities: studio.ModelCapabilities{
		SupportsImageInput: true,
		SupportsTextOutput: true,
	},

	ContextLength: 1048576, // 1M tokens
}
