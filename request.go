package studio

import (
	"fmt"

	"github.com/lithiumheat/studio/imgutil"
)

// Fixed directives wrapped around the user prompt.
const (
	suitePromptFormat = "Professional E-Commerce Photography: %s.\n" +
		"Style: High-end commercial, clean lighting, product focused.\n" +
		"Ensure consistency in lighting and presentation."

	restoreDirective = "High fidelity image restoration and upscale.\n" +
		"Objectives: Enhance clarity, fix lighting, remove noise, sharpen details.\n" +
		"Constraints: DO NOT change facial features, product details, or composition.\n" +
		"Maintain aspect ratio strictly. Output photorealistic commercial quality."

	restoreAdjustmentsFormat = "\nAdditional adjustments: %s"

	// DefaultRestorePrompt labels restored images when the user gave no text.
	DefaultRestorePrompt = "High Fidelity Restoration"
)

// GenerationRequest is one orchestration run's input. It is not modified
// during the run.
type GenerationRequest struct {
	// Prompt is the user's free text. Empty is valid and, in ModeRestore,
	// means pure enhancement.
	Prompt string

	// ReferenceImage is an optional data URL ("data:<mime>;base64,...").
	ReferenceImage string

	AspectRatio AspectRatio
	Resolution  Resolution

	// Count is the number of images to produce.
	Count int

	Mode Mode

	// RunID prefixes the generated image ids. Generated when empty.
	RunID string
}

// InlineImage is an image payload sent inline with a remote call.
type InlineImage struct {
	MIMEType string

	// Data is the base64 payload, exactly as found in the data URL.
	Data string
}

// CallParams are the fully specified inputs of one remote call.
type CallParams struct {
	Prompt      string
	AspectRatio AspectRatio // always one of AcceptedAspectRatios
	Resolution  Resolution
	Image       *InlineImage
}

// BuildPrompt composes the mode-specific instruction around the user prompt.
func BuildPrompt(mode Mode, prompt string) string {
	switch mode {
	case ModeRestore:
		if prompt == "" {
			return restoreDirective
		}
		return restoreDirective + fmt.Sprintf(restoreAdjustmentsFormat, prompt)
	case ModeSuite:
		return fmt.Sprintf(suitePromptFormat, prompt)
	default:
		return prompt
	}
}

// SanitizeAspectRatio maps ratios the image endpoint rejects onto their
// nearest accepted neighbour with the same orientation.
func SanitizeAspectRatio(ratio AspectRatio) AspectRatio {
	switch ratio {
	case AspectRatio2x3:
		return AspectRatio3x4
	case AspectRatio3x2:
		return AspectRatio4x3
	default:
		return ratio
	}
}

// ExtractInlineImage turns a reference data URL into an inline payload.
// An empty reference yields nil.
func ExtractInlineImage(reference string) (*InlineImage, error) {
	if reference == "" {
		return nil, nil
	}
	mimeType, payload, err := imgutil.ParseDataURL(reference)
	if err != nil {
		return nil, fmt.Errorf("reference image: %w", err)
	}
	return &InlineImage{MIMEType: mimeType, Data: payload}, nil
}

// BuildCallParams transforms req into the parameters of a remote call.
// It has no side effects and may be called once per run.
func BuildCallParams(req GenerationRequest) (*CallParams, error) {
	img, err := ExtractInlineImage(req.ReferenceImage)
	if err != nil {
		return nil, err
	}
	return &CallParams{
		Prompt:      BuildPrompt(req.Mode, req.Prompt),
		AspectRatio: SanitizeAspectRatio(req.AspectRatio),
		Resolution:  req.Resolution,
		Image:       img,
	}, nil
}

// displayPrompt is the prompt recorded on generated images.
func displayPrompt(req GenerationRequest) string {
	if req.Mode == ModeRestore && req.Prompt == "" {
		return DefaultRestorePrompt
	}
	return req.Prompt
}
