// Package gemini provides the image and prompt-suggestion clients on top of
// Google's Gemini API.
//
// This provider uses the Gemini API backend via the official Go SDK:
// https://github.com/googleapis/go-genai
//
// The API key may change between calls (after a forced re-selection), so a
// genai.Client is built per call rather than once per Generator.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/lithiumheat/studio"
)

// Model name constants - the actual API model names.
const (
	// APIModelProImage is the actual API name for Gemini 3 Pro Image
	APIModelProImage = "gemini-3-pro-image-preview"

	// APIModelFlashText is the actual API name of the suggestion model
	APIModelFlashText = "gemini-2.5-flash"
)

// Generator implements studio.ImageClient and studio.PromptSuggester.
type Generator struct {
	baseURL    string
	imageModel string
	textModel  string
	httpClient *http.Client
}

// Ensure Generator implements the interfaces.
var (
	_ studio.ImageClient     = (*Generator)(nil)
	_ studio.PromptSuggester = (*Generator)(nil)
)

// New creates a Generator from a ProviderConfig. A nil config selects the
// public endpoint and the default models.
func New(config *studio.ProviderConfig) *Generator {
	if config == nil {
		config = &studio.ProviderConfig{}
	}

	g := &Generator{
		baseURL:    config.BaseURL,
		imageModel: config.ImageModel,
		textModel:  config.TextModel,
		httpClient: config.HTTPClient,
	}
	if g.imageModel == "" {
		g.imageModel = APIModelProImage
	}
	if g.textModel == "" {
		g.textModel = APIModelFlashText
	}
	return g
}

// Models returns the model definitions used by this provider.
// The first model is the image model.
func (g *Generator) Models() []studio.ModelInfo {
	return []studio.ModelInfo{
		ProImageInfo,
		FlashTextInfo,
	}
}

// GenerateImages makes one image-generation call authenticated with apiKey
// and returns the inline images of the first candidate.
func (g *Generator) GenerateImages(ctx context.Context, apiKey string, params *studio.CallParams) ([]studio.ImagePart, error) {
	if params == nil {
		return nil, fmt.Errorf("generate images: nil call params")
	}
	if g.imageModel == ProImageInfo.APIModelName && !ProImageInfo.Supports(params.AspectRatio, params.Resolution) {
		return nil, fmt.Errorf("%w: %s at %s for %s", studio.ErrInvalidAspectRatio, params.AspectRatio, params.Resolution, g.imageModel)
	}

	client, err := g.client(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	// Image goes first, then the instruction
	parts := make([]*genai.Part, 0, 2)
	if params.Image != nil {
		blob, err := inlineBlob(params.Image)
		if err != nil {
			return nil, err
		}
		parts = append(parts, &genai.Part{InlineData: blob})
	}
	parts = append(parts, &genai.Part{Text: params.Prompt})

	contents := []*genai.Content{
		{Role: "user", Parts: parts},
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: params.AspectRatio.String(),
			ImageSize:   params.Resolution.String(),
		},
	}

	result, err := client.Models.GenerateContent(ctx, g.imageModel, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return parseImages(result), nil
}

// SuggestPrompt sends instruction (and the optional image after it) to the
// text model and returns the concatenated answer.
func (g *Generator) SuggestPrompt(ctx context.Context, apiKey, instruction string, image *studio.InlineImage) (string, error) {
	client, err := g.client(ctx, apiKey)
	if err != nil {
		return "", err
	}

	parts := []*genai.Part{{Text: instruction}}
	if image != nil {
		blob, err := inlineBlob(image)
		if err != nil {
			return "", err
		}
		parts = append(parts, &genai.Part{InlineData: blob})
	}

	contents := []*genai.Content{
		{Role: "user", Parts: parts},
	}

	result, err := client.Models.GenerateContent(ctx, g.textModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("suggestion failed: %w", err)
	}

	return parseText(result), nil
}

func (g *Generator) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, studio.ErrNoCredential
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	}
	if g.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

func inlineBlob(img *studio.InlineImage) (*genai.Blob, error) {
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image payload: %w", err)
	}
	return &genai.Blob{
		Data:     data,
		MIMEType: img.MIMEType,
	}, nil
}

// parseImages collects the inline image parts of the first candidate.
// A response without candidates or image parts yields nil.
func parseImages(result *genai.GenerateContentResponse) []studio.ImagePart {
	if result == nil || len(result.Candidates) == 0 {
		return nil
	}
	candidate := result.Candidates[0]
	if candidate.Content == nil {
		return nil
	}

	var images []studio.ImagePart
	for _, part := range candidate.Content.Parts {
		if part.Thought {
			continue
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			images = append(images, studio.ImagePart{
				Data:     part.InlineData.Data,
				MIMEType: part.InlineData.MIMEType,
			})
		}
	}
	return images
}

func parseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
