package studio

// NoSuggestionText is returned when the model answers with no text.
const NoSuggestionText = "Could not analyze requirements."

const suggestionInstruction = "You are an expert E-Commerce Operation Assistant.\n" +
	"Analyze the following request and/or product image.\n" +
	"Suggest a detailed image generation prompt optimized for Amazon/Shopify listings.\n" +
	"Focus on: Lighting, Angle, Background (Lifestyle or White), and Selling Points.\n" +
	"User Request: "

// BuildSuggestionInstruction wraps the user's rough request into the
// prompt-suggestion instruction.
func BuildSuggestionInstruction(text string) string {
	return suggestionInstruction + text
}
