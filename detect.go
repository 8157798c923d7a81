package studio

// Ratio thresholds for auto-detection, evaluated from widest to tallest.
const (
	wideLandscapeAbove = 1.7
	landscapeAbove     = 1.3
	squareAbove        = 0.9
	portraitAbove      = 0.7
)

// ClassifyRatio buckets a width/height ratio. The first threshold that r
// strictly exceeds wins, so a ratio equal to a threshold falls into the
// next, narrower bucket.
func ClassifyRatio(r float64) AspectRatio {
	switch {
	case r > wideLandscapeAbove:
		return AspectRatio16x9
	case r > landscapeAbove:
		return AspectRatio4x3
	case r > squareAbove:
		return AspectRatio1x1
	case r > portraitAbove:
		return AspectRatio3x4
	default:
		return AspectRatio9x16
	}
}

// DetectAspectRatio classifies an image of the given pixel size.
// A non-positive height yields AspectRatio1x1.
func DetectAspectRatio(width, height int) AspectRatio {
	if height <= 0 {
		return AspectRatio1x1
	}
	return ClassifyRatio(float64(width) / float64(height))
}
