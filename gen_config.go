package studio

import (
	"fmt"
	"strings"
)

// Mode selects the prompt-construction policy of a generation run.
type Mode string

const (
	// ModeSuite produces commercial marketing shots of a product.
	ModeSuite Mode = "SUITE"

	// ModeRestore upscales and restores an existing photo.
	ModeRestore Mode = "RESTORE"
)

// Resolution represents the output resolution for generated images.
type Resolution string

const (
	Resolution1K Resolution = "1K"
	Resolution2K Resolution = "2K"
	Resolution4K Resolution = "4K"
)

// AspectRatio represents the aspect ratio requested for generated images.
type AspectRatio string

const (
	AspectRatio1x1  AspectRatio = "1:1"
	AspectRatio2x3  AspectRatio = "2:3" // Photo portrait, not accepted by the image model
	AspectRatio3x2  AspectRatio = "3:2" // Photo landscape, not accepted by the image model
	AspectRatio3x4  AspectRatio = "3:4"
	AspectRatio4x3  AspectRatio = "4:3"
	AspectRatio9x16 AspectRatio = "9:16"
	AspectRatio16x9 AspectRatio = "16:9"
)

// AspectRatios lists every aspect ratio a request may carry.
func AspectRatios() []AspectRatio {
	return []AspectRatio{
		AspectRatio1x1,
		AspectRatio2x3,
		AspectRatio3x2,
		AspectRatio3x4,
		AspectRatio4x3,
		AspectRatio9x16,
		AspectRatio16x9,
	}
}

// AcceptedAspectRatios lists the aspect ratios the image endpoint accepts.
func AcceptedAspectRatios() []AspectRatio {
	return []AspectRatio{
		AspectRatio1x1,
		AspectRatio3x4,
		AspectRatio4x3,
		AspectRatio9x16,
		AspectRatio16x9,
	}
}

// Resolutions lists every supported output resolution.
func Resolutions() []Resolution {
	return []Resolution{Resolution1K, Resolution2K, Resolution4K}
}

// Modes lists every generation mode.
func Modes() []Mode {
	return []Mode{ModeSuite, ModeRestore}
}

// Valid reports whether a is one of the seven enumerated ratios.
func (a AspectRatio) Valid() bool {
	for _, r := range AspectRatios() {
		if r == a {
			return true
		}
	}
	return false
}

// Accepted reports whether the image endpoint accepts a as is.
func (a AspectRatio) Accepted() bool {
	for _, r := range AcceptedAspectRatios() {
		if r == a {
			return true
		}
	}
	return false
}

// Valid reports whether r is a supported resolution.
func (r Resolution) Valid() bool {
	switch r {
	case Resolution1K, Resolution2K, Resolution4K:
		return true
	}
	return false
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeSuite || m == ModeRestore
}

// String returns the string representation for API calls.
func (a AspectRatio) String() string {
	return string(a)
}

// String returns the string representation for API calls.
func (r Resolution) String() string {
	return string(r)
}

func (m Mode) String() string {
	return string(m)
}

// ParseAspectRatio parses user input such as "16:9" into an AspectRatio.
func ParseAspectRatio(s string) (AspectRatio, error) {
	a := AspectRatio(strings.TrimSpace(s))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s)
	}
	return a, nil
}

// ParseResolution parses user input such as "2k" into a Resolution.
func ParseResolution(s string) (Resolution, error) {
	r := Resolution(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidResolution, s)
	}
	return r, nil
}

// ParseMode parses user input such as "restore" into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}
