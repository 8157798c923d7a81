package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lithiumheat/studio/session"
)

// DefaultEnvFiles are read, when present, before the environment.
var DefaultEnvFiles = []string{".env", ".env.local"}

type Config struct {
	// APIKey is the pre-provisioned key (GEMINI_API_KEY, then API_KEY)
	APIKey string

	ImageModel string
	TextModel  string
	BaseURL    string

	// OutputDir receives saved images and exports
	OutputDir string

	SessionTTL time.Duration
}

// Load reads the given env files (DefaultEnvFiles when none) and then the
// environment. Missing files are skipped; variables already set in the
// environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	c := Config{
		APIKey:     getenv("GEMINI_API_KEY", getenv("API_KEY", "")),
		ImageModel: getenv("STUDIO_IMAGE_MODEL", ""),
		TextModel:  getenv("STUDIO_TEXT_MODEL", ""),
		BaseURL:    getenv("STUDIO_GEMINI_BASE_URL", ""),
		OutputDir:  getenv("STUDIO_OUTPUT_DIR", "studio-output"),
		SessionTTL: session.DefaultTTL,
	}

	if v := os.Getenv("STUDIO_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("STUDIO_SESSION_TTL: %w", err)
		}
		c.SessionTTL = ttl
	}

	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
