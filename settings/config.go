package settings

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

const (
	KeyAPIKey  = "api_key"
	KeyBaseURL = "base_url"
	KeyTimeout = "timeout"

	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultTimeout = 60 * time.Second

	appDir       = "ai_text_improver"
	settingsFile = "settings.yaml"
	logFile      = "ai_text_improver.log"
)

// Config holds the connection knobs read from a Store.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Load reads Config from s, falling back to defaults for missing keys.
func Load(s Store) (Config, error) {
	cfg := Config{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout}

	if v, ok := s.Get(KeyBaseURL); ok && strings.TrimSpace(v) != "" {
		cfg.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := s.Get(KeyTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return Config{}, errors.Errorf("parsing %s: %w", KeyTimeout, err)
		}
		if d <= 0 {
			return Config{}, errors.Errorf("%s must be positive, got %s", KeyTimeout, d)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// APIKey returns the stored credential, or "" when none is saved.
func APIKey(s Store) string {
	v, _ := s.Get(KeyAPIKey)
	return strings.TrimSpace(v)
}

func SaveAPIKey(s Store, key string) error {
	if err := s.Set(KeyAPIKey, strings.TrimSpace(key)); err != nil {
		return errors.Errorf("saving api key: %w", err)
	}
	return nil
}

// DefaultPath is settings.yaml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, appDir, settingsFile), nil
}

// LogPath puts the log file next to the settings file.
func LogPath(settingsPath string) string {
	return filepath.Join(filepath.Dir(settingsPath), logFile)
}
