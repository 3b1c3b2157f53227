package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pictree/pictree/internal/store"
)

// Settings holds all configuration options.
type Settings struct {
	// Remote store settings
	ServerURL      string  `json:"server_url"`
	Resource       string  `json:"resource"`
	DocumentID     string  `json:"document_id"`
	RequestTimeout float64 `json:"request_timeout_seconds"`

	// Retry settings
	MaxRetries    int     `json:"max_retries"`
	RetryCooldown float64 `json:"retry_cooldown"`
	RetryExponent float64 `json:"retry_exponent"`

	// Import settings
	ImportConcurrency int    `json:"import_concurrency"`
	AssetsPath        string `json:"assets_path"`
	InboxPath         string `json:"inbox_path"`

	// Built-in server settings
	ListenAddr string `json:"listen_addr"`
	DataPath   string `json:"data_path"`
}

// DefaultSettings returns settings with default values. Everything lives
// under ~/.pictree and the client points at a locally served store.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".pictree")
	return &Settings{
		ServerURL:      "http://localhost:8750",
		Resource:       "library",
		DocumentID:     "primary",
		RequestTimeout: 30,

		MaxRetries:    5,
		RetryCooldown: 0.5,
		RetryExponent: 2.0,

		ImportConcurrency: 8,
		AssetsPath:        filepath.Join(base, "assets"),
		InboxPath:         filepath.Join(base, "inbox"),

		ListenAddr: ":8750",
		DataPath:   filepath.Join(base, "data"),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".pictree", "config.json")
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToRetryConfig converts settings to the store retry policy.
func (s *Settings) ToRetryConfig() store.RetryConfig {
	cfg := store.DefaultRetryConfig()
	if s.MaxRetries > 0 {
		cfg.MaxAttempts = s.MaxRetries
	}
	if s.RetryCooldown > 0 {
		cfg.Cooldown = s.RetryCooldown
	}
	if s.RetryExponent > 0 {
		cfg.Exponent = s.RetryExponent
	}
	return cfg
}

// Timeout returns the per-request timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	if s.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.RequestTimeout * float64(time.Second))
}
