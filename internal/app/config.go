package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the config file name inside Home.
const ConfigFile = "config.toml"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home              string        `toml:"home"`          // device directory, e.g. $HOME/.e2ekeys
	DirectoryURL      string        `toml:"directory_url"` // e.g. http://127.0.0.1:8080
	UserID            string        `toml:"user_id"`
	HTTPTimeout       time.Duration `toml:"http_timeout"`
	FanoutConcurrency int           `toml:"fanout_concurrency"`
	CacheSize         int           `toml:"cache_size"` // 0 disables the key cache
	CacheTTL          time.Duration `toml:"cache_ttl"`
	RetryMaxAttempts  int           `toml:"retry_max_attempts"` // 1 disables retries
	Verbose           bool          `toml:"verbose"`
	Debug             bool          `toml:"debug"`

	Passphrase string       `toml:"-"` // vault passphrase; empty stores plain files
	HTTP       *http.Client `toml:"-"` // optional; defaults to one with HTTPTimeout
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Home:              filepath.Join(home, ".e2ekeys"),
		DirectoryURL:      "http://127.0.0.1:8080",
		HTTPTimeout:       10 * time.Second,
		FanoutConcurrency: 8,
		CacheSize:         256,
		CacheTTL:          5 * time.Minute,
		RetryMaxAttempts:  1,
	}
}

// LoadConfig overlays the TOML file at path onto cfg. A missing file
// leaves cfg unchanged.
func LoadConfig(path string, cfg *Config) error {
	_, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	return nil
}

// SaveConfig writes cfg to path as TOML.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	switch {
	case c.Home == "":
		return errors.New("config: home is required")
	case c.DirectoryURL == "":
		return errors.New("config: directory_url is required")
	case c.UserID == "":
		return errors.New("config: user_id is required")
	case c.FanoutConcurrency < 0, c.CacheSize < 0, c.RetryMaxAttempts < 0:
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}
