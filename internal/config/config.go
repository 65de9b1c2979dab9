package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/pagelist/internal/list"
)

const defaultTimeout = 15 * time.Second

// Config holds CLI configuration stored at ~/.pagelist/config.
type Config struct {
	BaseURL        string     `yaml:"base_url,omitempty"`
	APIKey         string     `yaml:"api_key,omitempty"`
	Endpoint       string     `yaml:"endpoint,omitempty"`
	TimeoutSeconds int        `yaml:"timeout_seconds,omitempty"`
	LogFile        string     `yaml:"log_file,omitempty"`
	LogLevel       string     `yaml:"log_level,omitempty"`
	List           ListConfig `yaml:"list"`
}

// ListConfig is the list controller section.
type ListConfig struct {
	DataFile          string `yaml:"data_file,omitempty"`
	PageSize          int    `yaml:"page_size"`
	SearchAtServer    bool   `yaml:"search_at_server"`
	SearchPlaceholder string `yaml:"search_placeholder,omitempty"`
	SearchType        string `yaml:"search_type,omitempty"`
	SingleSelect      bool   `yaml:"single_select"`
	SortDirection     string `yaml:"sort_direction,omitempty"`
	SortOn            string `yaml:"sort_on,omitempty"`
}

// Default returns the config written by `config init`.
func Default() *Config {
	return &Config{
		List: ListConfig{
			PageSize:          list.DefaultPageSize,
			SearchPlaceholder: "Search...",
			SearchType:        list.MatchContains.String(),
		},
	}
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pagelist", "config")
}

// Load reads the config at Path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads and parses the config file at path. A missing file yields an error
// wrapping os.ErrNotExist; a group or world readable file is rejected.
func LoadFrom(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("config is empty: %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault reads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the config to Path with secure permissions.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to path with secure permissions.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(path, 0600)
}

// Timeout returns the HTTP timeout, defaulting to 15s.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Resolve converts the list section into controller settings. An unknown sort direction
// is logged and disables sorting.
func (l ListConfig) Resolve(log zerolog.Logger) list.Config {
	dir, err := list.ParseDirection(l.SortDirection)
	if err != nil {
		log.Warn().Err(err).Msg("sorting disabled")
		dir = list.DirectionNone
	}
	return list.Config{
		PageSize:          l.PageSize,
		SearchAtServer:    l.SearchAtServer,
		SearchPlaceholder: l.SearchPlaceholder,
		SearchType:        list.ParseMatchKind(l.SearchType),
		SingleSelect:      l.SingleSelect,
		SortDirection:     dir,
		SortOn:            l.SortOn,
	}
}
