// ABOUTME: Configuration management for list display, sorting and search options
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Options holds the user-tunable list settings
type Options struct {
	// Display
	Columns string `toml:"columns"` // field tokens, space or comma separated
	Limit   int    `toml:"limit"`   // CLI only: keep at most this many tracks, 0 for no limit

	// Sorting
	Sort       string `toml:"sort"` // keys applied in turn, the last one is the primary order
	IgnoreCase bool   `toml:"ignorecase"`

	// Search and navigation
	RegexSearch  bool   `toml:"regexsearch"`
	SearchFields string `toml:"searchfields"` // empty means every field
	JumpField    string `toml:"jumpfield"`    // field used by next-of and prev-of
	Repeat       bool   `toml:"repeat"`
}

// DefaultConfig returns the options used when no config file exists
func DefaultConfig() Options {
	return Options{
		Columns:      "num artist trackshort title album year length",
		Sort:         "track disc album year artist",
		IgnoreCase:   true,
		RegexSearch:  false,
		SearchFields: "title artist albumartist album",
		JumpField:    "album",
		Repeat:       false,
	}
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/songlist/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./songlist.toml"); err == nil {
		return "./songlist.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./songlist.toml"
	}

	return filepath.Join(home, ".config", "songlist", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// Keys missing from the file keep their default values
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Options) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// SharedConfig wraps Options with a mutex so the TUI and the file watcher see a consistent copy
type SharedConfig struct {
	mu     sync.RWMutex
	config Options
}

// NewSharedConfig returns a SharedConfig holding config
func NewSharedConfig(config Options) *SharedConfig {
	return &SharedConfig{config: config}
}

// Get returns a copy of the current config
func (sc *SharedConfig) Get() Options {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Update replaces the config
func (sc *SharedConfig) Update(config Options) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = config
}
