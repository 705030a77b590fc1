// ABOUTME: Per-user state remembered between sessions: last search and cursor per playlist
// ABOUTME: Stored as TOML in ~/.config/songlist/prefs.toml, any read problem yields empty prefs

package prefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds state restored when a playlist is reopened
type Prefs struct {
	LastSearch string         `toml:"last_search"`
	Cursors    map[string]int `toml:"cursors"` // keyed by absolute playlist path
}

const defaultPrefsPath = "~/.config/songlist/prefs.toml"

// DefaultPath returns the default preferences file path
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path, or the default path when path is empty.
// A missing or unreadable file is not an error.
func Load(path string) (Prefs, error) {
	empty := Prefs{Cursors: map[string]int{}}

	resolved, err := resolvePath(path)
	if err != nil {
		return empty, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		return empty, nil // Missing or unreadable, start fresh
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return empty, nil
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return empty, nil
	}

	if p.Cursors == nil {
		p.Cursors = map[string]int{}
	}

	return p, nil
}

// Save writes preferences to path, creating directories as needed
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Cursor returns the remembered cursor for a playlist, 0 when unknown
func (p Prefs) Cursor(playlistPath string) int {
	key, err := expandPath(playlistPath)
	if err != nil {
		return 0
	}

	return max(p.Cursors[key], 0)
}

// SetCursor remembers the cursor for a playlist
func (p *Prefs) SetCursor(playlistPath string, pos int) {
	key, err := expandPath(playlistPath)
	if err != nil {
		return
	}

	if p.Cursors == nil {
		p.Cursors = map[string]int{}
	}

	p.Cursors[key] = pos
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
