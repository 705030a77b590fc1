// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with mocks

package tui

import "songlist/config"

// ConfigProvider provides thread-safe access to list options
type ConfigProvider interface {
	Get() config.Options
	Update(cfg config.Options)
}
