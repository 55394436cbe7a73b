// Package ui holds the terminal color themes shared by the CLI, the REPL and
// the usage text.
package ui

import (
	"os"
	"sync"
)

// Theme maps output roles to ANSI escape codes.
type Theme struct {
	Name string
	// Primary highlights headings and flag names.
	Primary string
	// Muted is used for defaults, timings and other secondary text.
	Muted string
	Success string
	Warning string
	Error   string
	// Real colors enclosures of real roots.
	Real string
	// Complex colors enclosures of non-real roots.
	Complex string
	Bold    string
	Reset   string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Primary: "\033[38;5;39m",
		Muted:   "\033[38;5;245m",
		Success: "\033[38;5;82m",
		Warning: "\033[38;5;220m",
		Error:   "\033[38;5;196m",
		Real:    "\033[38;5;117m",
		Complex: "\033[38;5;141m",
		Bold:    "\033[1m",
		Reset:   "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Primary: "\033[38;5;27m",
		Muted:   "\033[38;5;240m",
		Success: "\033[38;5;28m",
		Warning: "\033[38;5;130m",
		Error:   "\033[38;5;124m",
		Real:    "\033[38;5;24m",
		Complex: "\033[38;5;54m",
		Bold:    "\033[1m",
		Reset:   "\033[0m",
	}

	// NoColorTheme disables all escape codes.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeEnv selects a theme by name when set.
const ThemeEnv = "POLYROOTS_THEME"

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// ThemeByName returns the theme called name, or DarkTheme if there is none.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme
	case "none":
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// InitTheme picks the active theme. noColor and the NO_COLOR variable
// (https://no-color.org/) both disable colors; otherwise POLYROOTS_THEME
// names the theme.
func InitTheme(noColor bool) {
	t := ThemeByName(os.Getenv(ThemeEnv))
	if _, exists := os.LookupEnv("NO_COLOR"); exists || noColor {
		t = NoColorTheme
	}
	SetCurrentTheme(t)
}

// Paint wraps s in the given escape code and a reset, or returns s
// unchanged when code is empty.
func Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + GetCurrentTheme().Reset
}
