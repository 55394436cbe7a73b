// Package app provides the core application structure for the polyroots CLI.
// It handles application lifecycle, command dispatching, and version management.
package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build-time variables set via -ldflags.
//
// Example build command:
//
//	go build -ldflags="-X github.com/agbru/polyroots/internal/app.Version=v1.2.3 -X github.com/agbru/polyroots/internal/app.Commit=abc123 -X github.com/agbru/polyroots/internal/app.BuildDate=2026-01-01T00:00:00Z" ./cmd/polyroots
var (
	// Version is the semantic version of the application (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the short Git commit hash (e.g., "abc123").
	Commit = "unknown"
	// BuildDate is the ISO 8601 timestamp of the build.
	BuildDate = "unknown"
)

// HasVersionFlag checks if any argument is a version flag.
// This allows --version to work in any position (e.g., "polyroots -server --version").
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion outputs version information to the given writer.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "polyroots %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", info.OS, info.Arch)
}

// VersionData holds the build and runtime version details.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns the current version information as a struct.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
