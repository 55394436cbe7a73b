package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of EnvPrefix+key, or defaultVal if unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint returns EnvPrefix+key parsed as uint, or defaultVal if unset
// or invalid.
func getEnvUint(key string, defaultVal uint) uint {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 0); err == nil {
			return uint(parsed)
		}
	}
	return defaultVal
}

// getEnvInt returns EnvPrefix+key parsed as int, or defaultVal if unset or
// invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns EnvPrefix+key parsed as bool, or defaultVal if unset.
// Accepts "true", "1", "yes" and "false", "0", "no" (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns EnvPrefix+key parsed as time.Duration, or
// defaultVal if unset or invalid.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether a flag was set on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides fills in flags that were not set on the command line
// from the environment. Priority: flags > environment > defaults.
//
// Supported environment variables:
//   - POLYROOTS_POLY: the polynomial, space separated, when no positional
//     arguments are given
//   - POLYROOTS_REFINE, POLYROOTS_PRINT (int)
//   - POLYROOTS_PREC, POLYROOTS_MAX_PREC (uint)
//   - POLYROOTS_TIMEOUT (duration: "5m", "30s")
//   - POLYROOTS_PARALLEL_THRESHOLD (int)
//   - POLYROOTS_PORT, POLYROOTS_OUTPUT, POLYROOTS_BATCH (string)
//   - POLYROOTS_VERBOSE, POLYROOTS_JSON, POLYROOTS_QUIET, POLYROOTS_SERVER,
//     POLYROOTS_INTERACTIVE, POLYROOTS_NO_COLOR (bool: true/false, 1/0, yes/no)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	if len(config.Poly) == 0 {
		config.Poly = strings.Fields(getEnvString("POLY", ""))
	}
	applyNumericOverrides(config, fs)
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "refine") {
		config.Refine = getEnvInt("REFINE", config.Refine)
	}
	if !isFlagSet(fs, "print") {
		config.Print = getEnvInt("PRINT", config.Print)
	}
	if !isFlagSet(fs, "prec") {
		config.Prec = getEnvUint("PREC", config.Prec)
	}
	if !isFlagSet(fs, "max-prec") {
		config.MaxPrec = getEnvUint("MAX_PREC", config.MaxPrec)
	}
	if !isFlagSet(fs, "parallel-threshold") {
		config.ParallelThreshold = getEnvInt("PARALLEL_THRESHOLD", config.ParallelThreshold)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "output", "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
	if !isFlagSet(fs, "batch") {
		config.Batch = getEnvString("BATCH", config.Batch)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "quiet", "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "interactive") {
		config.Interactive = getEnvBool("INTERACTIVE", config.Interactive)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
