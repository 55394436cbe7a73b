// Package config provides the configuration management for the polyroots
// application. It defines the configuration structure, parses command-line
// flags with environment overrides, and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/finder"
	"github.com/agbru/polyroots/internal/roots"
)

const (
	// EnvPrefix is the prefix for all environment variables used by polyroots.
	EnvPrefix = "POLYROOTS_"
)

// Default configuration values.
const (
	// DefaultPrec is the working precision of the first round, in bits.
	DefaultPrec = roots.DefaultInitialPrecision
	// DefaultTimeout is the default isolation timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultParallelThreshold is the degree from which root validation runs
	// in parallel.
	DefaultParallelThreshold = finder.DefaultParallelThreshold
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Poly holds the positional arguments: a family letter and its
	// arguments, or literal coefficients c0 c1 ... cn.
	Poly []string
	// Refine is the requested accuracy in decimal digits.
	Refine int
	// Print is the number of digits shown per root. Zero prints nothing.
	Print int
	// Prec is the initial working precision in bits.
	Prec uint
	// MaxPrec caps the working precision. Zero means no cap.
	MaxPrec uint
	// Timeout bounds one isolation.
	Timeout time.Duration
	// ParallelThreshold is the degree from which validation is parallel.
	ParallelThreshold int
	// Verbose prints one line per precision round.
	Verbose bool
	// JSONOutput outputs the result as JSON.
	JSONOutput bool
	// Quiet suppresses the spinner and informational messages.
	Quiet bool
	// OutputFile, if set, receives the roots.
	OutputFile string
	// NoColor disables colored output. NO_COLOR is also honored.
	NoColor bool
	// ServerMode starts the HTTP server.
	ServerMode bool
	// Port is the server listen port.
	Port string
	// Interactive starts the REPL.
	Interactive bool
	// Batch is a YAML file of isolation jobs.
	Batch string
	// Completion generates a completion script for the named shell.
	Completion string
}

// TargetBits returns the accuracy target derived from Refine.
func (c AppConfig) TargetBits() uint {
	return roots.TargetBits(c.Refine)
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Prec == 0 {
		return apperrors.NewConfigError("initial precision must be strictly positive")
	}
	if c.MaxPrec != 0 && c.MaxPrec < c.Prec {
		return apperrors.NewConfigError("maximum precision %d is below the initial precision %d", c.MaxPrec, c.Prec)
	}
	if c.Refine < 0 {
		return apperrors.NewConfigError("refine digits cannot be negative: %d", c.Refine)
	}
	if c.Print < 0 {
		return apperrors.NewConfigError("print digits cannot be negative: %d", c.Print)
	}
	if c.ParallelThreshold < 0 {
		return apperrors.NewConfigError("parallel threshold cannot be negative: %d", c.ParallelThreshold)
	}
	if len(c.Poly) == 0 && !c.ServerMode && !c.Interactive && c.Batch == "" && c.Completion == "" {
		return apperrors.NewConfigError("no polynomial given")
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// environment overrides for flags not set explicitly, and validates it.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: An error if flag parsing or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.IntVar(&config.Refine, "refine", 0, "Compute the roots to `digits` accurate decimal digits.")
	fs.IntVar(&config.Print, "print", 0, "Print the roots with `digits` significant digits (0 prints none).")
	fs.UintVar(&config.Prec, "prec", DefaultPrec, "Initial working precision in `bits`.")
	fs.UintVar(&config.MaxPrec, "max-prec", 0, "Give up once the working precision would exceed `bits` (0 for no limit).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum time for one isolation.")
	fs.IntVar(&config.ParallelThreshold, "parallel-threshold", DefaultParallelThreshold, "Degree from which root validation runs in parallel.")
	fs.BoolVar(&config.Verbose, "v", false, "Print one line per precision round.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Write the roots to `file`.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.Batch, "batch", "", "Run the isolation jobs listed in a YAML `file`.")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")

	setCustomUsage(fs)

	if err := fs.Parse(insertTerminator(fs, args)); err != nil {
		return AppConfig{}, err
	}
	config.Poly = fs.Args()

	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}

// insertTerminator puts "--" in front of the first negative integer that is
// not a flag value, so literal coefficients such as "-1 0 1" are not taken
// for flags.
func insertTerminator(fs *flag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || !strings.HasPrefix(a, "-") {
			return args
		}
		if isNegativeInteger(a) {
			return slices.Concat(args[:i:i], []string{"--"}, args[i:])
		}
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) {
			i++
		}
	}
	return args
}

func isNegativeInteger(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}
