package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/internal/service"
)

// quietDigits is the precision of quiet output when -print is not given.
const quietDigits = 10

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the roots (empty for no file output).
	OutputFile string
	// Digits is the number of digits printed per root. Zero prints none.
	Digits int
	// Quiet prints only the roots, one per line.
	Quiet bool
	// JSON prints a models.RootReport instead of text.
	JSON bool
}

// WriteResultToFile writes the certified roots of p to config.OutputFile,
// after a commented header. Roots are printed at config.Digits, or 10
// digits when unset.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(p poly.Int, res *roots.Result, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Certified roots of %s\n", p)
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Degree: %d (deflation %d)\n", res.Degree, res.Deflation.D)
	fmt.Fprintf(file, "# Accuracy: 2^-%d\n", res.TargetBits)
	fmt.Fprintf(file, "# Precision: %d bits after %d round(s)\n", res.FinalPrecision, res.Rounds)
	fmt.Fprintf(file, "# Duration: %s\n\n", res.Duration)

	if err := writeRootLines(file, res, digitsOr(config.Digits, quietDigits)); err != nil {
		return err
	}
	return file.Close()
}

func digitsOr(d, def int) int {
	if d > 0 {
		return d
	}
	return def
}

func writeRootLines(w io.Writer, res *roots.Result, digits int) error {
	for _, z := range roots.Pretty(res.Roots) {
		if _, err := fmt.Fprintln(w, z.Format(digits)); err != nil {
			return err
		}
	}
	return nil
}

// DisplayQuietResult prints the roots, one per line without color, for
// scripting.
func DisplayQuietResult(out io.Writer, res *roots.Result, digits int) {
	_ = writeRootLines(out, res, digitsOr(digits, quietDigits))
}

// DisplayJSONResult prints the result of p as an indented RootReport.
func DisplayJSONResult(out io.Writer, p poly.Int, res *roots.Result, digits int) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(service.Report(p, res, digits))
}

// DisplayResultWithConfig displays a result with the given output
// configuration. It handles the JSON, quiet and text modes and the
// optional file output.
//
// Returns:
//   - error: An error if JSON encoding or file output fails.
func DisplayResultWithConfig(out io.Writer, p poly.Int, res *roots.Result, config OutputConfig) error {
	switch {
	case config.JSON:
		if err := DisplayJSONResult(out, p, res, config.Digits); err != nil {
			return err
		}
	case config.Quiet:
		DisplayQuietResult(out, res, config.Digits)
	default:
		DisplayRoots(out, res.Roots, config.Digits)
		DisplaySummary(out, res)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(p, res, config); err != nil {
			return err
		}
		if !config.Quiet && !config.JSON {
			fmt.Fprintf(out, "%s✓ Roots saved to: %s%s%s\n",
				ColorGreen(), ColorBlue(), config.OutputFile, ColorReset())
		}
	}

	return nil
}
