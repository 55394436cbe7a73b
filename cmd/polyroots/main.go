// Command polyroots certifies the complex roots of squarefree integer
// polynomials.
//
// Usage:
//
//	polyroots [flags] <family> <args...>
//	polyroots [flags] <c0> <c1> ... <cn>
//
// Run "polyroots -h" for the list of flags and families.
package main

import (
	"context"
	"os"

	"github.com/agbru/polyroots/internal/app"
	apperrors "github.com/agbru/polyroots/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
