package cli

import apperrors "github.com/agbru/polyroots/internal/errors"

// Ensure CLIColorProvider implements apperrors.ColorProvider at compile time.
var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the current
// theme, so error status lines match the rest of the output.
type CLIColorProvider struct{}

// Yellow returns the warning color of the current theme.
func (c CLIColorProvider) Yellow() string { return ColorYellow() }

// Reset returns the reset code of the current theme.
func (c CLIColorProvider) Reset() string { return ColorReset() }
